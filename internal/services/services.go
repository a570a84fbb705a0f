package services

import (
	"context"
	"fmt"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/gemini"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/redis"
	"github.com/deepgram/gemini-mcp/internal/services/search"
	"github.com/deepgram/gemini-mcp/internal/services/structured"
	"github.com/deepgram/gemini-mcp/internal/services/tools"
	"github.com/rs/zerolog/log"
)

type Services struct {
	geminiConfigured  bool
	redisService      *redis.Service
	searchService     *search.Service
	structuredService *structured.Service
	toolService       *tools.Service
}

// InitializeServices builds the Gemini client once and hands it to both tools.
func InitializeServices(ctx context.Context, geminiConfig config.GeminiConfig) (*Services, error) {
	log.Info().Msg("Initializing core services")

	geminiService, err := gemini.NewService(ctx, geminiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini service: %w", err)
	}

	// A nil *gemini.Service must reach the tools as a nil interface.
	var generator gemini.Generator
	if geminiService != nil {
		generator = geminiService
	} else {
		log.Warn().Msg("Gemini tools disabled - every call will fail with a configuration error")
	}

	return NewServices(generator, geminiConfig, redis.NewService(ctx))
}

// NewServices wires the tool stack around an existing generator.
func NewServices(generator gemini.Generator, geminiConfig config.GeminiConfig, redisService *redis.Service) (*Services, error) {
	searchService := search.NewService(generator, geminiConfig)
	structuredService := structured.NewService(generator, geminiConfig)
	log.Info().Str("search_mode", string(searchService.Mode())).Msg("Initializing tool services")

	toolService, err := tools.NewService(tools.NewToolExecutor(searchService, structuredService))
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tool service")
		return nil, fmt.Errorf("failed to initialize tool service: %w", err)
	}

	log.Info().Int("tools", len(toolService.GetTools())).Msg("All services initialized successfully")

	return &Services{
		geminiConfigured:  generator != nil,
		redisService:      redisService,
		searchService:     searchService,
		structuredService: structuredService,
		toolService:       toolService,
	}, nil
}

// GeminiConfigured reports whether the tools can reach Gemini.
func (s *Services) GeminiConfigured() bool {
	return s.geminiConfigured
}

// GetRedisService returns the optional Redis service, or nil.
func (s *Services) GetRedisService() *redis.Service {
	return s.redisService
}

// GetToolService returns the tool service
func (s *Services) GetToolService() *tools.Service {
	return s.toolService
}

// Close releases external connections.
func (s *Services) Close() error {
	if s.redisService != nil {
		return s.redisService.Close()
	}
	return nil
}
