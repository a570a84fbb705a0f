package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/gemini"
	"github.com/deepgram/gemini-mcp/internal/services/extract"
	"github.com/deepgram/gemini-mcp/internal/services/validation"
	"github.com/rs/zerolog/log"
)

const (
	fallbackSource    = "gemini-search"
	fallbackPublisher = "Google Gemini"
	descriptionLimit  = 200
)

type Service struct {
	generator gemini.Generator
	model     string
	mode      config.SearchMode
}

// NewService builds the web search tool. A nil generator leaves the tool
// disabled: every call fails with ErrNotConfigured.
func NewService(generator gemini.Generator, cfg config.GeminiConfig) *Service {
	mode := cfg.SearchMode
	if mode == "" {
		mode = config.SearchModeLenient
	}

	return &Service{
		generator: generator,
		model:     cfg.Model,
		mode:      mode,
	}
}

func (s *Service) Mode() config.SearchMode {
	return s.mode
}

func (s *Service) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, models.ErrNotConfigured
	}

	log.Info().
		Str("tool", "gemini_websearch").
		Str("mode", string(s.mode)).
		Bool("has_language", req.Language != "").
		Int("extra_fields", len(req.ExtraFields)).
		Msg("Running grounded web search")

	genReq := gemini.GenerateRequest{
		Model:     s.model,
		Prompt:    buildPrompt(req, s.mode),
		Grounding: true,
	}
	if s.mode == config.SearchModeStrict {
		genReq.ResponseSchema = resultsSchema()
	}

	resp, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		log.Error().Err(err).Str("tool", "gemini_websearch").Msg("Error in gemini_websearch")
		return nil, &models.UpstreamError{Op: "web search", Err: err}
	}

	results, extraction, ok := parseResults(resp.Text)
	if ok {
		log.Debug().
			Str("strategy", extraction.Strategy.String()).
			Int("results", len(results)).
			Int("grounding_sources", len(resp.Sources)).
			Msg("Parsed web search results")
		return &models.SearchResponse{Results: results}, nil
	}

	log.Warn().
		Str("status", extraction.Status.String()).
		AnErr("parse_error", extraction.Err).
		Str("mode", string(s.mode)).
		Msg("Web search output did not contain a results array")

	if s.mode == config.SearchModeStrict {
		return nil, fmt.Errorf("web search failed: %w (%s)", models.ErrMalformedOutput, extraction.Status)
	}

	return &models.SearchResponse{Results: []models.SearchResult{fallbackResult(req.Query, resp.Text)}}, nil
}

// parseResults accepts {"results": [...]} or a bare array of records.
func parseResults(text string) ([]models.SearchResult, extract.Result, bool) {
	extraction := extract.JSON(text)
	if !extraction.OK() {
		return nil, extraction, false
	}

	var raw json.RawMessage
	switch v := extraction.Value.(type) {
	case []interface{}:
		raw = json.RawMessage(extraction.Candidate)
	case map[string]interface{}:
		inner, exists := v["results"]
		if !exists {
			extraction.Status = extract.ParseError
			extraction.Err = fmt.Errorf("missing 'results' field")
			return nil, extraction, false
		}
		encoded, err := json.Marshal(inner)
		if err != nil {
			extraction.Status = extract.ParseError
			extraction.Err = err
			return nil, extraction, false
		}
		raw = encoded
	default:
		extraction.Status = extract.ParseError
		extraction.Err = fmt.Errorf("unexpected JSON type %T", v)
		return nil, extraction, false
	}

	var results []models.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		extraction.Status = extract.ParseError
		extraction.Err = fmt.Errorf("invalid results array: %w", err)
		return nil, extraction, false
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	return results, extraction, true
}

func fallbackResult(query, text string) models.SearchResult {
	publisher := fallbackPublisher
	return models.SearchResult{
		Source:      fallbackSource,
		Publisher:   &publisher,
		Title:       "Search results for: " + query,
		Description: truncate(text, descriptionLimit),
		Image:       "",
		URL:         "",
	}
}

// truncate cuts on rune boundaries and marks the cut with "...".
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
