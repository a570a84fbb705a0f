package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/pkg/logger"
	"google.golang.org/genai"
)

// GenerateRequest is a single-shot generation with optional grounding and
// an optional structural constraint on the output.
type GenerateRequest struct {
	Model          string
	Prompt         string
	Grounding      bool
	ResponseSchema *genai.Schema
}

type GenerateResponse struct {
	Text         string
	FinishReason string
	Sources      []Source
}

// Source is a web page the answer was grounded on.
type Source struct {
	Title string
	URI   string
}

// Generator is the remote model call the tools depend on.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type Service struct {
	client *genai.Client
	model  string
}

// NewService returns nil when no API key is configured.
func NewService(ctx context.Context, cfg config.GeminiConfig) (*Service, error) {
	logger.Info(logger.SERVICE, "Initialising Gemini service")

	if !cfg.Configured() {
		logger.Warn(logger.SERVICE, "Gemini service not configured - GEMINI_API_KEY missing")
		return nil, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}

	return &Service{
		client: client,
		model:  model,
	}, nil
}

func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = s.model
	}

	genConfig := &genai.GenerateContentConfig{}
	if req.Grounding {
		genConfig.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ResponseSchema != nil {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = req.ResponseSchema
	}

	logger.Debug(logger.GEMINI, "Generating content - model: %s, grounding: %t, schema: %t",
		model, req.Grounding, req.ResponseSchema != nil)

	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	result := collectResponse(resp)
	logger.Debug(logger.GEMINI, "Generation finished - reason: %s, chars: %d, sources: %d",
		result.FinishReason, len(result.Text), len(result.Sources))

	return result, nil
}

// collectResponse joins the non-thought text parts of the first candidate.
func collectResponse(resp *genai.GenerateContentResponse) *GenerateResponse {
	result := &GenerateResponse{}
	if resp == nil || len(resp.Candidates) == 0 {
		return result
	}

	candidate := resp.Candidates[0]
	result.FinishReason = string(candidate.FinishReason)

	if candidate.Content != nil {
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
		result.Text = text.String()
	}

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			result.Sources = append(result.Sources, Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}

	return result
}
