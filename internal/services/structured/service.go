package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/gemini"
	"github.com/deepgram/gemini-mcp/internal/services/extract"
	"github.com/deepgram/gemini-mcp/internal/services/validation"
	"github.com/rs/zerolog/log"
)

const schemaTrailer = `

Please respond with JSON that strictly adheres to this schema:
%s

Your response must be valid JSON that validates against the provided schema. Do not include any text outside the JSON response.
`

type Service struct {
	generator gemini.Generator
	model     string
}

// NewService builds the structured-call tool. A nil generator leaves the
// tool disabled: every call fails with ErrNotConfigured.
func NewService(generator gemini.Generator, cfg config.GeminiConfig) *Service {
	return &Service{
		generator: generator,
		model:     cfg.Model,
	}
}

// Call never fails on unparseable model text; that case yields a Diagnostic outcome.
func (s *Service) Call(ctx context.Context, req models.CallRequest) (*models.CallResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, models.ErrNotConfigured
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, models.InvalidArgument("%v", err)
	}

	log.Info().
		Str("tool", "gemini_call").
		Int("args", len(req.Args)).
		Msg("Running structured call")

	resp, err := s.generator.Generate(ctx, gemini.GenerateRequest{
		Model:  s.model,
		Prompt: prompt,
	})
	if err != nil {
		log.Error().Err(err).Str("tool", "gemini_call").Msg("Error in gemini_call")
		return nil, &models.UpstreamError{Op: "gemini call", Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	extraction := extract.JSON(text)
	if !extraction.OK() {
		log.Error().
			Str("status", extraction.Status.String()).
			AnErr("parse_error", extraction.Err).
			Str("raw_response", text).
			Msg("Failed to parse JSON response")

		return &models.CallResponse{Output: models.Diagnostic{
			Error:       models.ParseFailureMessage,
			RawResponse: text,
		}}, nil
	}

	log.Debug().Str("strategy", extraction.Strategy.String()).Msg("Parsed structured call output")
	return &models.CallResponse{Output: models.Success{Value: extraction.Value}}, nil
}

func buildPrompt(req models.CallRequest) (string, error) {
	var b strings.Builder
	b.WriteString(req.Prompt)

	if len(req.Args) > 0 {
		args, err := json.MarshalIndent(req.Args, "", "  ")
		if err != nil {
			return "", fmt.Errorf("args are not serialisable: %w", err)
		}
		b.WriteString("\n\nInput data: ")
		b.Write(args)
	}

	schema, err := json.MarshalIndent(req.OutputSchema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("outputSchema is not serialisable: %w", err)
	}
	b.WriteString(fmt.Sprintf(schemaTrailer, schema))

	return b.String(), nil
}
