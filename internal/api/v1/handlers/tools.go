package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/redis"
	"github.com/deepgram/gemini-mcp/internal/services/tools"
	"github.com/deepgram/gemini-mcp/pkg/httpext"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Tool arguments are small JSON objects; anything larger is a client bug.
const maxRequestBytes = 1 << 20

// HandleListTools returns the tool definitions
func HandleListTools(toolService *tools.Service, w http.ResponseWriter, r *http.Request) {
	httpext.JsonResponse(w, http.StatusOK, map[string]interface{}{
		"tools": toolService.GetTools(),
	})
}

// HandleToolCall runs the tool named in the path with the request body as arguments
func HandleToolCall(toolService *tools.Service, timeout time.Duration, w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	name := mux.Vars(r)["name"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read tool call body")
		httpext.JsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		log.Warn().Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info().
		Str("tool", name).
		Str("client_ip", r.RemoteAddr).
		Msg("Received tool call request")

	start := time.Now()
	output, err := toolService.GetToolExecutor().Execute(ctx, name, body)
	if err != nil {
		status, message := statusForError(err)
		log.Error().Err(err).Str("tool", name).Int("status", status).Msg("Tool call failed")
		httpext.JsonErrorWithDetails(w, status, httpext.ErrorResponse{
			Error:            message,
			ErrorDescription: err.Error(),
		})
		return
	}

	httpext.JsonResponse(w, http.StatusOK, output)

	log.Info().
		Str("tool", name).
		Dur("duration", time.Since(start)).
		Int("status", http.StatusOK).
		Msg("Tool call processed successfully")
}

func statusForError(err error) (int, string) {
	var upstream *models.UpstreamError

	switch {
	case errors.Is(err, models.ErrUnknownTool):
		return http.StatusNotFound, "unknown_tool"
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, models.ErrNotConfigured):
		return http.StatusServiceUnavailable, "not_configured"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "upstream_failure"
	case errors.Is(err, models.ErrMalformedOutput):
		return http.StatusBadGateway, "malformed_model_output"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// HandleHealth reports liveness, whether Gemini is configured and, when a
// Redis rate-limit backend is in use, whether it answers.
func HandleHealth(geminiConfigured bool, redisService *redis.Service, w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":            "ok",
		"gemini_configured": geminiConfigured,
	}

	if redisService != nil {
		body["redis"] = "ok"
		if err := redisService.Ping(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Redis health check failed")
			body["redis"] = "unreachable"
		}
	}

	httpext.JsonResponse(w, http.StatusOK, body)
}
