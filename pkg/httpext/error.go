package httpext

import (
	"encoding/json"
	"net/http"

	"github.com/deepgram/gemini-mcp/pkg/logger"
)

// ErrorResponse represents a standardised JSON error response
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// JsonError writes a JSON error response with the specified status code
func JsonError(w http.ResponseWriter, message string, code int) {
	JsonErrorWithDetails(w, code, ErrorResponse{Error: message})
}

// JsonErrorWithDetails writes a detailed JSON error response with optional description and URI
func JsonErrorWithDetails(w http.ResponseWriter, code int, errResp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error(logger.HANDLER, "Failed to encode error response: %v", err)
	}
}

// JsonResponse writes v as JSON with the specified status code
func JsonResponse(w http.ResponseWriter, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error(logger.HANDLER, "Failed to encode response: %v", err)
		JsonError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.Warn(logger.HANDLER, "Failed to write response: %v", err)
	}
}
