package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/services/oauth"
	"github.com/deepgram/gemini-mcp/pkg/httpext"
)

type contextKey string

const (
	tokenValidationKey contextKey = "tokenValidation"
	requestIDKey       contextKey = "requestID"
)

// RequireAuth checks HS256 bearer tokens against JWT_SECRET. With no secret
// configured the surface is open and requests pass straight through.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := config.GetJWTSecret()
			if len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := oauth.ExtractToken(r)
			if tokenString == "" {
				httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			validation := oauth.ValidateToken(tokenString, secret)
			if !validation.Valid {
				httpext.JsonError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), tokenValidationKey, &validation)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects tokens without scope. It is a no-op when auth is disabled.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.AuthEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			validation := GetTokenValidation(r)
			if validation == nil {
				log.Error().
					Str("path", r.URL.Path).
					Msg("Scope validation failed - missing token validation context")
				httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !validation.HasScope(scope) {
				log.Warn().
					Str("required_scope", scope).
					Strs("token_scopes", validation.Scopes).
					Str("path", r.URL.Path).
					Msg("Access denied - token missing required scope")
				httpext.JsonError(w, "Missing required scope", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetTokenValidation retrieves the token validation result from the request context
func GetTokenValidation(r *http.Request) *oauth.TokenValidationResult {
	if validation, ok := r.Context().Value(tokenValidationKey).(*oauth.TokenValidationResult); ok {
		return validation
	}
	return nil
}
