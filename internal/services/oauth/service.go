package oauth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepgram/gemini-mcp/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

// ScopeToolsCall grants access to the tool endpoints.
const ScopeToolsCall = "tools:call"

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.Debug(logger.MIDDLEWARE, "No Authorization header found")
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		logger.Warn(logger.MIDDLEWARE, "Malformed Authorization header")
		return ""
	}

	return parts[1]
}

type TokenValidationResult struct {
	Valid     bool
	Subject   string
	ExpiresAt time.Time
	Scopes    []string
}

// HasScope reports whether the token carries scope.
func (r TokenValidationResult) HasScope(scope string) bool {
	for _, s := range r.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type CustomClaims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scp"`
}

func ValidateToken(tokenString string, secret []byte) TokenValidationResult {
	result := TokenValidationResult{Valid: false}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		logger.Warn(logger.MIDDLEWARE, "Failed to parse token: %v", err)
		return result
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		logger.Warn(logger.MIDDLEWARE, "Invalid token claims")
		return result
	}

	result.Valid = true
	result.Subject = claims.Subject
	result.Scopes = claims.Scopes
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result
}

// IssueToken signs an HS256 token carrying scopes. The token subcommand uses it
// to mint client credentials.
func IssueToken(secret []byte, subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scopes: scopes,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
