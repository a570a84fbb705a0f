package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/services"
	"github.com/deepgram/gemini-mcp/internal/services/oauth"
	"github.com/deepgram/gemini-mcp/internal/services/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainServer(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")
	restore := config.SetJWTSecret(nil)
	defer restore()

	svcs, err := services.NewServices(nil, config.GeminiConfig{}, nil)
	require.NoError(t, err)

	server := httptest.NewServer(setupRouter(svcs, config.ServerConfig{}, tools.NewMCPServer(svcs.GetToolService(), "test")))
	defer server.Close()

	t.Run("health endpoint", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, false, body["gemini_configured"])
	})

	t.Run("tool call without credential fails fast", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/v1/tools/gemini_call", "application/json",
			strings.NewReader(`{"prompt":"hi","outputSchema":{"type":"object"}}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("mcp endpoint is mounted", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/mcp")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRunToken(t *testing.T) {
	t.Run("signs with JWT_SECRET", func(t *testing.T) {
		restore := config.SetJWTSecret([]byte("token-secret"))
		defer restore()

		var out bytes.Buffer
		require.NoError(t, runToken([]string{"-subject", "ci", "-scopes", "tools:call, extra", "-ttl", "1h"}, &out))

		result := oauth.ValidateToken(strings.TrimSpace(out.String()), []byte("token-secret"))
		require.True(t, result.Valid)
		assert.Equal(t, "ci", result.Subject)
		assert.True(t, result.HasScope(oauth.ScopeToolsCall))
		assert.True(t, result.HasScope("extra"))
	})

	t.Run("requires a secret", func(t *testing.T) {
		restore := config.SetJWTSecret(nil)
		defer restore()

		var out bytes.Buffer
		assert.EqualError(t, runToken(nil, &out), "JWT_SECRET is not set")
		assert.Empty(t, out.String())
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		restore := config.SetJWTSecret([]byte("token-secret"))
		defer restore()

		var out bytes.Buffer
		assert.Error(t, runToken([]string{"-nope"}, &out))
	})
}

func TestRunReturnsServerErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("SERVER_ADDR", "127.0.0.1:-1")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server stopped with error")
}
