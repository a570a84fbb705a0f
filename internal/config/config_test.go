package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns default when env not set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "returns env value when set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "whitespace counts as unset",
			key:          "TEST_KEY_3",
			defaultValue: "default",
			envValue:     "   ",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			assert.Equal(t, tt.want, GetEnvOrDefault(tt.key, tt.defaultValue))
		})
	}
}

func TestGetGeminiConfig(t *testing.T) {
	t.Run("defaults without credential", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GEMINI_MODEL", "")
		t.Setenv("GEMINI_SEARCH_MODE", "")

		cfg := GetGeminiConfig()
		assert.False(t, cfg.Configured())
		assert.Equal(t, DefaultGeminiModel, cfg.Model)
		assert.Equal(t, SearchModeLenient, cfg.SearchMode)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "key")
		t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
		t.Setenv("GEMINI_SEARCH_MODE", "STRICT")

		cfg := GetGeminiConfig()
		assert.True(t, cfg.Configured())
		assert.Equal(t, "gemini-2.5-flash", cfg.Model)
		assert.Equal(t, SearchModeStrict, cfg.SearchMode)
	})
}

func TestParseSearchMode(t *testing.T) {
	assert.Equal(t, SearchModeStrict, ParseSearchMode(" strict "))
	assert.Equal(t, SearchModeLenient, ParseSearchMode("lenient"))
	assert.Equal(t, SearchModeLenient, ParseSearchMode("bogus"))
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("TOOL_TIMEOUT", "30s")

	cfg := GetServerConfig()
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.ToolTimeout)

	t.Setenv("MCP_TRANSPORT", "carrier-pigeon")
	t.Setenv("TOOL_TIMEOUT", "soon")
	cfg = GetServerConfig()
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Zero(t, cfg.ToolTimeout)
}

func TestGetRateLimitConfig(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_TOOLS", "5")

	cfg := GetRateLimitConfig("tools")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.MaxHits)
	assert.Equal(t, time.Minute, cfg.Window)

	t.Setenv("RATELIMIT_TOOLS", "many")
	assert.Equal(t, 60, GetRateLimitConfig("tools").MaxHits)

	unknown := GetRateLimitConfig("nope")
	assert.False(t, unknown.Enabled)
}

func TestJWTSecretManagement(t *testing.T) {
	originalSecret := GetJWTSecret()

	t.Run("set and restore JWT secret", func(t *testing.T) {
		restore := SetJWTSecret([]byte("test-secret"))
		assert.Equal(t, "test-secret", string(GetJWTSecret()))
		assert.True(t, AuthEnabled())

		restore()
		assert.Equal(t, string(originalSecret), string(GetJWTSecret()))
	})

	t.Run("empty secret disables auth", func(t *testing.T) {
		restore := SetJWTSecret(nil)
		defer restore()
		assert.False(t, AuthEnabled())
	})
}

func TestJWTSecretFromDotenv(t *testing.T) {
	// Register cleanup, then unset so godotenv does not treat the key as already present.
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	assert.False(t, AuthEnabled())

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=supersecret\n"), 0o600))
	require.NoError(t, godotenv.Load(envFile))

	assert.True(t, AuthEnabled())
	assert.Equal(t, "supersecret", string(GetJWTSecret()))

	t.Run("override wins over environment", func(t *testing.T) {
		restore := SetJWTSecret(nil)
		defer restore()
		assert.False(t, AuthEnabled())
	})
	assert.True(t, AuthEnabled())
}

func TestLoadToolsConfig(t *testing.T) {
	cfg, err := LoadToolsConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Tools, 2)

	search, ok := cfg.Find("gemini_websearch")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"query"}, search.Parameters["required"])

	call, ok := cfg.Find("gemini_call")
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"prompt", "outputSchema"}, call.Parameters["required"])

	_, ok = cfg.Find("ask_kapa")
	assert.False(t, ok)
}

func TestParseToolsConfigRejectsBadDefinitions(t *testing.T) {
	_, err := ParseToolsConfig([]byte(`{"tools":[{"name":"","parameters":{"type":"object"}}]}`))
	assert.Error(t, err)

	_, err = ParseToolsConfig([]byte(`{"tools":[{"name":"x","parameters":{"type":"string"}}]}`))
	assert.Error(t, err)

	_, err = ParseToolsConfig([]byte(`not json`))
	assert.Error(t, err)
}
