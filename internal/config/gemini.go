package config

import (
	"strings"

	"github.com/deepgram/gemini-mcp/pkg/logger"
)

const DefaultGeminiModel = "gemini-2.0-flash-exp"

// SearchMode selects how the web search tool treats output it cannot parse.
type SearchMode string

const (
	// SearchModeLenient replaces unparseable output with a single fallback result.
	SearchModeLenient SearchMode = "lenient"
	// SearchModeStrict constrains the output with a response schema and
	// reports unparseable output as an error.
	SearchModeStrict SearchMode = "strict"
)

type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	SearchMode SearchMode
}

// Configured reports whether a credential is present.
func (c GeminiConfig) Configured() bool {
	return c.APIKey != ""
}

func GetGeminiAPIKey() string {
	value := GetEnvOrDefault("GEMINI_API_KEY", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "GEMINI_API_KEY not set in environment variables")
	} else {
		logger.Debug(logger.CONFIG, "Gemini API key successfully loaded")
	}
	return value
}

func GetGeminiConfig() GeminiConfig {
	return GeminiConfig{
		APIKey:     GetGeminiAPIKey(),
		Model:      GetEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		BaseURL:    GetEnvOrDefault("GEMINI_BASE_URL", ""),
		SearchMode: ParseSearchMode(GetEnvOrDefault("GEMINI_SEARCH_MODE", string(SearchModeLenient))),
	}
}

// ParseSearchMode falls back to lenient for anything it does not recognise.
func ParseSearchMode(value string) SearchMode {
	switch SearchMode(strings.ToLower(strings.TrimSpace(value))) {
	case SearchModeStrict:
		return SearchModeStrict
	case SearchModeLenient:
		return SearchModeLenient
	default:
		logger.Warn(logger.CONFIG, "Unknown search mode %q, using %s", value, SearchModeLenient)
		return SearchModeLenient
	}
}
