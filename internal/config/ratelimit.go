package config

import (
	"time"

	"github.com/deepgram/gemini-mcp/pkg/logger"
)

type RateLimitConfig struct {
	Key     string
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := parseEnvBool("RATELIMIT_ENABLED", false)

	configs := map[string]RateLimitConfig{
		"global": {
			Key:     "global",
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_GLOBAL", 1000), // 1000 requests per minute globally
			Window:  time.Minute,
		},
		"tools": {
			Key:     "tools",
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_TOOLS", 60), // 60 tool calls per minute
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	logger.Warn(logger.CONFIG, "No rate limit config found for key: %s", key)
	return RateLimitConfig{Key: key, Enabled: false}
}
