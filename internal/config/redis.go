package config

import (
	"github.com/deepgram/gemini-mcp/pkg/logger"
)

func GetRedisURL() string {
	logger.Debug(logger.CONFIG, "Attempting to retrieve Redis URL from environment")
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		logger.Debug(logger.CONFIG, "REDIS_URL not set - rate limits stay in memory")
	} else {
		logger.Info(logger.CONFIG, "Redis URL successfully loaded")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
