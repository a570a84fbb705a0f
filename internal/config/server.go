package config

import (
	"strings"
	"time"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type ServerConfig struct {
	Transport   string
	Addr        string
	ToolTimeout time.Duration
}

func GetServerConfig() ServerConfig {
	transport := strings.ToLower(GetEnvOrDefault("MCP_TRANSPORT", TransportStdio))
	if transport != TransportHTTP {
		transport = TransportStdio
	}

	return ServerConfig{
		Transport:   transport,
		Addr:        GetEnvOrDefault("SERVER_ADDR", ":8080"),
		ToolTimeout: parseEnvDuration("TOOL_TIMEOUT", 0),
	}
}
