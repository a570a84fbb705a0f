package handlers

import (
	"net/http"

	v1mware "github.com/deepgram/gemini-mcp/internal/api/v1/middleware"
	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/infrastructure/redis"
	"github.com/deepgram/gemini-mcp/internal/services"
	"github.com/deepgram/gemini-mcp/internal/services/oauth"
	"github.com/deepgram/gemini-mcp/pkg/ratelimit"
	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the health check, the v1 tool API and, when given,
// the MCP streamable HTTP handler at /mcp.
func RegisterRoutes(router *mux.Router, services *services.Services, serverConfig config.ServerConfig, mcpHandler http.Handler) {
	router.Use(v1mware.RequestID)
	router.Use(v1mware.RateLimit(rateLimitFor("global", services.GetRedisService())))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(services.GeminiConfigured(), services.GetRedisService(), w, r)
	}).Methods("GET")

	toolService := services.GetToolService()
	toolsLimit := v1mware.RateLimit(rateLimitFor("tools", services.GetRedisService()))

	// Protected v1 routes (require auth when JWT_SECRET is set)
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(v1mware.RequireAuth())
	v1.Use(v1mware.RequireScope(oauth.ScopeToolsCall))

	v1.HandleFunc("/tools", func(w http.ResponseWriter, r *http.Request) {
		HandleListTools(toolService, w, r)
	}).Methods("GET")
	v1.Handle("/tools/{name}", toolsLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleToolCall(toolService, serverConfig.ToolTimeout, w, r)
	}))).Methods("POST")

	if mcpHandler != nil {
		protected := v1mware.RequireAuth()(v1mware.RequireScope(oauth.ScopeToolsCall)(toolsLimit(mcpHandler)))
		router.PathPrefix("/mcp").Handler(protected)
	}
}

func rateLimitFor(key string, redisService *redis.Service) (config.RateLimitConfig, ratelimit.Store) {
	cfg := config.GetRateLimitConfig(key)
	if redisService != nil {
		return cfg, redis.NewLimiter(redisService, key, cfg.Window, cfg.MaxHits)
	}
	return cfg, ratelimit.NewLimiter(cfg.Window, cfg.MaxHits)
}
