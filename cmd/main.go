package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/deepgram/gemini-mcp/internal/api/v1/handlers"
	"github.com/deepgram/gemini-mcp/internal/config"
	"github.com/deepgram/gemini-mcp/internal/services"
	"github.com/deepgram/gemini-mcp/internal/services/oauth"
	"github.com/deepgram/gemini-mcp/internal/services/tools"
	"github.com/deepgram/gemini-mcp/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	// A missing .env is normal in production; real environment variables win.
	_ = godotenv.Load()
	logger.Init()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "token" {
		err = runToken(os.Args[2:], os.Stdout)
	} else {
		err = run()
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Exiting")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverConfig := config.GetServerConfig()

	svcs, err := services.InitializeServices(ctx, config.GetGeminiConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if err := svcs.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close services")
		}
	}()

	mcpServer := tools.NewMCPServer(svcs.GetToolService(), version)

	switch serverConfig.Transport {
	case config.TransportHTTP:
		err = runHTTP(ctx, serverConfig, setupRouter(svcs, serverConfig, mcpServer))
	default:
		log.Info().Str("transport", config.TransportStdio).Msg("Serving MCP")
		err = mcpServer.Run(ctx, &mcp.StdioTransport{})
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

// runToken prints a bearer token for the HTTP surface signed with JWT_SECRET.
func runToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "gemini-mcp-client", "token subject")
	scopes := fs.String("scopes", oauth.ScopeToolsCall, "comma-separated scopes")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret := config.GetJWTSecret()
	if len(secret) == 0 {
		return errors.New("JWT_SECRET is not set")
	}

	var scopeList []string
	for _, scope := range strings.Split(*scopes, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopeList = append(scopeList, scope)
		}
	}

	token, err := oauth.IssueToken(secret, *subject, scopeList, *ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}

func setupRouter(svcs *services.Services, serverConfig config.ServerConfig, mcpServer *mcp.Server) *mux.Router {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	r := mux.NewRouter()
	handlers.RegisterRoutes(r, svcs, serverConfig, mcpHandler)
	return r
}

func runHTTP(ctx context.Context, serverConfig config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              serverConfig.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", serverConfig.Addr).Str("transport", config.TransportHTTP).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
