// Command precious serves the wiki frontend over HTTP and, optionally,
// exposes the read-only wiki tools over MCP stdio.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/preciouswiki/precious/frontend"
	"github.com/preciouswiki/precious/render"
	"github.com/preciouswiki/precious/wiki/sqlengine"
)

func main() {
	cfg := loadConfig()

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Credential store (users.db inside the wiki root).
	users, err := frontend.OpenStore(cfg.WikiRoot)
	if err != nil {
		slog.Error("open user store", "error", err)
		os.Exit(1)
	}
	defer users.Close()

	// Content engine.
	engine, err := sqlengine.Open(cfg.ContentDB)
	if err != nil {
		slog.Error("open content engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	// View layer.
	views, err := render.New()
	if err != nil {
		slog.Error("templates", "error", err)
		os.Exit(1)
	}

	svc, err := frontend.New(cfg, users, engine, views, logger)
	if err != nil {
		slog.Error("frontend service", "error", err)
		os.Exit(1)
	}

	// Optional MCP stdio surface.
	if env("MCP_TRANSPORT", "") == "stdio" {
		srv := mcp.NewServer(&mcp.Implementation{Name: "precious", Version: "1.0.0"}, nil)
		svc.RegisterMCP(srv)
		go func() {
			if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				slog.Error("MCP stdio", "error", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	slog.Info("wiki frontend listening", "addr", cfg.Listen, "wiki_root", cfg.WikiRoot)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional YAML config file, then applies environment
// overrides on top.
func loadConfig() *frontend.Config {
	cfg := &frontend.Config{}
	if path := env("CONFIG_FILE", ""); path != "" {
		loaded, err := frontend.LoadConfigFile(path)
		if err != nil {
			slog.Error("config file", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cfg.Listen = env("LISTEN", cfg.Listen)
	cfg.WikiRoot = env("WIKI_ROOT", cfg.WikiRoot)
	cfg.ContentDB = env("CONTENT_DB", cfg.ContentDB)
	cfg.SessionSecret = env("SESSION_SECRET", cfg.SessionSecret)
	cfg.AuthScheme = env("AUTH_SCHEME", cfg.AuthScheme)
	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)

	// frontend.New fills the remaining defaults; these two are needed
	// before the service exists.
	if cfg.WikiRoot == "" {
		cfg.WikiRoot = "."
	}
	if cfg.ContentDB == "" {
		cfg.ContentDB = "wiki.db"
	}
	return cfg
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
