package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/bootstrap"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/chat"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/config"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation/gemini"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/ratelimit"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/retrieval/chroma"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/server"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/translation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; generation requests will return canned fallbacks")
	}

	limiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	backend := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.APIVersion, limiter)
	retriever := chroma.NewClient(chroma.Config{
		URL:         cfg.Chroma.URL,
		APIKey:      cfg.Chroma.APIKey,
		Tenant:      cfg.Chroma.Tenant,
		Database:    cfg.Chroma.Database,
		Collections: cfg.Chroma.Collections,
	})

	engine := translation.NewEngine(backend, translation.NewCache(), translation.Config{
		SmallBatchLimit:    cfg.Translation.SmallBatchLimit,
		ChunkSize:          cfg.Translation.ChunkSize,
		ItemBatchSize:      cfg.Translation.ItemBatchSize,
		InterLanguageDelay: cfg.Translation.InterLanguageDelay(),
	})
	chatService := chat.NewService(retriever, backend, cfg.RAG.TopK)
	handler := server.NewHandler(chatService, engine, limiter)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: corsMiddleware(cfg.Server.CORS.AllowedOrigins, h2c.NewHandler(handler.Routes(), &http2.Server{})),
	}

	app := bootstrap.New()
	app.AddShutdownHook(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	})

	return app.Run(context.Background(), func(ctx context.Context) error {
		slog.Info("starting server", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("NYAYASAHAYAK_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] || allowed["*"] {
			if allowed["*"] {
				origin = "*"
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
