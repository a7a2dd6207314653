// Package server exposes the chat and translation services over a JSON HTTP
// API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/chat"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/ratelimit"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/translation"
)

// Handler bundles the process-wide services behind the HTTP surface.
type Handler struct {
	chatService *chat.Service
	engine      *translation.Engine
	limiter     *ratelimit.Limiter
}

// NewHandler creates the HTTP handler set over the injected services.
func NewHandler(chatService *chat.Service, engine *translation.Engine, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		chatService: chatService,
		engine:      engine,
		limiter:     limiter,
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("POST /translate", h.handleTranslate)
	mux.HandleFunc("POST /translate/batch", h.handleTranslateBatch)
	mux.HandleFunc("POST /translate/static", h.handleTranslateStatic)
	mux.HandleFunc("GET /translate/stats", h.handleStats)
	mux.HandleFunc("POST /translate/clear-cache", h.handleClearCache)
	mux.HandleFunc("GET /translate/languages", h.handleLanguages)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	return recoverMiddleware(mux)
}

// recoverMiddleware turns an unexpected panic into a service-unavailable
// response instead of crashing the process.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Default().Error("request panicked",
					"path", r.URL.Path,
					"panic", recovered)
				writeError(w, http.StatusInternalServerError, "Service unavailable. Check server logs.", recovered)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, detail any) {
	body := map[string]any{"error": message}
	if detail != nil {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
