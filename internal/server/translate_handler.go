package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
)

type translateRequest struct {
	Payload  any    `json:"payload"`
	Language string `json:"language"`
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Payload == nil {
		writeError(w, http.StatusBadRequest, "Missing payload", nil)
		return
	}

	target := language.Normalize(req.Language)

	var translated any
	if text, ok := req.Payload.(string); ok {
		translated = h.engine.TranslateString(r.Context(), text, target)
	} else {
		translated = h.engine.TranslateJSON(r.Context(), req.Payload, target)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"translated": translated,
		"language":   target,
	})
}

type translateBatchRequest struct {
	Items     []any  `json:"items"`
	Language  string `json:"language"`
	BatchSize int    `json:"batchSize"`
}

func (h *Handler) handleTranslateBatch(w http.ResponseWriter, r *http.Request) {
	var req translateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Missing or empty items array", nil)
		return
	}

	target := language.Normalize(req.Language)
	translated := h.engine.TranslateBatch(r.Context(), req.Items, target, req.BatchSize)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"translated": translated,
		"language":   target,
		"count":      len(translated),
	})
}

type translateStaticRequest struct {
	Content any `json:"content"`
}

func (h *Handler) handleTranslateStatic(w http.ResponseWriter, r *http.Request) {
	var req translateStaticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "Missing content", nil)
		return
	}

	translations := h.engine.PreTranslateStatic(r.Context(), req.Content)

	languages := make([]string, 0, len(translations))
	for _, lang := range language.Supported {
		if _, ok := translations[lang]; ok {
			languages = append(languages, lang)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"translations": translations,
		"languages":    languages,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"cacheSize":          h.engine.Cache().Size(),
		"rateLimitStatus":    h.limiter.Status(),
		"supportedLanguages": language.Supported,
	})
}

func (h *Handler) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	clearedAt := h.engine.Cache().Clear()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"cleared":   true,
		"timestamp": clearedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"languages": language.All(),
	})
}
