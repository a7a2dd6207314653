package server

import (
	"encoding/json"
	"net/http"
)

type chatRequest struct {
	Prompt     string `json:"prompt"`
	Language   string `json:"language"`
	SearchOnly bool   `json:"searchOnly"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Missing prompt", nil)
		return
	}

	ctx := r.Context()

	if req.SearchOnly {
		result := h.chatService.Search(ctx, req.Prompt)
		writeJSON(w, http.StatusOK, map[string]any{
			"results":    result.Sources,
			"confidence": result.Confidence,
		})
		return
	}

	answer := h.chatService.Ask(ctx, req.Prompt, req.Language)
	writeJSON(w, http.StatusOK, answer)
}
