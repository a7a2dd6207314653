// Package chat implements the retrieval-augmented answer pipeline: message
// classification, context retrieval, constrained generation, and answer
// shaping.
package chat

import (
	"context"
	"log/slog"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/retrieval"
)

// Answer is the structured response for one chat request. It is created per
// request and never persisted.
type Answer struct {
	Text       string             `json:"text"`
	Sources    []retrieval.Source `json:"sources"`
	Confidence float64            `json:"confidence"`
	Metadata   map[string]any     `json:"metadata"`
}

// Service orchestrates one chat request: classify, retrieve, generate,
// post-process. All dependencies are injected; the service holds no
// per-request state.
type Service struct {
	retriever retrieval.Retriever
	backend   generation.Client
	topK      int
}

// NewService creates a chat service retrieving topK passages per question.
func NewService(retriever retrieval.Retriever, backend generation.Client, topK int) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		retriever: retriever,
		backend:   backend,
		topK:      topK,
	}
}

// Search performs retrieval only, for clients that need raw passages
// without a generated answer.
func (s *Service) Search(ctx context.Context, prompt string) retrieval.Result {
	return s.retriever.Query(ctx, prompt, s.topK, nil)
}

// Ask answers a legal question in the requested language. It never fails:
// every degraded path yields a readable message with sources and confidence.
func (s *Service) Ask(ctx context.Context, prompt, lang string) Answer {
	lang = language.Normalize(lang)

	if isGreeting(prompt) {
		return Answer{
			Text:       cannedResponse(kindGreeting, lang),
			Sources:    []retrieval.Source{},
			Confidence: 1.0,
			Metadata:   map[string]any{"language": lang, "type": "greeting"},
		}
	}

	rag := s.retriever.Query(ctx, prompt, s.topK, map[string]any{"language": lang})
	slog.Default().Info("retrieval completed",
		"contextLength", len(rag.Context),
		"sources", len(rag.Sources))

	if isNonLegal(prompt, rag.Context) {
		return Answer{
			Text:       cannedResponse(kindNonLegal, lang),
			Sources:    []retrieval.Source{},
			Confidence: 0.5,
			Metadata:   map[string]any{"language": lang, "type": "nonLegal"},
		}
	}

	if rag.Context == "" {
		return Answer{
			Text:       cannedResponse(kindNoContext, lang),
			Sources:    []retrieval.Source{},
			Confidence: rag.Confidence,
			Metadata:   map[string]any{"language": lang, "type": "noContext"},
		}
	}

	text, err := s.backend.Generate(ctx, buildAnswerPrompt(rag.Context, prompt, lang))
	if err != nil {
		// The answer still has to come from the retrieved context.
		slog.Default().Warn("generation failed, deriving answer from context",
			"language", lang,
			"error", err)
		return Answer{
			Text:       fallbackAnswer(rag.Context),
			Sources:    rag.Sources,
			Confidence: rag.Confidence,
			Metadata:   map[string]any{"language": lang, "type": "fallback"},
		}
	}

	return Answer{
		Text:       postProcess(text),
		Sources:    rag.Sources,
		Confidence: rag.Confidence,
		Metadata:   map[string]any{"language": lang},
	}
}
