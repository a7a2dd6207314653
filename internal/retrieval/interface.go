// Package retrieval defines the vector-passage retrieval contract used to
// ground chat answers in the legal-document corpus.
package retrieval

import "context"

//go:generate mockgen -source=interface.go -destination=../mocks/retrieval/mock_retriever.go -package=mock_retrieval

// Source is one retrieved passage with its ranking metadata.
type Source struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Distance   *float64       `json:"distance,omitempty"`
	Collection string         `json:"collection,omitempty"`
}

// Result is the outcome of one retrieval query. It is request-scoped and
// never persisted. Context is the double-newline concatenation of the
// passage texts; Confidence is a best-effort relevance signal in [0.3, 1.0]
// with 0.5 marking "nothing found / retrieval unavailable".
type Result struct {
	Sources    []Source       `json:"sources"`
	Context    string         `json:"context"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}

// Passages returns the retrieved passage texts in rank order.
func (r Result) Passages() []string {
	passages := make([]string, 0, len(r.Sources))
	for _, source := range r.Sources {
		passages = append(passages, source.Text)
	}
	return passages
}

// Retriever queries the passage corpus. Query never fails: retrieval is a
// best-effort enrichment signal, so any initialization or backend error
// degrades to an empty Result with confidence 0.5.
type Retriever interface {
	Query(ctx context.Context, text string, topK int, meta map[string]any) Result
}
