// Package translation implements the multilingual translation engine:
// content-addressed caching, structural extraction and rebuild of JSON
// values, and batched calls to the generation backend.
//
// Every operation degrades to the original, untranslated content when the
// backend fails; callers never receive an error in place of content.
package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
)

// Config tunes the engine's batching behavior.
type Config struct {
	// SmallBatchLimit is the largest string list translated in one call.
	SmallBatchLimit int
	// ChunkSize is the per-call chunk size for larger string lists.
	ChunkSize int
	// ItemBatchSize is the default group size for TranslateBatch.
	ItemBatchSize int
	// InterLanguageDelay spaces out languages during bulk pre-translation so
	// a long-running job stays under the rate budget.
	InterLanguageDelay time.Duration
}

// DefaultConfig mirrors the free-tier budget the service runs under.
func DefaultConfig() Config {
	return Config{
		SmallBatchLimit:    20,
		ChunkSize:          15,
		ItemBatchSize:      5,
		InterLanguageDelay: 3 * time.Second,
	}
}

// Engine orchestrates extraction, batched generation calls, caching, and
// structural rebuild. The cache and the backend's rate limiter are the only
// shared state; everything else is request-scoped.
type Engine struct {
	backend generation.Client
	cache   *Cache
	cfg     Config
}

// NewEngine creates a translation engine over the given backend and cache.
func NewEngine(backend generation.Client, cache *Cache, cfg Config) *Engine {
	if cfg.SmallBatchLimit <= 0 {
		cfg.SmallBatchLimit = 20
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 15
	}
	if cfg.ItemBatchSize <= 0 {
		cfg.ItemBatchSize = 5
	}
	return &Engine{
		backend: backend,
		cache:   cache,
		cfg:     cfg,
	}
}

// Cache exposes the engine's cache for stats and operational clearing.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// TranslateString translates a single text into lang. English and empty
// inputs are identity passes; backend failures fall back to the original.
func (e *Engine) TranslateString(ctx context.Context, text, lang string) string {
	if text == "" || lang == "en" {
		return text
	}
	if cached, ok := e.cache.Get(text, lang); ok {
		if s, ok := cached.(string); ok {
			return s
		}
	}

	prompt := fmt.Sprintf(`Translate this text to %s.
Rules:
- Use simple, clear language for Indian users
- Preserve legal/technical terms accurately
- Return ONLY the translated text, nothing else

Text: %s`, language.Label(lang), text)

	translated, err := e.backend.Generate(ctx, prompt)
	if err != nil || translated == "" {
		slog.Default().Warn("string translation failed, returning original",
			"language", lang,
			"error", err)
		return text
	}
	translated = strings.TrimSpace(translated)
	e.cache.Put(text, lang, translated)
	return translated
}

// TranslateJSON translates every translatable leaf string of a decoded JSON
// value into lang, preserving structure and skip-listed fields. The input is
// never mutated.
func (e *Engine) TranslateJSON(ctx context.Context, value any, lang string) any {
	if value == nil || lang == "en" {
		return value
	}
	if cached, ok := e.cache.Get(value, lang); ok {
		return cached
	}

	extraction := Extract(value)
	if len(extraction.Strings) == 0 {
		return value
	}

	translated := e.translateStrings(ctx, extraction.Strings, lang)
	rebuilt := Rebuild(value, extraction.Paths, translated)
	e.cache.Put(value, lang, rebuilt)
	return rebuilt
}

// translateStrings translates a string list as one logical batch, chunking
// when it exceeds the small-batch limit. Output order matches input order.
func (e *Engine) translateStrings(ctx context.Context, texts []string, lang string) []string {
	if len(texts) == 0 {
		return nil
	}
	if len(texts) <= e.cfg.SmallBatchLimit {
		return e.translateChunk(ctx, texts, lang)
	}

	results := make([]string, 0, len(texts))
	for start := 0; start < len(texts); start += e.cfg.ChunkSize {
		end := start + e.cfg.ChunkSize
		if end > len(texts) {
			end = len(texts)
		}
		results = append(results, e.translateChunk(ctx, texts[start:end], lang)...)
	}
	return results
}

// translateChunk issues one generation call for a chunk of strings, with a
// per-item cache pre-check. Every input index gets a decided output: missing
// tail lines pad with the original string, extra lines are dropped.
func (e *Engine) translateChunk(ctx context.Context, texts []string, lang string) []string {
	results := make([]string, len(texts))
	var pending []string
	var pendingIndexes []int

	for i, text := range texts {
		if cached, ok := e.cache.Get(text, lang); ok {
			if s, ok := cached.(string); ok {
				results[i] = s
				continue
			}
		}
		pending = append(pending, text)
		pendingIndexes = append(pendingIndexes, i)
	}
	if len(pending) == 0 {
		return results
	}

	var numbered strings.Builder
	for i, text := range pending {
		fmt.Fprintf(&numbered, "%d. %s\n", i+1, text)
	}
	prompt := fmt.Sprintf(`Translate each line to %s. Return ONLY the translations, one per line, in the same order.

Rules:
- Simple, clear language for Indian citizens
- Preserve legal/technical terms
- One translation per line
- No numbering, no extra text

Texts to translate:
%s`, language.Label(lang), strings.TrimRight(numbered.String(), "\n"))

	raw, err := e.backend.Generate(ctx, prompt)
	if err != nil {
		slog.Default().Warn("chunk translation failed, returning originals",
			"language", lang,
			"count", len(pending),
			"error", err)
		for i, index := range pendingIndexes {
			results[index] = pending[i]
		}
		return results
	}

	lines := parseTranslatedLines(raw)
	for i, index := range pendingIndexes {
		translated := pending[i]
		if i < len(lines) && lines[i] != "" {
			translated = lines[i]
		}
		results[index] = translated
		e.cache.Put(pending[i], lang, translated)
	}
	return results
}

// parseTranslatedLines splits a model response into one translation per line,
// stripping any leading numbering the model added despite instructions.
func parseTranslatedLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(numberedPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// TranslateBatch translates a list of whole, possibly structured items by
// grouping them into batches of batchSize and issuing one JSON-in, JSON-out
// generation call per batch. A failed batch falls back to its original items.
func (e *Engine) TranslateBatch(ctx context.Context, items []any, lang string, batchSize int) []any {
	if len(items) == 0 || lang == "en" {
		return items
	}
	if batchSize <= 0 {
		batchSize = e.cfg.ItemBatchSize
	}

	results := make([]any, len(items))
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		e.translateItemBatch(ctx, items[start:end], results[start:end], lang)
	}
	return results
}

func (e *Engine) translateItemBatch(ctx context.Context, batch []any, results []any, lang string) {
	var pending []any
	var pendingIndexes []int
	for i, item := range batch {
		if cached, ok := e.cache.Get(item, lang); ok {
			results[i] = cached
			continue
		}
		pending = append(pending, item)
		pendingIndexes = append(pendingIndexes, i)
	}
	if len(pending) == 0 {
		return
	}

	fallback := func() {
		for i, index := range pendingIndexes {
			results[index] = pending[i]
		}
	}

	serialized, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		slog.Default().Warn("batch serialization failed, returning originals", "error", err)
		fallback()
		return
	}

	prompt := fmt.Sprintf(`Translate ALL human-readable strings in this JSON array to %s.

RULES:
1. Return a JSON array with the SAME structure
2. Translate string values only (not keys, numbers, URLs)
3. Use simple language for Indian users
4. Return ONLY valid JSON array

JSON:
%s`, language.Label(lang), serialized)

	raw, err := e.backend.Generate(ctx, prompt)
	if err != nil {
		slog.Default().Warn("batch translation failed, returning originals",
			"language", lang,
			"count", len(pending),
			"error", err)
		fallback()
		return
	}

	var translated []any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &translated); err != nil || len(translated) < len(pending) {
		slog.Default().Warn("batch response parse failed, returning originals",
			"language", lang,
			"error", err)
		fallback()
		return
	}

	for i, index := range pendingIndexes {
		results[index] = translated[i]
		e.cache.Put(pending[i], lang, translated[i])
	}
}

// stripCodeFences removes markdown code fences a model may wrap JSON in.
func stripCodeFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// PreTranslateStatic translates content into every supported language,
// keyed by language code with "en" holding the source. A single language's
// failure substitutes the original content for that language only. Languages
// are spaced by the configured delay to respect the rate budget during a
// long-running bulk job.
func (e *Engine) PreTranslateStatic(ctx context.Context, content any) map[string]any {
	translations := map[string]any{"en": content}

	for _, lang := range language.Supported {
		if lang == "en" {
			continue
		}
		if ctx.Err() != nil {
			translations[lang] = content
			continue
		}

		translations[lang] = e.TranslateJSON(ctx, content, lang)
		slog.Default().Info("pre-translation completed", "language", lang)

		if e.cfg.InterLanguageDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.cfg.InterLanguageDelay):
			}
		}
	}
	return translations
}
