// Package chroma implements passage retrieval against a Chroma vector store,
// either Chroma Cloud (API key + tenant) or a local server.
package chroma

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"resty.dev/v3"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/retrieval"
)

const cloudBaseURL = "https://api.trychroma.com"

// Config selects the Chroma backend and the collections to search.
// When APIKey and Tenant are set, the cloud endpoint is used; otherwise the
// local URL is used with the default tenant and database.
type Config struct {
	URL         string
	APIKey      string
	Tenant      string
	Database    string
	Collections []string
}

// Client queries one or more named passage collections. Collections are
// initialized lazily on first use and cached for the process lifetime.
type Client struct {
	httpClient *resty.Client
	tenant     string
	database   string
	names      []string

	mu          sync.Mutex
	collections map[string]string // name -> collection id
}

// NewClient creates a retrieval client from cfg.
func NewClient(cfg Config) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(20 * time.Second)

	tenant := cfg.Tenant
	database := cfg.Database
	if cfg.APIKey != "" && cfg.Tenant != "" {
		httpClient.SetBaseURL(cloudBaseURL)
		httpClient.SetHeader("X-Chroma-Token", cfg.APIKey)
		if database == "" {
			database = "Nyayasahayak"
		}
	} else {
		url := cfg.URL
		if url == "" {
			url = "http://localhost:8000"
		}
		httpClient.SetBaseURL(url)
		tenant = "default_tenant"
		database = "default_database"
	}

	names := cfg.Collections
	if len(names) == 0 {
		names = []string{"legal", "legal-knowledge-base"}
	}

	return &Client{
		httpClient:  httpClient,
		tenant:      tenant,
		database:    database,
		names:       dedupe(names),
		collections: make(map[string]string),
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

type collectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type queryRequest struct {
	QueryTexts []string `json:"query_texts"`
	NResults   int      `json:"n_results"`
	Include    []string `json:"include"`
}

type queryResponse struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

func (c *Client) collectionsPath() string {
	return fmt.Sprintf("/api/v2/tenants/%s/databases/%s/collections", c.tenant, c.database)
}

// collectionID resolves a collection name to its id, creating the collection
// if it does not exist yet. Results are cached.
func (c *Client) collectionID(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	if id, ok := c.collections[name]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{"name": name, "get_or_create": true}).
		SetResult(&collectionResponse{}).
		Post(c.collectionsPath())
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	collection := response.Result().(*collectionResponse)
	if collection == nil || collection.ID == "" {
		return "", fmt.Errorf("empty collection response: %s", response.String())
	}

	c.mu.Lock()
	c.collections[name] = collection.ID
	c.mu.Unlock()
	return collection.ID, nil
}

// Query implements retrieval.Retriever. It spreads topK across the configured
// collections, merges results by ascending distance, and never returns an
// error: any failure degrades to an empty result with confidence 0.5.
func (c *Client) Query(ctx context.Context, text string, topK int, meta map[string]any) retrieval.Result {
	metadata := map[string]any{"collections": c.names}
	for key, value := range meta {
		metadata[key] = value
	}
	lang, _ := metadata["language"].(string)
	if lang == "" {
		lang = "en"
		metadata["language"] = lang
	}
	metadata["languageLabel"] = language.ShortLabel(lang)

	empty := retrieval.Result{Confidence: 0.5, Metadata: metadata}
	if text == "" {
		return empty
	}
	if topK <= 0 {
		topK = 5
	}

	perCollectionK := int(math.Ceil(float64(topK) / float64(len(c.names))))
	if perCollectionK < 1 {
		perCollectionK = 1
	}

	var sources []retrieval.Source
	for _, name := range c.names {
		collected, err := c.queryCollection(ctx, name, text, perCollectionK)
		if err != nil {
			slog.Default().Error("retrieval query failed",
				"collection", name,
				"error", err)
			continue
		}
		sources = append(sources, collected...)
	}

	sort.SliceStable(sources, func(i, j int) bool {
		di, dj := math.Inf(1), math.Inf(1)
		if sources[i].Distance != nil {
			di = *sources[i].Distance
		}
		if sources[j].Distance != nil {
			dj = *sources[j].Distance
		}
		return di < dj
	})
	if len(sources) > topK {
		sources = sources[:topK]
	}

	if len(sources) == 0 {
		return empty
	}

	var contextParts []string
	for _, source := range sources {
		contextParts = append(contextParts, source.Text)
	}

	return retrieval.Result{
		Sources:    sources,
		Context:    joinContext(contextParts),
		Confidence: confidence(sources),
		Metadata:   metadata,
	}
}

func joinContext(parts []string) string {
	out := ""
	for i, part := range parts {
		if i > 0 {
			out += "\n\n"
		}
		out += part
	}
	return out
}

// confidence maps the best (smallest) distance to [0.3, 0.95]; passages
// without distances score a flat 0.75.
func confidence(sources []retrieval.Source) float64 {
	for _, source := range sources {
		if source.Distance != nil {
			score := 1 / (1 + *source.Distance)
			return math.Max(0.3, math.Min(0.95, score))
		}
	}
	return 0.75
}

func (c *Client) queryCollection(ctx context.Context, name, text string, nResults int) ([]retrieval.Source, error) {
	id, err := c.collectionID(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("collectionID(%s) > %w", name, err)
	}

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(queryRequest{
			QueryTexts: []string{text},
			NResults:   nResults,
			Include:    []string{"documents", "metadatas", "distances"},
		}).
		SetResult(&queryResponse{}).
		Post(c.collectionsPath() + "/" + id + "/query")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	body := response.Result().(*queryResponse)
	if body == nil || len(body.Documents) == 0 {
		return nil, nil
	}

	docs := body.Documents[0]
	sources := make([]retrieval.Source, 0, len(docs))
	for i, doc := range docs {
		if doc == "" {
			continue
		}
		source := retrieval.Source{
			Text:       doc,
			Collection: name,
		}
		if len(body.IDs) > 0 && i < len(body.IDs[0]) {
			source.ID = body.IDs[0][i]
		} else {
			source.ID = fmt.Sprintf("%d", i)
		}
		if len(body.Metadatas) > 0 && i < len(body.Metadatas[0]) {
			source.Metadata = body.Metadatas[0][i]
		}
		if len(body.Distances) > 0 && i < len(body.Distances[0]) {
			distance := body.Distances[0][i]
			source.Distance = &distance
		}
		sources = append(sources, source)
	}
	return sources, nil
}

// Add upserts passages into a named collection. Used by the corpus ingest
// job; unlike Query this surfaces errors so the operator sees failed loads.
func (c *Client) Add(ctx context.Context, collection string, ids, documents []string, metadatas []map[string]any) error {
	if len(ids) != len(documents) {
		return fmt.Errorf("ids and documents length mismatch: %d != %d", len(ids), len(documents))
	}
	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return fmt.Errorf("collectionID(%s) > %w", collection, err)
	}

	body := map[string]any{
		"ids":       ids,
		"documents": documents,
	}
	if len(metadatas) == len(documents) {
		body["metadatas"] = metadatas
	}

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.collectionsPath() + "/" + id + "/upsert")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return nil
}
