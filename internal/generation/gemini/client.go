// Package gemini implements the generation backend against the Google
// Generative Language REST API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/ratelimit"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModels is the ordered fallback chain tried for every call. A model
// rejected by the backend advances the chain; any other failure stops it.
var DefaultModels = []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-flash"}

// Client calls the Gemini generateContent endpoint with rate limiting, a
// model-fallback chain, and bounded retries for transient failures.
type Client struct {
	httpClient       *resty.Client
	apiKey           string
	apiVersion       string
	models           []string
	limiter          *ratelimit.Limiter
	maxRetryAttempts uint
}

// Option adjusts optional client settings.
type Option func(*Client)

// WithBaseURL overrides the API host, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.httpClient.SetBaseURL(baseURL)
	}
}

// WithRetryAttempts sets how many times a transient failure is retried per
// model before the call is abandoned.
func WithRetryAttempts(attempts uint) Option {
	return func(c *Client) {
		c.maxRetryAttempts = attempts
	}
}

// NewClient creates a Gemini client. The model override, when non-empty, is
// tried before the default fallback chain. All calls await a slot on limiter
// before going out.
func NewClient(apiKey, modelOverride, apiVersion string, limiter *ratelimit.Limiter, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(defaultBaseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetTimeout(30 * time.Second)

	if apiVersion == "" {
		apiVersion = "v1beta"
	}
	models := DefaultModels
	if modelOverride != "" {
		models = append([]string{modelOverride}, DefaultModels...)
	}

	client := &Client{
		httpClient:       httpClient,
		apiKey:           apiKey,
		apiVersion:       apiVersion,
		models:           models,
		limiter:          limiter,
		maxRetryAttempts: 2,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// isRetryableError determines if a transient failure should trigger a retry
// against the same model.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// Generate implements generation.Client. It awaits a rate-limiter slot,
// records the admission, then walks the model-fallback chain.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", generation.ErrNoAPIKey
	}

	if err := c.limiter.AwaitSlot(ctx); err != nil {
		return "", fmt.Errorf("limiter.AwaitSlot > %w", err)
	}
	c.limiter.Record(time.Now())

	return c.tryModels(ctx, c.models, prompt)
}

// tryModels attempts each model in order, short-circuiting on success.
// Only a model-not-found rejection continues to the next candidate.
func (c *Client) tryModels(ctx context.Context, models []string, prompt string) (string, error) {
	var lastErr error
	for _, model := range models {
		text, err := c.generateWithModel(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "response error 404") {
			return "", err
		}
		slog.Default().Warn("generation model rejected, trying next",
			"model", model,
			"error", err)
		lastErr = fmt.Errorf("%w: %s", generation.ErrModelNotFound, model)
	}
	if lastErr == nil {
		lastErr = generation.ErrModelNotFound
	}
	return "", fmt.Errorf("all generation models failed > %w", lastErr)
}

func (c *Client) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			text, err := c.generateOnce(ctx, model, prompt)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (c *Client) generateOnce(ctx context.Context, model, prompt string) (string, error) {
	requestBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(requestBody).
		SetResult(&generateContentResponse{}).
		Post(fmt.Sprintf("/%s/models/%s:generateContent", c.apiVersion, model))
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*generateContentResponse)
	if responseBody == nil || len(responseBody.Candidates) == 0 {
		return "", fmt.Errorf("empty response candidates: %s", response.String())
	}
	parts := responseBody.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("empty candidate parts: %s", response.String())
	}
	return strings.TrimSpace(parts[0].Text), nil
}
