package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/generation"
	"github.com/chikoo0907/Legal-Aid-sub000/internal/ratelimit"
)

func candidateResponse(text string) generateContentResponse {
	return generateContentResponse{
		Candidates: []candidate{
			{Content: content{Parts: []part{{Text: text}}}},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "", "v1beta", ratelimit.New(100, time.Minute),
		WithBaseURL(server.URL),
		WithRetryAttempts(0),
	)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClient_Generate(t *testing.T) {
	t.Run("success on the first model", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var reqBody generateContentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
			require.Len(t, reqBody.Contents, 1)
			assert.Equal(t, "translate this", reqBody.Contents[0].Parts[0].Text)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(candidateResponse("  अनुवाद  "))
		})

		got, err := client.Generate(context.Background(), "translate this")
		require.NoError(t, err)
		assert.Equal(t, "अनुवाद", got)
	})

	t.Run("404 advances the fallback chain", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				assert.Contains(t, r.URL.Path, "gemini-2.0-flash")
				w.WriteHeader(http.StatusNotFound)
				return
			}
			assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(candidateResponse("answer"))
		})

		got, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "answer", got)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("all models rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrModelNotFound)
		assert.Contains(t, err.Error(), "all generation models failed")
	})

	t.Run("non-404 error stops the chain", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "response error 400")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("server error is retried on the same model", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(candidateResponse("recovered"))
		}))
		t.Cleanup(server.Close)

		client := NewClient("test-key", "", "v1beta", ratelimit.New(100, time.Minute),
			WithBaseURL(server.URL),
			WithRetryAttempts(1),
		)
		t.Cleanup(func() {
			_ = client.Close()
		})

		got, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "recovered", got)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewClient("", "", "v1beta", ratelimit.New(100, time.Minute))
		_, err := client.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, generation.ErrNoAPIKey)
	})

	t.Run("model override is tried first", func(t *testing.T) {
		var firstPath string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if firstPath == "" {
				firstPath = r.URL.Path
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(candidateResponse("ok"))
		})
		client.models = append([]string{"gemini-custom"}, DefaultModels...)

		_, err := client.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "/v1beta/models/gemini-custom:generateContent", firstPath)
	})

	t.Run("empty candidates is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(generateContentResponse{})
		})

		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response candidates")
	})
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "timeout", err: errors.New("read: i/o timeout"), want: true},
		{name: "server error", err: errors.New("response error 503: overloaded"), want: true},
		{name: "rate limited", err: errors.New("response error 429: quota"), want: true},
		{name: "not found", err: errors.New("response error 404: no such model"), want: false},
		{name: "bad request", err: errors.New("response error 400: invalid"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
