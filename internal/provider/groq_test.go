package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroqClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultGroqConfig("test-key")
	config.BaseURL = server.URL
	config.Timeout = 5 * time.Second
	return NewGroqClientWithConfig(config)
}

func groqOK(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}, "finish_reason": "stop"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGroqClientGenerate(t *testing.T) {
	t.Run("returns first choice content", func(t *testing.T) {
		client := newTestGroqClient(t, groqOK("ROLE\nYou are an expert."))

		text, err := client.Generate(context.Background(), "system", "user", Options{Temperature: 0.3, MaxTokens: 2000})
		require.NoError(t, err)
		assert.Equal(t, "ROLE\nYou are an expert.", text)
	})

	t.Run("sends system and user messages", func(t *testing.T) {
		var got groqRequest
		client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			groqOK("ok")(w, r)
		})

		_, err := client.Generate(context.Background(), "sys prompt", "user prompt", Options{Temperature: 0.45})
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "sys prompt", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "user prompt", got.Messages[1].Content)
		assert.InDelta(t, 0.45, got.Temperature, 1e-9)
	})

	t.Run("retries on 500 then succeeds", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				http.Error(w, "internal", http.StatusInternalServerError)
				return
			}
			groqOK("recovered")(w, r)
		})

		text, err := client.Generate(context.Background(), "s", "u", Options{})
		require.NoError(t, err)
		assert.Equal(t, "recovered", text)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry on 400", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "bad request", http.StatusBadRequest)
		})

		_, err := client.Generate(context.Background(), "s", "u", Options{})
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors on empty choices", func(t *testing.T) {
		client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		})

		_, err := client.Generate(context.Background(), "s", "u", Options{})
		assert.ErrorContains(t, err, "no choices")
	})

	t.Run("unconfigured client refuses", func(t *testing.T) {
		client := NewGroqClient("")
		assert.False(t, client.Available())

		_, err := client.Generate(context.Background(), "s", "u", Options{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}
