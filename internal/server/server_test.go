package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"promptc/internal/config"
	"promptc/internal/optimize"
	"promptc/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// opencensus (pulled in via google.golang.org/genai) starts a
		// background worker in package init that never exits.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	if mutate != nil {
		mutate(cfg)
	}
	return New(optimize.NewSystem(provider.Unavailable{}, nil), cfg, nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleOptimize(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	t.Run("returns structured output", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"build a todo app maybe in react or vue"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var resp optimize.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "coding_technical", resp.Framework.ID)
		assert.True(t, resp.Valid)
		assert.Contains(t, resp.OptimizedPrompt, "OUTPUT CONTRACT")
	})

	t.Run("explicit framework", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"brainstorm product names","framework":"creative_ideation"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp optimize.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "creative_ideation", resp.Framework.ID)
	})

	t.Run("rejects non json body", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", "not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing prompt", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "prompt", resp.Field)
	})

	t.Run("rejects short prompt", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"ab"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects oversized prompt", func(t *testing.T) {
		long := strings.Repeat("a", 10001)
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects script injection", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"hello <script>alert(1)</script>"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed framework id", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"build a thing","framework":"not-valid!"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "framework", resp.Field)
	})

	t.Run("get is not allowed", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/optimize", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleFrameworks(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	t.Run("lists all", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/frameworks", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Frameworks []optimize.FrameworkSummary `json:"frameworks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Frameworks, 7)
		assert.Equal(t, "coding_technical", resp.Frameworks[0].ID)
	})

	t.Run("details by id", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/frameworks/creative_ideation", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var summary optimize.FrameworkSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, "creative_ideation", summary.ID)
		assert.NotEmpty(t, summary.TriggerKeywords)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/frameworks/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.DynamicAvailable)
}

func TestCORS(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight succeeds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/optimize", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is not method matched away", func(t *testing.T) {
		// Routes register with method patterns; OPTIONS must still be
		// answered by the CORS layer, not a mux 405.
		for _, path := range []string{"/optimize", "/frameworks", "/frameworks/creative_ideation", "/health"} {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST", "path %s", path)
		}
	})

	t.Run("simple cross origin post carries headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(`{"prompt":"build a thing"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiting(t *testing.T) {
	handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimitPerMinute = 1
		cfg.Server.RateLimitBurst = 1
	}).Handler()

	first := doJSON(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestApplyConfig(t *testing.T) {
	srv := newTestServer(t, nil)
	handler := srv.Handler()

	ok := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"build a thing"}`)
	require.Equal(t, http.StatusOK, ok.Code)

	tightened := config.DefaultConfig()
	tightened.Limits.MaxPromptLength = 5
	srv.ApplyConfig(tightened)

	rejected := doJSON(t, handler, http.MethodPost, "/optimize", `{"prompt":"build a thing"}`)
	assert.Equal(t, http.StatusBadRequest, rejected.Code)
}

func TestValidatePromptInput(t *testing.T) {
	limits := config.LimitsConfig{MaxPromptLength: 100, MinPromptLength: 3}

	t.Run("strips control characters", func(t *testing.T) {
		prompt, _, err := validatePromptInput("build\x00 a\x07 thing", "", limits)
		require.NoError(t, err)
		assert.Equal(t, "build a thing", prompt)
	})

	t.Run("keeps newlines and tabs", func(t *testing.T) {
		prompt, _, err := validatePromptInput("build\na\tthing", "", limits)
		require.NoError(t, err)
		assert.Equal(t, "build\na\tthing", prompt)
	})

	t.Run("normalizes framework case", func(t *testing.T) {
		_, fw, err := validatePromptInput("build a thing", " CODING_TECHNICAL ", limits)
		require.NoError(t, err)
		assert.Equal(t, "coding_technical", fw)
	})

	t.Run("template injection is rejected", func(t *testing.T) {
		_, _, err := validatePromptInput("hello {{ config }}", "", limits)
		assert.Error(t, err)
	})
}
