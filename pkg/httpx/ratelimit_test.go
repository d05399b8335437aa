package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestAccountKeyExtractor(t *testing.T) {
	t.Run("empty without principal", func(t *testing.T) {
		require.Equal(t, "", httpx.AccountKeyExtractor(requestFrom("10.0.0.1:1")))
	})

	t.Run("uses the principal", func(t *testing.T) {
		req := requestFrom("10.0.0.1:1")
		req = req.WithContext(httpx.WithPrincipal(req.Context(), 42, "USER"))
		require.Equal(t, "account:42", httpx.AccountKeyExtractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	extractor := httpx.CompositeKeyExtractor(":", httpx.AccountKeyExtractor, httpx.IPKeyExtractor)

	t.Run("combines multiple extractors", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req = req.WithContext(httpx.WithPrincipal(req.Context(), 7, "USER"))
		require.Equal(t, "account:7:192.168.1.1", extractor(req))
	})

	t.Run("skips empty values", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", extractor(requestFrom("192.168.1.1:12345")))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests under limit", func(t *testing.T) {
		limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 5,
			Window:            time.Second,
			Burst:             5,
		}, httpx.IPKeyExtractor)(okHandler)

		for i := range 5 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 3,
			Window:            time.Minute,
			Burst:             3,
		}, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 2,
			Window:            time.Minute,
			Burst:             2,
		}, httpx.IPKeyExtractor)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec1 := httptest.NewRecorder()
		limited.ServeHTTP(rec1, requestFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec1.Code)

		rec2 := httptest.NewRecorder()
		limited.ServeHTTP(rec2, requestFrom("192.168.1.2:12345"))
		require.Equal(t, http.StatusOK, rec2.Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 1,
			Window:            time.Minute,
			Burst:             1,
		}, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimitByAccount(t *testing.T) {
	limited := httpx.RateLimitByAccount(httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	})(okHandler)

	asAccount := func(id int64) *http.Request {
		req := requestFrom("192.168.1.1:12345")
		return req.WithContext(httpx.WithPrincipal(req.Context(), id, "USER"))
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, asAccount(1))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, asAccount(1))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Same IP, different account: separate bucket.
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, asAccount(2))
	require.Equal(t, http.StatusOK, rec.Code)

	// Anonymous callers fall back to the IP bucket.
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitProfiles(t *testing.T) {
	profiles := map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
	}

	for name, config := range profiles {
		t.Run(name, func(t *testing.T) {
			require.Greater(t, config.RequestsPerWindow, 0)
			require.Greater(t, config.Window, time.Duration(0))
			require.Greater(t, config.Burst, 0)
		})
	}

	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "7")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "nope")

	got := httpx.ParseRateLimitFromEnv("TEST", httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             3,
	})

	require.Equal(t, 7, got.RequestsPerWindow)
	require.Equal(t, 30*time.Second, got.Window)
	require.Equal(t, 3, got.Burst) // invalid values keep the default
}

func TestRateLimitResponse(t *testing.T) {
	limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	}, httpx.IPKeyExtractor)(okHandler)

	rec1 := httptest.NewRecorder()
	limited.ServeHTTP(rec1, requestFrom("192.168.1.1:12345"))
	require.Equal(t, http.StatusOK, rec1.Code)

	rec2 := httptest.NewRecorder()
	limited.ServeHTTP(rec2, requestFrom("192.168.1.1:12345"))

	require.Equal(t, http.StatusTooManyRequests, rec2.Code)
	require.NotEmpty(t, rec2.Header().Get("Retry-After"))
	require.Equal(t, "1", rec2.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec2.Header().Get("X-RateLimit-Window"))

	var body httpx.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec2.Body).Decode(&body))
	require.Equal(t, httpx.RateLimitedCode, body.Status)
	require.Equal(t, httpx.RateLimitedMessage, body.Message)
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
		RequestsPerWindow: 1000000,
		Window:            time.Minute,
		Burst:             1000,
	}, httpx.IPKeyExtractor)(okHandler)

	req := requestFrom("192.168.1.1:12345")

	b.ResetTimer()
	for b.Loop() {
		limited.ServeHTTP(httptest.NewRecorder(), req)
	}
}
