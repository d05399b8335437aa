package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type rejectWriter struct{}

func (rejectWriter) WriteError(w http.ResponseWriter) {
	httpx.WriteErrorEnvelope(w, http.StatusUnauthorized, 4010, "denied")
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing", "", "", false},
		{"lower case scheme", "bearer abc", "", false},
		{"no space", "Bearerabc", "", false},
		{"basic", "Basic dXNlcjpwYXNz", "", false},
		{"empty credential", "Bearer   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, ok := httpx.BearerToken(req)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.token, token)
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	t.Parallel()

	_, ok := httpx.PrincipalFromContext(context.Background())
	require.False(t, ok)

	ctx := httpx.WithPrincipal(context.Background(), 12, "ADMIN")
	p, ok := httpx.PrincipalFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, httpx.Principal{AccountID: 12, Role: "ADMIN"}, p)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	h := httpx.Chain(okHandler, httpx.RequireAuth(rejectWriter{}))

	t.Run("rejects anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body httpx.ErrorEnvelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, 4010, body.Status)
	})

	t.Run("passes authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(httpx.WithPrincipal(req.Context(), 1, "USER"))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestEnvelopes(t *testing.T) {
	t.Parallel()

	t.Run("data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.WriteData(rec, map[string]string{"accessToken": "a"})

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		require.JSONEq(t, `{"data":{"accessToken":"a"},"status":200}`, rec.Body.String())
	})

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.WriteStatus(rec)
		require.JSONEq(t, `{"status":200}`, rec.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.WriteErrorEnvelope(rec, http.StatusUnauthorized, 4002, "토큰이 만료되었습니다")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"message":"토큰이 만료되었습니다","status":4002}`, rec.Body.String())
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		Code string `json:"code"`
	}

	t.Run("valid", func(t *testing.T) {
		var dst body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"c1","extra":true}`))
		require.NoError(t, httpx.DecodeJSON(req, &dst))
		require.Equal(t, "c1", dst.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		var dst body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":`))
		require.Error(t, httpx.DecodeJSON(req, &dst))
	})

	t.Run("trailing data", func(t *testing.T) {
		var dst body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"a"}{"code":"b"}`))
		require.Error(t, httpx.DecodeJSON(req, &dst))
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := httpx.Chain(okHandler, httpx.CORS(httpx.SplitOrigins("https://app.example.com, https://admin.example.com")))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/calendars", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("wildcard", func(t *testing.T) {
		wildcard := httpx.Chain(okHandler, httpx.CORS([]string{"*"}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://whoever.example.com")
		rec := httptest.NewRecorder()
		wildcard.ServeHTTP(rec, req)

		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
