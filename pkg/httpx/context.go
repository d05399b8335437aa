package httpx

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	ctxKeyAccountID ctxKey = "account_id"
	ctxKeyRole      ctxKey = "role"
)

// BearerPrefix is the exact Authorization scheme prefix we accept.
const BearerPrefix = "Bearer "

// Principal is the authenticated caller attached to a request.
type Principal struct {
	AccountID int64
	Role      string
}

// ErrorWriter writes a complete error response.
type ErrorWriter interface {
	WriteError(w http.ResponseWriter)
}

// BearerToken returns the credential of an "Authorization: Bearer <token>"
// header. Any other shape, including a lower-case scheme, reports false.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, BearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authz[len(BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// WithPrincipal attaches the authenticated account to ctx.
func WithPrincipal(ctx context.Context, accountID int64, role string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAccountID, accountID)
	ctx = context.WithValue(ctx, ctxKeyRole, role)
	return ctx
}

// PrincipalFromContext returns the principal attached by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	id, ok := ctx.Value(ctxKeyAccountID).(int64)
	if !ok {
		return Principal{}, false
	}
	role, _ := ctx.Value(ctxKeyRole).(string)
	return Principal{AccountID: id, Role: role}, true
}

// RequireAuth rejects requests that reach it without a principal.
func RequireAuth(reject ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				reject.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
