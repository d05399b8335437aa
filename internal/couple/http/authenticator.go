package http

import (
	"context"
	"net/http"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/slogx"
)

// Authenticator is satisfied by *service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (domain.Principal, error)
}

// RequestAuthenticator resolves bearer tokens into a principal. Requests
// without an "Authorization: Bearer" header pass through anonymous; route
// middleware decides whether that is acceptable. A bearer token that fails
// any check ends the request with an error envelope.
type RequestAuthenticator struct {
	Auth Authenticator
}

// Middleware implements httpx.Middleware.
func (a *RequestAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := httpx.BearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		p, err := a.Auth.Authenticate(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = slogx.WithAccount(ctx, p.AccountID)
		ctx = httpx.WithPrincipal(ctx, p.AccountID, string(p.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
