// Package oauth resolves provider authorization codes into external
// identities. Resolvers return identity facts only; account creation and
// session handling belong to the service layer.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderGoogle = "GOOGLE"
	ProviderKakao  = "KAKAO"
)

var (
	ErrUnknownProvider = errors.New("oauth: unknown provider")

	// ErrIdentityProvider wraps every upstream failure. Callers treat it as
	// opaque.
	ErrIdentityProvider = errors.New("oauth: identity provider failure")
)

// DefaultHTTPTimeout bounds each call to a provider.
const DefaultHTTPTimeout = 10 * time.Second

// Identity is what a provider knows about the signing-in user.
type Identity struct {
	Provider   string
	ExternalID string
	Email      string
	Name       string
}

// Resolver turns an authorization code (or, for some providers, an access
// token) into an Identity.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, code string) (Identity, error)
}

// Registry looks resolvers up by provider name.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry registers resolvers by their upper-cased name. Later entries
// replace earlier ones with the same name.
func NewRegistry(list ...Resolver) *Registry {
	m := make(map[string]Resolver, len(list))
	for _, r := range list {
		m[strings.ToUpper(r.Name())] = r
	}
	return &Registry{resolvers: m}
}

// Get returns the resolver for provider.
func (r *Registry) Get(provider string) (Resolver, error) {
	res, ok := r.resolvers[strings.ToUpper(provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return res, nil
}

// Resolve dispatches code to the named provider.
func (r *Registry) Resolve(ctx context.Context, provider, code string) (Identity, error) {
	res, err := r.Get(provider)
	if err != nil {
		return Identity{}, err
	}
	return res.Resolve(ctx, code)
}

func providerError(provider, step string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrIdentityProvider, strings.ToLower(provider), step, err)
}

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: DefaultHTTPTimeout}
}
