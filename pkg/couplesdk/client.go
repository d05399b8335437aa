package couplesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints of the API and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignIn exchanges a provider authorization code (Google) or access token
// (Kakao) for a token pair and wraps it in a Session.
func (c *SDKClient) SignIn(ctx context.Context, provider, code string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/sign-in", "", SignInRequest{
		Code:     code,
		Provider: provider,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := decodeData[TokenResponse](resp)
	if err != nil {
		return nil, err
	}
	return c.NewSessionFromTokens(tokens.AccessToken, tokens.RefreshToken), nil
}

// Refresh rotates a refresh token. The presented token is unusable afterwards.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/refresh", "", RefreshRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := decodeData[TokenResponse](resp)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// NewSessionFromTokens builds a Session from a stored token pair.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service and its stores are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
