package oauth

import (
	"context"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	DefaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	DefaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenURL     string
	UserInfoURL  string

	// HTTPClient is used for both the exchange and the userinfo call.
	HTTPClient *http.Client
}

// Google exchanges an authorization code for an access token and reads the
// user's subject, email and name from the userinfo endpoint.
type Google struct {
	oauthConfig *oauth2.Config
	userInfo    *oidc.Provider
	client      *http.Client
}

func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		return nil, errors.New("google oauth config missing required fields")
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultGoogleTokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = DefaultGoogleUserInfoURL
	}

	// Only the token and userinfo endpoints are used, so the provider is
	// built from static configuration instead of discovery.
	provider := (&oidc.ProviderConfig{
		TokenURL:    cfg.TokenURL,
		UserInfoURL: cfg.UserInfoURL,
	}).NewProvider(ctx)

	return &Google{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{oidc.ScopeOpenID, "profile", "email"},
		},
		userInfo: provider,
		client:   defaultClient(cfg.HTTPClient),
	}, nil
}

func (g *Google) Name() string { return ProviderGoogle }

func (g *Google) Resolve(ctx context.Context, code string) (Identity, error) {
	ctx = oidc.ClientContext(ctx, g.client)

	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return Identity{}, providerError(ProviderGoogle, "token exchange", err)
	}

	info, err := g.userInfo.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return Identity{}, providerError(ProviderGoogle, "userinfo", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}
	if err := info.Claims(&claims); err != nil {
		return Identity{}, providerError(ProviderGoogle, "userinfo claims", err)
	}
	if claims.Subject == "" {
		return Identity{}, providerError(ProviderGoogle, "userinfo", errors.New("missing sub"))
	}

	return Identity{
		Provider:   ProviderGoogle,
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
	}, nil
}
