package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const DefaultKakaoAPIURL = "https://kapi.kakao.com/v2/user/me"

// KakaoPlaceholderEmail is recorded for Kakao accounts, which share no email.
const KakaoPlaceholderEmail = "test@test.com"

type KakaoConfig struct {
	ClientID    string
	RedirectURI string
	APIURL      string
	HTTPClient  *http.Client
}

// Kakao treats the presented code as a Kakao access token and reads the
// user id and nickname from the user API.
type Kakao struct {
	apiURL string
	client *http.Client
}

func NewKakao(cfg KakaoConfig) *Kakao {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultKakaoAPIURL
	}
	return &Kakao{apiURL: cfg.APIURL, client: defaultClient(cfg.HTTPClient)}
}

func (k *Kakao) Name() string { return ProviderKakao }

type kakaoUser struct {
	ID           json.Number `json:"id"`
	KakaoAccount struct {
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func (k *Kakao) Resolve(ctx context.Context, accessToken string) (Identity, error) {
	ctx = oidc.ClientContext(ctx, k.client)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.apiURL, nil)
	if err != nil {
		return Identity{}, providerError(ProviderKakao, "request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Identity{}, providerError(ProviderKakao, "user api", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Identity{}, providerError(ProviderKakao, "user api", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, providerError(ProviderKakao, "user api", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var user kakaoUser
	if err := json.Unmarshal(body, &user); err != nil {
		return Identity{}, providerError(ProviderKakao, "decode user", err)
	}
	if user.ID == "" {
		return Identity{}, providerError(ProviderKakao, "decode user", errors.New("missing id"))
	}

	return Identity{
		Provider:   ProviderKakao,
		ExternalID: user.ID.String(),
		Email:      KakaoPlaceholderEmail,
		Name:       user.KakaoAccount.Profile.Nickname,
	}, nil
}
