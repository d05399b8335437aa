package http

import (
	"net/http"
	"strings"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignIn exchanges a provider authorization code for a token pair.
//
//	@Summary		Sign in with an identity provider
//	@Description	Resolves the provider code, creating the account on first sign-in, and starts a new session.
//	@Description	Any previous refresh token of the account stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couplesdk.SignInRequest	true	"Provider (GOOGLE or KAKAO) and authorization code"
//	@Success		200		{object}	httpx.DataEnvelope{data=couplesdk.TokenResponse}
//	@Failure		400		{object}	httpx.ErrorEnvelope	"Malformed body or unknown provider"
//	@Failure		401		{object}	httpx.ErrorEnvelope	"Identity provider rejected the code"
//	@Failure		429		{object}	httpx.ErrorEnvelope	"Rate limited"
//	@Router			/api/auth/sign-in [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req couplesdk.SignInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Provider) == "" {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.SignIn(r.Context(), req.Provider, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, tokenResponse(pair))
}

// HandleRefresh rotates the refresh token.
//
//	@Summary		Refresh a session
//	@Description	Exchanges the current refresh token for a new pair. The presented token is single-use:
//	@Description	presenting a superseded token ends the session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		couplesdk.RefreshRequest	true	"Current refresh token"
//	@Success		200		{object}	httpx.DataEnvelope{data=couplesdk.TokenResponse}
//	@Failure		400		{object}	httpx.ErrorEnvelope	"Malformed body"
//	@Failure		401		{object}	httpx.ErrorEnvelope	"4002 expired or no session, 4003 invalid or reused token"
//	@Failure		429		{object}	httpx.ErrorEnvelope	"Rate limited"
//	@Router			/api/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req couplesdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		couplesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, tokenResponse(pair))
}

// HandleLogout ends the caller's session and revokes the presented access token.
//
//	@Summary		Log out
//	@Description	Deletes the refresh token and blacklists the access token until it expires.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.StatusEnvelope
//	@Failure		401	{object}	httpx.ErrorEnvelope	"Missing, invalid or revoked access token"
//	@Router			/api/auth/logout [delete].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())
	token, _ := httpx.BearerToken(r)

	if err := h.AuthService.Logout(r.Context(), p.AccountID, token); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteStatus(w)
}

func tokenResponse(pair domain.TokenPair) couplesdk.TokenResponse {
	return couplesdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}
