package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/internal/couple/service"
	"github.com/calendar-couple/couple/pkg/couplesdk"
	"github.com/calendar-couple/couple/pkg/jwtx"
	"github.com/calendar-couple/couple/pkg/slogx"
)

// apiError maps a service error onto the wire catalogue. It returns nil for
// errors the client should only ever see as a server error.
func apiError(err error) *couplesdk.APIError {
	switch {
	// Token failures. Specific wrappers first: both wrap a jwtx kind.
	case errors.Is(err, service.ErrNoActiveSession):
		return couplesdk.ErrRefreshExpired
	case errors.Is(err, service.ErrRevokedToken):
		return couplesdk.ErrRevokedToken
	case errors.Is(err, jwtx.ErrExpired):
		return couplesdk.ErrExpiredToken
	case errors.Is(err, jwtx.ErrMalformed):
		return couplesdk.ErrMalformedToken
	case errors.Is(err, jwtx.ErrUnsupported):
		return couplesdk.ErrUnsupportedToken
	case errors.Is(err, jwtx.ErrInvalidSig):
		return couplesdk.ErrSignatureInvalid
	case errors.Is(err, jwtx.ErrInvalidToken):
		return couplesdk.ErrInvalidToken

	// Account state.
	case errors.Is(err, service.ErrAccountLocked):
		return couplesdk.ErrBannedAccount
	case errors.Is(err, service.ErrAccountExpired):
		return couplesdk.ErrAccountExpired
	case errors.Is(err, service.ErrCredentialsExpired):
		return couplesdk.ErrCredentialsExpired
	case errors.Is(err, service.ErrAccountDisabled):
		return couplesdk.ErrWithdrawnAccount
	case errors.Is(err, service.ErrAccountNotFound):
		return couplesdk.ErrAccountNotFound

	// Identity providers.
	case errors.Is(err, oauth.ErrUnknownProvider):
		return couplesdk.ErrUnknownProvider
	case errors.Is(err, oauth.ErrIdentityProvider):
		return couplesdk.ErrUnauthorized

	// Couples and calendars.
	case errors.Is(err, service.ErrInvalidInvitationCode):
		return couplesdk.ErrInvalidInvitationCode
	case errors.Is(err, service.ErrSelfInvitation):
		return couplesdk.ErrSelfInvitation
	case errors.Is(err, service.ErrAlreadyCoupledInviter):
		return couplesdk.ErrAlreadyCoupledInviter
	case errors.Is(err, service.ErrAlreadyCoupled):
		return couplesdk.ErrAlreadyCoupled
	case errors.Is(err, service.ErrNoCouple):
		return couplesdk.ErrNoCouple
	case errors.Is(err, service.ErrCalendarNotFound):
		return couplesdk.ErrCalendarNotFound
	case errors.Is(err, service.ErrInvalidRequest):
		return couplesdk.ErrInvalidRequest
	}
	return nil
}

// writeError writes the envelope for err. Unmapped errors are logged at
// error level and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	apiErr := apiError(err)
	if apiErr == nil {
		log.Error("request failed", slog.Any("error", err))
		couplesdk.ErrServerError.WriteError(w)
		return
	}

	log.Warn("request rejected", slog.Int("code", apiErr.Code), slog.Any("error", err))
	apiErr.WriteError(w)
}
