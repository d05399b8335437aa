package service

import (
	"errors"
	"fmt"

	"github.com/calendar-couple/couple/pkg/jwtx"
)

// Authentication failures.
var (
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoActiveSession means no refresh token is stored for the account. It
	// is reported as an expired token.
	ErrNoActiveSession = fmt.Errorf("%w: no active session", jwtx.ErrExpired)

	// ErrRefreshMismatch means the presented refresh token is not the stored
	// one, either replayed after rotation or beaten by a concurrent refresh.
	ErrRefreshMismatch = fmt.Errorf("%w: refresh token mismatch", jwtx.ErrInvalidToken)

	ErrRevokedToken = fmt.Errorf("%w: token revoked", jwtx.ErrInvalidToken)

	ErrAccountLocked      = errors.New("account locked")
	ErrAccountExpired     = errors.New("account expired")
	ErrCredentialsExpired = errors.New("credentials expired")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Request validation and domain failures.
var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrCalendarNotFound    = errors.New("calendar not found")
	ErrInvalidCalendarType = fmt.Errorf("%w: unknown calendar type", ErrInvalidRequest)

	ErrInvalidInvitationCode   = errors.New("invalid invitation code")
	ErrSelfInvitation          = errors.New("cannot invite yourself")
	ErrAlreadyCoupledInviter   = errors.New("inviter already belongs to a couple")
	ErrAlreadyCoupled          = errors.New("account already belongs to a couple")
	ErrNoCouple                = errors.New("account has no couple")
	ErrInvitationCodeExhausted = errors.New("could not allocate a unique invitation code")
)
