package store

import (
	"context"
	"time"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

// Sessions keeps the single live refresh token of each account and the
// blacklist of logged out access tokens. Every entry expires on its own.
type Sessions interface {
	// SaveRefreshToken overwrites the account's refresh token, expiring it at
	// rec.ExpiresAt. It fails with ErrTokenAlreadyExpired when that instant
	// has passed.
	SaveRefreshToken(ctx context.Context, rec domain.RefreshTokenRecord) error

	// GetRefreshToken returns ErrNotFound when the account has no session.
	GetRefreshToken(ctx context.Context, accountID int64) (string, error)

	// DeleteRefreshToken is idempotent and reports whether a token existed.
	DeleteRefreshToken(ctx context.Context, accountID int64) (bool, error)

	// RotateRefreshToken replaces the stored token with next only while it
	// still equals expected. It reports false, leaving the store untouched,
	// when the stored token differs or a concurrent write won.
	RotateRefreshToken(ctx context.Context, expected string, next domain.RefreshTokenRecord) (bool, error)

	// BlacklistAccessToken revokes token for ttl.
	BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error

	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// InvitationCodes maps short-lived couple invitation codes to the inviter.
type InvitationCodes interface {
	// SaveInvitationCode stores code unless it is already taken, in which
	// case it reports false.
	SaveInvitationCode(ctx context.Context, code string, inviterID int64, ttl time.Duration) (bool, error)

	// GetInviterID returns ErrNotFound for unknown or expired codes.
	GetInviterID(ctx context.Context, code string) (int64, error)

	DeleteInvitationCode(ctx context.Context, code string) error
}
