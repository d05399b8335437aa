package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/jwtx"
	"github.com/calendar-couple/couple/pkg/slogx"
)

// IdentityResolver is satisfied by *oauth.Registry.
type IdentityResolver interface {
	Resolve(ctx context.Context, provider, code string) (oauth.Identity, error)
}

// TokenCodec is satisfied by *jwtx.Codec.
type TokenCodec interface {
	IssueAccessToken(accountID int64, role string) (string, error)
	IssueRefreshToken(accountID int64, role string) (string, time.Time, error)
	VerifyAccessToken(token string) error
	VerifyRefreshToken(token string) error
	AccountID(token string) (int64, error)
	Role(token string) (string, error)
	RemainingTTL(token string) (time.Duration, error)
}

// AuthService signs accounts in, rotates refresh tokens, logs out and
// authenticates bearer tokens. It keeps no state of its own; sessions live
// in Sessions.
type AuthService struct {
	Identities IdentityResolver
	Accounts   *AccountDirectory
	Sessions   store.Sessions
	Codec      TokenCodec
	Metrics    *Metrics
}

// SignIn resolves the provider code, finds or provisions the account and
// starts a new session, replacing any previous one. Resolver errors are
// returned as is.
func (s *AuthService) SignIn(ctx context.Context, provider, code string) (pair domain.TokenPair, err error) {
	defer func() { s.Metrics.observe("sign_in", err) }()

	l := slogx.FromContext(ctx)
	provider = strings.ToUpper(strings.TrimSpace(provider))

	identity, err := s.Identities.Resolve(ctx, provider, code)
	if err != nil {
		l.Warn("identity resolution failed", slog.String("provider", provider), slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	acc, err := s.findOrCreate(ctx, provider, identity)
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair, err = s.issue(ctx, acc.ID, string(acc.Role))
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("signed in", slog.Int64("account_id", acc.ID), slog.String("provider", provider))
	return pair, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, provider string, identity oauth.Identity) (domain.Account, error) {
	acc, err := s.Accounts.FindByExternalIdentity(ctx, provider, identity.ExternalID)
	if !errors.Is(err, store.ErrNotFound) {
		return acc, err
	}

	acc, err = s.Accounts.CreateForIdentity(ctx, provider, identity)
	if errors.Is(err, store.ErrAlreadyExists) {
		// A concurrent sign-in linked the identity first.
		return s.Accounts.FindByExternalIdentity(ctx, provider, identity.ExternalID)
	}
	return acc, err
}

// Refresh exchanges the stored refresh token for a new pair. A valid token
// that is not the stored one ends the session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (pair domain.TokenPair, err error) {
	defer func() { s.Metrics.observe("refresh", err) }()

	l := slogx.FromContext(ctx)

	if err := s.Codec.VerifyRefreshToken(refreshToken); err != nil {
		return domain.TokenPair{}, err
	}
	accountID, err := s.Codec.AccountID(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	l = l.With(slog.Int64("account_id", accountID))

	stored, err := s.Sessions.GetRefreshToken(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, ErrNoActiveSession
	}
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("load refresh token: %w", err)
	}

	if stored != refreshToken {
		if _, err := s.Sessions.DeleteRefreshToken(ctx, accountID); err != nil {
			return domain.TokenPair{}, fmt.Errorf("delete refresh token: %w", err)
		}
		l.Warn("refresh token reuse detected, session revoked")
		return domain.TokenPair{}, ErrRefreshMismatch
	}

	role, err := s.Codec.Role(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	access, err := s.Codec.IssueAccessToken(accountID, role)
	if err != nil {
		return domain.TokenPair{}, err
	}
	next, expiresAt, err := s.Codec.IssueRefreshToken(accountID, role)
	if err != nil {
		return domain.TokenPair{}, err
	}

	swapped, err := s.Sessions.RotateRefreshToken(ctx, refreshToken, domain.RefreshTokenRecord{
		AccountID: accountID,
		Token:     next,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !swapped {
		// Lost a concurrent rotation. The winner's token stays stored.
		l.Warn("concurrent refresh lost rotation")
		return domain.TokenPair{}, ErrRefreshMismatch
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: next}, nil
}

// Logout clears the session before looking at the access token, so the
// refresh token is gone even when the access token turns out to be invalid.
// A still-valid access token is blacklisted until it would have expired.
func (s *AuthService) Logout(ctx context.Context, accountID int64, accessToken string) (err error) {
	defer func() { s.Metrics.observe("logout", err) }()

	if _, err := s.Sessions.DeleteRefreshToken(ctx, accountID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	if err := s.Codec.VerifyAccessToken(accessToken); err != nil {
		return err
	}
	ttl, err := s.Codec.RemainingTTL(accessToken)
	if err != nil {
		return err
	}

	if err := s.Sessions.BlacklistAccessToken(ctx, accessToken, ttl); err != nil {
		if errors.Is(err, store.ErrTokenAlreadyExpired) {
			return jwtx.ErrExpired
		}
		return fmt.Errorf("blacklist access token: %w", err)
	}

	slogx.FromContext(ctx).Info("logged out", slog.Int64("account_id", accountID))
	return nil
}

// Authenticate turns a bearer access token into a principal. Account status
// is checked in a fixed order: locked, expired, credentials expired, then
// disabled. The first failing check wins.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (p domain.Principal, err error) {
	defer func() {
		if err != nil {
			s.Metrics.observe("authenticate", err)
		}
	}()

	if err := s.Codec.VerifyAccessToken(accessToken); err != nil {
		return domain.Principal{}, err
	}

	revoked, err := s.Sessions.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("check blacklist: %w", err)
	}
	if revoked {
		return domain.Principal{}, ErrRevokedToken
	}

	accountID, err := s.Codec.AccountID(accessToken)
	if err != nil {
		return domain.Principal{}, err
	}
	acc, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Principal{}, err
	}

	p = domain.NewPrincipal(acc)
	switch {
	case p.Locked:
		return domain.Principal{}, ErrAccountLocked
	case p.Expired:
		return domain.Principal{}, ErrAccountExpired
	case p.CredentialsExpired:
		return domain.Principal{}, ErrCredentialsExpired
	case !p.Enabled:
		return domain.Principal{}, ErrAccountDisabled
	}
	return p, nil
}

// issue mints a pair and stores the refresh token, overwriting any other.
func (s *AuthService) issue(ctx context.Context, accountID int64, role string) (domain.TokenPair, error) {
	access, err := s.Codec.IssueAccessToken(accountID, role)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, expiresAt, err := s.Codec.IssueRefreshToken(accountID, role)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Sessions.SaveRefreshToken(ctx, domain.RefreshTokenRecord{
		AccountID: accountID,
		Token:     refresh,
		ExpiresAt: expiresAt,
	}); err != nil {
		return domain.TokenPair{}, fmt.Errorf("save refresh token: %w", err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
