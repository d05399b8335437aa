package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/cryptox"
	"github.com/calendar-couple/couple/pkg/slogx"
)

const (
	// InvitationTTL is how long an invitation code stays redeemable.
	InvitationTTL = 24 * time.Hour

	maxInvitationAttempts = 5
)

type InvitationService struct {
	Codes store.InvitationCodes

	// Generate returns a candidate code. Defaults to cryptox.GenerateInvitationCode.
	Generate func() (string, error)
}

// CreateInvitationCode stores a fresh code for the inviter, retrying on
// collisions a bounded number of times.
func (s *InvitationService) CreateInvitationCode(ctx context.Context, inviterID int64) (string, error) {
	generate := s.Generate
	if generate == nil {
		generate = cryptox.GenerateInvitationCode
	}

	for range maxInvitationAttempts {
		code, err := generate()
		if err != nil {
			return "", fmt.Errorf("generate invitation code: %w", err)
		}

		ok, err := s.Codes.SaveInvitationCode(ctx, code, inviterID, InvitationTTL)
		if err != nil {
			return "", fmt.Errorf("save invitation code: %w", err)
		}
		if ok {
			slogx.FromContext(ctx).Info("invitation code created", slog.Int64("account_id", inviterID))
			return code, nil
		}
	}
	return "", ErrInvitationCodeExhausted
}

// InviterID fails with ErrInvalidInvitationCode for unknown or expired codes.
func (s *InvitationService) InviterID(ctx context.Context, code string) (int64, error) {
	id, err := s.Codes.GetInviterID(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrInvalidInvitationCode
	}
	if err != nil {
		return 0, fmt.Errorf("load invitation code: %w", err)
	}
	return id, nil
}

// UseInvitation consumes a code.
func (s *InvitationService) UseInvitation(ctx context.Context, code string) error {
	return s.Codes.DeleteInvitationCode(ctx, code)
}
