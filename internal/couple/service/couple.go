package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/calendar-couple/couple/pkg/slogx"
)

type CoupleService struct {
	Store       store.Store
	Accounts    *AccountDirectory
	Invitations *InvitationService
	Clock       clock.Clock
}

// LinkCouple pairs the caller with the account that issued code. The caller
// owns the new shared calendar and the inviter joins it as a member.
func (s *CoupleService) LinkCouple(ctx context.Context, accountID int64, code string) (domain.LinkedCouple, error) {
	l := slogx.FromContext(ctx)

	inviterID, err := s.Invitations.InviterID(ctx, code)
	if err != nil {
		return domain.LinkedCouple{}, err
	}
	if inviterID == accountID {
		return domain.LinkedCouple{}, ErrSelfInvitation
	}

	coupled, err := s.Store.Couples().ExistsByAccountID(ctx, inviterID)
	if err != nil {
		return domain.LinkedCouple{}, fmt.Errorf("check inviter couple: %w", err)
	}
	if coupled {
		return domain.LinkedCouple{}, ErrAlreadyCoupledInviter
	}
	coupled, err = s.Store.Couples().ExistsByAccountID(ctx, accountID)
	if err != nil {
		return domain.LinkedCouple{}, fmt.Errorf("check invitee couple: %w", err)
	}
	if coupled {
		return domain.LinkedCouple{}, ErrAlreadyCoupled
	}

	inviter, err := s.Accounts.FindByID(ctx, inviterID)
	if err != nil {
		return domain.LinkedCouple{}, err
	}
	if _, err := s.Accounts.FindByID(ctx, accountID); err != nil {
		return domain.LinkedCouple{}, err
	}

	now := s.Clock.Now().UTC()
	couple := domain.Couple{
		Account1ID: inviterID,
		Account2ID: accountID,
		StartDate:  domain.Date(now),
		CreatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Couples().CreateCouple(ctx, couple)
		if err != nil {
			return err
		}
		couple.ID = id

		if _, err := createCoupleCalendar(ctx, tx, accountID, inviterID, now); err != nil {
			return fmt.Errorf("create couple calendar: %w", err)
		}
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Someone else linked one of the two accounts in the meantime.
		return domain.LinkedCouple{}, ErrAlreadyCoupled
	}
	if err != nil {
		return domain.LinkedCouple{}, fmt.Errorf("link couple: %w", err)
	}

	if err := s.Invitations.UseInvitation(ctx, code); err != nil {
		// The couple exists; a stale code expires on its own.
		l.Warn("failed to delete invitation code", slog.Any("error", err))
	}

	l.Info("couple linked",
		slog.Int64("account_id", accountID),
		slog.Int64("partner_id", inviterID),
		slog.Int64("couple_id", couple.ID),
	)
	return domain.LinkedCouple{
		CoupleID:    couple.ID,
		PartnerID:   inviterID,
		PartnerName: inviter.Name,
		StartDate:   couple.StartDate,
		LinkedAt:    couple.CreatedAt,
	}, nil
}

// UpdateStartDate changes the anniversary date of the caller's couple.
func (s *CoupleService) UpdateStartDate(ctx context.Context, accountID int64, startDate time.Time) error {
	couple, err := s.coupleOf(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.Store.Couples().UpdateStartDate(ctx, couple.ID, domain.Date(startDate)); err != nil {
		return fmt.Errorf("update start date: %w", err)
	}
	return nil
}

// Unlink dissolves the caller's couple. Shared calendars are left in place.
func (s *CoupleService) Unlink(ctx context.Context, accountID int64) error {
	couple, err := s.coupleOf(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.Store.Couples().DeleteCouple(ctx, couple.ID); err != nil {
		return fmt.Errorf("delete couple: %w", err)
	}

	slogx.FromContext(ctx).Info("couple unlinked",
		slog.Int64("account_id", accountID),
		slog.Int64("couple_id", couple.ID),
	)
	return nil
}

func (s *CoupleService) coupleOf(ctx context.Context, accountID int64) (domain.Couple, error) {
	couple, err := s.Store.Couples().GetCoupleByAccountID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Couple{}, ErrNoCouple
	}
	if err != nil {
		return domain.Couple{}, fmt.Errorf("load couple: %w", err)
	}
	return couple, nil
}
