package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/clock"
)

type HomeService struct {
	Store    store.Store
	Accounts *AccountDirectory
	Events   *EventService
	Clock    clock.Clock
}

// HomeCouple is the home screen header: the caller's name and, when paired,
// the couple summary.
type HomeCouple struct {
	AccountName string
	Couple      *domain.CoupleSummary
}

// Home lists the caller's events in event time order.
func (s *HomeService) Home(ctx context.Context, accountID int64) ([]domain.Event, error) {
	return s.Events.ListEvents(ctx, accountID)
}

// CoupleInfo reports the caller's name and couple. Couple is nil for
// unpaired accounts.
func (s *HomeService) CoupleInfo(ctx context.Context, accountID int64) (HomeCouple, error) {
	acc, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return HomeCouple{}, err
	}
	out := HomeCouple{AccountName: acc.Name}

	couple, err := s.Store.Couples().GetCoupleByAccountID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return HomeCouple{}, fmt.Errorf("load couple: %w", err)
	}

	partnerID := couple.PartnerID(accountID)
	partner, err := s.Accounts.FindByID(ctx, partnerID)
	if err != nil {
		return HomeCouple{}, err
	}

	out.Couple = &domain.CoupleSummary{
		PartnerID:   partnerID,
		PartnerName: partner.Name,
		StartDate:   couple.StartDate,
		DaysCount:   domain.DaysTogether(couple.StartDate, s.Clock.Now()),
	}
	return out, nil
}
