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

type CalendarService struct {
	Store store.Store
	Clock clock.Clock
}

// UpdateCalendar is the editable part of a calendar.
type UpdateCalendar struct {
	Name        string
	Type        string
	Color       string
	Description string
}

// ListCalendars returns calendars the account owns or actively shares.
func (s *CalendarService) ListCalendars(ctx context.Context, accountID int64) ([]domain.Calendar, error) {
	return s.Store.Calendars().ListCalendarsForAccount(ctx, accountID)
}

// GetCalendar fails with ErrCalendarNotFound both for missing calendars and
// for calendars the account cannot see.
func (s *CalendarService) GetCalendar(ctx context.Context, accountID, calendarID int64) (domain.Calendar, error) {
	if err := s.authorize(ctx, accountID, calendarID); err != nil {
		return domain.Calendar{}, err
	}

	cal, err := s.Store.Calendars().GetCalendarByID(ctx, calendarID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Calendar{}, ErrCalendarNotFound
	}
	return cal, err
}

func (s *CalendarService) UpdateCalendar(ctx context.Context, accountID, calendarID int64, upd UpdateCalendar) error {
	typ, ok := domain.ParseCalendarType(upd.Type)
	if !ok {
		return ErrInvalidCalendarType
	}
	if upd.Color == "" {
		return fmt.Errorf("%w: color is required", ErrInvalidRequest)
	}

	cal, err := s.GetCalendar(ctx, accountID, calendarID)
	if err != nil {
		return err
	}

	cal.Name = upd.Name
	cal.Type = typ
	cal.Color = upd.Color
	cal.Description = upd.Description
	cal.UpdatedAt = s.Clock.Now().UTC()

	if err := s.Store.Calendars().UpdateCalendar(ctx, cal); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCalendarNotFound
		}
		return fmt.Errorf("update calendar %d: %w", calendarID, err)
	}

	slogx.FromContext(ctx).Info("calendar updated",
		slog.Int64("account_id", accountID),
		slog.Int64("calendar_id", calendarID),
	)
	return nil
}

func (s *CalendarService) authorize(ctx context.Context, accountID, calendarID int64) error {
	ok, err := s.Store.Calendars().HasAccess(ctx, calendarID, accountID)
	if err != nil {
		return fmt.Errorf("check calendar access: %w", err)
	}
	if !ok {
		return ErrCalendarNotFound
	}
	return nil
}

// createDefaultCalendar provisions the personal calendar every new account
// starts with.
func createDefaultCalendar(ctx context.Context, tx store.Store, ownerID int64, now time.Time) (int64, error) {
	return tx.Calendars().CreateCalendar(ctx, domain.Calendar{
		OwnerID:     ownerID,
		Name:        "",
		Type:        domain.CalendarPersonal,
		Color:       domain.DefaultPersonalColor,
		Description: domain.DefaultCalendarDescription,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// createCoupleCalendar provisions the shared calendar of a new couple: owned
// by ownerID, with partnerID as an active member.
func createCoupleCalendar(ctx context.Context, tx store.Store, ownerID, partnerID int64, now time.Time) (int64, error) {
	calID, err := tx.Calendars().CreateCalendar(ctx, domain.Calendar{
		OwnerID:   ownerID,
		Name:      "",
		Type:      domain.CalendarCouple,
		Color:     domain.DefaultCoupleColor,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, err
	}

	for _, m := range []domain.CalendarMember{
		{CalendarID: calID, AccountID: ownerID, Role: domain.MemberOwner, Status: domain.MemberActive, CreatedAt: now},
		{CalendarID: calID, AccountID: partnerID, Role: domain.MemberMember, Status: domain.MemberActive, CreatedAt: now},
	} {
		if err := tx.Calendars().AddMember(ctx, m); err != nil {
			return 0, fmt.Errorf("add member %d: %w", m.AccountID, err)
		}
	}
	return calID, nil
}
