package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/clock"
)

type EventService struct {
	Store     store.Store
	Calendars *CalendarService
	Clock     clock.Clock
}

type CreateEvent struct {
	CalendarID  int64
	CategoryID  int64
	Title       string
	Description string
	EventAt     time.Time
}

// CreateEvent adds an event to a calendar the account can access.
func (s *EventService) CreateEvent(ctx context.Context, accountID int64, req CreateEvent) (int64, error) {
	if strings.TrimSpace(req.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if req.EventAt.IsZero() {
		return 0, fmt.Errorf("%w: eventAt is required", ErrInvalidRequest)
	}
	if err := s.Calendars.authorize(ctx, accountID, req.CalendarID); err != nil {
		return 0, err
	}

	id, err := s.Store.Events().CreateEvent(ctx, domain.Event{
		AccountID:   accountID,
		CalendarID:  req.CalendarID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		EventAt:     req.EventAt.UTC(),
		CreatedAt:   s.Clock.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

// ListEvents returns the account's events in event time order.
func (s *EventService) ListEvents(ctx context.Context, accountID int64) ([]domain.Event, error) {
	return s.Store.Events().ListEventsByAccount(ctx, accountID)
}
