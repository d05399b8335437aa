package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

func TestCalendarAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner, _, _ := f.signIn(t, "c1")
	other, _, _ := f.signIn(t, "c2")

	cals, err := f.calendars.ListCalendars(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cals, 1)
	calID := cals[0].ID

	t.Run("owner reads own calendar", func(t *testing.T) {
		cal, err := f.calendars.GetCalendar(ctx, owner, calID)
		require.NoError(t, err)
		require.Equal(t, owner, cal.OwnerID)
	})

	t.Run("others cannot see it", func(t *testing.T) {
		_, err := f.calendars.GetCalendar(ctx, other, calID)
		require.ErrorIs(t, err, ErrCalendarNotFound)

		err = f.calendars.UpdateCalendar(ctx, other, calID, UpdateCalendar{Type: "PERSONAL", Color: "#000000"})
		require.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("missing calendar", func(t *testing.T) {
		_, err := f.calendars.GetCalendar(ctx, owner, 9999)
		require.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("update", func(t *testing.T) {
		f.clock.Advance(time.Hour)
		err := f.calendars.UpdateCalendar(ctx, owner, calID, UpdateCalendar{
			Name:        "내 캘린더",
			Type:        "COUPLE",
			Color:       "#112233",
			Description: "updated",
		})
		require.NoError(t, err)

		cal, err := f.calendars.GetCalendar(ctx, owner, calID)
		require.NoError(t, err)
		require.Equal(t, "내 캘린더", cal.Name)
		require.Equal(t, domain.CalendarCouple, cal.Type)
		require.Equal(t, "#112233", cal.Color)
		require.Equal(t, "updated", cal.Description)
		require.True(t, f.clock.Now().Equal(cal.UpdatedAt))
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		err := f.calendars.UpdateCalendar(ctx, owner, calID, UpdateCalendar{Type: "WORK", Color: "#000000"})
		require.ErrorIs(t, err, ErrInvalidCalendarType)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner, _, _ := f.signIn(t, "c1")
	other, _, _ := f.signIn(t, "c2")

	cals, err := f.calendars.ListCalendars(ctx, owner)
	require.NoError(t, err)
	calID := cals[0].ID

	later := testStart.Add(72 * time.Hour)
	sooner := testStart.Add(24 * time.Hour)

	t.Run("created events come back in time order", func(t *testing.T) {
		for _, at := range []time.Time{later, sooner} {
			_, err := f.events.CreateEvent(ctx, owner, CreateEvent{
				CalendarID: calID,
				CategoryID: 2,
				Title:      "date",
				EventAt:    at,
			})
			require.NoError(t, err)
		}

		events, err := f.home.Home(ctx, owner)
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.True(t, sooner.Equal(events[0].EventAt))
		require.True(t, later.Equal(events[1].EventAt))
		require.EqualValues(t, 2, events[0].CategoryID)
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := f.events.CreateEvent(ctx, owner, CreateEvent{CalendarID: calID, Title: "  ", EventAt: later})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("event time is required", func(t *testing.T) {
		_, err := f.events.CreateEvent(ctx, owner, CreateEvent{CalendarID: calID, Title: "x"})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("calendar must be accessible", func(t *testing.T) {
		_, err := f.events.CreateEvent(ctx, other, CreateEvent{CalendarID: calID, Title: "x", EventAt: later})
		require.ErrorIs(t, err, ErrCalendarNotFound)
	})
}
