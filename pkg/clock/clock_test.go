package clock_test

import (
	"testing"
	"time"

	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/stretchr/testify/require"
)

func TestFake(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := clock.NewFake(start)
	require.Equal(t, start, c.Now())

	c.Advance(90 * time.Second)
	require.Equal(t, start.Add(90*time.Second), c.Now())

	later := start.Add(48 * time.Hour)
	c.Set(later)
	require.Equal(t, later, c.Now())
}

func TestRealMovesForward(t *testing.T) {
	t.Parallel()

	c := clock.Real()
	a := c.Now()
	b := c.Now()
	require.False(t, b.Before(a))
}
