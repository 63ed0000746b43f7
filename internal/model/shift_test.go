package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftTimes(t *testing.T) {
	t.Run("same-day shift", func(t *testing.T) {
		start, end, err := ShiftTimes("2025-12-01", "09:00", "17:00", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 12, 1, 17, 0, 0, 0, time.UTC), end)
	})

	t.Run("night shift crosses midnight", func(t *testing.T) {
		start, end, err := ShiftTimes("2025-12-01", "22:00", "06:00", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 1, 22, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 12, 2, 6, 0, 0, 0, time.UTC), end)
	})

	t.Run("equal start and end crosses midnight", func(t *testing.T) {
		start, end, err := ShiftTimes("2025-12-01", "08:00", "08:00", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, end.Sub(start))
	})

	t.Run("nil location falls back to UTC", func(t *testing.T) {
		start, _, err := ShiftTimes("2025-12-01", "09:00", "17:00", nil)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, start.Location())
	})

	t.Run("malformed inputs", func(t *testing.T) {
		_, _, err := ShiftTimes("2025-13-40", "09:00", "17:00", time.UTC)
		assert.Error(t, err)
		_, _, err = ShiftTimes("2025-12-01", "9am", "17:00", time.UTC)
		assert.Error(t, err)
		_, _, err = ShiftTimes("2025-12-01", "09:00", "25:00", time.UTC)
		assert.Error(t, err)
	})
}

func TestOverlapsRange(t *testing.T) {
	s := Shift{
		StartAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 12, 1, 17, 0, 0, 0, time.UTC),
	}

	assert.True(t, s.OverlapsRange(at(12, 0), at(18, 0)))
	assert.True(t, s.OverlapsRange(at(8, 0), at(10, 0)))
	assert.True(t, s.OverlapsRange(at(0, 0), at(23, 0)))
	assert.False(t, s.OverlapsRange(at(17, 0), at(20, 0)), "back-to-back shifts do not overlap")
	assert.False(t, s.OverlapsRange(at(6, 0), at(9, 0)), "back-to-back shifts do not overlap")
	assert.False(t, s.OverlapsRange(at(18, 0), at(20, 0)))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []ShiftStatus{StatusOpen, StatusAssigned, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, ValidStatus(status), "status %s", status)
	}
	assert.False(t, ValidStatus("BANANA"))
	assert.False(t, ValidStatus(""))
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOpen.Terminal())
	assert.False(t, StatusAssigned.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}
