package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 12, 1, hour, min, 0, 0, time.UTC)
}

func window(start, end time.Time, kind AvailabilityKind) AvailabilityWindow {
	return AvailabilityWindow{ID: "w-" + start.Format("1504"), WorkerID: "worker-1", StartAt: start, EndAt: end, Kind: kind}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name                   string
		winStart, winEnd       time.Time
		rangeStart, rangeEnd   time.Time
		expected               bool
	}{
		{"disjoint before", at(9, 0), at(13, 0), at(14, 0), at(17, 0), false},
		{"disjoint after", at(14, 0), at(17, 0), at(9, 0), at(13, 0), false},
		{"adjacent at end does not overlap", at(9, 0), at(13, 0), at(13, 0), at(17, 0), false},
		{"adjacent at start does not overlap", at(13, 0), at(17, 0), at(9, 0), at(13, 0), false},
		{"partial overlap", at(9, 0), at(13, 0), at(12, 0), at(17, 0), true},
		{"range inside window", at(8, 0), at(18, 0), at(9, 0), at(17, 0), true},
		{"window inside range", at(10, 0), at(11, 0), at(9, 0), at(17, 0), true},
		{"identical intervals", at(9, 0), at(13, 0), at(9, 0), at(13, 0), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := window(tc.winStart, tc.winEnd, KindNeutral)
			assert.Equal(t, tc.expected, w.Overlaps(tc.rangeStart, tc.rangeEnd))
		})
	}
}

func TestContains(t *testing.T) {
	w := window(at(8, 0), at(18, 0), KindNeutral)

	assert.True(t, w.Contains(at(9, 0), at(17, 0)))
	assert.True(t, w.Contains(at(8, 0), at(18, 0)), "boundaries are inclusive")
	assert.False(t, w.Contains(at(7, 0), at(17, 0)))
	assert.False(t, w.Contains(at(9, 0), at(19, 0)))
}

func TestResolveAvailability(t *testing.T) {
	shiftStart, shiftEnd := at(9, 0), at(17, 0)

	t.Run("blackout covering the shift means unavailable", func(t *testing.T) {
		windows := []AvailabilityWindow{window(at(8, 0), at(18, 0), KindBlackout)}
		got := ResolveAvailability(windows, shiftStart, shiftEnd)
		assert.False(t, got.Available)
		assert.Equal(t, KindBlackout, *got.Kind)
	})

	t.Run("preferred window covering the shift means available", func(t *testing.T) {
		windows := []AvailabilityWindow{window(at(8, 0), at(18, 0), KindPreferred)}
		got := ResolveAvailability(windows, shiftStart, shiftEnd)
		assert.True(t, got.Available)
		assert.Equal(t, KindPreferred, *got.Kind)
	})

	t.Run("no containing window means unavailable with nil kind", func(t *testing.T) {
		windows := []AvailabilityWindow{
			window(at(8, 0), at(12, 0), KindNeutral),
			window(at(12, 0), at(16, 0), KindNeutral),
		}
		got := ResolveAvailability(windows, shiftStart, shiftEnd)
		assert.False(t, got.Available)
		assert.Nil(t, got.Kind)
	})

	t.Run("no windows at all means unavailable", func(t *testing.T) {
		got := ResolveAvailability(nil, shiftStart, shiftEnd)
		assert.False(t, got.Available)
		assert.Nil(t, got.Kind)
	})

	t.Run("scan is ordered by start time regardless of input order", func(t *testing.T) {
		late := window(at(8, 0), at(18, 0), KindAvoided)
		early := window(at(0, 0), at(23, 0), KindNeutral)
		got := ResolveAvailability([]AvailabilityWindow{late, early}, shiftStart, shiftEnd)
		assert.True(t, got.Available)
		assert.Equal(t, KindNeutral, *got.Kind, "earliest containing window wins")
	})

	// A blackout that covers only part of the shift does not make the
	// worker unavailable. This pins the full-containment-only boundary.
	t.Run("partially overlapping blackout is not detected", func(t *testing.T) {
		windows := []AvailabilityWindow{window(at(12, 0), at(20, 0), KindBlackout)}
		got := ResolveAvailability(windows, shiftStart, shiftEnd)
		assert.False(t, got.Available)
		assert.Nil(t, got.Kind, "partial blackout leaves the shift uncovered, not blacked out")
	})
}
