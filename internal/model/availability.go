package model

import "time"

// AvailabilityKind classifies a worker's declared time window.
type AvailabilityKind string

const (
	KindPreferred AvailabilityKind = "PREFERRED" // worker prefers to work
	KindNeutral   AvailabilityKind = "NEUTRAL"   // available, no preference
	KindAvoided   AvailabilityKind = "AVOIDED"   // would rather not, but can
	KindBlackout  AvailabilityKind = "BLACKOUT"  // hard-unavailable
)

// ValidKind reports whether k is a recognized availability kind.
func ValidKind(k AvailabilityKind) bool {
	switch k {
	case KindPreferred, KindNeutral, KindAvoided, KindBlackout:
		return true
	}
	return false
}

// AvailabilityWindow is a worker-declared, time-bounded preference or
// restriction. The assignment engine only reads these.
type AvailabilityWindow struct {
	ID       string           `gorm:"type:uuid;primaryKey" json:"id"`
	WorkerID string           `gorm:"type:uuid;index:idx_availability_worker_range,priority:1;not null" json:"workerId"`
	StartAt  time.Time        `gorm:"index:idx_availability_worker_range,priority:2;not null" json:"startAt"`
	EndAt    time.Time        `gorm:"not null" json:"endAt"` // EndAt > StartAt always
	Kind     AvailabilityKind `gorm:"size:20;not null;default:NEUTRAL" json:"kind"`
	Notes    string           `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Worker Worker `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Overlaps reports whether the window intersects [start, end) as
// half-open intervals. Adjacent intervals (one's end equal to the
// other's start) do not overlap.
func (w *AvailabilityWindow) Overlaps(start, end time.Time) bool {
	return w.StartAt.Before(end) && w.EndAt.After(start)
}

// Contains reports whether the window fully encloses [start, end],
// boundaries inclusive.
func (w *AvailabilityWindow) Contains(start, end time.Time) bool {
	return !w.StartAt.After(start) && !w.EndAt.Before(end)
}

// Availability is the answer to "can this worker take this range".
type Availability struct {
	Available bool
	Kind      *AvailabilityKind
}

// ResolveAvailability scans windows in StartAt order and returns the
// verdict of the first window that contains [start, end]. A containing
// BLACKOUT window means unavailable; any other containing window means
// available with that window's kind. No containing window at all means
// unavailable with a nil kind: absence of coverage is not treated as
// unconstrained. Windows for one worker never overlap, so order only
// matters for determinism.
func ResolveAvailability(windows []AvailabilityWindow, start, end time.Time) Availability {
	sorted := make([]AvailabilityWindow, len(windows))
	copy(sorted, windows)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].StartAt.Before(sorted[j-1].StartAt); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for i := range sorted {
		w := &sorted[i]
		if !w.Contains(start, end) {
			continue
		}
		kind := w.Kind
		if kind == KindBlackout {
			return Availability{Available: false, Kind: &kind}
		}
		return Availability{Available: true, Kind: &kind}
	}
	return Availability{Available: false, Kind: nil}
}
