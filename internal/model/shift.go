package model

import (
	"fmt"
	"time"
)

// ShiftStatus is the lifecycle state of a shift.
type ShiftStatus string

const (
	StatusOpen       ShiftStatus = "OPEN"        // unassigned, available for scheduling
	StatusAssigned   ShiftStatus = "ASSIGNED"    // assigned to a worker
	StatusConfirmed  ShiftStatus = "CONFIRMED"   // worker confirmed
	StatusInProgress ShiftStatus = "IN_PROGRESS" // currently active
	StatusCompleted  ShiftStatus = "COMPLETED"   // finished
	StatusCancelled  ShiftStatus = "CANCELLED"   // cancelled
)

// ValidStatus reports whether st is a recognized shift status.
func ValidStatus(st ShiftStatus) bool {
	switch st {
	case StatusOpen, StatusAssigned, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AssignmentSource records how a shift got its worker.
type AssignmentSource string

const (
	SourceManual AssignmentSource = "manual"
	SourceSolver AssignmentSource = "solver"
	SourceSwap   AssignmentSource = "swap"
)

// ValidSource reports whether s is a recognized assignment source.
func ValidSource(s AssignmentSource) bool {
	switch s {
	case SourceManual, SourceSolver, SourceSwap:
		return true
	}
	return false
}

// SwapRecord is one entry in a shift's append-only swap history.
type SwapRecord struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// ShiftMetadata is the structured metadata bag the engine writes.
// SwapHistory is append-only; OriginalAssignee is a single slot that
// unassignment overwrites.
type ShiftMetadata struct {
	SwapHistory      []SwapRecord `json:"swapHistory,omitempty"`
	OriginalAssignee string       `json:"originalAssignee,omitempty"`
}

// Shift is the schedulable unit of work.
type Shift struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Revision starts at 1 and goes up by exactly 1 on every successful
	// mutation. Callers may pass it back as expectedRevision for an
	// optimistic concurrency check.
	Revision int `gorm:"not null;default:1" json:"revision"`

	TeamID    string `gorm:"type:uuid;index:idx_shifts_team_date,priority:1;not null" json:"teamId"`
	Date      string `gorm:"size:10;index:idx_shifts_team_date,priority:2;not null" json:"date"`      // YYYY-MM-DD
	StartTime string `gorm:"size:5;not null" json:"startTime"`                                        // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"endTime"`                                          // HH:MM

	// Absolute timestamps derived from Date + StartTime/EndTime. A shift
	// whose end time-of-day is not after its start crosses midnight, so
	// EndAt lands on the next day. EndAt > StartAt always holds.
	StartAt time.Time `gorm:"not null;index" json:"startAt"`
	EndAt   time.Time `gorm:"not null" json:"endAt"`

	ShiftCode     string  `gorm:"size:50" json:"shiftCode"`
	DurationHours float64 `json:"durationHours"`

	RequiredSkills []string `gorm:"serializer:json" json:"requiredSkills"`

	Status ShiftStatus `gorm:"size:20;not null;default:OPEN;index" json:"status"`

	AssignedWorkerID *string           `gorm:"type:uuid;index:idx_shifts_worker_start,priority:1" json:"assignedWorkerId"`
	AssignedAt       *time.Time        `json:"assignedAt"`
	AssignmentSource *AssignmentSource `gorm:"size:20" json:"assignmentSource"`

	Notes    string        `json:"notes,omitempty"`
	Metadata ShiftMetadata `gorm:"serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Team           Team    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AssignedWorker *Worker `gorm:"foreignKey:AssignedWorkerID" json:"assignedWorker,omitempty"`
}

// OverlapsRange reports whether the shift's interval intersects
// [start, end) under strict half-open semantics: intervals that merely
// touch at an endpoint do not overlap.
func (s *Shift) OverlapsRange(start, end time.Time) bool {
	return s.StartAt.Before(end) && s.EndAt.After(start)
}

// Terminal reports whether the status admits no further transitions.
func (st ShiftStatus) Terminal() bool {
	return st == StatusCompleted || st == StatusCancelled
}

// ShiftTimes derives the absolute start and end instants for a shift on
// the given calendar date. date is YYYY-MM-DD, startTime/endTime are
// HH:MM. If the end does not come after the start it is taken to cross
// midnight and is pushed to the next day.
func ShiftTimes(date, startTime, endTime string, loc *time.Location) (start, end time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err = time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid shift start %q %q: %w", date, startTime, err)
	}
	end, err = time.ParseInLocation("2006-01-02 15:04", date+" "+endTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid shift end %q %q: %w", date, endTime, err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}
