// Package roster holds the assignment engine's error taxonomy and the
// pure conflict checks the transactional store runs before mutating a
// shift.
package roster

import (
	"fmt"
	"strings"

	"roster-backend/internal/model"
)

// NotFoundError reports that a shift or worker id did not resolve.
type NotFoundError struct {
	Kind string // "shift", "worker", "team", "availability window"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidStateTransitionError reports a lifecycle rule violation, e.g.
// assigning a CANCELLED shift or unassigning one that is IN_PROGRESS.
type InvalidStateTransitionError struct {
	ShiftID string
	Status  model.ShiftStatus
	Op      string // "assign", "unassign", "delete"
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s shift %s with status %s", e.Op, e.ShiftID, e.Status)
}

// MissingSkillsError reports the skill codes the candidate lacks.
type MissingSkillsError struct {
	WorkerID string
	Missing  []string
}

func (e *MissingSkillsError) Error() string {
	return fmt.Sprintf("worker %s lacks required skills: %s", e.WorkerID, strings.Join(e.Missing, ", "))
}

// BlackoutConflictError reports a blackout window fully covering the
// shift's interval.
type BlackoutConflictError struct {
	WorkerID string
	WindowID string
}

func (e *BlackoutConflictError) Error() string {
	return fmt.Sprintf("worker %s has a blackout during this shift time", e.WorkerID)
}

// DoubleBookingError reports an overlapping shift already held by the
// candidate worker.
type DoubleBookingError struct {
	WorkerID           string
	ConflictingShiftID string
}

func (e *DoubleBookingError) Error() string {
	return fmt.Sprintf("worker %s is already assigned to shift %s during this time", e.WorkerID, e.ConflictingShiftID)
}

// StaleRevisionError reports an optimistic concurrency mismatch. The
// caller's expectedRevision no longer matches the stored shift.
type StaleRevisionError struct {
	ShiftID  string
	Expected int
	Actual   int
}

func (e *StaleRevisionError) Error() string {
	return fmt.Sprintf("shift %s was modified concurrently: expected revision %d, got %d", e.ShiftID, e.Expected, e.Actual)
}

// ValidationError reports a malformed request (bad source, bad time
// range, overlapping availability window) before any check runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
