package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roster-backend/internal/model"
	"roster-backend/internal/roster"
)

// AssignShift atomically assigns a shift to a worker. The whole
// read-check-write sequence runs in one transaction: the shift row and
// the worker's potentially conflicting shifts are read under row locks,
// the conflict detector runs against that snapshot, and the mutation
// commits with the revision bumped by one. Any failed check aborts with
// a typed error and zero side effects.
func (s *gormStore) AssignShift(ctx context.Context, shiftID, workerID string, source model.AssignmentSource) (*model.Shift, error) {
	if !model.ValidSource(source) {
		return nil, &roster.ValidationError{Reason: fmt.Sprintf("unknown assignment source %q", source)}
	}

	var assigned model.Shift
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift model.Shift
		if err := lockForUpdate(tx).First(&shift, "id = ?", shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "shift", ID: shiftID}
			}
			return fmt.Errorf("failed to load shift %s: %w", shiftID, err)
		}

		if shift.Status != model.StatusOpen && shift.Status != model.StatusAssigned {
			return &roster.InvalidStateTransitionError{ShiftID: shiftID, Status: shift.Status, Op: "assign"}
		}

		// The worker row is the serialization point for same-worker
		// assignments. Locking only the shift rows is not enough: two
		// transactions assigning different open shifts to one worker
		// would each see zero conflicting rows and both commit.
		var worker model.Worker
		if err := lockForUpdate(tx).First(&worker, "id = ?", workerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "worker", ID: workerID}
			}
			return fmt.Errorf("failed to load worker %s: %w", workerID, err)
		}
		if err := tx.Model(&worker).Association("Skills").Find(&worker.Skills); err != nil {
			return fmt.Errorf("failed to load skills for worker %s: %w", workerID, err)
		}

		// Snapshot the worker's windows around the shift, ordered so
		// the containment scan is deterministic.
		var windows []model.AvailabilityWindow
		if err := tx.
			Where("worker_id = ? AND start_at < ? AND end_at > ?", workerID, shift.EndAt, shift.StartAt).
			Order("start_at ASC").
			Find(&windows).Error; err != nil {
			return fmt.Errorf("failed to load availability for worker %s: %w", workerID, err)
		}

		// Lock the worker's overlapping shifts so a concurrent assign
		// for the same worker cannot also pass the double-booking
		// check on a stale snapshot.
		var others []model.Shift
		if err := lockForUpdate(tx).
			Where("assigned_worker_id = ? AND id <> ? AND status <> ?", workerID, shift.ID, model.StatusCancelled).
			Where("start_at < ? AND end_at > ?", shift.EndAt, shift.StartAt).
			Find(&others).Error; err != nil {
			return fmt.Errorf("failed to load shifts for worker %s: %w", workerID, err)
		}

		if err := roster.CheckAssignment(&shift, &worker, windows, others); err != nil {
			return err
		}

		now := time.Now().UTC()
		previousWorkerID := shift.AssignedWorkerID

		shift.AssignedWorkerID = &workerID
		shift.AssignedAt = &now
		src := source
		shift.AssignmentSource = &src
		shift.Status = model.StatusAssigned

		if previousWorkerID != nil && source == model.SourceSwap {
			shift.Metadata.SwapHistory = append(shift.Metadata.SwapHistory, model.SwapRecord{
				From: *previousWorkerID,
				To:   workerID,
				At:   now,
			})
		}

		shift.Revision++
		if err := tx.Save(&shift).Error; err != nil {
			return fmt.Errorf("failed to save shift %s: %w", shiftID, err)
		}

		assigned = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("assigned shift %s to worker %s via %s", shiftID, workerID, source)
	return &assigned, nil
}

// UnassignShift reverts a shift to OPEN, clearing the assignment fields
// and remembering the previous assignee in metadata so a later swap or
// re-assignment can find them. Running shifts cannot be unassigned. The
// second return value is the worker this call actually removed, empty
// when the shift was already unassigned.
func (s *gormStore) UnassignShift(ctx context.Context, shiftID string) (*model.Shift, string, error) {
	var unassigned model.Shift
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift model.Shift
		if err := lockForUpdate(tx).First(&shift, "id = ?", shiftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "shift", ID: shiftID}
			}
			return fmt.Errorf("failed to load shift %s: %w", shiftID, err)
		}

		if shift.Status == model.StatusInProgress {
			return &roster.InvalidStateTransitionError{ShiftID: shiftID, Status: shift.Status, Op: "unassign"}
		}

		if shift.AssignedWorkerID != nil {
			// Single slot, not a history list: the latest unassignment
			// wins.
			shift.Metadata.OriginalAssignee = *shift.AssignedWorkerID
			previous = *shift.AssignedWorkerID
		}

		shift.AssignedWorkerID = nil
		shift.AssignedAt = nil
		shift.AssignmentSource = nil
		shift.Status = model.StatusOpen

		shift.Revision++
		if err := tx.Save(&shift).Error; err != nil {
			return fmt.Errorf("failed to save shift %s: %w", shiftID, err)
		}

		unassigned = shift
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	log.Printf("unassigned shift %s", shiftID)
	return &unassigned, previous, nil
}

// UpdateShift applies a partial edit to a shift. When the caller
// supplies ExpectedRevision, the write only proceeds if it still
// matches the stored revision; otherwise nothing changes and the caller
// gets a StaleRevisionError to branch on.
func (s *gormStore) UpdateShift(ctx context.Context, id string, input UpdateShiftInput) (*model.Shift, error) {
	var updated model.Shift
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift model.Shift
		if err := lockForUpdate(tx).First(&shift, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "shift", ID: id}
			}
			return fmt.Errorf("failed to load shift %s: %w", id, err)
		}

		if input.ExpectedRevision != nil && *input.ExpectedRevision != shift.Revision {
			return &roster.StaleRevisionError{ShiftID: id, Expected: *input.ExpectedRevision, Actual: shift.Revision}
		}

		timesChanged := false
		if input.Date != nil {
			shift.Date = *input.Date
			timesChanged = true
		}
		if input.StartTime != nil {
			shift.StartTime = *input.StartTime
			timesChanged = true
		}
		if input.EndTime != nil {
			shift.EndTime = *input.EndTime
			timesChanged = true
		}
		if input.ShiftCode != nil {
			shift.ShiftCode = *input.ShiftCode
		}
		if input.DurationHours != nil {
			shift.DurationHours = *input.DurationHours
		}
		if input.RequiredSkills != nil {
			shift.RequiredSkills = input.RequiredSkills
		}
		if input.Status != nil {
			if !model.ValidStatus(*input.Status) {
				return &roster.ValidationError{Reason: fmt.Sprintf("unknown shift status %q", *input.Status)}
			}
			if *input.Status != shift.Status && shift.Status.Terminal() {
				return &roster.InvalidStateTransitionError{ShiftID: id, Status: shift.Status, Op: "update"}
			}
			shift.Status = *input.Status
		}
		if input.Notes != nil {
			shift.Notes = *input.Notes
		}

		if timesChanged {
			startAt, endAt, err := model.ShiftTimes(shift.Date, shift.StartTime, shift.EndTime, s.loc)
			if err != nil {
				return &roster.ValidationError{Reason: err.Error()}
			}
			shift.StartAt = startAt
			shift.EndAt = endAt
		}

		shift.Revision++
		if err := tx.Save(&shift).Error; err != nil {
			return fmt.Errorf("failed to save shift %s: %w", id, err)
		}

		updated = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("updated shift %s to revision %d", id, updated.Revision)
	return &updated, nil
}
