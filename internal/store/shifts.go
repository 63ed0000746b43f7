package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roster-backend/internal/model"
	"roster-backend/internal/roster"
)

// CreateShift validates the team and time range, derives the absolute
// instants (including the cross-midnight rule), and persists a new OPEN
// shift at revision 1.
func (s *gormStore) CreateShift(ctx context.Context, input CreateShiftInput) (*model.Shift, error) {
	var team model.Team
	if err := s.db.WithContext(ctx).First(&team, "id = ?", input.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &roster.NotFoundError{Kind: "team", ID: input.TeamID}
		}
		return nil, fmt.Errorf("failed to load team %s: %w", input.TeamID, err)
	}

	startAt, endAt, err := model.ShiftTimes(input.Date, input.StartTime, input.EndTime, s.loc)
	if err != nil {
		return nil, &roster.ValidationError{Reason: err.Error()}
	}

	shift := model.Shift{
		ID:             uuid.NewString(),
		Revision:       1,
		TeamID:         input.TeamID,
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		StartAt:        startAt,
		EndAt:          endAt,
		ShiftCode:      input.ShiftCode,
		DurationHours:  input.DurationHours,
		RequiredSkills: input.RequiredSkills,
		Status:         model.StatusOpen,
		Notes:          input.Notes,
	}
	if shift.RequiredSkills == nil {
		shift.RequiredSkills = []string{}
	}

	if err := s.db.WithContext(ctx).Create(&shift).Error; err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	log.Printf("created shift %s for team %s on %s", shift.ID, shift.TeamID, shift.Date)
	return &shift, nil
}

// CreateShifts creates a batch of shifts and stops on the first
// failure, returning the shifts created so far.
func (s *gormStore) CreateShifts(ctx context.Context, inputs []CreateShiftInput) ([]model.Shift, error) {
	created := make([]model.Shift, 0, len(inputs))
	for _, input := range inputs {
		shift, err := s.CreateShift(ctx, input)
		if err != nil {
			return created, err
		}
		created = append(created, *shift)
	}
	return created, nil
}

func (s *gormStore) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := s.db.WithContext(ctx).Preload("AssignedWorker").First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &roster.NotFoundError{Kind: "shift", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shift %s: %w", id, err)
	}
	return &shift, nil
}

func (s *gormStore) ListShifts(ctx context.Context, filter ShiftFilter) ([]model.Shift, error) {
	query := s.db.WithContext(ctx).Model(&model.Shift{}).Preload("AssignedWorker")

	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WorkerID != "" {
		query = query.Where("assigned_worker_id = ?", filter.WorkerID)
	}

	var shifts []model.Shift
	if err := query.Order("date ASC").Order("start_time ASC").Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// ListShiftsForWorker returns the worker's non-cancelled shifts whose
// intervals overlap [from, to).
func (s *gormStore) ListShiftsForWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := s.db.WithContext(ctx).
		Where("assigned_worker_id = ? AND status <> ?", workerID, model.StatusCancelled).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for worker %s: %w", workerID, err)
	}
	return shifts, nil
}

// DeleteShift removes a shift. Shifts that are currently running must
// not disappear from under their worker.
func (s *gormStore) DeleteShift(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift model.Shift
		if err := lockForUpdate(tx).First(&shift, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "shift", ID: id}
			}
			return fmt.Errorf("failed to load shift %s: %w", id, err)
		}
		if shift.Status == model.StatusInProgress {
			return &roster.InvalidStateTransitionError{ShiftID: id, Status: shift.Status, Op: "delete"}
		}
		if err := tx.Delete(&shift).Error; err != nil {
			return fmt.Errorf("failed to delete shift %s: %w", id, err)
		}
		log.Printf("deleted shift %s", id)
		return nil
	})
}
