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

// CreateAvailabilityWindow persists a new window for a worker. Windows
// for one worker must not overlap, so the engine's "first containing
// window wins" scan stays unambiguous.
func (s *gormStore) CreateAvailabilityWindow(ctx context.Context, input CreateAvailabilityInput) (*model.AvailabilityWindow, error) {
	if !model.ValidKind(input.Kind) {
		return nil, &roster.ValidationError{Reason: fmt.Sprintf("unknown availability kind %q", input.Kind)}
	}

	startAt, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		return nil, &roster.ValidationError{Reason: fmt.Sprintf("invalid startAt %q: %v", input.StartAt, err)}
	}
	endAt, err := time.Parse(time.RFC3339, input.EndAt)
	if err != nil {
		return nil, &roster.ValidationError{Reason: fmt.Sprintf("invalid endAt %q: %v", input.EndAt, err)}
	}
	if !endAt.After(startAt) {
		return nil, &roster.ValidationError{Reason: "end time must be after start time"}
	}

	window := model.AvailabilityWindow{
		ID:       uuid.NewString(),
		WorkerID: input.WorkerID,
		StartAt:  startAt,
		EndAt:    endAt,
		Kind:     input.Kind,
		Notes:    input.Notes,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var worker model.Worker
		if err := tx.First(&worker, "id = ?", input.WorkerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &roster.NotFoundError{Kind: "worker", ID: input.WorkerID}
			}
			return fmt.Errorf("failed to load worker %s: %w", input.WorkerID, err)
		}

		var overlapping model.AvailabilityWindow
		err := lockForUpdate(tx).
			Where("worker_id = ? AND start_at < ? AND end_at > ?", input.WorkerID, endAt, startAt).
			First(&overlapping).Error
		if err == nil {
			return &roster.ValidationError{Reason: fmt.Sprintf("availability overlaps with existing window (%s)", overlapping.ID)}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check overlapping windows: %w", err)
		}

		if err := tx.Create(&window).Error; err != nil {
			return fmt.Errorf("failed to create availability window: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("created availability window %s for worker %s", window.ID, window.WorkerID)
	return &window, nil
}

// WindowsForWorker returns the worker's windows overlapping [from, to),
// ordered by start time. Zero bounds mean no range filter.
func (s *gormStore) WindowsForWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.AvailabilityWindow, error) {
	query := s.db.WithContext(ctx).Where("worker_id = ?", workerID)
	if !from.IsZero() {
		query = query.Where("end_at > ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start_at < ?", to)
	}

	var windows []model.AvailabilityWindow
	if err := query.Order("start_at ASC").Find(&windows).Error; err != nil {
		return nil, fmt.Errorf("failed to list availability for worker %s: %w", workerID, err)
	}
	return windows, nil
}

func (s *gormStore) DeleteAvailabilityWindow(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.AvailabilityWindow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete availability window %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &roster.NotFoundError{Kind: "availability window", ID: id}
	}
	log.Printf("deleted availability window %s", id)
	return nil
}

// DeleteWindowsForWorker removes all of a worker's windows lying fully
// inside [from, to] and reports how many went away.
func (s *gormStore) DeleteWindowsForWorker(ctx context.Context, workerID string, from, to time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("worker_id = ? AND start_at >= ? AND end_at <= ?", workerID, from, to).
		Delete(&model.AvailabilityWindow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete availability for worker %s: %w", workerID, result.Error)
	}
	log.Printf("deleted %d availability windows for worker %s", result.RowsAffected, workerID)
	return result.RowsAffected, nil
}
