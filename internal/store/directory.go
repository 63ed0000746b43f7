package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roster-backend/internal/model"
	"roster-backend/internal/roster"
)

// GetWorker loads a worker with their skill set.
func (s *gormStore) GetWorker(ctx context.Context, id string) (*model.Worker, error) {
	var worker model.Worker
	err := s.db.WithContext(ctx).Preload("Skills").First(&worker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &roster.NotFoundError{Kind: "worker", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load worker %s: %w", id, err)
	}
	return &worker, nil
}

// GetTeam loads a team with its members and their skills, which is what
// the optimizer payload builder needs.
func (s *gormStore) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := s.db.WithContext(ctx).Preload("Members.Skills").First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &roster.NotFoundError{Kind: "team", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load team %s: %w", id, err)
	}
	return &team, nil
}

// SaveSubscription creates or replaces a push subscription keyed by its
// endpoint.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "worker_id"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &roster.NotFoundError{Kind: "subscription", ID: endpoint}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	result := s.db.WithContext(ctx).Delete(&model.PushSubscription{}, "endpoint = ?", endpoint)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &roster.NotFoundError{Kind: "subscription", ID: endpoint}
	}
	return nil
}

func (s *gormStore) SubscriptionsForWorker(ctx context.Context, workerID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("worker_id = ?", workerID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for worker %s: %w", workerID, err)
	}
	return subs, nil
}
