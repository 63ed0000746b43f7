package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roster-backend/internal/model"
)

// Store defines the interface for all database operations the roster
// engine and its HTTP surface need.
type Store interface {
	// Shift lifecycle
	CreateShift(ctx context.Context, input CreateShiftInput) (*model.Shift, error)
	CreateShifts(ctx context.Context, inputs []CreateShiftInput) ([]model.Shift, error)
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	ListShifts(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	ListShiftsForWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.Shift, error)
	UpdateShift(ctx context.Context, id string, input UpdateShiftInput) (*model.Shift, error)
	DeleteShift(ctx context.Context, id string) error

	// Assignment engine
	AssignShift(ctx context.Context, shiftID, workerID string, source model.AssignmentSource) (*model.Shift, error)
	UnassignShift(ctx context.Context, shiftID string) (*model.Shift, string, error)

	// Availability windows
	CreateAvailabilityWindow(ctx context.Context, input CreateAvailabilityInput) (*model.AvailabilityWindow, error)
	WindowsForWorker(ctx context.Context, workerID string, from, to time.Time) ([]model.AvailabilityWindow, error)
	DeleteAvailabilityWindow(ctx context.Context, id string) error
	DeleteWindowsForWorker(ctx context.Context, workerID string, from, to time.Time) (int64, error)

	// Directory reads (worker/team management lives elsewhere)
	GetWorker(ctx context.Context, id string) (*model.Worker, error)
	GetTeam(ctx context.Context, id string) (*model.Team, error)

	// Push subscriptions
	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForWorker(ctx context.Context, workerID string) ([]model.PushSubscription, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormStore creates a new GORM-backed store. Shift instants are
// derived in loc; a nil loc means UTC.
func NewGormStore(db *gorm.DB, loc *time.Location) Store {
	if loc == nil {
		loc = time.UTC
	}
	return &gormStore{db: db, loc: loc}
}

// DB exposes the underlying handle for migrations and tests.
func (s *gormStore) DB() *gorm.DB { return s.db }

// lockForUpdate adds row-level locking so concurrent assignment
// transactions serialize on the rows they read. SQLite rejects FOR
// UPDATE and serializes writers on its own, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
