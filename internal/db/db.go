package db

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roster-backend/config"
	"roster-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.EnableConstraints {
		log.Println("Applying interval check constraints...")
		if err := applyIntervalConstraints(db); err != nil {
			log.Printf("Warning: failed to apply some constraints: %v. Continuing without them.", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates or updates the schema for all roster entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Team{},
		&model.Skill{},
		&model.Worker{},
		&model.Shift{},
		&model.AvailabilityWindow{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// applyIntervalConstraints adds postgres check constraints mirroring
// the entity invariant end_at > start_at. AutoMigrate cannot express
// these.
func applyIntervalConstraints(db *gorm.DB) error {
	ddls := []string{
		"ALTER TABLE shifts ADD CONSTRAINT shifts_interval_valid CHECK (end_at > start_at);",
		"ALTER TABLE availability_windows ADD CONSTRAINT availability_interval_valid CHECK (end_at > start_at);",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
