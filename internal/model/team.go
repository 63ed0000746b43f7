package model

import "time"

// Team groups workers and owns shifts.
type Team struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Members []Worker `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Shifts  []Shift  `gorm:"foreignKey:TeamID" json:"-"`
}
