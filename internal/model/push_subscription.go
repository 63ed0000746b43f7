package model

import "time"

// PushSubscription holds the information for a browser push
// subscription. Each subscription belongs to one worker and receives
// alerts about that worker's shift assignments.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	WorkerID  string    `gorm:"type:uuid;index;not null" json:"workerId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Worker Worker `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
