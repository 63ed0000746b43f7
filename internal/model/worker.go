package model

import "time"

// Skill is a competency code a shift can require and a worker can hold.
type Skill struct {
	Code      string    `gorm:"size:50;primaryKey" json:"code"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Worker is a schedulable employee. The directory that manages workers
// lives outside this service; the engine only loads them.
type Worker struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string  `gorm:"size:100;not null" json:"firstName"`
	LastName  string  `gorm:"size:100;not null" json:"lastName"`
	Email     string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	TeamID    *string `gorm:"type:uuid;index" json:"teamId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Skills []Skill `gorm:"many2many:worker_skills;" json:"skills"`
}

// SkillCodes returns the set of skill codes the worker holds.
func (w *Worker) SkillCodes() map[string]struct{} {
	codes := make(map[string]struct{}, len(w.Skills))
	for _, s := range w.Skills {
		codes[s.Code] = struct{}{}
	}
	return codes
}
