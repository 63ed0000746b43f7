package store

import "roster-backend/internal/model"

// CreateShiftInput carries the fields needed to create an OPEN shift.
type CreateShiftInput struct {
	TeamID         string   `json:"teamId"`
	Date           string   `json:"date"`      // YYYY-MM-DD
	StartTime      string   `json:"startTime"` // HH:MM
	EndTime        string   `json:"endTime"`   // HH:MM
	ShiftCode      string   `json:"shiftCode"`
	DurationHours  float64  `json:"durationHours"`
	RequiredSkills []string `json:"requiredSkills"`
	Notes          string   `json:"notes"`
}

// UpdateShiftInput is a partial shift edit. Nil fields are left
// untouched. ExpectedRevision, when set, turns the update into an
// optimistic-concurrency-checked write.
type UpdateShiftInput struct {
	ExpectedRevision *int               `json:"expectedRevision"`
	Date             *string            `json:"date"`
	StartTime        *string            `json:"startTime"`
	EndTime          *string            `json:"endTime"`
	ShiftCode        *string            `json:"shiftCode"`
	DurationHours    *float64           `json:"durationHours"`
	RequiredSkills   []string           `json:"requiredSkills"`
	Status           *model.ShiftStatus `json:"status"`
	Notes            *string            `json:"notes"`
}

// ShiftFilter narrows ListShifts. Zero values mean "no constraint".
type ShiftFilter struct {
	TeamID   string
	From     string // inclusive date, YYYY-MM-DD
	To       string // inclusive date, YYYY-MM-DD
	Status   model.ShiftStatus
	WorkerID string
}

// CreateAvailabilityInput carries the fields for a new availability
// window.
type CreateAvailabilityInput struct {
	WorkerID string                 `json:"workerId"`
	StartAt  string                 `json:"startAt"` // RFC3339
	EndAt    string                 `json:"endAt"`   // RFC3339
	Kind     model.AvailabilityKind `json:"kind"`
	Notes    string                 `json:"notes"`
}
