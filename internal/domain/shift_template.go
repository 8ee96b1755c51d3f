package domain

import (
	"time"
)

// ShiftTemplate is a reusable start/end pair an employer assigns shifts from.
// Shifts reference a template for convenience only; the shift's own start and
// end remain authoritative, so deleting a template never corrupts shifts.
type ShiftTemplate struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"businessID"`
	Name        string    `json:"name"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	StartLabel  string    `json:"startLabel"` // derived, not persisted
	EndLabel    string    `json:"endLabel"`   // derived, not persisted
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
