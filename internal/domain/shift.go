package domain

import "time"

type Shift struct {
	ID          int64     `json:"id"`
	ScheduleID  int64     `json:"scheduleID"`
	EmployeeID  int64     `json:"employeeID"`
	Day         int       `json:"day"` // 0 = Sunday .. 6 = Saturday
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	StartLabel  string    `json:"startLabel"` // derived, not persisted
	EndLabel    string    `json:"endLabel"`   // derived, not persisted
	TemplateID  *int64    `json:"templateID"`
	Note        string    `json:"note"`
	Hours       float64   `json:"hours"` // always recomputed from start/end, never taken from callers
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
