package domain

import "time"

type ScheduleStatus string

const (
	ScheduleStatusDraft  ScheduleStatus = "draft"
	ScheduleStatusPosted ScheduleStatus = "posted"
)

// WeeklySchedule is one business's schedule for one canonical week. At most
// one row exists per (business, weekStart); the database enforces this.
type WeeklySchedule struct {
	ID         int64          `json:"id"`
	BusinessID int64          `json:"businessID"`
	WeekStart  CivilDate      `json:"weekStart"`
	Status     ScheduleStatus `json:"status"`
	PostedAt   *time.Time     `json:"postedAt"`
	Shifts     []Shift        `json:"shifts"`
	CreatedAt  time.Time      `json:"createdAt"`
	Version    int32          `json:"-"`
}

func (s *WeeklySchedule) IsPosted() bool {
	return s.Status == ScheduleStatusPosted
}
