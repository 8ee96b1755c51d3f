package scheduling

import (
	"time"

	"github.com/rosterline/backend/internal/domain"
)

// DefaultHorizonWeeks is how far ahead of the current week a schedule may be
// edited when no deployment override is configured.
const DefaultHorizonWeeks = 4

type WeekStatus string

const (
	WeekPast          WeekStatus = "past"
	WeekEditable      WeekStatus = "editable"
	WeekBeyondHorizon WeekStatus = "beyondHorizon"
)

// WeekWindowCalculator anchors scheduling weeks to Sunday midnight in the
// business's local timezone and bounds how far ahead a week may be edited.
// All arithmetic past the initial "now" resolution happens on civil dates,
// which makes week navigation immune to DST transitions.
type WeekWindowCalculator struct {
	horizonWeeks int
	now          func() time.Time
}

func NewWeekWindowCalculator(horizonWeeks int) *WeekWindowCalculator {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	return &WeekWindowCalculator{
		horizonWeeks: horizonWeeks,
		now:          time.Now,
	}
}

// WithClock replaces the calculator's clock. Tests only.
func (c *WeekWindowCalculator) WithClock(now func() time.Time) *WeekWindowCalculator {
	c.now = now
	return c
}

// CurrentWeekStart returns the most recent Sunday (including today when today
// is Sunday) as of now in loc. Resolving "now" in the business's own
// timezone, not the server's or viewer's, is the whole point: near midnight
// the two disagree about which week is current.
func (c *WeekWindowCalculator) CurrentWeekStart(loc *time.Location) domain.CivilDate {
	today := domain.CivilDateOf(c.now().In(loc))
	return today.AddDays(-int(today.Weekday()))
}

func (c *WeekWindowCalculator) NextWeek(weekStart domain.CivilDate) domain.CivilDate {
	return weekStart.AddDays(7)
}

func (c *WeekWindowCalculator) PreviousWeek(weekStart domain.CivilDate) domain.CivilDate {
	return weekStart.AddDays(-7)
}

// EditableWindowEnd is the first week start past the editable horizon.
func (c *WeekWindowCalculator) EditableWindowEnd(loc *time.Location) domain.CivilDate {
	return c.CurrentWeekStart(loc).AddDays(c.horizonWeeks * 7)
}

func (c *WeekWindowCalculator) Classify(weekStart domain.CivilDate, loc *time.Location) WeekStatus {
	current := c.CurrentWeekStart(loc)
	switch {
	case weekStart.Before(current):
		return WeekPast
	case !weekStart.Before(current.AddDays(c.horizonWeeks * 7)):
		return WeekBeyondHorizon
	default:
		return WeekEditable
	}
}

// ValidateWeekStart rejects dates that are not canonical week starts.
func ValidateWeekStart(weekStart domain.CivilDate) error {
	if weekStart.Weekday() != time.Sunday {
		return NewValidationError("week start %s is not a Sunday", weekStart)
	}
	return nil
}
