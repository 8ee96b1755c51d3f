package scheduling

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinuteOfDay is the canonical internal shift time: minutes elapsed since
// local midnight, in [0, 1440). Labels and legacy 24-hour strings are
// normalized into this type once at the boundary; nothing past the codec
// ever branches on wire format.
type MinuteOfDay int

const MinutesPerDay = 1440

func NewMinuteOfDay(n int) (MinuteOfDay, error) {
	if n < 0 || n >= MinutesPerDay {
		return 0, NewValidationError("minute offset %d is outside [0, %d)", n, MinutesPerDay)
	}
	return MinuteOfDay(n), nil
}

func (m MinuteOfDay) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

// Label renders the time in the 12-hour display format, e.g. "9:00 AM".
func (m MinuteOfDay) Label() string {
	hour := int(m) / 60
	minute := int(m) % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

var (
	labelPattern  = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9])\s?([AaPp])\.?[Mm]\.?$`)
	legacyPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])(?::[0-5][0-9])?$`)
)

// ParseLabel converts a 12-hour label such as "9:00 AM" or "12:30 pm".
func ParseLabel(s string) (MinuteOfDay, error) {
	match := labelPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, NewValidationError("invalid time label %q, expected e.g. \"9:00 AM\"", s)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	hour %= 12
	if strings.EqualFold(match[3], "p") {
		hour += 12
	}

	return MinuteOfDay(hour*60 + minute), nil
}

// ParseLegacy converts a pre-migration 24-hour "HH:MM" or "HH:MM:SS" string.
// Seconds are accepted and discarded; no shift was ever second-granular.
func ParseLegacy(s string) (MinuteOfDay, error) {
	match := legacyPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, NewValidationError("invalid 24-hour time %q, expected HH:MM or HH:MM:SS", s)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	return MinuteOfDay(hour*60 + minute), nil
}

// ParseTime accepts either display format, trying the label first.
func ParseTime(s string) (MinuteOfDay, error) {
	if m, err := ParseLabel(s); err == nil {
		return m, nil
	}
	if m, err := ParseLegacy(s); err == nil {
		return m, nil
	}
	return 0, NewValidationError("unrecognized time %q, expected \"9:00 AM\" or \"HH:MM\"", s)
}

// TimeInput is the tagged wire form of a shift time: a JSON number carrying a
// minute offset, or a JSON string carrying a label or a legacy 24-hour time.
// Whatever the form, it is normalized into a MinuteOfDay during decoding.
type TimeInput struct {
	minute MinuteOfDay
	set    bool
}

func (in *TimeInput) UnmarshalJSON(data []byte) error {
	var offset int
	if err := json.Unmarshal(data, &offset); err == nil {
		minute, err := NewMinuteOfDay(offset)
		if err != nil {
			return err
		}
		in.minute, in.set = minute, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("time must be a minute offset or a time string")
	}
	minute, err := ParseTime(s)
	if err != nil {
		return err
	}
	in.minute, in.set = minute, true
	return nil
}

func (in TimeInput) Minute() MinuteOfDay {
	return in.minute
}

func (in TimeInput) IsSet() bool {
	return in.set
}

// ShiftDurationMinutes derives a shift's length from its start and end
// offsets. An end before the start means the shift crosses midnight. Equal
// start and end is a full 24-hour shift when fullDayWhenEqual is set, and a
// zero-length shift otherwise.
func ShiftDurationMinutes(start, end MinuteOfDay, fullDayWhenEqual bool) int {
	switch {
	case start == end:
		if fullDayWhenEqual {
			return MinutesPerDay
		}
		return 0
	case end > start:
		return int(end - start)
	default:
		// overnight: the remainder of the day plus the morning spillover
		return int(MinutesPerDay-start) + int(end)
	}
}

// ShiftDurationHours is ShiftDurationMinutes expressed in hours, rounded to
// 2 decimal places.
func ShiftDurationHours(start, end MinuteOfDay, fullDayWhenEqual bool) float64 {
	return RoundHours(float64(ShiftDurationMinutes(start, end, fullDayWhenEqual)) / 60)
}
