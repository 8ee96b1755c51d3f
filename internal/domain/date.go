package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const civilDateLayout = "2006-01-02"

// CivilDate is a calendar date with no time-of-day and no timezone attached.
// Week starts are stored and compared as civil dates so that the identity of
// a week never shifts when a business's timezone changes or DST kicks in.
type CivilDate struct {
	t time.Time
}

func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// CivilDateOf takes the calendar date of t as observed in t's own location.
func CivilDateOf(t time.Time) CivilDate {
	return NewCivilDate(t.Year(), t.Month(), t.Day())
}

func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return CivilDate{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return CivilDate{t: t}, nil
}

// Time returns the date as midnight UTC, suitable for date arithmetic only.
func (d CivilDate) Time() time.Time {
	return d.t
}

func (d CivilDate) String() string {
	return d.t.Format(civilDateLayout)
}

func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDate{t: d.t.AddDate(0, 0, n)}
}

func (d CivilDate) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d CivilDate) Before(other CivilDate) bool {
	return d.t.Before(other.t)
}

func (d CivilDate) Equal(other CivilDate) bool {
	return d.t.Equal(other.t)
}

func (d CivilDate) IsZero() bool {
	return d.t.IsZero()
}

func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *CivilDate) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %s, expected a YYYY-MM-DD string", data)
	}
	parsed, err := ParseCivilDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so the date maps to a postgres DATE column.
func (d CivilDate) Value() (driver.Value, error) {
	return d.t, nil
}

func (d *CivilDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = CivilDateOf(v)
		return nil
	case string:
		parsed, err := ParseCivilDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CivilDate", src)
	}
}
