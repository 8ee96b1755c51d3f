package scheduling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want MinuteOfDay
	}{
		{"9:00 AM", 540},
		{"12:00 AM", 0},    // midnight
		{"12:30 PM", 750},  // half past noon
		{"12:00 PM", 720},  // noon
		{"10:00 PM", 1320},
		{"6:00 AM", 360},
		{"11:59 PM", 1439},
		{"1:05 pm", 785},
		{"09:00 AM", 540},
		{"9:00AM", 540},
		{"9:00 a.m.", 540},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLabel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLabel_Invalid(t *testing.T) {
	for _, in := range []string{"", "13:00 PM", "0:30 AM", "9:60 AM", "9:00", "midnight"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLabel(in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		in   string
		want MinuteOfDay
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:30", 570},
		{"23:59", 1439},
		{"14:15:00", 855}, // seconds tolerated and discarded
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLegacy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLegacy_Invalid(t *testing.T) {
	for _, in := range []string{"24:00", "12:60", "12", "9:00 AM"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLegacy(in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for m := MinuteOfDay(0); m < MinutesPerDay; m += 17 {
		parsed, err := ParseLabel(m.Label())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "12:00 AM", MinuteOfDay(0).Label())
	assert.Equal(t, "9:00 AM", MinuteOfDay(540).Label())
	assert.Equal(t, "12:00 PM", MinuteOfDay(720).Label())
	assert.Equal(t, "10:00 PM", MinuteOfDay(1320).Label())
	assert.Equal(t, "11:59 PM", MinuteOfDay(1439).Label())
}

func TestNewMinuteOfDay_Range(t *testing.T) {
	_, err := NewMinuteOfDay(-1)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = NewMinuteOfDay(1440)
	assert.ErrorAs(t, err, &vErr)

	m, err := NewMinuteOfDay(1439)
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(1439), m)
}

func TestTimeInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want MinuteOfDay
	}{
		{"minute offset", `540`, 540},
		{"label", `"9:00 AM"`, 540},
		{"legacy", `"21:30"`, 1290},
		{"legacy with seconds", `"21:30:00"`, 1290},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TimeInput
			require.NoError(t, json.Unmarshal([]byte(tt.in), &in))
			assert.True(t, in.IsSet())
			assert.Equal(t, tt.want, in.Minute())
		})
	}
}

func TestTimeInput_UnmarshalJSON_Invalid(t *testing.T) {
	for _, in := range []string{`1440`, `-1`, `"25:00"`, `"noonish"`, `true`} {
		t.Run(in, func(t *testing.T) {
			var ti TimeInput
			err := json.Unmarshal([]byte(in), &ti)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestShiftDurationMinutes(t *testing.T) {
	tests := []struct {
		name       string
		start, end MinuteOfDay
		want       int
	}{
		{"plain day shift", 540, 1020, 480},     // 9:00 AM - 5:00 PM
		{"overnight", 1320, 360, 480},           // 10:00 PM - 6:00 AM
		{"one minute", 0, 1, 1},
		{"almost full day", 1, 0, 1439},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShiftDurationMinutes(tt.start, tt.end, true))
		})
	}
}

func TestShiftDurationMinutes_EqualTimes(t *testing.T) {
	assert.Equal(t, 1440, ShiftDurationMinutes(540, 540, true))
	assert.Equal(t, 0, ShiftDurationMinutes(540, 540, false))
}

func TestShiftDurationHours_Overnight(t *testing.T) {
	// 10:00 PM to 6:00 AM is (1440-1320)+360 = 480 minutes = 8.00 hours
	assert.Equal(t, 8.00, ShiftDurationHours(1320, 360, true))
}

func TestShiftDuration_PartitionsTheDay(t *testing.T) {
	// for any start != end, the two directions of the same pair split the
	// full 24 hours between them
	pairs := []struct{ start, end MinuteOfDay }{
		{0, 100},
		{540, 1020},
		{1320, 360},
		{1, 1439},
		{50, 55},
		{725, 90},
	}

	for _, p := range pairs {
		forward := ShiftDurationMinutes(p.start, p.end, true)
		backward := ShiftDurationMinutes(p.end, p.start, true)
		assert.Equal(t, MinutesPerDay, forward+backward)

		hours := ShiftDurationHours(p.start, p.end, true) + ShiftDurationHours(p.end, p.start, true)
		assert.InDelta(t, 24.0, hours, 1e-9)
	}
}
