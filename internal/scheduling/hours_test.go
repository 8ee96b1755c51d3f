package scheduling

import (
	"testing"

	"github.com/rosterline/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHours(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{8.0, 8.0},
		{7.995, 8.0},   // half rounds away from zero
		{7.994, 7.99},
		{1.0 / 3.0, 0.33},
		{10.0 / 3.0, 3.33},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHours(tt.in))
	}
}

func TestTotalHours_RoundsOnce(t *testing.T) {
	// ten shifts of 1/3 hour round to 3.33 as a whole, not to ten rounded
	// 0.33 addends summing to 3.30
	durations := make([]float64, 10)
	for i := range durations {
		durations[i] = 1.0 / 3.0
	}

	total, err := TotalHours(durations)
	require.NoError(t, err)
	assert.Equal(t, 3.33, total)
}

func TestTotalHours_Empty(t *testing.T) {
	total, err := TotalHours(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestTotalHours_RejectsOutOfRangeDay(t *testing.T) {
	var vErr *ValidationError

	_, err := TotalHours([]float64{8, 25})
	assert.ErrorAs(t, err, &vErr)

	_, err = TotalHours([]float64{-1})
	assert.ErrorAs(t, err, &vErr)
}

func TestValidateWeekHours(t *testing.T) {
	assert.NoError(t, ValidateWeekHours(0))
	assert.NoError(t, ValidateWeekHours(168))

	var vErr *ValidationError
	assert.ErrorAs(t, ValidateWeekHours(168.01), &vErr)
	assert.ErrorAs(t, ValidateWeekHours(-0.01), &vErr)
}

func TestHoursEqual(t *testing.T) {
	assert.True(t, HoursEqual(8.0, 8.0))
	assert.True(t, HoursEqual(8.0, 8.0049))
	assert.True(t, HoursEqual(0.1+0.2, 0.3))
	assert.False(t, HoursEqual(8.0, 8.005))
	assert.False(t, HoursEqual(8.0, 8.01))
}

func TestResolveHoursSource(t *testing.T) {
	confirmed := 40.0
	payment := 38.5

	tests := []struct {
		name       string
		confirmed  *float64
		payment    *float64
		calculated float64
		want       domain.EmployeeHours
	}{
		{"confirmed wins", &confirmed, &payment, 39.25, domain.EmployeeHours{Hours: 40.0, Source: domain.HoursSourceConfirmed}},
		{"payment beats calculated", nil, &payment, 39.25, domain.EmployeeHours{Hours: 38.5, Source: domain.HoursSourcePayment}},
		{"calculated as fallback", nil, nil, 39.25, domain.EmployeeHours{Hours: 39.25, Source: domain.HoursSourceCalculated}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveHoursSource(tt.confirmed, tt.payment, tt.calculated))
		})
	}
}
