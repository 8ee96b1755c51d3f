package scheduling

import (
	"math"

	"github.com/rosterline/backend/internal/domain"
)

const (
	MaxDayHours  = 24.0
	MaxWeekHours = 168.0

	// hoursEpsilon is half a rounding unit at 2-decimal precision. Totals
	// closer than this are the same number that took different float paths.
	hoursEpsilon = 0.005
)

// RoundHours rounds to 2 decimal places, half away from zero.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

func HoursEqual(a, b float64) bool {
	return math.Abs(a-b) < hoursEpsilon
}

func ValidateDayHours(hours float64) error {
	if hours < 0 || hours > MaxDayHours {
		return NewValidationError("daily hours %.2f outside [0, %.0f]", hours, MaxDayHours)
	}
	return nil
}

func ValidateWeekHours(hours float64) error {
	if hours < 0 || hours > MaxWeekHours {
		return NewValidationError("weekly hours %.2f outside [0, %.0f]", hours, MaxWeekHours)
	}
	return nil
}

// TotalHours sums shift or day durations into a weekly total. Only the final
// sum is rounded; rounding each addend first compounds the error.
func TotalHours(durations []float64) (float64, error) {
	var sum float64
	for _, d := range durations {
		if err := ValidateDayHours(d); err != nil {
			return 0, err
		}
		sum += d
	}

	total := RoundHours(sum)
	if err := ValidateWeekHours(total); err != nil {
		return 0, err
	}
	return total, nil
}

// ResolveHoursSource picks which hour value an employee's weekly total comes
// from: a manually confirmed value beats one copied from a payment record,
// which beats the freshly calculated total. First non-nil wins.
func ResolveHoursSource(confirmed, payment *float64, calculated float64) domain.EmployeeHours {
	switch {
	case confirmed != nil:
		return domain.EmployeeHours{Hours: RoundHours(*confirmed), Source: domain.HoursSourceConfirmed}
	case payment != nil:
		return domain.EmployeeHours{Hours: RoundHours(*payment), Source: domain.HoursSourcePayment}
	default:
		return domain.EmployeeHours{Hours: RoundHours(calculated), Source: domain.HoursSourceCalculated}
	}
}
