package domain

// HoursSource records which input produced an employee's weekly total.
type HoursSource string

const (
	HoursSourceConfirmed  HoursSource = "confirmed"  // manually confirmed by a manager
	HoursSourcePayment    HoursSource = "payment"    // copied from an external payment record
	HoursSourceCalculated HoursSource = "calculated" // freshly derived from the week's shifts
)

type EmployeeHours struct {
	Hours  float64     `json:"hours"`
	Source HoursSource `json:"source"`
}

// HoursSummary maps employee ID to that employee's weekly total. It is
// derived at response time and never persisted.
type HoursSummary map[int64]EmployeeHours

// HourRecord holds the externally supplied hour values for one employee in
// one week's schedule. Either field may be absent.
type HourRecord struct {
	ScheduleID     int64    `json:"scheduleID"`
	EmployeeID     int64    `json:"employeeID"`
	ConfirmedHours *float64 `json:"confirmedHours"`
	PaymentHours   *float64 `json:"paymentHours"`
}
