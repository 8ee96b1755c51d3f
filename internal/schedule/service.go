package schedule

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterline/backend/internal/config"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/scheduling"
)

// scheduleWeekConstraint backs the at-most-one-schedule-per-(business, week)
// invariant. Losing the creation race surfaces as a violation of this
// constraint and is handled by re-fetching, never returned to the caller.
const scheduleWeekConstraint = "weekly_schedules_business_id_week_start_key"

var (
	ErrPastWeek      = errors.New("this week is in the past and can no longer be edited")
	ErrBeyondHorizon = errors.New("this week is beyond the editable scheduling horizon")
	ErrShiftNotFound = errors.New("shift does not exist in this schedule")
)

// Repository is the storage surface the schedule lifecycle needs. The
// concrete postgres repository satisfies it; tests use a fake.
type Repository interface {
	UpdateBusinessTimezone(b *domain.Business) error
	GetScheduleByWeek(businessID int64, weekStart domain.CivilDate) (*domain.WeeklySchedule, error)
	CreateSchedule(s *domain.WeeklySchedule) error
	UpdateScheduleStatus(s *domain.WeeklySchedule) error
	GetShiftsBySchedule(scheduleID int64) ([]domain.Shift, error)
	GetShiftByID(id int64) (*domain.Shift, error)
	CreateShift(sh *domain.Shift) error
	CreateShifts(shs []*domain.Shift) error
	UpdateShift(sh *domain.Shift) error
	DeleteShift(id int64) error
	GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error)
	GetHourRecords(scheduleID int64) ([]domain.HourRecord, error)
	UpsertHourRecord(rec *domain.HourRecord) error
}

// Service owns the draft/posted lifecycle of weekly schedules. It holds no
// state between calls; every operation is a computation over its inputs plus
// repository round trips.
type Service struct {
	cfg   *config.Config
	repo  Repository
	tz    *scheduling.TimezoneResolver
	weeks *scheduling.WeekWindowCalculator
}

func NewService(cfg *config.Config, repo Repository) *Service {
	return &Service{
		cfg:   cfg,
		repo:  repo,
		tz:    scheduling.NewTimezoneResolver(cfg.Scheduling.DefaultTimezone),
		weeks: scheduling.NewWeekWindowCalculator(cfg.Scheduling.HorizonWeeks),
	}
}

// Weeks exposes the window calculator for read-only week navigation.
func (s *Service) Weeks() *scheduling.WeekWindowCalculator {
	return s.weeks
}

// Timezones exposes the jurisdiction resolver.
func (s *Service) Timezones() *scheduling.TimezoneResolver {
	return s.tz
}

// BusinessLocation returns the business's local timezone, resolving it from
// the jurisdiction code and caching it back onto the record on first use. A
// failed resolution degrades to the deployment default so a misconfigured
// business can still be scheduled.
func (s *Service) BusinessLocation(b *domain.Business) *time.Location {
	if b.Timezone != "" {
		if loc, err := time.LoadLocation(b.Timezone); err == nil {
			return loc
		}
		slog.Warn("business has unloadable cached timezone", "businessID", b.ID, "timezone", b.Timezone)
	}

	zone, err := s.tz.Resolve(b.State)
	if err != nil {
		slog.Warn("cannot resolve business timezone, falling back to default", "businessID", b.ID, "state", b.State)
		return s.tz.DefaultLocation()
	}
	loc, err := time.LoadLocation(zone.Zone)
	if err != nil {
		return s.tz.DefaultLocation()
	}

	b.Timezone = zone.Zone
	if err := s.repo.UpdateBusinessTimezone(b); err != nil {
		// caching is best effort; next request resolves again
		slog.Warn("cannot cache resolved timezone", "businessID", b.ID, "error", err)
	}

	return loc
}

// CurrentWeekStart is the canonical week start for the business as of now.
func (s *Service) CurrentWeekStart(b *domain.Business) domain.CivilDate {
	return s.weeks.CurrentWeekStart(s.BusinessLocation(b))
}

// GetOrCreate returns the schedule for (business, weekStart), creating a
// draft one on first access. Safe to call concurrently for the same key:
// whoever loses the insert race re-fetches the winner's row.
func (s *Service) GetOrCreate(b *domain.Business, weekStart domain.CivilDate) (*domain.WeeklySchedule, error) {
	if err := scheduling.ValidateWeekStart(weekStart); err != nil {
		return nil, err
	}

	sched, err := s.repo.GetScheduleByWeek(b.ID, weekStart)
	if err == nil {
		return s.withShifts(sched)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	sched = &domain.WeeklySchedule{
		BusinessID: b.ID,
		WeekStart:  weekStart,
		Status:     domain.ScheduleStatusDraft,
	}
	if err := s.repo.CreateSchedule(sched); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == scheduleWeekConstraint {
			// another caller created it between our fetch and insert
			existing, err := s.repo.GetScheduleByWeek(b.ID, weekStart)
			if err != nil {
				return nil, err
			}
			return s.withShifts(existing)
		}
		return nil, err
	}

	sched.Shifts = []domain.Shift{}
	return sched, nil
}

func (s *Service) withShifts(sched *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	shifts, err := s.repo.GetShiftsBySchedule(sched.ID)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		s.decorateShift(&shifts[i])
	}
	sched.Shifts = shifts
	return sched, nil
}

func (s *Service) decorateShift(sh *domain.Shift) {
	sh.StartLabel = scheduling.MinuteOfDay(sh.StartMinute).Label()
	sh.EndLabel = scheduling.MinuteOfDay(sh.EndMinute).Label()
}

// checkEditable guards every schedule mutation. Weeks outside the editable
// window are rejected regardless of draft/posted status.
func (s *Service) checkEditable(b *domain.Business, weekStart domain.CivilDate) error {
	switch s.weeks.Classify(weekStart, s.BusinessLocation(b)) {
	case scheduling.WeekPast:
		return ErrPastWeek
	case scheduling.WeekBeyondHorizon:
		return ErrBeyondHorizon
	default:
		return nil
	}
}

// ShiftInput carries one shift's validated, already-normalized fields.
type ShiftInput struct {
	EmployeeID int64
	Day        int
	Start      scheduling.MinuteOfDay
	End        scheduling.MinuteOfDay
	TemplateID *int64
	Note       string
}

func (s *Service) validateShiftInput(b *domain.Business, in *ShiftInput) error {
	if in.EmployeeID <= 0 {
		return scheduling.NewValidationError("invalid employee id %d", in.EmployeeID)
	}
	if in.Day < 0 || in.Day > 6 {
		return scheduling.NewValidationError("day %d outside 0 (Sunday) to 6 (Saturday)", in.Day)
	}
	if !in.Start.Valid() || !in.End.Valid() {
		return scheduling.NewValidationError("shift times must be minute offsets in [0, %d)", scheduling.MinutesPerDay)
	}

	if in.TemplateID != nil {
		tpl, err := s.repo.GetShiftTemplateByID(*in.TemplateID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return scheduling.NewValidationError("shift template %d does not exist", *in.TemplateID)
			}
			return err
		}
		if tpl.BusinessID != b.ID {
			return scheduling.NewValidationError("shift template %d belongs to another business", *in.TemplateID)
		}
	}

	return nil
}

func (s *Service) buildShift(sched *domain.WeeklySchedule, in *ShiftInput) *domain.Shift {
	sh := &domain.Shift{
		ScheduleID:  sched.ID,
		EmployeeID:  in.EmployeeID,
		Day:         in.Day,
		StartMinute: int(in.Start),
		EndMinute:   int(in.End),
		TemplateID:  in.TemplateID,
		Note:        in.Note,
		Hours:       scheduling.ShiftDurationHours(in.Start, in.End, s.cfg.Scheduling.FullDayWhenEqual),
	}
	s.decorateShift(sh)
	return sh
}

func (s *Service) AddShift(b *domain.Business, sched *domain.WeeklySchedule, in *ShiftInput) (*domain.Shift, error) {
	if err := s.checkEditable(b, sched.WeekStart); err != nil {
		return nil, err
	}
	if err := s.validateShiftInput(b, in); err != nil {
		return nil, err
	}

	sh := s.buildShift(sched, in)
	if err := s.repo.CreateShift(sh); err != nil {
		return nil, err
	}

	return sh, nil
}

// BulkAddShifts persists a batch of shifts as a single unit. Validation runs
// over the whole batch before any write; one bad item rejects all of them.
func (s *Service) BulkAddShifts(b *domain.Business, sched *domain.WeeklySchedule, ins []ShiftInput) ([]*domain.Shift, error) {
	if err := s.checkEditable(b, sched.WeekStart); err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, scheduling.NewValidationError("empty shift batch")
	}

	for i := range ins {
		if err := s.validateShiftInput(b, &ins[i]); err != nil {
			var vErr *scheduling.ValidationError
			if errors.As(err, &vErr) {
				return nil, scheduling.NewValidationError("shift %d: %s", i+1, vErr.Message)
			}
			return nil, err
		}
	}

	shifts := make([]*domain.Shift, len(ins))
	for i := range ins {
		shifts[i] = s.buildShift(sched, &ins[i])
	}

	if err := s.repo.CreateShifts(shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// ShiftPatch is a partial update; nil fields are left untouched.
type ShiftPatch struct {
	EmployeeID    *int64
	Day           *int
	Start         *scheduling.MinuteOfDay
	End           *scheduling.MinuteOfDay
	TemplateID    *int64
	ClearTemplate bool
	Note          *string
}

func (s *Service) UpdateShift(b *domain.Business, sched *domain.WeeklySchedule, shiftID int64, patch *ShiftPatch) (*domain.Shift, error) {
	if err := s.checkEditable(b, sched.WeekStart); err != nil {
		return nil, err
	}

	sh, err := s.getScheduleShift(sched, shiftID)
	if err != nil {
		return nil, err
	}

	if patch.EmployeeID != nil {
		sh.EmployeeID = *patch.EmployeeID
	}
	if patch.Day != nil {
		sh.Day = *patch.Day
	}
	if patch.Start != nil {
		sh.StartMinute = int(*patch.Start)
	}
	if patch.End != nil {
		sh.EndMinute = int(*patch.End)
	}
	if patch.ClearTemplate {
		sh.TemplateID = nil
	} else if patch.TemplateID != nil {
		sh.TemplateID = patch.TemplateID
	}
	if patch.Note != nil {
		sh.Note = *patch.Note
	}

	in := &ShiftInput{
		EmployeeID: sh.EmployeeID,
		Day:        sh.Day,
		Start:      scheduling.MinuteOfDay(sh.StartMinute),
		End:        scheduling.MinuteOfDay(sh.EndMinute),
		TemplateID: sh.TemplateID,
		Note:       sh.Note,
	}
	if err := s.validateShiftInput(b, in); err != nil {
		return nil, err
	}

	// duration is derived state; recompute on every update
	sh.Hours = scheduling.ShiftDurationHours(in.Start, in.End, s.cfg.Scheduling.FullDayWhenEqual)

	if err := s.repo.UpdateShift(sh); err != nil {
		return nil, err
	}

	s.decorateShift(sh)
	return sh, nil
}

func (s *Service) DeleteShift(b *domain.Business, sched *domain.WeeklySchedule, shiftID int64) error {
	if err := s.checkEditable(b, sched.WeekStart); err != nil {
		return err
	}

	sh, err := s.getScheduleShift(sched, shiftID)
	if err != nil {
		return err
	}

	return s.repo.DeleteShift(sh.ID)
}

func (s *Service) getScheduleShift(sched *domain.WeeklySchedule, shiftID int64) (*domain.Shift, error) {
	sh, err := s.repo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if sh.ScheduleID != sched.ID {
		return nil, ErrShiftNotFound
	}
	return sh, nil
}

// Post publishes the schedule to employees. Posting an already-posted
// schedule is a no-op success.
func (s *Service) Post(sched *domain.WeeklySchedule) error {
	if sched.IsPosted() {
		return nil
	}

	now := time.Now().UTC()
	sched.Status = domain.ScheduleStatusPosted
	sched.PostedAt = &now

	return s.repo.UpdateScheduleStatus(sched)
}

// Unpost reverts the schedule to an employer-only draft and clears the
// posted timestamp.
func (s *Service) Unpost(sched *domain.WeeklySchedule) error {
	if !sched.IsPosted() {
		return nil
	}

	sched.Status = domain.ScheduleStatusDraft
	sched.PostedAt = nil

	return s.repo.UpdateScheduleStatus(sched)
}

// ConfirmHours records a manually confirmed weekly total for one employee.
func (s *Service) ConfirmHours(sched *domain.WeeklySchedule, employeeID int64, hours float64) error {
	if employeeID <= 0 {
		return scheduling.NewValidationError("invalid employee id %d", employeeID)
	}
	if err := scheduling.ValidateWeekHours(hours); err != nil {
		return err
	}

	confirmed := scheduling.RoundHours(hours)
	return s.repo.UpsertHourRecord(&domain.HourRecord{
		ScheduleID:     sched.ID,
		EmployeeID:     employeeID,
		ConfirmedHours: &confirmed,
	})
}

// EmployeeHours folds the schedule's shifts into per-employee weekly totals,
// resolved against any externally supplied hour records. Always recomputed;
// never served from storage.
func (s *Service) EmployeeHours(sched *domain.WeeklySchedule) (domain.HoursSummary, error) {
	records, err := s.repo.GetHourRecords(sched.ID)
	if err != nil {
		return nil, err
	}
	recordByEmployee := make(map[int64]domain.HourRecord, len(records))
	for _, rec := range records {
		recordByEmployee[rec.EmployeeID] = rec
	}

	durations := make(map[int64][]float64)
	for i := range sched.Shifts {
		sh := &sched.Shifts[i]
		d := scheduling.ShiftDurationHours(
			scheduling.MinuteOfDay(sh.StartMinute),
			scheduling.MinuteOfDay(sh.EndMinute),
			s.cfg.Scheduling.FullDayWhenEqual,
		)
		durations[sh.EmployeeID] = append(durations[sh.EmployeeID], d)
	}

	summary := make(domain.HoursSummary, len(durations))
	for employeeID, ds := range durations {
		total, err := scheduling.TotalHours(ds)
		if err != nil {
			return nil, err
		}
		rec := recordByEmployee[employeeID]
		summary[employeeID] = scheduling.ResolveHoursSource(rec.ConfirmedHours, rec.PaymentHours, total)
	}

	// employees with an hour record but no shifts this week still appear
	for employeeID, rec := range recordByEmployee {
		if _, ok := summary[employeeID]; !ok {
			summary[employeeID] = scheduling.ResolveHoursSource(rec.ConfirmedHours, rec.PaymentHours, 0)
		}
	}

	return summary, nil
}
