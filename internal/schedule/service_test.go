package schedule

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterline/backend/internal/config"
	"github.com/rosterline/backend/internal/domain"
	"github.com/rosterline/backend/internal/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	schedules      map[int64]*domain.WeeklySchedule
	scheduleByWeek map[string]int64
	shifts         map[int64]*domain.Shift
	templates      map[int64]*domain.ShiftTemplate
	hourRecords    map[int64]map[int64]*domain.HourRecord
	nextID         int64

	createScheduleErr error // returned by the next CreateSchedule call
	getScheduleMisses int   // number of GetScheduleByWeek calls answering ErrNoRows
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		schedules:      make(map[int64]*domain.WeeklySchedule),
		scheduleByWeek: make(map[string]int64),
		shifts:         make(map[int64]*domain.Shift),
		templates:      make(map[int64]*domain.ShiftTemplate),
		hourRecords:    make(map[int64]map[int64]*domain.HourRecord),
	}
}

func weekKey(businessID int64, weekStart domain.CivilDate) string {
	return fmt.Sprintf("%d/%s", businessID, weekStart)
}

func (f *fakeRepo) UpdateBusinessTimezone(b *domain.Business) error { return nil }

func (f *fakeRepo) GetScheduleByWeek(businessID int64, weekStart domain.CivilDate) (*domain.WeeklySchedule, error) {
	if f.getScheduleMisses > 0 {
		f.getScheduleMisses--
		return nil, sql.ErrNoRows
	}
	id, ok := f.scheduleByWeek[weekKey(businessID, weekStart)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *f.schedules[id]
	return &copy, nil
}

func (f *fakeRepo) CreateSchedule(s *domain.WeeklySchedule) error {
	if f.createScheduleErr != nil {
		err := f.createScheduleErr
		f.createScheduleErr = nil
		return err
	}
	if _, exists := f.scheduleByWeek[weekKey(s.BusinessID, s.WeekStart)]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: scheduleWeekConstraint}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	stored := *s
	f.schedules[s.ID] = &stored
	f.scheduleByWeek[weekKey(s.BusinessID, s.WeekStart)] = s.ID
	return nil
}

func (f *fakeRepo) UpdateScheduleStatus(s *domain.WeeklySchedule) error {
	stored, ok := f.schedules[s.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Status = s.Status
	stored.PostedAt = s.PostedAt
	return nil
}

func (f *fakeRepo) GetShiftsBySchedule(scheduleID int64) ([]domain.Shift, error) {
	var out []domain.Shift
	for _, sh := range f.shifts {
		if sh.ScheduleID == scheduleID {
			out = append(out, *sh)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetShiftByID(id int64) (*domain.Shift, error) {
	sh, ok := f.shifts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *sh
	return &copy, nil
}

func (f *fakeRepo) CreateShift(sh *domain.Shift) error {
	f.nextID++
	sh.ID = f.nextID
	sh.CreatedAt = time.Now()
	stored := *sh
	f.shifts[sh.ID] = &stored
	return nil
}

func (f *fakeRepo) CreateShifts(shs []*domain.Shift) error {
	for _, sh := range shs {
		if err := f.CreateShift(sh); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo) UpdateShift(sh *domain.Shift) error {
	if _, ok := f.shifts[sh.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *sh
	f.shifts[sh.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteShift(id int64) error {
	delete(f.shifts, id)
	return nil
}

func (f *fakeRepo) GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return tpl, nil
}

func (f *fakeRepo) GetHourRecords(scheduleID int64) ([]domain.HourRecord, error) {
	var out []domain.HourRecord
	for _, rec := range f.hourRecords[scheduleID] {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRepo) UpsertHourRecord(rec *domain.HourRecord) error {
	if f.hourRecords[rec.ScheduleID] == nil {
		f.hourRecords[rec.ScheduleID] = make(map[int64]*domain.HourRecord)
	}
	stored := *rec
	f.hourRecords[rec.ScheduleID][rec.EmployeeID] = &stored
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Scheduling.HorizonWeeks = 4
	cfg.Scheduling.DefaultTimezone = "UTC"
	cfg.Scheduling.FullDayWhenEqual = true
	return cfg
}

// newTestService pins the clock to Wednesday 2026-09-02 UTC, making
// 2026-08-30 the current week.
func newTestService(repo Repository) *Service {
	svc := NewService(testConfig(), repo)
	svc.Weeks().WithClock(func() time.Time {
		return time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

func testBusiness() *domain.Business {
	return &domain.Business{ID: 1, Name: "Harbor Diner", State: "NY", Timezone: "UTC"}
}

var (
	currentWeek = domain.NewCivilDate(2026, time.August, 30)
	pastWeek    = domain.NewCivilDate(2026, time.August, 23)
	futureWeek  = domain.NewCivilDate(2026, time.October, 4) // past the 4-week horizon
)

func TestGetOrCreate_CreatesDraft(t *testing.T) {
	svc := newTestService(newFakeRepo())

	sched, err := svc.GetOrCreate(testBusiness(), currentWeek)
	require.NoError(t, err)

	assert.Equal(t, domain.ScheduleStatusDraft, sched.Status)
	assert.Nil(t, sched.PostedAt)
	assert.Empty(t, sched.Shifts)
	assert.NotZero(t, sched.ID)
}

func TestGetOrCreate_ReturnsExisting(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	first, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	second, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.schedules, 1)
}

func TestGetOrCreate_RejectsNonSunday(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetOrCreate(testBusiness(), domain.NewCivilDate(2026, time.September, 1))
	var vErr *scheduling.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetOrCreate_LostCreationRace(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	// the "other caller" has already inserted the row, but our first fetch
	// raced ahead of it and saw nothing
	winner, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	repo.getScheduleMisses = 1
	repo.createScheduleErr = &pgconn.PgError{Code: "23505", ConstraintName: scheduleWeekConstraint}

	loser, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	assert.Equal(t, winner.ID, loser.ID)
	assert.Len(t, repo.schedules, 1)
}

func shiftInput(employee int64, day int, start, end scheduling.MinuteOfDay) ShiftInput {
	return ShiftInput{EmployeeID: employee, Day: day, Start: start, End: end}
}

func TestAddShift_ComputesDuration(t *testing.T) {
	svc := newTestService(newFakeRepo())
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	// overnight: 10:00 PM to 6:00 AM
	in := shiftInput(42, 5, 1320, 360)
	sh, err := svc.AddShift(b, sched, &in)
	require.NoError(t, err)

	assert.Equal(t, 8.00, sh.Hours)
	assert.Equal(t, "10:00 PM", sh.StartLabel)
	assert.Equal(t, "6:00 AM", sh.EndLabel)
}

func TestAddShift_PastWeekForbidden(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	// the schedule exists from when the week was still editable
	sched := &domain.WeeklySchedule{BusinessID: b.ID, WeekStart: pastWeek, Status: domain.ScheduleStatusPosted}
	require.NoError(t, repo.CreateSchedule(sched))

	in := shiftInput(42, 1, 540, 1020)
	_, err := svc.AddShift(b, sched, &in)
	assert.ErrorIs(t, err, ErrPastWeek)

	// posted or draft makes no difference
	sched.Status = domain.ScheduleStatusDraft
	_, err = svc.AddShift(b, sched, &in)
	assert.ErrorIs(t, err, ErrPastWeek)
}

func TestAddShift_BeyondHorizonForbidden(t *testing.T) {
	svc := newTestService(newFakeRepo())
	b := testBusiness()

	sched := &domain.WeeklySchedule{ID: 99, BusinessID: b.ID, WeekStart: futureWeek}

	in := shiftInput(42, 1, 540, 1020)
	_, err := svc.AddShift(b, sched, &in)
	assert.ErrorIs(t, err, ErrBeyondHorizon)
}

func TestAddShift_UnknownTemplate(t *testing.T) {
	svc := newTestService(newFakeRepo())
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	templateID := int64(7)
	in := shiftInput(42, 1, 540, 1020)
	in.TemplateID = &templateID

	_, err = svc.AddShift(b, sched, &in)
	var vErr *scheduling.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestBulkAddShifts_AllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	ins := []ShiftInput{
		shiftInput(1, 0, 540, 1020),
		shiftInput(2, 1, 540, 1020),
		shiftInput(3, 2, 540, 1020),
		shiftInput(4, 7, 540, 1020), // invalid day
		shiftInput(5, 4, 540, 1020),
	}

	_, err = svc.BulkAddShifts(b, sched, ins)
	var vErr *scheduling.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "shift 4")

	// nothing was persisted
	assert.Empty(t, repo.shifts)
}

func TestBulkAddShifts_Valid(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	ins := []ShiftInput{
		shiftInput(1, 0, 540, 1020),
		shiftInput(2, 1, 600, 1080),
	}

	shifts, err := svc.BulkAddShifts(b, sched, ins)
	require.NoError(t, err)
	assert.Len(t, shifts, 2)
	assert.Len(t, repo.shifts, 2)
}

func TestUpdateShift_RecomputesDuration(t *testing.T) {
	svc := newTestService(newFakeRepo())
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	in := shiftInput(42, 1, 540, 1020)
	sh, err := svc.AddShift(b, sched, &in)
	require.NoError(t, err)
	require.Equal(t, 8.00, sh.Hours)

	newEnd := scheduling.MinuteOfDay(900) // 3:00 PM
	updated, err := svc.UpdateShift(b, sched, sh.ID, &ShiftPatch{End: &newEnd})
	require.NoError(t, err)

	assert.Equal(t, 6.00, updated.Hours)
	assert.Equal(t, "3:00 PM", updated.EndLabel)
}

func TestUpdateShift_ForeignShiftNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	other := &domain.WeeklySchedule{BusinessID: b.ID, WeekStart: currentWeek.AddDays(7), Status: domain.ScheduleStatusDraft}
	require.NoError(t, repo.CreateSchedule(other))

	in := shiftInput(42, 1, 540, 1020)
	sh, err := svc.AddShift(b, other, &in)
	require.NoError(t, err)

	// a shift belonging to another schedule is invisible here
	note := "swap"
	_, err = svc.UpdateShift(b, sched, sh.ID, &ShiftPatch{Note: &note})
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestDeleteShift(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	in := shiftInput(42, 1, 540, 1020)
	sh, err := svc.AddShift(b, sched, &in)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShift(b, sched, sh.ID))
	assert.Empty(t, repo.shifts)

	assert.ErrorIs(t, svc.DeleteShift(b, sched, sh.ID), ErrShiftNotFound)
}

func TestPost_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	require.NoError(t, svc.Post(sched))
	require.True(t, sched.IsPosted())
	require.NotNil(t, sched.PostedAt)
	firstPostedAt := *sched.PostedAt

	// posting again changes nothing
	require.NoError(t, svc.Post(sched))
	assert.Equal(t, firstPostedAt, *sched.PostedAt)
	assert.Equal(t, domain.ScheduleStatusPosted, repo.schedules[sched.ID].Status)
}

func TestUnpost_ClearsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	require.NoError(t, svc.Post(sched))
	require.NoError(t, svc.Unpost(sched))

	assert.Equal(t, domain.ScheduleStatusDraft, sched.Status)
	assert.Nil(t, sched.PostedAt)
	assert.Nil(t, repo.schedules[sched.ID].PostedAt)
}

func TestEmployeeHours(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	ins := []ShiftInput{
		shiftInput(1, 1, 540, 1020),  // 8h
		shiftInput(1, 2, 1320, 360),  // overnight, 8h
		shiftInput(2, 3, 600, 840),   // 4h
	}
	_, err = svc.BulkAddShifts(b, sched, ins)
	require.NoError(t, err)

	sched, err = svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	summary, err := svc.EmployeeHours(sched)
	require.NoError(t, err)

	assert.Equal(t, domain.EmployeeHours{Hours: 16.00, Source: domain.HoursSourceCalculated}, summary[1])
	assert.Equal(t, domain.EmployeeHours{Hours: 4.00, Source: domain.HoursSourceCalculated}, summary[2])
}

func TestEmployeeHours_SourcePrecedence(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	b := testBusiness()

	sched, err := svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	in := shiftInput(1, 1, 540, 1020) // calculates to 8h
	_, err = svc.AddShift(b, sched, &in)
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmHours(sched, 1, 7.5))

	payment := 6.0
	require.NoError(t, repo.UpsertHourRecord(&domain.HourRecord{
		ScheduleID:   sched.ID,
		EmployeeID:   2, // no shifts, only a payment-copied value
		PaymentHours: &payment,
	}))

	sched, err = svc.GetOrCreate(b, currentWeek)
	require.NoError(t, err)

	summary, err := svc.EmployeeHours(sched)
	require.NoError(t, err)

	assert.Equal(t, domain.EmployeeHours{Hours: 7.5, Source: domain.HoursSourceConfirmed}, summary[1])
	assert.Equal(t, domain.EmployeeHours{Hours: 6.0, Source: domain.HoursSourcePayment}, summary[2])
}

func TestConfirmHours_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	sched := &domain.WeeklySchedule{ID: 1}

	var vErr *scheduling.ValidationError
	assert.ErrorAs(t, svc.ConfirmHours(sched, 1, 200), &vErr)
	assert.ErrorAs(t, svc.ConfirmHours(sched, 0, 8), &vErr)
}
