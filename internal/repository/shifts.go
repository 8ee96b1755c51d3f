package repository

import (
	"context"
	"time"

	"github.com/rosterline/backend/internal/domain"
)

func (r *Repository) GetShiftsBySchedule(scheduleID int64) ([]domain.Shift, error) {
	query := `
		SELECT id, employee_id, day, start_minute, end_minute, template_id, note, hours, created_at, version
		FROM shifts
		WHERE schedule_id = $1
		ORDER BY day, start_minute, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []domain.Shift{}
	for rows.Next() {
		sh := domain.Shift{ScheduleID: scheduleID}
		dst := []any{&sh.ID, &sh.EmployeeID, &sh.Day, &sh.StartMinute, &sh.EndMinute, &sh.TemplateID, &sh.Note, &sh.Hours, &sh.CreatedAt, &sh.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT schedule_id, employee_id, day, start_minute, end_minute, template_id, note, hours, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	sh := &domain.Shift{
		ID: id,
	}

	dst := []any{&sh.ScheduleID, &sh.EmployeeID, &sh.Day, &sh.StartMinute, &sh.EndMinute, &sh.TemplateID, &sh.Note, &sh.Hours, &sh.CreatedAt, &sh.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return sh, nil
}

func (r *Repository) CreateShift(sh *domain.Shift) error {
	query := `
		INSERT INTO shifts (schedule_id, employee_id, day, start_minute, end_minute, template_id, note, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{sh.ScheduleID, sh.EmployeeID, sh.Day, sh.StartMinute, sh.EndMinute, sh.TemplateID, sh.Note, sh.Hours}
	dst := []any{&sh.ID, &sh.CreatedAt, &sh.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// CreateShifts inserts a batch inside one transaction. Either every shift
// lands or none do; a half-populated week must never be observable.
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (schedule_id, employee_id, day, start_minute, end_minute, template_id, note, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	for _, sh := range shifts {
		args := []any{sh.ScheduleID, sh.EmployeeID, sh.Day, sh.StartMinute, sh.EndMinute, sh.TemplateID, sh.Note, sh.Hours}
		dst := []any{&sh.ID, &sh.CreatedAt, &sh.Version}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(sh *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			day = $2,
			start_minute = $3,
			end_minute = $4,
			template_id = $5,
			note = $6,
			hours = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{sh.EmployeeID, sh.Day, sh.StartMinute, sh.EndMinute, sh.TemplateID, sh.Note, sh.Hours, sh.ID, sh.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&sh.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetHourRecords(scheduleID int64) ([]domain.HourRecord, error) {
	query := `
		SELECT employee_id, confirmed_hours, payment_hours
		FROM schedule_hour_records
		WHERE schedule_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.HourRecord{}
	for rows.Next() {
		rec := domain.HourRecord{ScheduleID: scheduleID}
		if err := rows.Scan(&rec.EmployeeID, &rec.ConfirmedHours, &rec.PaymentHours); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) UpsertHourRecord(rec *domain.HourRecord) error {
	query := `
		INSERT INTO schedule_hour_records (schedule_id, employee_id, confirmed_hours, payment_hours)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (schedule_id, employee_id) DO UPDATE
		SET
			confirmed_hours = COALESCE(EXCLUDED.confirmed_hours, schedule_hour_records.confirmed_hours),
			payment_hours = COALESCE(EXCLUDED.payment_hours, schedule_hour_records.payment_hours)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rec.ScheduleID, rec.EmployeeID, rec.ConfirmedHours, rec.PaymentHours}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
