package repository

import (
	"context"
	"time"

	"github.com/rosterline/backend/internal/domain"
)

func (r *Repository) GetScheduleByWeek(businessID int64, weekStart domain.CivilDate) (*domain.WeeklySchedule, error) {
	query := `
		SELECT id, status, posted_at, created_at, version
		FROM weekly_schedules
		WHERE business_id = $1 AND week_start = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	sched := &domain.WeeklySchedule{
		BusinessID: businessID,
		WeekStart:  weekStart,
	}

	dst := []any{&sched.ID, &sched.Status, &sched.PostedAt, &sched.CreatedAt, &sched.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, businessID, weekStart).Scan(dst...); err != nil {
		return nil, err
	}

	return sched, nil
}

// CreateSchedule inserts a new draft row. The unique constraint
// weekly_schedules_business_id_week_start_key guarantees at most one schedule
// per (business, week_start); callers racing on the same key must treat the
// resulting violation as "already exists" and fetch instead.
func (r *Repository) CreateSchedule(sched *domain.WeeklySchedule) error {
	query := `
		INSERT INTO weekly_schedules (business_id, week_start, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{sched.BusinessID, sched.WeekStart, sched.Status}
	dst := []any{&sched.ID, &sched.CreatedAt, &sched.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateScheduleStatus(sched *domain.WeeklySchedule) error {
	query := `
		UPDATE weekly_schedules
		SET
			status = $1,
			posted_at = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{sched.Status, sched.PostedAt, sched.ID, sched.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&sched.Version); err != nil {
		return err
	}

	return nil
}
