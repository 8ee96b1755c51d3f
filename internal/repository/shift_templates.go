package repository

import (
	"context"
	"time"

	"github.com/rosterline/backend/internal/domain"
)

func (r *Repository) GetShiftTemplatesByBusiness(businessID int64) ([]*domain.ShiftTemplate, error) {
	query := `
		SELECT id, name, start_minute, end_minute, color, is_active, created_at, version
		FROM shift_templates
		WHERE business_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*domain.ShiftTemplate{}
	for rows.Next() {
		tpl := domain.ShiftTemplate{BusinessID: businessID}
		dst := []any{&tpl.ID, &tpl.Name, &tpl.StartMinute, &tpl.EndMinute, &tpl.Color, &tpl.IsActive, &tpl.CreatedAt, &tpl.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error) {
	query := `
		SELECT business_id, name, start_minute, end_minute, color, is_active, created_at, version
		FROM shift_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tpl := &domain.ShiftTemplate{
		ID: id,
	}

	dst := []any{&tpl.BusinessID, &tpl.Name, &tpl.StartMinute, &tpl.EndMinute, &tpl.Color, &tpl.IsActive, &tpl.CreatedAt, &tpl.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return tpl, nil
}

func (r *Repository) CreateShiftTemplate(tpl *domain.ShiftTemplate) error {
	query := `
		INSERT INTO shift_templates (business_id, name, start_minute, end_minute, color, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{tpl.BusinessID, tpl.Name, tpl.StartMinute, tpl.EndMinute, tpl.Color, tpl.IsActive}
	dst := []any{&tpl.ID, &tpl.CreatedAt, &tpl.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShiftTemplate(tpl *domain.ShiftTemplate) error {
	query := `
		UPDATE shift_templates
		SET
			name = $1,
			start_minute = $2,
			end_minute = $3,
			color = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{tpl.Name, tpl.StartMinute, tpl.EndMinute, tpl.Color, tpl.IsActive, tpl.ID, tpl.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&tpl.Version); err != nil {
		return err
	}

	return nil
}

// DeleteShiftTemplate removes the template only. Shifts referencing it keep
// their own start/end; the foreign key is ON DELETE SET NULL.
func (r *Repository) DeleteShiftTemplate(id int64) error {
	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
