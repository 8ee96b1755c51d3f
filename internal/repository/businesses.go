package repository

import (
	"context"
	"time"

	"github.com/rosterline/backend/internal/domain"
)

func (r *Repository) GetBusinessByID(id int64) (*domain.Business, error) {
	query := `
		SELECT name, state, timezone, created_at, version
		FROM businesses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	business := &domain.Business{
		ID: id,
	}

	dst := []any{&business.Name, &business.State, &business.Timezone, &business.CreatedAt, &business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return business, nil
}

func (r *Repository) GetAllBusinesses() ([]*domain.Business, error) {
	query := `
		SELECT id, name, state, timezone, created_at, version FROM businesses
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := []*domain.Business{}
	for rows.Next() {
		var business domain.Business
		dst := []any{&business.ID, &business.Name, &business.State, &business.Timezone, &business.CreatedAt, &business.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		businesses = append(businesses, &business)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *Repository) CreateBusiness(business *domain.Business) error {
	query := `
		INSERT INTO businesses (name, state, timezone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{business.Name, business.State, business.Timezone}
	dst := []any{&business.ID, &business.CreatedAt, &business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateBusinessTimezone(business *domain.Business) error {
	query := `
		UPDATE businesses
		SET
			timezone = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{business.Timezone, business.ID, business.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&business.Version); err != nil {
		return err
	}

	return nil
}
