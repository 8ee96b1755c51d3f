package repository

import (
	"context"
	"time"

	"github.com/rosterline/backend/internal/domain"
)

func (r *Repository) GetManagerByID(id int64) (*domain.Manager, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM managers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	manager := &domain.Manager{
		ID: id,
	}

	dst := []any{&manager.Username, &manager.PasswordHash, &manager.FullName, &manager.Email, &manager.Role, &manager.IsActive, &manager.CreatedAt, &manager.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return manager, nil
}

func (r *Repository) GetManagerByUsername(username string) (*domain.Manager, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at, version
		FROM managers WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	manager := &domain.Manager{
		Username: username,
	}

	dst := []any{&manager.ID, &manager.PasswordHash, &manager.FullName, &manager.Email, &manager.Role, &manager.IsActive, &manager.CreatedAt, &manager.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return manager, nil
}

func (r *Repository) GetAllManagers() ([]*domain.Manager, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, is_active, created_at, version
		FROM managers ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []*domain.Manager
	for rows.Next() {
		manager := &domain.Manager{}
		dst := []any{&manager.ID, &manager.Username, &manager.PasswordHash, &manager.FullName, &manager.Email, &manager.Role, &manager.IsActive, &manager.CreatedAt, &manager.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		managers = append(managers, manager)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return managers, nil
}

func (r *Repository) CreateManager(manager *domain.Manager) error {
	query := `
		INSERT INTO managers (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{manager.Username, manager.PasswordHash, manager.FullName, manager.Email, manager.Role}
	dst := []any{&manager.ID, &manager.IsActive, &manager.CreatedAt, &manager.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateManagerPassword(manager *domain.Manager) error {
	query := `
		UPDATE managers
		SET
			password_hash = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{manager.PasswordHash, manager.ID, manager.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&manager.Version); err != nil {
		return err
	}

	return nil
}
