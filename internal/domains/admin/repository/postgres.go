package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kennel-backend/internal/domains/admin"
)

// postgresRepository is the concrete admin.Repository backed by pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) admin.Repository {
	return &postgresRepository{pool: pool}
}

const adminColumns = `id, email, password_hash, last_login_at, created_at, updated_at`

func scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.LastLoginAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *admin.Admin) (uuid.UUID, error) {
	query := `
		INSERT INTO admins (email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var adminID uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		a.Email,
		a.PasswordHash,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&adminID)
	if err != nil {
		// 23505 = unique_violation: the email column carries the only
		// unique constraint on this table
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, admin.ErrEmailAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("insert admin: %w", err)
	}

	return adminID, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	a, err := scanAdmin(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check admin email: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET last_login_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
