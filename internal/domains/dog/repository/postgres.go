package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kennel-backend/internal/domains/dog"
)

// postgresRepository is the concrete dog.Repository backed by pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) dog.Repository {
	return &postgresRepository{pool: pool}
}

const dogColumns = `id, name, breed, age, sex, status, description, is_featured, image_urls, created_at, updated_at`

func scanDog(row pgx.Row) (*dog.Dog, error) {
	var d dog.Dog
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&d.Age,
		&d.Sex,
		&d.Status,
		&d.Description,
		&d.IsFeatured,
		&d.ImageURLs,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// image_urls may be NULL for legacy rows; callers expect a slice
	if d.ImageURLs == nil {
		d.ImageURLs = []string{}
	}
	return &d, nil
}

func collectDogs(rows pgx.Rows) ([]dog.Dog, error) {
	defer rows.Close()

	dogs := []dog.Dog{}
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dog: %w", err)
		}
		dogs = append(dogs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dogs: %w", err)
	}
	return dogs, nil
}

// ========================================
// MUTATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, d *dog.Dog) (uuid.UUID, error) {
	query := `
		INSERT INTO dogs (
			name, breed, age, sex, status,
			description, is_featured, image_urls,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10
		)
		RETURNING id
	`

	var dogID uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		d.Name,
		d.Breed,
		d.Age,
		d.Sex,
		d.Status,
		d.Description,
		d.IsFeatured,
		d.ImageURLs,
		d.CreatedAt,
		d.UpdatedAt,
	).Scan(&dogID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert dog: %w", err)
	}

	return dogID, nil
}

func (r *postgresRepository) Update(ctx context.Context, d *dog.Dog) error {
	query := `
		UPDATE dogs SET
			name = $2, breed = $3, age = $4, sex = $5, status = $6,
			description = $7, is_featured = $8, image_urls = $9,
			updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		d.ID,
		d.Name,
		d.Breed,
		d.Age,
		d.Sex,
		d.Status,
		d.Description,
		d.IsFeatured,
		d.ImageURLs,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dog.ErrDogNotFound
	}

	return nil
}

// UpdateStatus writes only the status column (breeder toggle shortcut).
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status dog.Status) error {
	query := `UPDATE dogs SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update dog status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dog.ErrDogNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dog.ErrDogNotFound
	}

	return nil
}

// ========================================
// QUERIES
// ========================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*dog.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE id = $1`

	d, err := scanDog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dog.ErrDogNotFound
		}
		return nil, fmt.Errorf("get dog by id: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]dog.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}

	return collectDogs(rows)
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status dog.Status) ([]dog.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list dogs by status: %w", err)
	}

	return collectDogs(rows)
}

func (r *postgresRepository) ListFeatured(ctx context.Context, limit int) ([]dog.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE is_featured = TRUE ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured dogs: %w", err)
	}

	return collectDogs(rows)
}

func (r *postgresRepository) ListOldest(ctx context.Context, limit int) ([]dog.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs ORDER BY created_at ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list oldest dogs: %w", err)
	}

	return collectDogs(rows)
}
