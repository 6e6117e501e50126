package dog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for dog records.
// The interface exists so the Postgres implementation can be swapped for
// an in-memory fake in tests.
type Repository interface {
	// Create inserts a new record. The store assigns the id.
	Create(ctx context.Context, d *Dog) (uuid.UUID, error)

	// GetByID returns ErrDogNotFound when the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Dog, error)

	// List returns every record ordered by created_at descending.
	List(ctx context.Context) ([]Dog, error)

	// ListByStatus returns records with an exact status match,
	// created_at descending.
	ListByStatus(ctx context.Context, status Status) ([]Dog, error)

	// ListFeatured returns up to limit featured records, newest first.
	ListFeatured(ctx context.Context, limit int) ([]Dog, error)

	// ListOldest returns up to limit records, oldest first. Used as the
	// home-page fallback when nothing is featured.
	ListOldest(ctx context.Context, limit int) ([]Dog, error)

	// Update replaces every editable field of the record.
	// Returns ErrDogNotFound when the record does not exist.
	Update(ctx context.Context, d *Dog) error

	// UpdateStatus writes only the status field (breeder toggle).
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// Delete removes the record. Irreversible; image blobs are not
	// garbage-collected.
	Delete(ctx context.Context, id uuid.UUID) error
}
