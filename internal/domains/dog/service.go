package dog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for the dog catalog and
// the admin record manager.
type Service interface {
	// Public catalog
	//
	// Search fetches the full list (newest first) and applies the
	// gallery predicates in memory: exact status match, case-insensitive
	// substring search on name or breed.
	Search(ctx context.Context, statusFilter, searchTerm string) ([]Dog, error)

	// Breeders returns the featured-sire listing (status = Padreador).
	Breeders(ctx context.Context) ([]Dog, error)

	// Featured returns up to 4 featured dogs for the home page, falling
	// back to the 4 oldest records when nothing is featured.
	Featured(ctx context.Context) ([]Dog, error)

	// Admin record manager
	List(ctx context.Context) ([]Dog, error)
	Create(ctx context.Context, adminID uuid.UUID, req DogRequest, images []ImageRef) (*Dog, error)
	Update(ctx context.Context, adminID uuid.UUID, id uuid.UUID, req DogRequest, images []ImageRef) (*Dog, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleBreeder flips status between Padreador and Disponível and
	// returns the updated record together with the freshly re-fetched
	// list. The re-fetch runs strictly after the write acknowledgment.
	ToggleBreeder(ctx context.Context, id uuid.UUID) (*Dog, []Dog, error)
}

// BlobStorage is the slice of the object store the dog service needs.
type BlobStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	RemoveAll(ctx context.Context, keys []string) error
}
