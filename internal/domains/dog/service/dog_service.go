package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"kennel-backend/internal/domains/dog"
	"kennel-backend/internal/infrastructure/storage"
	"kennel-backend/pkg/logger"
)

const featuredLimit = 4

// dogService implements dog.Service.
type dogService struct {
	repo      dog.Repository
	blobs     dog.BlobStorage
	processor *storage.ImageProcessor
}

func NewDogService(repo dog.Repository, blobs dog.BlobStorage, processor *storage.ImageProcessor) dog.Service {
	return &dogService{
		repo:      repo,
		blobs:     blobs,
		processor: processor,
	}
}

// ========================================
// PUBLIC CATALOG
// ========================================

// Search fetches everything newest-first and filters in memory. The
// predicates intentionally live here, not in SQL: status is an exact,
// case-sensitive match and the search term is a case-insensitive
// substring match on name or breed.
func (s *dogService) Search(ctx context.Context, statusFilter, searchTerm string) ([]dog.Dog, error) {
	dogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dogs: %w", err)
	}

	if statusFilter == "" && searchTerm == "" {
		return dogs, nil
	}
	return dog.Filter(dogs, statusFilter, searchTerm), nil
}

func (s *dogService) Breeders(ctx context.Context) ([]dog.Dog, error) {
	dogs, err := s.repo.ListByStatus(ctx, dog.StatusBreeder)
	if err != nil {
		return nil, fmt.Errorf("fetch breeders: %w", err)
	}
	return dogs, nil
}

// Featured returns the home-page selection: up to 4 featured dogs,
// or the first 4 dogs ever registered when nothing is featured.
func (s *dogService) Featured(ctx context.Context) ([]dog.Dog, error) {
	dogs, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch featured dogs: %w", err)
	}
	if len(dogs) > 0 {
		return dogs, nil
	}

	dogs, err = s.repo.ListOldest(ctx, featuredLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch fallback dogs: %w", err)
	}
	return dogs, nil
}

// ========================================
// ADMIN RECORD MANAGER
// ========================================

func (s *dogService) List(ctx context.Context) ([]dog.Dog, error) {
	return s.repo.List(ctx)
}

func (s *dogService) Create(ctx context.Context, adminID uuid.UUID, req dog.DogRequest, images []dog.ImageRef) (*dog.Dog, error) {
	// 1. VALIDATE BEFORE ANY STORE CALL
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. STAGE UPLOADS
	urls, staged, err := s.resolveImages(ctx, adminID, images)
	if err != nil {
		return nil, err
	}

	// 3. WRITE THE RECORD IN A SINGLE CALL
	now := time.Now()
	d := &dog.Dog{
		Name:        req.Name,
		Breed:       req.Breed,
		Age:         optional(req.Age),
		Sex:         dog.Sex(req.Sex),
		Status:      dog.Status(req.Status),
		Description: optional(req.Description),
		IsFeatured:  req.IsFeatured,
		ImageURLs:   urls,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, d)
	if err != nil {
		// Write failed after staging: clean up the blobs uploaded in
		// this call so nothing is leaked
		s.cleanupStaged(ctx, staged)
		return nil, fmt.Errorf("create dog: %w", err)
	}
	d.ID = id

	return d, nil
}

func (s *dogService) Update(ctx context.Context, adminID uuid.UUID, id uuid.UUID, req dog.DogRequest, images []dog.ImageRef) (*dog.Dog, error) {
	// 1. VALIDATE BEFORE ANY STORE CALL
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. THE RECORD MUST EXIST
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. STAGE UPLOADS
	// images is the full ordered list: retained URLs first, new files
	// as the suffix. URLs the editor removed are simply absent; the
	// blobs behind them are not garbage-collected.
	urls, staged, err := s.resolveImages(ctx, adminID, images)
	if err != nil {
		return nil, err
	}

	// 4. FULL-RECORD REPLACE OF THE EDITABLE FIELDS
	existing.Name = req.Name
	existing.Breed = req.Breed
	existing.Age = optional(req.Age)
	existing.Sex = dog.Sex(req.Sex)
	existing.Status = dog.Status(req.Status)
	existing.Description = optional(req.Description)
	existing.IsFeatured = req.IsFeatured
	existing.ImageURLs = urls
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		s.cleanupStaged(ctx, staged)
		return nil, fmt.Errorf("update dog: %w", err)
	}

	return existing, nil
}

// Delete removes the record. Image blobs are left behind; see the blob
// lifecycle note in DESIGN.md.
func (s *dogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ToggleBreeder flips the status field and re-fetches the list. The
// list read runs only after the write has been acknowledged.
func (s *dogService) ToggleBreeder(ctx context.Context, id uuid.UUID) (*dog.Dog, []dog.Dog, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	newStatus := dog.StatusBreeder
	if d.Status == dog.StatusBreeder {
		newStatus = dog.StatusAvailable
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, nil, fmt.Errorf("toggle breeder status: %w", err)
	}
	d.Status = newStatus

	dogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh dogs after toggle: %w", err)
	}

	return d, dogs, nil
}

// ========================================
// IMAGE STAGING
// ========================================

// resolveImages walks the ordered image list: existing URLs pass
// through untouched, pending files are validated and uploaded. Returns
// the merged URL list (order preserved) plus the object keys staged by
// this call, so a later write failure can clean them up.
func (s *dogService) resolveImages(ctx context.Context, adminID uuid.UUID, images []dog.ImageRef) ([]string, []string, error) {
	urls := []string{}
	staged := []string{}

	for _, ref := range images {
		if ref.Pending == nil {
			urls = append(urls, ref.ExistingURL)
			continue
		}

		upload := ref.Pending
		if err := s.processor.Validate(upload.Data); err != nil {
			s.cleanupStaged(ctx, staged)
			return nil, nil, fmt.Errorf("%w: %s: %v", dog.ErrImageUpload, upload.Filename, err)
		}

		// Key scheme: {admin_id}/{epoch_millis}-{original_filename}
		key := fmt.Sprintf("%s/%d-%s", adminID.String(), time.Now().UnixMilli(), upload.Filename)

		url, err := s.blobs.Upload(ctx, key, upload.Data, upload.ContentType)
		if err != nil {
			s.cleanupStaged(ctx, staged)
			return nil, nil, fmt.Errorf("%w: %s: %v", dog.ErrImageUpload, upload.Filename, err)
		}
		staged = append(staged, key)

		// Thumbnail variant for gallery cards. Failure is non-fatal:
		// the original is already the source of truth.
		if thumb, err := s.processor.Thumbnail(upload.Data); err == nil {
			thumbKey := thumbnailKey(key)
			if _, err := s.blobs.Upload(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
				logger.Warn("thumbnail upload failed", map[string]interface{}{
					"key":   thumbKey,
					"error": err.Error(),
				})
			} else {
				staged = append(staged, thumbKey)
			}
		}

		urls = append(urls, url)
	}

	return urls, staged, nil
}

// cleanupStaged best-effort removes blobs uploaded by a failed
// operation. Failures are logged and swallowed; the orphan is
// preferable to masking the original error.
func (s *dogService) cleanupStaged(ctx context.Context, staged []string) {
	if len(staged) == 0 {
		return
	}
	if err := s.blobs.RemoveAll(ctx, staged); err != nil {
		logger.Warn("staged blob cleanup failed", map[string]interface{}{
			"keys":  strings.Join(staged, ","),
			"error": err.Error(),
		})
	}
}

func thumbnailKey(key string) string {
	if idx := strings.LastIndex(key, "."); idx != -1 {
		key = key[:idx]
	}
	return key + "_thumb.jpg"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
