package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kennel-backend/internal/domains/dog"
	"kennel-backend/internal/domains/dog/service"
	"kennel-backend/internal/infrastructure/storage"
)

// ========================================
// FAKES
// ========================================

// fakeRepository is an in-memory dog.Repository that preserves
// insertion order (newest first, like the Postgres implementation).
type fakeRepository struct {
	dogs      []dog.Dog
	createErr error
	updateErr error
}

func (r *fakeRepository) Create(ctx context.Context, d *dog.Dog) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	d.ID = uuid.New()
	r.dogs = append([]dog.Dog{*d}, r.dogs...)
	return d.ID, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*dog.Dog, error) {
	for i := range r.dogs {
		if r.dogs[i].ID == id {
			d := r.dogs[i]
			return &d, nil
		}
	}
	return nil, dog.ErrDogNotFound
}

func (r *fakeRepository) List(ctx context.Context) ([]dog.Dog, error) {
	return append([]dog.Dog{}, r.dogs...), nil
}

func (r *fakeRepository) ListByStatus(ctx context.Context, status dog.Status) ([]dog.Dog, error) {
	out := []dog.Dog{}
	for _, d := range r.dogs {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListFeatured(ctx context.Context, limit int) ([]dog.Dog, error) {
	out := []dog.Dog{}
	for _, d := range r.dogs {
		if d.IsFeatured && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListOldest(ctx context.Context, limit int) ([]dog.Dog, error) {
	out := []dog.Dog{}
	for i := len(r.dogs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.dogs[i])
	}
	return out, nil
}

func (r *fakeRepository) Update(ctx context.Context, d *dog.Dog) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.dogs {
		if r.dogs[i].ID == d.ID {
			r.dogs[i] = *d
			return nil
		}
	}
	return dog.ErrDogNotFound
}

func (r *fakeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status dog.Status) error {
	for i := range r.dogs {
		if r.dogs[i].ID == id {
			r.dogs[i].Status = status
			return nil
		}
	}
	return dog.ErrDogNotFound
}

func (r *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.dogs {
		if r.dogs[i].ID == id {
			r.dogs = append(r.dogs[:i], r.dogs[i+1:]...)
			return nil
		}
	}
	return dog.ErrDogNotFound
}

// fakeBlobStorage records uploads and removals.
type fakeBlobStorage struct {
	uploaded  []string
	removed   []string
	uploadErr error
}

func (b *fakeBlobStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	b.uploaded = append(b.uploaded, key)
	return "https://storage.local/dog-images/" + key, nil
}

func (b *fakeBlobStorage) RemoveAll(ctx context.Context, keys []string) error {
	b.removed = append(b.removed, keys...)
	return nil
}

// ========================================
// HELPERS
// ========================================

func newService(repo *fakeRepository, blobs *fakeBlobStorage) dog.Service {
	return service.NewDogService(repo, blobs, storage.NewImageProcessor())
}

func validRequest() dog.DogRequest {
	return dog.DogRequest{
		Name:   "Thor",
		Breed:  "Bulldog Francês",
		Sex:    "Macho",
		Status: "Disponível",
	}
}

// tinyPNG returns a real, decodable 1x1 PNG.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func seed(repo *fakeRepository, n int, status dog.Status, featured bool) {
	for i := 0; i < n; i++ {
		d := dog.Dog{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Dog%d", i),
			Breed:      "Bulldog Francês",
			Sex:        dog.SexMale,
			Status:     status,
			IsFeatured: featured,
			ImageURLs:  []string{},
		}
		repo.dogs = append([]dog.Dog{d}, repo.dogs...)
	}
}

// ========================================
// TESTS
// ========================================

func TestCreate(t *testing.T) {
	adminID := uuid.New()

	t.Run("creates record with merged image list, order preserved", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)

		images := []dog.ImageRef{
			dog.ExistingImage("https://storage.local/dog-images/old.jpg"),
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "new.png",
				ContentType: "image/png",
				Data:        tinyPNG(t),
			}),
		}

		d, err := svc.Create(context.Background(), adminID, validRequest(), images)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.NotEqual(t, uuid.Nil, d.ID)

		// Retained URL first, fresh upload as the suffix
		require.Len(t, d.ImageURLs, 2)
		assert.Equal(t, "https://storage.local/dog-images/old.jpg", d.ImageURLs[0])
		assert.Contains(t, d.ImageURLs[1], adminID.String()+"/")
		assert.Contains(t, d.ImageURLs[1], "new.png")
	})

	t.Run("validation failure hits no store", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)

		req := validRequest()
		req.Name = ""

		_, err := svc.Create(context.Background(), adminID, req, nil)
		assert.Error(t, err)
		assert.Empty(t, repo.dogs)
		assert.Empty(t, blobs.uploaded)
	})

	t.Run("record write failure cleans up staged blobs", func(t *testing.T) {
		repo := &fakeRepository{createErr: errors.New("db down")}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)

		images := []dog.ImageRef{
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "a.png",
				ContentType: "image/png",
				Data:        tinyPNG(t),
			}),
		}

		_, err := svc.Create(context.Background(), adminID, validRequest(), images)
		assert.Error(t, err)

		// Everything staged by this call (original and thumbnail) is
		// removed again
		require.NotEmpty(t, blobs.uploaded)
		sort.Strings(blobs.uploaded)
		sort.Strings(blobs.removed)
		assert.Equal(t, blobs.uploaded, blobs.removed)
	})

	t.Run("upload failure surfaces as ErrImageUpload", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{uploadErr: errors.New("minio down")}
		svc := newService(repo, blobs)

		images := []dog.ImageRef{
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "a.png",
				ContentType: "image/png",
				Data:        tinyPNG(t),
			}),
		}

		_, err := svc.Create(context.Background(), adminID, validRequest(), images)
		assert.ErrorIs(t, err, dog.ErrImageUpload)
		assert.Empty(t, repo.dogs)
	})

	t.Run("rejects payloads that are not images", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)

		images := []dog.ImageRef{
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "malware.exe",
				ContentType: "application/octet-stream",
				Data:        []byte("MZ not an image"),
			}),
		}

		_, err := svc.Create(context.Background(), adminID, validRequest(), images)
		assert.ErrorIs(t, err, dog.ErrImageUpload)
		assert.Empty(t, blobs.uploaded)
	})
}

func TestUpdate(t *testing.T) {
	adminID := uuid.New()

	t.Run("replaces editable fields and image list", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)
		seed(repo, 1, dog.StatusAvailable, false)
		id := repo.dogs[0].ID

		req := validRequest()
		req.Name = "Zeus"
		req.Status = "Reservado"

		d, err := svc.Update(context.Background(), adminID, id, req, []dog.ImageRef{
			dog.ExistingImage("https://storage.local/dog-images/kept.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Zeus", d.Name)
		assert.Equal(t, dog.StatusReserved, d.Status)
		assert.Equal(t, []string{"https://storage.local/dog-images/kept.jpg"}, d.ImageURLs)

		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Zeus", stored.Name)
	})

	t.Run("unknown id returns ErrDogNotFound before any upload", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)

		images := []dog.ImageRef{
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "a.png",
				ContentType: "image/png",
				Data:        tinyPNG(t),
			}),
		}

		_, err := svc.Update(context.Background(), adminID, uuid.New(), validRequest(), images)
		assert.ErrorIs(t, err, dog.ErrDogNotFound)
		assert.Empty(t, blobs.uploaded)
	})

	t.Run("write failure cleans up blobs staged by this call only", func(t *testing.T) {
		repo := &fakeRepository{}
		blobs := &fakeBlobStorage{}
		svc := newService(repo, blobs)
		seed(repo, 1, dog.StatusAvailable, false)
		id := repo.dogs[0].ID
		repo.updateErr = errors.New("db down")

		images := []dog.ImageRef{
			dog.ExistingImage("https://storage.local/dog-images/kept.jpg"),
			dog.PendingImage(&dog.ImageUpload{
				Filename:    "fresh.png",
				ContentType: "image/png",
				Data:        tinyPNG(t),
			}),
		}

		_, err := svc.Update(context.Background(), adminID, id, validRequest(), images)
		assert.Error(t, err)

		sort.Strings(blobs.uploaded)
		sort.Strings(blobs.removed)
		assert.Equal(t, blobs.uploaded, blobs.removed)
		for _, key := range blobs.removed {
			assert.False(t, strings.Contains(key, "kept.jpg"), "retained URL must not be removed")
		}
	})
}

func TestDelete(t *testing.T) {
	repo := &fakeRepository{}
	svc := newService(repo, &fakeBlobStorage{})
	seed(repo, 2, dog.StatusAvailable, false)
	id := repo.dogs[0].ID

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Len(t, repo.dogs, 1)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), dog.ErrDogNotFound)
}

func TestToggleBreeder(t *testing.T) {
	t.Run("available becomes breeder and back", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newService(repo, &fakeBlobStorage{})
		seed(repo, 3, dog.StatusAvailable, false)
		id := repo.dogs[1].ID

		d, dogs, err := svc.ToggleBreeder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, dog.StatusBreeder, d.Status)
		assert.Len(t, dogs, 3)

		// The returned list reflects the write
		for _, item := range dogs {
			if item.ID == id {
				assert.Equal(t, dog.StatusBreeder, item.Status)
			}
		}

		// Round trip restores Disponível, whatever the prior status was
		d, _, err = svc.ToggleBreeder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, dog.StatusAvailable, d.Status)
	})

	t.Run("sold dog becomes breeder, toggle back lands on available", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newService(repo, &fakeBlobStorage{})
		seed(repo, 1, dog.StatusSold, false)
		id := repo.dogs[0].ID

		d, _, err := svc.ToggleBreeder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, dog.StatusBreeder, d.Status)

		d, _, err = svc.ToggleBreeder(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, dog.StatusAvailable, d.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newService(&fakeRepository{}, &fakeBlobStorage{})
		_, _, err := svc.ToggleBreeder(context.Background(), uuid.New())
		assert.ErrorIs(t, err, dog.ErrDogNotFound)
	})
}

func TestSearch(t *testing.T) {
	repo := &fakeRepository{}
	svc := newService(repo, &fakeBlobStorage{})
	seed(repo, 2, dog.StatusAvailable, false)
	seed(repo, 1, dog.StatusBreeder, false)

	t.Run("empty filters return the full list", func(t *testing.T) {
		dogs, err := svc.Search(context.Background(), "", "")
		require.NoError(t, err)
		assert.Len(t, dogs, 3)
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		dogs, err := svc.Search(context.Background(), "Padreador", "")
		require.NoError(t, err)
		assert.Len(t, dogs, 1)
	})

	t.Run("search term matches breed", func(t *testing.T) {
		dogs, err := svc.Search(context.Background(), "", "francês")
		require.NoError(t, err)
		assert.Len(t, dogs, 3)
	})
}

func TestFeatured(t *testing.T) {
	t.Run("returns featured dogs when present", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newService(repo, &fakeBlobStorage{})
		seed(repo, 6, dog.StatusAvailable, true)

		dogs, err := svc.Featured(context.Background())
		require.NoError(t, err)
		assert.Len(t, dogs, 4)
	})

	t.Run("falls back to oldest records when nothing is featured", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := newService(repo, &fakeBlobStorage{})
		seed(repo, 6, dog.StatusAvailable, false)

		dogs, err := svc.Featured(context.Background())
		require.NoError(t, err)
		require.Len(t, dogs, 4)
		// Oldest first: Dog0 was inserted first
		assert.Equal(t, "Dog0", dogs[0].Name)
	})

	t.Run("empty catalog yields empty list", func(t *testing.T) {
		svc := newService(&fakeRepository{}, &fakeBlobStorage{})
		dogs, err := svc.Featured(context.Background())
		require.NoError(t, err)
		assert.Empty(t, dogs)
	})
}
