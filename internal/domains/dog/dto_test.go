package dog

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func validRequest() DogRequest {
	return DogRequest{
		Name:   "Thor",
		Breed:  "Bulldog Francês",
		Sex:    "Macho",
		Status: "Disponível",
	}
}

func TestDogRequestValidate(t *testing.T) {
	t.Run("minimal valid request", func(t *testing.T) {
		assert.NoError(t, validRequest().Validate())
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		req := validRequest()
		req.Age = ""
		req.Description = ""
		assert.NoError(t, req.Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := DogRequest{}
		err := req.Validate()
		assert.Error(t, err)

		var vErrs validation.Errors
		assert.True(t, errors.As(err, &vErrs))
		assert.Contains(t, vErrs, "name")
		assert.Contains(t, vErrs, "breed")
		assert.Contains(t, vErrs, "sex")
		assert.Contains(t, vErrs, "status")
	})

	t.Run("rejects unknown sex", func(t *testing.T) {
		req := validRequest()
		req.Sex = "M"
		err := req.Validate()
		assert.Error(t, err)

		var vErrs validation.Errors
		assert.True(t, errors.As(err, &vErrs))
		assert.ErrorIs(t, vErrs["sex"], ErrInvalidSex)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := validRequest()
		req.Status = "Adotado"
		err := req.Validate()
		assert.Error(t, err)

		var vErrs validation.Errors
		assert.True(t, errors.As(err, &vErrs))
		assert.ErrorIs(t, vErrs["status"], ErrInvalidStatus)
	})
}

func TestImageRefConstructors(t *testing.T) {
	existing := ExistingImage("https://cdn.example.com/dogs/a.jpg")
	assert.Equal(t, "https://cdn.example.com/dogs/a.jpg", existing.ExistingURL)
	assert.Nil(t, existing.Pending)

	pending := PendingImage(&ImageUpload{Filename: "b.jpg"})
	assert.Empty(t, pending.ExistingURL)
	assert.Equal(t, "b.jpg", pending.Pending.Filename)
}
