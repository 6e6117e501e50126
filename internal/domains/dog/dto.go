package dog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DogRequest carries the editable fields for create and update.
// It arrives as multipart form data together with the image list.
type DogRequest struct {
	Name        string `form:"name" json:"name"`
	Breed       string `form:"breed" json:"breed"`
	Age         string `form:"age" json:"age"`
	Sex         string `form:"sex" json:"sex"`
	Status      string `form:"status" json:"status"`
	Description string `form:"description" json:"description"`
	IsFeatured  bool   `form:"is_featured" json:"is_featured"`
}

// Validate enforces the required fields before any store call is made.
// Error copy is PT-BR, shown verbatim as the toast description.
func (r DogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("nome é obrigatório"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Breed,
			validation.Required.Error("raça é obrigatória"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Sex,
			validation.Required.Error("sexo é obrigatório"),
			validation.By(validSex),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status é obrigatório"),
			validation.By(validStatus),
		),
		validation.Field(&r.Age, validation.Length(0, 50)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

func validSex(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required already covers empty
	}
	if !Sex(s).IsValid() {
		return ErrInvalidSex
	}
	return nil
}

func validStatus(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !Status(s).IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ImageUpload is a file pending upload to the blob store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageRef is one entry of the ordered image list: either a URL that is
// already persisted or a file pending upload. Exactly one side is set.
// Pending files are always the suffix of the list.
type ImageRef struct {
	ExistingURL string
	Pending     *ImageUpload
}

// ExistingImage wraps an already-persisted URL the editor kept.
func ExistingImage(url string) ImageRef {
	return ImageRef{ExistingURL: url}
}

// PendingImage wraps a freshly selected file.
func PendingImage(upload *ImageUpload) ImageRef {
	return ImageRef{Pending: upload}
}
