package dog

import "errors"

// Repository-level errors
var (
	ErrDogNotFound = errors.New("dog not found")
)

// Validation errors
var (
	ErrInvalidSex    = errors.New("sexo inválido")
	ErrInvalidStatus = errors.New("status inválido")
)

// Service-level errors
var (
	ErrImageUpload = errors.New("falha no upload da imagem")
)
