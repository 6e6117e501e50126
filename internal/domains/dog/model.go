package dog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sex values are stored verbatim in PT-BR, as the product displays them.
type Sex string

const (
	SexMale   Sex = "Macho"
	SexFemale Sex = "Fêmea"
)

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	}
	return false
}

func (s Sex) String() string {
	return string(s)
}

// Status values are stored verbatim in PT-BR. Transitions are
// unconstrained: any status may be written over any other.
type Status string

const (
	StatusAvailable Status = "Disponível"
	StatusReserved  Status = "Reservado"
	StatusSold      Status = "Vendido"
	StatusBreeder   Status = "Padreador"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold, StatusBreeder:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Dog is the central record of the system.
// name/breed/sex/status are never empty for a persisted record.
type Dog struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Breed       string    `json:"breed" db:"breed"`
	Age         *string   `json:"age" db:"age"`
	Sex         Sex       `json:"sex" db:"sex"`
	Status      Status    `json:"status" db:"status"`
	Description *string   `json:"description" db:"description"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`

	// Ordered: previously persisted URLs first, newest uploads last.
	ImageURLs []string `json:"image_urls" db:"image_urls"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MatchesSearch reports whether term is a case-insensitive substring of
// the dog's name or breed. An empty term matches everything.
func (d *Dog) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Name), term) ||
		strings.Contains(strings.ToLower(d.Breed), term)
}

// Filter applies the gallery predicates over an already-fetched list.
// statusFilter is an exact, case-sensitive match; empty means "Todos".
func Filter(dogs []Dog, statusFilter string, searchTerm string) []Dog {
	filtered := make([]Dog, 0, len(dogs))
	for i := range dogs {
		if statusFilter != "" && string(dogs[i].Status) != statusFilter {
			continue
		}
		if !dogs[i].MatchesSearch(searchTerm) {
			continue
		}
		filtered = append(filtered, dogs[i])
	}
	return filtered
}
