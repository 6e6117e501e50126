package dog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample(name, breed string, status Status) Dog {
	return Dog{Name: name, Breed: breed, Sex: SexMale, Status: status}
}

func TestFilter(t *testing.T) {
	dogs := []Dog{
		sample("Thor", "Bulldog Francês", StatusAvailable),
		sample("Luna", "Bulldog Inglês", StatusReserved),
		sample("Zeus", "American Bully", StatusBreeder),
		sample("Mel", "Bulldog Francês", StatusSold),
	}

	t.Run("no filters returns everything in order", func(t *testing.T) {
		got := Filter(dogs, "", "")
		assert.Len(t, got, 4)
		assert.Equal(t, "Thor", got[0].Name)
		assert.Equal(t, "Mel", got[3].Name)
	})

	t.Run("status match is exact and case-sensitive", func(t *testing.T) {
		got := Filter(dogs, "Disponível", "")
		assert.Len(t, got, 1)
		assert.Equal(t, "Thor", got[0].Name)

		// lowercase does not match any stored status
		got = Filter(dogs, "disponível", "")
		assert.Empty(t, got)
	})

	t.Run("search is case-insensitive substring on name or breed", func(t *testing.T) {
		got := Filter(dogs, "", "bulldog")
		assert.Len(t, got, 3)

		got = Filter(dogs, "", "ZEU")
		assert.Len(t, got, 1)
		assert.Equal(t, "Zeus", got[0].Name)
	})

	t.Run("status and search combine", func(t *testing.T) {
		got := Filter(dogs, "Vendido", "bulldog")
		assert.Len(t, got, 1)
		assert.Equal(t, "Mel", got[0].Name)

		got = Filter(dogs, "Reservado", "bully")
		assert.Empty(t, got)
	})

	t.Run("no match yields empty slice, not nil", func(t *testing.T) {
		got := Filter(dogs, "", "chihuahua")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestMatchesSearch(t *testing.T) {
	d := sample("Aurora", "Bulldog Campeiro", StatusAvailable)

	assert.True(t, d.MatchesSearch(""))
	assert.True(t, d.MatchesSearch("auro"))
	assert.True(t, d.MatchesSearch("CAMPEIRO"))
	assert.False(t, d.MatchesSearch("pastor"))
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusAvailable.IsValid())
	assert.True(t, StatusReserved.IsValid())
	assert.True(t, StatusSold.IsValid())
	assert.True(t, StatusBreeder.IsValid())
	assert.False(t, Status("Adotado").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestSexIsValid(t *testing.T) {
	assert.True(t, SexMale.IsValid())
	assert.True(t, SexFemale.IsValid())
	assert.False(t, Sex("macho").IsValid())
}
