package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePets() []Pet {
	return []Pet{
		{ID: "1", Name: "Bruno", PetType: "dog", Breed: "Labrador", Gender: "male", LocationDisplay: "Baneshwor, Kathmandu, Bagmati Province"},
		{ID: "2", Name: "Mimi", PetType: "cat", Breed: "Persian", Gender: "female", City: "Pokhara", District: "Kaski"},
		{ID: "3", Name: "Tommy", PetType: "Dog", Breed: "Husky", Gender: "male", City: "Dharan"},
		{ID: "4", Name: "Kiwi", PetType: "bird", Breed: "", Gender: "unknown"},
	}
}

func ids(pets []Pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.ID
	}
	return out
}

func TestFilterPets(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1", "2", "3", "4"}},
		{"search name", Filter{Search: "MIM"}, []string{"2"}},
		{"search breed", Filter{Search: "husk"}, []string{"3"}},
		{"search location display", Filter{Search: "bagmati"}, []string{"1"}},
		{"search location fallback", Filter{Search: "kaski"}, []string{"2"}},
		{"type case-insensitive", Filter{Type: "DOG"}, []string{"1", "3"}},
		{"type all", Filter{Type: "All"}, []string{"1", "2", "3", "4"}},
		{"breed exact", Filter{Breed: "labrador"}, []string{}},
		{"gender", Filter{Gender: "male"}, []string{"1", "3"}},
		{"combined", Filter{Type: "dog", Gender: "male", Search: "tom"}, []string{"3"}},
		{"no match", Filter{Search: "zebra"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterPets(samplePets(), tt.filter)))
		})
	}
}

func TestFilterPets_DoesNotMutateInput(t *testing.T) {
	pets := samplePets()
	_ = FilterPets(pets, Filter{Type: "cat"})
	assert.Equal(t, samplePets(), pets)
}

func TestFacets(t *testing.T) {
	fv := Facets(samplePets())
	assert.Equal(t, []string{"dog", "cat", "Dog", "bird"}, fv.Types)
	assert.Equal(t, []string{"Labrador", "Persian", "Husky"}, fv.Breeds)
	assert.Equal(t, []string{"male", "female", "unknown"}, fv.Genders)

	empty := Facets(nil)
	assert.Empty(t, empty.Types)
}
