package pet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPet(t *testing.T, mutate func(*Profile)) *Pet {
	t.Helper()
	prof := validProfile()
	if mutate != nil {
		mutate(&prof)
	}
	p, err := NewPet(uuid.New(), prof)
	require.NoError(t, err)
	return p
}

func TestListFilter_Normalize(t *testing.T) {
	f := ListFilter{Page: -3, Limit: 500, Ordering: "password", Search: "  lab  "}
	f.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "-created_at", f.Ordering)
	assert.Equal(t, "lab", f.Search)
	assert.Equal(t, 0, f.Offset())

	f = ListFilter{Page: 3, Limit: 10, Ordering: "-age"}
	f.Normalize()
	assert.Equal(t, "-age", f.Ordering)
	assert.Equal(t, 20, f.Offset())
}

func TestListFilter_Matches(t *testing.T) {
	cat := mustPet(t, func(p *Profile) {
		p.Name = "Mimi"
		p.PetType = TypeCat
		p.Breed = "Persian"
		p.City = "Pokhara"
		p.District = "Kaski"
		p.Province = ProvinceGandaki
		p.IsVaccinated = true
	})

	yes, no := true, false
	tests := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{"empty filter", ListFilter{}, true},
		{"type is case-insensitive", ListFilter{PetType: "CAT"}, true},
		{"type mismatch", ListFilter{PetType: "dog"}, false},
		{"city", ListFilter{City: "pokhara"}, true},
		{"province", ListFilter{Province: "bagmati"}, false},
		{"vaccinated", ListFilter{IsVaccinated: &yes}, true},
		{"not vaccinated", ListFilter{IsVaccinated: &no}, false},
		{"search breed", ListFilter{Search: "pers"}, true},
		{"search district", ListFilter{Search: "kask"}, true},
		{"search miss", ListFilter{Search: "husky"}, false},
		{"status", ListFilter{Statuses: []Status{StatusMissing}}, false},
		{"owner", ListFilter{OwnerID: &[]uuid.UUID{uuid.New()}[0]}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(cat))
		})
	}
}

func TestListFilter_SearchLastSeen(t *testing.T) {
	p, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{LastSeenLocation: "Durbar Square"})
	require.NoError(t, err)

	assert.False(t, ListFilter{Search: "durbar"}.Matches(p))
	assert.True(t, ListFilter{Search: "durbar", SearchLastSeen: true}.Matches(p))
	assert.Contains(t, ListFilter{SearchLastSeen: true}.SearchColumns(), "last_seen_location")
}

func TestListFilter_ArchivedExcludedWhenActiveOnly(t *testing.T) {
	p := mustPet(t, nil)
	p.Archive()
	assert.False(t, ListFilter{ActiveOnly: true}.Matches(p))
	assert.True(t, ListFilter{}.Matches(p))
}

func TestListFilter_Sort(t *testing.T) {
	young := mustPet(t, func(p *Profile) { p.Name = "b-young"; p.AgeMonths = 3 })
	old := mustPet(t, func(p *Profile) { p.Name = "A-old"; p.AgeMonths = 60 })
	mid := mustPet(t, func(p *Profile) { p.Name = "c-mid"; p.AgeMonths = 24 })

	pets := []*Pet{young, old, mid}
	ListFilter{Ordering: "age"}.Sort(pets)
	assert.Equal(t, []*Pet{young, mid, old}, pets)

	ListFilter{Ordering: "-age"}.Sort(pets)
	assert.Equal(t, []*Pet{old, mid, young}, pets)

	ListFilter{Ordering: "name"}.Sort(pets)
	assert.Equal(t, []*Pet{old, young, mid}, pets)
}

func TestListFilter_SortByLastSeen(t *testing.T) {
	earlier := time.Now().Add(-72 * time.Hour)
	later := time.Now().Add(-2 * time.Hour)
	a, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{LastSeenLocation: "x", LastSeenDate: &earlier})
	require.NoError(t, err)
	b, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{LastSeenLocation: "y", LastSeenDate: &later})
	require.NoError(t, err)

	pets := []*Pet{a, b}
	ListFilter{Ordering: "-last_seen_date"}.Sort(pets)
	assert.Equal(t, []*Pet{b, a}, pets)
}
