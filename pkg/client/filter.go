package client

import "strings"

// Filter narrows an already-fetched list of pets in memory.
type Filter struct {
	// Search matches name, breed or location, case-insensitively.
	Search string
	// Type matches pet_type case-insensitively; "" or "all" disables it.
	Type   string
	Breed  string
	Gender string
}

// FilterPets returns the pets matching every set field of f, in input order.
func FilterPets(pets []Pet, f Filter) []Pet {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	petType := strings.TrimSpace(f.Type)
	if strings.EqualFold(petType, "all") {
		petType = ""
	}

	out := make([]Pet, 0, len(pets))
	for _, p := range pets {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if petType != "" && !strings.EqualFold(p.PetType, petType) {
			continue
		}
		if f.Breed != "" && p.Breed != f.Breed {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Pet, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Breed), needle) ||
		strings.Contains(strings.ToLower(location(p)), needle)
}

func location(p Pet) string {
	if p.LocationDisplay != "" {
		return p.LocationDisplay
	}
	return strings.Join(nonEmpty(p.City, p.District, p.ProvinceDisplay), ", ")
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// FacetValues are the distinct values present in a list of pets.
type FacetValues struct {
	Types   []string
	Breeds  []string
	Genders []string
}

// Facets collects distinct types, breeds and genders in first-seen order.
// Empty values are skipped.
func Facets(pets []Pet) FacetValues {
	var fv FacetValues
	seenType := map[string]bool{}
	seenBreed := map[string]bool{}
	seenGender := map[string]bool{}
	for _, p := range pets {
		fv.Types = appendDistinct(fv.Types, seenType, p.PetType)
		fv.Breeds = appendDistinct(fv.Breeds, seenBreed, p.Breed)
		fv.Genders = appendDistinct(fv.Genders, seenGender, p.Gender)
	}
	return fv
}

func appendDistinct(list []string, seen map[string]bool, v string) []string {
	if v == "" || seen[v] {
		return list
	}
	seen[v] = true
	return append(list, v)
}
