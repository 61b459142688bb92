package pet

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Orderings accepted by ListFilter.Ordering. A leading "-" sorts descending.
var allowedOrderings = map[string]bool{
	"created_at": true, "-created_at": true,
	"age": true, "-age": true,
	"name": true, "-name": true,
	"last_seen_date": true, "-last_seen_date": true,
}

// ListFilter narrows a pet listing. Zero values mean "no constraint".
type ListFilter struct {
	Statuses     []Status
	ActiveOnly   bool
	OwnerID      *uuid.UUID
	ShelterID    *uuid.UUID
	PetType      string
	Size         string
	Gender       string
	Province     string
	District     string
	City         string
	IsVaccinated *bool
	IsNeutered   *bool
	Search       string
	// SearchLastSeen extends Search to the last seen location.
	SearchLastSeen bool
	Ordering       string
	Page           int
	Limit          int
}

// Normalize clamps pagination and falls back to newest-first ordering.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if !allowedOrderings[f.Ordering] {
		f.Ordering = "-created_at"
	}
	f.Search = strings.TrimSpace(f.Search)
}

// Offset returns the row offset for the current page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// SearchColumns lists the columns the search term is matched against.
func (f ListFilter) SearchColumns() []string {
	cols := []string{"name", "breed", "description", "city", "district"}
	if f.SearchLastSeen {
		cols = append(cols, "last_seen_location")
	}
	return cols
}

// Matches reports whether p satisfies every constraint in the filter.
func (f ListFilter) Matches(p *Pet) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, p.status) {
		return false
	}
	if f.ActiveOnly && !p.active {
		return false
	}
	if f.OwnerID != nil && p.ownerID != *f.OwnerID {
		return false
	}
	if f.ShelterID != nil && (p.profile.ShelterID == nil || *p.profile.ShelterID != *f.ShelterID) {
		return false
	}
	prof := p.profile
	if !equalFold(f.PetType, string(prof.PetType)) ||
		!equalFold(f.Size, string(prof.Size)) ||
		!equalFold(f.Gender, string(prof.Gender)) ||
		!equalFold(f.Province, string(prof.Province)) ||
		!equalFold(f.District, prof.District) ||
		!equalFold(f.City, prof.City) {
		return false
	}
	if f.IsVaccinated != nil && prof.IsVaccinated != *f.IsVaccinated {
		return false
	}
	if f.IsNeutered != nil && prof.IsNeutered != *f.IsNeutered {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		fields := []string{prof.Name, prof.Breed, prof.Description, prof.City, prof.District}
		if f.SearchLastSeen {
			fields = append(fields, p.missing.LastSeenLocation)
		}
		found := false
		for _, v := range fields {
			if strings.Contains(strings.ToLower(v), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Sort orders pets in place according to the filter's ordering.
func (f ListFilter) Sort(pets []*Pet) {
	field := strings.TrimPrefix(f.Ordering, "-")
	desc := strings.HasPrefix(f.Ordering, "-")
	sort.SliceStable(pets, func(i, j int) bool {
		a, b := pets[i], pets[j]
		var less bool
		switch field {
		case "age":
			less = a.profile.AgeMonths < b.profile.AgeMonths
		case "name":
			less = strings.ToLower(a.profile.Name) < strings.ToLower(b.profile.Name)
		case "last_seen_date":
			less = lastSeen(a).Before(lastSeen(b))
		default:
			less = a.createdAt.Before(b.createdAt)
		}
		if desc {
			return !less && !equalKey(field, a, b)
		}
		return less
	})
}

func equalKey(field string, a, b *Pet) bool {
	switch field {
	case "age":
		return a.profile.AgeMonths == b.profile.AgeMonths
	case "name":
		return strings.EqualFold(a.profile.Name, b.profile.Name)
	case "last_seen_date":
		return lastSeen(a).Equal(lastSeen(b))
	default:
		return a.createdAt.Equal(b.createdAt)
	}
}

func lastSeen(p *Pet) time.Time {
	if p.missing.LastSeenDate != nil {
		return *p.missing.LastSeenDate
	}
	return time.Time{}
}

func equalFold(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
