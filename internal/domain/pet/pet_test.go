package pet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

func validProfile() Profile {
	return Profile{
		Name:     "Bruno",
		Breed:    "Labrador",
		Province: ProvinceBagmati,
		District: "Kathmandu",
		City:     "Baneshwor",
	}
}

func TestNewPet_AppliesDefaults(t *testing.T) {
	p, err := NewPet(uuid.New(), validProfile())
	require.NoError(t, err)

	assert.Equal(t, TypeDog, p.Profile().PetType)
	assert.Equal(t, GenderUnknown, p.Profile().Gender)
	assert.Equal(t, SizeMedium, p.Profile().Size)
	assert.Equal(t, StatusAvailable, p.Status())
	assert.True(t, p.IsActive())
	assert.True(t, p.IsAvailableForAdoption())
	assert.Equal(t, int64(1), p.Version())
	assert.Equal(t, "Baneshwor, Kathmandu, Bagmati Province", p.LocationDisplay())
}

func TestNewPet_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"blank name", func(p *Profile) { p.Name = "   " }},
		{"bad type", func(p *Profile) { p.PetType = "dragon" }},
		{"bad gender", func(p *Profile) { p.Gender = "other" }},
		{"bad size", func(p *Profile) { p.Size = "huge" }},
		{"negative age", func(p *Profile) { p.AgeMonths = -1 }},
		{"bad province", func(p *Profile) { p.Province = "tibet" }},
		{"missing city", func(p *Profile) { p.City = "" }},
		{"bad email", func(p *Profile) { p.ContactEmail = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := validProfile()
			tt.mutate(&prof)
			_, err := NewPet(uuid.New(), prof)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestNewMissingPet_RequiresLastSeenLocation(t *testing.T) {
	_, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	seen := time.Now().Add(-24 * time.Hour)
	p, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{
		LastSeenLocation: "Ratna Park",
		LastSeenDate:     &seen,
		RewardCents:      500000,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, p.Status())
	assert.True(t, p.IsMissing())
	assert.False(t, p.IsAvailableForAdoption())
	assert.Equal(t, "Ratna Park", p.Missing().LastSeenLocation)
}

func TestNewMissingPet_RejectsFutureSighting(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	_, err := NewMissingPet(uuid.New(), validProfile(), MissingReport{
		LastSeenLocation: "Thamel",
		LastSeenDate:     &future,
	})
	assert.True(t, domain.IsValidation(err))
}

func TestPet_StatusTransitions(t *testing.T) {
	p, err := NewPet(uuid.New(), validProfile())
	require.NoError(t, err)

	require.NoError(t, p.ReportMissing(MissingReport{LastSeenLocation: "Boudha"}))
	assert.Equal(t, int64(2), p.Version())

	assert.Error(t, p.MarkAdopted(), "missing pets cannot be adopted")
	require.NoError(t, p.MarkFound())
	require.NoError(t, p.MakeAvailable())
	require.NoError(t, p.MarkAdopted())

	err = p.MakeAvailable()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, StatusAdopted, p.Status())
}

func TestPet_ArchiveHidesFromAdoption(t *testing.T) {
	p, err := NewPet(uuid.New(), validProfile())
	require.NoError(t, err)

	p.Archive()
	assert.False(t, p.IsActive())
	assert.False(t, p.IsAvailableForAdoption())
	assert.Equal(t, int64(2), p.Version())
}

func TestPet_UpdateKeepsOldProfileOnError(t *testing.T) {
	p, err := NewPet(uuid.New(), validProfile())
	require.NoError(t, err)

	bad := validProfile()
	bad.Name = ""
	require.Error(t, p.Update(bad))
	assert.Equal(t, "Bruno", p.Name())
	assert.Equal(t, int64(1), p.Version())
}
