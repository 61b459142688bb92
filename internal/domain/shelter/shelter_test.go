package shelter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

func validDetails() Details {
	return Details{
		Name:  "Kathmandu Animal Rescue",
		City:  "Kathmandu",
		State: "Bagmati",
		Phone: "+977-1-5555555",
		Email: "hello@kar.org.np",
	}
}

func TestNewShelter(t *testing.T) {
	s, err := NewShelter(uuid.New(), validDetails())
	require.NoError(t, err)

	assert.Equal(t, TypeAnimalShelter, s.Details().Type)
	assert.Equal(t, "Nepal", s.Details().Country)
	assert.Equal(t, VerificationPending, s.Verification())
	assert.False(t, s.IsVerified())
	assert.Equal(t, "Kathmandu, Bagmati, Nepal", s.Location())
}

func TestNewShelter_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Details)
	}{
		{"no name", func(d *Details) { d.Name = "" }},
		{"bad type", func(d *Details) { d.Type = "zoo" }},
		{"no city", func(d *Details) { d.City = " " }},
		{"no phone", func(d *Details) { d.Phone = "" }},
		{"bad email", func(d *Details) { d.Email = "kar" }},
		{"relative website", func(d *Details) { d.Website = "kar.org.np" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := NewShelter(uuid.New(), d)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestShelter_SetVerification(t *testing.T) {
	s, err := NewShelter(uuid.New(), validDetails())
	require.NoError(t, err)

	require.NoError(t, s.SetVerification(VerificationVerified))
	assert.True(t, s.IsVerified())
	assert.True(t, domain.IsValidation(s.SetVerification("approved")))
}
