package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(" Sita ", "sita@example.com", "", "", " Hello there ")
	require.NoError(t, err)

	assert.Equal(t, "Sita", m.Name())
	assert.Equal(t, SubjectGeneral, m.Subject())
	assert.Equal(t, "Hello there", m.Body())
	assert.Equal(t, StatusNew, m.Status())
}

func TestNewMessage_Validation(t *testing.T) {
	tests := []struct {
		name, sender, email string
		subject             Subject
		body                string
	}{
		{"no name", "", "a@b.com", "", "hi"},
		{"bad email", "Sita", "sita", "", "hi"},
		{"bad subject", "Sita", "a@b.com", "complaint", "hi"},
		{"empty body", "Sita", "a@b.com", SubjectAdoption, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMessage(tt.sender, tt.email, "", tt.subject, tt.body)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestMessage_SetStatus(t *testing.T) {
	m, err := NewMessage("Sita", "sita@example.com", "", SubjectVolunteer, "Can I help?")
	require.NoError(t, err)

	require.NoError(t, m.SetStatus(StatusInProgress, "called back"))
	assert.Equal(t, "called back", m.AdminNotes())

	require.NoError(t, m.SetStatus(StatusResolved, ""))
	assert.Equal(t, StatusResolved, m.Status())
	assert.Equal(t, "called back", m.AdminNotes(), "empty notes keep previous notes")

	assert.True(t, domain.IsValidation(m.SetStatus("archived", "")))
}

func TestDefaultInfo(t *testing.T) {
	info := DefaultInfo()
	assert.Equal(t, "AdoptAPet Nepal", info.OrganizationName)
	assert.Equal(t, "info@adoptapet.np", info.EmailPrimary)
	assert.Equal(t, "Bagmati Province", info.Province)
	assert.True(t, info.IsActive)
}
