package adoption

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

func validApplication() Application {
	return Application{Message: "We have a big garden", Phone: "+977-9800000000"}
}

func TestNewRequest(t *testing.T) {
	pet, adopter, owner := uuid.New(), uuid.New(), uuid.New()

	r, err := NewRequest(pet, adopter, owner, validApplication())
	require.NoError(t, err)
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, LivingOther, r.Application().LivingSituation)
	assert.Equal(t, owner, r.OwnerID())
}

func TestNewRequest_Validation(t *testing.T) {
	pet, adopter, owner := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		adopter uuid.UUID
		mutate  func(*Application)
	}{
		{"own pet", owner, nil},
		{"nil adopter", uuid.Nil, nil},
		{"blank message", adopter, func(a *Application) { a.Message = " " }},
		{"missing phone", adopter, func(a *Application) { a.Phone = "" }},
		{"bad living situation", adopter, func(a *Application) { a.LivingSituation = "castle" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication()
			if tt.mutate != nil {
				tt.mutate(&app)
			}
			_, err := NewRequest(pet, tt.adopter, owner, app)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestRequest_Decisions(t *testing.T) {
	adopter, owner := uuid.New(), uuid.New()

	t.Run("only the owner decides", func(t *testing.T) {
		r, err := NewRequest(uuid.New(), adopter, owner, validApplication())
		require.NoError(t, err)
		assert.True(t, domain.IsForbidden(r.Approve(adopter, "")))
		assert.True(t, domain.IsForbidden(r.Reject(uuid.New(), "")))
		assert.Equal(t, StatusPending, r.Status())
	})

	t.Run("approve is final", func(t *testing.T) {
		r, err := NewRequest(uuid.New(), adopter, owner, validApplication())
		require.NoError(t, err)
		require.NoError(t, r.Approve(owner, "  Welcome!  "))
		assert.Equal(t, StatusApproved, r.Status())
		assert.Equal(t, "Welcome!", r.DecisionMessage())
		assert.Equal(t, int64(2), r.Version())

		err = r.Reject(owner, "")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("only the applicant withdraws", func(t *testing.T) {
		r, err := NewRequest(uuid.New(), adopter, owner, validApplication())
		require.NoError(t, err)
		assert.True(t, domain.IsForbidden(r.Withdraw(owner)))
		require.NoError(t, r.Withdraw(adopter))
		assert.Equal(t, StatusWithdrawn, r.Status())
	})
}
