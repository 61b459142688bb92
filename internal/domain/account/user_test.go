package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("", "  Ram.Thapa@Example.COM ", "Ram", "Thapa", "hash", "")
	require.NoError(t, err)

	assert.Equal(t, "ram.thapa@example.com", u.Email())
	assert.Equal(t, "ram.thapa", u.Username())
	assert.Equal(t, auth.RoleUser, u.Role())
	assert.Equal(t, "Ram Thapa", u.DisplayName())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("ram", "not-an-email", "", "", "hash", auth.RoleUser)
	assert.True(t, domain.IsValidation(err))

	_, err = NewUser("ram", "ram@example.com", "", "", "", auth.RoleUser)
	assert.True(t, domain.IsValidation(err))

	_, err = NewUser("ram", "ram@example.com", "", "", "hash", "superuser")
	assert.True(t, domain.IsValidation(err))
}

func TestUser_DisplayNameFallsBackToUsername(t *testing.T) {
	u, err := NewUser("ramu", "ram@example.com", "", "", "hash", auth.RoleShelter)
	require.NoError(t, err)
	assert.Equal(t, "ramu", u.DisplayName())

	require.NoError(t, u.UpdateProfile(" Ram ", " Gurung ", " 9800000000 ", " Pokhara "))
	assert.Equal(t, "Ram Gurung", u.DisplayName())
	assert.Equal(t, "9800000000", u.Phone())
	assert.Equal(t, "Pokhara", u.Location())
}

func TestUser_UpdateProfileRejectsLongNames(t *testing.T) {
	u, err := NewUser("ramu", "ram@example.com", "Ram", "Thapa", "hash", auth.RoleUser)
	require.NoError(t, err)

	err = u.UpdateProfile(strings.Repeat("a", MaxNameLength+1), "Thapa", "", "")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Ram Thapa", u.DisplayName(), "a rejected update changes nothing")
}
