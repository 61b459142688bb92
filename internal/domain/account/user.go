package account

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// User is a registered account.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	firstName    string
	lastName     string
	phone        string
	location     string
	passwordHash string
	role         auth.Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser validates and creates an account. passwordHash must already be hashed.
func NewUser(username, email, firstName, lastName, passwordHash string, role auth.Role) (*User, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.NewValidationError("a valid email is required")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if role == "" {
		role = auth.RoleUser
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(
	id uuid.UUID,
	username, email, firstName, lastName, phone, location, passwordHash string,
	role auth.Role,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		phone:        phone,
		location:     location,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Phone() string        { return u.phone }
func (u *User) Location() string     { return u.location }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() auth.Role      { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// DisplayName is "First Last", falling back to the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.firstName + " " + u.lastName)
	if full != "" {
		return full
	}
	return u.username
}

// MaxNameLength bounds first and last names.
const MaxNameLength = 150

// UpdateProfile replaces the owner-editable fields.
func (u *User) UpdateProfile(firstName, lastName, phone, location string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if len(firstName) > MaxNameLength || len(lastName) > MaxNameLength {
		return domain.NewValidationError("names must be at most 150 characters")
	}
	u.firstName = firstName
	u.lastName = lastName
	u.phone = strings.TrimSpace(phone)
	u.location = strings.TrimSpace(location)
	u.updatedAt = time.Now().UTC()
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
