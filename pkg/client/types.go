package client

import "time"

// Pet is a pet listing as returned by the API.
type Pet struct {
	ID                     string     `json:"id"`
	OwnerID                string     `json:"owner_id"`
	ShelterID              string     `json:"shelter_id,omitempty"`
	Name                   string     `json:"name"`
	PetType                string     `json:"pet_type"`
	Breed                  string     `json:"breed"`
	AgeMonths              int        `json:"age_months"`
	Gender                 string     `json:"gender"`
	Size                   string     `json:"size"`
	Color                  string     `json:"color,omitempty"`
	Description            string     `json:"description,omitempty"`
	Personality            string     `json:"personality,omitempty"`
	IsVaccinated           bool       `json:"is_vaccinated"`
	IsNeutered             bool       `json:"is_neutered"`
	HealthStatus           string     `json:"health_status,omitempty"`
	Province               string     `json:"province"`
	ProvinceDisplay        string     `json:"province_display,omitempty"`
	District               string     `json:"district"`
	City                   string     `json:"city"`
	DetailedAddress        string     `json:"detailed_address,omitempty"`
	LocationDisplay        string     `json:"location_display"`
	Status                 string     `json:"status"`
	IsActive               bool       `json:"is_active"`
	IsMissing              bool       `json:"is_missing"`
	IsAvailableForAdoption bool       `json:"is_available_for_adoption"`
	LastSeenLocation       string     `json:"last_seen_location,omitempty"`
	LastSeenDate           *time.Time `json:"last_seen_date,omitempty"`
	RewardOfferedCents     int64      `json:"reward_offered_cents,omitempty"`
	ContactPhone           string     `json:"contact_phone,omitempty"`
	ContactEmail           string     `json:"contact_email,omitempty"`
	ImageURL               string     `json:"image_url,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// PetInput is the body of a create-pet request.
type PetInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	PetType         string `json:"pet_type,omitempty" validate:"omitempty,oneof=dog cat bird rabbit other"`
	Breed           string `json:"breed,omitempty" validate:"max=100"`
	AgeMonths       int    `json:"age_months" validate:"min=0"`
	Gender          string `json:"gender,omitempty" validate:"omitempty,oneof=male female unknown"`
	Size            string `json:"size,omitempty" validate:"omitempty,oneof=small medium large extra_large"`
	Color           string `json:"color,omitempty"`
	Description     string `json:"description,omitempty"`
	Personality     string `json:"personality,omitempty"`
	IsVaccinated    bool   `json:"is_vaccinated"`
	IsNeutered      bool   `json:"is_neutered"`
	HealthStatus    string `json:"health_status,omitempty"`
	Province        string `json:"province" validate:"required"`
	District        string `json:"district" validate:"required"`
	City            string `json:"city" validate:"required"`
	DetailedAddress string `json:"detailed_address,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ImageURL        string `json:"image_url,omitempty" validate:"omitempty,url"`
	ShelterID       string `json:"shelter_id,omitempty" validate:"omitempty,uuid"`
}

// MissingPetInput is the body of a missing-pet report.
type MissingPetInput struct {
	PetInput
	LastSeenLocation   string     `json:"last_seen_location" validate:"required,max=200"`
	LastSeenDate       *time.Time `json:"last_seen_date,omitempty"`
	RewardOfferedCents int64      `json:"reward_offered_cents,omitempty" validate:"min=0"`
}

// PetFilters are the server-side listing filters. Empty values are omitted
// from the query string.
type PetFilters struct {
	PetType      string
	Size         string
	Gender       string
	Province     string
	District     string
	City         string
	IsVaccinated *bool
	IsNeutered   *bool
	Search       string
	Ordering     string
	Page         int
	Limit        int
}

// Pagination describes a page of a larger listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// Shelter is a rescue organisation.
type Shelter struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	ShelterType        string    `json:"shelter_type"`
	Description        string    `json:"description,omitempty"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city"`
	State              string    `json:"state,omitempty"`
	Country            string    `json:"country"`
	Location           string    `json:"location"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	Website            string    `json:"website,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	IsVerified         bool      `json:"is_verified"`
	CreatedAt          time.Time `json:"created_at"`
}

// ShelterParams filter the shelter listing.
type ShelterParams struct {
	Search   string
	City     string
	Verified bool
	Page     int
	Limit    int
}

// ContactMessageInput is the body of a contact form submission.
type ContactMessageInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"max=20"`
	Subject string `json:"subject,omitempty" validate:"omitempty,oneof=general adoption missing shelter donation volunteer other"`
	Message string `json:"message" validate:"required"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactMessageResult is the confirmation returned for a sent message.
type ContactMessageResult struct {
	Message string         `json:"message"`
	Data    ContactMessage `json:"data"`
}

// ContactInfo is the organisation's public contact record.
type ContactInfo struct {
	OrganizationName string `json:"organization_name"`
	Tagline          string `json:"tagline,omitempty"`
	PhonePrimary     string `json:"phone_primary"`
	PhoneSecondary   string `json:"phone_secondary,omitempty"`
	EmailPrimary     string `json:"email_primary"`
	EmailSecondary   string `json:"email_secondary,omitempty"`
	AddressLine1     string `json:"address_line1"`
	AddressLine2     string `json:"address_line2,omitempty"`
	City             string `json:"city"`
	District         string `json:"district"`
	Province         string `json:"province"`
	PostalCode       string `json:"postal_code,omitempty"`
	FacebookURL      string `json:"facebook_url,omitempty"`
	InstagramURL     string `json:"instagram_url,omitempty"`
	TwitterURL       string `json:"twitter_url,omitempty"`
	YoutubeURL       string `json:"youtube_url,omitempty"`
	OfficeHours      string `json:"office_hours,omitempty"`
	EmergencyPhone   string `json:"emergency_phone,omitempty"`
}

// User is the authenticated account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

// RegisterInput is the body of a sign-up request.
type RegisterInput struct {
	Username  string `json:"username,omitempty" validate:"max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name,omitempty" validate:"max=150"`
	LastName  string `json:"last_name,omitempty" validate:"max=150"`
}

// Auth is the result of a login or registration.
type Auth struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// FavoriteToggle reports the new favourite state of a pet.
type FavoriteToggle struct {
	PetID     string `json:"pet_id"`
	Favorited bool   `json:"favorited"`
}

// Health is the liveness payload.
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime,omitempty"`
}
