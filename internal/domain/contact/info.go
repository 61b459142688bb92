package contact

import "time"

// Info is the organisation's public contact card.
type Info struct {
	ID               int64
	OrganizationName string
	Tagline          string
	PhonePrimary     string
	PhoneSecondary   string
	EmailPrimary     string
	EmailSecondary   string
	AddressLine1     string
	AddressLine2     string
	City             string
	District         string
	Province         string
	PostalCode       string
	FacebookURL      string
	InstagramURL     string
	TwitterURL       string
	YoutubeURL       string
	OfficeHours      string
	EmergencyPhone   string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultInfo is served (and stored) when no active record exists.
func DefaultInfo() Info {
	now := time.Now().UTC()
	return Info{
		OrganizationName: "AdoptAPet Nepal",
		Tagline:          "Connecting hearts, saving lives",
		PhonePrimary:     "+977-1-4234567",
		EmailPrimary:     "info@adoptapet.np",
		AddressLine1:     "Baneshwor",
		City:             "Kathmandu",
		District:         "Kathmandu",
		Province:         "Bagmati Province",
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
