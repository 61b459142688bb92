package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicAdoptionEvents = "adoption.events"
	TopicPaymentEvents  = "payment.events"
)

// Source identifies this service in CloudEvents.
const Source = "service-adoption"

// Event types published on adoption.events.
const (
	PetListed              = "pet.listed"
	PetReportedMissing     = "pet.reported_missing"
	PetFound               = "pet.found"
	AdoptionRequested      = "adoption.requested"
	AdoptionApproved       = "adoption.approved"
	AdoptionRejected       = "adoption.rejected"
	ContactMessageReceived = "contact.message_received"
	DonationCreated        = "donation.created"
	DonationCompleted      = "donation.completed"
	DonationCancelled      = "donation.cancelled"
	DonationRefunded       = "donation.refunded"
)

// Event types consumed from payment.events.
const (
	PaymentDonationSettled = "payment.donation_settled"
	PaymentDonationFailed  = "payment.donation_failed"
)

// PetListedEvent is published when a pet is put up for adoption.
type PetListedEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	PetType    string    `json:"pet_type"`
	City       string    `json:"city"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PetReportedMissingEvent is published when a missing pet report is filed.
type PetReportedMissingEvent struct {
	PetID            uuid.UUID  `json:"pet_id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	Name             string     `json:"name"`
	LastSeenLocation string     `json:"last_seen_location"`
	LastSeenDate     *time.Time `json:"last_seen_date,omitempty"`
	RewardCents      int64      `json:"reward_offered_cents"`
	OccurredAt       time.Time  `json:"occurred_at"`
}

// PetFoundEvent is published when a missing pet is marked found.
type PetFoundEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AdoptionRequestEvent covers requested, approved and rejected.
type AdoptionRequestEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	PetID      uuid.UUID `json:"pet_id"`
	AdopterID  uuid.UUID `json:"adopter_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ContactMessageReceivedEvent is published for every contact form submission.
type ContactMessageReceivedEvent struct {
	MessageID  uuid.UUID `json:"message_id"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DonationEvent covers donation created and completed.
type DonationEvent struct {
	DonationID    uuid.UUID  `json:"donation_id"`
	DonorID       *uuid.UUID `json:"donor_id,omitempty"`
	ShelterID     *uuid.UUID `json:"shelter_id,omitempty"`
	DonationType  string     `json:"donation_type"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	PaymentStatus string     `json:"payment_status"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// DonationSettledEvent is emitted by the payment gateway integration once
// funds for a donation have cleared (or failed to).
type DonationSettledEvent struct {
	DonationID    uuid.UUID `json:"donation_id"`
	TransactionID string    `json:"transaction_id"`
	Processor     string    `json:"processor"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
