package donation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// Type is what a donation supports.
type Type string

const (
	TypeShelter   Type = "shelter"
	TypePlatform  Type = "platform"
	TypeEmergency Type = "emergency"
	TypeGeneral   Type = "general"
)

// IsValid reports whether t is a known donation type.
func (t Type) IsValid() bool {
	switch t {
	case TypeShelter, TypePlatform, TypeEmergency, TypeGeneral:
		return true
	}
	return false
}

// PaymentMethod is how the donor pays.
type PaymentMethod string

const (
	MethodCreditCard    PaymentMethod = "credit_card"
	MethodDebitCard     PaymentMethod = "debit_card"
	MethodPayPal        PaymentMethod = "paypal"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
	MethodMobilePayment PaymentMethod = "mobile_payment"
	MethodEsewa         PaymentMethod = "esewa"
	MethodKhalti        PaymentMethod = "khalti"
	MethodOther         PaymentMethod = "other"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPayPal, MethodBankTransfer,
		MethodMobilePayment, MethodEsewa, MethodKhalti, MethodOther:
		return true
	}
	return false
}

// MaxAmountCents caps a single donation.
const MaxAmountCents int64 = 100_000_000

// Pledge is the donor-supplied part of a new donation.
type Pledge struct {
	DonorID         *uuid.UUID
	DonorName       string
	DonorEmail      string
	Type            Type
	ShelterID       *uuid.UUID
	AmountCents     int64
	Currency        string
	Method          PaymentMethod
	Message         string
	Dedication      string
	IsAnonymous     bool
	IsTaxDeductible bool
}

// Donation is the aggregate root for a single gift.
type Donation struct {
	id            uuid.UUID
	pledge        Pledge
	donorName     string
	status        PaymentStatus
	transactionID string
	processor     string
	receiptNumber string
	failureReason string
	completedAt   *time.Time
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewDonation validates a pledge and creates a pending donation.
// donorName is the registered donor's display name, if any.
func NewDonation(p Pledge, donorName string) (*Donation, error) {
	if p.Type == "" {
		p.Type = TypeGeneral
	}
	if !p.Type.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid donation type: %s", p.Type))
	}
	if p.Type == TypeShelter && (p.ShelterID == nil || *p.ShelterID == uuid.Nil) {
		return nil, domain.NewValidationError("shelter is required for shelter donations")
	}
	if p.Type != TypeShelter {
		p.ShelterID = nil
	}
	if p.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount must be positive")
	}
	if p.AmountCents > MaxAmountCents {
		return nil, domain.NewValidationError("amount exceeds the maximum single donation")
	}
	if p.Currency == "" {
		p.Currency = domain.CurrencyNPR
	}
	p.Currency = strings.ToUpper(p.Currency)
	if len(p.Currency) != 3 {
		return nil, domain.NewValidationError("currency must be a 3-letter code")
	}
	if p.Method == "" {
		p.Method = MethodOther
	}
	if !p.Method.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", p.Method))
	}
	if p.DonorID == nil && p.DonorEmail != "" {
		if _, err := mail.ParseAddress(p.DonorEmail); err != nil {
			return nil, domain.NewValidationError("donor email is invalid")
		}
	}

	now := time.Now().UTC()
	return &Donation{
		id:        uuid.New(),
		pledge:    p,
		donorName: strings.TrimSpace(donorName),
		status:    PaymentPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Donation from persistence.
func Reconstruct(
	id uuid.UUID,
	pledge Pledge,
	donorName string,
	status PaymentStatus,
	transactionID, processor, receiptNumber, failureReason string,
	completedAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Donation {
	return &Donation{
		id:            id,
		pledge:        pledge,
		donorName:     donorName,
		status:        status,
		transactionID: transactionID,
		processor:     processor,
		receiptNumber: receiptNumber,
		failureReason: failureReason,
		completedAt:   completedAt,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (d *Donation) ID() uuid.UUID               { return d.id }
func (d *Donation) Pledge() Pledge              { return d.pledge }
func (d *Donation) RegisteredDonorName() string { return d.donorName }
func (d *Donation) Status() PaymentStatus       { return d.status }
func (d *Donation) TransactionID() string       { return d.transactionID }
func (d *Donation) Processor() string           { return d.processor }
func (d *Donation) ReceiptNumber() string       { return d.receiptNumber }
func (d *Donation) FailureReason() string       { return d.failureReason }
func (d *Donation) CompletedAt() *time.Time     { return d.completedAt }
func (d *Donation) Version() int64              { return d.version }
func (d *Donation) CreatedAt() time.Time        { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time        { return d.updatedAt }

// IsDonatedBy reports whether the registered donor is userID.
func (d *Donation) IsDonatedBy(userID uuid.UUID) bool {
	return d.pledge.DonorID != nil && *d.pledge.DonorID == userID
}

// IsPublic reports whether the donation may be listed publicly.
func (d *Donation) IsPublic() bool {
	return d.status == PaymentCompleted && !d.pledge.IsAnonymous
}

// DonorDisplayName hides anonymous donors and falls back through the
// registered name and the name given with the pledge.
func (d *Donation) DonorDisplayName() string {
	if d.pledge.IsAnonymous {
		return "Anonymous"
	}
	if d.pledge.DonorID != nil && d.donorName != "" {
		return d.donorName
	}
	if strings.TrimSpace(d.pledge.DonorName) != "" {
		return strings.TrimSpace(d.pledge.DonorName)
	}
	return "Anonymous"
}

// StartProcessing marks the payment as handed to a processor.
func (d *Donation) StartProcessing(processor string) error {
	if err := d.transition(PaymentProcessing); err != nil {
		return err
	}
	d.processor = processor
	return nil
}

// Complete records a successful payment and issues a receipt number when
// the gift is tax deductible.
func (d *Donation) Complete(transactionID, processor string, at time.Time) error {
	if strings.TrimSpace(transactionID) == "" {
		return domain.NewValidationError("transaction ID is required")
	}
	if err := d.transition(PaymentCompleted); err != nil {
		return err
	}
	d.transactionID = transactionID
	if processor != "" {
		d.processor = processor
	}
	completed := at.UTC()
	d.completedAt = &completed
	if d.pledge.IsTaxDeductible {
		d.receiptNumber = NewReceiptNumber(completed)
	}
	return nil
}

// Fail records a failed payment.
func (d *Donation) Fail(reason string) error {
	if err := d.transition(PaymentFailed); err != nil {
		return err
	}
	d.failureReason = reason
	return nil
}

// Cancel abandons a pending donation.
func (d *Donation) Cancel() error {
	return d.transition(PaymentCancelled)
}

// Refund reverses a completed donation.
func (d *Donation) Refund() error {
	return d.transition(PaymentRefunded)
}

func (d *Donation) transition(target PaymentStatus) error {
	if !d.status.CanTransitionTo(target) {
		return domain.NewValidationError(
			fmt.Sprintf("cannot move donation from %s to %s", d.status, target))
	}
	d.status = target
	d.version++
	d.updatedAt = time.Now().UTC()
	return nil
}

// NewReceiptNumber formats a receipt number as ADM-<year>-<8 upper hex>.
func NewReceiptNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ADM-%d-%s", at.Year(), suffix)
}
