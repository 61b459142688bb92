package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/account"
	"github.com/adoptme/service-adoption/internal/domain/donation"
	"github.com/adoptme/service-adoption/internal/domain/shelter"
	"github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// NextStepProcessPayment tells the client to call the payment endpoint.
const NextStepProcessPayment = "process_payment"

// CreateDonationRequest is the request DTO for pledging a donation.
type CreateDonationRequest struct {
	DonationType    string     `json:"donation_type" binding:"omitempty,oneof=shelter platform emergency general"`
	ShelterID       *uuid.UUID `json:"shelter_id"`
	AmountCents     int64      `json:"amount_cents" binding:"required,gt=0"`
	Currency        string     `json:"currency" binding:"omitempty,len=3"`
	PaymentMethod   string     `json:"payment_method" binding:"omitempty,oneof=credit_card debit_card paypal bank_transfer mobile_payment esewa khalti other"`
	Message         string     `json:"message" binding:"max=1000"`
	Dedication      string     `json:"dedication" binding:"max=200"`
	IsAnonymous     bool       `json:"is_anonymous"`
	IsTaxDeductible *bool      `json:"is_tax_deductible"`
	DonorName       string     `json:"donor_name" binding:"max=100"`
	DonorEmail      string     `json:"donor_email" binding:"omitempty,email"`
}

// ProcessPaymentRequest hands a tokenised payment to the processor.
type ProcessPaymentRequest struct {
	PaymentToken string `json:"payment_token" binding:"required"`
	Processor    string `json:"processor" binding:"max=50"`
	ReturnURL    string `json:"return_url" binding:"omitempty,url"`
}

// ListDonationsQuery holds donation listing filters.
type ListDonationsQuery struct {
	DonationType   string `form:"donation_type"`
	ShelterID      string `form:"shelter_id"`
	MinAmountCents int64  `form:"min_amount_cents"`
	MaxAmountCents int64  `form:"max_amount_cents"`
}

// DonationDTO is the API representation of a donation.
type DonationDTO struct {
	ID              uuid.UUID  `json:"id"`
	DonorName       string     `json:"donor_name"`
	DonationType    string     `json:"donation_type"`
	ShelterID       *uuid.UUID `json:"shelter_id,omitempty"`
	AmountCents     int64      `json:"amount_cents"`
	Currency        string     `json:"currency"`
	PaymentMethod   string     `json:"payment_method"`
	PaymentStatus   string     `json:"payment_status"`
	Message         string     `json:"message,omitempty"`
	Dedication      string     `json:"dedication,omitempty"`
	IsAnonymous     bool       `json:"is_anonymous"`
	IsTaxDeductible bool       `json:"is_tax_deductible"`
	ReceiptNumber   string     `json:"receipt_number,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateDonationResult tells the client how to pay for a new donation.
type CreateDonationResult struct {
	Donation   DonationDTO `json:"donation"`
	NextStep   string      `json:"next_step"`
	PaymentURL string      `json:"payment_url"`
}

// DonationStatsDTO summarises completed donations.
type DonationStatsDTO struct {
	TotalAmountCents   int64            `json:"total_amount_cents"`
	TotalDonations     int64            `json:"total_donations"`
	AverageAmountCents int64            `json:"average_amount_cents"`
	UniqueDonors       int64            `json:"unique_donors"`
	ByType             map[string]int64 `json:"by_type"`
}

// DonationService implements the donation and payment use cases.
type DonationService struct {
	repo     donation.DonationRepository
	users    account.UserRepository
	shelters shelter.ShelterRepository
	producer kafka.Publisher
	logger   *zap.Logger
	// settleAsync leaves payments in processing until payment.events reports the outcome.
	settleAsync bool
}

// NewDonationService creates a new DonationService. When settleAsync is true,
// ProcessPayment only starts processing and completion arrives via
// CompletePayment/FailPayment.
func NewDonationService(
	repo donation.DonationRepository,
	users account.UserRepository,
	shelters shelter.ShelterRepository,
	producer kafka.Publisher,
	logger *zap.Logger,
	settleAsync bool,
) *DonationService {
	return &DonationService{
		repo:        repo,
		users:       users,
		shelters:    shelters,
		producer:    producer,
		logger:      logger,
		settleAsync: settleAsync,
	}
}

// CreateDonation records a pending donation. donorID is nil for guests.
func (s *DonationService) CreateDonation(ctx context.Context, donorID *uuid.UUID, req CreateDonationRequest) (*CreateDonationResult, error) {
	taxDeductible := true
	if req.IsTaxDeductible != nil {
		taxDeductible = *req.IsTaxDeductible
	}
	pledge := donation.Pledge{
		DonorID:         donorID,
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		Type:            donation.Type(req.DonationType),
		ShelterID:       req.ShelterID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		Method:          donation.PaymentMethod(req.PaymentMethod),
		Message:         req.Message,
		Dedication:      req.Dedication,
		IsAnonymous:     req.IsAnonymous,
		IsTaxDeductible: taxDeductible,
	}

	var donorName string
	if donorID != nil {
		user, err := s.users.FindByID(ctx, *donorID)
		if err != nil {
			return nil, err
		}
		donorName = user.DisplayName()
	}
	if pledge.Type == donation.TypeShelter && req.ShelterID != nil {
		if _, err := s.shelters.FindByID(ctx, *req.ShelterID); err != nil {
			return nil, err
		}
	}

	d, err := donation.NewDonation(pledge, donorName)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, d); err != nil {
		s.logger.Error("failed to create donation", zap.Error(err))
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	s.logger.Info("donation created",
		zap.String("donation_id", d.ID().String()),
		zap.Int64("amount_cents", d.Pledge().AmountCents),
		zap.String("currency", d.Pledge().Currency),
	)
	s.publishDonation(ctx, events.DonationCreated, d)

	return &CreateDonationResult{
		Donation:   toDonationDTO(d),
		NextStep:   NextStepProcessPayment,
		PaymentURL: fmt.Sprintf("/api/v1/donations/%s/payment", d.ID()),
	}, nil
}

// ProcessPayment charges a pending donation. Registered donors may only pay
// for their own donations.
func (s *DonationService) ProcessPayment(ctx context.Context, donationID uuid.UUID, viewerID *uuid.UUID, req ProcessPaymentRequest) (*DonationDTO, error) {
	d, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donor := d.Pledge().DonorID; donor != nil && (viewerID == nil || *viewerID != *donor) {
		return nil, domain.NewForbiddenError("you can only pay for your own donations")
	}
	if d.Status() != donation.PaymentPending {
		return nil, domain.NewValidationError("donation is not awaiting payment")
	}

	processor := strings.TrimSpace(req.Processor)
	if processor == "" {
		processor = defaultProcessor(d.Pledge().Method)
	}

	if s.settleAsync {
		err = d.StartProcessing(processor)
	} else {
		err = d.Complete(uuid.NewString(), processor, time.Now())
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to process payment", zap.Error(err))
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	s.logger.Info("donation payment submitted",
		zap.String("donation_id", donationID.String()),
		zap.String("processor", processor),
		zap.String("status", string(d.Status())),
	)
	if d.Status() == donation.PaymentCompleted {
		s.publishDonation(ctx, events.DonationCompleted, d)
	}

	result := toDonationDTO(d)
	return &result, nil
}

// CompletePayment applies a settlement reported by the payment gateway.
// Repeated settlements for an already completed donation are ignored.
func (s *DonationService) CompletePayment(ctx context.Context, donationID uuid.UUID, transactionID, processor string, at time.Time) error {
	d, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return err
	}
	if d.Status() == donation.PaymentCompleted {
		s.logger.Info("duplicate settlement ignored", zap.String("donation_id", donationID.String()))
		return nil
	}
	if err := d.Complete(transactionID, processor, at); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to complete donation", zap.Error(err))
		return fmt.Errorf("failed to complete donation: %w", err)
	}

	s.logger.Info("donation completed",
		zap.String("donation_id", donationID.String()),
		zap.String("receipt_number", d.ReceiptNumber()),
	)
	s.publishDonation(ctx, events.DonationCompleted, d)
	return nil
}

// FailPayment records a failed settlement.
func (s *DonationService) FailPayment(ctx context.Context, donationID uuid.UUID, reason string) error {
	d, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return err
	}
	if d.Status() == donation.PaymentFailed {
		return nil
	}
	if err := d.Fail(reason); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to mark donation failed", zap.Error(err))
		return fmt.Errorf("failed to mark donation failed: %w", err)
	}

	s.logger.Info("donation payment failed",
		zap.String("donation_id", donationID.String()),
		zap.String("reason", reason),
	)
	return nil
}

// CancelDonation abandons a donation that is still awaiting payment. The
// same caller rule as ProcessPayment applies.
func (s *DonationService) CancelDonation(ctx context.Context, donationID uuid.UUID, viewerID *uuid.UUID) (*DonationDTO, error) {
	d, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donor := d.Pledge().DonorID; donor != nil && (viewerID == nil || *viewerID != *donor) {
		return nil, domain.NewForbiddenError("you can only cancel your own donations")
	}
	if d.Status() != donation.PaymentPending {
		return nil, domain.NewValidationError("only donations awaiting payment can be cancelled")
	}
	if err := d.Cancel(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to cancel donation", zap.Error(err))
		return nil, fmt.Errorf("failed to cancel donation: %w", err)
	}

	s.logger.Info("donation cancelled", zap.String("donation_id", donationID.String()))
	s.publishDonation(ctx, events.DonationCancelled, d)

	result := toDonationDTO(d)
	return &result, nil
}

// RefundDonation reverses a completed donation. Admin only.
func (s *DonationService) RefundDonation(ctx context.Context, donationID uuid.UUID) (*DonationDTO, error) {
	d, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if d.Status() != donation.PaymentCompleted {
		return nil, domain.NewValidationError("only completed donations can be refunded")
	}
	if err := d.Refund(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to refund donation", zap.Error(err))
		return nil, fmt.Errorf("failed to refund donation: %w", err)
	}

	s.logger.Info("donation refunded",
		zap.String("donation_id", donationID.String()),
		zap.Int64("amount_cents", d.Pledge().AmountCents),
	)
	s.publishDonation(ctx, events.DonationRefunded, d)

	result := toDonationDTO(d)
	return &result, nil
}

// ListPublic returns completed, non-anonymous donations plus the viewer's own.
func (s *DonationService) ListPublic(ctx context.Context, viewerID *uuid.UUID, q ListDonationsQuery, page, limit int) (*ListResult[DonationDTO], error) {
	f := donation.ListFilter{
		PublicOnly:     true,
		ViewerID:       viewerID,
		Type:           donation.Type(q.DonationType),
		MinAmountCents: q.MinAmountCents,
		MaxAmountCents: q.MaxAmountCents,
		Page:           page,
		Limit:          limit,
	}
	if q.ShelterID != "" {
		id, err := uuid.Parse(q.ShelterID)
		if err != nil {
			return nil, domain.NewValidationError("invalid shelter ID")
		}
		f.ShelterID = &id
	}
	return s.list(ctx, f)
}

// ListMine returns every donation made by the user.
func (s *DonationService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) (*ListResult[DonationDTO], error) {
	return s.list(ctx, donation.ListFilter{DonorID: &userID, Page: page, Limit: limit})
}

func (s *DonationService) list(ctx context.Context, f donation.ListFilter) (*ListResult[DonationDTO], error) {
	donations, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	dtos := make([]DonationDTO, len(donations))
	for i, d := range donations {
		dtos[i] = toDonationDTO(d)
	}
	return &ListResult[DonationDTO]{Items: dtos, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Stats aggregates completed donations.
func (s *DonationService) Stats(ctx context.Context) (*DonationStatsDTO, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute donation stats: %w", err)
	}
	byType := make(map[string]int64, len(st.ByType))
	for t, amount := range st.ByType {
		byType[string(t)] = amount
	}
	return &DonationStatsDTO{
		TotalAmountCents:   st.TotalAmountCents,
		TotalDonations:     st.TotalCount,
		AverageAmountCents: st.AverageAmountCents,
		UniqueDonors:       st.UniqueDonors,
		ByType:             byType,
	}, nil
}

func (s *DonationService) publishDonation(ctx context.Context, eventType string, d *donation.Donation) {
	p := d.Pledge()
	publishEvent(ctx, s.producer, s.logger, eventType, d.ID().String(), events.DonationEvent{
		DonationID:    d.ID(),
		DonorID:       p.DonorID,
		ShelterID:     p.ShelterID,
		DonationType:  string(p.Type),
		AmountCents:   p.AmountCents,
		Currency:      p.Currency,
		PaymentStatus: string(d.Status()),
		ReceiptNumber: d.ReceiptNumber(),
		OccurredAt:    time.Now().UTC(),
	})
}

func defaultProcessor(m donation.PaymentMethod) string {
	switch m {
	case donation.MethodEsewa:
		return "esewa"
	case donation.MethodKhalti:
		return "khalti"
	case donation.MethodPayPal:
		return "paypal"
	default:
		return "stripe"
	}
}

func toDonationDTO(d *donation.Donation) DonationDTO {
	p := d.Pledge()
	return DonationDTO{
		ID:              d.ID(),
		DonorName:       d.DonorDisplayName(),
		DonationType:    string(p.Type),
		ShelterID:       p.ShelterID,
		AmountCents:     p.AmountCents,
		Currency:        p.Currency,
		PaymentMethod:   string(p.Method),
		PaymentStatus:   string(d.Status()),
		Message:         p.Message,
		Dedication:      p.Dedication,
		IsAnonymous:     p.IsAnonymous,
		IsTaxDeductible: p.IsTaxDeductible,
		ReceiptNumber:   d.ReceiptNumber(),
		CompletedAt:     d.CompletedAt(),
		CreatedAt:       d.CreatedAt(),
	}
}
