package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/contact"
	"github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// MessageSentConfirmation is returned alongside a stored contact message.
const MessageSentConfirmation = "Your message has been sent successfully! We will get back to you soon."

// SendMessageRequest is the contact form payload.
type SendMessageRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=20"`
	Subject string `json:"subject" binding:"omitempty,oneof=general adoption missing shelter donation volunteer other"`
	Message string `json:"message" binding:"required"`
}

// UpdateMessageStatusRequest triages a contact message.
type UpdateMessageStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=new in_progress resolved closed"`
	AdminNotes string `json:"admin_notes"`
}

// ContactMessageDTO is the API representation of a contact message.
type ContactMessageDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SendMessageResult wraps the stored message with a confirmation line.
type SendMessageResult struct {
	Message string            `json:"message"`
	Data    ContactMessageDTO `json:"data"`
}

// ContactInfoDTO is the organisation's public contact card.
type ContactInfoDTO struct {
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

// ContactService implements the contact form and organisation info.
type ContactService struct {
	messages contact.MessageRepository
	info     contact.InfoRepository
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(
	messages contact.MessageRepository,
	info contact.InfoRepository,
	producer kafka.Publisher,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		messages: messages,
		info:     info,
		producer: producer,
		logger:   logger,
	}
}

// SendMessage stores a contact form submission.
func (s *ContactService) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResult, error) {
	msg, err := contact.NewMessage(req.Name, req.Email, req.Phone, contact.Subject(req.Subject), req.Message)
	if err != nil {
		return nil, err
	}

	if err := s.messages.Save(ctx, msg); err != nil {
		s.logger.Error("failed to save contact message", zap.Error(err))
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	s.logger.Info("contact message received",
		zap.String("message_id", msg.ID().String()),
		zap.String("subject", string(msg.Subject())),
	)

	publishEvent(ctx, s.producer, s.logger, events.ContactMessageReceived, msg.ID().String(), events.ContactMessageReceivedEvent{
		MessageID:  msg.ID(),
		Email:      msg.Email(),
		Subject:    string(msg.Subject()),
		OccurredAt: time.Now().UTC(),
	})

	return &SendMessageResult{
		Message: MessageSentConfirmation,
		Data:    toContactMessageDTO(msg),
	}, nil
}

// GetInfo returns the active contact card, creating the default one when none exists.
func (s *ContactService) GetInfo(ctx context.Context) (*ContactInfoDTO, error) {
	info, err := s.info.FindActive(ctx)
	if err == nil {
		result := toContactInfoDTO(info)
		return &result, nil
	}
	if !domain.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load contact info: %w", err)
	}

	def := contact.DefaultInfo()
	if err := s.info.Save(ctx, &def); err != nil {
		s.logger.Error("failed to store default contact info", zap.Error(err))
		return nil, fmt.Errorf("failed to store default contact info: %w", err)
	}
	s.logger.Info("default contact info created")
	result := toContactInfoDTO(&def)
	return &result, nil
}

// ListMessages returns contact messages newest first. Admin only.
func (s *ContactService) ListMessages(ctx context.Context, status string, page, limit int) (*ListResult[ContactMessageDTO], error) {
	st := contact.MessageStatus(status)
	if st != "" && !st.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid message status: %s", status))
	}
	msgs, total, err := s.messages.List(ctx, st, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	dtos := make([]ContactMessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = toContactMessageDTO(m)
	}
	return &ListResult[ContactMessageDTO]{Items: dtos, Total: total, Page: page, Limit: limit}, nil
}

// UpdateMessageStatus triages a message. Admin only.
func (s *ContactService) UpdateMessageStatus(ctx context.Context, id uuid.UUID, req UpdateMessageStatusRequest) (*ContactMessageDTO, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := msg.SetStatus(contact.MessageStatus(req.Status), req.AdminNotes); err != nil {
		return nil, err
	}

	if err := s.messages.Update(ctx, msg); err != nil {
		s.logger.Error("failed to update contact message", zap.Error(err))
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}

	s.logger.Info("contact message triaged",
		zap.String("message_id", id.String()),
		zap.String("status", req.Status),
	)
	result := toContactMessageDTO(msg)
	return &result, nil
}

// CountMessages returns the number of messages with the given status ("" for all).
func (s *ContactService) CountMessages(ctx context.Context, status contact.MessageStatus) (int64, error) {
	_, total, err := s.messages.List(ctx, status, 1, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return total, nil
}

func toContactMessageDTO(m *contact.Message) ContactMessageDTO {
	return ContactMessageDTO{
		ID:         m.ID(),
		Name:       m.Name(),
		Email:      m.Email(),
		Phone:      m.Phone(),
		Subject:    string(m.Subject()),
		Message:    m.Body(),
		Status:     string(m.Status()),
		AdminNotes: m.AdminNotes(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func toContactInfoDTO(i *contact.Info) ContactInfoDTO {
	return ContactInfoDTO{
		OrganizationName: i.OrganizationName,
		Tagline:          i.Tagline,
		PhonePrimary:     i.PhonePrimary,
		PhoneSecondary:   i.PhoneSecondary,
		EmailPrimary:     i.EmailPrimary,
		EmailSecondary:   i.EmailSecondary,
		AddressLine1:     i.AddressLine1,
		AddressLine2:     i.AddressLine2,
		City:             i.City,
		District:         i.District,
		Province:         i.Province,
		PostalCode:       i.PostalCode,
		FacebookURL:      i.FacebookURL,
		InstagramURL:     i.InstagramURL,
		TwitterURL:       i.TwitterURL,
		YoutubeURL:       i.YoutubeURL,
		OfficeHours:      i.OfficeHours,
		EmergencyPhone:   i.EmergencyPhone,
	}
}
