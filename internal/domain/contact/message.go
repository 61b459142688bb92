package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// Subject categorises a contact message.
type Subject string

const (
	SubjectGeneral   Subject = "general"
	SubjectAdoption  Subject = "adoption"
	SubjectMissing   Subject = "missing"
	SubjectShelter   Subject = "shelter"
	SubjectDonation  Subject = "donation"
	SubjectVolunteer Subject = "volunteer"
	SubjectOther     Subject = "other"
)

// IsValid reports whether s is a known subject.
func (s Subject) IsValid() bool {
	switch s {
	case SubjectGeneral, SubjectAdoption, SubjectMissing, SubjectShelter,
		SubjectDonation, SubjectVolunteer, SubjectOther:
		return true
	}
	return false
}

// MessageStatus is the triage state of a message.
type MessageStatus string

const (
	StatusNew        MessageStatus = "new"
	StatusInProgress MessageStatus = "in_progress"
	StatusResolved   MessageStatus = "resolved"
	StatusClosed     MessageStatus = "closed"
)

// IsValid reports whether s is a known status.
func (s MessageStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Message is a contact form submission.
type Message struct {
	id         uuid.UUID
	name       string
	email      string
	phone      string
	subject    Subject
	body       string
	status     MessageStatus
	adminNotes string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewMessage validates and creates a new message.
func NewMessage(name, email, phone string, subject Subject, body string) (*Message, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if subject == "" {
		subject = SubjectGeneral
	}
	if !subject.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid subject: %s", subject))
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewValidationError("message is required")
	}

	now := time.Now().UTC()
	return &Message{
		id:        uuid.New(),
		name:      name,
		email:     strings.TrimSpace(email),
		phone:     strings.TrimSpace(phone),
		subject:   subject,
		body:      body,
		status:    StatusNew,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMessage rebuilds a Message from persistence.
func ReconstructMessage(
	id uuid.UUID,
	name, email, phone string,
	subject Subject,
	body string,
	status MessageStatus,
	adminNotes string,
	createdAt, updatedAt time.Time,
) *Message {
	return &Message{
		id:         id,
		name:       name,
		email:      email,
		phone:      phone,
		subject:    subject,
		body:       body,
		status:     status,
		adminNotes: adminNotes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (m *Message) ID() uuid.UUID         { return m.id }
func (m *Message) Name() string          { return m.name }
func (m *Message) Email() string         { return m.email }
func (m *Message) Phone() string         { return m.phone }
func (m *Message) Subject() Subject      { return m.subject }
func (m *Message) Body() string          { return m.body }
func (m *Message) Status() MessageStatus { return m.status }
func (m *Message) AdminNotes() string    { return m.adminNotes }
func (m *Message) CreatedAt() time.Time  { return m.createdAt }
func (m *Message) UpdatedAt() time.Time  { return m.updatedAt }

// SetStatus records triage progress with optional notes.
func (m *Message) SetStatus(status MessageStatus, notes string) error {
	if !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid message status: %s", status))
	}
	m.status = status
	if notes != "" {
		m.adminNotes = notes
	}
	m.updatedAt = time.Now().UTC()
	return nil
}
