package application

import (
	"context"

	"github.com/adoptme/service-adoption/internal/domain/contact"
)

// AdminStatsDTO is the admin dashboard summary.
type AdminStatsDTO struct {
	TotalUsers           int64            `json:"total_users"`
	Pets                 PetStatsDTO      `json:"pets"`
	NewContactMessages   int64            `json:"new_contact_messages"`
	TotalContactMessages int64            `json:"total_contact_messages"`
	Donations            DonationStatsDTO `json:"donations"`
}

// AdminService aggregates figures across the other services.
type AdminService struct {
	accounts  *AccountService
	pets      *PetService
	contact   *ContactService
	donations *DonationService
}

// NewAdminService creates a new AdminService.
func NewAdminService(accounts *AccountService, pets *PetService, contact *ContactService, donations *DonationService) *AdminService {
	return &AdminService{accounts: accounts, pets: pets, contact: contact, donations: donations}
}

// Stats collects the dashboard figures.
func (s *AdminService) Stats(ctx context.Context) (*AdminStatsDTO, error) {
	users, err := s.accounts.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.Stats(ctx)
	if err != nil {
		return nil, err
	}
	newMessages, err := s.contact.CountMessages(ctx, contact.StatusNew)
	if err != nil {
		return nil, err
	}
	allMessages, err := s.contact.CountMessages(ctx, "")
	if err != nil {
		return nil, err
	}
	donations, err := s.donations.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStatsDTO{
		TotalUsers:           users,
		Pets:                 *pets,
		NewContactMessages:   newMessages,
		TotalContactMessages: allMessages,
		Donations:            *donations,
	}, nil
}
