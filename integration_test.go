//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoptme/service-adoption/internal/application"
	adoptionEvents "github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/repository"
)

// TestDonationSettled_CompletesDonation verifies that a settlement published
// to payment.events completes a processing donation and announces it on
// adoption.events.
func TestDonationSettled_CompletesDonation(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupDonationStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created, err := stack.Service.CreateDonation(ctx, nil, application.CreateDonationRequest{
		DonationType:  "platform",
		AmountCents:   250000,
		PaymentMethod: "esewa",
		DonorName:     "Sita",
	})
	require.NoError(t, err)
	donationID := created.Donation.ID

	processing, err := stack.Service.ProcessPayment(ctx, donationID, nil, application.ProcessPaymentRequest{
		PaymentToken: "tok_test",
	})
	require.NoError(t, err)
	assert.Equal(t, "processing", processing.PaymentStatus)

	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	publishTestEvent(t, infra.KafkaBrokers, adoptionEvents.TopicPaymentEvents,
		"service-payment", adoptionEvents.PaymentDonationSettled, adoptionEvents.DonationSettledEvent{
			DonationID:    donationID,
			TransactionID: "esewa-txn-1",
			Processor:     "esewa",
			OccurredAt:    time.Now().UTC(),
		})

	model := waitForPaymentStatus(t, infra.DB, donationID, "completed", 15*time.Second)
	assert.Equal(t, "esewa-txn-1", model.TransactionID)
	assert.Regexp(t, `^ADM-\d{4}-[0-9A-F]{8}$`, model.ReceiptNumber)
	require.NotNil(t, model.CompletedAt)

	ce := consumeOneEvent(t, infra.KafkaBrokers, adoptionEvents.TopicAdoptionEvents,
		adoptionEvents.DonationCompleted, 15*time.Second)

	var completed adoptionEvents.DonationEvent
	require.NoError(t, ce.ParseData(&completed))
	assert.Equal(t, donationID, completed.DonationID)
	assert.Equal(t, int64(250000), completed.AmountCents)
	assert.Equal(t, "NPR", completed.Currency)
}

// TestGormPetRepository_ListFilters exercises the SQL filter and search path
// against a real database.
func TestGormPetRepository_ListFilters(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	ctx := context.Background()
	repo := repository.NewGormPetRepository(infra.DB)
	owner := uuid.New()

	seed := []pet.Profile{
		{Name: "Bruno", PetType: pet.TypeDog, Breed: "Labrador", Province: pet.ProvinceBagmati, District: "Kathmandu", City: "Kathmandu", IsVaccinated: true},
		{Name: "Mimi", PetType: pet.TypeCat, Breed: "Persian", Province: pet.ProvinceGandaki, District: "Kaski", City: "Pokhara"},
		{Name: "Tiger", PetType: pet.TypeCat, Breed: "Tabby 100%", Province: pet.ProvinceBagmati, District: "Lalitpur", City: "Patan"},
	}
	for _, prof := range seed {
		p, err := pet.NewPet(owner, prof)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}

	cats, total, err := repo.List(ctx, pet.ListFilter{PetType: "CAT", Statuses: []pet.Status{pet.StatusAvailable}, ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, cats, 2)

	byCity, _, err := repo.List(ctx, pet.ListFilter{Search: "pokh"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "Mimi", byCity[0].Name())

	literal, _, err := repo.List(ctx, pet.ListFilter{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "Tiger", literal[0].Name())

	vaccinated := true
	vax, _, err := repo.List(ctx, pet.ListFilter{IsVaccinated: &vaccinated})
	require.NoError(t, err)
	require.Len(t, vax, 1)
	assert.Equal(t, "Bruno", vax[0].Name())
}
