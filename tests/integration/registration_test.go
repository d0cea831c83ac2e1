//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 30 attendees race for 20 slots: exactly 20 registrations are admitted and
// the stored counter matches.
func TestConcurrentRegistration(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent1, 20, 0)
	svc := newServices()

	totalUsers := 30
	var wg sync.WaitGroup
	results := make(chan *models.Registration, totalUsers)
	errs := make(chan error, totalUsers)

	wg.Add(totalUsers)
	for i := 0; i < totalUsers; i++ {
		go func(userIdx int) {
			defer wg.Done()
			reg, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
				FullName:    fmt.Sprintf("Attendee %03d", userIdx),
				Email:       fmt.Sprintf("attendee-%03d@example.com", userIdx),
				PhoneNumber: "08123456789",
				Gender:      models.GenderFemale,
				Age:         25,
				EventID:     event.ID,
			})
			if err != nil {
				errs <- err
				return
			}
			results <- reg
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	admitted := 0
	for range results {
		admitted++
	}
	rejected := 0
	for err := range errs {
		assert.ErrorIs(t, err, service.ErrQuotaExceeded)
		rejected++
	}

	assert.Equal(t, 20, admitted, "should admit exactly the quota")
	assert.Equal(t, 10, rejected, "should reject the overflow")

	var stored models.Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 20, stored.RegisteredCount)

	var dbRegs int64
	testDB.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&dbRegs)
	assert.Equal(t, int64(20), dbRegs)
}

// Same email registers twice for the same event: the second attempt is
// rejected and does not consume capacity.
func TestDuplicateRegistrationPrevention(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent1, 20, 0)
	svc := newServices()

	first := registerAttendee(t, svc, event.ID, "dupe@example.com")
	assert.Equal(t, models.RegStatusPending, first.Status)

	_, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
		FullName:    "Second Attempt",
		Email:       "dupe@example.com",
		PhoneNumber: "08123456789",
		Gender:      models.GenderMale,
		Age:         30,
		EventID:     event.ID,
	})
	assert.ErrorIs(t, err, service.ErrDuplicateRegistration)

	var stored models.Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 1, stored.RegisteredCount, "rejected attempt must not hold capacity")
}

// Email comparison is case-insensitive: UPPER@ and upper@ are the same person.
func TestDuplicateRegistrationNormalizesEmail(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent1, 20, 0)
	svc := newServices()

	registerAttendee(t, svc, event.ID, "Upper@Example.com")

	_, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
		FullName:    "Second Attempt",
		Email:       "upper@example.com",
		PhoneNumber: "08123456789",
		Gender:      models.GenderMale,
		Age:         30,
		EventID:     event.ID,
	})
	assert.ErrorIs(t, err, service.ErrDuplicateRegistration)
}

// The main event refuses registrations without food allergy info.
func TestMainEventRequiresFoodAllergy(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Annual Summit", models.TypeMainEvent, 100, 150000)
	svc := newServices()

	_, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
		FullName:    "No Allergy Info",
		Email:       "allergic@example.com",
		PhoneNumber: "08123456789",
		Gender:      models.GenderFemale,
		Age:         28,
		EventID:     event.ID,
	})
	assert.ErrorIs(t, err, service.ErrFoodAllergyRequired)

	var stored models.Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 0, stored.RegisteredCount, "rejected attempt must not hold capacity")

	reg, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
		FullName:    "With Allergy Info",
		Email:       "allergic@example.com",
		PhoneNumber: "08123456789",
		Gender:      models.GenderFemale,
		Age:         28,
		FoodAllergy: "peanuts",
		EventID:     event.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, reg.RegistrationCode, "EVT-MAIN-")
}

// Registering against an inactive event fails before any capacity is taken.
func TestRegistrationInactiveEvent(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Closed Event", models.TypePreEvent2, 20, 0)
	require.NoError(t, testDB.Model(&models.Event{}).Where("id = ?", event.ID).Update("is_active", false).Error)
	svc := newServices()

	_, err := svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
		FullName:    "Late Attendee",
		Email:       "late@example.com",
		PhoneNumber: "08123456789",
		Gender:      models.GenderMale,
		Age:         40,
		EventID:     event.ID,
	})
	assert.ErrorIs(t, err, service.ErrEventNotActive)
}

// Deleting a registration releases its capacity unit and removes payments.
func TestDeleteReleasesCapacity(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent1, 20, 0)
	svc := newServices()

	reg := registerAttendee(t, svc, event.ID, "leaver@example.com")

	var stored models.Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	require.Equal(t, 1, stored.RegisteredCount)

	require.NoError(t, svc.registrations.Delete(context.Background(), reg.ID))

	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 0, stored.RegisteredCount)

	var remaining int64
	testDB.Model(&models.Registration{}).Where("id = ?", reg.ID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)

	// The freed slot is immediately reusable by the same email.
	registerAttendee(t, svc, event.ID, "leaver@example.com")
}

// A cancelled registration already gave its slot back, so deleting it must
// not decrement the counter again.
func TestDeleteCancelledKeepsCounter(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent1, 20, 0)
	svc := newServices()

	reg := registerAttendee(t, svc, event.ID, "cancelled@example.com")
	require.NoError(t, testDB.Model(&models.Registration{}).
		Where("id = ?", reg.ID).
		Update("status", models.RegStatusCancelled).Error)
	require.NoError(t, testDB.Model(&models.Event{}).
		Where("id = ?", event.ID).
		Update("registered_count", 0).Error)

	require.NoError(t, svc.registrations.Delete(context.Background(), reg.ID))

	var stored models.Event
	require.NoError(t, testDB.First(&stored, event.ID).Error)
	assert.Equal(t, 0, stored.RegisteredCount, "counter must not go below zero")
}

// Registration codes are unique across concurrent creates.
func TestRegistrationCodesUnique(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Go Meetup Jakarta", models.TypePreEvent2, 50, 0)
	svc := newServices()

	total := 40
	var wg sync.WaitGroup
	wg.Add(total)
	for i := 0; i < total; i++ {
		go func(userIdx int) {
			defer wg.Done()
			svc.registrations.Create(context.Background(), service.CreateRegistrationInput{
				FullName:    fmt.Sprintf("Attendee %03d", userIdx),
				Email:       fmt.Sprintf("codes-%03d@example.com", userIdx),
				PhoneNumber: "08123456789",
				Gender:      models.GenderMale,
				Age:         22,
				EventID:     event.ID,
			})
		}(i)
	}
	wg.Wait()

	var distinct int64
	testDB.Model(&models.Registration{}).
		Where("event_id = ?", event.ID).
		Distinct("registration_code").
		Count(&distinct)

	var total64 int64
	testDB.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&total64)
	assert.Equal(t, total64, distinct, "every registration code must be distinct")
}
