//go:build integration

package integration

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repository"
	"github.com/techclub/club-portal/internal/service"
)

func createTestEvent(t *testing.T, title string, capacity int) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:       title,
		Description: "integration test event",
		Type:        "Workshop",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(27 * time.Hour),
		MaxCapacity: capacity,
		Status:      models.EventOpen,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func newRegistrationService() service.RegistrationService {
	eventRepo := repository.NewEventRepository(testDB)
	regRepo := repository.NewRegistrationRepository(testDB)
	return service.NewRegistrationService(regRepo, eventRepo, nil)
}

func details(roll string) service.RegistrationDetails {
	return service.RegistrationDetails{Year: "3", Dept: "CSE", RollNo: roll, MobileNumber: "9876543210"}
}

func fetchEvent(t *testing.T, id uint) *models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, testDB.First(&event, id).Error)
	return &event
}

func confirmedCount(t *testing.T, eventID uint) int64 {
	t.Helper()
	var n int64
	testDB.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", eventID, models.RegistrationConfirmed).
		Count(&n)
	return n
}

// Test: event round-trip — a fresh event has count 0 and status Open.
func TestEventRoundTrip(t *testing.T) {
	cleanTables()
	created := createTestEvent(t, "Round Trip", 10)

	got := fetchEvent(t, created.ID)
	assert.Equal(t, "Round Trip", got.Title)
	assert.Equal(t, 10, got.MaxCapacity)
	assert.Equal(t, 0, got.CurrentCount)
	assert.Equal(t, models.EventOpen, got.Status)
}

// Test: counter tracks confirmed rows and status flips to Full at capacity.
func TestRegisterKeepsCounterConsistent(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Counter Consistency", 3)
	svc := newRegistrationService()

	for i := 0; i < 3; i++ {
		_, err := svc.Register(t.Context(), event.ID, fmt.Sprintf("user-%d", i),
			fmt.Sprintf("user%d@college.edu", i), details(fmt.Sprintf("21CS%03d", i)))
		require.NoError(t, err)

		got := fetchEvent(t, event.ID)
		assert.Equal(t, i+1, got.CurrentCount)
		assert.EqualValues(t, got.CurrentCount, confirmedCount(t, event.ID))
	}

	assert.Equal(t, models.EventFull, fetchEvent(t, event.ID).Status)
}

// Test: same user registers twice → second attempt rejected, count unchanged.
func TestDuplicateRegistrationRejected(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Duplicate Guard", 5)
	svc := newRegistrationService()

	_, err := svc.Register(t.Context(), event.ID, "user-dup", "dup@college.edu", details("21CS001"))
	require.NoError(t, err)

	_, err = svc.Register(t.Context(), event.ID, "user-dup", "dup@college.edu", details("21CS001"))
	assert.ErrorIs(t, err, service.ErrAlreadyRegistered)
	assert.Equal(t, 1, fetchEvent(t, event.ID).CurrentCount)
}

// Test: registration against a full event fails without touching the counter.
func TestFullEventRejected(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Full House", 1)
	svc := newRegistrationService()

	_, err := svc.Register(t.Context(), event.ID, "user-a", "a@college.edu", details("21CS001"))
	require.NoError(t, err)

	_, err = svc.Register(t.Context(), event.ID, "user-b", "b@college.edu", details("21CS002"))
	assert.ErrorIs(t, err, service.ErrEventFull)

	got := fetchEvent(t, event.ID)
	assert.Equal(t, 1, got.CurrentCount)
	assert.Equal(t, models.EventFull, got.Status)
}

// Test: Closed and Completed events take no registrations.
func TestClosedEventRejected(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Closed Event", 10)
	testDB.Model(event).Update("status", models.EventClosed)
	svc := newRegistrationService()

	_, err := svc.Register(t.Context(), event.ID, "user-a", "a@college.edu", details("21CS001"))
	assert.ErrorIs(t, err, service.ErrRegistrationClosed)
}

// Test: N concurrent callers fight for the last seat → exactly one wins.
func TestConcurrentLastSeat(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Last Seat", 1)
	svc := newRegistrationService()

	callers := 20
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Register(t.Context(), event.ID, fmt.Sprintf("user-%03d", idx),
				fmt.Sprintf("user%03d@college.edu", idx), details(fmt.Sprintf("21CS%03d", idx)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var won, full, unexpected int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, service.ErrEventFull):
			full++
		default:
			t.Logf("unexpected error: %v", err)
			unexpected++
		}
	}

	assert.Equal(t, 1, won, "exactly one caller should get the last seat")
	assert.Equal(t, callers-1, full)
	assert.Zero(t, unexpected)
	assert.EqualValues(t, 1, confirmedCount(t, event.ID))
	assert.Equal(t, 1, fetchEvent(t, event.ID).CurrentCount)
}

// Test: concurrent attempts at larger capacity never overshoot.
func TestConcurrentCapacityNotExceeded(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Capacity Stress", 10)
	svc := newRegistrationService()

	callers := 50
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := svc.Register(t.Context(), event.ID, fmt.Sprintf("user-%03d", idx),
				fmt.Sprintf("user%03d@college.edu", idx), details(fmt.Sprintf("21CS%03d", idx)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var won int
	for err := range errs {
		if err == nil {
			won++
		}
	}

	assert.Equal(t, 10, won)
	assert.EqualValues(t, 10, confirmedCount(t, event.ID))
	got := fetchEvent(t, event.ID)
	assert.Equal(t, 10, got.CurrentCount)
	assert.Equal(t, models.EventFull, got.Status)
}

// Test: cancelling a confirmed registration frees the seat and reopens the event.
func TestCancelReopensFullEvent(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Cancel Reopen", 1)
	svc := newRegistrationService()

	reg, err := svc.Register(t.Context(), event.ID, "user-u", "u@college.edu", details("21CS001"))
	require.NoError(t, err)
	assert.Equal(t, models.EventFull, fetchEvent(t, event.ID).Status)

	_, err = svc.Register(t.Context(), event.ID, "user-v", "v@college.edu", details("21CS002"))
	assert.ErrorIs(t, err, service.ErrEventFull)

	cancelled, err := svc.Cancel(t.Context(), reg.ID, "user-u", false)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationCancelled, cancelled.Status)

	got := fetchEvent(t, event.ID)
	assert.Equal(t, 0, got.CurrentCount)
	assert.Equal(t, models.EventOpen, got.Status)

	// The freed seat is now takeable, and the cancelled user may rejoin.
	_, err = svc.Register(t.Context(), event.ID, "user-u", "u@college.edu", details("21CS001"))
	require.NoError(t, err)
}

// Test: cancelling twice is a conflict; a foreign caller is rejected.
func TestCancelGuards(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Cancel Guards", 5)
	svc := newRegistrationService()

	reg, err := svc.Register(t.Context(), event.ID, "user-u", "u@college.edu", details("21CS001"))
	require.NoError(t, err)

	_, err = svc.Cancel(t.Context(), reg.ID, "user-x", false)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	_, err = svc.Cancel(t.Context(), reg.ID, "user-u", false)
	require.NoError(t, err)

	_, err = svc.Cancel(t.Context(), reg.ID, "user-u", false)
	assert.ErrorIs(t, err, service.ErrAlreadyCancelled)
}

// Test: deleting a user with registrations fails and leaves both rows intact.
func TestDeleteUserWithRegistrations(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Delete Guard", 5)

	user := &models.User{UserID: "user-u", Name: "U", Email: "u@college.edu", Role: models.RoleStudent}
	require.NoError(t, testDB.Create(user).Error)

	regSvc := newRegistrationService()
	_, err := regSvc.Register(t.Context(), event.ID, "user-u", "u@college.edu", details("21CS001"))
	require.NoError(t, err)

	userSvc := service.NewUserService(
		repository.NewUserRepository(testDB),
		repository.NewRegistrationRepository(testDB),
	)
	err = userSvc.DeleteUser(t.Context(), "user-u")
	assert.ErrorIs(t, err, service.ErrHasRegistrations)

	var users, regs int64
	testDB.Model(&models.User{}).Where("user_id = ?", "user-u").Count(&users)
	testDB.Model(&models.Registration{}).Where("user_id = ?", "user-u").Count(&regs)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, regs)
}

// Test: deleting an event cascades to its registrations.
func TestDeleteEventCascades(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Cascade Delete", 5)
	svc := newRegistrationService()

	_, err := svc.Register(t.Context(), event.ID, "user-u", "u@college.edu", details("21CS001"))
	require.NoError(t, err)

	eventSvc := service.NewEventService(repository.NewEventRepository(testDB), nil)
	require.NoError(t, eventSvc.DeleteEvent(t.Context(), event.ID))

	var regs int64
	testDB.Model(&models.Registration{}).Where("event_id = ?", event.ID).Count(&regs)
	assert.EqualValues(t, 0, regs)
}
