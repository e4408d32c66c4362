package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/portal-api/internal/domain"
)

func newTestEventService(store *fakeStore) *EventService {
	return NewEventService(fakeEvents{store}, fakeParticipants{store})
}

func TestGetEvent_PersistsDerivedStatuses(t *testing.T) {
	store := newFakeStore()
	past := time.Now().AddDate(0, 0, -3)
	event := store.addEvent(domain.Event{
		Title:              "Winter Gala",
		Date:               &past,
		EventStatus:        domain.EventUpcoming,
		RegistrationStatus: domain.RegistrationOpen,
	})
	svc := newTestEventService(store)

	got, err := svc.GetEvent(context.Background(), event.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.EventCompleted, got.EventStatus)
	assert.Equal(t, domain.RegistrationClosed, got.RegistrationStatus)

	stored := store.events[event.ID]
	assert.Equal(t, domain.EventCompleted, stored.EventStatus, "the correction is written back")
	assert.Equal(t, domain.RegistrationClosed, stored.RegistrationStatus)
}

func TestGetEvents_RefreshesEveryEvent(t *testing.T) {
	store := newFakeStore()
	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 0, 10)
	store.addEvent(domain.Event{Title: "Done", Date: &past, EventStatus: domain.EventUpcoming})
	store.addEvent(domain.Event{Title: "Soon", Date: &future})
	svc := newTestEventService(store)

	events, err := svc.GetEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	byTitle := make(map[string]domain.Event, len(events))
	for _, e := range events {
		byTitle[e.Title] = e
	}
	assert.Equal(t, domain.EventCompleted, byTitle["Done"].EventStatus)
	assert.Equal(t, domain.EventUpcoming, byTitle["Soon"].EventStatus)
}

func TestCreateEvent_DerivesInitialStatuses(t *testing.T) {
	store := newFakeStore()
	svc := newTestEventService(store)
	future := time.Now().AddDate(0, 0, 10)

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Title:            "Spring Hackathon",
		Date:             &future,
		ParticipantCount: 42,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.EventUpcoming, created.EventStatus)
	assert.Equal(t, domain.RegistrationOpen, created.RegistrationStatus)
	assert.Equal(t, 0, created.ParticipantCount, "a new event never inherits a count")
}

func TestUpdateEvent_PreservesParticipantCount(t *testing.T) {
	store := newFakeStore()
	future := time.Now().AddDate(0, 0, 10)
	event := store.addEvent(domain.Event{
		Title:            "Spring Hackathon",
		Date:             &future,
		ParticipantCount: 7,
	})
	svc := newTestEventService(store)

	updated, err := svc.UpdateEvent(context.Background(), domain.Event{
		ID:    event.ID,
		Title: "Spring Hackathon v2",
		Date:  &future,
	})

	require.NoError(t, err)
	assert.Equal(t, "Spring Hackathon v2", updated.Title)
	assert.Equal(t, 7, updated.ParticipantCount)
}

func TestUpdateEvent_PreservesStoredStatuses(t *testing.T) {
	store := newFakeStore()
	event := store.addEvent(domain.Event{
		Title:              "Members' Assembly",
		EventStatus:        domain.EventUpcoming,
		RegistrationStatus: domain.RegistrationClosed,
	})
	svc := newTestEventService(store)

	// A metadata edit carries neither status; without a date the derivation
	// falls back to what is stored, so the closed state must survive.
	updated, err := svc.UpdateEvent(context.Background(), domain.Event{
		ID:    event.ID,
		Title: "Members' Assembly 2026",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationClosed, updated.RegistrationStatus)
	assert.Equal(t, domain.EventUpcoming, updated.EventStatus)
	stored := store.events[event.ID]
	assert.Equal(t, domain.RegistrationClosed, stored.RegistrationStatus)
}

func TestUpdateEvent_CancelledIsSticky(t *testing.T) {
	store := newFakeStore()
	future := time.Now().AddDate(0, 0, 10)
	event := store.addEvent(domain.Event{Title: "Doomed", Date: &future})
	svc := newTestEventService(store)

	updated, err := svc.UpdateEvent(context.Background(), domain.Event{
		ID:          event.ID,
		Title:       "Doomed",
		Date:        &future,
		EventStatus: domain.EventCancelled,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.EventCancelled, updated.EventStatus, "derivation never overrides a cancellation")
}

func TestGetParticipants(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser("alice@example.com", "Alice", false)
	event := store.addEvent(openEvent(10))
	regSvc := newTestService(store)
	_, err := regSvc.Register(context.Background(), event.ID, alice.Email, "", nil)
	require.NoError(t, err)
	svc := newTestEventService(store)

	participants, err := svc.GetParticipants(context.Background(), event.ID)

	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, alice.ID, participants[0].UserID)

	_, err = svc.GetParticipants(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
