package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=portal_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=postgres dbname=portal_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}

		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("skipping integration test, no database available")
	}
}

func TestEventDAO_AddToParticipantCount(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewEventDAO(testDB)

	event, err := d.Insert(ctx, Event{Title: "Capacity Test", MaxParticipants: 2})
	require.NoError(t, err)

	require.NoError(t, d.AddToParticipantCount(ctx, event.ID, 1))
	require.NoError(t, d.AddToParticipantCount(ctx, event.ID, 1))

	// The guard rejects the increment that would pass the cap.
	err = d.AddToParticipantCount(ctx, event.ID, 1)
	assert.ErrorIs(t, err, ErrEventFull)

	got, err := d.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ParticipantCount)

	// A missing event is reported as such, not as full.
	err = d.AddToParticipantCount(ctx, 999999, 1)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventDAO_AddToParticipantCount_Unlimited(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewEventDAO(testDB)

	event, err := d.Insert(ctx, Event{Title: "Unlimited Test", MaxParticipants: 0})
	require.NoError(t, err)

	require.NoError(t, d.AddToParticipantCount(ctx, event.ID, 500))

	got, err := d.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.ParticipantCount)
}

func TestEventDAO_SubtractFromParticipantCount_ClampsAtZero(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewEventDAO(testDB)

	event, err := d.Insert(ctx, Event{Title: "Clamp Test", ParticipantCount: 2})
	require.NoError(t, err)

	require.NoError(t, d.SubtractFromParticipantCount(ctx, event.ID, 5))

	got, err := d.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ParticipantCount)
}

func TestParticipantDAO_UniqueEventUser(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	events := NewEventDAO(testDB)
	d := NewParticipantDAO(testDB)

	event, err := events.Insert(ctx, Event{Title: "Unique Test"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Participant{EventID: event.ID, UserID: 1, Status: "registered"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Participant{EventID: event.ID, UserID: 1, Status: "registered"})
	assert.ErrorIs(t, err, ErrParticipantExists)
}

func TestParticipantDAO_RosterRoundTrip(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	events := NewEventDAO(testDB)
	d := NewParticipantDAO(testDB)

	event, err := events.Insert(ctx, Event{Title: "Roster Test", TeamEvent: true})
	require.NoError(t, err)

	roster := TeamRoster{
		{Email: "alice@example.com", Name: "Alice"},
		{Email: "bob@example.com", Name: "Bob"},
	}

	rows := []Participant{
		{EventID: event.ID, UserID: 11, Status: "registered", TeamName: "Roundtrippers", TeamMembers: roster, IsTeamLeader: true},
		{EventID: event.ID, UserID: 12, Status: "registered", TeamName: "Roundtrippers", TeamMembers: roster},
	}
	_, err = d.InsertMany(ctx, rows)
	require.NoError(t, err)

	got, err := d.FindByEventAndUser(ctx, event.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, roster, got.TeamMembers)
}

func TestParticipantDAO_UpdateTeamRosterBroadcast(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	events := NewEventDAO(testDB)
	d := NewParticipantDAO(testDB)

	event, err := events.Insert(ctx, Event{Title: "Broadcast Test", TeamEvent: true})
	require.NoError(t, err)

	oldRoster := TeamRoster{
		{Email: "alice@example.com", Name: "Alice"},
		{Email: "bob@example.com", Name: "Bob"},
	}
	rows := []Participant{
		{EventID: event.ID, UserID: 21, Status: "registered", TeamName: "Broadcasters", TeamMembers: oldRoster, IsTeamLeader: true},
		{EventID: event.ID, UserID: 22, Status: "registered", TeamName: "Broadcasters", TeamMembers: oldRoster},
	}
	_, err = d.InsertMany(ctx, rows)
	require.NoError(t, err)

	newRoster := append(oldRoster, TeamRosterEntry{Email: "carol@example.com", Name: "Carol"})
	affected, err := d.UpdateTeamRoster(ctx, event.ID, "Broadcasters", newRoster)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	for _, userID := range []uint{21, 22} {
		got, findErr := d.FindByEventAndUser(ctx, event.ID, userID)
		require.NoError(t, findErr)
		assert.Equal(t, newRoster, got.TeamMembers)
	}
}

func TestParticipantDAO_DeleteTeam(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	events := NewEventDAO(testDB)
	d := NewParticipantDAO(testDB)

	event, err := events.Insert(ctx, Event{Title: "Delete Team Test", TeamEvent: true})
	require.NoError(t, err)

	roster := TeamRoster{{Email: "alice@example.com", Name: "Alice"}}
	rows := []Participant{
		{EventID: event.ID, UserID: 31, Status: "registered", TeamName: "Leavers", TeamMembers: roster, IsTeamLeader: true},
		{EventID: event.ID, UserID: 32, Status: "registered", TeamName: "Leavers", TeamMembers: roster},
		{EventID: event.ID, UserID: 33, Status: "registered"},
	}
	_, err = d.InsertMany(ctx, rows)
	require.NoError(t, err)

	deleted, err := d.DeleteTeam(ctx, event.ID, "Leavers")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	// The individual registration on the same event survives.
	_, err = d.FindByEventAndUser(ctx, event.ID, 33)
	assert.NoError(t, err)
}

func TestUserDAO_UniqueEmail(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewUserDAO(testDB)

	_, err := d.Insert(ctx, User{Email: "dup@example.com", Password: "x", Name: "First"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Email: "dup@example.com", Password: "x", Name: "Second"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
