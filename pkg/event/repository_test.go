package event

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prospectcrm/prospect/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, int) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	userId := test_utils.InsertTestUser(t, db, "u-events", "events.tester")
	return ctx, repository, userId
}

func createTestEvent(title string, start, end time.Time) Event {
	return Event{
		Title:       title,
		StartTime:   start,
		EndTime:     end,
		CompanyId:   7,
		CompanyName: "Acme Minerals",
		CreatedAt:   start.Add(-24 * time.Hour),
	}
}

// assertEventEqual compares times by their millisecond value, which is the
// precision the storage keeps.
func assertEventEqual(t *testing.T, expected Event, actual Event) {
	assert.Equal(t, expected.Title, actual.Title)
	assert.Equal(t, expected.StartTime.UnixMilli(), actual.StartTime.UnixMilli())
	assert.Equal(t, expected.EndTime.UnixMilli(), actual.EndTime.UnixMilli())
	assert.Equal(t, expected.AllDay, actual.AllDay)
	assert.Equal(t, expected.CompanyId, actual.CompanyId)
	assert.Equal(t, expected.CompanyName, actual.CompanyName)
	assert.Equal(t, expected.CreatedAt.UnixMilli(), actual.CreatedAt.UnixMilli())
}

func TestRepositoryImpl_StoreEvent(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	baseTime := time.Now().Truncate(time.Millisecond)
	testEvent := createTestEvent("Site visit", baseTime, baseTime.Add(time.Hour))

	uid, err := repository.StoreEvent(ctx, userId, testEvent)
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	stored, err := repository.GetEvent(ctx, userId, uid)
	require.NoError(t, err)
	assert.Equal(t, uid, stored.UID)
	assertEventEqual(t, testEvent, stored)
}

func TestRepositoryImpl_GetEvent_NotFound(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	_, err := repository.GetEvent(ctx, userId, "no-such-uid")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_GetEvents(t *testing.T) {
	testCases := []struct {
		name          string
		eventStart    time.Duration // relative to baseTime
		eventEnd      time.Duration // relative to baseTime
		shouldBeFound bool
	}{
		{
			name:          "event fully inside query period",
			eventStart:    30 * time.Minute,
			eventEnd:      45 * time.Minute,
			shouldBeFound: true,
		},
		{
			name:          "event fully contains query period",
			eventStart:    -30 * time.Minute,
			eventEnd:      2 * time.Hour,
			shouldBeFound: true,
		},
		{
			name:          "event starts before and ends during query period",
			eventStart:    -30 * time.Minute,
			eventEnd:      30 * time.Minute,
			shouldBeFound: true,
		},
		{
			name:          "event starts during and ends after query period",
			eventStart:    30 * time.Minute,
			eventEnd:      90 * time.Minute,
			shouldBeFound: true,
		},
		{
			name:          "event ends exactly at query start",
			eventStart:    -30 * time.Minute,
			eventEnd:      0,
			shouldBeFound: true,
		},
		{
			name:          "event starts exactly at query end",
			eventStart:    time.Hour,
			eventEnd:      90 * time.Minute,
			shouldBeFound: true,
		},
		{
			name:          "event entirely before query period",
			eventStart:    -2 * time.Hour,
			eventEnd:      -time.Hour,
			shouldBeFound: false,
		},
		{
			name:          "event entirely after query period",
			eventStart:    2 * time.Hour,
			eventEnd:      3 * time.Hour,
			shouldBeFound: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, repository, userId := setupTestRepository(t)

			baseTime := time.Now().Truncate(time.Millisecond)
			event := createTestEvent(tc.name, baseTime.Add(tc.eventStart), baseTime.Add(tc.eventEnd))

			_, err := repository.StoreEvent(ctx, userId, event)
			require.NoError(t, err)

			fetched, err := repository.GetEvents(ctx, userId, baseTime, baseTime.Add(time.Hour))
			require.NoError(t, err)

			if tc.shouldBeFound {
				require.Len(t, fetched, 1)
				assertEventEqual(t, event, fetched[0])
			} else {
				assert.Empty(t, fetched)
			}
		})
	}
}

func TestRepositoryImpl_GetEvents_OrderedByStartTime(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	baseTime := time.Now().Truncate(time.Millisecond)
	later := createTestEvent("Later", baseTime.Add(time.Hour), baseTime.Add(90*time.Minute))
	earlier := createTestEvent("Earlier", baseTime, baseTime.Add(30*time.Minute))

	_, err := repository.StoreEvent(ctx, userId, later)
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, userId, earlier)
	require.NoError(t, err)

	fetched, err := repository.GetEvents(ctx, userId, baseTime, baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, "Earlier", fetched[0].Title)
	assert.Equal(t, "Later", fetched[1].Title)
}

func TestRepositoryImpl_GetEvents_IsolatedPerUser(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)
	otherUserId := test_utils.InsertTestUser(t, repository.db, "u-other", "other.tester")

	baseTime := time.Now().Truncate(time.Millisecond)
	_, err := repository.StoreEvent(ctx, otherUserId, createTestEvent("Not yours", baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	fetched, err := repository.GetEvents(ctx, userId, baseTime, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, fetched)
}

func TestRepositoryImpl_UpdateEvent(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	baseTime := time.Now().Truncate(time.Millisecond)
	initial := createTestEvent("Initial title", baseTime, baseTime.Add(time.Hour))

	uid, err := repository.StoreEvent(ctx, userId, initial)
	require.NoError(t, err)

	updated := initial
	updated.UID = uid
	updated.Title = "Updated title"
	updated.StartTime = baseTime.Add(15 * time.Minute)
	updated.EndTime = baseTime.Add(45 * time.Minute)
	updated.AllDay = true

	err = repository.UpdateEvent(ctx, userId, updated)
	require.NoError(t, err)

	stored, err := repository.GetEvent(ctx, userId, uid)
	require.NoError(t, err)
	assertEventEqual(t, updated, stored)

	// Company denormalization and creation time are not touched by updates.
	assert.Equal(t, initial.CompanyId, stored.CompanyId)
	assert.Equal(t, initial.CompanyName, stored.CompanyName)
	assert.Equal(t, initial.CreatedAt.UnixMilli(), stored.CreatedAt.UnixMilli())
}

func TestRepositoryImpl_UpdateEvent_NotFound(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	missing := createTestEvent("Ghost", time.Now(), time.Now().Add(time.Hour))
	missing.UID = "no-such-uid"

	err := repository.UpdateEvent(ctx, userId, missing)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_DeleteEvent(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	baseTime := time.Now().Truncate(time.Millisecond)
	uid, err := repository.StoreEvent(ctx, userId, createTestEvent("To delete", baseTime, baseTime.Add(time.Hour)))
	require.NoError(t, err)

	err = repository.DeleteEvent(ctx, userId, uid)
	require.NoError(t, err)

	_, err = repository.GetEvent(ctx, userId, uid)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_DeleteEvent_NotFound(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	err := repository.DeleteEvent(ctx, userId, "no-such-uid")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
