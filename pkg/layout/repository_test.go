package layout

import (
	"context"
	"os"
	"testing"

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
	userId := test_utils.InsertTestUser(t, db, "u-layout", "layout.tester")
	return ctx, repository, userId
}

func TestRepositoryImpl_StoreAndGetArrangement(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	payload := []byte(`[{"slot":"revenue","item":"SalesPipeline"}]`)
	err := repository.StoreArrangement(ctx, userId, payload)
	require.NoError(t, err)

	stored, err := repository.GetArrangement(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestRepositoryImpl_GetArrangement_NotFound(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	_, err := repository.GetArrangement(ctx, userId)
	assert.ErrorIs(t, err, ErrArrangementNotFound)
}

func TestRepositoryImpl_StoreArrangement_OverwritesExisting(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	err := repository.StoreArrangement(ctx, userId, []byte(`[{"slot":"revenue","item":"TotalRevenue"}]`))
	require.NoError(t, err)

	latest := []byte(`[{"slot":"revenue","item":"SalesPipeline"}]`)
	err = repository.StoreArrangement(ctx, userId, latest)
	require.NoError(t, err)

	stored, err := repository.GetArrangement(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, latest, stored)
}

func TestRepositoryImpl_ArrangementsIsolatedPerUser(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)
	otherUserId := test_utils.InsertTestUser(t, repository.db, "u-other", "other.tester")

	err := repository.StoreArrangement(ctx, otherUserId, []byte(`[]`))
	require.NoError(t, err)

	_, err = repository.GetArrangement(ctx, userId)
	assert.ErrorIs(t, err, ErrArrangementNotFound)
}

func TestRepositoryImpl_DeleteArrangement(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	err := repository.StoreArrangement(ctx, userId, []byte(`[]`))
	require.NoError(t, err)

	err = repository.DeleteArrangement(ctx, userId)
	require.NoError(t, err)

	_, err = repository.GetArrangement(ctx, userId)
	assert.ErrorIs(t, err, ErrArrangementNotFound)
}

func TestRepositoryImpl_DeleteArrangement_NotFound(t *testing.T) {
	ctx, repository, userId := setupTestRepository(t)

	err := repository.DeleteArrangement(ctx, userId)
	assert.ErrorIs(t, err, ErrArrangementNotFound)
}
