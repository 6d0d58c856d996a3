package test_utils

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertTestUser creates a user row directly, so repository tests can satisfy
// the user_id foreign keys without going through the user service.
func InsertTestUser(t *testing.T, db *pgxpool.Pool, uid string, username string) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (uid, username, display_name, timezone, week_first_day)
			VALUES ($1, $2, $3, 'Europe/Warsaw', 1) RETURNING id`,
		uid, username, username,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
