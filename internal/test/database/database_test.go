package database_test

import (
	"context"
	"testing"

	"creative-evaluator-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT id FROM otp_codes WHERE email = ? AND otp_code = ?"
	assert.Equal(t, q, database.Rebind(database.SQLite, q))
	assert.Equal(t, "SELECT id FROM otp_codes WHERE email = $1 AND otp_code = $2", database.Rebind(database.Postgres, q))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", database.Placeholders(0))
	assert.Equal(t, "?", database.Placeholders(1))
	assert.Equal(t, "?, ?, ?", database.Placeholders(3))
}

func TestMigrator_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.SQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	m := database.NewMigrator(db, database.SQLite)
	require.NoError(t, m.Run(ctx))
	require.NoError(t, m.Run(ctx))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"otp_codes", "users", "creative_approvals"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}
