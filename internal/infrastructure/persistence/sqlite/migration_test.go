package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigration_NewDatabase(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	migrator := NewMigrator(db)

	v, err := migrator.Version(ctx)
	require.Error(t, err, "schema_migrations does not exist yet")
	assert.Equal(t, 0, v)

	require.NoError(t, migrator.Migrate(ctx))

	v, err = migrator.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv_store'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv_store", name)
}

func TestMigration_Idempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	migrator := NewMigrator(db)

	require.NoError(t, migrator.Migrate(ctx))
	require.NoError(t, migrator.Migrate(ctx))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSplitSQLStatements(t *testing.T) {
	got := splitSQLStatements("-- comment\nCREATE TABLE a (x INT);\n\n  -- another\nCREATE TABLE b (y INT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE TABLE b (y INT)"}, got)
}
