package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := Connect("file:database_migrate?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"promoteurs", "projects", "project_updates", "project_documents", "project_media", "project_changes", "badges", "team_roles", "leads"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// idempotent on an existing schema
	require.NoError(t, Migrate(db))
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u@h/db"))
	assert.True(t, IsPostgres("postgresql://u@h/db"))
	assert.False(t, IsPostgres("immotrust.db"))
}
