package models

import (
	"testing"

	"inventory-sync/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourse_Migrate(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Course{}))

	missing, err := database.CheckColumns(db, Course{}.TableName(), []string{
		"canvas_id", "sis_id", "name", "account_id", "term_id",
		"created_at", "published_at", "workflow_state", "warehouse_id",
	})
	require.NoError(t, err)
	assert.Empty(t, missing)
}
