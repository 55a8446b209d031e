package checks

import (
	"testing"

	"inventory-sync/core/database"
	"inventory-sync/core/jobrun"
	"inventory-sync/feature/course/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_Matched(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &jobrun.JobRun{}, &jobrun.DataSourceStatus{}))

	report, err := CheckSchema(db, models.Course{}, &jobrun.JobRun{}, jobrun.DataSourceStatus{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.Tables, 3)
	assert.Equal(t, "ok", report.Tables["course"].Status)
	assert.Equal(t, "ok", report.Tables["job_run"].Status)
}

func TestCheckSchema_Mismatch(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.Exec("CREATE TABLE course (canvas_id bigint PRIMARY KEY, name text, account_id bigint)").Error)

	report, err := CheckSchema(db, models.Course{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["course"]
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "term_id")
	assert.Contains(t, tbl.MissingColumns, "warehouse_id")
	assert.NotContains(t, tbl.MissingColumns, "account_id")
	require.Len(t, tbl.TypeMismatches, 1)
	assert.Contains(t, tbl.TypeMismatches[0], "name: expected varchar(100), got text")
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := setupSQLite(t)

	report, err := CheckSchema(db, jobrun.JobRun{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.Errors, "Table job_run does not exist")
	assert.NotEmpty(t, report.Tables["job_run"].MissingColumns)
}

func TestCheckSchema_Errors(t *testing.T) {
	_, err := CheckSchema(nil, models.Course{})
	assert.Error(t, err)

	db := setupSQLite(t)
	_, err = CheckSchema(db, struct{ ID int }{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestParseGormTags(t *testing.T) {
	tag := "primaryKey;autoIncrement:false;column:canvas_id;type:bigint"
	assert.Equal(t, "canvas_id", parseGormColumn(tag))
	assert.Equal(t, "bigint", parseGormType(tag))
	assert.Equal(t, "", parseGormColumn("foreignKey:JobRunID"))
	assert.Equal(t, "", parseGormType("column:started_at"))
}
