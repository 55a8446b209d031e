package jobrun

import "time"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// JobRun is one execution of a sync job.
type JobRun struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	JobName     string    `gorm:"column:job_name;type:varchar(50);index" json:"job_name"`
	StartedAt   time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt  time.Time `gorm:"column:finished_at" json:"finished_at"`
	Status      string    `gorm:"column:status;type:varchar(20)" json:"status"`
	Updated     int       `gorm:"column:updated" json:"updated"`
	Inserted    int       `gorm:"column:inserted" json:"inserted"`
	Deleted     int       `gorm:"column:deleted" json:"deleted"`
	FailedPhase string    `gorm:"column:failed_phase;type:varchar(20)" json:"failed_phase,omitempty"`
	Error       string    `gorm:"column:error;type:text" json:"error,omitempty"`

	DataSourceStatus []DataSourceStatus `gorm:"foreignKey:JobRunID" json:"data_sources,omitempty"`
}

func (JobRun) TableName() string {
	return "job_run"
}

// DataSourceStatus records the data freshness of one source at the time of a run.
type DataSourceStatus struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	DataSourceName string    `gorm:"column:data_source_name;type:varchar(50)" json:"data_source_name"`
	DataUpdatedAt  time.Time `gorm:"column:data_updated_at" json:"data_updated_at"`
	JobRunID       uint      `gorm:"column:job_run_id;index" json:"job_run_id"`
}

func (DataSourceStatus) TableName() string {
	return "data_source_status"
}
