package models

import "time"

// Course is a row of the warehouse course table.
type Course struct {
	CanvasID      int64      `gorm:"primaryKey;autoIncrement:false;column:canvas_id;type:bigint" json:"canvas_id"`
	SisID         *int64     `gorm:"column:sis_id;type:bigint" json:"sis_id"`
	Name          string     `gorm:"column:name;type:varchar(100)" json:"name"`
	AccountID     int64      `gorm:"column:account_id;type:bigint" json:"account_id"`
	TermID        int64      `gorm:"column:term_id;type:bigint;index" json:"term_id"`
	CreatedAt     *time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	PublishedAt   *time.Time `gorm:"column:published_at" json:"published_at"` // not written by the sync
	WorkflowState string     `gorm:"column:workflow_state;type:varchar(25)" json:"workflow_state"`
	WarehouseID   int64      `gorm:"column:warehouse_id;type:bigint" json:"warehouse_id"`
}

func (Course) TableName() string {
	return "course"
}
