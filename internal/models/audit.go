package models

import "time"

// AuditLog represents the audit_logs table
// Records application transitions and facility mutations with the acting facility
type AuditLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Actor     string    `gorm:"size:255;index" json:"actor"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
