package models

import (
	"time"
)

// Audit action constants
const (
	AuditActionSubmissionCreated        = "submission_created"
	AuditActionSubmissionStatusChanged  = "submission_status_changed"
	AuditActionSubmissionDeleted        = "submission_deleted"
	AuditActionListingPublished         = "listing_published"
	AuditActionListingPublicationFailed = "listing_publication_failed"
	AuditActionNotificationFailed       = "notification_failed"
)

// AuditLog records moderation and intake actions for traceability
type AuditLog struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	AccountID    *uint   `gorm:"index:idx_audit_log_account_id" json:"account_id,omitempty"`
	SubmissionID *uint   `gorm:"index:idx_audit_log_submission_id" json:"submission_id,omitempty"`
	Action       string  `gorm:"size:100;not null;index:idx_audit_log_action" json:"action"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`
	Success      *bool   `gorm:"default:true" json:"success"`
	IPAddress    *string `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent    *string `gorm:"size:512" json:"user_agent,omitempty"`
	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`
	RequestID    *string `gorm:"size:64" json:"request_id,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_audit_log_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	AccountID     *uint
	SubmissionID  *uint
	Action        *string
	Success       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
