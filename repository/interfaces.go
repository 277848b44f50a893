// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/godigitorw/macss/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AccountRepository defines operations for accounts
type AccountRepository interface {
	Repository[models.Account, models.AccountFilter]
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ByUUID(ctx context.Context, uuid string) (*models.Account, error)
}

// SubmissionRepository defines operations for property submissions
type SubmissionRepository interface {
	Repository[models.Submission, models.SubmissionFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus) error
	// MarkReviewed conditionally moves a submission into a terminal status and
	// reports how many rows changed. Zero means another reviewer got there
	// first (or the id is unknown).
	MarkReviewed(ctx context.Context, id uint, status models.SubmissionStatus) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// ListingRepository defines operations for published listings
type ListingRepository interface {
	Repository[models.Listing, models.ListingFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Listing, error)
	BySubmissionID(ctx context.Context, submissionID uint) (*models.Listing, error)
	IncrementViews(ctx context.Context, id uint) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}
