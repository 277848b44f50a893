// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/utils"
	"gorm.io/gorm"
)

// SubmissionRepositoryImpl implements the SubmissionRepository interface
type SubmissionRepositoryImpl struct {
	*BaseRepository[models.Submission, models.SubmissionFilter]
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Submission, models.SubmissionFilter](db),
	}
}

// ByID retrieves a submission by ID with its account preloaded
func (r *SubmissionRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Submission, error) {
	db := r.getDB(ctx)

	var submission models.Submission
	err := db.Preload("Account").Last(&submission, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &submission, nil
}

// ByUUID retrieves a submission by UUID
func (r *SubmissionRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Submission, error) {
	parsed, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.SubmissionFilter{UUID: &parsed}
	submissions, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return nil, nil
	}

	return submissions[0], nil
}

// UpdateStatus updates only the status of a submission
func (r *SubmissionRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	return nil
}

// MarkReviewed conditionally moves a submission into a terminal status. The
// WHERE clause excludes terminal rows so two concurrent reviews cannot both
// take effect; callers must treat zero affected rows as a lost race.
func (r *SubmissionRepositoryImpl) MarkReviewed(ctx context.Context, id uint, status models.SubmissionStatus) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Model(&models.Submission{}).
		Where("id = ? AND status NOT IN ?", id, []models.SubmissionStatus{
			models.SubmissionStatusApproved,
			models.SubmissionStatusRejected,
		}).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		})
	if result.Error != nil {
		err = fmt.Errorf("failed to mark submission reviewed: %w", result.Error)
		return 0, err
	}

	return result.RowsAffected, nil
}

// Delete removes a submission permanently
func (r *SubmissionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Delete(&models.Submission{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	return nil
}

// ByFilter retrieves submissions based on filter criteria
func (r *SubmissionRepositoryImpl) ByFilter(ctx context.Context, filter models.SubmissionFilter, orderBy string, limit, offset int) ([]*models.Submission, error) {
	db := r.getDB(ctx)

	var submissions []*models.Submission
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	query = query.Preload("Account")

	err := query.Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

// Count returns the number of submissions matching the filter
func (r *SubmissionRepositoryImpl) Count(ctx context.Context, filter models.SubmissionFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Submission{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any submission matching the filter exists
func (r *SubmissionRepositoryImpl) Exists(ctx context.Context, filter models.SubmissionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *SubmissionRepositoryImpl) applyFilter(db *gorm.DB, filter models.SubmissionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.AccountID != nil {
		db = db.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		db = db.Where(
			"title ILIKE ? OR owner_name ILIKE ? OR owner_email ILIKE ? OR district ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
