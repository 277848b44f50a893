// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/utils"
	"gorm.io/gorm"
)

// ListingRepositoryImpl implements the ListingRepository interface
type ListingRepositoryImpl struct {
	*BaseRepository[models.Listing, models.ListingFilter]
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Listing, models.ListingFilter](db),
	}
}

// ByID retrieves a listing by ID with its owning account preloaded
func (r *ListingRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Listing, error) {
	db := r.getDB(ctx)

	var listing models.Listing
	err := db.Preload("Account").Last(&listing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &listing, nil
}

// ByUUID retrieves a listing by UUID
func (r *ListingRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Listing, error) {
	parsed, err := utils.ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	filter := models.ListingFilter{UUID: &parsed}
	listings, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		return nil, nil
	}

	return listings[0], nil
}

// BySubmissionID retrieves the listing published from a submission, if any
func (r *ListingRepositoryImpl) BySubmissionID(ctx context.Context, submissionID uint) (*models.Listing, error) {
	filter := models.ListingFilter{SubmissionID: &submissionID}
	listings, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		return nil, nil
	}

	return listings[0], nil
}

// IncrementViews atomically bumps the views counter of a listing
func (r *ListingRepositoryImpl) IncrementViews(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Listing{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment listing views: %w", err)
	}

	return nil
}

// ByFilter retrieves listings based on filter criteria
func (r *ListingRepositoryImpl) ByFilter(ctx context.Context, filter models.ListingFilter, orderBy string, limit, offset int) ([]*models.Listing, error) {
	db := r.getDB(ctx)

	var listings []*models.Listing
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

	err := query.Find(&listings).Error
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// Count returns the number of listings matching the filter
func (r *ListingRepositoryImpl) Count(ctx context.Context, filter models.ListingFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Listing{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any listing matching the filter exists
func (r *ListingRepositoryImpl) Exists(ctx context.Context, filter models.ListingFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ListingRepositoryImpl) applyFilter(db *gorm.DB, filter models.ListingFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.District != nil {
		db = db.Where("district ILIKE ?", *filter.District)
	}
	if filter.MinPrice != nil {
		db = db.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		db = db.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Featured != nil {
		db = db.Where("featured = ?", *filter.Featured)
	}
	if filter.AccountID != nil {
		db = db.Where("account_id = ?", *filter.AccountID)
	}
	if filter.SubmissionID != nil {
		db = db.Where("submission_id = ?", *filter.SubmissionID)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		db = db.Where(
			"title ILIKE ? OR description ILIKE ? OR address ILIKE ? OR district ILIKE ? OR sector ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	return db
}
