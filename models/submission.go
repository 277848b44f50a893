package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the review status of a property submission
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "PENDING"
	SubmissionStatusContacted SubmissionStatus = "CONTACTED"
	SubmissionStatusApproved  SubmissionStatus = "APPROVED"
	SubmissionStatusRejected  SubmissionStatus = "REJECTED"
)

// String returns the string representation of the status
func (s SubmissionStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusContacted,
		SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is defined out of the status.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// Scan implements the sql.Scanner interface for SubmissionStatus
func (s *SubmissionStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = SubmissionStatus(v)
	case []byte:
		*s = SubmissionStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into SubmissionStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for SubmissionStatus
func (s SubmissionStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid SubmissionStatus: %s", s)
	}
	return string(s), nil
}

// Submission is a candidate listing awaiting review. All property fields are
// kept exactly as submitted (free text, numbers as strings); typing happens at
// publication time in the normalizer.
type Submission struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_submissions_uuid" json:"uuid"`

	// Raw property fields
	PropertyType string `gorm:"size:50;not null" json:"property_type"`
	ListingType  string `gorm:"size:50;not null" json:"listing_type"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text;not null" json:"description"`
	District     string `gorm:"size:100;not null" json:"district"`
	Sector       string `gorm:"size:100;not null" json:"sector"`
	Address      string `gorm:"size:255;not null;default:''" json:"address"`

	// Numeric-as-text fields, parsed only at publication
	Bedrooms      *string `gorm:"size:20" json:"bedrooms,omitempty"`
	Bathrooms     *string `gorm:"size:20" json:"bathrooms,omitempty"`
	Area          *string `gorm:"size:30" json:"area,omitempty"`
	ParkingSpaces *string `gorm:"size:20" json:"parking_spaces,omitempty"`
	Price         string  `gorm:"size:50;not null" json:"price"`
	Negotiable    *bool   `gorm:"default:false" json:"negotiable"`

	Amenities StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"amenities"`
	Images    StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`

	// Contact fields
	OwnerName  string `gorm:"size:255;not null" json:"owner_name"`
	OwnerEmail string `gorm:"size:255;not null" json:"owner_email"`
	OwnerPhone string `gorm:"size:50;not null" json:"owner_phone"`

	AdditionalInfo *string `gorm:"type:text" json:"additional_info,omitempty"`

	Status SubmissionStatus `gorm:"type:submission_status_enum;not null;default:'PENDING';index:idx_submissions_status" json:"status"`

	// Present when the submitter was authenticated; nil for anonymous submissions
	AccountID *uint    `gorm:"index:idx_submissions_account_id" json:"account_id,omitempty"`
	Account   *Account `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_submissions_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionFilter represents filter criteria for submission queries
type SubmissionFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Status        *SubmissionStatus
	AccountID     *uint
	Search        *string // case-insensitive substring over title, owner name, owner email, district
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
