package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PropertyType is the canonical property type enumeration
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeLand       PropertyType = "LAND"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
	PropertyTypeOffice     PropertyType = "OFFICE"
	PropertyTypeWarehouse  PropertyType = "WAREHOUSE"
)

// String returns the string representation of the property type
func (t PropertyType) String() string {
	return string(t)
}

// Valid checks if the property type is valid
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLand,
		PropertyTypeCommercial, PropertyTypeOffice, PropertyTypeWarehouse:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PropertyType
func (t *PropertyType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = PropertyType(v)
	case []byte:
		*t = PropertyType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PropertyType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for PropertyType
func (t PropertyType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid PropertyType: %s", t)
	}
	return string(t), nil
}

// ListingStatus is the canonical market status enumeration
type ListingStatus string

const (
	ListingStatusForSale ListingStatus = "FOR_SALE"
	ListingStatusForRent ListingStatus = "FOR_RENT"
	ListingStatusSold    ListingStatus = "SOLD"
	ListingStatusRented  ListingStatus = "RENTED"
)

// String returns the string representation of the listing status
func (s ListingStatus) String() string {
	return string(s)
}

// Valid checks if the listing status is valid
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusForSale, ListingStatusForRent,
		ListingStatusSold, ListingStatusRented:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ListingStatus
func (s *ListingStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ListingStatus(v)
	case []byte:
		*s = ListingStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ListingStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ListingStatus
func (s ListingStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ListingStatus: %s", s)
	}
	return string(s), nil
}

// Listing is the canonical, publicly visible property record. It is created
// exactly once per submission by the publication transaction; the unique index
// on SubmissionID enforces that at the store level.
type Listing struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_listings_uuid" json:"uuid"`

	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Type        PropertyType  `gorm:"type:property_type_enum;not null;index:idx_listings_type" json:"type"`
	Status      ListingStatus `gorm:"type:listing_status_enum;not null;index:idx_listings_status" json:"status"`
	Price       float64       `gorm:"not null;check:price >= 0" json:"price"`

	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *int     `json:"bathrooms,omitempty"`
	Area          *float64 `json:"area,omitempty"`
	ParkingSpaces *int     `json:"parking_spaces,omitempty"`

	District string `gorm:"size:100;not null;index:idx_listings_district" json:"district"`
	Sector   string `gorm:"size:100;not null" json:"sector"`
	Address  string `gorm:"size:255;not null;default:''" json:"address"`

	Amenities StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"amenities"`
	Images    StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`

	ContactName  string `gorm:"size:255;not null" json:"contact_name"`
	ContactEmail string `gorm:"size:255;not null" json:"contact_email"`
	ContactPhone string `gorm:"size:50;not null" json:"contact_phone"`

	Featured *bool `gorm:"default:false;index:idx_listings_featured" json:"featured"`
	Views    int64 `gorm:"not null;default:0" json:"views"`

	AccountID uint    `gorm:"not null;index:idx_listings_account_id" json:"account_id"`
	Account   Account `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`

	// Provenance: the submission this listing was published from
	SubmissionID *uint `gorm:"uniqueIndex:uk_listings_submission_id" json:"submission_id,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_listings_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingFilter represents filter criteria for listing queries
type ListingFilter struct {
	ID           *uint
	UUID         *uuid.UUID
	Type         *PropertyType
	Status       *ListingStatus
	District     *string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
	AccountID    *uint
	SubmissionID *uint
	Search       *string // case-insensitive substring over title, description, address, district, sector
}
