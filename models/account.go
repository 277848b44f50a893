package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountRole distinguishes the administrative fallback owner from ordinary owners
type AccountRole string

const (
	AccountRoleOwner AccountRole = "OWNER"
	AccountRoleAdmin AccountRole = "ADMIN"
)

// String returns the string representation of the role
func (r AccountRole) String() string {
	return string(r)
}

// Valid checks if the role is valid
func (r AccountRole) Valid() bool {
	switch r {
	case AccountRoleOwner, AccountRoleAdmin:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for AccountRole
func (r *AccountRole) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*r = AccountRole(v)
	case []byte:
		*r = AccountRole(string(v))
	default:
		return fmt.Errorf("cannot scan %T into AccountRole", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for AccountRole
func (r AccountRole) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid AccountRole: %s", r)
	}
	return string(r), nil
}

// Account is an entity capable of owning listings. Email is unique system-wide;
// the ownership resolver relies on the database constraint when two publications
// race on fallback-account creation.
type Account struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uk_accounts_uuid" json:"uuid"`
	Email        string      `gorm:"size:255;not null;uniqueIndex:uk_accounts_email" json:"email"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	Role         AccountRole `gorm:"type:account_role_enum;not null;default:'OWNER';index:idx_accounts_role" json:"role"`
	IsActive     *bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_accounts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Listings    []Listing    `gorm:"foreignKey:AccountID" json:"-"`
	Submissions []Submission `gorm:"foreignKey:AccountID" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// AccountFilter represents filter criteria for account queries
type AccountFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	Role          *AccountRole
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}
