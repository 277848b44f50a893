// Package testing provides test utilities and database setup for testing the listing platform
package testing

import (
	"fmt"
	"math/rand"

	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestAccount creates an account with the given role
func (tf *TestFixtures) CreateTestAccount(role models.AccountRole) (*models.Account, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		UUID:         uuid.New(),
		Email:        fmt.Sprintf("owner.%d@example.com", rand.Intn(100000000)),
		Name:         "Test Owner",
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create test account: %w", err)
	}

	return account, nil
}

// CreateTestSubmission creates a pending submission with sensible raw values.
// Pass overrides to adjust individual fields after creation.
func (tf *TestFixtures) CreateTestSubmission(overrides ...func(*models.Submission)) (*models.Submission, error) {
	submission := &models.Submission{
		UUID:         uuid.New(),
		PropertyType: "house",
		ListingType:  "for_sale",
		Title:        "3 bedroom house in Kacyiru",
		Description:  "Spacious family house close to the main road",
		District:     "Gasabo",
		Sector:       "Kacyiru",
		Address:      "KG 7 Ave",
		Bedrooms:     utils.ToPtr("3"),
		Bathrooms:    utils.ToPtr("2"),
		Area:         utils.ToPtr("240"),
		Price:        "45,000,000",
		Negotiable:   utils.ToPtr(true),
		Amenities:    models.StringArray{"parking", "garden"},
		Images:       models.StringArray{},
		OwnerName:    "Jean Bosco",
		OwnerEmail:   fmt.Sprintf("jean.bosco.%d@example.com", rand.Intn(100000000)),
		OwnerPhone:   "+250788123456",
		Status:       models.SubmissionStatusPending,
	}

	for _, override := range overrides {
		override(submission)
	}

	if err := tf.DB.DB.Create(submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create test submission: %w", err)
	}

	return submission, nil
}

// CreateTestListing creates a published listing owned by the given account
func (tf *TestFixtures) CreateTestListing(accountID uint, submissionID *uint) (*models.Listing, error) {
	listing := &models.Listing{
		UUID:         uuid.New(),
		Title:        "Modern apartment in Kimihurura",
		Description:  "Two bedroom apartment with city view",
		Type:         models.PropertyTypeApartment,
		Status:       models.ListingStatusForRent,
		Price:        650000,
		Bedrooms:     utils.ToPtr(2),
		Bathrooms:    utils.ToPtr(1),
		District:     "Gasabo",
		Sector:       "Kimihurura",
		Amenities:    models.StringArray{"wifi"},
		Images:       models.StringArray{},
		ContactName:  "Test Owner",
		ContactEmail: fmt.Sprintf("contact.%d@example.com", rand.Intn(100000000)),
		ContactPhone: "+250788654321",
		Featured:     utils.ToPtr(false),
		AccountID:    accountID,
		SubmissionID: submissionID,
	}

	if err := tf.DB.DB.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create test listing: %w", err)
	}

	return listing, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(accountID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		AccountID:   accountID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
