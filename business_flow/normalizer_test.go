package businessflow_test

import (
	"testing"

	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *models.Submission {
	return &models.Submission{
		UUID:         uuid.New(),
		PropertyType: "house",
		ListingType:  "for_sale",
		Title:        "3 bedroom house in Kacyiru",
		Description:  "Spacious family house",
		District:     "Gasabo",
		Sector:       "Kacyiru",
		Address:      "KG 7 Ave",
		Bedrooms:     utils.ToPtr("3"),
		Bathrooms:    utils.ToPtr("2"),
		Area:         utils.ToPtr("240.5"),
		Price:        "45,000,000",
		Amenities:    models.StringArray{"parking"},
		Images:       models.StringArray{},
		OwnerName:    "Jean Bosco",
		OwnerEmail:   "jean@example.com",
		OwnerPhone:   "+250788123456",
		Status:       models.SubmissionStatusPending,
	}
}

func TestMapPropertyType(t *testing.T) {
	t.Run("KnownTypes", func(t *testing.T) {
		cases := map[string]models.PropertyType{
			"house":      models.PropertyTypeHouse,
			"apartment":  models.PropertyTypeApartment,
			"land":       models.PropertyTypeLand,
			"commercial": models.PropertyTypeCommercial,
			"office":     models.PropertyTypeOffice,
			"warehouse":  models.PropertyTypeWarehouse,
		}
		for raw, want := range cases {
			got, known := businessflow.MapPropertyType(raw)
			assert.True(t, known, raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("CaseAndWhitespaceInsensitive", func(t *testing.T) {
		got, known := businessflow.MapPropertyType("  Apartment ")
		assert.True(t, known)
		assert.Equal(t, models.PropertyTypeApartment, got)
	})

	t.Run("UnknownDefaultsToHouse", func(t *testing.T) {
		got, known := businessflow.MapPropertyType("villa")
		assert.False(t, known)
		assert.Equal(t, models.PropertyTypeHouse, got)
	})
}

func TestMapListingStatus(t *testing.T) {
	t.Run("KnownIntents", func(t *testing.T) {
		cases := map[string]models.ListingStatus{
			"for_rent": models.ListingStatusForRent,
			"rent":     models.ListingStatusForRent,
			"for_sale": models.ListingStatusForSale,
			"sale":     models.ListingStatusForSale,
		}
		for raw, want := range cases {
			got, known := businessflow.MapListingStatus(raw)
			assert.True(t, known, raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("UnknownDefaultsToForSale", func(t *testing.T) {
		got, known := businessflow.MapListingStatus("lease")
		assert.False(t, known)
		assert.Equal(t, models.ListingStatusForSale, got)
	})
}

func TestNormalizeSubmission(t *testing.T) {
	t.Run("ValidSubmission", func(t *testing.T) {
		normalized, warnings, err := businessflow.NormalizeSubmission(validSubmission())
		require.NoError(t, err)
		require.NotNil(t, normalized)
		assert.Empty(t, warnings)

		assert.Equal(t, "3 bedroom house in Kacyiru", normalized.Title)
		assert.Equal(t, models.PropertyTypeHouse, normalized.Type)
		assert.Equal(t, models.ListingStatusForSale, normalized.Status)
		assert.Equal(t, float64(45000000), normalized.Price)
		require.NotNil(t, normalized.Bedrooms)
		assert.Equal(t, 3, *normalized.Bedrooms)
		require.NotNil(t, normalized.Bathrooms)
		assert.Equal(t, 2, *normalized.Bathrooms)
		require.NotNil(t, normalized.Area)
		assert.Equal(t, 240.5, *normalized.Area)
		assert.Nil(t, normalized.ParkingSpaces)
		assert.Equal(t, "Gasabo", normalized.District)
		assert.Equal(t, "jean@example.com", normalized.ContactEmail)
	})

	t.Run("UnknownTypesProduceWarnings", func(t *testing.T) {
		submission := validSubmission()
		submission.PropertyType = "villa"
		submission.ListingType = "lease"

		normalized, warnings, err := businessflow.NormalizeSubmission(submission)
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Equal(t, models.PropertyTypeHouse, normalized.Type)
		assert.Equal(t, models.ListingStatusForSale, normalized.Status)
		assert.Equal(t, "property_type", warnings[0].Field)
		assert.Equal(t, "villa", warnings[0].Raw)
		assert.Equal(t, "listing_type", warnings[1].Field)
	})

	t.Run("UnparsablePriceIsHardFailure", func(t *testing.T) {
		submission := validSubmission()
		submission.Price = "call me"

		_, _, err := businessflow.NormalizeSubmission(submission)
		require.Error(t, err)
		ve, ok := businessflow.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "price")
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		submission := validSubmission()
		submission.Price = "-500"

		_, _, err := businessflow.NormalizeSubmission(submission)
		require.Error(t, err)
		assert.True(t, businessflow.IsValidationError(err))
	})

	t.Run("AllBadFieldsReportedAtOnce", func(t *testing.T) {
		submission := validSubmission()
		submission.Title = "  "
		submission.District = ""
		submission.OwnerEmail = ""
		submission.Price = "not a number"
		submission.Bedrooms = utils.ToPtr("three")

		_, _, err := businessflow.NormalizeSubmission(submission)
		require.Error(t, err)
		ve, ok := businessflow.AsValidationError(err)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"title", "district", "owner_email", "price", "bedrooms"}, ve.Fields)
	})

	t.Run("EmptyOptionalNumericsAreNil", func(t *testing.T) {
		submission := validSubmission()
		submission.Bedrooms = utils.ToPtr("  ")
		submission.Bathrooms = nil
		submission.Area = nil

		normalized, _, err := businessflow.NormalizeSubmission(submission)
		require.NoError(t, err)
		assert.Nil(t, normalized.Bedrooms)
		assert.Nil(t, normalized.Bathrooms)
		assert.Nil(t, normalized.Area)
	})

	t.Run("NegativeOptionalNumericRejected", func(t *testing.T) {
		submission := validSubmission()
		submission.Bathrooms = utils.ToPtr("-1")

		_, _, err := businessflow.NormalizeSubmission(submission)
		require.Error(t, err)
		ve, ok := businessflow.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "bathrooms")
	})
}
