package businessflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/godigitorw/macss/models"
)

// propertyTypeMap translates free-text property descriptions collected from
// owners into catalog property types. Matching is case-insensitive.
var propertyTypeMap = map[string]models.PropertyType{
	"house":      models.PropertyTypeHouse,
	"apartment":  models.PropertyTypeApartment,
	"land":       models.PropertyTypeLand,
	"commercial": models.PropertyTypeCommercial,
	"office":     models.PropertyTypeOffice,
	"warehouse":  models.PropertyTypeWarehouse,
}

// listingStatusMap translates free-text listing intents into catalog listing
// statuses. Both the public form values and the raw enum spellings are accepted.
var listingStatusMap = map[string]models.ListingStatus{
	"for_rent": models.ListingStatusForRent,
	"rent":     models.ListingStatusForRent,
	"for_sale": models.ListingStatusForSale,
	"sale":     models.ListingStatusForSale,
}

// MapPropertyType maps a raw property type string to a catalog property type.
// The second return value reports whether the input matched a known type;
// unknown inputs fall back to HOUSE.
func MapPropertyType(raw string) (models.PropertyType, bool) {
	if t, ok := propertyTypeMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t, true
	}
	return models.PropertyTypeHouse, false
}

// MapListingStatus maps a raw listing type string to a catalog listing status.
// The second return value reports whether the input matched a known intent;
// unknown inputs fall back to FOR_SALE.
func MapListingStatus(raw string) (models.ListingStatus, bool) {
	if s, ok := listingStatusMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, true
	}
	return models.ListingStatusForSale, false
}

// NormalizationWarning records a lossy mapping decision taken while
// normalizing a submission. Warnings never block publication.
type NormalizationWarning struct {
	Field   string `json:"field"`
	Raw     string `json:"raw"`
	Message string `json:"message"`
}

func (w NormalizationWarning) String() string {
	return fmt.Sprintf("%s: %s (raw value %q)", w.Field, w.Message, w.Raw)
}

// NormalizedListing carries the typed listing fields derived from a raw
// submission, ready to be persisted inside the publication transaction.
type NormalizedListing struct {
	Title         string
	Description   string
	Type          models.PropertyType
	Status        models.ListingStatus
	Price         float64
	Bedrooms      *int
	Bathrooms     *int
	Area          *float64
	ParkingSpaces *int
	District      string
	Sector        string
	Address       string
	Amenities     []string
	Images        []string
	ContactName   string
	ContactEmail  string
	ContactPhone  string
}

// NormalizeSubmission converts the raw text fields of a submission into the
// typed shape a listing requires. It returns a ValidationError naming every
// missing or malformed field so operators see the whole problem at once. A
// price that does not parse as a number is a hard failure, never a zero.
func NormalizeSubmission(submission *models.Submission) (*NormalizedListing, []NormalizationWarning, error) {
	var badFields []string
	var warnings []NormalizationWarning

	if strings.TrimSpace(submission.Title) == "" {
		badFields = append(badFields, "title")
	}
	if strings.TrimSpace(submission.District) == "" {
		badFields = append(badFields, "district")
	}
	if strings.TrimSpace(submission.Sector) == "" {
		badFields = append(badFields, "sector")
	}
	if strings.TrimSpace(submission.OwnerName) == "" {
		badFields = append(badFields, "owner_name")
	}
	if strings.TrimSpace(submission.OwnerEmail) == "" {
		badFields = append(badFields, "owner_email")
	}
	if strings.TrimSpace(submission.OwnerPhone) == "" {
		badFields = append(badFields, "owner_phone")
	}

	price, err := parsePrice(submission.Price)
	if err != nil {
		badFields = append(badFields, "price")
	}

	bedrooms, err := parseOptionalInt(submission.Bedrooms)
	if err != nil {
		badFields = append(badFields, "bedrooms")
	}
	bathrooms, err := parseOptionalInt(submission.Bathrooms)
	if err != nil {
		badFields = append(badFields, "bathrooms")
	}
	parkingSpaces, err := parseOptionalInt(submission.ParkingSpaces)
	if err != nil {
		badFields = append(badFields, "parking_spaces")
	}
	area, err := parseOptionalFloat(submission.Area)
	if err != nil {
		badFields = append(badFields, "area")
	}

	if len(badFields) > 0 {
		return nil, nil, NewValidationError(badFields...)
	}

	propertyType, known := MapPropertyType(submission.PropertyType)
	if !known {
		warnings = append(warnings, NormalizationWarning{
			Field:   "property_type",
			Raw:     submission.PropertyType,
			Message: "unrecognized property type, defaulted to HOUSE",
		})
	}

	listingStatus, known := MapListingStatus(submission.ListingType)
	if !known {
		warnings = append(warnings, NormalizationWarning{
			Field:   "listing_type",
			Raw:     submission.ListingType,
			Message: "unrecognized listing type, defaulted to FOR_SALE",
		})
	}

	normalized := &NormalizedListing{
		Title:         strings.TrimSpace(submission.Title),
		Description:   submission.Description,
		Type:          propertyType,
		Status:        listingStatus,
		Price:         price,
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		Area:          area,
		ParkingSpaces: parkingSpaces,
		District:      strings.TrimSpace(submission.District),
		Sector:        strings.TrimSpace(submission.Sector),
		Address:       submission.Address,
		Amenities:     submission.Amenities,
		Images:        submission.Images,
		ContactName:   strings.TrimSpace(submission.OwnerName),
		ContactEmail:  strings.TrimSpace(submission.OwnerEmail),
		ContactPhone:  strings.TrimSpace(submission.OwnerPhone),
	}

	return normalized, warnings, nil
}

func parsePrice(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("price is empty")
	}

	// Owners paste prices with thousands separators
	trimmed = strings.ReplaceAll(trimmed, ",", "")

	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not numeric: %w", raw, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("price %q is negative", raw)
	}

	return price, nil
}

func parseOptionalInt(raw *string) (*int, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("value %q is not an integer: %w", *raw, err)
	}
	if value < 0 {
		return nil, fmt.Errorf("value %q is negative", *raw)
	}

	return &value, nil
}

func parseOptionalFloat(raw *string) (*float64, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	trimmed := strings.ReplaceAll(strings.TrimSpace(*raw), ",", "")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("value %q is not numeric: %w", *raw, err)
	}
	if value < 0 {
		return nil, fmt.Errorf("value %q is negative", *raw)
	}

	return &value, nil
}
