package dto

// CreateSubmissionRequest represents an owner-facing property submission.
// Numeric fields arrive as free text and are only parsed at publication time.
type CreateSubmissionRequest struct {
	PropertyType   string   `json:"property_type" validate:"required,max=100"`
	ListingType    string   `json:"listing_type" validate:"required,max=100"`
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description" validate:"required,max=5000"`
	District       string   `json:"district" validate:"required,max=100"`
	Sector         string   `json:"sector" validate:"required,max=100"`
	Address        *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Price          string   `json:"price" validate:"required,max=50"`
	Negotiable     *bool    `json:"negotiable,omitempty"`
	Bedrooms       *string  `json:"bedrooms,omitempty" validate:"omitempty,max=20"`
	Bathrooms      *string  `json:"bathrooms,omitempty" validate:"omitempty,max=20"`
	Area           *string  `json:"area,omitempty" validate:"omitempty,max=50"`
	ParkingSpaces  *string  `json:"parking_spaces,omitempty" validate:"omitempty,max=20"`
	Amenities      []string `json:"amenities,omitempty"`
	Images         []string `json:"images,omitempty"`
	OwnerName      string   `json:"owner_name" validate:"required,max=255"`
	OwnerEmail     string   `json:"owner_email" validate:"required,email,max=255"`
	OwnerPhone     string   `json:"owner_phone" validate:"required,max=50"`
	AdditionalInfo *string  `json:"additional_info,omitempty" validate:"omitempty,max=5000"`
}

// CreateSubmissionResponse represents the response to a new submission
type CreateSubmissionResponse struct {
	Message    string        `json:"message"`
	UUID       string        `json:"uuid"`
	Status     string        `json:"status"`
	CreatedAt  string        `json:"created_at"`
	Submission SubmissionDTO `json:"submission"`
}

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID             uint     `json:"id"`
	UUID           string   `json:"uuid"`
	PropertyType   string   `json:"property_type"`
	ListingType    string   `json:"listing_type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	District       string   `json:"district"`
	Sector         string   `json:"sector"`
	Address        string   `json:"address"`
	Price          string   `json:"price"`
	Negotiable     bool     `json:"negotiable"`
	Bedrooms       *string  `json:"bedrooms,omitempty"`
	Bathrooms      *string  `json:"bathrooms,omitempty"`
	Area           *string  `json:"area,omitempty"`
	ParkingSpaces  *string  `json:"parking_spaces,omitempty"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
	OwnerName      string   `json:"owner_name"`
	OwnerEmail     string   `json:"owner_email"`
	OwnerPhone     string   `json:"owner_phone"`
	AdditionalInfo *string  `json:"additional_info,omitempty"`
	Status         string   `json:"status"`
	AccountID      *uint    `json:"account_id,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// ListSubmissionsFilter represents filter criteria for listing submissions
type ListSubmissionsFilter struct {
	Status   *string `json:"status,omitempty" query:"status" validate:"omitempty,oneof=PENDING CONTACTED APPROVED REJECTED"`
	Search   *string `json:"search,omitempty" query:"search" validate:"omitempty,max=255"`
	Page     int     `json:"page" query:"page"`
	PageSize int     `json:"page_size" query:"page_size"`
}

// ListSubmissionsResponse represents a paginated submissions listing
type ListSubmissionsResponse struct {
	Items      []SubmissionDTO `json:"items"`
	Pagination PaginationDTO   `json:"pagination"`
}

// PaginationDTO represents pagination metadata in list responses
type PaginationDTO struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// DeleteSubmissionResponse represents the response to a submission deletion
type DeleteSubmissionResponse struct {
	Message string `json:"message"`
}
