package dto

// ListingDTO represents a published listing in API responses
type ListingDTO struct {
	ID            uint     `json:"id"`
	UUID          string   `json:"uuid"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	Price         float64  `json:"price"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *int     `json:"bathrooms,omitempty"`
	Area          *float64 `json:"area,omitempty"`
	ParkingSpaces *int     `json:"parking_spaces,omitempty"`
	District      string   `json:"district"`
	Sector        string   `json:"sector"`
	Address       string   `json:"address"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	ContactName   string   `json:"contact_name"`
	ContactEmail  string   `json:"contact_email"`
	ContactPhone  string   `json:"contact_phone"`
	Featured      bool     `json:"featured"`
	Views         int64    `json:"views"`
	AccountID     uint     `json:"account_id"`
	SubmissionID  *uint    `json:"submission_id,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ListListingsFilter represents filter criteria for browsing listings
type ListListingsFilter struct {
	Type     *string  `json:"type,omitempty" query:"type" validate:"omitempty,oneof=HOUSE APARTMENT LAND COMMERCIAL OFFICE WAREHOUSE"`
	Status   *string  `json:"status,omitempty" query:"status" validate:"omitempty,oneof=FOR_SALE FOR_RENT SOLD RENTED"`
	District *string  `json:"district,omitempty" query:"district" validate:"omitempty,max=100"`
	MinPrice *float64 `json:"min_price,omitempty" query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"max_price,omitempty" query:"max_price" validate:"omitempty,gte=0"`
	Featured *bool    `json:"featured,omitempty" query:"featured"`
	Search   *string  `json:"search,omitempty" query:"search" validate:"omitempty,max=255"`
	Page     int      `json:"page" query:"page"`
	PageSize int      `json:"page_size" query:"page_size"`
}

// ListListingsResponse represents a paginated listings page
type ListListingsResponse struct {
	Items      []ListingDTO  `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
