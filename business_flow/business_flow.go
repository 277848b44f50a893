// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/utils"
)

// ClientMetadata holds all client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToSubmissionDTO converts a submission model to SubmissionDTO for API responses
func ToSubmissionDTO(submission models.Submission) dto.SubmissionDTO {
	d := dto.SubmissionDTO{
		ID:             submission.ID,
		UUID:           submission.UUID.String(),
		PropertyType:   submission.PropertyType,
		ListingType:    submission.ListingType,
		Title:          submission.Title,
		Description:    submission.Description,
		District:       submission.District,
		Sector:         submission.Sector,
		Address:        submission.Address,
		Price:          submission.Price,
		Negotiable:     utils.IsTrue(submission.Negotiable),
		Bedrooms:       submission.Bedrooms,
		Bathrooms:      submission.Bathrooms,
		Area:           submission.Area,
		ParkingSpaces:  submission.ParkingSpaces,
		Amenities:      submission.Amenities,
		Images:         submission.Images,
		OwnerName:      submission.OwnerName,
		OwnerEmail:     submission.OwnerEmail,
		OwnerPhone:     submission.OwnerPhone,
		AdditionalInfo: submission.AdditionalInfo,
		Status:         submission.Status.String(),
		AccountID:      submission.AccountID,
		CreatedAt:      submission.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      submission.UpdatedAt.Format(time.RFC3339),
	}

	return d
}

// ToListingDTO converts a listing model to ListingDTO for API responses
func ToListingDTO(listing models.Listing) dto.ListingDTO {
	d := dto.ListingDTO{
		ID:            listing.ID,
		UUID:          listing.UUID.String(),
		Title:         listing.Title,
		Description:   listing.Description,
		Type:          listing.Type.String(),
		Status:        listing.Status.String(),
		Price:         listing.Price,
		Bedrooms:      listing.Bedrooms,
		Bathrooms:     listing.Bathrooms,
		Area:          listing.Area,
		ParkingSpaces: listing.ParkingSpaces,
		District:      listing.District,
		Sector:        listing.Sector,
		Address:       listing.Address,
		Amenities:     listing.Amenities,
		Images:        listing.Images,
		ContactName:   listing.ContactName,
		ContactEmail:  listing.ContactEmail,
		ContactPhone:  listing.ContactPhone,
		Featured:      utils.IsTrue(listing.Featured),
		Views:         listing.Views,
		AccountID:     listing.AccountID,
		SubmissionID:  listing.SubmissionID,
		CreatedAt:     listing.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     listing.UpdatedAt.Format(time.RFC3339),
	}

	return d
}
