package dto

// UpdateSubmissionStatusRequest represents an admin moderation decision
type UpdateSubmissionStatusRequest struct {
	ID     uint   `json:"-"`
	Status string `json:"status" validate:"required,oneof=CONTACTED APPROVED REJECTED"`
}

// UpdateSubmissionStatusResponse represents the response to a moderation decision
type UpdateSubmissionStatusResponse struct {
	Message    string        `json:"message"`
	Submission SubmissionDTO `json:"submission"`
	Listing    *ListingDTO   `json:"listing,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
}
