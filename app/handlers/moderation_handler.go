// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/app/middleware"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ModerationHandlerInterface defines the contract for moderation handlers
type ModerationHandlerInterface interface {
	UpdateSubmissionStatus(c fiber.Ctx) error
}

// ModerationHandler handles admin moderation HTTP requests
type ModerationHandler struct {
	moderationFlow businessflow.ModerationFlow
	validator      *validator.Validate
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationFlow businessflow.ModerationFlow) *ModerationHandler {
	return &ModerationHandler{
		moderationFlow: moderationFlow,
		validator:      validator.New(),
	}
}

func (h *ModerationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ModerationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// UpdateSubmissionStatus applies an admin review decision to a submission.
// Approving publishes the submission as a listing in the same transaction.
func (h *ModerationHandler) UpdateSubmissionStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid submission ID", "INVALID_SUBMISSION_ID", nil)
	}

	var req dto.UpdateSubmissionStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = id

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	// Get client information
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/submissions/:id/status")
	defer cancel()

	result, err := h.moderationFlow.TransitionSubmission(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsSubmissionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Submission not found", "SUBMISSION_NOT_FOUND", nil)
		}
		if businessflow.IsSubmissionAlreadyReviewed(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Submission already reviewed", "SUBMISSION_ALREADY_REVIEWED", nil)
		}
		if businessflow.IsInvalidTargetStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid target status", "INVALID_TARGET_STATUS", nil)
		}
		if ve, ok := businessflow.AsValidationError(err); ok {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Submission failed validation", "SUBMISSION_VALIDATION_FAILED", ve.Fields)
		}
		if businessflow.IsOwnershipResolutionFailed(err) {
			log.Println("Ownership resolution failed", err)
			return h.ErrorResponse(c, fiber.StatusInternalServerError, "Ownership resolution failed", "OWNERSHIP_RESOLUTION_FAILED", nil)
		}

		log.Println("Submission review failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission review failed", "SUBMISSION_REVIEW_FAILED", nil)
	}

	if result.Listing != nil {
		middleware.RecordListingPublished()
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submission status updated successfully", result)
}

// createRequestContext creates a context with timeout and request-scoped values.
// Callers must defer the returned cancel func to release the timer.
func (h *ModerationHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)

	return ctx, cancel
}
