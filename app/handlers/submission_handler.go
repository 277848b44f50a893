// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/godigitorw/macss/app/dto"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// SubmissionHandlerInterface defines the contract for submission handlers
type SubmissionHandlerInterface interface {
	CreateSubmission(c fiber.Ctx) error
	GetSubmission(c fiber.Ctx) error
	ListSubmissions(c fiber.Ctx) error
	DeleteSubmission(c fiber.Ctx) error
	ExportSubmissions(c fiber.Ctx) error
}

// SubmissionHandler handles submission-related HTTP requests
type SubmissionHandler struct {
	submissionFlow businessflow.SubmissionFlow
	validator      *validator.Validate
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionFlow businessflow.SubmissionFlow) *SubmissionHandler {
	return &SubmissionHandler{
		submissionFlow: submissionFlow,
		validator:      validator.New(),
	}
}

func (h *SubmissionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SubmissionHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateSubmission handles the public property submission form
func (h *SubmissionHandler) CreateSubmission(c fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

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

	ctx, cancel := h.createRequestContext(c, "/api/v1/submissions")
	defer cancel()

	result, err := h.submissionFlow.CreateSubmission(ctx, &req, metadata)
	if err != nil {
		if ve, ok := businessflow.AsValidationError(err); ok {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields", "MISSING_FIELDS", ve.Fields)
		}

		log.Println("Submission creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission creation failed", "SUBMISSION_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Submission created successfully", result)
}

// GetSubmission retrieves a single submission for admin review
func (h *SubmissionHandler) GetSubmission(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid submission ID", "INVALID_SUBMISSION_ID", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/submissions/:id")
	defer cancel()

	result, err := h.submissionFlow.GetSubmission(ctx, id)
	if err != nil {
		if businessflow.IsSubmissionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Submission not found", "SUBMISSION_NOT_FOUND", nil)
		}

		log.Println("Submission lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission lookup failed", "SUBMISSION_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submission retrieved successfully", result)
}

// ListSubmissions returns a page of submissions for the admin dashboard
func (h *SubmissionHandler) ListSubmissions(c fiber.Ctx) error {
	var filter dto.ListSubmissionsFilter
	if err := c.Bind().Query(&filter); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&filter); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/submissions")
	defer cancel()

	result, err := h.submissionFlow.ListSubmissions(ctx, &filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}

		log.Println("Submission listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission listing failed", "SUBMISSION_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submissions retrieved successfully", result)
}

// DeleteSubmission removes a submission permanently
func (h *SubmissionHandler) DeleteSubmission(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid submission ID", "INVALID_SUBMISSION_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/submissions/:id")
	defer cancel()

	result, err := h.submissionFlow.DeleteSubmission(ctx, id, metadata)
	if err != nil {
		if businessflow.IsSubmissionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Submission not found", "SUBMISSION_NOT_FOUND", nil)
		}

		log.Println("Submission deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission deletion failed", "SUBMISSION_DELETION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submission deleted successfully", result)
}

// ExportSubmissions streams all matching submissions as an XLSX workbook
func (h *SubmissionHandler) ExportSubmissions(c fiber.Ctx) error {
	var filter dto.ListSubmissionsFilter
	if err := c.Bind().Query(&filter); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/submissions/export")
	defer cancel()

	data, err := h.submissionFlow.ExportSubmissions(ctx, &filter)
	if err != nil {
		log.Println("Submission export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Submission export failed", "SUBMISSION_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="submissions.xlsx"`)
	return c.Send(data)
}

// parseIDParam extracts a positive numeric ID from the :id path parameter
func parseIDParam(c fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// createRequestContext creates a context with timeout and request-scoped values.
// Callers must defer the returned cancel func to release the timer.
func (h *SubmissionHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)

	return ctx, cancel
}
