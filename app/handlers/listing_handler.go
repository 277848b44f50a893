// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/godigitorw/macss/app/dto"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ListingHandlerInterface defines the contract for listing handlers
type ListingHandlerInterface interface {
	ListListings(c fiber.Ctx) error
	GetListing(c fiber.Ctx) error
}

// ListingHandler handles public listing HTTP requests
type ListingHandler struct {
	listingFlow businessflow.ListingFlow
	validator   *validator.Validate
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingFlow businessflow.ListingFlow) *ListingHandler {
	return &ListingHandler{
		listingFlow: listingFlow,
		validator:   validator.New(),
	}
}

func (h *ListingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ListingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListListings returns a page of published listings for public browsing
func (h *ListingHandler) ListListings(c fiber.Ctx) error {
	var filter dto.ListListingsFilter
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

	ctx, cancel := h.createRequestContext(c, "/api/v1/listings")
	defer cancel()

	result, err := h.listingFlow.ListListings(ctx, &filter)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}

		log.Println("Listing browse failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Listing browse failed", "LISTING_BROWSE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Listings retrieved successfully", result)
}

// GetListing returns a single published listing and records the view
func (h *ListingHandler) GetListing(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid listing ID", "INVALID_LISTING_ID", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/listings/:id")
	defer cancel()

	result, err := h.listingFlow.GetListing(ctx, id)
	if err != nil {
		if businessflow.IsListingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Listing not found", "LISTING_NOT_FOUND", nil)
		}

		log.Println("Listing lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Listing lookup failed", "LISTING_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Listing retrieved successfully", result)
}

// createRequestContext creates a context with timeout and request-scoped values.
// Callers must defer the returned cancel func to release the timer.
func (h *ListingHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)

	return ctx, cancel
}
