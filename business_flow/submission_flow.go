// Package businessflow contains the core business logic and use cases for moderation workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	"github.com/godigitorw/macss/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// SubmissionFlow handles the intake and administration of property submissions
type SubmissionFlow interface {
	CreateSubmission(ctx context.Context, req *dto.CreateSubmissionRequest, metadata *ClientMetadata) (*dto.CreateSubmissionResponse, error)
	GetSubmission(ctx context.Context, id uint) (*dto.SubmissionDTO, error)
	ListSubmissions(ctx context.Context, filter *dto.ListSubmissionsFilter) (*dto.ListSubmissionsResponse, error)
	DeleteSubmission(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteSubmissionResponse, error)
	ExportSubmissions(ctx context.Context, filter *dto.ListSubmissionsFilter) ([]byte, error)
}

// SubmissionFlowImpl implements the submission business flow
type SubmissionFlowImpl struct {
	submissionRepo repository.SubmissionRepository
	auditRepo      repository.AuditLogRepository
	db             *gorm.DB
}

// NewSubmissionFlow creates a new submission flow instance
func NewSubmissionFlow(
	submissionRepo repository.SubmissionRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) SubmissionFlow {
	return &SubmissionFlowImpl{
		submissionRepo: submissionRepo,
		auditRepo:      auditRepo,
		db:             db,
	}
}

// CreateSubmission records a raw property submission from an owner. Every
// field is stored as received; typing happens at publication time.
func (s *SubmissionFlowImpl) CreateSubmission(ctx context.Context, req *dto.CreateSubmissionRequest, metadata *ClientMetadata) (*dto.CreateSubmissionResponse, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, NewBusinessError("SUBMISSION_VALIDATION_FAILED", "Submission validation failed", err)
	}

	address := ""
	if req.Address != nil {
		address = *req.Address
	}

	negotiable := false
	if req.Negotiable != nil {
		negotiable = *req.Negotiable
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	submission := &models.Submission{
		UUID:           uuid.New(),
		PropertyType:   req.PropertyType,
		ListingType:    req.ListingType,
		Title:          req.Title,
		Description:    req.Description,
		District:       req.District,
		Sector:         req.Sector,
		Address:        address,
		Price:          req.Price,
		Negotiable:     utils.ToPtr(negotiable),
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		Area:           req.Area,
		ParkingSpaces:  req.ParkingSpaces,
		Amenities:      amenities,
		Images:         images,
		OwnerName:      req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		OwnerPhone:     req.OwnerPhone,
		AdditionalInfo: req.AdditionalInfo,
		Status:         models.SubmissionStatusPending,
	}

	if err := s.submissionRepo.Save(ctx, submission); err != nil {
		errMsg := fmt.Sprintf("Failed to save submission: %s", err.Error())
		_ = s.createAuditLog(ctx, nil, models.AuditActionSubmissionCreated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("SUBMISSION_CREATE_FAILED", "Failed to create submission", err)
	}

	msg := fmt.Sprintf("Submission created: %d", submission.ID)
	_ = s.createAuditLog(ctx, submission, models.AuditActionSubmissionCreated, msg, true, nil, metadata)

	return &dto.CreateSubmissionResponse{
		Message:    "Submission received. Our team will contact you shortly.",
		UUID:       submission.UUID.String(),
		Status:     submission.Status.String(),
		CreatedAt:  submission.CreatedAt.Format(time.RFC3339),
		Submission: ToSubmissionDTO(*submission),
	}, nil
}

// GetSubmission retrieves a single submission by ID
func (s *SubmissionFlowImpl) GetSubmission(ctx context.Context, id uint) (*dto.SubmissionDTO, error) {
	submission, err := s.submissionRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("SUBMISSION_LOOKUP_FAILED", "Failed to load submission", err)
	}
	if submission == nil {
		return nil, NewBusinessError("SUBMISSION_NOT_FOUND", "Submission not found", ErrSubmissionNotFound)
	}

	d := ToSubmissionDTO(*submission)
	return &d, nil
}

// buildSubmissionFilter translates query parameters into a repository filter.
// A status of "all" (or empty) means no status restriction.
func buildSubmissionFilter(filter *dto.ListSubmissionsFilter) (models.SubmissionFilter, error) {
	repoFilter := models.SubmissionFilter{}

	if filter.Status != nil {
		raw := strings.TrimSpace(*filter.Status)
		if raw != "" && !strings.EqualFold(raw, "all") {
			status := models.SubmissionStatus(strings.ToUpper(raw))
			if !status.Valid() {
				return repoFilter, NewBusinessError("INVALID_TARGET_STATUS", "Invalid status filter", ErrInvalidTargetStatus)
			}
			repoFilter.Status = &status
		}
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		repoFilter.Search = filter.Search
	}

	return repoFilter, nil
}

// ListSubmissions returns a page of submissions, newest first
func (s *SubmissionFlowImpl) ListSubmissions(ctx context.Context, filter *dto.ListSubmissionsFilter) (*dto.ListSubmissionsResponse, error) {
	page, pageSize, err := normalizePagination(filter.Page, filter.PageSize)
	if err != nil {
		return nil, NewBusinessError("LIST_SUBMISSIONS_VALIDATION_FAILED", "Invalid pagination", err)
	}

	repoFilter, err := buildSubmissionFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := s.submissionRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, NewBusinessError("LIST_SUBMISSIONS_FAILED", "Failed to count submissions", err)
	}

	submissions, err := s.submissionRepo.ByFilter(ctx, repoFilter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("LIST_SUBMISSIONS_FAILED", "Failed to list submissions", err)
	}

	items := make([]dto.SubmissionDTO, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, ToSubmissionDTO(*submission))
	}

	return &dto.ListSubmissionsResponse{
		Items:      items,
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}

// DeleteSubmission removes a submission permanently
func (s *SubmissionFlowImpl) DeleteSubmission(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteSubmissionResponse, error) {
	submission, err := s.submissionRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("SUBMISSION_LOOKUP_FAILED", "Failed to load submission", err)
	}
	if submission == nil {
		return nil, NewBusinessError("SUBMISSION_NOT_FOUND", "Submission not found", ErrSubmissionNotFound)
	}

	if err := s.submissionRepo.Delete(ctx, id); err != nil {
		errMsg := fmt.Sprintf("Failed to delete submission: %s", err.Error())
		_ = s.createAuditLog(ctx, submission, models.AuditActionSubmissionDeleted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("SUBMISSION_DELETE_FAILED", "Failed to delete submission", err)
	}

	msg := fmt.Sprintf("Submission deleted: %d", id)
	_ = s.createAuditLog(ctx, submission, models.AuditActionSubmissionDeleted, msg, true, nil, metadata)

	return &dto.DeleteSubmissionResponse{Message: "Submission deleted successfully"}, nil
}

// ExportSubmissions renders all submissions matching the filter as an XLSX
// workbook for offline review
func (s *SubmissionFlowImpl) ExportSubmissions(ctx context.Context, filter *dto.ListSubmissionsFilter) ([]byte, error) {
	repoFilter, err := buildSubmissionFilter(filter)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ByFilter(ctx, repoFilter, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("EXPORT_SUBMISSIONS_FAILED", "Failed to export submissions", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Submissions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Created At", "Status", "Title", "Property Type", "Listing Type", "District", "Sector", "Price", "Owner Name", "Owner Email", "Owner Phone"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for row, submission := range submissions {
		values := []any{
			submission.ID,
			submission.CreatedAt.Format("2006-01-02 15:04"),
			submission.Status.String(),
			submission.Title,
			submission.PropertyType,
			submission.ListingType,
			submission.District,
			submission.Sector,
			submission.Price,
			submission.OwnerName,
			submission.OwnerEmail,
			submission.OwnerPhone,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXPORT_SUBMISSIONS_FAILED", "Failed to render export", err)
	}

	return buf.Bytes(), nil
}

// Private helper methods

// validateCreateRequest mirrors the public intake form requirements and
// reports every missing field at once
func (s *SubmissionFlowImpl) validateCreateRequest(req *dto.CreateSubmissionRequest) error {
	var missing []string

	checks := []struct {
		name  string
		value string
	}{
		{"property_type", req.PropertyType},
		{"listing_type", req.ListingType},
		{"title", req.Title},
		{"description", req.Description},
		{"district", req.District},
		{"sector", req.Sector},
		{"price", req.Price},
		{"owner_name", req.OwnerName},
		{"owner_email", req.OwnerEmail},
		{"owner_phone", req.OwnerPhone},
	}
	for _, check := range checks {
		if strings.TrimSpace(check.value) == "" {
			missing = append(missing, check.name)
		}
	}

	if len(missing) > 0 {
		return NewValidationError(missing...)
	}

	return nil
}

func (s *SubmissionFlowImpl) createAuditLog(ctx context.Context, submission *models.Submission, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var submissionID *uint
	if submission != nil {
		submissionID = &submission.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		SubmissionID: submissionID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	requestID := ctx.Value(utils.RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return s.auditRepo.Save(ctx, audit)
}

func normalizePagination(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return page, pageSize, nil
}

func buildPagination(page, pageSize int, total int64) dto.PaginationDTO {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return dto.PaginationDTO{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
