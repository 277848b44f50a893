// Package businessflow contains the core business logic and use cases for moderation workflows
package businessflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/app/services"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	"github.com/godigitorw/macss/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModerationFlow handles admin review of submissions, including publication
// of approved submissions as listings
type ModerationFlow interface {
	TransitionSubmission(ctx context.Context, req *dto.UpdateSubmissionStatusRequest, metadata *ClientMetadata) (*dto.UpdateSubmissionStatusResponse, error)
}

// ModerationFlowImpl implements the moderation business flow
type ModerationFlowImpl struct {
	submissionRepo  repository.SubmissionRepository
	listingRepo     repository.ListingRepository
	auditRepo       repository.AuditLogRepository
	resolver        OwnershipResolver
	notificationSvc services.NotificationService
	redisClient     *redis.Client
	db              *gorm.DB
}

// NewModerationFlow creates a new moderation flow instance
func NewModerationFlow(
	submissionRepo repository.SubmissionRepository,
	listingRepo repository.ListingRepository,
	auditRepo repository.AuditLogRepository,
	resolver OwnershipResolver,
	notificationSvc services.NotificationService,
	redisClient *redis.Client,
	db *gorm.DB,
) ModerationFlow {
	return &ModerationFlowImpl{
		submissionRepo:  submissionRepo,
		listingRepo:     listingRepo,
		auditRepo:       auditRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		db:              db,
	}
}

// TransitionSubmission moves a submission to the requested status. Approval
// additionally publishes the submission as a listing; both effects commit in
// one transaction. A submission that already reached a terminal status is
// never reviewed again.
func (m *ModerationFlowImpl) TransitionSubmission(ctx context.Context, req *dto.UpdateSubmissionStatusRequest, metadata *ClientMetadata) (*dto.UpdateSubmissionStatusResponse, error) {
	// PENDING is the intake status, never a review target
	target := models.SubmissionStatus(req.Status)
	if !target.Valid() || target == models.SubmissionStatusPending {
		return nil, NewBusinessError("INVALID_TARGET_STATUS", "Invalid target status", ErrInvalidTargetStatus)
	}

	submission, err := m.submissionRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("SUBMISSION_LOOKUP_FAILED", "Failed to load submission", err)
	}
	if submission == nil {
		return nil, NewBusinessError("SUBMISSION_NOT_FOUND", "Submission not found", ErrSubmissionNotFound)
	}

	if submission.Status.Terminal() {
		return nil, NewBusinessError("SUBMISSION_ALREADY_REVIEWED", "Submission already reviewed", ErrSubmissionAlreadyReviewed)
	}

	var listing *models.Listing
	var warnings []NormalizationWarning

	if target == models.SubmissionStatusApproved {
		listing, warnings, err = m.publish(ctx, submission)
	} else {
		err = m.transition(ctx, submission, target)
	}

	if err != nil {
		errMsg := fmt.Sprintf("Submission review failed: %s", err.Error())
		failureAction := models.AuditActionSubmissionStatusChanged
		if target == models.SubmissionStatusApproved {
			failureAction = models.AuditActionListingPublicationFailed
		}
		_ = m.createAuditLog(ctx, submission, failureAction, errMsg, false, &errMsg, metadata)

		var bizErr *BusinessError
		if errors.As(err, &bizErr) {
			return nil, err
		}
		return nil, NewBusinessError("SUBMISSION_REVIEW_FAILED", "Submission review failed", err)
	}

	msg := fmt.Sprintf("Submission %d moved to %s", submission.ID, target)
	action := models.AuditActionSubmissionStatusChanged
	if listing != nil {
		action = models.AuditActionListingPublished
		msg = fmt.Sprintf("Submission %d published as listing %d", submission.ID, listing.ID)
	}
	_ = m.createAuditLog(ctx, submission, action, msg, true, nil, metadata)

	if listing != nil {
		m.invalidateListingsCache(ctx)
	}

	// Notify the owner outside the transaction so delivery failures never
	// roll back the review
	if target == models.SubmissionStatusApproved || target == models.SubmissionStatusRejected {
		go m.notifyOwner(submission, target, metadata)
	}

	updated, err := m.submissionRepo.ByID(ctx, submission.ID)
	if err != nil || updated == nil {
		updated = submission
		updated.Status = target
	}

	resp := &dto.UpdateSubmissionStatusResponse{
		Message:    fmt.Sprintf("Submission status updated to %s", target),
		Submission: ToSubmissionDTO(*updated),
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}
	if listing != nil {
		d := ToListingDTO(*listing)
		resp.Listing = &d
	}

	return resp, nil
}

// publish converts an approved submission into a listing. Normalization and
// ownership resolution run before the transaction opens: a failed insert
// inside a Postgres transaction poisons it, so the find-or-create of the
// fallback account cannot share the publication transaction.
func (m *ModerationFlowImpl) publish(ctx context.Context, submission *models.Submission) (*models.Listing, []NormalizationWarning, error) {
	normalized, warnings, err := NormalizeSubmission(submission)
	if err != nil {
		return nil, nil, NewBusinessError("SUBMISSION_VALIDATION_FAILED", "Submission failed validation", err)
	}

	owner, err := m.resolver.Resolve(ctx, submission)
	if err != nil {
		return nil, nil, NewBusinessError("OWNERSHIP_RESOLUTION_FAILED", "Ownership resolution failed", err)
	}

	var listing *models.Listing

	err = repository.WithTransaction(ctx, m.db, func(txCtx context.Context) error {
		affected, err := m.submissionRepo.MarkReviewed(txCtx, submission.ID, models.SubmissionStatusApproved)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrSubmissionAlreadyReviewed
		}

		listing = &models.Listing{
			UUID:          uuid.New(),
			Title:         normalized.Title,
			Description:   normalized.Description,
			Type:          normalized.Type,
			Status:        normalized.Status,
			Price:         normalized.Price,
			Bedrooms:      normalized.Bedrooms,
			Bathrooms:     normalized.Bathrooms,
			Area:          normalized.Area,
			ParkingSpaces: normalized.ParkingSpaces,
			District:      normalized.District,
			Sector:        normalized.Sector,
			Address:       normalized.Address,
			Amenities:     normalized.Amenities,
			Images:        normalized.Images,
			ContactName:   normalized.ContactName,
			ContactEmail:  normalized.ContactEmail,
			ContactPhone:  normalized.ContactPhone,
			Featured:      utils.ToPtr(false),
			AccountID:     owner.ID,
			SubmissionID:  &submission.ID,
		}

		return m.listingRepo.Save(txCtx, listing)
	})

	if err != nil {
		// The unique index on submission_id catches publications that
		// raced past the status guard
		if repository.IsUniqueViolation(err) {
			return nil, nil, NewBusinessError("SUBMISSION_ALREADY_REVIEWED", "Submission already published", ErrSubmissionAlreadyReviewed)
		}
		if IsSubmissionAlreadyReviewed(err) {
			return nil, nil, NewBusinessError("SUBMISSION_ALREADY_REVIEWED", "Submission already reviewed", err)
		}
		return nil, nil, NewBusinessError("PUBLICATION_FAILED", "Publication failed", &TransactionError{Err: err})
	}

	return listing, warnings, nil
}

// transition applies a non-approval status change
func (m *ModerationFlowImpl) transition(ctx context.Context, submission *models.Submission, target models.SubmissionStatus) error {
	if target.Terminal() {
		affected, err := m.submissionRepo.MarkReviewed(ctx, submission.ID, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			return NewBusinessError("SUBMISSION_ALREADY_REVIEWED", "Submission already reviewed", ErrSubmissionAlreadyReviewed)
		}
		return nil
	}

	return m.submissionRepo.UpdateStatus(ctx, submission.ID, target)
}

func (m *ModerationFlowImpl) notifyOwner(submission *models.Submission, target models.SubmissionStatus, metadata *ClientMetadata) {
	subject := "Your property submission was approved"
	message := fmt.Sprintf("Good news %s, your property %q is now live on MACSS Real Estate.", submission.OwnerName, submission.Title)
	if target == models.SubmissionStatusRejected {
		subject = "Your property submission was not approved"
		message = fmt.Sprintf("Hello %s, unfortunately your property %q did not pass our review.", submission.OwnerName, submission.Title)
	}

	if err := m.notificationSvc.SendEmail(submission.OwnerEmail, subject, message); err != nil {
		errMsg := fmt.Sprintf("Failed to send email: %v", err)
		_ = m.createAuditLog(context.Background(), submission, models.AuditActionNotificationFailed, errMsg, false, &errMsg, metadata)
	}
}

func (m *ModerationFlowImpl) invalidateListingsCache(ctx context.Context) {
	if m.redisClient == nil {
		return
	}
	_ = m.redisClient.Del(ctx, utils.ListingsLandingCacheKey).Err()
}

func (m *ModerationFlowImpl) createAuditLog(ctx context.Context, submission *models.Submission, action, description string, success bool, errorMsg *string, metadata *ClientMetadata) error {
	var submissionID *uint
	var accountID *uint
	if submission != nil {
		submissionID = &submission.ID
		accountID = submission.AccountID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		AccountID:    accountID,
		SubmissionID: submissionID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errorMsg,
	}

	// Extract request ID from context if available
	requestID := ctx.Value(utils.RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return m.auditRepo.Save(ctx, audit)
}
