package businessflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/app/services"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/config"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	testingutil "github.com/godigitorw/macss/testing"
	"github.com/godigitorw/macss/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModerationConfig() config.ModerationConfig {
	return config.ModerationConfig{
		FallbackOwnerEmail: "admin@macssrealestate.rw",
		FallbackOwnerName:  "MACSS Admin",
	}
}

// brokenStatusRepo simulates a database fault on non-terminal status updates
type brokenStatusRepo struct {
	repository.SubmissionRepository
}

func (r *brokenStatusRepo) UpdateStatus(ctx context.Context, id uint, status models.SubmissionStatus) error {
	return errors.New("connection reset by peer")
}

func TestTransitionSubmission(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		accountRepo := repository.NewAccountRepository(testDB.DB)
		submissionRepo := repository.NewSubmissionRepository(testDB.DB)
		listingRepo := repository.NewListingRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		resolver := businessflow.NewOwnershipResolver(accountRepo, testModerationConfig(), 10)
		notificationService := services.NewNotificationService(services.NewMockEmailProvider())

		moderationFlow := businessflow.NewModerationFlow(
			submissionRepo,
			listingRepo,
			auditRepo,
			resolver,
			notificationService,
			nil,
			testDB.DB,
		)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("ApprovalPublishesListing", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			result, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{
				ID:     submission.ID,
				Status: "APPROVED",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			require.NotNil(t, result.Listing)
			assert.Empty(t, result.Warnings)

			assert.Equal(t, "APPROVED", result.Submission.Status)
			assert.Equal(t, "HOUSE", result.Listing.Type)
			assert.Equal(t, "FOR_SALE", result.Listing.Status)
			assert.Equal(t, float64(45000000), result.Listing.Price)
			require.NotNil(t, result.Listing.Bedrooms)
			assert.Equal(t, 3, *result.Listing.Bedrooms)
			assert.Equal(t, "Gasabo", result.Listing.District)
			assert.Equal(t, "Kacyiru", result.Listing.Sector)
			assert.Equal(t, submission.OwnerEmail, result.Listing.ContactEmail)
			assert.False(t, result.Listing.Featured)

			// The listing carries its provenance
			listing, err := listingRepo.BySubmissionID(context.Background(), submission.ID)
			require.NoError(t, err)
			require.NotNil(t, listing)

			// Anonymous submissions get the fallback admin owner
			owner, err := accountRepo.ByEmail(context.Background(), "admin@macssrealestate.rw")
			require.NoError(t, err)
			require.NotNil(t, owner)
			assert.Equal(t, models.AccountRoleAdmin, owner.Role)
			assert.Equal(t, owner.ID, listing.AccountID)

			// Audit trail records the publication
			audits, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				SubmissionID: &submission.ID,
				Action:       utils.ToPtr(models.AuditActionListingPublished),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, audits, 1)
			assert.True(t, utils.IsTrue(audits[0].Success))
		})

		t.Run("FallbackOwnerIsReused", func(t *testing.T) {
			first, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)
			second, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: first.ID, Status: "APPROVED"}, metadata)
			require.NoError(t, err)
			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: second.ID, Status: "APPROVED"}, metadata)
			require.NoError(t, err)

			count, err := accountRepo.Count(context.Background(), models.AccountFilter{
				Email: utils.ToPtr("admin@macssrealestate.rw"),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("OwnedSubmissionKeepsItsOwner", func(t *testing.T) {
			account, err := fixtures.CreateTestAccount(models.AccountRoleOwner)
			require.NoError(t, err)

			submission, err := fixtures.CreateTestSubmission(func(s *models.Submission) {
				s.AccountID = &account.ID
			})
			require.NoError(t, err)

			result, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{
				ID:     submission.ID,
				Status: "APPROVED",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result.Listing)
			assert.Equal(t, account.ID, result.Listing.AccountID)
		})

		t.Run("SecondReviewConflicts", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionAlreadyReviewed(err))

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "REJECTED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionAlreadyReviewed(err))
		})

		t.Run("RejectionIsTerminal", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			result, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "REJECTED"}, metadata)
			require.NoError(t, err)
			assert.Nil(t, result.Listing)
			assert.Equal(t, "REJECTED", result.Submission.Status)

			// No listing was published
			listing, err := listingRepo.BySubmissionID(context.Background(), submission.ID)
			require.NoError(t, err)
			assert.Nil(t, listing)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionAlreadyReviewed(err))
		})

		t.Run("ContactedIsNotTerminal", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			result, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "CONTACTED"}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "CONTACTED", result.Submission.Status)
			assert.Nil(t, result.Listing)

			result, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result.Listing)
		})

		t.Run("UnknownTypesPublishWithWarnings", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission(func(s *models.Submission) {
				s.PropertyType = "villa"
				s.ListingType = "lease"
			})
			require.NoError(t, err)

			result, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result.Listing)
			assert.Equal(t, "HOUSE", result.Listing.Type)
			assert.Equal(t, "FOR_SALE", result.Listing.Status)
			require.Len(t, result.Warnings, 2)
		})

		t.Run("UnparsablePriceBlocksApproval", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission(func(s *models.Submission) {
				s.Price = "call for price"
			})
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.Error(t, err)
			ve, ok := businessflow.AsValidationError(err)
			require.True(t, ok)
			assert.Contains(t, ve.Fields, "price")

			// The submission stays reviewable
			reloaded, err := submissionRepo.ByID(context.Background(), submission.ID)
			require.NoError(t, err)
			assert.Equal(t, models.SubmissionStatusPending, reloaded.Status)

			// Failure is audited
			audits, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				SubmissionID: &submission.ID,
				Action:       utils.ToPtr(models.AuditActionListingPublicationFailed),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, audits, 1)
			assert.False(t, utils.IsTrue(audits[0].Success))
		})

		t.Run("ExistingListingRollsBackApproval", func(t *testing.T) {
			account, err := fixtures.CreateTestAccount(models.AccountRoleOwner)
			require.NoError(t, err)

			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			// Simulate a publication that raced past the status guard
			_, err = fixtures.CreateTestListing(account.ID, &submission.ID)
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "APPROVED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionAlreadyReviewed(err))

			// The status change rolled back with the failed insert
			reloaded, err := submissionRepo.ByID(context.Background(), submission.ID)
			require.NoError(t, err)
			assert.Equal(t, models.SubmissionStatusPending, reloaded.Status)
		})

		t.Run("ConcurrentApprovalsPublishOnce", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			const reviewers = 8
			var wg sync.WaitGroup
			errs := make([]error, reviewers)

			for i := 0; i < reviewers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{
						ID:     submission.ID,
						Status: "APPROVED",
					}, metadata)
				}(i)
			}
			wg.Wait()

			successes := 0
			for _, err := range errs {
				if err == nil {
					successes++
					continue
				}
				assert.True(t, businessflow.IsSubmissionAlreadyReviewed(err), err.Error())
			}
			assert.Equal(t, 1, successes)

			// Exactly one listing exists for the submission
			count, err := listingRepo.Count(context.Background(), models.ListingFilter{SubmissionID: &submission.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ConcurrentAnonymousApprovalsShareOwner", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			const reviewers = 6
			submissions := make([]*models.Submission, reviewers)
			for i := range submissions {
				submission, err := fixtures.CreateTestSubmission()
				require.NoError(t, err)
				submissions[i] = submission
			}

			// No fallback account exists yet, so every resolver races
			// through the create path at once
			var wg sync.WaitGroup
			errs := make([]error, reviewers)
			for i := 0; i < reviewers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{
						ID:     submissions[i].ID,
						Status: "APPROVED",
					}, metadata)
				}(i)
			}
			wg.Wait()

			for _, err := range errs {
				assert.NoError(t, err)
			}

			count, err := accountRepo.Count(context.Background(), models.AccountFilter{
				Email: utils.ToPtr("admin@macssrealestate.rw"),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)

			owner, err := accountRepo.ByEmail(context.Background(), "admin@macssrealestate.rw")
			require.NoError(t, err)
			require.NotNil(t, owner)

			listings, err := listingRepo.ByFilter(context.Background(), models.ListingFilter{}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, listings, reviewers)
			for _, listing := range listings {
				assert.Equal(t, owner.ID, listing.AccountID)
			}
		})

		t.Run("FailedContactUpdateAuditsStatusChange", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			faultyFlow := businessflow.NewModerationFlow(
				&brokenStatusRepo{SubmissionRepository: submissionRepo},
				listingRepo,
				auditRepo,
				resolver,
				notificationService,
				nil,
				testDB.DB,
			)

			_, err = faultyFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{
				ID:     submission.ID,
				Status: "CONTACTED",
			}, metadata)
			require.Error(t, err)

			// A failed rewrite is a status-change failure, not a
			// publication failure
			audits, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				SubmissionID: &submission.ID,
				Action:       utils.ToPtr(models.AuditActionSubmissionStatusChanged),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, audits, 1)
			assert.False(t, utils.IsTrue(audits[0].Success))

			publicationAudits, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				SubmissionID: &submission.ID,
				Action:       utils.ToPtr(models.AuditActionListingPublicationFailed),
			}, "", 0, 0)
			require.NoError(t, err)
			assert.Len(t, publicationAudits, 0)
		})

		t.Run("UnknownSubmission", func(t *testing.T) {
			_, err := moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: 999999, Status: "APPROVED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionNotFound(err))
		})

		t.Run("InvalidTargetStatus", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "ARCHIVED"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTargetStatus(err))
		})

		t.Run("PendingIsNotAReviewTarget", func(t *testing.T) {
			submission, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "CONTACTED"}, metadata)
			require.NoError(t, err)

			_, err = moderationFlow.TransitionSubmission(context.Background(), &dto.UpdateSubmissionStatusRequest{ID: submission.ID, Status: "PENDING"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTargetStatus(err))

			reloaded, err := submissionRepo.ByID(context.Background(), submission.ID)
			require.NoError(t, err)
			assert.Equal(t, models.SubmissionStatusContacted, reloaded.Status)
		})

		return nil
	})
	require.NoError(t, err)
}
