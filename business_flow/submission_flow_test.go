package businessflow_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/godigitorw/macss/app/dto"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	testingutil "github.com/godigitorw/macss/testing"
	"github.com/godigitorw/macss/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func validCreateRequest() *dto.CreateSubmissionRequest {
	return &dto.CreateSubmissionRequest{
		PropertyType: "house",
		ListingType:  "for_sale",
		Title:        "4 bedroom house in Nyarutarama",
		Description:  "Quiet neighborhood, large compound",
		District:     "Gasabo",
		Sector:       "Remera",
		Price:        "120,000,000",
		OwnerName:    "Alice Uwase",
		OwnerEmail:   "alice@example.com",
		OwnerPhone:   "+250788987654",
	}
}

func TestSubmissionFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		submissionRepo := repository.NewSubmissionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		submissionFlow := businessflow.NewSubmissionFlow(submissionRepo, auditRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("CreateSubmissionAppliesDefaults", func(t *testing.T) {
			ctx := context.WithValue(context.Background(), utils.RequestIDKey, "req-defaults-1")

			result, err := submissionFlow.CreateSubmission(ctx, validCreateRequest(), metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.UUID)
			assert.Equal(t, "PENDING", result.Status)

			submission, err := submissionRepo.ByUUID(context.Background(), result.UUID)
			require.NoError(t, err)
			require.NotNil(t, submission)
			assert.Equal(t, models.SubmissionStatusPending, submission.Status)
			assert.Equal(t, "", submission.Address)
			assert.False(t, utils.IsTrue(submission.Negotiable))
			assert.NotNil(t, submission.Amenities)
			assert.Len(t, submission.Amenities, 0)
			assert.NotNil(t, submission.Images)
			assert.Len(t, submission.Images, 0)
			assert.Nil(t, submission.AccountID)

			// Intake is audited
			audits, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				SubmissionID: &submission.ID,
				Action:       utils.ToPtr(models.AuditActionSubmissionCreated),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, audits, 1)
			assert.True(t, utils.IsTrue(audits[0].Success))
			require.NotNil(t, audits[0].RequestID)
			assert.Equal(t, "req-defaults-1", *audits[0].RequestID)
		})

		t.Run("CreateSubmissionKeepsRawValues", func(t *testing.T) {
			req := validCreateRequest()
			req.Price = "negotiable-ish 12,345"
			req.Bedrooms = utils.ToPtr("three")

			result, err := submissionFlow.CreateSubmission(context.Background(), req, metadata)
			require.NoError(t, err)

			submission, err := submissionRepo.ByUUID(context.Background(), result.UUID)
			require.NoError(t, err)
			assert.Equal(t, "negotiable-ish 12,345", submission.Price)
			require.NotNil(t, submission.Bedrooms)
			assert.Equal(t, "three", *submission.Bedrooms)
		})

		t.Run("CreateSubmissionReportsAllMissingFields", func(t *testing.T) {
			req := validCreateRequest()
			req.Title = ""
			req.District = "   "
			req.OwnerPhone = ""

			_, err := submissionFlow.CreateSubmission(context.Background(), req, metadata)
			require.Error(t, err)
			ve, ok := businessflow.AsValidationError(err)
			require.True(t, ok)
			assert.ElementsMatch(t, []string{"title", "district", "owner_phone"}, ve.Fields)
		})

		t.Run("GetSubmission", func(t *testing.T) {
			created, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			result, err := submissionFlow.GetSubmission(context.Background(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Title, result.Title)
			assert.Equal(t, created.UUID.String(), result.UUID)

			_, err = submissionFlow.GetSubmission(context.Background(), 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionNotFound(err))
		})

		t.Run("ListSubmissionsFilters", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			_, err := fixtures.CreateTestSubmission(func(s *models.Submission) {
				s.Title = "Office space in Nyarugenge"
				s.District = "Nyarugenge"
			})
			require.NoError(t, err)

			contacted, err := fixtures.CreateTestSubmission(func(s *models.Submission) {
				s.Status = models.SubmissionStatusContacted
			})
			require.NoError(t, err)

			all, err := submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{})
			require.NoError(t, err)
			assert.Len(t, all.Items, 2)
			assert.Equal(t, int64(2), all.Pagination.Total)
			assert.Equal(t, 1, all.Pagination.Page)
			assert.Equal(t, 20, all.Pagination.PageSize)

			allStatuses, err := submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{
				Status: utils.ToPtr("all"),
			})
			require.NoError(t, err)
			assert.Len(t, allStatuses.Items, 2)

			byStatus, err := submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{
				Status: utils.ToPtr("CONTACTED"),
			})
			require.NoError(t, err)
			require.Len(t, byStatus.Items, 1)
			assert.Equal(t, contacted.ID, byStatus.Items[0].ID)

			bySearch, err := submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{
				Search: utils.ToPtr("nyarugenge"),
			})
			require.NoError(t, err)
			require.Len(t, bySearch.Items, 1)
			assert.Equal(t, "Nyarugenge", bySearch.Items[0].District)
		})

		t.Run("ListSubmissionsRejectsBadPagination", func(t *testing.T) {
			_, err := submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{Page: -1})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidPage(err))

			_, err = submissionFlow.ListSubmissions(context.Background(), &dto.ListSubmissionsFilter{PageSize: 500})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidPageSize(err))
		})

		t.Run("DeleteSubmission", func(t *testing.T) {
			created, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			_, err = submissionFlow.DeleteSubmission(context.Background(), created.ID, metadata)
			require.NoError(t, err)

			_, err = submissionFlow.GetSubmission(context.Background(), created.ID)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionNotFound(err))

			_, err = submissionFlow.DeleteSubmission(context.Background(), created.ID, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSubmissionNotFound(err))
		})

		t.Run("ExportSubmissions", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			created, err := fixtures.CreateTestSubmission()
			require.NoError(t, err)

			data, err := submissionFlow.ExportSubmissions(context.Background(), &dto.ListSubmissionsFilter{})
			require.NoError(t, err)
			require.NotEmpty(t, data)

			workbook, err := excelize.OpenReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer workbook.Close()

			header, err := workbook.GetCellValue("Submissions", "A1")
			require.NoError(t, err)
			assert.Equal(t, "ID", header)

			title, err := workbook.GetCellValue("Submissions", "D2")
			require.NoError(t, err)
			assert.Equal(t, created.Title, title)
		})

		return nil
	})
	require.NoError(t, err)
}
