package businessflow_test

import (
	"context"
	"testing"

	"github.com/godigitorw/macss/app/dto"
	businessflow "github.com/godigitorw/macss/business_flow"
	"github.com/godigitorw/macss/config"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	testingutil "github.com/godigitorw/macss/testing"
	"github.com/godigitorw/macss/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		listingRepo := repository.NewListingRepository(testDB.DB)
		listingFlow := businessflow.NewListingFlow(listingRepo, nil, config.CacheConfig{})

		account, err := fixtures.CreateTestAccount(models.AccountRoleOwner)
		require.NoError(t, err)

		t.Run("GetListingBumpsViews", func(t *testing.T) {
			listing, err := fixtures.CreateTestListing(account.ID, nil)
			require.NoError(t, err)

			first, err := listingFlow.GetListing(context.Background(), listing.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), first.Views)

			second, err := listingFlow.GetListing(context.Background(), listing.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), second.Views)
		})

		t.Run("GetListingNotFound", func(t *testing.T) {
			_, err := listingFlow.GetListing(context.Background(), 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsListingNotFound(err))
		})

		t.Run("ListListingsFilters", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			account, err := fixtures.CreateTestAccount(models.AccountRoleOwner)
			require.NoError(t, err)

			_, err = fixtures.CreateTestListing(account.ID, nil)
			require.NoError(t, err)
			_, err = fixtures.CreateTestListing(account.ID, nil)
			require.NoError(t, err)

			all, err := listingFlow.ListListings(context.Background(), &dto.ListListingsFilter{})
			require.NoError(t, err)
			assert.Len(t, all.Items, 2)
			assert.Equal(t, int64(2), all.Pagination.Total)

			byType, err := listingFlow.ListListings(context.Background(), &dto.ListListingsFilter{
				Type: utils.ToPtr("APARTMENT"),
			})
			require.NoError(t, err)
			assert.Len(t, byType.Items, 2)

			noMatch, err := listingFlow.ListListings(context.Background(), &dto.ListListingsFilter{
				Type: utils.ToPtr("LAND"),
			})
			require.NoError(t, err)
			assert.Len(t, noMatch.Items, 0)

			byPrice, err := listingFlow.ListListings(context.Background(), &dto.ListListingsFilter{
				MinPrice: utils.ToPtr(float64(1000000)),
			})
			require.NoError(t, err)
			assert.Len(t, byPrice.Items, 0)
		})

		t.Run("ListListingsRejectsBadPagination", func(t *testing.T) {
			_, err := listingFlow.ListListings(context.Background(), &dto.ListListingsFilter{PageSize: 1000})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidPageSize(err))
		})

		return nil
	})
	require.NoError(t, err)
}
