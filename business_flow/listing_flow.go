// Package businessflow contains the core business logic and use cases for moderation workflows
package businessflow

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/godigitorw/macss/app/dto"
	"github.com/godigitorw/macss/config"
	"github.com/godigitorw/macss/models"
	"github.com/godigitorw/macss/repository"
	"github.com/godigitorw/macss/utils"
	"github.com/redis/go-redis/v9"
)

// ListingFlow handles public browsing of published listings
type ListingFlow interface {
	ListListings(ctx context.Context, filter *dto.ListListingsFilter) (*dto.ListListingsResponse, error)
	GetListing(ctx context.Context, id uint) (*dto.ListingDTO, error)
}

// ListingFlowImpl implements the listing business flow
type ListingFlowImpl struct {
	listingRepo repository.ListingRepository
	redisClient *redis.Client
	cacheCfg    config.CacheConfig
}

// NewListingFlow creates a new listing flow instance
func NewListingFlow(listingRepo repository.ListingRepository, redisClient *redis.Client, cacheCfg config.CacheConfig) ListingFlow {
	return &ListingFlowImpl{
		listingRepo: listingRepo,
		redisClient: redisClient,
		cacheCfg:    cacheCfg,
	}
}

// ListListings returns a page of listings, newest first. The unfiltered first
// page backs the landing page, so it is served from cache when possible.
func (l *ListingFlowImpl) ListListings(ctx context.Context, filter *dto.ListListingsFilter) (*dto.ListListingsResponse, error) {
	page, pageSize, err := normalizePagination(filter.Page, filter.PageSize)
	if err != nil {
		return nil, NewBusinessError("LIST_LISTINGS_VALIDATION_FAILED", "Invalid pagination", err)
	}

	cacheable := l.isCacheable(filter, page, pageSize)
	if cacheable {
		if cached := l.fromCache(ctx); cached != nil {
			return cached, nil
		}
	}

	repoFilter, err := l.buildFilter(filter)
	if err != nil {
		return nil, err
	}

	total, err := l.listingRepo.Count(ctx, *repoFilter)
	if err != nil {
		return nil, NewBusinessError("LIST_LISTINGS_FAILED", "Failed to count listings", err)
	}

	listings, err := l.listingRepo.ByFilter(ctx, *repoFilter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("LIST_LISTINGS_FAILED", "Failed to list listings", err)
	}

	items := make([]dto.ListingDTO, 0, len(listings))
	for _, listing := range listings {
		items = append(items, ToListingDTO(*listing))
	}

	resp := &dto.ListListingsResponse{
		Items:      items,
		Pagination: buildPagination(page, pageSize, total),
	}

	if cacheable {
		l.toCache(ctx, resp)
	}

	return resp, nil
}

// GetListing retrieves a single listing and bumps its view counter. The
// counter update is best effort; a failed bump never fails the read.
func (l *ListingFlowImpl) GetListing(ctx context.Context, id uint) (*dto.ListingDTO, error) {
	listing, err := l.listingRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("LISTING_LOOKUP_FAILED", "Failed to load listing", err)
	}
	if listing == nil {
		return nil, NewBusinessError("LISTING_NOT_FOUND", "Listing not found", ErrListingNotFound)
	}

	if err := l.listingRepo.IncrementViews(ctx, id); err == nil {
		listing.Views++
	}

	d := ToListingDTO(*listing)
	return &d, nil
}

func (l *ListingFlowImpl) buildFilter(filter *dto.ListListingsFilter) (*models.ListingFilter, error) {
	repoFilter := &models.ListingFilter{}

	if filter.Type != nil {
		propertyType := models.PropertyType(*filter.Type)
		if !propertyType.Valid() {
			return nil, NewBusinessError("INVALID_LISTING_FILTER", "Invalid property type filter", ErrInvalidTargetStatus)
		}
		repoFilter.Type = &propertyType
	}
	if filter.Status != nil {
		status := models.ListingStatus(*filter.Status)
		if !status.Valid() {
			return nil, NewBusinessError("INVALID_LISTING_FILTER", "Invalid listing status filter", ErrInvalidTargetStatus)
		}
		repoFilter.Status = &status
	}
	if filter.District != nil && strings.TrimSpace(*filter.District) != "" {
		repoFilter.District = filter.District
	}
	repoFilter.MinPrice = filter.MinPrice
	repoFilter.MaxPrice = filter.MaxPrice
	repoFilter.Featured = filter.Featured
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		repoFilter.Search = filter.Search
	}

	return repoFilter, nil
}

func (l *ListingFlowImpl) isCacheable(filter *dto.ListListingsFilter, page, pageSize int) bool {
	if l.redisClient == nil || !l.cacheCfg.Enabled {
		return false
	}
	return page == 1 && pageSize == 20 &&
		filter.Type == nil && filter.Status == nil && filter.District == nil &&
		filter.MinPrice == nil && filter.MaxPrice == nil && filter.Featured == nil &&
		filter.Search == nil
}

func (l *ListingFlowImpl) fromCache(ctx context.Context) *dto.ListListingsResponse {
	raw, err := l.redisClient.Get(ctx, utils.ListingsLandingCacheKey).Result()
	if err != nil {
		return nil
	}

	var resp dto.ListListingsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}

	return &resp
}

func (l *ListingFlowImpl) toCache(ctx context.Context, resp *dto.ListListingsResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}

	_ = l.redisClient.Set(ctx, utils.ListingsLandingCacheKey, raw, l.cacheCfg.ListingTTL).Err()
}
