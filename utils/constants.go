package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the time-to-live for admin access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Cache keys (prefixed with the configured Redis prefix at call sites)
const (
	// ListingsLandingCacheKey caches the unfiltered public listings response
	ListingsLandingCacheKey = "listings:landing"
)

// Request context keys for observability
const (
	RequestIDKey = "X-Request-ID"
	UserAgentKey = "User-Agent"
	IPAddressKey = "IP-Address"
	EndpointKey  = "Endpoint"
)
