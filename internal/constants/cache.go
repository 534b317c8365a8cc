package constants

import "time"

const (
	SessionCachePrefix     = "session"     // Session registry by JWT ID (CacheBuilder adds colon)
	MarketplaceCachePrefix = "marketplace" // Public listing snapshot
	MarketplaceCacheKey    = "listings"
	MarketplaceCacheExpiry = 60 * time.Second
)
