package constants

import (
	"fmt"
	"time"
)

// Redis keys and TTLs for the spreadedge backend.
// Pattern: spreadedge:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_MARKET_QUOTES = 5 * time.Minute     // Alpha Vantage free tier is rate limited
	TTL_FOLLOWS       = 30 * 24 * time.Hour // refreshed on every toggle
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "spreadedge"
)

// ================== MARKET MODULE ==================

const (
	CACHE_KEY_MARKET_QUOTES = CACHE_PREFIX + ":market:quotes:" // + asset class
)

// ================== COPY TRADE MODULE ==================

const (
	REDIS_KEY_FOLLOWS = CACHE_PREFIX + ":copytrade:follows:" // + subject
)

// ================== KEY BUILDERS ==================

// BuildMarketQuotesKey returns the cache key for one asset class
func BuildMarketQuotesKey(class string) string {
	return CACHE_KEY_MARKET_QUOTES + class
}

// BuildFollowsKey returns the Redis set holding a subject's followed traders
func BuildFollowsKey(subject string) string {
	return fmt.Sprintf("%s%s", REDIS_KEY_FOLLOWS, subject)
}
