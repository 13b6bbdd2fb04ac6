package config

import (
	"strings"
	"time"
)

// CacheConfig controls the response cache for catalog reads.  Methods
// lists the HTTP methods whose responses are cached; everything else is
// treated as a mutation.  KeyStrategy decides how much of the request
// forms the cache key, Prefix namespaces the Redis keys, and
// MaxBodyBytes caps how large a response body may be to qualify.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables.  Reads are
// cached for a short window by default; writes flush the namespace, so
// the TTL only matters when Redis misses the flush.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "registry:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
