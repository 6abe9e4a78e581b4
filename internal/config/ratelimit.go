package config

import "time"

// RateLimitConfig drives the Redis token bucket in front of /api.
type RateLimitConfig struct {
    Enabled        bool          // RATE_LIMIT_ENABLED, off by default
    Capacity       int           // bucket size; RATE_LIMIT_BURST overrides RATE_LIMIT_CAPACITY
    RefillTokens   int           // tokens added per interval
    RefillInterval time.Duration // refill period
    TTL            time.Duration // idle buckets expire after this long
    KeyStrategy    string        // "_"-joined parts out of ip, user, group, route
    Prefix         string        // Redis key prefix
    Debug          bool          // log Redis failures
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  Out-of-range values
// are raised to the smallest usable setting.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", false),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_group"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    if burst := envInt("RATE_LIMIT_BURST", 0); burst > 0 {
        cfg.Capacity = burst
    }
    cfg.Capacity = max(cfg.Capacity, 1)
    cfg.RefillTokens = max(cfg.RefillTokens, 1)
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // a bucket must outlive a few refills or it resets to full too early
    cfg.TTL = max(cfg.TTL, 5*cfg.RefillInterval)
    return cfg
}
