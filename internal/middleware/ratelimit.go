package middleware

import (
    "context"
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/wildlife-sightings/internal/config"
    "github.com/iliyamo/wildlife-sightings/internal/logging"
)

// takeScript refills the bucket in whole intervals and spends one token.
// KEYS[1] is the bucket; ARGV is now_ms, capacity, refill, interval_ms,
// ttl_s.  It returns {allowed, tokens_left, wait_ms}.
var takeScript = redis.NewScript(`
local now, cap, refill = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3])
local every, ttl = tonumber(ARGV[4]), tonumber(ARGV[5])

local b = redis.call('HMGET', KEYS[1], 'tokens', 'stamp')
local tokens = tonumber(b[1]) or cap
local stamp = tonumber(b[2]) or now

if every > 0 and now > stamp then
  local steps = math.floor((now - stamp) / every)
  if steps > 0 then
    tokens = math.min(cap, tokens + steps * refill)
    stamp = stamp + steps * every
  end
end

local ok, wait = 0, 0
if tokens >= 1 then
  ok = 1
  tokens = tokens - 1
else
  wait = math.max(0, every - (now - stamp))
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'stamp', stamp)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, tokens, wait}
`)

// bucket is the outcome of one take.
type bucket struct {
    allowed   bool
    remaining int64
    wait      time.Duration
}

// take spends one token from the bucket at key.
func take(ctx context.Context, rdb *redis.Client, cfg config.RateLimitConfig, key string) (bucket, error) {
    res, err := takeScript.Run(ctx, rdb, []string{key},
        time.Now().UnixMilli(),
        cfg.Capacity,
        cfg.RefillTokens,
        cfg.RefillInterval.Milliseconds(),
        int64(cfg.TTL/time.Second),
    ).Slice()
    if err != nil {
        return bucket{}, err
    }
    if len(res) != 3 {
        return bucket{}, fmt.Errorf("ratelimit: unexpected script reply %v", res)
    }
    return bucket{
        allowed:   toInt64(res[0]) == 1,
        remaining: toInt64(res[1]),
        wait:      time.Duration(toInt64(res[2])) * time.Millisecond,
    }, nil
}

// NewTokenBucket limits requests with a token bucket kept in Redis, keyed
// by cfg.KeyStrategy.  Requests pass untouched when the limiter is
// disabled, has no client, or Redis fails.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    limit := strconv.Itoa(cfg.Capacity)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            b, err := take(c.Request().Context(), rdb, cfg, key)
            if err != nil {
                if cfg.Debug {
                    logging.Ctx(c.Request().Context()).Warn().Err(err).Str("key", key).Msg("ratelimit skipped")
                }
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", limit)
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(b.remaining, 10))
            if b.allowed {
                return next(c)
            }

            secs := int(math.Ceil(b.wait.Seconds()))
            h.Set(echo.HeaderRetryAfter, strconv.Itoa(secs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "too_many_requests",
                "message":     "Demasiadas solicitudes, intente más tarde",
                "retry_after": secs,
            })
        }
    }
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// toInt64 reads the numeric replies Redis scripts produce.
func toInt64(v any) int64 {
    switch n := v.(type) {
    case int64:
        return n
    case int:
        return int64(n)
    case float64:
        return int64(n)
    case string:
        i, _ := strconv.ParseInt(n, 10, 64)
        return i
    }
    return 0
}

// routeGroup is the collection an /api path belongs to, for example
// "especies" for /api/especies/:id and "avistamientos" for image routes.
func routeGroup(path string) string {
    rest := strings.TrimPrefix(path, "/api/")
    if rest == path {
        return "root"
    }
    if i := strings.IndexByte(rest, '/'); i >= 0 {
        rest = rest[:i]
    }
    if rest == "" {
        return "root"
    }
    return rest
}

// buildRateKey joins cfg.Prefix with one segment per part of the key
// strategy.  Unknown parts are ignored; an empty strategy means ip_group.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    strategy := strings.ToLower(strings.TrimSpace(cfg.KeyStrategy))
    if strategy == "" {
        strategy = "ip_group"
    }
    key := []string{cfg.Prefix}
    for _, part := range strings.Split(strategy, "_") {
        switch part {
        case "ip":
            ip := c.RealIP()
            if ip == "" {
                ip = "unknown"
            }
            key = append(key, "ip", ip)
        case "user":
            key = append(key, "user", currentUserID(c))
        case "group":
            key = append(key, "group", routeGroup(c.Path()))
        case "route":
            key = append(key, "route", c.Request().Method+" "+c.Path())
        }
    }
    return strings.Join(key, ":")
}
