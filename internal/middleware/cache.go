package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/wildlife-sightings/internal/config"
    "github.com/iliyamo/wildlife-sightings/internal/logging"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 || cw.size < cw.limit {
        remain := cw.limit - cw.size
        switch {
        case cw.limit <= 0:
            cw.buf.Write(b)
        case int64(len(b)) <= remain:
            cw.buf.Write(b)
        default:
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// groupPattern matches every cached entry of a resource group.
func groupPattern(cfg config.CacheConfig, group string) string {
    return fmt.Sprintf("%s:%s:*", cfg.Prefix, group)
}

// cacheKey is <prefix>:<group>:<sha1(request URI)>.
func cacheKey(cfg config.CacheConfig, group string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Request().URL.RequestURI()))
    return fmt.Sprintf("%s:%s:%x", cfg.Prefix, group, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    hdr := make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, hdr, bs[8+hlen:], true
}

// NewRedisCache caches successful responses of cacheable methods for one
// resource group and drops the whole group after any successful mutation
// routed through the same middleware.  It is a pass-through when disabled
// or when rdb is nil.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, group string) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                err := next(c)
                if err == nil && c.Response().Status < http.StatusBadRequest {
                    invalidateGroup(ctx, rdb, groupPattern(cfg, group))
                }
                return err
            }

            key := cacheKey(cfg, group, c)
            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    replayHeader(c.Response().Header(), hdr)
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            // Partial bodies are never stored.
            if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
                return nil
            }
            if payload, err := encodePayload(cw.status, storableHeader(c.Response().Header()), cw.buf.Bytes()); err == nil {
                _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}

// perRequestHeaders belong to the response that produced them and are
// never replayed from the cache.
var perRequestHeaders = []string{
    echo.HeaderXRequestID,
    echo.HeaderContentLength,
    "X-Cache",
    "X-RateLimit-Limit",
    "X-RateLimit-Remaining",
    echo.HeaderRetryAfter,
}

// storableHeader copies h without the per-request headers.
func storableHeader(h http.Header) http.Header {
    out := h.Clone()
    for _, k := range perRequestHeaders {
        out.Del(k)
    }
    return out
}

// replayHeader writes cached headers onto dst, replacing values the
// current request already set so no header is doubled.
func replayHeader(dst, cached http.Header) {
    for k, vals := range cached {
        if isPerRequest(k) {
            continue
        }
        dst[http.CanonicalHeaderKey(k)] = append([]string(nil), vals...)
    }
}

func isPerRequest(k string) bool {
    for _, h := range perRequestHeaders {
        if strings.EqualFold(h, k) {
            return true
        }
    }
    return false
}

// invalidateGroup deletes every key matching pattern.
func invalidateGroup(ctx context.Context, rdb *redis.Client, pattern string) {
    iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        logging.Ctx(ctx).Warn().Err(err).Str("pattern", pattern).Msg("cache: scan failed")
        return
    }
    if len(keys) > 0 {
        if err := rdb.Del(ctx, keys...).Err(); err != nil {
            logging.Ctx(ctx).Warn().Err(err).Str("pattern", pattern).Msg("cache: invalidate failed")
        }
    }
}
