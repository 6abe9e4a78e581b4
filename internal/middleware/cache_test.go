package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/wildlife-sightings/internal/config"
)

func TestPayload_RoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(200, hdr, []byte(`[{"id":1}]`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, 200, status)
    assert.Equal(t, "application/json", got.Get("Content-Type"))
    assert.Equal(t, `[{"id":1}]`, string(body))
}

func TestDecodePayload_Truncated(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{0, 0})
    assert.False(t, ok)
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 50, '{'})
    assert.False(t, ok)
}

func TestCaptureWriter_Limit(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("defg"))

    assert.Equal(t, "abcd", cw.buf.String())
    assert.Equal(t, int64(7), cw.size)
    assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestCacheKey_PerGroupAndURI(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache"}
    e := echo.New()
    c1 := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/avistamientos/1/imagenes", nil), httptest.NewRecorder())
    c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/avistamientos/2/imagenes", nil), httptest.NewRecorder())

    k1 := cacheKey(cfg, "imagenes", c1)
    assert.NotEqual(t, k1, cacheKey(cfg, "imagenes", c2))
    assert.Regexp(t, `^cache:imagenes:[0-9a-f]{40}$`, k1)
    assert.Equal(t, "cache:imagenes:*", groupPattern(cfg, "imagenes"))
}

func TestNewRedisCache_DisabledIsPassThrough(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: true, TTL: time.Second}, nil, "especies")
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/especies", nil), rec)

    require.NoError(t, mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })(c))
    assert.Equal(t, "ok", rec.Body.String())
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestStorableHeader_DropsPerRequestValues(t *testing.T) {
    h := http.Header{}
    h.Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
    h.Set(echo.HeaderXRequestID, "req-1")
    h.Set("X-Cache", "MISS")
    h.Set("X-RateLimit-Remaining", "4")
    h.Set(echo.HeaderContentLength, "12")

    got := storableHeader(h)
    assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, got.Get(echo.HeaderContentType))
    assert.Empty(t, got.Get(echo.HeaderXRequestID))
    assert.Empty(t, got.Get("X-Cache"))
    assert.Empty(t, got.Get("X-RateLimit-Remaining"))
    assert.Empty(t, got.Get(echo.HeaderContentLength))
    assert.Equal(t, "req-1", h.Get(echo.HeaderXRequestID))
}

func TestReplayHeader_KeepsCurrentRequestID(t *testing.T) {
    dst := http.Header{}
    dst.Set(echo.HeaderXRequestID, "req-2")
    dst.Set(echo.HeaderAccessControlAllowOrigin, "*")

    // entries written before per-request headers were filtered out
    cached := http.Header{
        "X-Request-Id":                {"req-1"},
        "Access-Control-Allow-Origin": {"*"},
        "Content-Type":                {echo.MIMEApplicationJSONCharsetUTF8},
    }
    replayHeader(dst, cached)

    assert.Equal(t, []string{"req-2"}, dst.Values(echo.HeaderXRequestID))
    assert.Equal(t, []string{"*"}, dst.Values(echo.HeaderAccessControlAllowOrigin))
    assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, dst.Get(echo.HeaderContentType))
}
