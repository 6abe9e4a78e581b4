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
    "github.com/iliyamo/wildlife-sightings/internal/utils"
)

func rateContext(method, path string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(method, "/", nil)
    req.RemoteAddr = "10.0.0.7:5555"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath(path)
    return c
}

func TestBuildRateKey_Strategies(t *testing.T) {
    c := rateContext(http.MethodDelete, "/api/avistamientos/:avistamientoId/imagenes/:imagenId")

    cases := map[string]string{
        "":              "rl:ip:10.0.0.7:group:avistamientos",
        "ip":            "rl:ip:10.0.0.7",
        "group":         "rl:group:avistamientos",
        "user":          "rl:user:anon",
        "ip_group":      "rl:ip:10.0.0.7:group:avistamientos",
        "ip_route":      "rl:ip:10.0.0.7:route:DELETE /api/avistamientos/:avistamientoId/imagenes/:imagenId",
        "user_group":    "rl:user:anon:group:avistamientos",
        "IP_Bogus_User": "rl:ip:10.0.0.7:user:anon",
    }
    for strategy, want := range cases {
        got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
        assert.Equal(t, want, got, strategy)
    }

    c.Set(CtxUser, &utils.Claims{ID: 9})
    assert.Equal(t, "rl:user:9", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c))
}

func TestRouteGroup(t *testing.T) {
    assert.Equal(t, "especies", routeGroup("/api/especies"))
    assert.Equal(t, "especies", routeGroup("/api/especies/:id"))
    assert.Equal(t, "login", routeGroup("/api/login"))
    assert.Equal(t, "root", routeGroup("/healthz"))
    assert.Equal(t, "root", routeGroup("/api/"))
}

func TestToInt64(t *testing.T) {
    assert.Equal(t, int64(3), toInt64(int64(3)))
    assert.Equal(t, int64(3), toInt64(3.9))
    assert.Equal(t, int64(12), toInt64("12"))
    assert.Equal(t, int64(0), toInt64(nil))
}

func TestNewTokenBucket_DisabledIsPassThrough(t *testing.T) {
    mw := NewTokenBucket(config.RateLimitConfig{Enabled: false, RefillInterval: time.Second}, nil)
    e := echo.New()
    rec := httptest.NewRecorder()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

    require.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c))
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
