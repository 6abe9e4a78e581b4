package router // package router defines how HTTP routes are registered for the API

import (
    "net/http" // http.Handler for the metrics exposition

    "github.com/labstack/echo/v4"    // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9" // optional client backing cache and rate limit

    "github.com/iliyamo/wildlife-sightings/internal/config"     // cache and rate-limit settings
    "github.com/iliyamo/wildlife-sightings/internal/handler"    // import the handlers that implement the API
    "github.com/iliyamo/wildlife-sightings/internal/middleware" // JWT gate, cache and rate limit
    "github.com/iliyamo/wildlife-sightings/internal/model"      // resource element types
)

// Handlers groups every API handler registered by RegisterAPI.
type Handlers struct {
    Species   *handler.Resource[model.Species]
    Users     *handler.Resource[model.User]
    Sightings *handler.Resource[model.Sighting]
    Images    *handler.ImageHandler
    Auth      *handler.AuthHandler
    Detect    *handler.DetectHandler
}

// Options carries the cross-cutting settings of the /api tree.  Redis may
// be nil, in which case caching and rate limiting are pass-through.
type Options struct {
    JWTSecret string
    Cache     config.CacheConfig
    RateLimit config.RateLimitConfig
    Redis     *redis.Client
}

// RegisterRoutes registers the routes outside /api: the HTML banner, the
// health check and, when metrics is non-nil, the Prometheus exposition.
func RegisterRoutes(e *echo.Echo, metrics http.Handler) {
    e.GET("/", handler.Root)
    // Used by load balancers or monitoring systems to verify the service is up.
    e.GET("/healthz", handler.Health)
    if metrics != nil {
        e.GET("/metrics", echo.WrapHandler(metrics))
    }
}

// RegisterAPI registers every /api route.  The whole tree shares one rate
// limiter; each collection has its own cache group so that a mutation only
// drops the entries of the collection it touched.
func RegisterAPI(e *echo.Echo, h Handlers, opt Options) {
    api := e.Group("/api", middleware.NewTokenBucket(opt.RateLimit, opt.Redis))
    cache := func(group string) echo.MiddlewareFunc {
        return middleware.NewRedisCache(opt.Cache, opt.Redis, group)
    }

    // ---- Detection proxy ----
    api.POST("/detect", h.Detect.Detect)

    // ---- Species ----
    // Listing species is the only gated route; the gate runs before the
    // cache so that cached lists are never served to anonymous callers.
    especies := cache("especies")
    api.GET("/especies", h.Species.List, middleware.JWTAuth(opt.JWTSecret), especies)
    api.POST("/especies", h.Species.Create, especies)
    api.PUT("/especies/:id", h.Species.Update, especies)
    api.DELETE("/especies/:id", h.Species.Delete, especies)

    // ---- Users and login ----
    usuarios := cache("usuarios")
    api.GET("/usuarios", h.Users.List, usuarios)
    api.POST("/usuarios", h.Users.Create, usuarios)
    api.PUT("/usuarios/:id", h.Users.Update, usuarios)
    api.DELETE("/usuarios/:id", h.Users.Delete, usuarios)
    api.POST("/login", h.Auth.Login)

    // ---- Sightings ----
    avistamientos := cache("avistamientos")
    api.GET("/avistamientos", h.Sightings.List, avistamientos)
    api.POST("/avistamientos", h.Sightings.Create, avistamientos)
    api.PUT("/avistamientos/:id", h.Sightings.Update, avistamientos)
    api.DELETE("/avistamientos/:id", h.Sightings.Delete, avistamientos)

    // ---- Images of a sighting ----
    imagenes := cache("imagenes")
    api.GET("/avistamientos/:avistamientoId/imagenes", h.Images.List, imagenes)
    api.POST("/avistamientos/:avistamientoId/imagenes", h.Images.Create, imagenes)
    api.DELETE("/avistamientos/:avistamientoId/imagenes/:imagenId", h.Images.Delete, imagenes)
}
