package main // Entry point package

import (
    "context"   // shutdown deadline and consumer lifetime
    "errors"    // errors.Is for the server-closed sentinel
    "net/http"  // http.ErrServerClosed
    "os"        // process signals
    "os/signal" // graceful shutdown on SIGINT/SIGTERM
    "syscall"   // SIGTERM
    "time"      // shutdown timeout

    "github.com/labstack/echo/v4"                               // Echo web framework
    echomw "github.com/labstack/echo/v4/middleware"             // recover and CORS
    "github.com/prometheus/client_golang/prometheus"            // metrics registry
    "github.com/prometheus/client_golang/prometheus/collectors" // runtime collectors
    "github.com/redis/go-redis/v9"                              // optional cache/rate-limit backend

    "github.com/iliyamo/wildlife-sightings/internal/config"     // Internal config loader
    "github.com/iliyamo/wildlife-sightings/internal/database"   // connection pool and migrations
    "github.com/iliyamo/wildlife-sightings/internal/detect"     // detection service client
    "github.com/iliyamo/wildlife-sightings/internal/handler"    // HTTP handlers
    "github.com/iliyamo/wildlife-sightings/internal/logging"    // zerolog global logger
    "github.com/iliyamo/wildlife-sightings/internal/metrics"    // Prometheus collector
    "github.com/iliyamo/wildlife-sightings/internal/middleware" // request id, logging, metrics
    "github.com/iliyamo/wildlife-sightings/internal/model"      // resource element types
    "github.com/iliyamo/wildlife-sightings/internal/queue"      // sighting events
    "github.com/iliyamo/wildlife-sightings/internal/repository" // table access
    "github.com/iliyamo/wildlife-sightings/internal/router"     // Internal router setup
)

func main() {
    cfg, err := config.Load() // Load environment config
    logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
    if err != nil {
        logging.Fatal().Err(err).Msg("configuration")
    }

    if cfg.MigrateOnStart {
        if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
            logging.Fatal().Err(err).Msg("migrations")
        }
        logging.Info().Msg("migrations applied")
    }

    db, err := database.Open(cfg.DatabaseURL)
    if err != nil {
        logging.Fatal().Err(err).Msg("database")
    }
    defer db.Close()

    var rdb *redis.Client
    if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
        rdb = config.NewRedisClient()
        if rdb == nil {
            logging.Warn().Msg("redis unreachable; cache and rate limit disabled")
        } else {
            defer rdb.Close()
        }
    }

    reg := prometheus.NewRegistry()
    reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    collector := metrics.NewCollector(reg)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    var events handler.SightingEvents
    if cfg.Events.Enabled {
        events = queue.NewPublisher(cfg.Events.URL, collector)
    }
    if cfg.Events.Consumer {
        consumer := queue.NewConsumer(cfg.Events.URL)
        go func() {
            if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                logging.Error().Err(err).Msg("sighting consumer stopped")
            }
        }()
    }

    detector := detect.New(cfg.DetectURL, cfg.DetectTimeout, cfg.DetectBreakerFailures, detect.WithRecorder(collector))

    e := echo.New() // Create Echo instance
    e.HideBanner = true
    e.HidePort = true
    e.Use(echomw.Recover())
    e.Use(echomw.CORS())
    e.Use(middleware.RequestID())
    e.Use(middleware.RequestLogger())
    e.Use(middleware.Metrics(collector))

    router.RegisterRoutes(e, metrics.Handler(reg))
    router.RegisterAPI(e, router.Handlers{
        Species:   handler.NewResource[model.Species](repository.NewSpeciesRepo(db), handler.SpeciesMessages),
        Users:     handler.NewResource[model.User](repository.NewUserRepo(db, cfg.BcryptCost), handler.UserMessages),
        Sightings: handler.NewSightingResource(repository.NewSightingRepo(db), events),
        Images:    handler.NewImageHandler(repository.NewImageRepo(db)),
        Auth:      handler.NewAuthHandler(repository.NewUserRepo(db, cfg.BcryptCost), cfg.JWTSecret),
        Detect:    handler.NewDetectHandler(detector, cfg.DetectMaxUploadBytes),
    }, router.Options{
        JWTSecret: cfg.JWTSecret,
        Cache:     cfg.Cache,
        RateLimit: cfg.RateLimit,
        Redis:     rdb,
    })

    addr := ":" + cfg.Port // Address string with port
    go func() {
        logging.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logging.Fatal().Err(err).Msg("server")
        }
    }()

    <-ctx.Done()
    logging.Info().Msg("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        logging.Error().Err(err).Msg("shutdown")
    }
}
