package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/config"
	"github.com/dantebozzuti27/baseline-video/internal/database"
	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/handlers"
	"github.com/dantebozzuti27/baseline-video/internal/logging"
	authmw "github.com/dantebozzuti27/baseline-video/internal/middleware"
	"github.com/dantebozzuti27/baseline-video/internal/ratelimit"
	"github.com/dantebozzuti27/baseline-video/internal/seed"
	"github.com/dantebozzuti27/baseline-video/internal/services"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/dantebozzuti27/baseline-video/internal/store/memstore"
	"github.com/dantebozzuti27/baseline-video/internal/telemetry"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel.ServiceName, cfg.OTel.Endpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	st, sink, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	limiter, closeLimiter := openLimiter(ctx, cfg, logger)
	defer closeLimiter()

	deps := services.Deps{
		Store:  st,
		Events: sink,
		Logger: logger,
		Tracer: telemetry.Tracer(),
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)

	lessonHandler := handlers.NewLessonHandler(services.NewLessonService(deps))
	programHandler := handlers.NewProgramHandler(services.NewProgramService(deps))
	rosterHandler := handlers.NewRosterHandler(services.NewRosterService(deps, cfg.ClaimTokenTTL), cfg.BaseURL)
	contentHandler := handlers.NewContentHandler(services.NewContentService(deps))

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", authmw.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestID())

	api := app.Group("/api/v1")

	public := api.Group("/public")
	public.Use(authmw.RateLimit(limiter, logger))
	public.Get("/access-codes/:code", rosterHandler.PreviewAccessCode)
	public.Get("/claims/:token", rosterHandler.PreviewClaim)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/lessons", lessonHandler.Request)
	protected.Post("/lessons/:lessonId/cancel", lessonHandler.Cancel)
	protected.Post("/lessons/:lessonId/respond", lessonHandler.Respond)
	protected.Put("/lessons/:lessonId/participants/:playerUserId", lessonHandler.SetParticipant)

	protected.Post("/programs/enrollments", programHandler.Enroll)
	protected.Patch("/programs/enrollments/:enrollmentId", programHandler.SetEnrollmentStatus)
	protected.Post("/programs/assignments/:assignmentId/complete", programHandler.CompleteAssignment)
	protected.Post("/programs/submissions/:submissionId/review", programHandler.ReviewSubmission)
	protected.Post("/programs/focuses", programHandler.CreateFocus)
	protected.Delete("/programs/templates/:templateId/assignments/:assignmentId", programHandler.DeleteTemplateAssignment)
	protected.Delete("/programs/media/:mediaId", programHandler.DeleteDrillMedia)

	protected.Post("/team/access-code/rotate", rosterHandler.RotateAccessCode)
	protected.Post("/team/join", rosterHandler.Join)
	protected.Post("/team/players/:playerId/claim-tokens", rosterHandler.IssueClaimToken)
	protected.Put("/team/players/:userId/active", rosterHandler.SetPlayerActive)
	protected.Post("/claims/:token", rosterHandler.Claim)

	protected.Delete("/content/:kind/:contentId", contentHandler.Delete)
	protected.Post("/content/:kind/:contentId/restore", contentHandler.Restore)
	protected.Post("/videos/:videoId/seen", contentHandler.TouchVideoSeen)
	protected.Post("/feed/seen", contentHandler.TouchFeedSeen)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// openStore returns the configured store and its audit sink.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, events.Sink, func()) {
	logSink := events.NewLogSink(logger)

	if cfg.Store == config.StoreMemory {
		mem := memstore.New()
		if cfg.SeedFile != "" {
			f, err := seed.Load(cfg.SeedFile)
			if err != nil {
				log.Fatalf("Failed to load seed file: %v", err)
			}
			res, err := seed.Apply(ctx, mem, f, seed.Options{})
			if err != nil {
				log.Fatalf("Failed to apply seed file: %v", err)
			}
			logger.Info("seeded in-memory store", "team_id", res.Team.ID, "players", len(res.Players))
		}
		return mem, logSink, func() {}
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return database.NewStore(db), events.Multi(events.NewPostgresSink(db), logSink), db.Close
}

// openLimiter shares preview limits through Redis when configured; without
// Redis previews are not limited.
func openLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, preview rate limiting disabled")
		return ratelimit.Noop(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	limiter := ratelimit.NewRedisLimiter(client, "preview", cfg.PreviewLimit.Limit, cfg.PreviewLimit.Window)
	return limiter, func() { _ = client.Close() }
}
