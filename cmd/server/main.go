package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/PrintSaud/scene-backend/internal/config"
	"github.com/PrintSaud/scene-backend/internal/db"
	"github.com/PrintSaud/scene-backend/internal/handler"
	"github.com/PrintSaud/scene-backend/internal/middleware"
	"github.com/PrintSaud/scene-backend/internal/realtime"
	"github.com/PrintSaud/scene-backend/internal/repository"
	"github.com/PrintSaud/scene-backend/internal/router"
	"github.com/PrintSaud/scene-backend/internal/service"
	"github.com/PrintSaud/scene-backend/pkg/clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	middleware.InitLogger(cfg.LogLevel, "scene-backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	followRepo := repository.NewFollowRepo(pool)
	prefsRepo := repository.NewPrefsRepo(pool)
	logRepo := repository.NewLogRepo(pool)
	listRepo := repository.NewListRepo(pool)
	pollRepo := repository.NewPollRepo(pool)
	notificationRepo := repository.NewNotificationRepo(pool)
	movieRepo := repository.NewMovieRepo(pool)
	usageRepo := repository.NewUsageRepo(pool)

	// Services
	clk := clock.System{}
	tokens := service.NewTokenService(cfg.JWTSecret)
	tmdb := service.NewTMDBClient(cfg.TMDBAPIKey)
	fanout := service.NewFanoutService(followRepo, notificationRepo)
	authSvc := service.NewAuthService(userRepo, tokens, clk, cfg.GoogleClient)
	movieSvc := service.NewMovieService(tmdb, cache, movieRepo, prefsRepo)
	userSvc := service.NewUserService(userRepo, followRepo, prefsRepo, fanout, movieSvc)
	logSvc := service.NewLogService(logRepo, followRepo, userRepo, fanout)
	listSvc := service.NewListService(listRepo, followRepo, fanout)
	pollSvc := service.NewPollService(pollRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	dailySvc := service.NewDailyMovieService(movieSvc, clk)
	homeSvc := service.NewHomeService(logSvc, listSvc, movieSvc, dailySvc, pollSvc)
	searchSvc := service.NewSearchService(movieSvc, userSvc, listSvc)
	botSvc := service.NewSceneBotService(usageRepo, clk, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	images, err := service.NewImageHost(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("invalid CLOUDINARY_URL: %v", err)
	}

	// Realtime hub and the notification push worker
	hub := realtime.NewHub()
	worker := service.NewNotifyWorker(pool, hub)
	go worker.Start(ctx)

	handler.InitMetrics(pool, hub.ClientCount)
	cache.InstrumentWith(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)
	tmdb.InstrumentWith(handler.Metrics.UpstreamDuration.WithLabelValues("tmdb"))
	botSvc.InstrumentWith(handler.Metrics.UpstreamDuration.WithLabelValues("scenebot"))
	worker.InstrumentWith(handler.Metrics.NotificationsPush)

	h := &router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, userSvc),
		User:         handler.NewUserHandler(userSvc),
		Watchlist:    handler.NewWatchlistHandler(userSvc),
		Log:          handler.NewLogHandler(logSvc),
		List:         handler.NewListHandler(listSvc),
		Poll:         handler.NewPollHandler(pollSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Movie:        handler.NewMovieHandler(movieSvc, dailySvc),
		Search:       handler.NewSearchHandler(searchSvc),
		Home:         handler.NewHomeHandler(homeSvc),
		SceneBot:     handler.NewSceneBotHandler(botSvc),
		Upload:       handler.NewUploadHandler(images),
		Stats:        handler.NewStatsHandler(userSvc),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
		Realtime:     handler.NewRealtimeHandler(hub, tokens),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Scene API",
		ServerHeader: "Scene",
		BodyLimit:    12 << 20,
	})

	router.Setup(app, h, tokens, userRepo, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		hub.Close()
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Scene backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
