package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"vidtube/domain/repository"
	"vidtube/infrastructure/cache"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/events"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/media"
	"vidtube/infrastructure/persistence"
	"vidtube/infrastructure/storage"
	httpHandler "vidtube/interfaces/http"
	"vidtube/interfaces/middleware"
	"vidtube/server"
	"vidtube/usecase"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

// newHTTPServer is built before the serve goroutine starts so shutdown never
// races with its creation.
func newHTTPServer(handler http.Handler, app configuration.App) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           http.MaxBytesHandler(handler, app.MaxUploadMB<<20),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Non-destructive: variables already in the environment win.
	if loaded := configuration.LoadEnvFromFile("config.env", ".env"); len(loaded) > 0 {
		logger.GetLogger().WithField("count", len(loaded)).Info("Loaded variables from env files")
	}
	if err := configuration.Load(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Invalid configuration")
		os.Exit(1)
	}
	cfg := configuration.C
	app := cfg.App

	mongoDb, err := persistence.NewMongoDb(ctx, cfg.Database.Mongo)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB connection failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")
	if err := persistence.EnsureIndexes(ctx, mongoDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed ensuring indexes")
		os.Exit(1)
	}

	assets, err := storage.NewAssetStore(ctx, cfg.Storage)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Asset store initialization failed")
		os.Exit(1)
	}

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Event publisher not available - continuing without events")
		publisher = events.Noop{}
	}

	var (
		redisClient *redis.Client
		denylist    repository.ITokenDenylist
	)
	if addr := cfg.RedisClient.RedisAddr(); addr != "" {
		redisClient, err = cache.NewCache(ctx, addr, cfg.RedisClient.Username, cfg.RedisClient.Password, cfg.RedisClient.DB)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - logout will not revoke access tokens")
		} else {
			denylist = cache.NewTokenDenylist(redisClient)
		}
	}

	userRepository := persistence.NewUserRepository(mongoDb)
	videoRepository := persistence.NewVideoRepository(mongoDb)
	commentRepository := persistence.NewCommentRepository(mongoDb)
	tweetRepository := persistence.NewTweetRepository(mongoDb)
	likeRepository := persistence.NewLikeRepository(mongoDb)
	subscriptionRepository := persistence.NewSubscriptionRepository(mongoDb)
	dashboardRepository := persistence.NewDashboardRepository(mongoDb)

	accessTTL := configuration.Duration(app.AccessTokenTTL, time.Hour)
	refreshTTL := configuration.Duration(app.RefreshTokenTTL, 240*time.Hour)

	userUsecase := usecase.NewUserUsecase(userRepository, assets, denylist, publisher, usecase.TokenConfig{
		AccessSecret:  app.AccessTokenSecret,
		AccessTTL:     accessTTL,
		RefreshSecret: app.RefreshTokenSecret,
		RefreshTTL:    refreshTTL,
	})
	videoUsecase := usecase.NewVideoUsecase(videoRepository, userRepository, media.NewFFProbe(app.FFProbePath), assets, publisher)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, videoRepository)
	tweetUsecase := usecase.NewTweetUsecase(tweetRepository, userRepository)
	likeUsecase := usecase.NewLikeUsecase(likeRepository, videoRepository, commentRepository, tweetRepository)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(subscriptionRepository, userRepository)
	dashboardUsecase := usecase.NewDashboardUsecase(dashboardRepository, videoRepository)

	checks := map[string]httpHandler.HealthCheck{"mongo": mongoDb.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	handlers := server.Handlers{
		User: httpHandler.NewUserHandler(userUsecase, app.UploadDir, httpHandler.CookieConfig{
			Secure:     app.CookieSecure,
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		}),
		Video:        httpHandler.NewVideoHandler(videoUsecase, app.UploadDir),
		Comment:      httpHandler.NewCommentHandler(commentUsecase),
		Tweet:        httpHandler.NewTweetHandler(tweetUsecase),
		Like:         httpHandler.NewLikeHandler(likeUsecase),
		Subscription: httpHandler.NewSubscriptionHandler(subscriptionUsecase),
		Dashboard:    httpHandler.NewDashboardHandler(dashboardUsecase),
		Health:       httpHandler.NewHealthHandler(checks),
	}
	limiter := middleware.NewRateLimiter(
		cfg.RateLimit.Requests,
		configuration.Duration(cfg.RateLimit.Window, time.Second),
		cfg.RateLimit.Burst,
		10*time.Minute,
	)
	guards := server.Middleware{
		Auth:         middleware.Auth(app.AccessTokenSecret, userRepository, denylist),
		OptionalAuth: middleware.OptionalAuth(app.AccessTokenSecret, userRepository, denylist),
		RateLimit:    middleware.RateLimit(limiter),
	}
	router := server.InitiateRouter(handlers, guards, app.AllowedOrigins)
	router.MaxMultipartMemory = 32 << 20

	g, ctx := errgroup.WithContext(ctx)

	port := app.Port
	httpServer := newHTTPServer(router, app)
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		if app.TLSEnabled {
			cert, key := app.TLSCertFile, app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("HTTP server shutdown")
	}
	if err := publisher.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Event publisher close")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := mongoDb.Close(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB disconnect")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
