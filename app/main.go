package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Guyuepp/go-community-client/internal/config"
	"github.com/Guyuepp/go-community-client/internal/repository/api"
	"github.com/Guyuepp/go-community-client/internal/rest"
	"github.com/Guyuepp/go-community-client/internal/rest/middleware"
	"github.com/Guyuepp/go-community-client/internal/session"
	"github.com/Guyuepp/go-community-client/internal/workers"
)

const (
	likeStatusParallelism = 8
	likeStatusInterval    = 200 * time.Millisecond
	sweepInterval         = time.Minute
)

func main() {
	cfg := config.Load()
	logrus.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare cache
	var client *redis.Client
	if cfg.CacheBackend == config.BackendRedis {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.CacheHost + ":" + cfg.CachePort,
			Password: cfg.CachePass,
			DB:       cfg.CacheDB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}()

		if _, err := client.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to open connection to cache: %v", err)
		}
	}

	// Start worker
	likeStatus := workers.NewLikeStatusWorker(cfg.WorkerQueue, likeStatusParallelism, likeStatusInterval)
	go likeStatus.Start(ctx)

	deps := session.Dependencies{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: api.NewHTTPClient(cfg.APITimeout),
		Redis:      client,
		Worker:     likeStatus,
	}
	registry := session.NewRegistry(cfg.SessionIdle, deps.Build)
	go registry.RunSweeper(ctx, sweepInterval)

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS(cfg.AllowedOrigins))
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))
	route.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": registry.Len()})
	})
	rest.RegisterRoutes(route, middleware.SessionMiddleware(registry))

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: otelhttp.NewHandler(route, "community-gateway"),
	}
	go func() {
		logrus.Infof("Server is running on %s, upstream %s", cfg.ServerAddress, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exiting")
}
