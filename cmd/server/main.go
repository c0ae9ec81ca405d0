package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wanderlist/internal/catalog"
	"wanderlist/internal/feed"
	jwttoken "wanderlist/internal/jwt_token"
	"wanderlist/internal/membership"
	"wanderlist/internal/platform/config"
	"wanderlist/internal/platform/events"
	"wanderlist/internal/platform/httpserver"
	"wanderlist/internal/platform/logger"
	"wanderlist/internal/platform/metrics"
	"wanderlist/internal/platform/postgres"
	"wanderlist/internal/platform/redis"
	"wanderlist/internal/profile"
	"wanderlist/internal/progress"
	"wanderlist/internal/social"
	httptransport "wanderlist/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Every backing
// service is optional: without Postgres the engine runs on in-memory stores,
// without Redis counts skip the cache, without Kafka events are dropped, and
// without a blob endpoint avatars are disabled.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	m := metrics.New()

	var (
		catalogStore    catalog.Store
		membershipStore membership.Store
		progressStore   progress.Store
		feedStore       feed.Store
		socialStore     social.Store
		profileStore    profile.Store
	)
	if cfg.Postgres.DSN != "" {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		catalogStore = catalog.NewPostgres(db)
		membershipStore = membership.NewPostgres(db)
		progressStore = progress.NewPostgres(db)
		feedStore = feed.NewPostgres(db)
		socialStore = social.NewPostgres(db)
		profileStore = profile.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		catalogStore = catalog.NewInMemoryStore()
		membershipStore = membership.NewInMemoryStore()
		progressStore = progress.NewInMemoryStore()
		feedStore = feed.NewInMemoryStore()
		socialStore = social.NewInMemoryStore()
		profileStore = profile.NewInMemoryStore()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := events.NewPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	blobStore, err := profile.NewS3BlobStore(ctx, cfg.Blob)
	if err != nil {
		log.Error("configure blob storage", "error", err)
		os.Exit(1)
	}
	var blobs profile.BlobStore
	if blobStore != nil {
		blobs = blobStore
	}

	catalogSvc := catalog.NewService(catalogStore)
	feedSvc := feed.NewService(feedStore, publisher, m, log)
	membershipSvc := membership.NewService(membershipStore, catalogSvc, progressStore, feedSvc, m, log)
	progressSvc := progress.NewService(progressStore, catalogSvc, membershipSvc, feedSvc, m, log)
	profileSvc := profile.NewService(profileStore, blobs, log)
	countCache := social.NewCountCache(redisClient, cfg.Redis.CountTTL)
	socialSvc := social.NewService(socialStore, feedSvc, profileSvc, countCache, m, log)

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, "wanderlist")

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Catalog:        catalogSvc,
		Membership:     membershipSvc,
		Progress:       progressSvc,
		Feed:           feedSvc,
		Social:         socialSvc,
		Profiles:       profileSvc,
		TokenValidator: jwttoken.NewJWTServiceAdapter(tokens),
		Metrics:        m,
		Logger:         log,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting wanderlist", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
