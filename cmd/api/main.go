package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "phonekit/internal/http"
	"phonekit/internal/http/router"
	"phonekit/internal/lookupcache"
	"phonekit/internal/phoneapi"
	"phonekit/phonenumbers"
	"phonekit/phonenumbers/metadata"
	"phonekit/phonenumbers/metadata/source"
	"phonekit/platform/config"
	"phonekit/platform/logger"
	"phonekit/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	metadataSrc, err := buildMetadataSource(cfg)
	if err != nil {
		log.Error("failed to initialize metadata source", "error", err)
		panic("failed to initialize metadata source: " + err.Error())
	}

	var store *metadata.Store
	if err := withRetry(ctx, log, "metadata load", 5, 2*time.Second, func() error {
		raw, err := metadataSrc.Fetch(ctx)
		if err != nil {
			return err
		}
		s, err := metadata.NewStore(raw)
		if err != nil {
			return err
		}
		store = s
		return nil
	}); err != nil {
		log.Error("failed to load metadata", "error", err)
		panic("failed to load metadata: " + err.Error())
	}
	if err := store.Warm(ctx); err != nil {
		log.Error("metadata document is incomplete", "error", err)
		panic("metadata document is incomplete: " + err.Error())
	}
	log.MetadataLoaded(cfg.MetadataSource, store.RegionCount())

	var cache *lookupcache.Cache
	if cfg.IsLookupCacheEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			return client.Ping(ctx).Err()
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		cache = lookupcache.New(client, cfg.LookupCacheTTL, log)
		defer client.Close()
		log.Info("lookup cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.LookupCacheTTL)
	} else {
		log.Warn("REDIS_ADDR not configured; lookup cache disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	util := phonenumbers.New(store)
	phoneModule := phoneapi.NewModule(util, cache, metadataSrc, cfg.MetadataSource,
		cfg.DefaultRegion, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: phoneModule.Service(),
		Modules: []apphttp.Module{
			phoneModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// buildMetadataSource picks the document provider named by configuration.
// The embedded snapshot is the default and always available.
func buildMetadataSource(cfg *config.Config) (source.Source, error) {
	switch cfg.MetadataSource {
	case "file":
		return source.File(cfg.MetadataPath), nil
	case "s3":
		return source.NewObjectStorage(source.ObjectStorageConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MetadataBucket,
			Object:    cfg.MetadataObject,
		})
	default:
		return source.Bytes(metadata.Embedded()), nil
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
