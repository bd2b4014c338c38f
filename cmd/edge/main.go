package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/serenity-studio/yoga-scheduler/internal/assetcache"
	"github.com/serenity-studio/yoga-scheduler/internal/config"
	"github.com/serenity-studio/yoga-scheduler/internal/logging"
)

// The edge gateway serves the studio site cache-first: precache the asset
// manifest on startup, evict older cache generations, then answer requests
// from the cache and fall through to the origin.
func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(os.Getenv("APP_ENV"))
	defer logger.Sync()

	cache := buildCache(cfg, logger)
	ctx := context.Background()

	if err := cache.Install(ctx); err != nil {
		// Strict policy: a partial precache is worse than none.
		logger.Fatal("precache failed", zap.Error(err))
	}
	if err := cache.Activate(ctx); err != nil {
		logger.Fatal("cache activation failed", zap.Error(err))
	}

	r := gin.Default()

	r.POST("/sync", func(c *gin.Context) {
		if err := cache.Sync(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/push/preview", func(c *gin.Context) {
		c.JSON(http.StatusOK, cache.PushNotification(c.Query("body")))
	})

	r.NoRoute(func(c *gin.Context) {
		entry, err := cache.Fetch(c.Request.Context(), c.Request.URL.RequestURI())
		if err != nil {
			c.String(http.StatusBadGateway, "origin unreachable")
			return
		}

		for k, vals := range entry.Header {
			for _, v := range vals {
				c.Writer.Header().Add(k, v)
			}
		}
		c.Status(entry.Status)
		c.Writer.Write(entry.Body)
	})

	addr := fmt.Sprintf(":%s", getEnv("EDGE_PORT", "3001"))
	logger.Info("edge cache listening",
		zap.String("addr", addr),
		zap.String("generation", cache.Generation()),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start edge server", zap.Error(err))
	}
}

func buildCache(cfg *config.Config, logger *zap.Logger) *assetcache.Cache {
	var cstore assetcache.Store
	switch cfg.StorageDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cstore = assetcache.NewRedisStore(client)
	default:
		cstore = assetcache.NewMemoryStore()
	}

	cache, err := assetcache.New(
		cstore,
		nil,
		cfg.CacheVersion,
		cfg.SiteOrigin,
		assetcache.DefaultManifest,
		logger,
	)
	if err != nil {
		logger.Fatal("invalid cache configuration", zap.Error(err))
	}
	return cache
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
