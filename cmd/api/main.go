package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/serenity-studio/yoga-scheduler/internal/config"
	"github.com/serenity-studio/yoga-scheduler/internal/logging"
	"github.com/serenity-studio/yoga-scheduler/internal/routes"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/store/kv"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(os.Getenv("APP_ENV"))
	defer logger.Sync()

	backend := buildBackend(cfg, logger)

	r := gin.Default()

	routes.RegisterRoutes(r, backend, cfg, logger)

	logger.Info("reservation API listening",
		zap.String("addr", cfg.Addr()),
		zap.String("mode", string(cfg.Mode)),
	)
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// buildBackend wires the persistence stack: a local document store always,
// with the remote API composed on top when configured, so a remote outage
// degrades to local persistence instead of failing the call.
func buildBackend(cfg *config.Config, logger *zap.Logger) store.Backend {
	var doc kv.Store
	switch cfg.StorageDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		doc = kv.NewRedis(client, cfg.StorageKey)
	default:
		doc = kv.NewFile(cfg.DataFile)
	}

	local := store.NewLocal(doc, cfg.Timezone)

	if cfg.Mode == config.ModeRemote {
		remote := store.NewRemote(cfg.RemoteAPIURL, nil)
		return store.NewFallback(remote, local, logger)
	}

	return local
}
