package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Mode selects which persistence backend the server talks to.
// Explicit value, never inferred from the host we happen to run on.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

type Config struct {
	ServerPort string

	Mode         Mode
	RemoteAPIURL string

	// local persistence
	StorageDriver string // "file" | "redis"
	StorageKey    string
	DataFile      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// edge cache
	CacheVersion string
	SiteOrigin   string

	// simulated backend latency on create (zero in tests)
	CreateLatency time.Duration

	Timezone string
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		Mode:         Mode(getEnv("BACKEND_MODE", string(ModeLocal))),
		RemoteAPIURL: getEnv("REMOTE_API_URL", "http://localhost:7071/api"),

		StorageDriver: getEnv("STORAGE_DRIVER", "file"),
		StorageKey:    getEnv("STORAGE_KEY", "yoga_reservations"),
		DataFile:      getEnv("DATA_FILE", "data/yoga_reservations.json"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CacheVersion: getEnv("CACHE_VERSION", "serenity-yoga-v1.0.0"),
		SiteOrigin:   getEnv("SITE_ORIGIN", "http://localhost:3000"),

		CreateLatency: time.Duration(getEnvInt("CREATE_LATENCY_MS", 1500)) * time.Millisecond,

		Timezone: getEnv("STUDIO_TIMEZONE", "Asia/Tokyo"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
