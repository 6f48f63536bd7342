package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	defaultIdleMinutes = 30
	defaultAPITimeout  = 15
	defaultWorkerQueue = 1024

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ServerAddress  string
	ContextTimeout time.Duration
	AllowedOrigins []string

	APIBaseURL string
	APITimeout time.Duration

	CacheBackend string
	CacheHost    string
	CachePort    string
	CachePass    string
	CacheDB      int

	SessionIdle time.Duration
	WorkerQueue int
	LogLevel    logrus.Level
}

// Load reads .env when present and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file loaded, using process environment")
	}

	cfg := Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", defaultAddress),
		ContextTimeout: time.Duration(getInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APITimeout:     time.Duration(getInt("API_TIMEOUT", defaultAPITimeout)) * time.Second,
		CacheBackend:   strings.ToLower(getEnv("CACHE_BACKEND", BackendMemory)),
		CacheHost:      getEnv("CACHE_HOST", "localhost"),
		CachePort:      getEnv("CACHE_PORT", "6379"),
		CachePass:      os.Getenv("CACHE_PASS"),
		CacheDB:        getInt("CACHE_DB", defaultCacheDB),
		SessionIdle:    time.Duration(getInt("SESSION_IDLE_MINUTES", defaultIdleMinutes)) * time.Minute,
		WorkerQueue:    getInt("LIKE_STATUS_QUEUE", defaultWorkerQueue),
		LogLevel:       logrus.InfoLevel,
	}

	if lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		logrus.Warnf("invalid LOG_LEVEL, using info: %v", err)
	} else {
		cfg.LogLevel = lvl
	}
	if cfg.CacheBackend != BackendMemory && cfg.CacheBackend != BackendRedis {
		logrus.Warnf("unknown CACHE_BACKEND %q, using %s", cfg.CacheBackend, BackendMemory)
		cfg.CacheBackend = BackendMemory
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, fallback)
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
