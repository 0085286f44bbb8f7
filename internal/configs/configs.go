package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                     string
	DatabaseDSN                string
	RedisAddr                  string
	RedisDB                    int
	BadgeCacheKeyPrefix        string
	BadgeCacheTTLSeconds       int
	FanoutWorkers              int
	OverduePollIntervalSeconds int
	DependencyCycleCheck       bool
	RateLimit                  int
	ShutdownTimeoutSeconds     int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                     fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:                getEnv("DATABASE_DSN", "tracker.db"),
		RedisAddr:                  fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisDB:                    getEnvAsInt("REDIS_DB", 0),
		BadgeCacheKeyPrefix:        getEnv("BADGE_CACHE_KEY_PREFIX", "unread_badge"),
		BadgeCacheTTLSeconds:       getEnvAsInt("BADGE_CACHE_TTL_SECONDS", 30),
		FanoutWorkers:              getEnvAsInt("FANOUT_WORKERS", 5),
		OverduePollIntervalSeconds: getEnvAsInt("OVERDUE_POLL_INTERVAL_SECONDS", 300),
		DependencyCycleCheck:       getEnvAsBool("DEPENDENCY_CYCLE_CHECK", false),
		RateLimit:                  getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds:     getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.BadgeCacheTTLSeconds <= 0 {
		log.Fatal("BADGE_CACHE_TTL_SECONDS must be greater than 0")
	}
	if cfg.FanoutWorkers <= 0 {
		log.Fatal("FANOUT_WORKERS must be greater than 0")
	}
	if cfg.OverduePollIntervalSeconds <= 0 {
		log.Fatal("OVERDUE_POLL_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.RedisDB < 0 {
		log.Fatal("REDIS_DB must not be negative")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}
