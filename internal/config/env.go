package config

import (
	"os"
	"strconv"
	"time"
)

func Load() *Config {
	return &Config{
		Service: &ServiceConfig{
			Name: getEnv("SERVICE_NAME", "meme-vault"),
			Env:  getEnv("SERVICE_ENV", "development"),
			Port: getEnv("SERVICE_PORT", "8080"),
		},
		Redis: &RedisConfig{
			URL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE", 2),
			PingTimeout:  getEnvDuration("REDIS_PING_TIMEOUT", 2*time.Second),
		},
		Mongo: &MongoConfig{
			URI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:    getEnv("MONGO_DATABASE", "memevault"),
			MaxPoolSize: getEnvInt("MONGO_MAX_POOL_SIZE", 25),
			PingTimeout: getEnvDuration("MONGO_PING_TIMEOUT", 5*time.Second),
		},
		Worker: &WorkerConfig{
			NotificationGroup: getEnv("WORKER_NOTIFICATION_GROUP", "notification-workers"),
		},
		Logger: &LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "INFO"),
			Format: getEnv("LOG_FORMAT", "JSON"),
		},
		Tracer: &TracerConfig{
			Address: getEnv("OTLP_ADDR", "localhost:4317"),
		},
		SecretToken: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
