package config

import "time"

type Config struct {
	Service     *ServiceConfig
	Redis       *RedisConfig
	Mongo       *MongoConfig
	Worker      *WorkerConfig
	Logger      *LoggerConfig
	Tracer      *TracerConfig
	SecretToken string
}

type ServiceConfig struct {
	Name string
	Env  string
	Port string
}

type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	PingTimeout  time.Duration
}

type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize int
	PingTimeout time.Duration
}

type WorkerConfig struct {
	NotificationGroup string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type TracerConfig struct {
	Address string
}
