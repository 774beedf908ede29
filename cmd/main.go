package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NelloGamerz/Meme-Vault/internal/app/broadcast"
	"github.com/NelloGamerz/Meme-Vault/internal/app/registry"
	"github.com/NelloGamerz/Meme-Vault/internal/app/server"
	"github.com/NelloGamerz/Meme-Vault/internal/app/worker"
	"github.com/NelloGamerz/Meme-Vault/internal/config"
	"github.com/NelloGamerz/Meme-Vault/internal/core/services"
	"github.com/NelloGamerz/Meme-Vault/internal/platform/logger"
	"github.com/NelloGamerz/Meme-Vault/internal/platform/telemetry"
	mongoPlugin "github.com/NelloGamerz/Meme-Vault/internal/plugins/mongo"
	redisPlugin "github.com/NelloGamerz/Meme-Vault/internal/plugins/redis"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Config
	cfg := config.Load()

	// Logger
	log := logger.NewLogger(*cfg)
	log.Info("starting application")

	otelShutdown, err := telemetry.InitTelemetry(ctx, *cfg)
	if err != nil {
		log.Error("failed to initialize telemetry", "err", err)
	}
	defer func() {
		log.Info("flushing telemetry...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "err", err)
		}
	}()

	// Infra
	var mdb *mongo.Database
	if mdb, err = mongoPlugin.New(ctx, *cfg.Mongo); err != nil {
		log.Error("mongo connection failed", "uri", cfg.Mongo.URI)
		return
	}
	log.Info("mongo connected")
	var rdb *redis.Client
	if rdb, err = redisPlugin.NewRedisClient(ctx, *cfg.Redis); err != nil {
		log.Error("redis connection failed", "url", cfg.Redis.URL)
		return
	}
	log.Info("redis connected")

	// Adapters
	userRepo := mongoPlugin.NewUserRepo(mdb)
	memeRepo := mongoPlugin.NewMemeRepo(mdb)
	commentRepo := mongoPlugin.NewCommentRepo(mdb)
	notifRepo := mongoPlugin.NewNotificationRepo(mdb)
	feedCache := redisPlugin.NewRedisFeedCache(rdb)
	msgQueue := redisPlugin.NewRedisMessageQueue(log, rdb)

	// Core Services
	hub := registry.NewRegistry()
	engine := broadcast.NewEngine(log, hub)
	tokenSvc := services.NewTokenService(cfg.SecretToken, userRepo)
	notifSvc := services.NewNotificationService(log, msgQueue)
	interactionSvc := services.NewInteractionService(log, userRepo, memeRepo, commentRepo, feedCache, engine, notifSvc)
	feedSvc := services.NewFeedService(log, memeRepo, commentRepo, feedCache)
	router := services.NewEventRouter(log, hub, interactionSvc)

	wrkr := worker.NewNotificationWorker(log, msgQueue, notifRepo, engine, cfg.Worker.NotificationGroup)
	if err := wrkr.Run(ctx); err != nil {
		log.Error("notification worker failed to start", "err", err)
		return
	}

	// Server
	srv := server.NewServer(cfg.Service.Port, cfg.Service.Name, log, tokenSvc, interactionSvc, feedSvc, router, hub)
	srv.Start()
}
