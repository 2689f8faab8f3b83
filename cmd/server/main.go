package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/cache"
	"github.com/andy00614/sury-questions/internal/config"
	"github.com/andy00614/sury-questions/internal/repository"
	"github.com/andy00614/sury-questions/internal/service"
	"github.com/andy00614/sury-questions/internal/transport/rest"
	"github.com/andy00614/sury-questions/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		LogFile:   cfg.LogFile,
		LogLevel:  cfg.LogLevel,
		AppName:   "survey-server",
		AddCaller: true,
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Repositories and cache
	questionRepo := repository.NewQuestionRepo(db, log)
	responseRepo := repository.NewResponseRepo(db, log)
	statsCache := cache.NewStatsCache(rdb, cfg.StatsCacheTTL)

	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("error ensuring response indexes", zap.Error(err))
	}

	// Services
	surveySvc := service.NewSurveyService(questionRepo, responseRepo, statsCache, log)
	statsSvc := service.NewStatsService(responseRepo, statsCache, log)

	// First-boot catalog seeding: failure is logged, the server still
	// starts and serves whatever subset is committed.
	if err := surveySvc.EnsureSeeded(ctx); err != nil {
		log.Error("catalog seeding incomplete", zap.Error(err))
	}

	router := rest.NewRouter(&rest.Container{
		SurveyService: surveySvc,
		StatsService:  statsSvc,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
