// Seeds the question catalog into the store. Safe to run repeatedly: an
// already-seeded store is left untouched.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/catalog"
	"github.com/andy00614/sury-questions/internal/config"
	"github.com/andy00614/sury-questions/internal/repository"
	"github.com/andy00614/sury-questions/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		LogLevel: cfg.LogLevel,
		AppName:  "survey-seed",
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	if err := catalog.Validate(); err != nil {
		log.Fatal("catalog invalid", zap.Error(err))
	}

	repo := repository.NewQuestionRepo(client.Database(cfg.MongoDatabase), log)
	if err := repo.EnsureSeeded(ctx, catalog.Questions()); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatal("count after seed", zap.Error(err))
	}
	log.Info("catalog ready", zap.Int64("questions", count))
}
