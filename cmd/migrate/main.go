// Migrates responses from the legacy fixed-column sqlite database into the
// document store. Each legacy row becomes one response document with its
// original timestamp and request metadata preserved; a row that fails to
// convert is logged and skipped, never aborting the run.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/config"
	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/repository"
	"github.com/andy00614/sury-questions/internal/repository/legacy"
	"github.com/andy00614/sury-questions/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		LogLevel: cfg.LogLevel,
		AppName:  "survey-migrate",
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	if _, err := os.Stat(cfg.LegacySQLitePath); os.IsNotExist(err) {
		log.Info("no legacy database found, nothing to migrate",
			zap.String("path", cfg.LegacySQLitePath))
		return
	}

	store, err := legacy.Open(cfg.LegacySQLitePath, log)
	if err != nil {
		log.Fatal("open legacy store", zap.Error(err))
	}

	total, err := store.Count()
	if err != nil {
		log.Fatal("count legacy responses", zap.Error(err))
	}
	if total == 0 {
		log.Info("legacy database is empty, nothing to migrate")
		return
	}
	log.Info("starting migration", zap.Int64("responses", total))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	responseRepo := repository.NewResponseRepo(client.Database(cfg.MongoDatabase), log)
	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("error ensuring response indexes", zap.Error(err))
	}

	rows, err := store.All()
	if err != nil {
		log.Fatal("load legacy responses", zap.Error(err))
	}

	migrated := 0
	for _, row := range rows {
		answers := row.AnswerSet()

		rawPayload, err := json.Marshal(map[string]interface{}{
			"answers":           answers,
			"originalTimestamp": row.CreatedAt,
		})
		if err != nil {
			log.Error("error serializing legacy row",
				zap.Uint("legacy_id", row.ID),
				zap.Error(err))
			continue
		}

		response := &model.Response{
			CreatedAt:  row.CreatedAt,
			IPAddress:  row.IPAddress,
			UserAgent:  row.UserAgent,
			Answers:    answers,
			RawPayload: string(rawPayload),
		}

		if _, err := responseRepo.Insert(ctx, response); err != nil {
			log.Error("error migrating response",
				zap.Uint("legacy_id", row.ID),
				zap.Error(err))
			continue
		}

		migrated++
		if migrated%10 == 0 {
			log.Info("migration progress",
				zap.Int("migrated", migrated),
				zap.Int64("total", total))
		}
	}

	log.Info("migration complete",
		zap.Int("migrated", migrated),
		zap.Int64("total", total))
}
