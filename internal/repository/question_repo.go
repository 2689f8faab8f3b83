// Package repository handles MongoDB persistence for the question catalog
// and the response store.
package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// QuestionRepo handles question and option rows
type QuestionRepo interface {
	Count(ctx context.Context) (int64, error)
	EnsureSeeded(ctx context.Context, questions []model.Question) error
	QuestionsWithOptions(ctx context.Context) ([]model.Question, error)
}

type questionRepo struct {
	questions *mongo.Collection
	options   *mongo.Collection
	logger    *logger.Logger
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database, log *logger.Logger) QuestionRepo {
	return &questionRepo{
		questions: db.Collection("questions"),
		options:   db.Collection("options"),
		logger:    log,
	}
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.questions.CountDocuments(ctx, bson.M{})
}

// EnsureSeeded writes the catalog into the store if and only if no questions
// exist yet. Check-then-insert, not transactional: a concurrent first boot
// can double-seed, which is tolerated. A mid-seed failure leaves the rows
// already committed in place; reads return that subset.
func (r *questionRepo) EnsureSeeded(ctx context.Context, questions []model.Question) error {
	count, err := r.Count(ctx)
	if err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		r.logger.Debug("catalog already seeded", zap.Int64("questions", count))
		return nil
	}

	r.logger.Info("seeding question catalog", zap.Int("questions", len(questions)))

	for _, q := range questions {
		if _, err := r.questions.InsertOne(ctx, q); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost the first-boot race; another instance is seeding.
				r.logger.Warn("question already present, skipping",
					zap.Int("question_id", q.ID))
				continue
			}
			r.logger.Error("error seeding question",
				zap.Int("question_id", q.ID),
				zap.Error(err))
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
		for _, opt := range q.Options {
			if _, err := r.options.InsertOne(ctx, opt); err != nil {
				r.logger.Error("error seeding option",
					zap.Int("question_id", q.ID),
					zap.String("value", opt.Value),
					zap.Error(err))
				return fmt.Errorf("insert option %d/%s: %w", q.ID, opt.Value, err)
			}
		}
	}
	return nil
}

// QuestionsWithOptions joins question rows with their options, both in
// display order. This is the canonical read path for the survey flow and
// the dashboard.
func (r *questionRepo) QuestionsWithOptions(ctx context.Context) ([]model.Question, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.questions.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	optOpts := options.Find().SetSort(bson.D{
		{Key: "questionId", Value: 1},
		{Key: "sortOrder", Value: 1},
	})
	optCursor, err := r.options.Find(ctx, bson.M{}, optOpts)
	if err != nil {
		return nil, fmt.Errorf("find options: %w", err)
	}
	defer optCursor.Close(ctx)

	var opts []model.Option
	if err := optCursor.All(ctx, &opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	byQuestion := make(map[int][]model.Option, len(questions))
	for _, opt := range opts {
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	for i := range questions {
		questions[i].Options = byQuestion[questions[i].ID]
	}
	return questions, nil
}
