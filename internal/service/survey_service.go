// Package service wires the question catalog, response store, and
// statistics cache into the operations the transport layer exposes.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/cache"
	"github.com/andy00614/sury-questions/internal/catalog"
	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/repository"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// SurveyService handles catalog reads and submission writes
type SurveyService struct {
	questionRepo repository.QuestionRepo
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
	logger       *logger.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	questionRepo repository.QuestionRepo,
	responseRepo repository.ResponseRepo,
	statsCache cache.StatsCache,
	log *logger.Logger,
) *SurveyService {
	return &SurveyService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		statsCache:   statsCache,
		logger:       log,
	}
}

// EnsureSeeded writes the static catalog into the store on first boot.
// A failure is logged and returned but leaves already-committed rows in
// place; reads serve whatever subset exists.
func (s *SurveyService) EnsureSeeded(ctx context.Context) error {
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}
	if err := s.questionRepo.EnsureSeeded(ctx, catalog.Questions()); err != nil {
		s.logger.Error("error seeding catalog", zap.Error(err))
		return err
	}
	return nil
}

// Questions returns the catalog with options in display order, with the
// conditional-visibility rules reattached (rules live in code, not rows).
func (s *SurveyService) Questions(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questionRepo.QuestionsWithOptions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if def, ok := catalog.ByID(questions[i].ID); ok {
			questions[i].VisibleIf = def.VisibleIf
		}
	}
	return questions, nil
}

// SaveResponse validates the submitted answers against the catalog, purges
// answers whose visibility rule does not hold, and appends one immutable
// response. The as-received submission is kept verbatim as the raw payload
// so purged or future-schema data stays recoverable.
func (s *SurveyService) SaveResponse(ctx context.Context, answers model.AnswerSet, meta model.SubmissionMeta) (string, error) {
	questions := catalog.Questions()

	if err := answers.Validate(questions); err != nil {
		return "", err
	}

	rawPayload, err := json.Marshal(map[string]model.AnswerSet{"answers": answers})
	if err != nil {
		return "", fmt.Errorf("serialize raw payload: %w", err)
	}

	stored := answers.Clone()
	if purged := stored.PruneHidden(questions); len(purged) > 0 {
		s.logger.Debug("purged answers for hidden questions", zap.Ints("question_ids", purged))
	}

	response := &model.Response{
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Answers:    stored,
		RawPayload: string(rawPayload),
	}

	id, err := s.responseRepo.Insert(ctx, response)
	if err != nil {
		return "", err
	}

	// Cached dashboard numbers are stale now; a failed invalidation only
	// delays freshness until the TTL, so log and move on.
	if err := s.statsCache.Invalidate(ctx); err != nil {
		s.logger.Warn("error invalidating stats cache", zap.Error(err))
	}

	s.logger.Info("survey submission saved",
		zap.String("response_id", id),
		zap.Int("answers", len(stored)))
	return id, nil
}

// Responses returns every stored response, newest first, with the total count
func (s *SurveyService) Responses(ctx context.Context) ([]*model.Response, int64, error) {
	count, err := s.responseRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	responses, err := s.responseRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	return responses, count, nil
}
