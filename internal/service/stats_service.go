package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/cache"
	"github.com/andy00614/sury-questions/internal/catalog"
	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/repository"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// ErrNoDistribution marks questions without declared options (free text)
var ErrNoDistribution = errors.New("question has no options to distribute over")

const dailySeriesDays = 30

// StatsService computes the dashboard aggregates and per-question
// distributions from the response store.
type StatsService struct {
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
	logger       *logger.Logger

	// now is swappable for tests; "today" is the server-local calendar
	// day, so near-midnight submissions bucket by server timezone.
	now func() time.Time
}

// NewStatsService creates a new statistics service
func NewStatsService(responseRepo repository.ResponseRepo, statsCache cache.StatsCache, log *logger.Logger) *StatsService {
	return &StatsService{
		responseRepo: responseRepo,
		statsCache:   statsCache,
		logger:       log,
		now:          time.Now,
	}
}

// Dashboard returns the fixed statistics payload, served from cache when
// fresh. Grouped counts are unordered; consumers sort for display.
func (s *StatsService) Dashboard(ctx context.Context) (*model.Statistics, error) {
	if cached, err := s.statsCache.Get(ctx); err != nil {
		s.logger.Warn("error reading stats cache", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.Set(ctx, stats); err != nil {
		s.logger.Warn("error writing stats cache", zap.Error(err))
	}
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*model.Statistics, error) {
	total, err := s.responseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("total responses: %w", err)
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.responseRepo.CountRange(ctx, startOfDay, now)
	if err != nil {
		return nil, fmt.Errorf("today responses: %w", err)
	}

	device, err := s.responseRepo.GroupByAnswer(ctx, catalog.DeviceQuestionID)
	if err != nil {
		return nil, err
	}
	age, err := s.responseRepo.GroupByAnswer(ctx, catalog.AgeQuestionID)
	if err != nil {
		return nil, err
	}
	marital, err := s.responseRepo.GroupByAnswer(ctx, catalog.MaritalQuestionID)
	if err != nil {
		return nil, err
	}
	aiUsage, err := s.responseRepo.GroupByAnswer(ctx, catalog.AIAwarenessQuestionID)
	if err != nil {
		return nil, err
	}

	daily, err := s.responseRepo.DailyCounts(ctx, dailySeriesDays)
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{
		TotalResponses: total,
		TodayResponses: today,
		DeviceStats:    make([]model.DeviceStat, 0, len(device)),
		AgeStats:       make([]model.AgeStat, 0, len(age)),
		GenderStats:    make([]model.GenderStat, 0, len(marital)),
		// No region question in the current catalog; the dashboard
		// contract still carries the field.
		RegionStats:  []model.RegionStat{},
		AIUsageStats: make([]model.AIUsageStat, 0, len(aiUsage)),
		DailyStats:   daily,
	}
	if stats.DailyStats == nil {
		stats.DailyStats = []model.DailyCount{}
	}
	for _, b := range device {
		stats.DeviceStats = append(stats.DeviceStats, model.DeviceStat{DeviceType: b.Value, Count: b.Count})
	}
	for _, b := range age {
		stats.AgeStats = append(stats.AgeStats, model.AgeStat{AgeGroup: b.Value, Count: b.Count})
	}
	for _, b := range marital {
		stats.GenderStats = append(stats.GenderStats, model.GenderStat{Gender: b.Value, Count: b.Count})
	}
	for _, b := range aiUsage {
		stats.AIUsageStats = append(stats.AIUsageStats, model.AIUsageStat{AIAgentAwareness: b.Value, Count: b.Count})
	}
	return stats, nil
}

// Distribution generalizes the dashboard grouping to any question with
// declared options: full per-option counts with percentage of total.
// Declared options appear even at zero; stray stored values are appended.
func (s *StatsService) Distribution(ctx context.Context, questionID int) (*model.Distribution, error) {
	question, ok := catalog.ByID(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", model.ErrUnknownQuestion, questionID)
	}
	if !question.HasOptions() {
		return nil, fmt.Errorf("%w: question %d", ErrNoDistribution, questionID)
	}

	buckets, err := s.responseRepo.GroupByAnswer(ctx, questionID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(buckets))
	var total int64
	for _, b := range buckets {
		counts[b.Value] = b.Count
		total += b.Count
	}

	dist := &model.Distribution{
		QuestionID: question.ID,
		Question:   question.Text,
		QuestionEn: question.TextEn,
		Total:      total,
		Items:      make([]model.DistributionItem, 0, len(question.Options)),
	}

	for _, opt := range question.Options {
		count := counts[opt.Value]
		delete(counts, opt.Value)
		dist.Items = append(dist.Items, model.DistributionItem{
			Value:      opt.Value,
			Label:      opt.Label,
			LabelEn:    opt.LabelEn,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	for _, b := range buckets {
		if count, ok := counts[b.Value]; ok {
			dist.Items = append(dist.Items, model.DistributionItem{
				Value:      b.Value,
				Label:      b.Value,
				Count:      count,
				Percentage: percentage(count, total),
			})
		}
	}
	return dist, nil
}

// percentage rounds to one decimal place; zero total yields zero
func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
