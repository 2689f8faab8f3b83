package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andy00614/sury-questions/internal/catalog"
	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/service"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// MockQuestionRepo is a mock implementation of repository.QuestionRepo
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepo) EnsureSeeded(ctx context.Context, questions []model.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepo) QuestionsWithOptions(ctx context.Context) ([]model.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

// MockResponseRepo is a mock implementation of repository.ResponseRepo
type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) Insert(ctx context.Context, response *model.Response) (string, error) {
	args := m.Called(ctx, response)
	return args.String(0), args.Error(1)
}

func (m *MockResponseRepo) List(ctx context.Context) ([]*model.Response, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Response), args.Error(1)
}

func (m *MockResponseRepo) ListRange(ctx context.Context, start, end time.Time) ([]*model.Response, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Response), args.Error(1)
}

func (m *MockResponseRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepo) CountRange(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepo) GroupByAnswer(ctx context.Context, questionID int) ([]model.Bucket, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bucket), args.Error(1)
}

func (m *MockResponseRepo) DailyCounts(ctx context.Context, days int) ([]model.DailyCount, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyCount), args.Error(1)
}

func (m *MockResponseRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatsCache is a mock implementation of cache.StatsCache
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context) (*model.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Statistics), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, stats *model.Statistics) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupSurveyHandler() (*SurveyHandler, *MockQuestionRepo, *MockResponseRepo, *MockStatsCache) {
	questionRepo := &MockQuestionRepo{}
	responseRepo := &MockResponseRepo{}
	statsCache := &MockStatsCache{}
	svc := service.NewSurveyService(questionRepo, responseRepo, statsCache, logger.Get())
	return NewSurveyHandler(svc), questionRepo, responseRepo, statsCache
}

func TestSurveyHandler_Submit_Success(t *testing.T) {
	h, _, responseRepo, statsCache := setupSurveyHandler()

	var saved *model.Response
	responseRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Response) }).
		Return("abc123", nil)
	statsCache.On("Invalidate", mock.Anything).Return(nil)

	body := `{"answers":{"1":"heard_used","2":["work_study","entertainment"],"4":"ios"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/survey", strings.NewReader(body))
	req.Header.Set("User-Agent", "survey-test/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success      bool   `json:"success"`
		SubmissionID string `json:"submissionId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "survey_abc123", resp.SubmissionID)

	require.NotNil(t, saved)
	assert.Equal(t, "203.0.113.7", saved.IPAddress)
	assert.Equal(t, "survey-test/1.0", saved.UserAgent)
}

func TestSurveyHandler_Submit_InvalidBody(t *testing.T) {
	h, _, responseRepo, _ := setupSurveyHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/survey", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	responseRepo.AssertNotCalled(t, "Insert")
}

func TestSurveyHandler_Submit_InvalidAnswerValue(t *testing.T) {
	h, _, responseRepo, _ := setupSurveyHandler()

	body := `{"answers":{"4":"windows"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/survey", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	responseRepo.AssertNotCalled(t, "Insert")
}

func TestSurveyHandler_Submit_StoreFailure(t *testing.T) {
	h, _, responseRepo, _ := setupSurveyHandler()

	responseRepo.On("Insert", mock.Anything, mock.Anything).
		Return("", errors.New("connection reset"))

	body := `{"answers":{"1":"heard_used"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/survey", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "提交失败，请重试", resp.Message)
}

func TestSurveyHandler_Questions(t *testing.T) {
	h, questionRepo, _, _ := setupSurveyHandler()

	questionRepo.On("QuestionsWithOptions", mock.Anything).Return(catalog.Questions(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/survey/questions", nil)
	rec := httptest.NewRecorder()

	h.Questions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success   bool             `json:"success"`
		Questions []model.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Questions, 17)
	assert.NotEmpty(t, resp.Questions[0].Options)
}

func TestSurveyHandler_Questions_Failure(t *testing.T) {
	h, questionRepo, _, _ := setupSurveyHandler()

	questionRepo.On("QuestionsWithOptions", mock.Anything).Return(nil, errors.New("down"))

	req := httptest.NewRequest(http.MethodGet, "/api/survey/questions", nil)
	rec := httptest.NewRecorder()

	h.Questions(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSurveyHandler_Stats(t *testing.T) {
	h, _, responseRepo, _ := setupSurveyHandler()

	responseRepo.On("Count", mock.Anything).Return(int64(2), nil)
	responseRepo.On("List", mock.Anything).Return([]*model.Response{
		{ID: "b", Answers: model.AnswerSet{"4": model.Single("ios")}},
		{ID: "a", Answers: model.AnswerSet{"4": model.Single("android")}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/survey/stats", nil)
	rec := httptest.NewRecorder()

	h.Stats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success   bool              `json:"success"`
		Count     int64             `json:"count"`
		Responses []json.RawMessage `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Count)
	assert.Len(t, resp.Responses, 2)
}
