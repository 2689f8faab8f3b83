// Package legacy reads the retired fixed-column sqlite response table. One
// column per question made every catalog change a schema change, which is
// why the document layout replaced it; this package exists only as the
// migration source and never writes.
package legacy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// Response mirrors the legacy survey_responses row. The column set belongs
// to the older 20-question catalog; multi-select columns hold JSON array
// strings, time columns hold integers.
type Response struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	IPAddress string    `gorm:"column:ip_address"`
	UserAgent string    `gorm:"column:user_agent"`

	AIAgentAwareness string `gorm:"column:ai_agent_awareness"`
	AIUsagePurpose   string `gorm:"column:ai_usage_purpose"`
	AIUsageFrequency string `gorm:"column:ai_usage_frequency"`

	DeviceType  string `gorm:"column:device_type"`
	ScreenTime  int    `gorm:"column:screen_time"`
	MostUsedApp string `gorm:"column:most_used_app"`

	VideoPlatforms        string `gorm:"column:video_platforms"`
	VideoWatchTime        int    `gorm:"column:video_watch_time"`
	NonVideoEntertainment string `gorm:"column:non_video_entertainment"`

	SocialPlatforms   string `gorm:"column:social_platforms"`
	SocialMediaTime   int    `gorm:"column:social_media_time"`
	ContentPreference string `gorm:"column:content_preference"`

	NewsSources          string `gorm:"column:news_sources"`
	NewsFrequency        string `gorm:"column:news_frequency"`
	KnowledgeAcquisition string `gorm:"column:knowledge_acquisition"`

	AgeGroup    string `gorm:"column:age_group"`
	Gender      string `gorm:"column:gender"`
	Region      string `gorm:"column:region"`
	Occupation  string `gorm:"column:occupation"`
	IncomeLevel string `gorm:"column:income_level"`

	RawData string `gorm:"column:raw_data"`
}

// TableName keeps gorm on the legacy table
func (Response) TableName() string { return "survey_responses" }

// AnswerSet maps the fixed columns back to answer keys of the old catalog.
// Empty columns are omitted; a multi-select column that fails to parse as a
// JSON array is dropped rather than corrupting the set.
func (r Response) AnswerSet() model.AnswerSet {
	set := model.AnswerSet{}

	putSingle := func(id int, v string) {
		if v != "" {
			set.Set(id, model.Single(v))
		}
	}
	putInt := func(id, v int) {
		if v != 0 {
			set.Set(id, model.Single(strconv.Itoa(v)))
		}
	}
	putMultiple := func(id int, column string) {
		if column == "" {
			return
		}
		var values []string
		if err := json.Unmarshal([]byte(column), &values); err != nil {
			return
		}
		if len(values) > 0 {
			set.Set(id, model.Multiple(values...))
		}
	}

	putSingle(1, r.AIAgentAwareness)
	putMultiple(2, r.AIUsagePurpose)
	putSingle(3, r.AIUsageFrequency)
	putSingle(4, r.DeviceType)
	putInt(5, r.ScreenTime)
	putMultiple(6, r.MostUsedApp)
	putMultiple(7, r.VideoPlatforms)
	putInt(8, r.VideoWatchTime)
	putMultiple(9, r.NonVideoEntertainment)
	putMultiple(10, r.SocialPlatforms)
	putInt(11, r.SocialMediaTime)
	putMultiple(12, r.ContentPreference)
	putMultiple(13, r.NewsSources)
	putSingle(14, r.NewsFrequency)
	putMultiple(15, r.KnowledgeAcquisition)
	putSingle(16, r.AgeGroup)
	putSingle(17, r.Gender)
	putSingle(18, r.Region)
	putSingle(19, r.Occupation)
	putSingle(20, r.IncomeLevel)

	return set
}

// Store is a read-only handle on the legacy database file
type Store struct {
	db     *gorm.DB
	logger *logger.Logger
}

// Open opens the legacy sqlite file
func Open(path string, log *logger.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open legacy database %s: %w", path, err)
	}
	return &Store{db: db, logger: log}, nil
}

// Count returns the number of legacy rows
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&Response{}).Count(&count).Error; err != nil {
		s.logger.Error("error count legacy responses", zap.Error(err))
		return 0, fmt.Errorf("count legacy responses: %w", err)
	}
	return count, nil
}

// All returns every legacy row in insertion order
func (s *Store) All() ([]Response, error) {
	var rows []Response
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		s.logger.Error("error load legacy responses", zap.Error(err))
		return nil, fmt.Errorf("load legacy responses: %w", err)
	}
	return rows, nil
}
