package legacy

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andy00614/sury-questions/pkg/logger"
)

func TestResponse_AnswerSet(t *testing.T) {
	row := Response{
		AIAgentAwareness: "heard_used",
		AIUsagePurpose:   `["work_study","entertainment"]`,
		DeviceType:       "android",
		ScreenTime:       8,
		AgeGroup:         "25_34",
		Gender:           "female",
	}

	set := row.AnswerSet()

	v, ok := set.Get(1)
	require.True(t, ok)
	assert.Equal(t, "heard_used", v.Value())

	purpose, ok := set.Get(2)
	require.True(t, ok)
	assert.Equal(t, []string{"work_study", "entertainment"}, purpose.Values())

	device, ok := set.Get(4)
	require.True(t, ok)
	assert.Equal(t, "android", device.Value())

	screen, ok := set.Get(5)
	require.True(t, ok)
	assert.Equal(t, "8", screen.Value())

	age, ok := set.Get(16)
	require.True(t, ok)
	assert.Equal(t, "25_34", age.Value())

	gender, ok := set.Get(17)
	require.True(t, ok)
	assert.Equal(t, "female", gender.Value())
}

func TestResponse_AnswerSet_SkipsEmptyColumns(t *testing.T) {
	set := Response{DeviceType: "ios"}.AnswerSet()

	assert.Len(t, set, 1)
	_, ok := set.Get(1)
	assert.False(t, ok)
}

func TestResponse_AnswerSet_DropsMalformedArrayColumn(t *testing.T) {
	row := Response{
		DeviceType:     "ios",
		AIUsagePurpose: `not a json array`,
	}

	set := row.AnswerSet()

	_, ok := set.Get(2)
	assert.False(t, ok, "unparseable multi-select column is dropped, not corrupted")
	_, ok = set.Get(4)
	assert.True(t, ok)
}

func TestStore_ReadsLegacyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`
		CREATE TABLE survey_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ip_address TEXT,
			user_agent TEXT,
			ai_agent_awareness TEXT,
			ai_usage_purpose TEXT,
			ai_usage_frequency TEXT,
			device_type TEXT,
			screen_time INTEGER,
			most_used_app TEXT,
			video_platforms TEXT,
			video_watch_time INTEGER,
			non_video_entertainment TEXT,
			social_platforms TEXT,
			social_media_time INTEGER,
			content_preference TEXT,
			news_sources TEXT,
			news_frequency TEXT,
			knowledge_acquisition TEXT,
			age_group TEXT,
			gender TEXT,
			region TEXT,
			occupation TEXT,
			income_level TEXT,
			raw_data TEXT
		)
	`).Error)

	created := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&Response{
		CreatedAt:  created,
		IPAddress:  "10.0.0.1",
		DeviceType: "android",
		AgeGroup:   "18_24",
	}).Error)
	require.NoError(t, db.Create(&Response{
		CreatedAt:  created.Add(time.Hour),
		DeviceType: "ios",
	}).Error)

	store, err := Open(path, logger.Get())
	require.NoError(t, err)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	rows, err := store.All()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "android", rows[0].DeviceType)
	assert.Equal(t, "10.0.0.1", rows[0].IPAddress)
	assert.Equal(t, "ios", rows[1].DeviceType)
}
