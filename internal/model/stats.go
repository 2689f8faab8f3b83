package model

// Bucket is one group-and-count result over the responses at a question id
type Bucket struct {
	Value string `bson:"_id" json:"value"`
	Count int64  `bson:"count" json:"count"`
}

// DailyCount is the submission count for one calendar day (server-local)
type DailyCount struct {
	Date  string `bson:"_id" json:"date"`
	Count int64  `bson:"count" json:"count"`
}

// Dashboard stat entries carry the field name the admin UI expects,
// so each tracked question gets its own row type.

type DeviceStat struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

type AgeStat struct {
	AgeGroup string `json:"age_group"`
	Count    int64  `json:"count"`
}

type GenderStat struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

type RegionStat struct {
	Region string `json:"region"`
	Count  int64  `json:"count"`
}

type AIUsageStat struct {
	AIAgentAwareness string `json:"ai_agent_awareness"`
	Count            int64  `json:"count"`
}

// Statistics is the fixed dashboard payload
type Statistics struct {
	TotalResponses int64         `json:"totalResponses"`
	TodayResponses int64         `json:"todayResponses"`
	DeviceStats    []DeviceStat  `json:"deviceStats"`
	AgeStats       []AgeStat     `json:"ageStats"`
	GenderStats    []GenderStat  `json:"genderStats"`
	RegionStats    []RegionStat  `json:"regionStats"`
	AIUsageStats   []AIUsageStat `json:"aiUsageStats"`
	DailyStats     []DailyCount  `json:"dailyStats"`
}

// DistributionItem is one option's share of a per-question distribution
type DistributionItem struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	LabelEn    string  `json:"label_en,omitempty"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution is the full per-question chart payload
type Distribution struct {
	QuestionID int                `json:"question_id"`
	Question   string             `json:"question"`
	QuestionEn string             `json:"question_en,omitempty"`
	Total      int64              `json:"total"`
	Items      []DistributionItem `json:"items"`
}
