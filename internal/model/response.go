package model

import "time"

// SubmissionMeta is the request metadata captured alongside a submission
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

// Response is one persisted, immutable submission. The answer set is stored
// as a structured document; RawPayload keeps the original submission JSON so
// records survive future schema changes.
type Response struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
	IPAddress  string    `json:"ip_address,omitempty" bson:"ipAddress,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty" bson:"userAgent,omitempty"`
	Answers    AnswerSet `json:"answers" bson:"-"`
	RawPayload string    `json:"raw_data,omitempty" bson:"rawPayload,omitempty"`
}
