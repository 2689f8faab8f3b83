package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/pkg/logger"
)

// ResponseRepo handles the response store: one immutable document per
// submission, answers kept as a structured sub-document keyed by question id.
type ResponseRepo interface {
	Insert(ctx context.Context, response *model.Response) (string, error)
	List(ctx context.Context) ([]*model.Response, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*model.Response, error)
	Count(ctx context.Context) (int64, error)
	CountRange(ctx context.Context, start, end time.Time) (int64, error)
	GroupByAnswer(ctx context.Context, questionID int) ([]model.Bucket, error)
	DailyCounts(ctx context.Context, days int) ([]model.DailyCount, error)
	EnsureIndexes(ctx context.Context) error
}

type responseRepo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database, log *logger.Logger) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
		logger:     log,
	}
}

// responseDoc is the stored layout. Answers stay a raw document so a
// malformed record can be recovered from the raw payload instead of
// failing the whole listing.
type responseDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	IPAddress  string             `bson:"ipAddress,omitempty"`
	UserAgent  string             `bson:"userAgent,omitempty"`
	Answers    bson.M             `bson:"answers"`
	RawPayload string             `bson:"rawPayload,omitempty"`
}

// EnsureIndexes creates the createdAt and answers indexes the aggregation
// queries rely on (wildcard index mirrors a document-column GIN index).
func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "answers.$**", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create response indexes: %w", err)
	}
	return nil
}

// Insert appends exactly one response document. Single-document writes are
// atomic; there is no partial-write state to clean up.
func (r *responseRepo) Insert(ctx context.Context, response *model.Response) (string, error) {
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}

	doc := responseDoc{
		CreatedAt:  response.CreatedAt,
		IPAddress:  response.IPAddress,
		UserAgent:  response.UserAgent,
		Answers:    bson.M(response.Answers.ToDocument()),
		RawPayload: response.RawPayload,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("error insert response", zap.Error(err))
		return "", fmt.Errorf("insert response: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	response.ID = oid.Hex()
	return response.ID, nil
}

func (r *responseRepo) List(ctx context.Context) ([]*model.Response, error) {
	return r.find(ctx, bson.M{})
}

// ListRange returns responses created inside [start, end], newest first
func (r *responseRepo) ListRange(ctx context.Context, start, end time.Time) ([]*model.Response, error) {
	return r.find(ctx, bson.M{
		"createdAt": bson.M{"$gte": start, "$lte": end},
	})
}

func (r *responseRepo) find(ctx context.Context, filter bson.M) ([]*model.Response, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find responses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []responseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}

	responses := make([]*model.Response, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, r.toResponse(doc))
	}
	return responses, nil
}

func (r *responseRepo) toResponse(doc responseDoc) *model.Response {
	return &model.Response{
		ID:         doc.ID.Hex(),
		CreatedAt:  doc.CreatedAt,
		IPAddress:  doc.IPAddress,
		UserAgent:  doc.UserAgent,
		Answers:    r.decodeAnswers(doc),
		RawPayload: doc.RawPayload,
	}
}

// decodeAnswers rebuilds the answer set from the stored document, falling
// back to the raw submission payload when the document is unreadable. A
// record whose raw payload is also unreadable surfaces with an empty set;
// a bad row never fails the listing.
func (r *responseRepo) decodeAnswers(doc responseDoc) model.AnswerSet {
	set, err := model.AnswerSetFromDocument(doc.Answers)
	if err == nil {
		return set
	}
	r.logger.Warn("malformed answers document, recovering from raw payload",
		zap.String("response_id", doc.ID.Hex()),
		zap.Error(err))

	set, rawErr := answersFromRawPayload(doc.RawPayload)
	if rawErr != nil {
		r.logger.Error("raw payload recovery failed",
			zap.String("response_id", doc.ID.Hex()),
			zap.Error(rawErr))
		return model.AnswerSet{}
	}
	return set
}

// answersFromRawPayload parses the original submission JSON kept at write
// time and extracts its answers field.
func answersFromRawPayload(raw string) (model.AnswerSet, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty raw payload")
	}
	var payload struct {
		Answers model.AnswerSet `json:"answers"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse raw payload: %w", err)
	}
	if payload.Answers == nil {
		return model.AnswerSet{}, nil
	}
	return payload.Answers, nil
}

func (r *responseRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *responseRepo) CountRange(ctx context.Context, start, end time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": start, "$lte": end},
	})
}

// GroupByAnswer counts responses per distinct value at one question id,
// skipping responses without that key. Multi-select answers contribute one
// count per selected value ($unwind passes scalars through unchanged).
func (r *responseRepo) GroupByAnswer(ctx context.Context, questionID int) ([]model.Bucket, error) {
	field := "answers." + strconv.Itoa(questionID)
	pipeline := []bson.M{
		{"$match": bson.M{field: bson.M{"$exists": true}}},
		{"$project": bson.M{"value": "$" + field}},
		{"$unwind": "$value"},
		{"$group": bson.M{"_id": "$value", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("error group by answer",
			zap.Int("question_id", questionID),
			zap.Error(err))
		return nil, fmt.Errorf("group by answer %d: %w", questionID, err)
	}
	defer cursor.Close(ctx)

	var buckets []model.Bucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode buckets: %w", err)
	}
	return buckets, nil
}

// DailyCounts groups submissions by calendar date, most recent days first
func (r *responseRepo) DailyCounts(ctx context.Context, days int) ([]model.DailyCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": -1}},
		{"$limit": days},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("error daily counts", zap.Error(err))
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []model.DailyCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode daily counts: %w", err)
	}
	return counts, nil
}
