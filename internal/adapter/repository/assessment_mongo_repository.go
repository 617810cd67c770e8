package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/domain/repositories"
)

// AssessmentCollection is the MongoDB collection holding assessments
const AssessmentCollection = "communication_assessments"

var _ repositories.AssessmentRepository = (*MongoAssessmentRepository)(nil)

// MongoAssessmentRepository stores assessments in a MongoDB collection
type MongoAssessmentRepository struct {
	coll *mongo.Collection
}

// NewMongoAssessmentRepository creates a repository over db's assessment collection
func NewMongoAssessmentRepository(db *mongo.Database) *MongoAssessmentRepository {
	return &MongoAssessmentRepository{coll: db.Collection(AssessmentCollection)}
}

// EnsureIndexes creates the query indexes if they are missing
func (r *MongoAssessmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, assessmentIndexes())
	if err != nil {
		return fmt.Errorf("failed to create assessment indexes: %w", err)
	}
	return nil
}

func assessmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "interview_id", Value: 1}}},
		{Keys: bson.D{{Key: "question_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}

func (r *MongoAssessmentRepository) Create(ctx context.Context, a *entities.CommunicationAssessment) error {
	if a == nil {
		return errors.New("assessment cannot be nil")
	}
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *MongoAssessmentRepository) MarkProcessing(ctx context.Context, a *entities.CommunicationAssessment) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": a.ID, "status": entities.AssessmentStatusPending},
		bson.M{"$set": bson.M{
			"status":     entities.AssessmentStatusProcessing,
			"started_at": a.StartedAt,
			"updated_at": a.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrAssessmentNotFound
	}
	return nil
}

func (r *MongoAssessmentRepository) Complete(ctx context.Context, a *entities.CommunicationAssessment) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": a.ID, "status": entities.AssessmentStatusProcessing},
		bson.M{"$set": completedFields(a), "$unset": bson.M{"error_message": ""}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrAssessmentImmutable
	}
	return nil
}

func completedFields(a *entities.CommunicationAssessment) bson.M {
	return bson.M{
		"overall_score":      a.OverallScore,
		"subscores":          a.Subscores,
		"strengths":          []string(a.Strengths),
		"improvements":       []string(a.Improvements),
		"summary_comment":    a.SummaryComment,
		"score_level":        a.ScoreLevel,
		"status":             entities.AssessmentStatusCompleted,
		"evaluation_source":  a.EvaluationSource,
		"provider":           a.Provider,
		"processing_time_ms": a.ProcessingTimeMs,
		"completed_at":       a.CompletedAt,
		"updated_at":         a.UpdatedAt,
	}
}

func (r *MongoAssessmentRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": entities.AssessmentStatusCompleted}},
		bson.M{"$set": bson.M{
			"status":        entities.AssessmentStatusFailed,
			"error_message": errMsg,
			"updated_at":    time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entities.ErrAssessmentImmutable
	}
	return nil
}

func (r *MongoAssessmentRepository) FindByID(ctx context.Context, id string) (*entities.CommunicationAssessment, error) {
	var a entities.CommunicationAssessment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MongoAssessmentRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.CommunicationAssessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *MongoAssessmentRepository) FindByInterview(ctx context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error) {
	filter := bson.M{"interview_id": interviewID}
	if userID != "" {
		filter["user_id"] = userID
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *MongoAssessmentRepository) FindByQuestion(ctx context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"question_id": questionID}, opts)
}

func (r *MongoAssessmentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entities.CommunicationAssessment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []*entities.CommunicationAssessment{}
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *MongoAssessmentRepository) UserScoreAggregate(ctx context.Context, userID string) (*repositories.ScoreAggregate, error) {
	cursor, err := r.coll.Aggregate(ctx, averagesPipeline(userID))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []repositories.ScoreAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &repositories.ScoreAggregate{}, nil
	}
	return &rows[0], nil
}

func (r *MongoAssessmentRepository) DailyScores(ctx context.Context, userID string, since time.Time) ([]repositories.DailyScore, error) {
	cursor, err := r.coll.Aggregate(ctx, dailyScoresPipeline(userID, since))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []repositories.DailyScore{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// averagesPipeline groups all completed assessments of a user into one row.
// An empty match yields no row.
func averagesPipeline(userID string) mongo.Pipeline {
	group := bson.D{
		{Key: "_id", Value: nil},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "avg_overall", Value: bson.D{{Key: "$avg", Value: "$overall_score"}}},
	}
	for _, d := range entities.Dimensions {
		group = append(group, bson.E{
			Key:   "avg_" + string(d),
			Value: bson.D{{Key: "$avg", Value: "$subscores." + string(d)}},
		})
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: userID},
			{Key: "status", Value: entities.AssessmentStatusCompleted},
		}}},
		{{Key: "$group", Value: group}},
	}
}

func dailyScoresPipeline(userID string, since time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: userID},
			{Key: "status", Value: entities.AssessmentStatusCompleted},
			{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
				{Key: "timezone", Value: "UTC"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_overall", Value: bson.D{{Key: "$avg", Value: "$overall_score"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
