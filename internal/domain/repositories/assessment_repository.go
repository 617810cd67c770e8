package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

// AssessmentRepository defines persistence operations for communication assessments.
// Implementations return (nil, nil) from lookups that find nothing.
type AssessmentRepository interface {
	// Create inserts a new assessment record
	Create(ctx context.Context, a *entities.CommunicationAssessment) error

	// MarkProcessing moves a pending record to processing
	MarkProcessing(ctx context.Context, a *entities.CommunicationAssessment) error

	// Complete stores scores and feedback. Returns entities.ErrAssessmentImmutable
	// when the record is not in processing state.
	Complete(ctx context.Context, a *entities.CommunicationAssessment) error

	// MarkFailed records the failure message
	MarkFailed(ctx context.Context, id string, errMsg string) error

	// FindByID retrieves an assessment by its ID
	FindByID(ctx context.Context, id string) (*entities.CommunicationAssessment, error)

	// FindByUser retrieves a user's assessments, newest first
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.CommunicationAssessment, error)

	// FindByInterview retrieves assessments of an interview, oldest first.
	// An empty userID matches every user.
	FindByInterview(ctx context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error)

	// FindByQuestion retrieves assessments for a question, newest first
	FindByQuestion(ctx context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error)

	// UserScoreAggregate averages completed assessments of a user
	UserScoreAggregate(ctx context.Context, userID string) (*ScoreAggregate, error)

	// DailyScores groups completed assessments of a user by UTC calendar day
	DailyScores(ctx context.Context, userID string, since time.Time) ([]DailyScore, error)
}

// ScoreAggregate holds raw (unrounded) means over completed assessments
type ScoreAggregate struct {
	Count                int64   `gorm:"column:count" bson:"count"`
	AvgOverall           float64 `gorm:"column:avg_overall" bson:"avg_overall"`
	AvgFluency           float64 `gorm:"column:avg_fluency" bson:"avg_fluency"`
	AvgClarityStructure  float64 `gorm:"column:avg_clarity_structure" bson:"avg_clarity_structure"`
	AvgGrammarVocabulary float64 `gorm:"column:avg_grammar_vocabulary" bson:"avg_grammar_vocabulary"`
	AvgPronunciation     float64 `gorm:"column:avg_pronunciation" bson:"avg_pronunciation"`
	AvgToneConfidence    float64 `gorm:"column:avg_tone_confidence" bson:"avg_tone_confidence"`
	AvgQuestionRelevance float64 `gorm:"column:avg_question_relevance" bson:"avg_question_relevance"`
}

// Subscores returns the per-dimension means as a subscore set
func (a ScoreAggregate) Subscores() entities.Subscores {
	return entities.Subscores{
		Fluency:           a.AvgFluency,
		ClarityStructure:  a.AvgClarityStructure,
		GrammarVocabulary: a.AvgGrammarVocabulary,
		Pronunciation:     a.AvgPronunciation,
		ToneConfidence:    a.AvgToneConfidence,
		QuestionRelevance: a.AvgQuestionRelevance,
	}
}

// DailyScore is one row of the per-day trend
type DailyScore struct {
	Day        string  `gorm:"column:day" bson:"_id"` // YYYY-MM-DD
	Count      int64   `gorm:"column:count" bson:"count"`
	AvgOverall float64 `gorm:"column:avg_overall" bson:"avg_overall"`
}
