package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AssessmentStatus represents the lifecycle state of a communication assessment
type AssessmentStatus string

const (
	AssessmentStatusPending    AssessmentStatus = "pending"    // Record created, evaluation not started
	AssessmentStatusProcessing AssessmentStatus = "processing" // Evaluation running
	AssessmentStatusCompleted  AssessmentStatus = "completed"  // Scores and feedback fixed
	AssessmentStatusFailed     AssessmentStatus = "failed"     // Evaluation aborted, excluded from aggregates
)

// AssessmentType distinguishes where a transcript came from
type AssessmentType string

const (
	AssessmentTypePractice      AssessmentType = "practice"
	AssessmentTypeInterview     AssessmentType = "interview"
	AssessmentTypeMockInterview AssessmentType = "mock_interview"
)

// IsValid reports whether t is a known assessment type
func (t AssessmentType) IsValid() bool {
	switch t {
	case AssessmentTypePractice, AssessmentTypeInterview, AssessmentTypeMockInterview:
		return true
	}
	return false
}

// ScoreLevel is the coarse bucket derived from the overall score
type ScoreLevel string

const (
	ScoreLevelExcellent        ScoreLevel = "excellent"
	ScoreLevelStrong           ScoreLevel = "strong"
	ScoreLevelAverage          ScoreLevel = "average"
	ScoreLevelNeedsImprovement ScoreLevel = "needs_improvement"
)

// EvaluationSource records which path produced the scores
type EvaluationSource string

const (
	EvaluationSourceAI        EvaluationSource = "ai"
	EvaluationSourceRuleBased EvaluationSource = "rule_based"
)

// AudioFeatures is an optional numeric summary of the spoken answer.
// Every field may be absent.
type AudioFeatures struct {
	SpeakingRate    *float64 `json:"speaking_rate,omitempty" bson:"speaking_rate,omitempty"`       // words per minute
	PauseDuration   *float64 `json:"pause_duration,omitempty" bson:"pause_duration,omitempty"`     // average pause, seconds
	FillerWordCount *int     `json:"filler_word_count,omitempty" bson:"filler_word_count,omitempty"`
	TotalDuration   *float64 `json:"total_duration,omitempty" bson:"total_duration,omitempty"` // seconds
	WordCount       *int     `json:"word_count,omitempty" bson:"word_count,omitempty"`
}

// AssessmentRequest is one scoring job
type AssessmentRequest struct {
	UserID         string
	InterviewID    *string
	QuestionID     string
	QuestionText   string
	Transcript     string
	AudioFeatures  *AudioFeatures
	AssessmentType AssessmentType
}

// CommunicationAssessment is the persisted assessment record
type CommunicationAssessment struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID         string         `json:"user_id" gorm:"type:varchar(64);not null;index:idx_assessments_user_created,priority:1" bson:"user_id"`
	InterviewID    *string        `json:"interview_id,omitempty" gorm:"type:varchar(64);index" bson:"interview_id,omitempty"`
	QuestionID     string         `json:"question_id" gorm:"type:varchar(64);not null;index" bson:"question_id"`
	QuestionText   string         `json:"question_text" gorm:"type:text" bson:"question_text"`
	Transcript     string         `json:"transcript" gorm:"type:text;not null" bson:"transcript"`
	AudioFeatures  *AudioFeatures `json:"audio_features,omitempty" gorm:"type:jsonb;serializer:json" bson:"audio_features,omitempty"`
	AssessmentType AssessmentType `json:"assessment_type" gorm:"type:varchar(32);not null;default:'practice'" bson:"assessment_type"`

	// Scoring results, fixed once completed
	OverallScore   float64                     `json:"overall_score" gorm:"type:numeric(3,1)" bson:"overall_score"`
	Subscores      Subscores                   `json:"subscores" gorm:"embedded" bson:"subscores"`
	Strengths      datatypes.JSONSlice[string] `json:"strengths" gorm:"type:jsonb" bson:"strengths"`
	Improvements   datatypes.JSONSlice[string] `json:"improvements" gorm:"type:jsonb" bson:"improvements"`
	SummaryComment string                      `json:"summary_comment" gorm:"type:text" bson:"summary_comment"`
	ScoreLevel     ScoreLevel                  `json:"score_level,omitempty" gorm:"type:varchar(32)" bson:"score_level,omitempty"`

	// Processing details
	Status           AssessmentStatus `json:"status" gorm:"type:varchar(32);not null;index;default:'pending'" bson:"status"`
	EvaluationSource EvaluationSource `json:"evaluation_source,omitempty" gorm:"type:varchar(32)" bson:"evaluation_source,omitempty"`
	Provider         string           `json:"provider,omitempty" gorm:"type:varchar(64)" bson:"provider,omitempty"`
	ProcessingTimeMs int64            `json:"processing_time_ms" gorm:"type:bigint;default:0" bson:"processing_time_ms"`
	ErrorMessage     *string          `json:"error_message,omitempty" gorm:"type:text" bson:"error_message,omitempty"`

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamptz" bson:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamptz" bson:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index:idx_assessments_user_created,priority:2,sort:desc" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewCommunicationAssessment creates a pending assessment record for a request
func NewCommunicationAssessment(req *AssessmentRequest) *CommunicationAssessment {
	assessmentType := req.AssessmentType
	if !assessmentType.IsValid() {
		assessmentType = AssessmentTypePractice
	}
	now := time.Now().UTC()
	return &CommunicationAssessment{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		InterviewID:    req.InterviewID,
		QuestionID:     req.QuestionID,
		QuestionText:   req.QuestionText,
		Transcript:     req.Transcript,
		AudioFeatures:  req.AudioFeatures,
		AssessmentType: assessmentType,
		Strengths:      datatypes.JSONSlice[string]{},
		Improvements:   datatypes.JSONSlice[string]{},
		Status:         AssessmentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MarkAsProcessing marks the assessment as being evaluated
func (a *CommunicationAssessment) MarkAsProcessing() {
	now := time.Now().UTC()
	a.Status = AssessmentStatusProcessing
	a.StartedAt = &now
	a.UpdatedAt = now
}

// MarkAsCompleted fixes the scoring fields. It is a no-op on a completed record.
func (a *CommunicationAssessment) MarkAsCompleted(result ScoringResult) bool {
	if a.IsCompleted() {
		return false
	}
	now := time.Now().UTC()
	a.OverallScore = result.OverallScore
	a.Subscores = result.Subscores
	a.Strengths = datatypes.JSONSlice[string](append([]string{}, result.Strengths...))
	a.Improvements = datatypes.JSONSlice[string](append([]string{}, result.Improvements...))
	a.SummaryComment = result.SummaryComment
	a.ScoreLevel = result.ScoreLevel
	a.EvaluationSource = result.Source
	a.Provider = result.Provider
	a.Status = AssessmentStatusCompleted
	a.ErrorMessage = nil
	a.CompletedAt = &now
	if a.StartedAt != nil {
		a.ProcessingTimeMs = now.Sub(*a.StartedAt).Milliseconds()
	}
	a.UpdatedAt = now
	return true
}

// MarkAsFailed marks the assessment as failed with an error message. It is a
// no-op on a completed record.
func (a *CommunicationAssessment) MarkAsFailed(errMsg string) bool {
	if a.IsCompleted() {
		return false
	}
	now := time.Now().UTC()
	a.Status = AssessmentStatusFailed
	a.ErrorMessage = &errMsg
	a.UpdatedAt = now
	return true
}

// IsCompleted reports whether scoring fields are fixed
func (a *CommunicationAssessment) IsCompleted() bool {
	return a.Status == AssessmentStatusCompleted
}

// TableName specifies the table name for GORM
func (CommunicationAssessment) TableName() string {
	return "communication_assessments"
}

// ScoringResult is the outcome of either evaluation path before it is persisted
type ScoringResult struct {
	OverallScore   float64
	Subscores      Subscores
	Strengths      []string
	Improvements   []string
	SummaryComment string
	ScoreLevel     ScoreLevel
	Source         EvaluationSource
	Provider       string
}
