package assessment

import (
	"time"
)

// SubscoresResponse holds the six dimension ratings
type SubscoresResponse struct {
	Fluency           float64 `json:"fluency"`
	ClarityStructure  float64 `json:"clarity_structure"`
	GrammarVocabulary float64 `json:"grammar_vocabulary"`
	Pronunciation     float64 `json:"pronunciation"`
	ToneConfidence    float64 `json:"tone_confidence"`
	QuestionRelevance float64 `json:"question_relevance"`
}

// AssessmentResponse represents a communication assessment
type AssessmentResponse struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	InterviewID      *string           `json:"interview_id,omitempty"`
	QuestionID       string            `json:"question_id"`
	QuestionText     string            `json:"question_text,omitempty"`
	AssessmentType   string            `json:"assessment_type"`
	Status           string            `json:"status"`
	OverallScore     float64           `json:"overall_score"`
	ScoreLevel       string            `json:"score_level,omitempty"`
	Subscores        SubscoresResponse `json:"subscores"`
	Strengths        []string          `json:"strengths"`
	Improvements     []string          `json:"improvements"`
	SummaryComment   string            `json:"summary_comment"`
	EvaluationSource string            `json:"evaluation_source,omitempty"`
	Provider         string            `json:"provider,omitempty"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	ErrorMessage     *string           `json:"error_message,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// BatchSummaryResponse aggregates the scored responses of a batch
type BatchSummaryResponse struct {
	AverageScore     float64           `json:"average_score"`
	AverageSubscores SubscoresResponse `json:"average_subscores"`
	TotalResponses   int               `json:"total_responses"`
	TopStrengths     []string          `json:"top_strengths"`
	TopImprovements  []string          `json:"top_improvements"`
	OverallFeedback  string            `json:"overall_feedback"`
}

// BatchAssessResponse represents the result of a batch assessment
type BatchAssessResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Skipped     []string              `json:"skipped_question_ids"`
	Summary     BatchSummaryResponse  `json:"summary"`
}

// HistoryResponse lists a user's recent assessments
type HistoryResponse struct {
	UserID      string                `json:"user_id"`
	Assessments []*AssessmentResponse `json:"assessments"`
	Count       int                   `json:"count"`
}

// AveragesResponse represents a user's per-dimension averages
type AveragesResponse struct {
	UserID           string            `json:"user_id"`
	HasData          bool              `json:"has_data"`
	TotalAssessments int64             `json:"total_assessments"`
	AverageOverall   float64           `json:"average_overall"`
	Averages         SubscoresResponse `json:"averages"`
	Strongest        string            `json:"strongest,omitempty"`
	Weakest          string            `json:"weakest,omitempty"`
}

// TrendPointResponse is one day of the improvement trend
type TrendPointResponse struct {
	Date        string  `json:"date"`
	Count       int64   `json:"count"`
	MeanOverall float64 `json:"mean_overall"`
}

// TrendsResponse represents a user's daily score trend
type TrendsResponse struct {
	UserID string               `json:"user_id"`
	Days   int                  `json:"days"`
	Points []TrendPointResponse `json:"points"`
}
