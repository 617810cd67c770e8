package assessment

import (
	"context"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

// Service defines the interface for the communication assessment use case
type Service interface {
	// Assess scores one transcript and persists the completed record
	Assess(ctx context.Context, req *entities.AssessmentRequest) (*entities.CommunicationAssessment, error)

	// BatchAssess scores every response of one interview sequentially and summarises them
	BatchAssess(ctx context.Context, reqs []*entities.AssessmentRequest) (*BatchResult, error)

	// GetByID retrieves an assessment by ID
	GetByID(ctx context.Context, id string) (*entities.CommunicationAssessment, error)

	// GetUserHistory retrieves a user's most recent assessments
	GetUserHistory(ctx context.Context, userID string, limit int) ([]*entities.CommunicationAssessment, error)

	// GetUserAverages computes per-dimension means over a user's completed assessments
	GetUserAverages(ctx context.Context, userID string) (*UserAverages, error)

	// GetImprovementTrends groups a user's completed assessments by day
	GetImprovementTrends(ctx context.Context, userID string, days int) ([]TrendPoint, error)

	// GetByInterview retrieves the assessments of one interview
	GetByInterview(ctx context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error)

	// GetByQuestion retrieves the most recent assessments of one question
	GetByQuestion(ctx context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error)
}

// Ensure AssessmentService implements Service interface
var _ Service = (*AssessmentService)(nil)

// BatchResult holds the individual results and their aggregate summary
type BatchResult struct {
	Assessments []*entities.CommunicationAssessment
	// Skipped lists question IDs whose transcripts were too short to score
	Skipped []string
	Summary BatchSummary
}

// BatchSummary aggregates the scored responses of a batch
type BatchSummary struct {
	AverageScore     float64
	AverageSubscores entities.Subscores
	TotalResponses   int
	TopStrengths     []string
	TopImprovements  []string
	OverallFeedback  string
}

// UserAverages is the per-user aggregate view. HasData is false when the user
// has no completed assessments.
type UserAverages struct {
	UserID           string             `json:"user_id"`
	HasData          bool               `json:"has_data"`
	TotalAssessments int64              `json:"total_assessments"`
	AverageOverall   float64            `json:"average_overall"`
	Averages         entities.Subscores `json:"averages"`
	Strongest        entities.Dimension `json:"strongest,omitempty"`
	Weakest          entities.Dimension `json:"weakest,omitempty"`
}

// TrendPoint is one day of the improvement trend
type TrendPoint struct {
	Date        string
	Count       int64
	MeanOverall float64
}
