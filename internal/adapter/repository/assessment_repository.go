package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/domain/repositories"
)

var _ repositories.AssessmentRepository = (*AssessmentRepository)(nil)

// completedColumns are written when an assessment completes
var completedColumns = []string{
	"overall_score",
	"fluency",
	"clarity_structure",
	"grammar_vocabulary",
	"pronunciation",
	"tone_confidence",
	"question_relevance",
	"strengths",
	"improvements",
	"summary_comment",
	"score_level",
	"status",
	"evaluation_source",
	"provider",
	"processing_time_ms",
	"error_message",
	"completed_at",
	"updated_at",
}

// AssessmentRepository handles communication assessment data operations on PostgreSQL
type AssessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Create creates a new assessment
func (r *AssessmentRepository) Create(ctx context.Context, a *entities.CommunicationAssessment) error {
	if a == nil {
		return errors.New("assessment cannot be nil")
	}
	return r.db.WithContext(ctx).Create(a).Error
}

// MarkProcessing moves a pending assessment to processing
func (r *AssessmentRepository) MarkProcessing(ctx context.Context, a *entities.CommunicationAssessment) error {
	result := r.db.WithContext(ctx).
		Model(&entities.CommunicationAssessment{}).
		Where("id = ? AND status = ?", a.ID, entities.AssessmentStatusPending).
		Updates(map[string]interface{}{
			"status":     entities.AssessmentStatusProcessing,
			"started_at": a.StartedAt,
			"updated_at": a.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrAssessmentNotFound
	}
	return nil
}

// Complete stores the scoring fields. The status guard keeps a completed record immutable.
func (r *AssessmentRepository) Complete(ctx context.Context, a *entities.CommunicationAssessment) error {
	result := r.db.WithContext(ctx).
		Model(&entities.CommunicationAssessment{}).
		Where("id = ? AND status = ?", a.ID, entities.AssessmentStatusProcessing).
		Select(completedColumns).
		Updates(a)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrAssessmentImmutable
	}
	return nil
}

// MarkFailed marks an unfinished assessment as failed
func (r *AssessmentRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.CommunicationAssessment{}).
		Where("id = ? AND status <> ?", id, entities.AssessmentStatusCompleted).
		Updates(map[string]interface{}{
			"status":        entities.AssessmentStatusFailed,
			"error_message": errMsg,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrAssessmentImmutable
	}
	return nil
}

// FindByID retrieves an assessment by ID
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*entities.CommunicationAssessment, error) {
	var a entities.CommunicationAssessment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByUser retrieves a user's assessments, newest first
func (r *AssessmentRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.CommunicationAssessment, error) {
	var assessments []*entities.CommunicationAssessment
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// FindByInterview retrieves the assessments of an interview, oldest first
func (r *AssessmentRepository) FindByInterview(ctx context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error) {
	var assessments []*entities.CommunicationAssessment
	query := r.db.WithContext(ctx).Where("interview_id = ?", interviewID)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Order("created_at ASC").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// FindByQuestion retrieves assessments for a question, newest first
func (r *AssessmentRepository) FindByQuestion(ctx context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error) {
	var assessments []*entities.CommunicationAssessment
	if limit <= 0 {
		limit = 100
	}
	if err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

// UserScoreAggregate averages the completed assessments of a user
func (r *AssessmentRepository) UserScoreAggregate(ctx context.Context, userID string) (*repositories.ScoreAggregate, error) {
	var agg repositories.ScoreAggregate
	err := r.db.WithContext(ctx).
		Model(&entities.CommunicationAssessment{}).
		Select(`COUNT(*) AS count,
			COALESCE(AVG(overall_score), 0) AS avg_overall,
			COALESCE(AVG(fluency), 0) AS avg_fluency,
			COALESCE(AVG(clarity_structure), 0) AS avg_clarity_structure,
			COALESCE(AVG(grammar_vocabulary), 0) AS avg_grammar_vocabulary,
			COALESCE(AVG(pronunciation), 0) AS avg_pronunciation,
			COALESCE(AVG(tone_confidence), 0) AS avg_tone_confidence,
			COALESCE(AVG(question_relevance), 0) AS avg_question_relevance`).
		Where("user_id = ? AND status = ?", userID, entities.AssessmentStatusCompleted).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// DailyScores groups completed assessments by UTC calendar day, oldest first
func (r *AssessmentRepository) DailyScores(ctx context.Context, userID string, since time.Time) ([]repositories.DailyScore, error) {
	rows := []repositories.DailyScore{}
	err := r.db.WithContext(ctx).
		Model(&entities.CommunicationAssessment{}).
		Select(`TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*) AS count,
			AVG(overall_score) AS avg_overall`).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, entities.AssessmentStatusCompleted, since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
