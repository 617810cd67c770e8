package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/interview-coach/internal/usecase/errors"
	"github.com/johnquangdev/interview-coach/internal/usecase/scoring"
	"github.com/johnquangdev/interview-coach/pkg/jobcontext"
)

const (
	// MinTranscriptLength is the shortest trimmed transcript, in characters, that is scored
	MinTranscriptLength = 10

	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	maxBatchSize        = 50

	// completeAttempts bounds saves of a scored record on transient store errors
	completeAttempts = 3
)

// Options tunes an AssessmentService. Zero values select defaults.
type Options struct {
	Lexicon     *scoring.Lexicon
	AveragesTTL time.Duration
	JobTimeout  time.Duration
	// RetryDelay is the backoff base between save attempts
	RetryDelay time.Duration
}

// AssessmentService handles communication assessment business logic
type AssessmentService struct {
	repo        repositories.AssessmentRepository
	evaluator   ResultEvaluator
	cache       repositories.CacheStore
	lexicon     *scoring.Lexicon
	averagesTTL time.Duration
	jobTimeout  time.Duration
	retryDelay  time.Duration
	logger      *zap.Logger
}

// NewAssessmentService creates a new assessment service. evaluator and cache may be nil.
func NewAssessmentService(
	repo repositories.AssessmentRepository,
	evaluator ResultEvaluator,
	cache repositories.CacheStore,
	opts Options,
	logger *zap.Logger,
) *AssessmentService {
	if opts.Lexicon == nil {
		opts.Lexicon = scoring.DefaultLexicon()
	}
	if opts.AveragesTTL <= 0 {
		opts.AveragesTTL = 5 * time.Minute
	}
	return &AssessmentService{
		repo:        repo,
		evaluator:   evaluator,
		cache:       cache,
		lexicon:     opts.Lexicon,
		averagesTTL: opts.AveragesTTL,
		jobTimeout:  opts.JobTimeout,
		retryDelay:  opts.RetryDelay,
		logger:      logger,
	}
}

// Assess scores one transcript and persists the completed record
func (s *AssessmentService) Assess(ctx context.Context, req *entities.AssessmentRequest) (*entities.CommunicationAssessment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	assessment := entities.NewCommunicationAssessment(req)
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	assessment.MarkAsProcessing()
	if err := s.repo.MarkProcessing(ctx, assessment); err != nil {
		s.markFailed(ctx, assessment, err.Error())
		return nil, fmt.Errorf("failed to start assessment: %w", err)
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, assessment.ID, string(assessment.AssessmentType), s.jobTimeout)
	defer cancel()

	var result entities.ScoringResult
	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		result = s.evaluate(ctx, req)
		return nil
	})
	if err != nil {
		s.markFailed(ctx, assessment, err.Error())
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrEvaluationFailed, err)
	}

	assessment.MarkAsCompleted(result)
	saveCtx := jobcontext.SetRetryDelay(jobcontext.SetMaxRetries(ctx, completeAttempts), s.retryDelay)
	if err := jobcontext.JobEnd(saveCtx, func(ctx context.Context) error {
		return s.repo.Complete(ctx, assessment)
	}); err != nil {
		if !errors.Is(err, entities.ErrAssessmentImmutable) {
			s.markFailed(ctx, assessment, err.Error())
		}
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	s.invalidateAverages(ctx, assessment.UserID)

	if s.logger != nil {
		s.logger.Info("✅ Assessment completed",
			zap.String("assessment_id", assessment.ID),
			zap.String("user_id", assessment.UserID),
			zap.String("source", string(assessment.EvaluationSource)),
			zap.Float64("overall_score", assessment.OverallScore),
			zap.Int64("processing_time_ms", assessment.ProcessingTimeMs),
		)
	}

	return assessment, nil
}

// evaluate uses the AI result when one is available, else the rule-based pipeline
func (s *AssessmentService) evaluate(ctx context.Context, req *entities.AssessmentRequest) entities.ScoringResult {
	if s.evaluator != nil {
		if r := s.evaluator.Evaluate(ctx, req.QuestionText, req.Transcript); r != nil {
			return entities.ScoringResult{
				OverallScore:   r.OverallScore,
				Subscores:      r.Subscores,
				Strengths:      r.Strengths,
				Improvements:   r.Improvements,
				SummaryComment: r.SummaryComment,
				ScoreLevel:     scoring.ScoreLevelFor(r.OverallScore),
				Source:         entities.EvaluationSourceAI,
				Provider:       r.Provider,
			}
		}
	}

	features := s.lexicon.Extract(req.Transcript, req.AudioFeatures)
	subscores, overall := scoring.CalculateScores(features)
	feedback := scoring.GenerateFeedback(features, subscores, overall)

	return entities.ScoringResult{
		OverallScore:   overall,
		Subscores:      subscores,
		Strengths:      feedback.Strengths,
		Improvements:   feedback.Improvements,
		SummaryComment: feedback.Summary,
		ScoreLevel:     scoring.ScoreLevelFor(overall),
		Source:         entities.EvaluationSourceRuleBased,
	}
}

// markFailed records a failure without the caller's cancellation so the
// record does not stay in processing
func (s *AssessmentService) markFailed(ctx context.Context, assessment *entities.CommunicationAssessment, msg string) {
	assessment.MarkAsFailed(msg)
	if err := s.repo.MarkFailed(context.WithoutCancel(ctx), assessment.ID, msg); err != nil && s.logger != nil {
		s.logger.Error("❌ Failed to mark assessment as failed",
			zap.String("assessment_id", assessment.ID),
			zap.Error(err),
		)
	}
	if s.logger != nil {
		s.logger.Error("❌ Assessment failed",
			zap.String("assessment_id", assessment.ID),
			zap.String("error", msg),
		)
	}
}

// GetByID retrieves an assessment by ID
func (s *AssessmentService) GetByID(ctx context.Context, id string) (*entities.CommunicationAssessment, error) {
	assessment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment == nil {
		return nil, usecaseErrors.ErrAssessmentNotFound
	}
	return assessment, nil
}

// GetUserHistory retrieves a user's most recent assessments, newest first
func (s *AssessmentService) GetUserHistory(ctx context.Context, userID string, limit int) ([]*entities.CommunicationAssessment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", usecaseErrors.ErrInvalidInput)
	}
	assessments, err := s.repo.FindByUser(ctx, userID, historyLimit(limit), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get user history: %w", err)
	}
	return assessments, nil
}

// GetByInterview retrieves the assessments of one interview, oldest first
func (s *AssessmentService) GetByInterview(ctx context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error) {
	if strings.TrimSpace(interviewID) == "" {
		return nil, fmt.Errorf("%w: interview_id is required", usecaseErrors.ErrInvalidInput)
	}
	assessments, err := s.repo.FindByInterview(ctx, interviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview assessments: %w", err)
	}
	return assessments, nil
}

// GetByQuestion retrieves the most recent assessments of one question, newest first
func (s *AssessmentService) GetByQuestion(ctx context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error) {
	if strings.TrimSpace(questionID) == "" {
		return nil, fmt.Errorf("%w: question_id is required", usecaseErrors.ErrInvalidInput)
	}
	assessments, err := s.repo.FindByQuestion(ctx, questionID, historyLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get question assessments: %w", err)
	}
	return assessments, nil
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

func validateRequest(req *entities.AssessmentRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", usecaseErrors.ErrInvalidInput)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", usecaseErrors.ErrInvalidInput)
	}
	if strings.TrimSpace(req.QuestionID) == "" {
		return fmt.Errorf("%w: question_id is required", usecaseErrors.ErrInvalidInput)
	}
	if !IsAssessable(req.Transcript) {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrInvalidInput, usecaseErrors.ErrTranscriptTooShort)
	}
	return nil
}

// IsAssessable reports whether a transcript is long enough to score
func IsAssessable(transcript string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(transcript)) >= MinTranscriptLength
}
