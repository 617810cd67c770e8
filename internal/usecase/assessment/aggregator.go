package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-coach/internal/usecase/errors"
	"github.com/johnquangdev/interview-coach/internal/usecase/scoring"
)

const (
	defaultTrendDays = 30
	maxTrendDays     = 365
	topFeedbackItems = 3
)

// BatchAssess scores every response sequentially. Short transcripts are skipped,
// an evaluation failure skips only that response, a persistence failure stops the batch.
func (s *AssessmentService) BatchAssess(ctx context.Context, reqs []*entities.AssessmentRequest) (*BatchResult, error) {
	if len(reqs) == 0 {
		return nil, usecaseErrors.ErrEmptyBatch
	}
	if len(reqs) > maxBatchSize {
		return nil, fmt.Errorf("%w: %d responses (maximum: %d)", usecaseErrors.ErrBatchTooLarge, len(reqs), maxBatchSize)
	}

	result := &BatchResult{
		Assessments: make([]*entities.CommunicationAssessment, 0, len(reqs)),
		Skipped:     []string{},
	}

	for _, req := range reqs {
		if req == nil || !IsAssessable(req.Transcript) {
			if req != nil {
				result.Skipped = append(result.Skipped, req.QuestionID)
			}
			continue
		}

		assessment, err := s.Assess(ctx, req)
		if err != nil {
			if errors.Is(err, usecaseErrors.ErrEvaluationFailed) || errors.Is(err, usecaseErrors.ErrInvalidInput) {
				if s.logger != nil {
					s.logger.Warn("⚠️ Batch response skipped",
						zap.String("question_id", req.QuestionID),
						zap.Error(err),
					)
				}
				result.Skipped = append(result.Skipped, req.QuestionID)
				continue
			}
			return nil, err
		}
		result.Assessments = append(result.Assessments, assessment)
	}

	result.Summary = summarizeBatch(result.Assessments)
	return result, nil
}

func summarizeBatch(assessments []*entities.CommunicationAssessment) BatchSummary {
	summary := BatchSummary{
		TotalResponses:  len(assessments),
		TopStrengths:    []string{},
		TopImprovements: []string{},
	}
	if len(assessments) == 0 {
		summary.OverallFeedback = "No responses were long enough to assess."
		return summary
	}

	var overallSum float64
	var subscoreSums entities.Subscores
	strengths := newTally()
	improvements := newTally()
	for _, a := range assessments {
		overallSum += a.OverallScore
		for _, d := range entities.Dimensions {
			subscoreSums.Set(d, subscoreSums.Get(d)+a.Subscores.Get(d))
		}
		strengths.add(a.Strengths...)
		improvements.add(a.Improvements...)
	}

	n := float64(len(assessments))
	summary.AverageScore = scoring.Round1(overallSum / n)
	for _, d := range entities.Dimensions {
		summary.AverageSubscores.Set(d, scoring.Round1(subscoreSums.Get(d)/n))
	}
	summary.TopStrengths = strengths.top(topFeedbackItems)
	summary.TopImprovements = improvements.top(topFeedbackItems)

	strongest, weakest := extremeDimensions(summary.AverageSubscores)
	summary.OverallFeedback = fmt.Sprintf(
		"Across %d responses you averaged %.1f/10 (%s). Your strongest area was %s; focus next on %s, your lowest-scoring dimension.",
		len(assessments),
		summary.AverageScore,
		strings.ReplaceAll(string(scoring.ScoreLevelFor(summary.AverageScore)), "_", " "),
		strongest.Label(),
		weakest.Label(),
	)
	return summary
}

// tally counts statements, remembering first-seen order for ties
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(items ...string) {
	for _, item := range items {
		if _, seen := t.counts[item]; !seen {
			t.order = append(t.order, item)
		}
		t.counts[item]++
	}
}

func (t *tally) top(n int) []string {
	ranked := append([]string{}, t.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.counts[ranked[i]] > t.counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// extremeDimensions returns the highest and lowest dimension; ties keep canonical order
func extremeDimensions(s entities.Subscores) (strongest, weakest entities.Dimension) {
	strongest, weakest = entities.Dimensions[0], entities.Dimensions[0]
	for _, d := range entities.Dimensions[1:] {
		if s.Get(d) > s.Get(strongest) {
			strongest = d
		}
		if s.Get(d) < s.Get(weakest) {
			weakest = d
		}
	}
	return strongest, weakest
}

// GetUserAverages computes per-dimension means over completed assessments.
// A user without completed assessments gets HasData=false, not an error.
func (s *AssessmentService) GetUserAverages(ctx context.Context, userID string) (*UserAverages, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", usecaseErrors.ErrInvalidInput)
	}

	if cached := s.cachedAverages(ctx, userID); cached != nil {
		return cached, nil
	}

	agg, err := s.repo.UserScoreAggregate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user scores: %w", err)
	}

	averages := &UserAverages{UserID: userID}
	if agg != nil && agg.Count > 0 {
		raw := agg.Subscores()
		averages.HasData = true
		averages.TotalAssessments = agg.Count
		averages.AverageOverall = scoring.Round1(agg.AvgOverall)
		for _, d := range entities.Dimensions {
			averages.Averages.Set(d, scoring.Round1(raw.Get(d)))
		}
		averages.Strongest, averages.Weakest = extremeDimensions(raw)
	}

	s.storeAverages(ctx, averages)
	return averages, nil
}

// GetImprovementTrends groups completed assessments by UTC day over the last
// days calendar days, oldest first
func (s *AssessmentService) GetImprovementTrends(ctx context.Context, userID string, days int) ([]TrendPoint, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", usecaseErrors.ErrInvalidInput)
	}
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	since := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(days - 1))
	rows, err := s.repo.DailyScores(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get improvement trends: %w", err)
	}

	points := make([]TrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TrendPoint{
			Date:        row.Day,
			Count:       row.Count,
			MeanOverall: scoring.Round1(row.AvgOverall),
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func averagesCacheKey(userID string) string {
	return fmt.Sprintf("assessment:user:%s:averages", userID)
}

func (s *AssessmentService) cachedAverages(ctx context.Context, userID string) *UserAverages {
	if s.cache == nil {
		return nil
	}
	value, ok, err := s.cache.Get(ctx, averagesCacheKey(userID))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("averages cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	if !ok {
		return nil
	}
	var averages UserAverages
	if err := json.Unmarshal([]byte(value), &averages); err != nil {
		return nil
	}
	return &averages
}

func (s *AssessmentService) storeAverages(ctx context.Context, averages *UserAverages) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(averages)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, averagesCacheKey(averages.UserID), string(b), s.averagesTTL); err != nil && s.logger != nil {
		s.logger.Warn("averages cache write failed", zap.String("user_id", averages.UserID), zap.Error(err))
	}
}

func (s *AssessmentService) invalidateAverages(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, averagesCacheKey(userID)); err != nil && s.logger != nil {
		s.logger.Warn("averages cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
