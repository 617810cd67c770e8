package assessment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/domain/repositories"
	"github.com/johnquangdev/interview-coach/pkg/ai"
)

var errStorageDown = errors.New("storage unavailable")

const (
	shortFillerAnswer = "Um, so, like, I worked on a project"

	structuredAnswer = "First, I joined a team that needed to improve the reliability of a payment service used by thousands of customers every day, and I focused on understanding the failure modes. " +
		"For example, we saw repeated timeouts during peak traffic, which meant that customer orders were delayed and our support team received many complaints from frustrated users each week. " +
		"Next, I designed a caching strategy with my colleagues and helped implement a queue that smoothed the load, while we tracked each metric on a shared dashboard for the whole group. " +
		"Finally, the error rate dropped by more than half within two months, and the team adopted the same approach for other services across the company with great results."
)

func newRequest(userID, questionID, transcript string) *entities.AssessmentRequest {
	return &entities.AssessmentRequest{
		UserID:       userID,
		QuestionID:   questionID,
		QuestionText: "Tell me about a project you are proud of.",
		Transcript:   transcript,
	}
}

// seedCompleted stores a completed record directly, bypassing the lifecycle
func (r *fakeRepository) seedCompleted(userID string, overall float64, subscores entities.Subscores, createdAt time.Time) *entities.CommunicationAssessment {
	a := entities.NewCommunicationAssessment(newRequest(userID, "q-seed", structuredAnswer))
	a.MarkAsCompleted(entities.ScoringResult{
		OverallScore: overall,
		Subscores:    subscores,
		Source:       entities.EvaluationSourceRuleBased,
	})
	a.CreatedAt = createdAt
	r.mu.Lock()
	r.records[a.ID] = a
	r.mu.Unlock()
	return a
}

// fakeRepository is an in-memory AssessmentRepository
type fakeRepository struct {
	mu          sync.Mutex
	records     map[string]*entities.CommunicationAssessment
	failCreate  bool
	failOnCount int // Create fails once this many records exist, 0 disables

	// completeErrs are returned by successive Complete calls before the real update
	completeErrs   []error
	beforeComplete func(id string)
	completeCalls  int
	failedCalls    int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*entities.CommunicationAssessment)}
}

func (r *fakeRepository) Create(_ context.Context, a *entities.CommunicationAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate || (r.failOnCount > 0 && len(r.records) >= r.failOnCount) {
		return errStorageDown
	}
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeRepository) MarkProcessing(_ context.Context, a *entities.CommunicationAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[a.ID]
	if !ok || rec.Status != entities.AssessmentStatusPending {
		return entities.ErrAssessmentNotFound
	}
	rec.Status = entities.AssessmentStatusProcessing
	rec.StartedAt = a.StartedAt
	return nil
}

func (r *fakeRepository) Complete(_ context.Context, a *entities.CommunicationAssessment) error {
	if r.beforeComplete != nil {
		r.beforeComplete(a.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completeCalls++
	if len(r.completeErrs) > 0 {
		err := r.completeErrs[0]
		r.completeErrs = r.completeErrs[1:]
		return err
	}
	rec, ok := r.records[a.ID]
	if !ok || rec.Status != entities.AssessmentStatusProcessing {
		return entities.ErrAssessmentImmutable
	}
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeRepository) MarkFailed(_ context.Context, id string, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedCalls++
	rec, ok := r.records[id]
	if !ok {
		return entities.ErrAssessmentNotFound
	}
	if rec.Status == entities.AssessmentStatusCompleted {
		return entities.ErrAssessmentImmutable
	}
	rec.Status = entities.AssessmentStatusFailed
	rec.ErrorMessage = &errMsg
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*entities.CommunicationAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepository) all(match func(*entities.CommunicationAssessment) bool) []*entities.CommunicationAssessment {
	var out []*entities.CommunicationAssessment
	for _, rec := range r.records {
		if match(rec) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepository) FindByUser(_ context.Context, userID string, limit, offset int) ([]*entities.CommunicationAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all(func(a *entities.CommunicationAssessment) bool { return a.UserID == userID })
	if offset >= len(out) {
		return []*entities.CommunicationAssessment{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) FindByInterview(_ context.Context, interviewID, userID string) ([]*entities.CommunicationAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all(func(a *entities.CommunicationAssessment) bool {
		return a.InterviewID != nil && *a.InterviewID == interviewID && (userID == "" || a.UserID == userID)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepository) FindByQuestion(_ context.Context, questionID string, limit int) ([]*entities.CommunicationAssessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all(func(a *entities.CommunicationAssessment) bool { return a.QuestionID == questionID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) completed(userID string) []*entities.CommunicationAssessment {
	return r.all(func(a *entities.CommunicationAssessment) bool {
		return a.UserID == userID && a.Status == entities.AssessmentStatusCompleted
	})
}

func (r *fakeRepository) UserScoreAggregate(_ context.Context, userID string) (*repositories.ScoreAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.completed(userID)
	agg := &repositories.ScoreAggregate{Count: int64(len(recs))}
	if len(recs) == 0 {
		return agg, nil
	}
	n := float64(len(recs))
	for _, a := range recs {
		agg.AvgOverall += a.OverallScore / n
		agg.AvgFluency += a.Subscores.Fluency / n
		agg.AvgClarityStructure += a.Subscores.ClarityStructure / n
		agg.AvgGrammarVocabulary += a.Subscores.GrammarVocabulary / n
		agg.AvgPronunciation += a.Subscores.Pronunciation / n
		agg.AvgToneConfidence += a.Subscores.ToneConfidence / n
		agg.AvgQuestionRelevance += a.Subscores.QuestionRelevance / n
	}
	return agg, nil
}

func (r *fakeRepository) DailyScores(_ context.Context, userID string, since time.Time) ([]repositories.DailyScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDay := map[string][]float64{}
	for _, a := range r.completed(userID) {
		if a.CreatedAt.Before(since) {
			continue
		}
		day := a.CreatedAt.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], a.OverallScore)
	}
	out := make([]repositories.DailyScore, 0, len(byDay))
	for day, scores := range byDay {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		out = append(out, repositories.DailyScore{Day: day, Count: int64(len(scores)), AvgOverall: sum / float64(len(scores))})
	}
	// map iteration order, the service sorts
	return out, nil
}

func (r *fakeRepository) get(id string) *entities.CommunicationAssessment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id]
}

func (r *fakeRepository) setCreatedAt(id string, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[id].CreatedAt = t
}

// fakeCompleter returns a fixed reply or error and counts calls
type fakeCompleter struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Name() string { return f.name }

func (f *fakeCompleter) Complete(_ context.Context, _, _ string, _ ai.CompletionOptions) (string, error) {
	f.calls++
	return f.reply, f.err
}

// panicEvaluator simulates an unexpected failure during evaluation
type panicEvaluator struct{}

func (panicEvaluator) Evaluate(context.Context, string, string) *StructuredResult {
	panic("evaluator exploded")
}
