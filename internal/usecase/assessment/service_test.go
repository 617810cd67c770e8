package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/interview-coach/internal/usecase/errors"
	"github.com/johnquangdev/interview-coach/internal/usecase/scoring"
	"github.com/johnquangdev/interview-coach/pkg/ai"
)

func newTestService(repo *fakeRepository, evaluator ResultEvaluator) *AssessmentService {
	return NewAssessmentService(repo, evaluator, nil, Options{}, zap.NewNop())
}

func TestAssess_RuleBased(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	a, err := svc.Assess(context.Background(), newRequest("user-1", "q1", shortFillerAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if a.Status != entities.AssessmentStatusCompleted {
		t.Fatalf("expected completed, got %s", a.Status)
	}
	if a.EvaluationSource != entities.EvaluationSourceRuleBased || a.Provider != "" {
		t.Fatalf("expected rule-based source, got %s/%q", a.EvaluationSource, a.Provider)
	}
	if a.Subscores.Fluency != 3 || a.OverallScore != 5.4 {
		t.Fatalf("unexpected scores fluency=%v overall=%v", a.Subscores.Fluency, a.OverallScore)
	}
	if a.ScoreLevel != entities.ScoreLevelAverage {
		t.Fatalf("expected average level, got %s", a.ScoreLevel)
	}
	if len(a.Improvements) == 0 || a.Improvements[0] != "Reduce filler words (3 found)" {
		t.Fatalf("unexpected improvements %v", a.Improvements)
	}
	if a.AssessmentType != entities.AssessmentTypePractice {
		t.Fatalf("expected default practice type, got %s", a.AssessmentType)
	}
	if a.CompletedAt == nil || a.StartedAt == nil {
		t.Fatal("expected lifecycle timestamps")
	}

	stored := repo.get(a.ID)
	if stored == nil || stored.Status != entities.AssessmentStatusCompleted || stored.OverallScore != 5.4 {
		t.Fatalf("expected completed record in repository, got %+v", stored)
	}
}

func TestAssess_UsesAIResult(t *testing.T) {
	repo := newFakeRepository()
	evaluator := NewEvaluator([]ai.Completer{&fakeCompleter{name: "groq", reply: validReply}}, ai.CompletionOptions{}, zap.NewNop())
	svc := newTestService(repo, evaluator)

	a, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if a.EvaluationSource != entities.EvaluationSourceAI || a.Provider != "groq" {
		t.Fatalf("expected ai/groq, got %s/%q", a.EvaluationSource, a.Provider)
	}
	if a.OverallScore != 7.5 || a.ScoreLevel != scoring.ScoreLevelFor(7.5) {
		t.Fatalf("unexpected overall %v level %s", a.OverallScore, a.ScoreLevel)
	}
	if a.SummaryComment != "A confident answer." {
		t.Fatalf("unexpected summary %q", a.SummaryComment)
	}
}

func TestAssess_FallsBackWhenAIReplyIsProse(t *testing.T) {
	repo := newFakeRepository()
	evaluator := NewEvaluator([]ai.Completer{&fakeCompleter{name: "groq", reply: "The candidate did well overall."}}, ai.CompletionOptions{}, zap.NewNop())
	svc := newTestService(repo, evaluator)

	a, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if a.Status != entities.AssessmentStatusCompleted || a.EvaluationSource != entities.EvaluationSourceRuleBased {
		t.Fatalf("expected completed rule-based record, got %s/%s", a.Status, a.EvaluationSource)
	}
	if a.OverallScore != 8.8 {
		t.Fatalf("expected rule-based overall 8.8, got %v", a.OverallScore)
	}
}

func TestAssess_BlankAIFeedbackFallsBackToRuleBased(t *testing.T) {
	repo := newFakeRepository()
	evaluator := NewEvaluator([]ai.Completer{&fakeCompleter{name: "groq", reply: blankFeedbackReply}}, ai.CompletionOptions{}, zap.NewNop())
	svc := newTestService(repo, evaluator)

	a, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if a.EvaluationSource != entities.EvaluationSourceRuleBased || a.OverallScore != 8.8 {
		t.Fatalf("expected rule-based 8.8, got %s/%v", a.EvaluationSource, a.OverallScore)
	}
	stored := repo.get(a.ID)
	if len(stored.Strengths) < 2 || len(stored.Improvements) < 2 || stored.SummaryComment == "" {
		t.Fatalf("expected complete feedback, got %v / %v / %q", stored.Strengths, stored.Improvements, stored.SummaryComment)
	}
}

func TestAssess_RetriesTransientSaveErrors(t *testing.T) {
	repo := newFakeRepository()
	repo.completeErrs = []error{errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")}
	svc := NewAssessmentService(repo, nil, nil, Options{RetryDelay: time.Millisecond}, zap.NewNop())

	a, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if repo.completeCalls != 2 {
		t.Fatalf("expected 2 save attempts, got %d", repo.completeCalls)
	}
	if stored := repo.get(a.ID); stored.Status != entities.AssessmentStatusCompleted {
		t.Fatalf("expected completed record, got %s", stored.Status)
	}
}

func TestAssess_SaveErrorMarksFailed(t *testing.T) {
	repo := newFakeRepository()
	repo.completeErrs = []error{errStorageDown}
	svc := NewAssessmentService(repo, nil, nil, Options{RetryDelay: time.Millisecond}, zap.NewNop())

	_, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if repo.completeCalls != 1 {
		t.Fatalf("expected no retry for a permanent error, got %d attempts", repo.completeCalls)
	}
	recs, _ := repo.FindByUser(context.Background(), "user-1", 10, 0)
	if len(recs) != 1 || recs[0].Status != entities.AssessmentStatusFailed {
		t.Fatalf("expected one failed record, got %+v", recs)
	}
}

func TestAssess_CompletedRecordIsNotOverwritten(t *testing.T) {
	repo := newFakeRepository()
	repo.beforeComplete = func(id string) {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		rec := repo.records[id]
		rec.MarkAsCompleted(entities.ScoringResult{OverallScore: 9.1, Source: entities.EvaluationSourceAI, Provider: "gemini"})
	}
	svc := newTestService(repo, nil)

	_, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if !errors.Is(err, entities.ErrAssessmentImmutable) {
		t.Fatalf("expected ErrAssessmentImmutable, got %v", err)
	}
	if repo.failedCalls != 0 {
		t.Fatalf("completed record must not be marked failed, got %d calls", repo.failedCalls)
	}
	recs, _ := repo.FindByUser(context.Background(), "user-1", 10, 0)
	if len(recs) != 1 {
		t.Fatalf("expected one record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Status != entities.AssessmentStatusCompleted || rec.OverallScore != 9.1 || rec.Provider != "gemini" || rec.ErrorMessage != nil {
		t.Fatalf("expected first completion to stand, got %+v", rec)
	}
}

func TestAssess_EvaluationPanicMarksFailed(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, panicEvaluator{})

	_, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if !errors.Is(err, usecaseErrors.ErrEvaluationFailed) {
		t.Fatalf("expected ErrEvaluationFailed, got %v", err)
	}

	recs, _ := repo.FindByUser(context.Background(), "user-1", 10, 0)
	if len(recs) != 1 {
		t.Fatalf("expected one record, got %d", len(recs))
	}
	if recs[0].Status != entities.AssessmentStatusFailed || recs[0].ErrorMessage == nil {
		t.Fatalf("expected failed record with message, got %s", recs[0].Status)
	}
}

func TestAssess_PersistenceError(t *testing.T) {
	repo := newFakeRepository()
	repo.failCreate = true
	svc := newTestService(repo, nil)

	_, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if !errors.Is(err, errStorageDown) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if errors.Is(err, usecaseErrors.ErrEvaluationFailed) {
		t.Fatal("persistence errors must not be reported as evaluation failures")
	}
}

func TestAssess_Validation(t *testing.T) {
	cases := map[string]*entities.AssessmentRequest{
		"nil request":  nil,
		"missing user": newRequest("", "q1", structuredAnswer),
		"missing qid":  newRequest("user-1", " ", structuredAnswer),
		"short answer": newRequest("user-1", "q1", "  Yes sir  "),
		"blank answer": newRequest("user-1", "q1", "          "),
	}
	for name, req := range cases {
		repo := newFakeRepository()
		_, err := newTestService(repo, nil).Assess(context.Background(), req)
		if !errors.Is(err, usecaseErrors.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
		if len(repo.records) != 0 {
			t.Fatalf("%s: expected nothing persisted", name)
		}
	}

	_, err := newTestService(newFakeRepository(), nil).Assess(context.Background(), newRequest("user-1", "q1", "Too short"))
	if !errors.Is(err, usecaseErrors.ErrTranscriptTooShort) {
		t.Fatalf("expected ErrTranscriptTooShort, got %v", err)
	}
}

func TestIsAssessable(t *testing.T) {
	cases := map[string]bool{
		"":                   false,
		"Sure.":              false,
		"   123456789   ":    false,
		"1234567890":         true,
		"  Sure thing, yes ": true,
	}
	for transcript, want := range cases {
		if got := IsAssessable(transcript); got != want {
			t.Fatalf("%q: expected %v, got %v", transcript, want, got)
		}
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, usecaseErrors.ErrAssessmentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	created, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer))
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil || got.ID != created.ID {
		t.Fatalf("expected %s, got %+v err=%v", created.ID, got, err)
	}
}

func TestGetUserHistory_Limits(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		repo.seedCompleted("user-1", 6, entities.Subscores{}, base.Add(time.Duration(i)*time.Minute))
	}

	history, err := svc.GetUserHistory(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != defaultHistoryLimit {
		t.Fatalf("expected default limit %d, got %d", defaultHistoryLimit, len(history))
	}
	if !history[0].CreatedAt.After(history[1].CreatedAt) {
		t.Fatal("expected newest first")
	}

	history, _ = svc.GetUserHistory(context.Background(), "user-1", 1000)
	if len(history) != 12 {
		t.Fatalf("expected all 12, got %d", len(history))
	}

	if _, err := svc.GetUserHistory(context.Background(), "", 5); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetByInterview(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)
	interview := "iv-1"

	for _, qid := range []string{"q1", "q2"} {
		req := newRequest("user-1", qid, structuredAnswer)
		req.InterviewID = &interview
		req.AssessmentType = entities.AssessmentTypeInterview
		if _, err := svc.Assess(context.Background(), req); err != nil {
			t.Fatalf("assess: %v", err)
		}
	}
	if _, err := svc.Assess(context.Background(), newRequest("user-1", "q3", structuredAnswer)); err != nil {
		t.Fatalf("assess: %v", err)
	}

	got, err := svc.GetByInterview(context.Background(), interview, "user-1")
	if err != nil {
		t.Fatalf("by interview: %v", err)
	}
	if len(got) != 2 || got[0].AssessmentType != entities.AssessmentTypeInterview {
		t.Fatalf("expected 2 interview records, got %d", len(got))
	}

	if _, err := svc.GetByInterview(context.Background(), "", "user-1"); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssess_InvalidatesCachedAverages(t *testing.T) {
	repo := newFakeRepository()
	store := cache.NewMemoryStore(time.Minute)
	defer store.Close()
	svc := NewAssessmentService(repo, nil, store, Options{AveragesTTL: time.Minute}, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Assess(ctx, newRequest("user-1", "q1", structuredAnswer)); err != nil {
		t.Fatalf("assess: %v", err)
	}
	first, err := svc.GetUserAverages(ctx, "user-1")
	if err != nil || first.TotalAssessments != 1 {
		t.Fatalf("expected 1 assessment, got %+v err=%v", first, err)
	}
	if _, ok, _ := store.Get(ctx, averagesCacheKey("user-1")); !ok {
		t.Fatal("expected averages to be cached")
	}

	if _, err := svc.Assess(ctx, newRequest("user-1", "q2", shortFillerAnswer)); err != nil {
		t.Fatalf("assess: %v", err)
	}
	second, err := svc.GetUserAverages(ctx, "user-1")
	if err != nil || second.TotalAssessments != 2 {
		t.Fatalf("expected fresh averages over 2 assessments, got %+v err=%v", second, err)
	}
}

func TestGetByQuestion(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, nil)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		user := "user-1"
		if i%2 == 1 {
			user = "user-2"
		}
		repo.seedCompleted(user, 6, entities.Subscores{}, base.Add(time.Duration(i)*time.Minute))
	}
	if _, err := svc.Assess(context.Background(), newRequest("user-1", "q1", structuredAnswer)); err != nil {
		t.Fatalf("assess: %v", err)
	}

	all, err := svc.GetByQuestion(context.Background(), "q-seed", 0)
	if err != nil {
		t.Fatalf("by question: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 across users, got %d", len(all))
	}

	latest, _ := svc.GetByQuestion(context.Background(), "q-seed", 2)
	if len(latest) != 2 || !latest[0].CreatedAt.After(latest[1].CreatedAt) {
		t.Fatalf("expected 2 newest first, got %d", len(latest))
	}

	if one, _ := svc.GetByQuestion(context.Background(), "q1", 10); len(one) != 1 {
		t.Fatalf("expected 1 for q1, got %d", len(one))
	}

	if _, err := svc.GetByQuestion(context.Background(), " ", 5); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
