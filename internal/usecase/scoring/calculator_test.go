package scoring

import (
	"math"
	"testing"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

func TestCalculateScores_ShortFillerAnswer(t *testing.T) {
	s, overall := CalculateScores(ExtractFeatures(shortFillerAnswer, nil))

	if s.Fluency != 3 {
		t.Fatalf("expected fluency 3, got %v", s.Fluency)
	}
	if s.QuestionRelevance != 5 {
		t.Fatalf("expected question relevance 5, got %v", s.QuestionRelevance)
	}
	if s.ToneConfidence != 4 {
		t.Fatalf("expected tone 4, got %v", s.ToneConfidence)
	}
	if overall != 5.4 {
		t.Fatalf("expected overall 5.4, got %v", overall)
	}
}

func TestCalculateScores_StructuredAnswer(t *testing.T) {
	s, overall := CalculateScores(ExtractFeatures(structuredAnswer, nil))

	want := entities.Subscores{
		Fluency:           8,
		ClarityStructure:  9,
		GrammarVocabulary: 9,
		Pronunciation:     7,
		ToneConfidence:    10,
		QuestionRelevance: 10,
	}
	if s != want {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
	if overall != 8.8 {
		t.Fatalf("expected overall 8.8, got %v", overall)
	}
	if ScoreLevelFor(overall) != entities.ScoreLevelStrong {
		t.Fatalf("expected strong, got %s", ScoreLevelFor(overall))
	}
}

func TestCalculateScores_Bounds(t *testing.T) {
	cases := []TextFeatures{
		{},
		{FillerRatio: 1, TooShort: true, SpeakingRate: ptr(20.0), PauseDuration: ptr(9.0), AvgWordsPerSentence: 100, GrammarIssues: []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
		{ProfessionalWordCount: 50, StructureIndicatorCount: 10, HasConcreteExamples: true, Optimal: true, SentenceVariety: 1, AvgWordsPerSentence: 15, RepetitionScore: 10, SpeakingRate: ptr(140.0)},
		{FillerRatio: 0.09, TooLong: true, RepetitionScore: 0, SentenceVariety: 0.1, AvgWordsPerSentence: 3},
	}
	for i, f := range cases {
		s, overall := CalculateScores(f)
		for _, d := range entities.Dimensions {
			if v := s.Get(d); v < MinScore || v > MaxScore {
				t.Fatalf("case %d: %s out of range: %v", i, d, v)
			}
		}
		if overall < MinScore || overall > MaxScore {
			t.Fatalf("case %d: overall out of range: %v", i, overall)
		}
		if overall != WeightedOverall(s) {
			t.Fatalf("case %d: overall %v does not match weighted sum %v", i, overall, WeightedOverall(s))
		}
	}
}

func TestWeights_SumToOne(t *testing.T) {
	var sum float64
	for _, d := range entities.Dimensions {
		sum += Weights[d]
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("weights sum to %v", sum)
	}
}

func TestWeightedOverall(t *testing.T) {
	s := entities.Subscores{
		Fluency:           7,
		ClarityStructure:  6,
		GrammarVocabulary: 8,
		Pronunciation:     7,
		ToneConfidence:    5,
		QuestionRelevance: 8,
	}
	// 1.4 + 1.2 + 1.2 + 1.05 + 0.75 + 1.2
	if got := WeightedOverall(s); got != 6.8 {
		t.Fatalf("expected 6.8, got %v", got)
	}
}

func TestPronunciation_SpeakingRate(t *testing.T) {
	cases := []struct {
		rate *float64
		want float64
	}{
		{nil, 7},
		{ptr(140.0), 8},
		{ptr(120.0), 8},
		{ptr(110.0), 7},
		{ptr(170.0), 7},
		{ptr(90.0), 6},
		{ptr(200.0), 6},
	}
	for _, tc := range cases {
		s, _ := CalculateScores(TextFeatures{SpeakingRate: tc.rate})
		if s.Pronunciation != tc.want {
			t.Fatalf("rate %v: expected %v, got %v", tc.rate, tc.want, s.Pronunciation)
		}
	}
}

func TestFluency_AudioPenalties(t *testing.T) {
	s, _ := CalculateScores(TextFeatures{SpeakingRate: ptr(190.0), PauseDuration: ptr(2.5)})
	if s.Fluency != 6 {
		t.Fatalf("expected fluency 6, got %v", s.Fluency)
	}
}

func TestScoreLevelFor_Boundaries(t *testing.T) {
	cases := []struct {
		overall float64
		want    entities.ScoreLevel
	}{
		{1.0, entities.ScoreLevelNeedsImprovement},
		{3.9, entities.ScoreLevelNeedsImprovement},
		{4.0, entities.ScoreLevelAverage},
		{6.9, entities.ScoreLevelAverage},
		{7.0, entities.ScoreLevelStrong},
		{8.9, entities.ScoreLevelStrong},
		{9.0, entities.ScoreLevelExcellent},
		{10.0, entities.ScoreLevelExcellent},
	}
	for _, tc := range cases {
		if got := ScoreLevelFor(tc.overall); got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.overall, tc.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-3) != 1 || Clamp(42) != 10 || Clamp(5.5) != 5.5 || Clamp(math.NaN()) != 1 {
		t.Fatal("clamp out of bounds")
	}
}
