package scoring

import (
	"math"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

const (
	MinScore = 1.0
	MaxScore = 10.0
)

// Weights is the contribution of each dimension to the overall score
var Weights = map[entities.Dimension]float64{
	entities.DimensionFluency:           0.20,
	entities.DimensionClarityStructure:  0.20,
	entities.DimensionGrammarVocabulary: 0.15,
	entities.DimensionPronunciation:     0.15,
	entities.DimensionToneConfidence:    0.15,
	entities.DimensionQuestionRelevance: 0.15,
}

// CalculateScores turns text features into the six subscores and the overall score
func CalculateScores(f TextFeatures) (entities.Subscores, float64) {
	s := entities.Subscores{
		Fluency:           Clamp(fluency(f)),
		ClarityStructure:  Clamp(clarityStructure(f)),
		GrammarVocabulary: Clamp(grammarVocabulary(f)),
		Pronunciation:     Clamp(pronunciation(f)),
		ToneConfidence:    Clamp(toneConfidence(f)),
		QuestionRelevance: Clamp(questionRelevance(f)),
	}
	return s, WeightedOverall(s)
}

// WeightedOverall applies the weight table and rounds to one decimal
func WeightedOverall(s entities.Subscores) float64 {
	var sum float64
	for _, d := range entities.Dimensions {
		sum += Weights[d] * s.Get(d)
	}
	return Clamp(Round1(sum))
}

// ScoreLevelFor buckets an overall score
func ScoreLevelFor(overall float64) entities.ScoreLevel {
	switch {
	case overall >= 9:
		return entities.ScoreLevelExcellent
	case overall >= 7:
		return entities.ScoreLevelStrong
	case overall >= 4:
		return entities.ScoreLevelAverage
	default:
		return entities.ScoreLevelNeedsImprovement
	}
}

// Clamp bounds a score to [1,10]
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// Round1 rounds to one decimal place
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func fluency(f TextFeatures) float64 {
	score := 8.0
	switch {
	case f.FillerRatio > 0.10:
		score -= 3
	case f.FillerRatio > 0.05:
		score -= 2
	case f.FillerRatio > 0.02:
		score -= 1
	}
	if f.TooShort {
		score -= 2
	}
	if f.SpeakingRate != nil && (*f.SpeakingRate < 100 || *f.SpeakingRate > 180) {
		score--
	}
	if f.PauseDuration != nil && *f.PauseDuration > 2 {
		score--
	}
	return score
}

func clarityStructure(f TextFeatures) float64 {
	score := 6.0
	switch {
	case f.StructureIndicatorCount >= 3:
		score += 2
	case f.StructureIndicatorCount >= 1:
		score++
	}
	if f.HasConcreteExamples {
		score++
	}
	switch {
	case f.AvgWordsPerSentence >= 10 && f.AvgWordsPerSentence <= 25:
		score++
	case f.AvgWordsPerSentence < 5 || f.AvgWordsPerSentence > 40:
		score--
	}
	return score
}

func grammarVocabulary(f TextFeatures) float64 {
	score := 7.0
	switch {
	case f.ProfessionalWordCount >= 5:
		score += 2
	case f.ProfessionalWordCount >= 2:
		score++
	}
	if f.SentenceVariety > 0.7 {
		score++
	}
	score -= float64(len(f.GrammarIssues))
	if f.RepetitionScore < 5 {
		score--
	}
	return score
}

// pronunciation has no text signal; only the speaking rate moves it
func pronunciation(f TextFeatures) float64 {
	if f.SpeakingRate == nil {
		return 7
	}
	rate := *f.SpeakingRate
	switch {
	case rate >= 120 && rate <= 160:
		return 8
	case rate < 100 || rate > 180:
		return 6
	}
	return 7
}

func toneConfidence(f TextFeatures) float64 {
	score := 6.0
	if f.ProfessionalWordCount >= 3 {
		score++
	}
	switch {
	case f.FillerRatio < 0.02:
		score += 2
	case f.FillerRatio > 0.08:
		score -= 2
	}
	if f.Optimal {
		score++
	}
	if f.HasConcreteExamples {
		score++
	}
	return score
}

func questionRelevance(f TextFeatures) float64 {
	score := 7.0
	if f.Optimal {
		score++
	}
	if f.HasConcreteExamples {
		score++
	}
	if f.StructureIndicatorCount >= 2 {
		score++
	}
	if f.TooShort {
		score -= 2
	}
	return score
}
