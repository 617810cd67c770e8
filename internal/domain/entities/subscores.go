package entities

// Dimension names one communication facet
type Dimension string

const (
	DimensionFluency           Dimension = "fluency"
	DimensionClarityStructure  Dimension = "clarity_structure"
	DimensionGrammarVocabulary Dimension = "grammar_vocabulary"
	DimensionPronunciation     Dimension = "pronunciation"
	DimensionToneConfidence    Dimension = "tone_confidence"
	DimensionQuestionRelevance Dimension = "question_relevance"
)

// Dimensions lists the six dimensions in canonical order
var Dimensions = []Dimension{
	DimensionFluency,
	DimensionClarityStructure,
	DimensionGrammarVocabulary,
	DimensionPronunciation,
	DimensionToneConfidence,
	DimensionQuestionRelevance,
}

// Label returns a human readable dimension name
func (d Dimension) Label() string {
	switch d {
	case DimensionFluency:
		return "fluency"
	case DimensionClarityStructure:
		return "clarity and structure"
	case DimensionGrammarVocabulary:
		return "grammar and vocabulary"
	case DimensionPronunciation:
		return "pronunciation"
	case DimensionToneConfidence:
		return "tone and confidence"
	case DimensionQuestionRelevance:
		return "question relevance"
	}
	return string(d)
}

// Subscores holds the six ratings, each in [1,10]
type Subscores struct {
	Fluency           float64 `json:"fluency" gorm:"column:fluency;type:numeric(3,1)" bson:"fluency"`
	ClarityStructure  float64 `json:"clarity_structure" gorm:"column:clarity_structure;type:numeric(3,1)" bson:"clarity_structure"`
	GrammarVocabulary float64 `json:"grammar_vocabulary" gorm:"column:grammar_vocabulary;type:numeric(3,1)" bson:"grammar_vocabulary"`
	Pronunciation     float64 `json:"pronunciation" gorm:"column:pronunciation;type:numeric(3,1)" bson:"pronunciation"`
	ToneConfidence    float64 `json:"tone_confidence" gorm:"column:tone_confidence;type:numeric(3,1)" bson:"tone_confidence"`
	QuestionRelevance float64 `json:"question_relevance" gorm:"column:question_relevance;type:numeric(3,1)" bson:"question_relevance"`
}

// Get returns the value for a dimension
func (s Subscores) Get(d Dimension) float64 {
	switch d {
	case DimensionFluency:
		return s.Fluency
	case DimensionClarityStructure:
		return s.ClarityStructure
	case DimensionGrammarVocabulary:
		return s.GrammarVocabulary
	case DimensionPronunciation:
		return s.Pronunciation
	case DimensionToneConfidence:
		return s.ToneConfidence
	case DimensionQuestionRelevance:
		return s.QuestionRelevance
	}
	return 0
}

// Set assigns the value for a dimension
func (s *Subscores) Set(d Dimension, v float64) {
	switch d {
	case DimensionFluency:
		s.Fluency = v
	case DimensionClarityStructure:
		s.ClarityStructure = v
	case DimensionGrammarVocabulary:
		s.GrammarVocabulary = v
	case DimensionPronunciation:
		s.Pronunciation = v
	case DimensionToneConfidence:
		s.ToneConfidence = v
	case DimensionQuestionRelevance:
		s.QuestionRelevance = v
	}
}

// Map returns the subscores keyed by dimension name
func (s Subscores) Map() map[string]float64 {
	m := make(map[string]float64, len(Dimensions))
	for _, d := range Dimensions {
		m[string(d)] = s.Get(d)
	}
	return m
}
