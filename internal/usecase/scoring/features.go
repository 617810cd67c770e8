package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

const (
	tooShortWords   = 30
	optimalMinWords = 50
	optimalMaxWords = 300
	tooLongWords    = 500

	repetitionMinLength = 4    // content words are longer than 3 runes
	repetitionMinCount  = 4    // raw count must exceed 3
	repetitionMinShare  = 0.05 // and frequency must exceed 5% of all words
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// TextFeatures is the lexical and structural summary of one transcript
type TextFeatures struct {
	WordCount               int
	SentenceCount           int
	AvgWordsPerSentence     float64
	FillerCount             int
	FillerRatio             float64
	ProfessionalWordCount   int
	StructureIndicatorCount int
	SentenceVariety         float64
	HasConcreteExamples     bool
	GrammarIssues           []string
	RepetitionScore         float64
	TooShort                bool
	Optimal                 bool
	TooLong                 bool

	// Optional audio summary, nil when not supplied
	SpeakingRate  *float64
	PauseDuration *float64
}

// ExtractFeatures analyses a transcript with the default lexicon
func ExtractFeatures(transcript string, audio *entities.AudioFeatures) TextFeatures {
	return defaultLexicon.Extract(transcript, audio)
}

// Extract analyses a transcript with this lexicon. It never fails.
func (l *Lexicon) Extract(transcript string, audio *entities.AudioFeatures) TextFeatures {
	tokens := strings.Fields(transcript)
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		words = append(words, normalizeToken(t))
	}

	f := TextFeatures{
		WordCount:     len(tokens),
		GrammarIssues: []string{},
	}

	sentences := splitSentences(transcript)
	f.SentenceCount = len(sentences)
	if f.SentenceCount > 0 {
		f.AvgWordsPerSentence = float64(f.WordCount) / float64(f.SentenceCount)
		f.SentenceVariety = sentenceVariety(sentences)
	}

	for _, re := range l.fillers {
		f.FillerCount += len(re.FindAllStringIndex(transcript, -1))
	}
	if f.WordCount > 0 {
		f.FillerRatio = float64(f.FillerCount) / float64(f.WordCount)
	}

	for _, w := range words {
		if l.isProfessional(w) {
			f.ProfessionalWordCount++
		}
	}

	for _, re := range l.markers {
		if re.MatchString(transcript) {
			f.StructureIndicatorCount++
		}
	}

	for _, re := range l.examples {
		if re.MatchString(transcript) {
			f.HasConcreteExamples = true
			break
		}
	}

	for _, rule := range l.GrammarRules {
		if len(rule.re.FindAllStringIndex(transcript, -1)) >= rule.MinCount {
			f.GrammarIssues = append(f.GrammarIssues, rule.Name)
		}
	}

	f.RepetitionScore = repetitionScore(words)

	f.TooShort = f.WordCount < tooShortWords
	f.Optimal = f.WordCount >= optimalMinWords && f.WordCount <= optimalMaxWords
	f.TooLong = f.WordCount > tooLongWords

	if audio != nil {
		f.SpeakingRate = audio.SpeakingRate
		f.PauseDuration = audio.PauseDuration
	}

	return f
}

func (l *Lexicon) isProfessional(word string) bool {
	if word == "" {
		return false
	}
	for _, prefix := range l.ProfessionalPrefixes {
		if prefix != "" && strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimFunc(token, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}))
}

func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func sentenceVariety(sentences []string) float64 {
	starters := make(map[string]struct{}, len(sentences))
	for _, s := range sentences {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		starters[normalizeToken(fields[0])] = struct{}{}
	}
	return float64(len(starters)) / float64(len(sentences))
}

// repetitionScore penalises content words that dominate the answer
func repetitionScore(words []string) float64 {
	if len(words) == 0 {
		return 10
	}
	counts := make(map[string]int)
	for _, w := range words {
		if utf8.RuneCountInString(w) >= repetitionMinLength {
			counts[w]++
		}
	}
	overused := 0
	total := float64(len(words))
	for _, c := range counts {
		if c >= repetitionMinCount && float64(c)/total > repetitionMinShare {
			overused++
		}
	}
	score := 10 - 2*float64(overused)
	if score < 0 {
		return 0
	}
	return score
}
