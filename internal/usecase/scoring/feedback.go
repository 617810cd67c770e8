package scoring

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
)

const (
	minFeedbackItems = 2
	maxFeedbackItems = 3

	fillerImprovementThreshold = 2
)

var (
	genericStrengths = []string{
		"You stayed engaged with the question and gave a complete answer",
		"Your response shows willingness to share your experience",
		"You communicated your main point",
	}
	genericImprovements = []string{
		"Practice answering out loud to build a steadier delivery",
		"Outline your answer in two or three points before you start speaking",
		"Close with a short summary of your main point",
	}
)

// Feedback is the rule-based commentary for one transcript
type Feedback struct {
	Strengths    []string
	Improvements []string
	Summary      string
}

// GenerateFeedback builds strengths, improvements and a summary from features and scores
func GenerateFeedback(f TextFeatures, s entities.Subscores, overall float64) Feedback {
	return Feedback{
		Strengths:    fitFeedback(strengths(f, s), genericStrengths),
		Improvements: fitFeedback(improvements(f), genericImprovements),
		Summary:      summary(f, overall),
	}
}

func strengths(f TextFeatures, s entities.Subscores) []string {
	var out []string
	if s.Fluency >= 7 && f.FillerRatio < 0.02 {
		out = append(out, "Fluent delivery with very few filler words")
	}
	if s.ClarityStructure >= 8 {
		out = append(out, "Clear, well-structured answer that is easy to follow")
	}
	if f.HasConcreteExamples {
		out = append(out, "Good use of concrete examples to support your points")
	}
	if s.GrammarVocabulary >= 8 {
		out = append(out, "Strong vocabulary and professional language")
	}
	if s.ToneConfidence >= 8 {
		out = append(out, "Confident and professional tone")
	}
	if f.Optimal {
		out = append(out, "Well-judged answer length")
	}
	return out
}

func improvements(f TextFeatures) []string {
	var out []string
	if f.FillerCount > fillerImprovementThreshold {
		out = append(out, fmt.Sprintf("Reduce filler words (%d found)", f.FillerCount))
	}
	if f.StructureIndicatorCount == 0 {
		out = append(out, "Use signposting words such as first, next and finally to structure your answer")
	}
	if !f.HasConcreteExamples {
		out = append(out, "Support your points with a specific example from your experience")
	}
	if f.TooShort {
		out = append(out, "Expand your answer with more detail and context")
	}
	if f.TooLong {
		out = append(out, "Keep your answer more concise and focused")
	}
	if len(f.GrammarIssues) > 0 {
		out = append(out, fmt.Sprintf("Review grammar and formatting (%s)", strings.Join(f.GrammarIssues, ", ")))
	}
	if f.RepetitionScore < 5 {
		out = append(out, "Vary your word choice to avoid repeating the same terms")
	}
	if f.SentenceCount > 1 && f.SentenceVariety < 0.5 {
		out = append(out, "Vary how you start your sentences")
	}
	return out
}

// FitStrengths trims a strength list to 2..3 items, padding with generic statements
func FitStrengths(items []string) []string {
	return fitFeedback(items, genericStrengths)
}

// FitImprovements trims an improvement list to 2..3 items, padding with generic statements
func FitImprovements(items []string) []string {
	return fitFeedback(items, genericImprovements)
}

// fitFeedback drops blank items, pads with generic statements up to the minimum
// and truncates to the maximum
func fitFeedback(items, generic []string) []string {
	out := make([]string, 0, maxFeedbackItems)
	for _, item := range items {
		if len(out) == maxFeedbackItems {
			break
		}
		item = strings.TrimSpace(item)
		if item == "" || contains(out, item) {
			continue
		}
		out = append(out, item)
	}
	for _, g := range generic {
		if len(out) >= minFeedbackItems {
			break
		}
		if contains(out, g) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

func summary(f TextFeatures, overall float64) string {
	var parts []string
	switch {
	case overall >= 9:
		parts = append(parts, "Excellent communication overall.")
	case overall >= 7:
		parts = append(parts, "Strong communication with a few areas to polish.")
	case overall >= 5:
		parts = append(parts, "Solid foundation, with clear room to improve your delivery.")
	default:
		parts = append(parts, "Your delivery needs more practice to come across clearly.")
	}

	switch {
	case f.FillerRatio > 0.05:
		parts = append(parts, "Cutting down on filler words will make you sound more confident.")
	case f.FillerRatio < 0.02 && f.WordCount > 0:
		parts = append(parts, "You kept filler words to a minimum.")
	}

	if f.HasConcreteExamples {
		parts = append(parts, "Your examples made the answer concrete.")
	} else {
		parts = append(parts, "Adding a specific example would make the answer more convincing.")
	}

	switch {
	case f.TooShort:
		parts = append(parts, "The answer was brief; aim for more depth.")
	case f.TooLong:
		parts = append(parts, "The answer ran long; focus on the key points.")
	case f.Optimal:
		parts = append(parts, "The length of the answer was appropriate.")
	}

	return strings.Join(parts, " ")
}
