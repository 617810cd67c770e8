package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/johnquangdev/interview-coach/internal/domain/entities"
	"github.com/johnquangdev/interview-coach/internal/usecase/scoring"
)

const (
	// maxKeyDistance is the largest edit distance at which a subscore key is
	// still mapped onto a canonical dimension name
	maxKeyDistance = 3

	maxFeedbackItems = 3
)

var (
	errNoJSONObject  = errors.New("no JSON object in response")
	errBlankFeedback = errors.New("response has blank feedback")
)

const evaluationSchemaJSON = `{
  "type": "object",
  "required": ["subscores", "strengths", "improvements", "summary_comment"],
  "properties": {
    "overall_score": {"type": "number"},
    "subscores": {
      "type": "object",
      "required": ["fluency", "clarity_structure", "grammar_vocabulary", "pronunciation", "tone_confidence", "question_relevance"],
      "properties": {
        "fluency": {"type": "number"},
        "clarity_structure": {"type": "number"},
        "grammar_vocabulary": {"type": "number"},
        "pronunciation": {"type": "number"},
        "tone_confidence": {"type": "number"},
        "question_relevance": {"type": "number"}
      }
    },
    "strengths": {"type": "array", "minItems": 1, "items": {"type": "string"}, "contains": {"pattern": "\\S"}},
    "improvements": {"type": "array", "minItems": 1, "items": {"type": "string"}, "contains": {"pattern": "\\S"}},
    "summary_comment": {"type": "string", "pattern": "\\S"}
  }
}`

var evaluationSchema = jsonschema.MustCompileString("evaluation.json", evaluationSchemaJSON)

// StructuredResult is a validated evaluation returned by an AI provider
type StructuredResult struct {
	OverallScore   float64
	Subscores      entities.Subscores
	Strengths      []string
	Improvements   []string
	SummaryComment string
	Provider       string
}

type aiEvaluation struct {
	OverallScore   *float64           `json:"overall_score"`
	Subscores      map[string]float64 `json:"subscores"`
	Strengths      []string           `json:"strengths"`
	Improvements   []string           `json:"improvements"`
	SummaryComment string             `json:"summary_comment"`
}

// Parser handles parsing and validation of provider replies
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse turns a raw provider reply into a StructuredResult
func (p *Parser) Parse(raw string) (*StructuredResult, error) {
	object, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(object), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	repairDocument(doc)

	if err := evaluationSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("response does not match schema: %w", err)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var eval aiEvaluation
	if err := json.Unmarshal(b, &eval); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation: %w", err)
	}

	return eval.toResult()
}

// toResult clamps scores and fits feedback lists to 2..3 items. Lists or a
// summary that are blank once trimmed are rejected.
func (e *aiEvaluation) toResult() (*StructuredResult, error) {
	strengths := cleanList(e.Strengths)
	improvements := cleanList(e.Improvements)
	summary := strings.TrimSpace(e.SummaryComment)
	if len(strengths) == 0 || len(improvements) == 0 || summary == "" {
		return nil, errBlankFeedback
	}

	var subs entities.Subscores
	for _, d := range entities.Dimensions {
		subs.Set(d, scoring.Clamp(scoring.Round1(e.Subscores[string(d)])))
	}

	overall := scoring.WeightedOverall(subs)
	if e.OverallScore != nil {
		overall = scoring.Clamp(scoring.Round1(*e.OverallScore))
	}

	return &StructuredResult{
		OverallScore:   overall,
		Subscores:      subs,
		Strengths:      scoring.FitStrengths(strengths),
		Improvements:   scoring.FitImprovements(improvements),
		SummaryComment: summary,
	}, nil
}

// extractJSONObject returns the first balanced {...} substring, ignoring braces
// inside string literals. Surrounding prose and code fences are skipped.
func extractJSONObject(content string) (string, error) {
	start := strings.IndexByte(content, '{')
	for start != -1 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(content); i++ {
			c := content[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return content[start : i+1], nil
				}
			}
		}
		// unbalanced from this brace, try the next one
		next := strings.IndexByte(content[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}
	return "", errNoJSONObject
}

// repairDocument fixes common provider slips in place: key casing, near-miss
// dimension names, numbers sent as strings and single strings instead of lists.
func repairDocument(doc map[string]any) {
	for key, value := range doc {
		normalized := normalizeKey(key)
		if normalized != key {
			delete(doc, key)
			if _, exists := doc[normalized]; !exists {
				doc[normalized] = value
			}
		}
	}

	if raw, ok := doc["overall_score"]; ok {
		if v, ok := coerceNumber(raw); ok {
			doc["overall_score"] = v
		}
	}

	if subs, ok := doc["subscores"].(map[string]any); ok {
		doc["subscores"] = repairSubscores(subs)
	}

	for _, key := range []string{"strengths", "improvements"} {
		if s, ok := doc[key].(string); ok {
			doc[key] = []any{s}
		}
	}
}

func repairSubscores(subs map[string]any) map[string]any {
	keys := make([]string, 0, len(subs))
	for key := range subs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(entities.Dimensions))
	put := func(dim entities.Dimension, value any) {
		if _, exists := out[string(dim)]; exists {
			return
		}
		if v, ok := coerceNumber(value); ok {
			out[string(dim)] = v
		} else {
			out[string(dim)] = value
		}
	}

	// exact names win over near misses
	var fuzzy []string
	for _, key := range keys {
		if dim, exact := matchDimension(key); exact {
			put(dim, subs[key])
		} else {
			fuzzy = append(fuzzy, key)
		}
	}
	for _, key := range fuzzy {
		if dim, _ := matchDimension(key); dim != "" {
			put(dim, subs[key])
		}
	}
	return out
}

// matchDimension maps a key onto a dimension. exact reports a direct name match;
// otherwise the nearest dimension within maxKeyDistance is returned, or "".
func matchDimension(key string) (dim entities.Dimension, exact bool) {
	normalized := strings.ReplaceAll(normalizeKey(key), "_and_", "_")
	bestDistance := maxKeyDistance + 1
	for _, d := range entities.Dimensions {
		if normalized == string(d) {
			return d, true
		}
		dist := levenshtein.DistanceForStrings([]rune(normalized), []rune(string(d)), levenshtein.DefaultOptions)
		if dist < bestDistance {
			dim, bestDistance = d, dist
		}
	}
	return dim, false
}

// normalizeKey lower-cases a key and joins its words with underscores,
// splitting camelCase as well as spaces and punctuation
func normalizeKey(key string) string {
	var b strings.Builder
	pendingSep := false
	prevLower := false
	for _, r := range strings.TrimSpace(key) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingSep = true
			prevLower = false
			continue
		}
		if unicode.IsUpper(r) && prevLower {
			pendingSep = true
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// coerceNumber accepts numbers, numeric strings like "8" or "8/10" and {"score": n}
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if i := strings.IndexByte(s, '/'); i > 0 {
			s = strings.TrimSpace(s[:i])
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case map[string]any:
		if score, ok := n["score"]; ok {
			return coerceNumber(score)
		}
	}
	return 0, false
}

func cleanList(items []string) []string {
	out := make([]string, 0, maxFeedbackItems)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxFeedbackItems {
			break
		}
	}
	return out
}
