package scoring

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

var defaultLexicon = mustLoadDefaultLexicon()

// Lexicon holds the word tables and grammar heuristics used by the extractor
type Lexicon struct {
	Locale               string        `yaml:"locale"`
	FillerWords          []string      `yaml:"filler_words"`
	ProfessionalPrefixes []string      `yaml:"professional_prefixes"`
	DiscourseMarkers     []string      `yaml:"discourse_markers"`
	ExamplePhrases       []string      `yaml:"example_phrases"`
	GrammarRules         []GrammarRule `yaml:"grammar_rules"`

	fillers  []*regexp.Regexp
	markers  []*regexp.Regexp
	examples []*regexp.Regexp
}

// GrammarRule is one regex heuristic reported once it matches MinCount times
type GrammarRule struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	MinCount int    `yaml:"min_count"`

	re *regexp.Regexp
}

// DefaultLexicon returns the embedded English lexicon
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// LoadLexiconFile reads a lexicon from a YAML file
func LoadLexiconFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return LoadLexicon(data)
}

// LoadLexicon parses and compiles a YAML lexicon
func LoadLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.compile(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) compile() error {
	if len(l.FillerWords) == 0 {
		return fmt.Errorf("lexicon: filler_words must not be empty")
	}
	if len(l.DiscourseMarkers) == 0 {
		return fmt.Errorf("lexicon: discourse_markers must not be empty")
	}
	if len(l.ExamplePhrases) == 0 {
		return fmt.Errorf("lexicon: example_phrases must not be empty")
	}

	l.fillers = compilePhrases(l.FillerWords)
	l.markers = compilePhrases(l.DiscourseMarkers)
	l.examples = compilePhrases(l.ExamplePhrases)

	for i, p := range l.ProfessionalPrefixes {
		l.ProfessionalPrefixes[i] = strings.ToLower(strings.TrimSpace(p))
	}

	for i := range l.GrammarRules {
		rule := &l.GrammarRules[i]
		if rule.Name == "" {
			return fmt.Errorf("lexicon: grammar rule %d must have a name", i)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("lexicon: grammar rule %s: %w", rule.Name, err)
		}
		if rule.MinCount < 1 {
			rule.MinCount = 1
		}
		rule.re = re
	}
	return nil
}

// compilePhrases builds case-insensitive whole-word matchers. Inner whitespace
// of a phrase matches any whitespace run.
func compilePhrases(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		out = append(out, regexp.MustCompile(`(?i)\b`+strings.Join(quoted, `\s+`)+`\b`))
	}
	return out
}

func mustLoadDefaultLexicon() *Lexicon {
	lex, err := LoadLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("scoring: embedded lexicon: %v", err))
	}
	return lex
}
