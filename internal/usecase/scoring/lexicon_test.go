package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

const spanishLexicon = `
locale: es
filler_words: [este, pues, o sea]
professional_prefixes: [implement, estrateg]
discourse_markers: [primero, luego, finalmente]
example_phrases: [por ejemplo]
grammar_rules:
  - name: repeated_spaces
    pattern: '[ ]{2,}'
`

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	if lex.Locale != "en" {
		t.Fatalf("expected en locale, got %q", lex.Locale)
	}
	if len(lex.fillers) != len(lex.FillerWords) {
		t.Fatalf("expected %d compiled fillers, got %d", len(lex.FillerWords), len(lex.fillers))
	}
	for _, rule := range lex.GrammarRules {
		if rule.re == nil {
			t.Fatalf("rule %s not compiled", rule.Name)
		}
	}
}

func TestLoadLexiconFile_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte(spanishLexicon), 0o600); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}

	lex, err := LoadLexiconFile(path)
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	if lex.GrammarRules[0].MinCount != 1 {
		t.Fatalf("expected default min count 1, got %d", lex.GrammarRules[0].MinCount)
	}

	f := lex.Extract("Pues, primero analizamos el problema. Luego, o sea, por ejemplo implementamos una estrategia.", nil)
	if f.FillerCount != 2 {
		t.Fatalf("expected 2 fillers, got %d", f.FillerCount)
	}
	if f.StructureIndicatorCount != 2 {
		t.Fatalf("expected 2 markers, got %d", f.StructureIndicatorCount)
	}
	if !f.HasConcreteExamples {
		t.Fatal("expected example phrase match")
	}
	if f.ProfessionalWordCount != 2 {
		t.Fatalf("expected 2 professional words, got %d", f.ProfessionalWordCount)
	}
}

func TestLoadLexicon_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "filler_words: [um",
		"no fillers":   "discourse_markers: [first]\nexample_phrases: [for example]",
		"bad pattern":  "filler_words: [um]\ndiscourse_markers: [first]\nexample_phrases: [for example]\ngrammar_rules:\n  - name: broken\n    pattern: '(('",
		"unnamed rule": "filler_words: [um]\ndiscourse_markers: [first]\nexample_phrases: [for example]\ngrammar_rules:\n  - pattern: 'x'",
		"no examples":  "filler_words: [um]\ndiscourse_markers: [first]",
	}
	for name, data := range cases {
		if _, err := LoadLexicon([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadLexiconFile_Missing(t *testing.T) {
	if _, err := LoadLexiconFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
