// Package rewrite expands a user question into alternative phrasings to
// improve FAQ recall.
package rewrite

import (
	"strings"

	"appraisal-workers/internal/assistant/textnorm"
)

// SynonymRule maps a lowercase term to its alternate phrasings. Rules are an
// ordered slice so variant generation is deterministic.
type SynonymRule struct {
	Term       string
	Alternates []string
}

// DefaultSynonyms is the built-in HR vocabulary table.
func DefaultSynonyms() []SynonymRule {
	return []SynonymRule{
		{Term: "appraisal", Alternates: []string{"review", "evaluation", "assessment"}},
		{Term: "deadline", Alternates: []string{"due date", "cutoff", "last day"}},
		{Term: "supervisor", Alternates: []string{"manager", "reviewer"}},
		{Term: "manager", Alternates: []string{"supervisor"}},
		{Term: "score", Alternates: []string{"rating", "grade"}},
		{Term: "form", Alternates: []string{"template", "document"}},
		{Term: "submit", Alternates: []string{"send", "file"}},
		{Term: "goal", Alternates: []string{"objective", "target"}},
		{Term: "salary", Alternates: []string{"compensation", "pay"}},
	}
}

// Rewriter produces query variants via synonym substitution and simple
// singular/plural toggling.
type Rewriter struct {
	synonyms []SynonymRule
}

func NewRewriter(synonyms []SynonymRule) *Rewriter {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &Rewriter{synonyms: synonyms}
}

// Rewrite returns the original question followed by its variants, in
// deterministic order with duplicates removed. The original is always first
// and always present, even when no rule fires.
func (r *Rewriter) Rewrite(question string) []string {
	variants := []string{question}
	seen := map[string]struct{}{question: {}}

	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	lower := foldASCIILower(question)

	// Synonyms fire on any substring occurrence. Over-generation is fine;
	// irrelevant variants die at the retrieval relevance floor.
	for _, rule := range r.synonyms {
		idx := strings.Index(lower, rule.Term)
		if idx < 0 {
			continue
		}
		for _, alt := range rule.Alternates {
			add(question[:idx] + alt + question[idx+len(rule.Term):])
		}
	}

	for _, kw := range textnorm.Keywords(question) {
		if len(kw) <= 3 {
			continue
		}
		var toggled string
		if strings.HasSuffix(kw, "s") {
			toggled = kw[:len(kw)-1]
		} else {
			toggled = kw + "s"
		}
		idx := indexOfWord(lower, kw)
		if idx < 0 {
			continue
		}
		add(question[:idx] + toggled + question[idx+len(kw):])
	}

	return variants
}

// foldASCIILower lowercases ASCII letters only, keeping every other byte as
// is. Unlike strings.ToLower the result has the same byte length as the
// input, so match indexes map straight back onto the original question.
// The synonym table and keyword tokens are ASCII, so this is enough.
func foldASCIILower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// indexOfWord finds term in text at a word boundary, or -1. Both arguments
// must already be lowercase.
func indexOfWord(text, term string) int {
	for from := 0; from < len(text); {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(term)
		startOK := idx == 0 || !isWordChar(text[idx-1])
		endOK := end == len(text) || !isWordChar(text[end])
		if startOK && endOK {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
