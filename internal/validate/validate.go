// Package validate scores an assembled summary against its source content
// and the mode's length policy. The report drives the repair loop: a failed
// validation triggers regeneration, never a user-visible error.
package validate

import (
	"strings"

	"github.com/outlinehq/pagesum/internal/assemble"
	"github.com/outlinehq/pagesum/internal/lexicon"
	"github.com/outlinehq/pagesum/internal/segment"
)

// Report is the transient result of validating one summary candidate.
type Report struct {
	IsValid     bool
	Score       float64
	Issues      []string
	Suggestions []string
}

const (
	baseScore         = 5.0
	minWordCount      = 10
	repetitionFloor   = 0.6
	coherenceFloor    = 0.5
	relevanceFloor    = 0.3
	relevanceBonusBar = 0.6
	invalidBelowScore = 3.0
)

// Check validates summary against the original content it was drawn from.
// The composite score starts at baseScore, moves with each check, and is
// clamped to [0,10]; a final score under invalidBelowScore invalidates the
// summary regardless of individual checks.
func Check(summary, original string, mode assemble.Mode) Report {
	r := Report{IsValid: true}
	score := baseScore

	sentences := splitSentences(summary)
	words := strings.Fields(summary)

	if len(words) < minWordCount {
		r.IsValid = false
		r.Issues = append(r.Issues, "summary too short to be meaningful")
		r.Suggestions = append(r.Suggestions, "include more substantial content")
	}
	if len(sentences) < 1 {
		r.IsValid = false
		r.Issues = append(r.Issues, "no complete sentences found")
		r.Suggestions = append(r.Suggestions, "ensure summary contains complete thoughts")
	}

	// Repetition: a low unique-word ratio means the same phrases loop.
	if len(words) > 0 {
		unique := map[string]struct{}{}
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < repetitionFloor {
			r.Issues = append(r.Issues, "high repetition detected")
			r.Suggestions = append(r.Suggestions, "reduce redundant information")
			score -= 2
		} else {
			score += 2
		}
	}

	if lexicon.HasQualityIndicator(summary) {
		score += 3
	}

	if lexicon.MatchesLowQuality(summary) {
		r.IsValid = false
		r.Issues = append(r.Issues, "contains low-quality or irrelevant content")
		r.Suggestions = append(r.Suggestions, "focus on main article content")
		score -= 5
	}

	// Adjacent-sentence coherence for multi-sentence summaries.
	if len(sentences) > 1 {
		coherent := 0
		for i := 1; i < len(sentences); i++ {
			if sentencesCoherent(sentences[i-1], sentences[i]) {
				coherent++
			}
		}
		if float64(coherent)/float64(len(sentences)-1) < coherenceFloor {
			r.Issues = append(r.Issues, "summary lacks logical flow")
			r.Suggestions = append(r.Suggestions, "improve sentence connections and logical order")
			score -= 2
		} else {
			score += 2
		}
	}

	// Relevance: fraction of summary content words present in the original.
	if len(words) > 0 {
		originalWords := map[string]struct{}{}
		for _, w := range strings.Fields(strings.ToLower(original)) {
			originalWords[w] = struct{}{}
		}
		overlap := 0
		for _, w := range words {
			lw := strings.ToLower(w)
			if lexicon.IsStopWord(lw) {
				continue
			}
			if _, ok := originalWords[lw]; ok {
				overlap++
			}
		}
		ratio := float64(overlap) / float64(len(words))
		if ratio < relevanceFloor {
			r.IsValid = false
			r.Issues = append(r.Issues, "summary seems unrelated to original content")
			r.Suggestions = append(r.Suggestions, "ensure summary reflects main article topics")
			score -= 5
		} else if ratio > relevanceBonusBar {
			score += 3
		}
	}

	switch mode {
	case assemble.ModeBrief:
		if len(words) > 50 {
			r.Issues = append(r.Issues, "brief summary should be more concise")
			r.Suggestions = append(r.Suggestions, "reduce to 1-2 key sentences")
		}
	case assemble.ModeDetailed:
		if len(words) < 50 {
			r.Issues = append(r.Issues, "detailed summary should be more comprehensive")
			r.Suggestions = append(r.Suggestions, "include more supporting details")
		}
	case assemble.ModeBullets:
		if !strings.Contains(summary, "•") && !strings.Contains(summary, "-") {
			r.Issues = append(r.Issues, "bullet format should use bullet points")
			r.Suggestions = append(r.Suggestions, "format as clear bullet points")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	r.Score = score

	if score < invalidBelowScore {
		r.IsValid = false
		r.Issues = append(r.Issues, "overall quality score too low")
	}
	return r
}

// sentencesCoherent reports whether b logically continues a, judged by an
// opening connective or at least one shared content word.
func sentencesCoherent(a, b string) bool {
	if lexicon.OpensCoherently(b) {
		return true
	}
	wordsB := map[string]struct{}{}
	for _, w := range lexicon.ContentWords(b) {
		wordsB[w] = struct{}{}
	}
	for _, w := range lexicon.ContentWords(a) {
		if _, ok := wordsB[w]; ok {
			return true
		}
	}
	return false
}

// splitSentences breaks a summary into sentence units for the coherence and
// count checks. Bullet markers are stripped first so bullet summaries are
// judged on their sentence text.
func splitSentences(summary string) []string {
	s := strings.ReplaceAll(summary, "•", " ")
	return segment.Split(s)
}
