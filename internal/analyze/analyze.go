// Package analyze assigns importance scores to quality sentences using
// positional, lexical, structural, and title-relevance signals.
package analyze

import (
	"sort"
	"strings"

	"github.com/outlinehq/pagesum/internal/lexicon"
	"github.com/outlinehq/pagesum/internal/segment"
)

// scoreTieDelta is the score distance within which two sentences are treated
// as equals and ordered by document position instead, keeping near-equal
// candidates deterministic and favoring intro context.
const scoreTieDelta = 1

// Rank scores every sentence independently, then returns the slice sorted by
// score descending with document position as the near-tie tiebreak. The input
// slice is not modified.
func Rank(sentences []segment.Sentence, title string) []segment.Sentence {
	n := len(sentences)
	titleWords := titleKeywords(title)

	ranked := make([]segment.Sentence, n)
	copy(ranked, sentences)
	for i := range ranked {
		ranked[i].Score = score(&ranked[i], n, titleWords)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		d := a.Score - b.Score
		if d < 0 {
			d = -d
		}
		if d <= scoreTieDelta {
			return a.Index < b.Index
		}
		return a.Score > b.Score
	})
	return ranked
}

// score implements the additive rubric. Each signal contributes a fixed
// bonus; the result is floored at zero.
func score(s *segment.Sentence, total int, titleWords []string) float64 {
	var v float64

	// Intro and conclusion positions matter most.
	pos := float64(s.Index) / float64(total)
	if pos < 0.2 || pos > 0.8 {
		v += 3
	}
	if pos < 0.1 || pos > 0.9 {
		v += 2
	}

	// Length sweet spot, with a wider fallback band.
	if s.WordCount >= 8 && s.WordCount <= 25 {
		v += 3
	} else if s.WordCount >= 6 && s.WordCount <= 30 {
		v += 1
	}

	if s.HasImportantWords {
		v += 4
	}
	if s.HasNumbers {
		v += 2
	}

	low := strings.ToLower(s.Text)
	for _, w := range titleWords {
		if strings.Contains(low, w) {
			v += 2
		}
	}

	if lexicon.HasTransition(s.Text) {
		v += 2
	}

	if v < 0 {
		v = 0
	}
	return v
}

func titleKeywords(title string) []string {
	fields := strings.Fields(strings.ToLower(title))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 3 {
			out = append(out, f)
		}
	}
	return out
}
