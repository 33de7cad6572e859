// Package assemble turns ranked sentences into summary text under the three
// output-format policies: brief prose, detailed prose, and a bullet list.
package assemble

import (
	"regexp"
	"sort"
	"strings"

	"github.com/outlinehq/pagesum/internal/lexicon"
	"github.com/outlinehq/pagesum/internal/segment"
)

// followupGap is the maximum index distance at which two sentences are
// considered coherent by proximity alone.
const followupGap = 3

// highScoreBar admits a sentence into a detailed summary on score alone,
// without a coherence link to an already-selected sentence.
const highScoreBar = 8

// supportingScoreBar is the minimum score for a brief summary's second
// sentence.
const supportingScoreBar = 5

// Assemble selects and joins sentences from the ranked list according to
// mode. ranked must be in analyze.Rank order (score descending). Every
// returned sentence is taken verbatim from the input; only joining
// whitespace, bullet markers, and an occasional transition word are added.
func Assemble(ranked []segment.Sentence, mode Mode, originalWordCount int) (string, error) {
	if len(ranked) == 0 {
		return "", nil
	}
	switch mode {
	case ModeBrief:
		return brief(ranked, originalWordCount), nil
	case ModeDetailed:
		return detailed(ranked, originalWordCount), nil
	case ModeBullets:
		return bullets(ranked, originalWordCount), nil
	default:
		return "", &ErrUnknownMode{Value: string(mode)}
	}
}

// brief returns the single top sentence, plus one coherent supporting
// sentence when the source is substantial enough to warrant it.
func brief(ranked []segment.Sentence, originalWordCount int) string {
	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	summary := top[0].Text

	if originalWordCount > 300 && len(top) > 1 {
		for _, s := range top[1:] {
			if s.Score > supportingScoreBar && coherentFollowup(top[0], s) {
				summary += " " + s.Text
				break
			}
		}
	}
	return cleanup(summary)
}

// detailed greedily selects coherent sentences in score order, then restores
// document order before joining so the summary reads chronologically.
func detailed(ranked []segment.Sentence, originalWordCount int) string {
	target := clampTarget(originalWordCount, 150, 3, 6)

	selected := []segment.Sentence{ranked[0]}
	used := map[int]struct{}{ranked[0].Index: {}}

	for _, cand := range ranked[1:] {
		if len(selected) >= target {
			break
		}
		if _, ok := used[cand.Index]; ok {
			continue
		}
		coherent := false
		for _, existing := range selected {
			if coherentFollowup(existing, cand) {
				coherent = true
				break
			}
		}
		if coherent || cand.Score > highScoreBar {
			selected = append(selected, cand)
			used[cand.Index] = struct{}{}
		}
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })

	var b strings.Builder
	for i, s := range selected {
		if i == 0 {
			b.WriteString(s.Text)
			continue
		}
		if t := transition(selected[i-1], s); t != "" {
			b.WriteString(" " + t + " ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(s.Text)
	}
	return cleanup(b.String())
}

// bullets walks sentences in score order and keeps those introducing at
// least one unused keyword, so each bullet covers new ground. Selection
// order is preserved in the output: bullets read as a ranked list.
func bullets(ranked []segment.Sentence, originalWordCount int) string {
	target := clampTarget(originalWordCount, 200, 3, 5)

	var lines []string
	usedKeywords := map[string]struct{}{}
	for _, s := range ranked {
		if len(lines) >= target {
			break
		}
		kws := lexicon.Keywords(s.Text)
		fresh := false
		for _, k := range kws {
			if _, ok := usedKeywords[k]; !ok {
				fresh = true
				break
			}
		}
		if fresh || len(lines) == 0 {
			lines = append(lines, "• "+strings.TrimLeft(s.Text, ".!? "))
			for _, k := range kws {
				usedKeywords[k] = struct{}{}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// coherentFollowup reports whether the later sentence b plausibly continues
// a: close in the document, or sharing at least one keyword.
func coherentFollowup(a, b segment.Sentence) bool {
	gap := b.Index - a.Index
	if gap < 0 {
		gap = -gap
	}
	if gap <= followupGap {
		return true
	}
	for _, ka := range lexicon.Keywords(a.Text) {
		for _, kb := range lexicon.Keywords(b.Text) {
			if ka == kb {
				return true
			}
		}
	}
	return false
}

// transition returns a connective to insert between prev and cur, or empty
// when the sentences carry their own flow. Only one pattern currently
// injects: consecutive numeric facts read better with an additive link.
func transition(prev, cur segment.Sentence) string {
	if lexicon.StartsWithTransition(cur.Text) {
		return ""
	}
	low := strings.ToLower(cur.Text)
	if strings.Contains(low, "however") || strings.Contains(low, "but") {
		return ""
	}
	if prev.HasNumbers && cur.HasNumbers {
		return "Additionally,"
	}
	return ""
}

// clampTarget derives a sentence target from the source length: one sentence
// per divisor words, clamped to [min, max].
func clampTarget(wordCount, divisor, min, max int) int {
	t := (wordCount + divisor - 1) / divisor
	if t < min {
		t = min
	}
	if t > max {
		t = max
	}
	return t
}

var (
	multiSpace  = regexp.MustCompile(`\s+`)
	doublePunct = regexp.MustCompile(`\.\s*\.`)
)

func cleanup(summary string) string {
	s := multiSpace.ReplaceAllString(summary, " ")
	s = doublePunct.ReplaceAllString(s, ".")
	return strings.TrimSpace(s)
}
