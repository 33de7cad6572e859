// Package segment splits extracted page text into quality sentence units.
package segment

import (
	"errors"
	"regexp"
	"strings"

	"github.com/outlinehq/pagesum/internal/lexicon"
)

// Sentence is one surviving sentence with its derived features. Index is the
// ordinal within the post-filter sequence: positions used for scoring and for
// coherence gaps refer to the quality-sentence order, not the raw split order.
type Sentence struct {
	Text              string
	Index             int
	WordCount         int
	HasNumbers        bool
	HasImportantWords bool
	Score             float64
}

// ErrTooFewSentences indicates fewer than MinSentences quality sentences
// survived filtering, too little material for any summary mode.
var ErrTooFewSentences = errors.New("not enough sentences for meaningful summary")

// MinSentences is the floor below which segmentation fails.
const MinSentences = 3

var (
	splitRe   = regexp.MustCompile(`([.!?])\s+`)
	digitRe   = regexp.MustCompile(`\d`)
	letterRe  = regexp.MustCompile(`[a-zA-Z]`)
	allCapsRe = regexp.MustCompile(`^[A-Z\s]+$`)
	numbersRe = regexp.MustCompile(`^\d+[\s\d]*$`)
)

// Split breaks text on sentence-terminal punctuation followed by whitespace,
// keeping the terminator attached to the preceding sentence.
func Split(text string) []string {
	marked := splitRe.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Segment splits text into sentences, drops low-quality candidates, and
// assigns sequential indices to the survivors in document order.
func Segment(text string) ([]Sentence, error) {
	raw := Split(text)
	out := make([]Sentence, 0, len(raw))
	for _, s := range raw {
		if !IsQuality(s) {
			continue
		}
		out = append(out, Sentence{
			Text:              s,
			Index:             len(out),
			WordCount:         len(strings.Fields(s)),
			HasNumbers:        digitRe.MatchString(s),
			HasImportantWords: lexicon.HasImportanceIndicator(s),
		})
	}
	if len(out) < MinSentences {
		return nil, ErrTooFewSentences
	}
	return out, nil
}

// IsQuality applies the sentence-level filters: length bounds, a letter
// requirement, an all-caps heading rejection, a verb requirement, boilerplate
// pattern rejection, and a meaningful-word density floor.
func IsQuality(sentence string) bool {
	words := strings.Fields(sentence)
	wordCount := len(words)
	if wordCount < 6 || wordCount > 60 {
		return false
	}
	if !letterRe.MatchString(sentence) {
		return false
	}
	if allCapsRe.MatchString(sentence) {
		return false
	}
	if numbersRe.MatchString(sentence) {
		return false
	}
	if sentence[0] < 'A' || sentence[0] > 'Z' {
		return false
	}
	if !strings.ContainsAny(sentence[len(sentence)-1:], ".!?") {
		return false
	}
	if lexicon.RejectsSentence(sentence) {
		return false
	}
	if !lexicon.HasVerb(sentence) {
		return false
	}

	meaningful := 0
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,!?;:"))
		if len(w) > 2 && !lexicon.IsStopWord(w) {
			meaningful++
		}
	}
	if meaningful < 3 {
		return false
	}
	if float64(meaningful) < float64(wordCount)*0.4 {
		return false
	}
	return true
}
