// Package lexicon holds the constant word lists and pattern sets shared by the
// segmentation, scoring, and validation stages. Everything here is immutable
// after package init so the stages can be pure functions over their inputs.
package lexicon

import (
	"regexp"
	"strings"
)

// stopWords is the closed set of words ignored by keyword extraction and the
// meaningful-word density checks.
var stopWords = map[string]struct{}{}

var stopWordList = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has",
	"he", "in", "is", "it", "its", "of", "on", "that", "the", "to", "was",
	"will", "with", "would", "could", "should", "shall", "may", "might",
	"can", "must", "ought", "i", "you", "we", "they", "she", "him", "her",
	"us", "them", "this", "these", "those", "there", "then", "than", "also",
	"just", "only", "but", "or", "so", "very", "all", "any", "both", "each",
	"few", "more", "most", "other", "some", "such", "no", "nor", "not",
	"own", "same", "too",
}

// Transition lexicons grouped by discourse function. Any hit counts the same
// during scoring; the grouping is kept for coherence checks that care about
// sentence-initial transitions.
var transitionGroups = [][]string{
	// cause
	{"because", "since", "due to", "as a result", "therefore", "thus", "consequently"},
	// contrast
	{"however", "but", "although", "despite", "while", "whereas", "on the other hand"},
	// addition
	{"also", "furthermore", "moreover", "additionally", "in addition", "besides"},
	// sequence
	{"first", "second", "next", "then", "finally", "lastly", "subsequently"},
}

// sentenceTransitions are the connectives recognized at the start of a
// sentence when judging inter-sentence coherence.
var sentenceTransitions = []string{
	"however", "therefore", "furthermore", "additionally", "moreover",
	"consequently", "meanwhile", "similarly", "in contrast", "as a result",
}

var importancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(important|significant|key|main|primary|essential|crucial|critical|major)\b`),
	regexp.MustCompile(`(?i)\b(result|conclusion|finding|discovery|research|study|analysis)\b`),
	regexp.MustCompile(`(?i)\b(shows|demonstrates|proves|indicates|suggests|reveals|confirms)\b`),
	regexp.MustCompile(`(?i)\b(however|therefore|thus|consequently|as a result|in conclusion|overall)\b`),
	regexp.MustCompile(`(?i)\b(according to|experts|scientists|researchers|study)\b`),
}

// verbPattern is a high-frequency verb list used as a cheap grammaticality
// check: a fragment with none of these is almost never a real sentence.
var verbPattern = regexp.MustCompile(`(?i)\b(is|are|was|were|have|has|had|do|does|did|will|would|can|could|should|shall|may|might|must|make|makes|take|takes|get|gets|go|goes|come|comes|see|sees|know|knows|think|thinks|say|says|tell|tells|show|shows|give|gives|work|works|use|uses|help|helps|need|needs|want|wants|find|finds|become|becomes|include|includes|provide|provides|allow|allows|create|creates|offer|offers|require|requires|explain|explains|describe|describes|discuss|discusses|analyze|analyzes|examine|examines|explore|explores|demonstrate|demonstrates|illustrate|illustrates|reveal|reveals|suggest|suggests|indicate|indicates|conclude|concludes|determine|determines|establish|establishes|develop|develops|implement|implements|apply|applies|consider|considers|evaluate|evaluates|assess|assesses|compare|compares|focus|focuses|emphasize|emphasizes|highlight|highlights|address|addresses|solve|solves|resolve|resolves|improve|improves|enhance|enhances|increase|increases|reduce|reduces|prevent|prevents|ensure|ensures|maintain|maintains|support|supports|enable|enables|promote|promotes|encourage|encourages|facilitate|facilitates)\b`)

// QualityIndicators mark vocabulary that suggests substantive, informative
// prose (academic, explanatory, or problem-solution language).
var QualityIndicators = []string{
	"research", "study", "analysis", "findings", "results", "conclusion",
	"evidence", "data", "statistics", "report", "survey", "experiment",
	"because", "therefore", "however", "furthermore", "moreover",
	"consequently", "specifically", "particularly", "especially",
	"importantly", "significantly",
	"introduction", "background", "methodology", "discussion", "summary",
	"overview", "review", "comparison", "evaluation", "assessment",
	"problem", "solution", "challenge", "approach", "strategy", "method",
	"process", "procedure", "technique", "implementation", "application",
}

// lowQualityPatterns match navigation remnants, UI phrasing, and boilerplate
// disclaimers that disqualify a sentence (or a whole summary).
var lowQualityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(click here|read more|see more|learn more|find out|discover)`),
	regexp.MustCompile(`(?i)^(enter|type|input|select|choose)\s+`),
	regexp.MustCompile(`(?i)^\d+\s+(comments?|replies?|likes?|shares?|views?)`),
	regexp.MustCompile(`(?i)\b(subscribe|sign up|log in|register now)\b.*\b(newsletter|account|free)\b`),
	regexp.MustCompile(`(?i)simplified to improve.*reading`),
	regexp.MustCompile(`(?i)constantly reviewed.*avoid errors`),
	regexp.MustCompile(`(?i)cannot warrant.*correctness`),
	regexp.MustCompile(`(?i)agree.*terms.*privacy`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)powered by.*css`),
}

// sentenceRejectPatterns disqualify a candidate sentence outright during
// segmentation: UI verbs, nav labels, auth/legal vocabulary.
var sentenceRejectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(click here|read more|subscribe|follow us|share this)\b`),
	regexp.MustCompile(`(?i)\b(menu|navigation|sidebar|breadcrumb)\b`),
	regexp.MustCompile(`(?i)\b(login|signup|register|download now|install now)\b`),
	regexp.MustCompile(`(?i)\b(terms of use|privacy policy|cookie policy|gdpr)\b`),
}

func init() {
	for _, w := range stopWordList {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether w (already lower-cased) carries no topical
// content on its own.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// HasVerb reports whether s contains at least one common English verb form.
func HasVerb(s string) bool {
	return verbPattern.MatchString(s)
}

// HasImportanceIndicator reports whether s matches the importance lexicon
// (result/conclusion vocabulary, discourse markers, attribution phrases).
func HasImportanceIndicator(s string) bool {
	for _, p := range importancePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// HasTransition reports whether s contains any transition phrase, anywhere.
func HasTransition(s string) bool {
	low := strings.ToLower(s)
	for _, group := range transitionGroups {
		for _, t := range group {
			if strings.Contains(low, t) {
				return true
			}
		}
	}
	return false
}

// StartsWithTransition reports whether s opens with a transition phrase, the
// signal used when deciding if an injected connective would double up.
func StartsWithTransition(s string) bool {
	low := strings.ToLower(strings.TrimSpace(s))
	for _, group := range transitionGroups {
		for _, t := range group {
			if strings.HasPrefix(low, t) {
				return true
			}
		}
	}
	return false
}

// OpensCoherently reports whether s begins with a sentence-level connective
// recognized by the coherence checks.
func OpensCoherently(s string) bool {
	low := strings.ToLower(strings.TrimSpace(s))
	for _, t := range sentenceTransitions {
		if strings.HasPrefix(low, t) {
			return true
		}
	}
	return false
}

// HasQualityIndicator reports whether s contains any quality-indicator term.
func HasQualityIndicator(s string) bool {
	low := strings.ToLower(s)
	for _, q := range QualityIndicators {
		if strings.Contains(low, q) {
			return true
		}
	}
	return false
}

// MatchesLowQuality reports whether s trips any low-quality pattern.
func MatchesLowQuality(s string) bool {
	for _, p := range lowQualityPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// RejectsSentence reports whether a candidate sentence matches a pattern that
// disqualifies it during segmentation.
func RejectsSentence(s string) bool {
	for _, p := range sentenceRejectPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return MatchesLowQuality(s)
}

var nonWord = regexp.MustCompile(`[^\w]`)

// Keywords returns up to the first five non-stopword tokens longer than three
// characters, lower-cased and stripped of punctuation. Used for coherence and
// diversity checks.
func Keywords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, 5)
	for _, f := range fields {
		w := nonWord.ReplaceAllString(f, "")
		if len(w) <= 3 || IsStopWord(w) {
			continue
		}
		out = append(out, w)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// ContentWords returns the non-stopword tokens of text longer than three
// characters, without the five-token cap of Keywords.
func ContentWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := nonWord.ReplaceAllString(f, "")
		if len(w) <= 3 || IsStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
