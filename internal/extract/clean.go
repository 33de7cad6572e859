package extract

import (
	"regexp"
	"strings"
)

// Curated boilerplate phrases that mark footer, consent and support text.
// Matching is substring, lower-case.
var footerPhrases = []string{
	"examples might be simplified",
	"constantly reviewed",
	"warrant full correctness",
	"terms of use",
	"cookie and privacy policy",
	"all rights reserved",
	"copyright",
	"powered by",
	"contact support",
	"technical support",
	"customer service",
	"report a bug",
	"feedback and suggestions",
	"websites use cookies",
	"cookies to personalize",
	"personalize user experience",
	"improve site performance",
	"control cookie settings",
	"manage their privacy",
}

// Words whose density marks a line as navigation rather than prose.
var navKeywords = map[string]struct{}{
	"home": {}, "about": {}, "contact": {}, "menu": {}, "login": {},
	"search": {}, "subscribe": {}, "click": {}, "here": {}, "read": {}, "more": {},
}

// Whole-section boilerplate stripped before line filtering.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)these cookies also allow us to count visits and traffic sources so we can measure and improve the performance of our site`),
	regexp.MustCompile(`(?i)these cookies provide metrics related to the performance and usability of our site`),
	regexp.MustCompile(`(?i)while using .{0,80}you agree .{0,80}terms of use`),
}

// Per-line rejects: exact UI words, pure punctuation or digits, tiny fragments.
var fragmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(home|about|contact|menu|login|search|subscribe|newsletter)$`),
	regexp.MustCompile(`(?i)^(privacy policy|terms of service|cookie policy)$`),
	regexp.MustCompile(`(?i)^(follow us|social media|share this)$`),
	regexp.MustCompile(`(?i)^(advertisement|sponsored|promoted)$`),
	regexp.MustCompile(`(?i)^(loading|please wait|redirecting)$`),
	regexp.MustCompile(`(?i)^(prev|previous|next|continue|read more)$`),
	regexp.MustCompile(`(?i)^(breadcrumbs?|navigation|site map)$`),
	regexp.MustCompile(`(?i)^(sidebar|footer|header|banner)$`),
	regexp.MustCompile(`(?i)examples might be simplified to improve reading and learning`),
	regexp.MustCompile(`(?i)constantly reviewed to avoid errors but we cannot warrant full correctness`),
	regexp.MustCompile(`(?i)copyright.{0,40}all rights reserved`),
	regexp.MustCompile(`(?i)powered by`),
	regexp.MustCompile(`^[^a-zA-Z]*$`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^.{1,8}$`),
}

var (
	linkWordRe  = regexp.MustCompile(`(?i)\b(click here|read more|continue reading|learn more)\b`)
	multiSpace  = regexp.MustCompile(`\s+`)
	isolatedRe  = regexp.MustCompile(`\s+[.,;:!?]+\s+`)
	excessRe    = regexp.MustCompile(`[.,;:!?]{2,}`)
	twoWordLine = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
)

// cleanContent removes boilerplate and fragments from extracted text, then
// normalizes whitespace. Runs after every extraction strategy; the result is
// what gets scored, summarized and displayed.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}
	for _, re := range boilerplatePatterns {
		content = re.ReplaceAllString(content, "")
	}

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !keepLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	content = strings.Join(kept, "\n\n")

	content = multiSpace.ReplaceAllString(content, " ")
	content = isolatedRe.ReplaceAllString(content, " ")
	content = excessRe.ReplaceAllString(content, ".")
	content = dedupeRepeatedPhrases(content)
	content = multiSpace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// keepLine decides whether a cleaned line carries real content.
func keepLine(line string) bool {
	for _, re := range fragmentPatterns {
		if re.MatchString(line) {
			return false
		}
	}
	lower := strings.ToLower(line)
	for _, phrase := range footerPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	words := strings.Fields(line)
	if len(words) > 0 {
		linkWords := len(linkWordRe.FindAllString(line, -1))
		if float64(linkWords)/float64(len(words)) > 0.5 {
			return false
		}
	}
	if twoWordLine.MatchString(line) {
		return false
	}
	if len(line) > 12 && strings.ContainsAny(line, ".!?") {
		return true
	}
	if len(line) > 20 {
		return true
	}
	if len(line) > 8 && len(words) >= 2 {
		return true
	}
	return false
}

// dedupeRepeatedPhrases drops an immediately repeated phrase, a common
// artifact of navigation markup rendered twice.
func dedupeRepeatedPhrases(content string) string {
	words := strings.Fields(content)
	// Compare windows of up to 8 words against the following window.
	for window := 8; window >= 3; window-- {
		var out []string
		i := 0
		for i < len(words) {
			if i+2*window <= len(words) && equalFoldWords(words[i:i+window], words[i+window:i+2*window]) {
				out = append(out, words[i:i+window]...)
				i += 2 * window
				continue
			}
			out = append(out, words[i])
			i++
		}
		words = out
	}
	return strings.Join(words, " ")
}

func equalFoldWords(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
