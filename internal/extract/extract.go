// Package extract resolves the main readable content of an HTML page. It
// tries a ladder of strategies, from container selectors down to a
// readability pass, and cleans the winner before handing it to the
// summarization pipeline.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// Page is the extraction result for one document.
type Page struct {
	Content   string
	Title     string
	WordCount int
	URL       string
	Domain    string
	Metadata  Metadata
}

// Metadata holds best-effort fields; absence is not an error.
type Metadata struct {
	Description string
	Author      string
	PublishDate string
	Language    string
}

// ErrInsufficientContent indicates no strategy produced enough text.
var ErrInsufficientContent = errors.New("insufficient content")

// MinContentChars is the floor below which extraction fails.
const MinContentChars = 100

// Likely main-content containers, in priority order.
var contentSelectors = []string{
	"main",
	"article",
	"[role=\"main\"]",
	".main-content",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	".post-body",
	"#main-content",
	"#content",
	".story-body",
	".article-text",
}

const (
	candidateFloorChars = 100
	selectorScoreBar    = 50
	selectorLengthBar   = 300
	smartBodyFloorChars = 150
)

// Extract parses input and resolves its main content. pageURL is used for
// provenance fields and the readability rescue pass; it may be empty for
// local files.
func Extract(input []byte, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	content, score := bestSelectorCandidate(doc)
	if score < selectorScoreBar || len(content) < selectorLengthBar {
		log.Debug().Str("stage", "extract").Msg("selector scan weak, trying smart paragraph extraction")
		if smart := smartBodyExtraction(doc); len(smart) > len(content) || score < selectorScoreBar {
			content = smart
		}
	}
	if len(content) < smartBodyFloorChars {
		log.Debug().Str("stage", "extract").Msg("falling back to longest paragraphs")
		content = longestParagraphs(doc)
	}

	content = cleanContent(content)
	if len(content) < MinContentChars {
		if rescued := readabilityRescue(input, pageURL); len(rescued) >= MinContentChars {
			log.Debug().Str("stage", "extract").Msg("readability rescue succeeded")
			content = rescued
		}
	}
	if len(content) < MinContentChars {
		return nil, ErrInsufficientContent
	}

	page := &Page{
		Content:   content,
		Title:     extractTitle(doc),
		WordCount: len(strings.Fields(content)),
		URL:       pageURL,
		Domain:    domainOf(pageURL),
		Metadata:  extractMetadata(doc),
	}
	page.Metadata.Language = detectLanguage(content)
	if page.Metadata.Language != "" && page.Metadata.Language != "en" {
		log.Warn().Str("stage", "extract").Str("language", page.Metadata.Language).Msg("non-English content, extractive scoring is tuned for English")
	}
	return page, nil
}

// bestSelectorCandidate scans the priority selectors and keeps the
// highest-scoring element whose text clears the candidate floor.
func bestSelectorCandidate(doc *goquery.Document) (string, float64) {
	var bestText string
	var bestScore float64
	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := structuredText(s)
			score := scoreContent(text, s)
			if score > bestScore && len(text) > candidateFloorChars {
				bestText = text
				bestScore = score
			}
		})
	}
	return bestText, bestScore
}

// scoreContent rates how article-like a candidate container's text is.
func scoreContent(text string, s *goquery.Selection) float64 {
	var score float64

	if lengthBonus := float64(len(text)) / 100; lengthBonus < 50 {
		score += lengthBonus
	} else {
		score += 50
	}
	for _, p := range strings.Split(text, "\n\n") {
		if len(strings.TrimSpace(p)) > 50 {
			score += 5
		}
	}
	for _, sent := range splitRough(text) {
		if len(strings.TrimSpace(sent)) > 20 {
			score += 2
		}
	}

	tag := goquery.NodeName(s)
	class := strings.ToLower(s.AttrOr("class", ""))
	id := strings.ToLower(s.AttrOr("id", ""))

	switch tag {
	case "article":
		score += 20
	case "main":
		score += 15
	}
	if strings.Contains(class, "content") || strings.Contains(class, "article") {
		score += 10
	}
	if strings.Contains(class, "post") || strings.Contains(class, "story") {
		score += 10
	}
	if strings.Contains(id, "content") || strings.Contains(id, "article") {
		score += 10
	}
	for _, bad := range []string{"nav", "menu", "sidebar", "footer"} {
		if strings.Contains(class, bad) {
			score -= 20
			break
		}
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > 0 {
		unique := map[string]struct{}{}
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < 0.3 {
			score -= 15
		}
	}
	return score
}

// smartBodyExtraction scores every paragraph individually and keeps the top
// ten that score at least 30% of the best, in document order.
func smartBodyExtraction(doc *goquery.Document) string {
	type scored struct {
		order int
		text  string
		score float64
	}
	var candidates []scored
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) <= 30 {
			return
		}
		if sc := scoreParagraph(text, s); sc > 0 {
			candidates = append(candidates, scored{order: i, text: text, score: sc})
		}
	})
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	bar := candidates[0].score * 0.3
	if bar < 1 {
		bar = 1
	}
	limit := 10
	if len(candidates) < limit {
		limit = len(candidates)
	}
	picked := make([]scored, 0, limit)
	for _, c := range candidates[:limit] {
		if c.score >= bar {
			picked = append(picked, c)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].order < picked[j].order })

	parts := make([]string, 0, len(picked))
	for _, c := range picked {
		parts = append(parts, c.text)
	}
	return strings.Join(parts, "\n\n")
}

// scoreParagraph rates a single paragraph by its own text and its ancestor
// chain. Boilerplate phrases carry a heavy penalty so footer text loses to
// genuine body paragraphs even on long pages.
func scoreParagraph(text string, s *goquery.Selection) float64 {
	var score float64
	lower := strings.ToLower(text)

	if lengthBonus := float64(len(text)) / 50; lengthBonus < 10 {
		score += lengthBonus
	} else {
		score += 10
	}
	for _, sent := range splitRough(text) {
		if len(strings.TrimSpace(sent)) > 10 {
			score += 2
		}
	}

	s.Parents().Each(func(_ int, parent *goquery.Selection) {
		tag := goquery.NodeName(parent)
		if tag == "body" || tag == "html" {
			return
		}
		class := strings.ToLower(parent.AttrOr("class", ""))
		if tag == "article" || tag == "main" {
			score += 5
		}
		for _, good := range []string{"content", "article", "post", "story"} {
			if strings.Contains(class, good) {
				score += 3
				break
			}
		}
		for _, bad := range []string{"nav", "sidebar", "menu", "footer", "header", "contact", "support", "help"} {
			if strings.Contains(class, bad) {
				score -= 10
				break
			}
		}
	})

	for _, phrase := range footerPhrases {
		if strings.Contains(lower, phrase) {
			score -= 50
			break
		}
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		navCount := 0
		for _, w := range words {
			if _, ok := navKeywords[w]; ok {
				navCount++
			}
		}
		if float64(navCount)/float64(len(words)) > 0.2 {
			score -= 10
		}
	}
	return score
}

// longestParagraphs is the last resort: the five longest p/div text blocks
// over 100 chars, longest first.
func longestParagraphs(doc *goquery.Document) string {
	var blocks []string
	doc.Find("p, div").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 100 {
			blocks = append(blocks, text)
		}
	})
	sort.SliceStable(blocks, func(i, j int) bool { return len(blocks[i]) > len(blocks[j]) })
	if len(blocks) > 5 {
		blocks = blocks[:5]
	}
	return strings.Join(blocks, "\n\n")
}

// splitRough is a cheap sentence split used only for scoring counts.
func splitRough(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func domainOf(pageURL string) string {
	if pageURL == "" {
		return ""
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
