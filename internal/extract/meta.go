package extract

import (
	"bytes"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

// extractTitle walks a priority chain of title sources; first non-empty wins.
func extractTitle(doc *goquery.Document) string {
	sources := []func() string{
		func() string { return doc.Find("h1").First().Text() },
		func() string { return doc.Find(".title").First().Text() },
		func() string { return doc.Find(".post-title").First().Text() },
		func() string { return metaContent(doc, `meta[property="og:title"]`) },
		func() string { return metaContent(doc, `meta[name="twitter:title"]`) },
		func() string { return doc.Find("title").First().Text() },
	}
	for _, source := range sources {
		if title := strings.TrimSpace(source()); title != "" {
			return title
		}
	}
	return "Untitled Page"
}

// extractMetadata fills best-effort fields from prioritized meta chains.
func extractMetadata(doc *goquery.Document) Metadata {
	var m Metadata

	for _, sel := range []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	} {
		if v := metaContent(doc, sel); v != "" {
			m.Description = v
			break
		}
	}

	if v := metaContent(doc, `meta[name="author"]`); v != "" {
		m.Author = v
	} else if v := strings.TrimSpace(doc.Find(".author").First().Text()); v != "" {
		m.Author = v
	} else if v := strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text()); v != "" {
		m.Author = v
	}

	for _, sel := range []string{
		`meta[property="article:published_time"]`,
		`meta[name="publish_date"]`,
		"time[datetime]",
		".publish-date",
		".post-date",
	} {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		date := s.AttrOr("datetime", "")
		if date == "" {
			date = s.AttrOr("content", "")
		}
		if date == "" {
			date = s.Text()
		}
		if date = strings.TrimSpace(date); date != "" {
			m.PublishDate = date
			break
		}
	}
	return m
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// detectLanguage returns the ISO 639-1 code of the content's language, or
// empty when detection is inconclusive. The detector is built once; model
// loading is the expensive part.
func detectLanguage(content string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English, lingua.Spanish, lingua.French, lingua.German,
				lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Russian,
				lingua.Chinese, lingua.Japanese,
			).
			Build()
	})
	sample := content
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	lang, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// readabilityRescue runs a readability pass as the final strategy when the
// heuristic ladder came up short, as happens on heavily scripted pages.
func readabilityRescue(input []byte, pageURL string) string {
	u := &url.URL{}
	if pageURL != "" {
		if parsed, err := url.Parse(pageURL); err == nil {
			u = parsed
		}
	}
	article, err := readability.FromReader(bytes.NewReader(input), u)
	if err != nil {
		return ""
	}
	return cleanContent(article.TextContent)
}
