package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// walk policy per element node.
type policy int

const (
	// keep emits the node's text and block boundary, then recurses.
	keep policy = iota
	// recurse descends without emitting structure for the node itself.
	recurse
	// drop rejects the whole subtree.
	drop
)

var dropTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "nav": {}, "header": {}, "footer": {},
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "article": {}, "section": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "li": {},
}

func policyFor(n *html.Node) policy {
	name := strings.ToLower(n.Data)
	if _, ok := dropTags[name]; ok {
		return drop
	}
	if _, ok := blockTags[name]; ok {
		return keep
	}
	return recurse
}

// structuredText extracts text from the selection's subtree with a recursive
// walk, rejecting boilerplate subtrees during traversal rather than filtering
// serialized text afterwards. The input tree is never modified.
func structuredText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		walkNode(&b, n)
	}
	return strings.TrimSpace(b.String())
}

func walkNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch policyFor(n) {
		case drop:
			return
		case keep:
			b.WriteString("\n")
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNode(b, c)
	}
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}
