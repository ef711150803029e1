package adapters

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// densityExtractor finds the main content of a page without knowing its
// structure: semantic landmarks first, then the subtree with the highest
// text-to-markup ratio, discounting link-heavy regions (navigation).
func densityExtractor(minLen int) func(root *html.Node) (string, error) {
	return func(root *html.Node) (string, error) {
		// Semantic landmarks win when they carry enough text.
		var parts []string
		for _, n := range findLandmarks(root) {
			if isBoilerplate(n) {
				continue
			}
			if text := collectText(n); len(text) >= minLen {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n\n"), nil
		}

		if best := densestNode(root, minLen); best != nil {
			return collectText(best), nil
		}
		return "", fmt.Errorf("no content region above %d chars", minLen)
	}
}

// findLandmarks returns <main> or <article> elements, preferring <main>.
func findLandmarks(root *html.Node) []*html.Node {
	for _, tag := range []atom.Atom{atom.Main, atom.Article} {
		var nodes []*html.Node
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.ElementNode && n.DataAtom == tag {
				nodes = append(nodes, n)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(root)
		if len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// densestNode scores content-bearing subtrees and returns the best one.
// Score favours high text density and long text, and punishes regions
// whose text lives mostly inside links.
func densestNode(root *html.Node, minLen int) *html.Node {
	type candidate struct {
		node     *html.Node
		score    float64
		linkDens float64
	}
	var candidates []candidate

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isBoilerplate(n) {
			return
		}
		if n.Type == html.ElementNode && (contentAtom(n.DataAtom) || n.DataAtom == atom.Body) {
			text := collectText(n)
			if len(text) >= minLen {
				markup := len(renderNode(n))
				if markup == 0 {
					markup = 1
				}
				linkDens := float64(len(collectLinkText(n))) / float64(len(text))
				density := float64(len(text)) / float64(markup)
				candidates = append(candidates, candidate{
					node:     n,
					score:    density * lengthScale(len(text)) * (1 - linkDens),
					linkDens: linkDens,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var best *html.Node
	bestScore := 0.0
	for _, c := range candidates {
		if c.linkDens > 0.5 {
			continue // mostly links, probably navigation
		}
		if c.score > bestScore {
			bestScore = c.score
			best = c.node
		}
	}
	return best
}

// lengthScale grows logarithmically with text length so long articles
// beat short dense snippets without swamping the density term.
func lengthScale(n int) float64 {
	scale := 1.0
	for n > 100 {
		scale++
		n /= 2
	}
	return scale
}

// collectText extracts all text from a subtree, space-joined, skipping
// script and style content.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collectLinkText extracts text living inside <a> elements only.
func collectLinkText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			inLink = true
		}
		if n.Type == html.TextNode && inLink {
			sb.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inLink)
		}
	}
	walk(n, false)
	return sb.String()
}

func contentAtom(a atom.Atom) bool {
	switch a {
	case atom.Main, atom.Article, atom.Section, atom.Div, atom.P,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Pre, atom.Ul, atom.Ol, atom.Li,
		atom.Table, atom.Td, atom.Th, atom.Dl, atom.Dd, atom.Dt,
		atom.Figure, atom.Figcaption, atom.Details, atom.Summary:
		return true
	}
	return false
}

// isBoilerplate flags navigation, footer, and ad-like regions by tag,
// role, and common class/id naming.
func isBoilerplate(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Nav, atom.Footer, atom.Header, atom.Aside:
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "class", "id":
			lower := strings.ToLower(a.Val)
			for _, pattern := range boilerplatePatterns {
				if strings.Contains(lower, pattern) {
					return true
				}
			}
		case "role":
			switch a.Val {
			case "navigation", "banner", "contentinfo", "complementary":
				return true
			}
		}
	}
	return false
}

var boilerplatePatterns = []string{
	"sidebar", "footer", "header", "nav", "menu", "breadcrumb",
	"cookie", "banner", "advert", "social", "share", "comment",
	"related", "widget", "popup", "modal",
}
