package adapters

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// selectorExtractor collects text from nodes matching simple CSS
// selectors. Supported forms: tag, .class, #id, tag.class, tag#id,
// tag[attr], tag[attr=val], and space-separated descendant chains.
func selectorExtractor(selectors []string, minLen int) func(root *html.Node) (string, error) {
	return func(root *html.Node) (string, error) {
		var parts []string
		for _, sel := range selectors {
			for _, n := range selectAll(root, sel) {
				text := collectText(n)
				if len(text) >= minLen {
					parts = append(parts, text)
				}
			}
		}
		if len(parts) == 0 {
			return "", fmt.Errorf("no content matched selectors: %v", selectors)
		}
		return strings.Join(parts, "\n\n"), nil
	}
}

// selectAll returns all nodes matching a selector, resolving descendant
// combinators left to right.
func selectAll(root *html.Node, selector string) []*html.Node {
	steps := strings.Fields(selector)
	if len(steps) == 0 {
		return nil
	}
	matches := matchStep(root, steps[0])
	for _, step := range steps[1:] {
		var next []*html.Node
		for _, parent := range matches {
			next = append(next, matchStep(parent, step)...)
		}
		matches = next
	}
	return matches
}

func matchStep(root *html.Node, step string) []*html.Node {
	want := parseStep(step)
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if want.matches(n) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return results
}

type selectorStep struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

func parseStep(step string) selectorStep {
	var s selectorStep

	if idx := strings.IndexByte(step, '['); idx >= 0 {
		attr := strings.TrimRight(step[idx+1:], "]")
		step = step[:idx]
		if eq := strings.IndexByte(attr, '='); eq >= 0 {
			s.attrKey = attr[:eq]
			s.attrVal = strings.Trim(attr[eq+1:], `"'`)
		} else {
			s.attrKey = attr
		}
	}
	if idx := strings.IndexByte(step, '#'); idx >= 0 {
		s.id = step[idx+1:]
		step = step[:idx]
	}
	if idx := strings.IndexByte(step, '.'); idx >= 0 {
		s.class = step[idx+1:]
		step = step[:idx]
	}
	s.tag = step
	return s
}

func (s selectorStep) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && attrValue(n, "id") != s.id {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	if s.attrKey != "" {
		val, ok := lookupAttr(n, s.attrKey)
		if !ok {
			return false
		}
		if s.attrVal != "" && val != s.attrVal {
			return false
		}
	}
	return true
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
