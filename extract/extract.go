// Package extract turns a rendered DOM subtree into readable Markdown.
//
// The pipeline has four stages, each feeding the next:
//   - visibility filter: drop text under hidden ancestors
//   - block segmenter:   group visible text by nearest block ancestor
//   - line-break check:  decide newline vs space inside a block
//   - formatter:         map block kinds to Markdown constructs
//
// Extract never fails. It runs a ladder of strategies and stops at the
// first non-empty result:
//
//  1. site adapter (optional hostname-keyed override)
//  2. tree walker (segmenter + formatter)
//  3. innerText approximation
//  4. raw text content (always terminates the ladder)
//
// Usage:
//
//	doc, _ := html.Parse(strings.NewReader(page))
//	res := extract.Extract(doc, extract.Options{})
//	fmt.Println(res.Strategy, res.Text)
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strategy identifies which ladder tier produced a result.
type Strategy string

const (
	StrategyTreeWalker  Strategy = "dom_tree_walker"
	StrategyInnerText   Strategy = "inner_text"
	StrategyTextContent Strategy = "text_content"
	StrategySiteAdapter Strategy = "site_adapter"
)

// Result is the output of one extraction call.
type Result struct {
	Text     string   `json:"text"`
	Strategy Strategy `json:"strategy"`
	Adapter  string   `json:"adapter,omitempty"` // set only for site_adapter results
}

// Options controls extraction behaviour.
type Options struct {
	// Layout answers computed-style queries. Nil falls back to AttrLayout,
	// which reads inline styles and renderer annotations.
	Layout Layout

	// Hostname of the page being extracted, matched against Adapters.
	Hostname string

	// Adapters are tried in order before the generic pipeline; the first
	// one whose Match accepts Hostname wins. Failures fall through.
	Adapters []Adapter
}

func (o *Options) defaults() {
	if o.Layout == nil {
		o.Layout = AttrLayout{}
	}
}

// Adapter is a hostname-keyed override for pages with known structure.
// It bypasses the generic pipeline entirely.
type Adapter struct {
	Name    string
	Match   func(hostname string) bool
	Extract func(root *html.Node) (string, error)
}

// Extract runs the extraction ladder on a DOM subtree. It always returns
// exactly one Result; an empty subtree yields Text == "" with the final
// tier's strategy tag, never an error.
func Extract(root *html.Node, opts Options) *Result {
	opts.defaults()

	if root == nil {
		return &Result{Text: "", Strategy: StrategyTextContent}
	}

	// Tier 1: site adapters. Any error or empty output falls through.
	for _, a := range opts.Adapters {
		if a.Match == nil || a.Extract == nil || !a.Match(opts.Hostname) {
			continue
		}
		text, err := a.Extract(root)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return &Result{Text: text, Strategy: StrategySiteAdapter, Adapter: a.Name}
		}
	}

	// Tier 2: tree walker.
	if text := Format(Segments(root, opts.Layout)); strings.TrimSpace(text) != "" {
		return &Result{Text: text, Strategy: StrategyTreeWalker}
	}

	// Tier 3: innerText approximation (respects visibility).
	if text := innerText(root, opts.Layout); text != "" {
		return &Result{Text: text, Strategy: StrategyInnerText}
	}

	// Tier 4: raw text content. Never fails, empty output is legal.
	return &Result{Text: textContent(root), Strategy: StrategyTextContent}
}

// ExtractHTML parses raw HTML and runs the extraction ladder on the
// resulting document. A parse failure is the only error path.
func ExtractHTML(rawHTML []byte, opts Options) (*Result, error) {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return Extract(doc, opts), nil
}

// Title returns the page <title> text, or "".
func Title(doc *html.Node) string {
	var title string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			if n.FirstChild != nil {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return title
}
