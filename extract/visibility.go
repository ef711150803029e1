package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Layout answers computed-style queries for elements. The pipeline only
// needs three facts per element, so a mock tree is enough for tests and
// a renderer binding is enough for live pages.
type Layout interface {
	// Hidden reports whether the element carries a truthy hidden attribute.
	Hidden(el *html.Node) bool
	// Display returns the computed display value, or "" if unknown.
	Display(el *html.Node) string
	// Visibility returns the computed visibility value, or "" if unknown.
	Visibility(el *html.Node) string
}

// Annotation attributes stamped by the renderer when it snapshots a live
// page. They carry computed style values that inline styles cannot show.
const (
	attrDisplay    = "data-uic-display"
	attrVisibility = "data-uic-visibility"
)

var (
	displayNoneRe      = regexp.MustCompile(`(?i)display\s*:\s*none`)
	visibilityHiddenRe = regexp.MustCompile(`(?i)visibility\s*:\s*hidden`)
)

// AttrLayout derives style facts from attributes alone: the hidden
// attribute, renderer annotations, and inline style declarations. It is
// the default Layout for parsed snapshots.
type AttrLayout struct{}

func (AttrLayout) Hidden(el *html.Node) bool {
	_, ok := findAttr(el, "hidden")
	return ok
}

func (AttrLayout) Display(el *html.Node) string {
	if v, ok := findAttr(el, attrDisplay); ok {
		return v
	}
	if v, ok := findAttr(el, "style"); ok && displayNoneRe.MatchString(v) {
		return "none"
	}
	return ""
}

func (AttrLayout) Visibility(el *html.Node) string {
	if v, ok := findAttr(el, attrVisibility); ok {
		return v
	}
	if v, ok := findAttr(el, "style"); ok && visibilityHiddenRe.MatchString(v) {
		return "hidden"
	}
	return ""
}

// Visible reports whether a text node is rendered. It climbs the ancestor
// chain (excluding the node itself) and rejects the node if any ancestor
// is hidden, aria-hidden, display:none, or visibility:hidden. A node with
// no parent chain is visible: detached nodes fail open.
func Visible(n *html.Node, layout Layout) bool {
	for el := n.Parent; el != nil; el = el.Parent {
		if el.Type != html.ElementNode {
			continue
		}
		if layout.Hidden(el) {
			return false
		}
		if v, ok := findAttr(el, "aria-hidden"); ok && strings.EqualFold(v, "true") {
			return false
		}
		if layout.Display(el) == "none" {
			return false
		}
		if layout.Visibility(el) == "hidden" {
			return false
		}
	}
	return true
}

func findAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
