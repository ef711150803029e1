package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// innerText approximates a browser's rendered-text property: visible text
// only, block boundaries and <br> as newlines, inline flow joined with
// spaces. Used by the ladder when the tree walker produced nothing.
func innerText(root *html.Node, layout Layout) string {
	var sb strings.Builder

	newline := func() {
		out := sb.String()
		if out != "" && !strings.HasSuffix(out, "\n") {
			sb.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := Normalize(n.Data)
			if text == "" {
				return
			}
			if out := sb.String(); out != "" && !strings.HasSuffix(out, "\n") {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			case atom.Br:
				sb.WriteByte('\n')
				return
			}
			if hiddenElement(n, layout) {
				return
			}
		}
		block := n.Type == html.ElementNode && blockAtoms[n.DataAtom]
		if block {
			newline()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			newline()
		}
	}
	walk(root)
	return strings.TrimSpace(sb.String())
}

// hiddenElement checks one element (not its ancestors) against the same
// rules as Visible.
func hiddenElement(el *html.Node, layout Layout) bool {
	if layout.Hidden(el) {
		return true
	}
	if v, ok := findAttr(el, "aria-hidden"); ok && strings.EqualFold(v, "true") {
		return true
	}
	return layout.Display(el) == "none" || layout.Visibility(el) == "hidden"
}

// textContent collects every text node under root, visible or not,
// space-joined and whitespace-collapsed. The last ladder tier: it cannot
// fail, and "" is a legal result.
func textContent(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := Normalize(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return sb.String()
}
