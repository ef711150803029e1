package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockKind classifies a segment's block-level ancestor.
type BlockKind int

const (
	BlockOther BlockKind = iota
	BlockHeading
	BlockQuote
	BlockCode
	BlockTerm
	BlockDefinition
	BlockListItem
)

// ListInfo describes nesting for list-item segments.
type ListInfo struct {
	Depth   int  // enclosing ul/ol count, minimum 1
	Ordered bool // the immediate parent list is <ol>
	Index   int  // 1-based position among <li> siblings, 0 when unordered
}

// Segment is one unit of extracted text tied to a single block ancestor.
// Segments are produced in document order and consumed once by Format.
type Segment struct {
	Text  string
	Tag   string // lowercase block tag, "" when no block ancestor exists
	Kind  BlockKind
	Level int       // heading level 1-6 for BlockHeading
	List  *ListInfo // set for BlockListItem
}

// blockAtoms is the fixed set of tags that open a structural boundary.
var blockAtoms = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true,
	atom.P: true, atom.Div: true, atom.Li: true, atom.Blockquote: true,
	atom.Pre: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tr: true,
	atom.Td: true, atom.Th: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Nav: true, atom.Header: true, atom.Footer: true,
	atom.Section: true, atom.Article: true, atom.Aside: true,
	atom.Main: true, atom.Figure: true, atom.Figcaption: true,
	atom.Ul: true, atom.Ol: true, atom.Form: true,
}

// run is one accepted text node with its resolved block ancestor. The walk
// emits an immutable run sequence; grouping into segments happens after.
type run struct {
	text    string
	block   *html.Node // nearest block ancestor, or the root itself
	newline bool       // starts a new line relative to the previous run
}

// Segments walks all visible text under root in document order and groups
// consecutive text sharing a block ancestor into segments. It never fails;
// a root with no visible text yields an empty slice.
func Segments(root *html.Node, layout Layout) []Segment {
	if layout == nil {
		layout = AttrLayout{}
	}
	return groupRuns(collectRuns(root, layout), root)
}

// collectRuns enumerates text nodes in pre-order, rejecting empty and
// invisible ones, and resolves each survivor's nearest block ancestor.
func collectRuns(root *html.Node, layout Layout) []run {
	var runs []run

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		if n.Type == html.TextNode {
			text := Normalize(n.Data)
			if text == "" || !Visible(n, layout) {
				return
			}
			block := blockAncestor(n, root)
			nl := false
			if len(runs) > 0 && runs[len(runs)-1].block == block {
				nl = breakBetween(n, block)
			}
			runs = append(runs, run{text: text, block: block, newline: nl})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return runs
}

// blockAncestor climbs parents until it hits a block-level tag or the
// root. The root itself bounds the search even when it is not a block tag.
func blockAncestor(n, root *html.Node) *html.Node {
	for el := n.Parent; el != nil; el = el.Parent {
		if el == root {
			return root
		}
		if el.Type == html.ElementNode && blockAtoms[el.DataAtom] {
			return el
		}
	}
	return root
}

// breakBetween decides whether cur starts a new line within its block.
// Scanning backwards from cur toward the block boundary, the last thing
// emitted before cur settles it: a <br> forces a newline, non-blank text
// means cur continues the same line. Nothing found at all means cur is
// isolated from its predecessors and starts fresh.
func breakBetween(cur, block *html.Node) bool {
	for n := cur; n != nil && n != block; n = n.Parent {
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			br, text := lastSignal(s)
			if br {
				return true
			}
			if text {
				return false
			}
		}
	}
	return true
}

// lastSignal finds the last <br> or non-blank text inside a subtree in
// document order, skipping script and style payloads. A <br> nested after
// a sibling's final text still counts as the most recent signal.
func lastSignal(n *html.Node) (br, text bool) {
	if n.Type == html.TextNode {
		return false, strings.TrimSpace(n.Data) != ""
	}
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return false, false
		case atom.Br:
			return true, false
		}
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if br, text = lastSignal(c); br || text {
			return br, text
		}
	}
	return false, false
}

// groupRuns folds runs of the same block ancestor into segments.
func groupRuns(runs []run, root *html.Node) []Segment {
	var segments []Segment
	var buf strings.Builder
	var cur *html.Node
	started := false

	flush := func() {
		if !started {
			return
		}
		segments = append(segments, classify(buf.String(), cur, root))
		buf.Reset()
	}

	for _, r := range runs {
		if !started || r.block != cur {
			flush()
			cur = r.block
			started = true
			buf.WriteString(r.text)
			continue
		}
		if r.newline {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(r.text)
	}
	flush()
	return segments
}

// classify resolves a flushed block into a typed segment.
func classify(text string, block, root *html.Node) Segment {
	seg := Segment{Text: text, Kind: BlockOther}
	if block == nil || block.Type != html.ElementNode || !blockAtoms[block.DataAtom] {
		return seg
	}
	seg.Tag = strings.ToLower(block.Data)

	switch block.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		seg.Kind = BlockHeading
		seg.Level = int(seg.Tag[1] - '0')
	case atom.Blockquote:
		seg.Kind = BlockQuote
	case atom.Pre:
		seg.Kind = BlockCode
	case atom.Dt:
		seg.Kind = BlockTerm
	case atom.Dd:
		seg.Kind = BlockDefinition
	case atom.Li:
		seg.Kind = BlockListItem
		seg.List = listInfo(block, root)
	}
	return seg
}

// listInfo computes nesting depth, ordered-ness, and ordinal for an <li>.
func listInfo(li, root *html.Node) *ListInfo {
	info := &ListInfo{Depth: 1}

	depth := 0
	ordered := false
	resolved := false
	for el := li.Parent; el != nil; el = el.Parent {
		if el.Type == html.ElementNode && (el.DataAtom == atom.Ul || el.DataAtom == atom.Ol) {
			depth++
			if !resolved {
				ordered = el.DataAtom == atom.Ol
				resolved = true
			}
		}
		if el == root {
			break
		}
	}
	if depth > 1 {
		info.Depth = depth
	}
	info.Ordered = ordered

	if ordered {
		idx := 1
		for s := li.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode && s.DataAtom == atom.Li {
				idx++
			}
		}
		info.Index = idx
	}
	return info
}
