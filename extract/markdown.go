package extract

import (
	"fmt"
	"strings"
)

// Format renders segments as Markdown. It is a pure function: the same
// segment sequence always yields the same string.
//
// Mapping per segment:
//   - heading     →  #×level prefix (unless the text already carries one)
//   - blockquote  →  every line prefixed with "> "
//   - pre         →  fenced code block (~~~ fence when text contains ```)
//   - dt          →  bold
//   - dd          →  unchanged
//   - li          →  2-space indent per nesting level, "- " or "N. " marker
//   - other       →  unchanged
//
// Segments are separated by a blank line, except consecutive list items at
// the same depth and consecutive blockquote lines, which stay adjacent.
// Segments that format to nothing are dropped and do not affect spacing.
func Format(segments []Segment) string {
	var sb strings.Builder
	var last *Segment

	for i := range segments {
		seg := &segments[i]
		text := formatSegment(seg)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if last != nil {
			if adjacent(last, seg) {
				sb.WriteByte('\n')
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(text)
		last = seg
	}
	return sb.String()
}

func formatSegment(seg *Segment) string {
	text := strings.TrimSpace(seg.Text)

	switch seg.Kind {
	case BlockHeading:
		marker := strings.Repeat("#", seg.Level)
		if strings.HasPrefix(text, marker) {
			return text
		}
		return marker + " " + text

	case BlockQuote:
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = "> " + strings.TrimSpace(l)
		}
		return strings.Join(lines, "\n")

	case BlockCode:
		fence := "```"
		if strings.Contains(text, "```") {
			fence = "~~~"
		}
		return fence + "\n" + text + "\n" + fence

	case BlockTerm:
		return "**" + text + "**"

	case BlockListItem:
		depth := 1
		ordered := false
		index := 0
		if seg.List != nil {
			depth = seg.List.Depth
			ordered = seg.List.Ordered
			index = seg.List.Index
		}
		marker := "- "
		if ordered && index > 0 {
			marker = fmt.Sprintf("%d. ", index)
		}
		return strings.Repeat("  ", depth-1) + marker + text

	default:
		return text
	}
}

// adjacent reports whether two consecutive segments stay on neighbouring
// lines. List items only stay adjacent at the same depth: a depth change
// marks entering or leaving a nested list and earns a blank line.
func adjacent(a, b *Segment) bool {
	if a.Kind == BlockQuote && b.Kind == BlockQuote {
		return true
	}
	if a.Kind == BlockListItem && b.Kind == BlockListItem {
		return listDepth(a) == listDepth(b)
	}
	return false
}

func listDepth(s *Segment) int {
	if s.List == nil {
		return 1
	}
	return s.List.Depth
}
