package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

func TestFormat_Mapping(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want string
	}{
		{"h1", Segment{Text: "Title", Kind: BlockHeading, Level: 1}, "# Title"},
		{"h2", Segment{Text: "Pricing", Kind: BlockHeading, Level: 2}, "## Pricing"},
		{"h6", Segment{Text: "Deep", Kind: BlockHeading, Level: 6}, "###### Deep"},
		{"heading already marked", Segment{Text: "## Pricing", Kind: BlockHeading, Level: 2}, "## Pricing"},
		{"quote", Segment{Text: "wise words", Kind: BlockQuote}, "> wise words"},
		{"quote multiline", Segment{Text: "a\nb", Kind: BlockQuote}, "> a\n> b"},
		{"code", Segment{Text: "x := 1", Kind: BlockCode}, "```\nx := 1\n```"},
		{"code with backtick fence", Segment{Text: "```\ninner\n```", Kind: BlockCode}, "~~~\n```\ninner\n```\n~~~"},
		{"term", Segment{Text: "API", Kind: BlockTerm}, "**API**"},
		{"definition", Segment{Text: "a surface", Kind: BlockDefinition}, "a surface"},
		{"bullet item", Segment{Text: "A", Kind: BlockListItem, List: &ListInfo{Depth: 1}}, "- A"},
		{"ordered item", Segment{Text: "A", Kind: BlockListItem, List: &ListInfo{Depth: 1, Ordered: true, Index: 3}}, "3. A"},
		{"nested item", Segment{Text: "B", Kind: BlockListItem, List: &ListInfo{Depth: 2}}, "  - B"},
		{"plain", Segment{Text: "hello", Kind: BlockOther}, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format([]Segment{tt.seg})
			if got != tt.want {
				t.Errorf("Format: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_BlankLineBetweenBlocks(t *testing.T) {
	got := Format([]Segment{
		{Text: "Title", Kind: BlockHeading, Level: 1},
		{Text: "body", Kind: BlockOther},
	})
	want := "# Title\n\nbody"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_ListItemsStayAdjacent(t *testing.T) {
	got := Format([]Segment{
		{Text: "A", Kind: BlockListItem, List: &ListInfo{Depth: 1}},
		{Text: "B", Kind: BlockListItem, List: &ListInfo{Depth: 1}},
	})
	want := "- A\n- B"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_DepthChangeGetsBlankLine(t *testing.T) {
	got := Format([]Segment{
		{Text: "outer", Kind: BlockListItem, List: &ListInfo{Depth: 1}},
		{Text: "inner", Kind: BlockListItem, List: &ListInfo{Depth: 2}},
	})
	want := "- outer\n\n  - inner"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_QuoteLinesStayAdjacent(t *testing.T) {
	got := Format([]Segment{
		{Text: "first", Kind: BlockQuote},
		{Text: "second", Kind: BlockQuote},
		{Text: "after", Kind: BlockOther},
	})
	want := "> first\n> second\n\nafter"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_DropsEmptySegments(t *testing.T) {
	got := Format([]Segment{
		{Text: "A", Kind: BlockOther},
		{Text: "   ", Kind: BlockOther},
		{Text: "B", Kind: BlockOther},
	})
	want := "A\n\nB"
	if got != want {
		t.Errorf("empty segments must not affect spacing: got %q, want %q", got, want)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	segs := []Segment{
		{Text: "Title", Kind: BlockHeading, Level: 2},
		{Text: "para", Kind: BlockOther},
		{Text: "A", Kind: BlockListItem, List: &ListInfo{Depth: 1, Ordered: true, Index: 1}},
	}
	if a, b := Format(segs), Format(segs); a != b {
		t.Errorf("Format is not pure: %q != %q", a, b)
	}
}

func TestFormat_EmptyInput(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want \"\"", got)
	}
}

// The emitted Markdown should survive a real Markdown parser: goldmark
// renders headings and list structure back out as the equivalent HTML.
func TestFormat_ParsesAsMarkdown(t *testing.T) {
	md := Format([]Segment{
		{Text: "Pricing", Kind: BlockHeading, Level: 2},
		{Text: "Plans below.", Kind: BlockOther},
		{Text: "Basic", Kind: BlockListItem, List: &ListInfo{Depth: 1, Ordered: true, Index: 1}},
		{Text: "Pro", Kind: BlockListItem, List: &ListInfo{Depth: 1, Ordered: true, Index: 2}},
	})

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		t.Fatalf("goldmark: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<h2>Pricing</h2>", "<ol>", "<li>Basic</li>", "<li>Pro</li>"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered HTML missing %q:\n%s", want, out)
		}
	}
}
