package extract

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestExtract_EndToEnd(t *testing.T) {
	body := parseBody(t, `<div><h1>Title</h1><p>Hello <br/>world</p><ul><li>A</li><li>B</li></ul></div>`)
	res := Extract(body, Options{})

	want := "# Title\n\nHello\nworld\n\n- A\n- B"
	if res.Text != want {
		t.Errorf("Text:\ngot  %q\nwant %q", res.Text, want)
	}
	if res.Strategy != StrategyTreeWalker {
		t.Errorf("Strategy: got %q, want %q", res.Strategy, StrategyTreeWalker)
	}
}

func TestExtract_Heading(t *testing.T) {
	res := Extract(parseBody(t, `<h2>Pricing</h2>`), Options{})
	if res.Text != "## Pricing" {
		t.Errorf("got %q, want %q", res.Text, "## Pricing")
	}
}

func TestExtract_HiddenTextNeverInTreeWalkerOutput(t *testing.T) {
	body := parseBody(t, `<p>shown</p><div style="display:none">ghost</div>`)
	res := Extract(body, Options{})
	if res.Strategy != StrategyTreeWalker {
		t.Fatalf("Strategy: got %q", res.Strategy)
	}
	if strings.Contains(res.Text, "ghost") {
		t.Errorf("hidden text in tree walker output: %q", res.Text)
	}
}

func TestExtract_FallsBackToTextContent(t *testing.T) {
	// Everything hidden: the walker and innerText see nothing, the raw
	// text tier still reports the content.
	body := parseBody(t, `<div style="display:none">ghost</div>`)
	res := Extract(body, Options{})
	if res.Strategy != StrategyTextContent {
		t.Errorf("Strategy: got %q, want %q", res.Strategy, StrategyTextContent)
	}
	if res.Text != "ghost" {
		t.Errorf("Text: got %q, want %q", res.Text, "ghost")
	}
}

func TestExtract_EmptySubtree(t *testing.T) {
	res := Extract(parseBody(t, `<div>  </div>`), Options{})
	if res == nil {
		t.Fatal("Extract returned nil")
	}
	if res.Text != "" {
		t.Errorf("Text: got %q, want \"\"", res.Text)
	}
	if res.Strategy != StrategyTextContent {
		t.Errorf("Strategy: got %q, want %q", res.Strategy, StrategyTextContent)
	}
}

func TestExtract_NilRoot(t *testing.T) {
	res := Extract(nil, Options{})
	if res == nil || res.Text != "" || res.Strategy != StrategyTextContent {
		t.Errorf("nil root: got %+v", res)
	}
}

func TestExtract_AdapterWins(t *testing.T) {
	body := parseBody(t, `<p>generic</p>`)
	res := Extract(body, Options{
		Hostname: "docs.example.com",
		Adapters: []Adapter{{
			Name:  "example-docs",
			Match: func(host string) bool { return strings.Contains(host, "example.com") },
			Extract: func(root *html.Node) (string, error) {
				return "adapter output", nil
			},
		}},
	})
	if res.Strategy != StrategySiteAdapter {
		t.Fatalf("Strategy: got %q, want %q", res.Strategy, StrategySiteAdapter)
	}
	if res.Adapter != "example-docs" {
		t.Errorf("Adapter: got %q, want %q", res.Adapter, "example-docs")
	}
	if res.Text != "adapter output" {
		t.Errorf("Text: got %q", res.Text)
	}
}

func TestExtract_AdapterFailureFallsThrough(t *testing.T) {
	body := parseBody(t, `<p>generic</p>`)
	res := Extract(body, Options{
		Hostname: "example.com",
		Adapters: []Adapter{
			{
				Name:    "broken",
				Match:   func(string) bool { return true },
				Extract: func(*html.Node) (string, error) { return "", errors.New("boom") },
			},
			{
				Name:    "empty",
				Match:   func(string) bool { return true },
				Extract: func(*html.Node) (string, error) { return "   ", nil },
			},
		},
	})
	if res.Strategy != StrategyTreeWalker {
		t.Errorf("Strategy: got %q, want %q", res.Strategy, StrategyTreeWalker)
	}
	if res.Adapter != "" {
		t.Errorf("Adapter must be empty, got %q", res.Adapter)
	}
	if res.Text != "generic" {
		t.Errorf("Text: got %q", res.Text)
	}
}

func TestExtract_AdapterHostMismatchSkipped(t *testing.T) {
	body := parseBody(t, `<p>generic</p>`)
	res := Extract(body, Options{
		Hostname: "other.org",
		Adapters: []Adapter{{
			Name:    "example-only",
			Match:   func(host string) bool { return strings.Contains(host, "example.com") },
			Extract: func(*html.Node) (string, error) { return "wrong", nil },
		}},
	})
	if res.Strategy != StrategyTreeWalker || res.Text != "generic" {
		t.Errorf("mismatched adapter must not fire: %+v", res)
	}
}

func TestExtractHTML(t *testing.T) {
	res, err := ExtractHTML([]byte(`<html><body><h1>Doc</h1></body></html>`), Options{})
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}
	if res.Text != "# Doc" {
		t.Errorf("Text: got %q, want %q", res.Text, "# Doc")
	}
}

func TestTitle(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><head><title> My Page </title></head><body></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if got := Title(doc); got != "My Page" {
		t.Errorf("Title: got %q, want %q", got, "My Page")
	}
}
