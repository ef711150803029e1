package adapters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// markdownExtractor converts the whole subtree to Markdown. The HTML is
// sanitised first so captured pages cannot smuggle scripts or event
// handlers into the saved context.
func markdownExtractor() func(root *html.Node) (string, error) {
	policy := bluemonday.UGCPolicy()
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return func(root *html.Node) (string, error) {
		raw := renderNode(root)
		if raw == "" {
			return "", fmt.Errorf("empty subtree")
		}
		clean := policy.Sanitize(raw)
		md, err := conv.ConvertString(clean)
		if err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		return strings.TrimSpace(md), nil
	}
}

// renderNode serialises an HTML node subtree back to a string.
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
