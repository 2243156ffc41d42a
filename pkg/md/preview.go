package md

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// Glyphs used for checkbox controls in text previews.
const (
	GlyphUnchecked = "☐"
	GlyphChecked   = "☑"
)

// Preview converts a rendered tree back to Markdown-like text for terminal
// display. Each checkbox control becomes a glyph followed by its global
// index in parentheses, e.g. "☑(1)". root is not modified.
func Preview(root *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("failed to render tree: %w", err)
	}

	// Work on a copy so the caller's controls stay bound to their nodes.
	copyRoot, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered tree: %w", err)
	}
	replaceControls(copyRoot)

	buf.Reset()
	if err := html.Render(&buf, copyRoot); err != nil {
		return "", fmt.Errorf("failed to render tree: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

func replaceControls(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if checkbox.IsControl(c) {
			n.InsertBefore(&html.Node{Type: html.TextNode, Data: controlGlyph(c)}, c)
			n.RemoveChild(c)
		} else {
			replaceControls(c)
		}
		c = next
	}
}

func controlGlyph(n *html.Node) string {
	glyph := GlyphUnchecked
	if checkbox.IsChecked(n) {
		glyph = GlyphChecked
	}
	if t, ok := checkbox.TargetOf(n); ok {
		return glyph + "(" + strconv.Itoa(t.Index) + ")"
	}
	return glyph
}
