// Package md renders Markdown documents into HTML trees whose top-level
// blocks remember the source lines they were rendered from.
package md

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// engine is a pre-configured goldmark instance with the GFM table extension.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Section markup. Each top-level block is wrapped in a div carrying the
// 0-based first and last source line of the block.
const (
	SectionClass  = "tc-section"
	DocumentClass = "tc-document"
	AttrLineStart = "data-line-start"
	AttrLineEnd   = "data-line-end"
)

// Document is a rendered Markdown document.
type Document struct {
	Root       *html.Node // div.tc-document holding one section per block
	Title      string     // front matter title, if any
	LineOffset int        // number of source lines taken by front matter
}

// HTML renders the document tree.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.Root); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// Render converts Markdown source into a Document. Front matter is stripped
// before parsing; section line numbers still refer to the full source.
func Render(source []byte) (*Document, error) {
	meta, body, offset := splitFrontMatter(source)

	root := newElement(atom.Div, html.Attribute{Key: "class", Val: DocumentClass})
	doc := &Document{Root: root, Title: meta.Title, LineOffset: offset}
	if len(body) == 0 {
		return doc, nil
	}

	tree := engine.Parser().Parse(text.NewReader(body))
	for block := tree.FirstChild(); block != nil; block = block.NextSibling() {
		var buf bytes.Buffer
		if err := engine.Renderer().Render(&buf, body, block); err != nil {
			return nil, fmt.Errorf("failed to render block: %w", err)
		}

		section := newElement(atom.Div, html.Attribute{Key: "class", Val: SectionClass})
		if start, end, ok := blockSpan(block); ok {
			section.Attr = append(section.Attr,
				html.Attribute{Key: AttrLineStart, Val: strconv.Itoa(offset + lineAt(body, start))},
				html.Attribute{Key: AttrLineEnd, Val: strconv.Itoa(offset + lineAt(body, end))},
			)
		}

		nodes, err := html.ParseFragment(&buf, section)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rendered block: %w", err)
		}
		for _, n := range nodes {
			section.AppendChild(n)
		}
		root.AppendChild(section)
	}

	return doc, nil
}

// splitFrontMatter strips a leading front matter block. It returns the
// source unchanged when there is none or it cannot be parsed.
func splitFrontMatter(source []byte) (frontMatter, []byte, int) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil || len(body) >= len(source) || !bytes.HasSuffix(source, body) {
		return frontMatter{}, source, 0
	}
	prefix := source[:len(source)-len(body)]
	return meta, body, bytes.Count(prefix, []byte("\n"))
}

// blockSpan returns the smallest and largest source offsets covered by n
// or any of its descendants. Empty block lines still count: goldmark gives
// an empty table cell a zero-width segment on its row, and for a table
// with a blank header that is the only trace of the header line.
func blockSpan(n ast.Node) (int, int, bool) {
	start, end, found := 0, 0, false
	include := func(seg text.Segment) {
		last := seg.Stop - 1
		if last < seg.Start {
			last = seg.Start
		}
		if !found || seg.Start < start {
			start = seg.Start
		}
		if !found || last > end {
			end = last
		}
		found = true
	}

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c.Type() == ast.TypeBlock {
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				include(lines.At(i))
			}
		}
		if t, ok := c.(*ast.Text); ok && !t.Segment.IsEmpty() {
			include(t.Segment)
		}
		return ast.WalkContinue, nil
	})
	return start, end, found
}

// lineAt returns the 0-based line holding byte offset off.
func lineAt(source []byte, off int) int {
	if off > len(source) {
		off = len(source)
	}
	return bytes.Count(source[:off], []byte("\n"))
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}
