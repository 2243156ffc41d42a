package md

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/tablecheck/pkg/checkbox"
)

// SectionInfo returns the source span of the section containing n, or nil
// when n is not inside a section with line information.
func SectionInfo(n *html.Node) *checkbox.SectionInfo {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode || !hasClass(n, SectionClass) {
			continue
		}
		start, okStart := intAttr(n, AttrLineStart)
		end, okEnd := intAttr(n, AttrLineEnd)
		if !okStart {
			return nil
		}
		if !okEnd {
			end = start
		}
		return &checkbox.SectionInfo{LineStart: start, LineEnd: end}
	}
	return nil
}

// RenderContext resolves section info from the section markup produced by
// Render and reports Document as the active document.
type RenderContext struct {
	Document string
}

// SectionInfo implements checkbox.RenderContext.
func (c RenderContext) SectionInfo(n *html.Node) *checkbox.SectionInfo {
	return SectionInfo(n)
}

// ActiveDocument implements checkbox.RenderContext.
func (c RenderContext) ActiveDocument() (string, bool) {
	return c.Document, c.Document != ""
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func intAttr(n *html.Node, key string) (int, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			v, err := strconv.Atoi(a.Val)
			return v, err == nil
		}
	}
	return 0, false
}
