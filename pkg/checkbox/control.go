package checkbox

import (
	"context"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ControlClass is the class carried by every checkbox control.
const ControlClass = "task-list-item-checkbox"

// Data attributes binding a control element to its Target.
const (
	AttrDocument = "data-document"
	AttrLine     = "data-line"
	AttrIndex    = "data-index"
)

// ControlFactory builds the element that stands in for a checkbox.
type ControlFactory interface {
	NewControl(target Target, checked bool) *html.Node
}

// InputFactory builds <input type="checkbox"> elements carrying their
// target as data attributes, so a page can post the change back without
// any server-side state.
type InputFactory struct{}

// NewControl implements ControlFactory.
func (InputFactory) NewControl(target Target, checked bool) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "input",
		DataAtom: atom.Input,
		Attr: []html.Attribute{
			{Key: "type", Val: "checkbox"},
			{Key: "class", Val: ControlClass},
			{Key: AttrDocument, Val: target.Document},
			{Key: AttrLine, Val: strconv.Itoa(target.Line)},
			{Key: AttrIndex, Val: strconv.Itoa(target.Index)},
		},
	}
	setChecked(n, checked)
	return n
}

// Control is a rendered checkbox bound to its target.
type Control struct {
	Node    *html.Node
	Target  Target
	Checked bool
}

// Change applies a user toggle and then shows exactly the requested state.
// If the toggle was skipped the control keeps showing the requested state
// until the document is rendered again.
func (c *Control) Change(ctx context.Context, store Store, checked bool, opts ...Option) (Result, error) {
	result, err := ApplyToggle(ctx, store, c.Target, checked, opts...)
	c.Checked = checked
	setChecked(c.Node, checked)
	return result, err
}

// TargetOf reads the target back from a control built by InputFactory.
func TargetOf(n *html.Node) (Target, bool) {
	var (
		t              Target
		hasLine, hasIx bool
		err            error
	)
	for _, a := range n.Attr {
		switch a.Key {
		case AttrDocument:
			t.Document = a.Val
		case AttrLine:
			if t.Line, err = strconv.Atoi(a.Val); err != nil {
				return Target{}, false
			}
			hasLine = true
		case AttrIndex:
			if t.Index, err = strconv.Atoi(a.Val); err != nil {
				return Target{}, false
			}
			hasIx = true
		}
	}
	return t, hasLine && hasIx
}

// IsControl reports whether n is a checkbox control element.
func IsControl(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Input {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" && a.Val == ControlClass {
			return true
		}
	}
	return false
}

// IsChecked reports whether a control element carries the checked attribute.
func IsChecked(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "checked" {
			return true
		}
	}
	return false
}

func setChecked(n *html.Node, checked bool) {
	if n == nil {
		return
	}
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != "checked" {
			attrs = append(attrs, a)
		}
	}
	if checked {
		attrs = append(attrs, html.Attribute{Key: "checked", Val: ""})
	}
	n.Attr = attrs
}
