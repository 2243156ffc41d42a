package checkbox

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// leafPlan pairs a text leaf with the actions that replace it.
type leafPlan struct {
	leaf    *html.Node
	actions []Action
}

// planCell collects, in depth-first document order, every text leaf under
// cell that contains a checkbox, and the total number of checkboxes found.
func planCell(cell *html.Node) ([]leafPlan, int) {
	var (
		plans []leafPlan
		total int
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				actions := ToActions(c.Data)
				if boxes := CountBoxes(actions); boxes > 0 {
					plans = append(plans, leafPlan{leaf: c, actions: actions})
					total += boxes
				}
			case html.ElementNode:
				if IsControl(c) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(cell)
	return plans, total
}

// ReconcileCell replaces the checkbox markers in the text of cell with
// controls. want is the number of checkboxes the cell's slice of the source
// line holds; first is the global index of the cell's first checkbox.
//
// Element children such as links are kept in place; only the text leaves
// holding markers are swapped for a sequence of <span> and control nodes.
// The cell is left untouched, and false returned, when it has no markers or
// when the number of markers differs from want.
func ReconcileCell(cell *html.Node, want int, first int, bind func(index int, checked bool) *html.Node) ([]*html.Node, bool) {
	plans, total := planCell(cell)
	if total == 0 || total != want {
		return nil, false
	}

	controls := make([]*html.Node, 0, total)
	index := first
	for _, p := range plans {
		parent, next := p.leaf.Parent, p.leaf.NextSibling
		parent.RemoveChild(p.leaf)

		for _, a := range p.actions {
			var n *html.Node
			switch a.Kind {
			case ActionText:
				n = newSpan(a.Text)
			case ActionCheckbox:
				n = bind(index, a.Checked)
				controls = append(controls, n)
				index++
			}
			parent.InsertBefore(n, next)
		}
	}
	return controls, true
}

func newSpan(text string) *html.Node {
	span := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return span
}
