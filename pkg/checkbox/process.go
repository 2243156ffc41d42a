package checkbox

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Process renders checkbox controls into every table under root and returns
// the controls it created, in document order.
//
// Rows are handled one at a time. For each data row the source line is
// located from the table's section info, read fresh from store, and split
// into per-cell checkbox counts; cells whose rendered markers do not match
// their count are left as they are. Nothing here fails: rows without a
// section, document or readable line are skipped.
func Process(ctx context.Context, root *html.Node, rc RenderContext, store Reader, opts ...Option) []*Control {
	o := newOptions(opts)

	var controls []*Control
	for _, table := range findTables(root) {
		dataRow := 0
		for _, row := range tableRows(table) {
			cells := dataCells(row)
			if len(cells) == 0 {
				continue
			}
			controls = append(controls, processRow(ctx, o, table, cells, dataRow, rc, store)...)
			dataRow++
		}
	}
	return controls
}

func processRow(ctx context.Context, o *options, table *html.Node, cells []*html.Node, dataRow int, rc RenderContext, store Reader) []*Control {
	line, ok := Locate(rc.SectionInfo(table), dataRow)
	if !ok {
		o.logger.Debug("row skipped: no section info", zap.Int("row", dataRow))
		return nil
	}
	doc, ok := rc.ActiveDocument()
	if !ok {
		o.logger.Debug("row skipped: no active document", zap.Int("row", dataRow))
		return nil
	}
	log := o.logger.With(zap.String("document", doc), zap.Int("line", line))

	content, err := store.Read(ctx, doc)
	if err != nil {
		log.Debug("row skipped: document unreadable", zap.Error(err))
		return nil
	}
	src, ok := SourceLine(content, line)
	if !ok {
		log.Debug("row skipped: line out of range")
		return nil
	}

	counts := CountsPerCell(src)
	var (
		controls []*Control
		next     int
	)
	for i, cell := range cells {
		var created []*Control
		created, next = reconcileCell(o, cell, counts, i, next, doc, line)
		if created == nil && cellCount(counts, i) > 0 {
			log.Debug("cell skipped: rendered checkboxes do not match source", zap.Int("cell", i))
		}
		controls = append(controls, created...)
	}
	return controls
}

// reconcileCell reconciles one cell whose first checkbox has global index
// first, and returns the global index following the cell.
func reconcileCell(o *options, cell *html.Node, counts []int, i, first int, doc string, line int) ([]*Control, int) {
	want := cellCount(counts, i)
	next := first + want

	var controls []*Control
	bind := func(index int, checked bool) *html.Node {
		target := Target{Document: doc, Line: line, Index: index}
		n := o.factory.NewControl(target, checked)
		controls = append(controls, &Control{Node: n, Target: target, Checked: checked})
		return n
	}
	if _, ok := ReconcileCell(cell, want, first, bind); !ok {
		return nil, next
	}
	return controls, next
}

func cellCount(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

// findTables returns the outermost tables under root in document order.
func findTables(root *html.Node) []*html.Node {
	var tables []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tables
}

// tableRows returns the rows of table in document order, looking through
// thead, tbody and tfoot but not into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.DataAtom == atom.Tr {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

// dataCells returns the td children of row.
func dataCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			cells = append(cells, c)
		}
	}
	return cells
}
