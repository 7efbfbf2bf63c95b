package fatura

// Align is a column's cell alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// SortDir is the sort state of a column.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// Column width bounds in cells. Every write path clamps into this range.
const (
	minColWidth = 50
	maxColWidth = 500
)

// ColCheckbox is the reserved selection column: it cannot be dragged,
// dropped on, or sorted.
const ColCheckbox = "checkbox"

// Column describes one column of a grid: identity, visibility, width and
// render order. ID is immutable and unique within a grid.
type Column struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Width   int    `json:"width"`
	Order   int    `json:"order"`
	Align   Align  `json:"align,omitempty"`
}

// GridLayout holds the column configuration of one table plus its sort
// state. All mutators are value methods returning a new layout, so a
// renderer never observes a half-applied change.
type GridLayout struct {
	cols    []Column
	sortCol string
	sortDir SortDir
}

// NewGridLayout builds a layout from a column template. Order values are
// compacted to the sequence index so persisted drift (gaps, duplicates)
// cannot leak in.
func NewGridLayout(cols []Column) GridLayout {
	g := GridLayout{cols: append([]Column(nil), cols...)}
	g.sortByOrder()
	for i := range g.cols {
		g.cols[i].Order = i
		g.cols[i].Width = clampWidth(g.cols[i].Width)
	}
	return g
}

func clampWidth(w int) int {
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}

func (g *GridLayout) sortByOrder() {
	// Insertion sort; column counts are tiny and stability matters for
	// equal (drifted) order values.
	for i := 1; i < len(g.cols); i++ {
		for j := i; j > 0 && g.cols[j].Order < g.cols[j-1].Order; j-- {
			g.cols[j], g.cols[j-1] = g.cols[j-1], g.cols[j]
		}
	}
}

func (g GridLayout) clone() GridLayout {
	return GridLayout{
		cols:    append([]Column(nil), g.cols...),
		sortCol: g.sortCol,
		sortDir: g.sortDir,
	}
}

func (g GridLayout) indexOf(id string) int {
	for i, c := range g.cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Columns returns all columns (visible and hidden) in render order.
func (g GridLayout) Columns() []Column {
	return append([]Column(nil), g.cols...)
}

// VisibleOrdered returns the columns the renderer lays out: visible ones,
// in order. This is the only method a table renderer needs.
func (g GridLayout) VisibleOrdered() []Column {
	out := make([]Column, 0, len(g.cols))
	for _, c := range g.cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// Reorder removes the dragged column and reinserts it immediately before
// the target, then recompacts order values for all columns. Unknown ids,
// the reserved checkbox column and dragged==target are no-ops.
func (g GridLayout) Reorder(draggedID, targetID string) GridLayout {
	if draggedID == targetID || draggedID == ColCheckbox || targetID == ColCheckbox {
		return g
	}
	src := g.indexOf(draggedID)
	if src < 0 || g.indexOf(targetID) < 0 {
		return g
	}

	out := g.clone()
	dragged := out.cols[src]
	out.cols = append(out.cols[:src], out.cols[src+1:]...)

	dst := out.indexOf(targetID)
	out.cols = append(out.cols, Column{})
	copy(out.cols[dst+1:], out.cols[dst:])
	out.cols[dst] = dragged

	for i := range out.cols {
		out.cols[i].Order = i
	}
	return out
}

// Resize adjusts the named column's width by delta, clamped to the width
// bounds. Other columns are untouched.
func (g GridLayout) Resize(id string, delta int) GridLayout {
	i := g.indexOf(id)
	if i < 0 {
		return g
	}
	out := g.clone()
	out.cols[i].Width = clampWidth(out.cols[i].Width + delta)
	return out
}

// SetVisible toggles a column's visibility. A hidden column keeps its
// width and order so re-enabling restores its prior position.
func (g GridLayout) SetVisible(id string, visible bool) GridLayout {
	i := g.indexOf(id)
	if i < 0 {
		return g
	}
	out := g.clone()
	out.cols[i].Visible = visible
	return out
}

// SortBy advances the column's sort state through none → asc → desc → none.
// Sorting a different column resets the previous one; only one column is
// ever actively sorted. The checkbox column is never sortable.
func (g GridLayout) SortBy(id string) GridLayout {
	if id == ColCheckbox || g.indexOf(id) < 0 {
		return g
	}
	out := g.clone()
	if out.sortCol != id {
		out.sortCol = id
		out.sortDir = SortAsc
		return out
	}
	switch out.sortDir {
	case SortAsc:
		out.sortDir = SortDesc
	case SortDesc:
		out.sortCol = ""
		out.sortDir = SortNone
	default:
		out.sortDir = SortAsc
	}
	return out
}

// SortState reports the actively sorted column, if any.
func (g GridLayout) SortState() (string, SortDir) {
	return g.sortCol, g.sortDir
}
