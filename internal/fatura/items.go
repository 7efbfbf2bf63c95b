package fatura

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ItemRow is one line of an invoice under edit together with the state of
// its product search box and its selection checkbox. Keeping this state on
// the row itself means structural edits (delete, move, merge) carry it
// along for free; there is no index bookkeeping to get wrong.
type ItemRow struct {
	Item          InvoiceLine
	SearchText    string
	Candidates    []Product
	SearchFocused bool
	Selected      bool
}

// Bound reports whether the row has a product bound to it. Unbound rows
// are excluded from submission.
func (r ItemRow) Bound() bool {
	return r.Item.ProductID != 0
}

// MergeNotice describes a duplicate-product merge performed by
// SelectProduct, for display as a notification.
type MergeNotice struct {
	Merged      bool
	ProductName string
	Quantity    decimal.Decimal
	Index       int // row the quantities were folded into, post-renumber
}

// ItemList is the ordered set of invoice lines under edit. All mutators
// are value methods returning a new list, so the renderer only ever sees
// fully applied states. Out-of-range indices, which can arrive from stale
// UI events, are silently dropped.
type ItemList struct {
	kind InvoiceKind
	rows []ItemRow
}

// NewItemList returns an empty list for the given invoice kind. The kind
// picks which product price a newly bound line uses.
func NewItemList(kind InvoiceKind) ItemList {
	return ItemList{kind: kind}
}

// ItemListFrom builds a list from existing invoice lines, for editing a
// saved invoice. Search state starts at the bound product names.
func ItemListFrom(kind InvoiceKind, lines []InvoiceLine) ItemList {
	rows := make([]ItemRow, len(lines))
	for i, ln := range lines {
		rows[i] = ItemRow{Item: ln, SearchText: ln.ProductName}
	}
	return ItemList{kind: kind, rows: rows}
}

func (l ItemList) clone() ItemList {
	return ItemList{kind: l.kind, rows: append([]ItemRow(nil), l.rows...)}
}

func (l ItemList) valid(i int) bool {
	return i >= 0 && i < len(l.rows)
}

func (l ItemList) priceFor(p Product) decimal.Decimal {
	if l.kind == PurchaseInvoice {
		return p.PurchasePrice
	}
	return p.SalePrice
}

// Len returns the number of rows, bound and unbound alike.
func (l ItemList) Len() int {
	return len(l.rows)
}

// Row returns the row at index i. The second result is false for stale
// indices.
func (l ItemList) Row(i int) (ItemRow, bool) {
	if !l.valid(i) {
		return ItemRow{}, false
	}
	return l.rows[i], true
}

// Rows returns a copy of all rows in order.
func (l ItemList) Rows() []ItemRow {
	return append([]ItemRow(nil), l.rows...)
}

// AddEmptyRow appends an unbound row with quantity 1 and zero prices, and
// returns the new list and the new row's index.
func (l ItemList) AddEmptyRow() (ItemList, int) {
	out := l.clone()
	out.rows = append(out.rows, ItemRow{
		Item: InvoiceLine{Quantity: decimal.NewFromInt(1)},
	})
	return out, len(out.rows) - 1
}

// DeleteRows removes the rows at the given indices. Removal runs highest
// index first so earlier removals cannot shift later ones. Any selection
// is cleared afterwards. Stale indices are ignored.
func (l ItemList) DeleteRows(indices []int) ItemList {
	idx := l.dedupe(indices)
	if len(idx) == 0 {
		return l
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	out := l.clone()
	for _, i := range idx {
		out.rows = append(out.rows[:i], out.rows[i+1:]...)
	}
	for i := range out.rows {
		out.rows[i].Selected = false
	}
	return out
}

// CopyRows duplicates the rows at the given indices, in ascending order,
// appending the copies at the end. Copies start unselected with a fresh
// search box; the originals are untouched.
func (l ItemList) CopyRows(indices []int) ItemList {
	idx := l.dedupe(indices)
	if len(idx) == 0 {
		return l
	}
	sort.Ints(idx)
	out := l.clone()
	for _, i := range idx {
		cp := out.rows[i]
		cp.Selected = false
		cp.SearchFocused = false
		cp.Candidates = nil
		out.rows = append(out.rows, cp)
	}
	return out
}

// MoveUp swaps each given row with the one above it. Rows at the top, or
// blocked by another moving row already at the top, stay put. Each moved
// row shifts exactly one position.
func (l ItemList) MoveUp(indices []int) ItemList {
	idx := l.dedupe(indices)
	if len(idx) == 0 {
		return l
	}
	sort.Ints(idx)
	out := l.clone()
	limit := 0
	for _, i := range idx {
		if i > limit {
			out.rows[i-1], out.rows[i] = out.rows[i], out.rows[i-1]
		} else {
			limit = i + 1
		}
	}
	return out
}

// MoveDown swaps each given row with the one below it, processing from
// the bottom up. Rows at the bottom, or blocked by another moving row
// already there, stay put.
func (l ItemList) MoveDown(indices []int) ItemList {
	idx := l.dedupe(indices)
	if len(idx) == 0 {
		return l
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	out := l.clone()
	limit := len(out.rows) - 1
	for _, i := range idx {
		if i < limit {
			out.rows[i], out.rows[i+1] = out.rows[i+1], out.rows[i]
		} else {
			limit = i - 1
		}
	}
	return out
}

// SetQuantity updates a row's quantity and recomputes its total.
func (l ItemList) SetQuantity(i int, q decimal.Decimal) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].Item.Quantity = q
	out.rows[i].Item.TotalPrice = q.Mul(out.rows[i].Item.UnitPrice)
	return out
}

// SetUnitPrice updates a row's unit price and recomputes its total.
func (l ItemList) SetUnitPrice(i int, p decimal.Decimal) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].Item.UnitPrice = p
	out.rows[i].Item.TotalPrice = out.rows[i].Item.Quantity.Mul(p)
	return out
}

// SelectProduct binds the product to the row at index i. If another row
// already holds the same product, the two are merged instead: the
// existing row absorbs this row's quantity, this row is removed, and the
// returned notice describes the fold so the UI can announce it.
func (l ItemList) SelectProduct(i int, p Product) (ItemList, MergeNotice) {
	if !l.valid(i) {
		return l, MergeNotice{}
	}
	price := l.priceFor(p)

	target := -1
	for j, r := range l.rows {
		if j != i && r.Item.ProductID == p.ID {
			target = j
			break
		}
	}

	out := l.clone()
	if target < 0 {
		out.rows[i].Item.ProductID = p.ID
		out.rows[i].Item.ProductName = p.Name
		out.rows[i].Item.UnitPrice = price
		out.rows[i].Item.TotalPrice = out.rows[i].Item.Quantity.Mul(price)
		out.rows[i].SearchText = p.Name
		out.rows[i].Candidates = nil
		out.rows[i].SearchFocused = false
		return out, MergeNotice{}
	}

	merged := out.rows[target].Item.Quantity.Add(out.rows[i].Item.Quantity)
	out.rows[target].Item.Quantity = merged
	out.rows[target].Item.UnitPrice = price
	out.rows[target].Item.TotalPrice = merged.Mul(price)
	out.rows = append(out.rows[:i], out.rows[i+1:]...)
	if i < target {
		target--
	}
	return out, MergeNotice{
		Merged:      true,
		ProductName: p.Name,
		Quantity:    merged,
		Index:       target,
	}
}

// Search stores the query on the row and refreshes its candidate list
// from the product source. A blank query yields no candidates so the
// dropdown collapses rather than listing everything.
func (l ItemList) Search(i int, query string, source ProductSource) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].SearchText = query
	out.rows[i].Candidates = source.Search(query)
	return out
}

// SetSearchFocus records whether the row's search box has focus.
func (l ItemList) SetSearchFocus(i int, focused bool) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].SearchFocused = focused
	return out
}

// ClearCandidates drops a row's dropdown contents, used when a dismissal
// timer fires.
func (l ItemList) ClearCandidates(i int) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].Candidates = nil
	return out
}

// ToggleSelect flips a row's selection checkbox.
func (l ItemList) ToggleSelect(i int) ItemList {
	if !l.valid(i) {
		return l
	}
	out := l.clone()
	out.rows[i].Selected = !out.rows[i].Selected
	return out
}

// SelectAll selects every row, or clears the selection when every row is
// already selected.
func (l ItemList) SelectAll() ItemList {
	out := l.clone()
	all := len(out.rows) > 0
	for _, r := range out.rows {
		if !r.Selected {
			all = false
			break
		}
	}
	for i := range out.rows {
		out.rows[i].Selected = !all
	}
	return out
}

// ClearSelection unselects every row.
func (l ItemList) ClearSelection() ItemList {
	out := l.clone()
	for i := range out.rows {
		out.rows[i].Selected = false
	}
	return out
}

// SelectedIndices returns the indices of selected rows in ascending order.
func (l ItemList) SelectedIndices() []int {
	var out []int
	for i, r := range l.rows {
		if r.Selected {
			out = append(out, i)
		}
	}
	return out
}

// Lines returns the bound rows as invoice lines for submission. Unbound
// rows are filtered out.
func (l ItemList) Lines() []InvoiceLine {
	var out []InvoiceLine
	for _, r := range l.rows {
		if r.Bound() {
			out = append(out, r.Item)
		}
	}
	return out
}

// Total sums the total price of every bound row.
func (l ItemList) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range l.rows {
		if r.Bound() {
			sum = sum.Add(r.Item.TotalPrice)
		}
	}
	return sum
}

// dedupe drops duplicates and stale indices from an index list.
func (l ItemList) dedupe(indices []int) []int {
	seen := make(map[int]bool, len(indices))
	var out []int
	for _, i := range indices {
		if l.valid(i) && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
