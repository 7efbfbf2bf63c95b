package fatura

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "Espresso Beans", Code: "EB-01", Barcode: "4760001", SalePrice: dec("12.50"), PurchasePrice: dec("8.00")},
		{ID: 2, Name: "Filter Coffee", Code: "FC-02", Article: "ART-77", SalePrice: dec("9.90"), PurchasePrice: dec("6.40")},
		{ID: 3, Name: "Green Tea", Code: "GT-03", SalePrice: dec("7.00"), PurchasePrice: dec("4.10")},
	}
}

func boundList(t *testing.T, ids ...int64) ItemList {
	t.Helper()
	catalog := NewCatalog(testProducts())
	l := NewItemList(SalesInvoice)
	for _, id := range ids {
		p, ok := catalog.FindByID(id)
		if !ok {
			t.Fatalf("no test product with id %d", id)
		}
		var idx int
		l, idx = l.AddEmptyRow()
		l, _ = l.SelectProduct(idx, p)
	}
	return l
}

func TestAddEmptyRow_Defaults(t *testing.T) {
	t.Parallel()

	l := NewItemList(SalesInvoice)
	l, idx := l.AddEmptyRow()

	if idx != 0 || l.Len() != 1 {
		t.Fatalf("expected one row at index 0; got idx=%d len=%d", idx, l.Len())
	}
	row, _ := l.Row(0)
	if !row.Item.Quantity.Equal(dec("1")) {
		t.Errorf("quantity = %s, want 1", row.Item.Quantity)
	}
	if !row.Item.UnitPrice.IsZero() || !row.Item.TotalPrice.IsZero() {
		t.Errorf("prices should start at zero; got %s / %s", row.Item.UnitPrice, row.Item.TotalPrice)
	}
	if row.Bound() {
		t.Error("new row should not be bound")
	}
}

func TestSelectProduct_Bind(t *testing.T) {
	t.Parallel()

	l := NewItemList(SalesInvoice)
	l, idx := l.AddEmptyRow()
	l = l.SetQuantity(idx, dec("3"))

	l, notice := l.SelectProduct(idx, testProducts()[0])
	if notice.Merged {
		t.Fatal("unexpected merge on first bind")
	}

	row, _ := l.Row(idx)
	if row.Item.ProductID != 1 || row.Item.ProductName != "Espresso Beans" {
		t.Fatalf("product not bound: %+v", row.Item)
	}
	if !row.Item.UnitPrice.Equal(dec("12.50")) {
		t.Errorf("unit price = %s, want 12.50", row.Item.UnitPrice)
	}
	if !row.Item.TotalPrice.Equal(dec("37.50")) {
		t.Errorf("total = %s, want 37.50", row.Item.TotalPrice)
	}
	if row.SearchText != "Espresso Beans" || row.Candidates != nil || row.SearchFocused {
		t.Errorf("search state not reset: %+v", row)
	}
}

func TestSelectProduct_PurchaseUsesPurchasePrice(t *testing.T) {
	t.Parallel()

	l := NewItemList(PurchaseInvoice)
	l, idx := l.AddEmptyRow()
	l, _ = l.SelectProduct(idx, testProducts()[0])

	row, _ := l.Row(idx)
	if !row.Item.UnitPrice.Equal(dec("8.00")) {
		t.Errorf("unit price = %s, want purchase price 8.00", row.Item.UnitPrice)
	}
}

func TestSelectProduct_MergeIntoEarlierRow(t *testing.T) {
	t.Parallel()

	// Row 0 already holds product 1 with quantity 2; row 1 has quantity 5
	// and then picks the same product.
	l := boundList(t, 1)
	l = l.SetQuantity(0, dec("2"))
	l, idx := l.AddEmptyRow()
	l = l.SetQuantity(idx, dec("5"))

	l, notice := l.SelectProduct(idx, testProducts()[0])

	if !notice.Merged {
		t.Fatal("expected a merge")
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if notice.Index != 0 {
		t.Errorf("merge index = %d, want 0", notice.Index)
	}
	if !notice.Quantity.Equal(dec("7")) {
		t.Errorf("merged quantity = %s, want 7", notice.Quantity)
	}
	row, _ := l.Row(0)
	if !row.Item.Quantity.Equal(dec("7")) {
		t.Errorf("row quantity = %s, want 7", row.Item.Quantity)
	}
	if !row.Item.TotalPrice.Equal(dec("87.5")) {
		t.Errorf("row total = %s, want 87.5", row.Item.TotalPrice)
	}
}

func TestSelectProduct_MergeIntoLaterRow_RenumbersTarget(t *testing.T) {
	t.Parallel()

	// Row 0 is the row being edited, row 2 already holds the product.
	// Deleting row 0 shifts the target down by one; the notice must name
	// the post-delete index.
	l := NewItemList(SalesInvoice)
	l, _ = l.AddEmptyRow()
	l = l.SetQuantity(0, dec("4"))

	products := testProducts()
	var idx int
	l, idx = l.AddEmptyRow()
	l, _ = l.SelectProduct(idx, products[1]) // Filter Coffee at 1
	l, idx = l.AddEmptyRow()
	l, _ = l.SelectProduct(idx, products[0]) // Espresso Beans at 2
	l = l.SetQuantity(2, dec("1"))

	l, notice := l.SelectProduct(0, products[0])

	if !notice.Merged {
		t.Fatal("expected a merge")
	}
	if notice.Index != 1 {
		t.Errorf("merge index = %d, want 1 after renumbering", notice.Index)
	}
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}
	row, _ := l.Row(1)
	if row.Item.ProductID != 1 {
		t.Fatalf("row 1 holds product %d, want 1", row.Item.ProductID)
	}
	if !row.Item.Quantity.Equal(dec("5")) {
		t.Errorf("merged quantity = %s, want 5", row.Item.Quantity)
	}
	// The surviving unrelated row keeps its identity and side state.
	other, _ := l.Row(0)
	if other.Item.ProductID != 2 || other.SearchText != "Filter Coffee" {
		t.Errorf("unrelated row disturbed: %+v", other)
	}
}

func TestDeleteRows_HighestFirstAndSelectionCleared(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2, 3)
	l = l.ToggleSelect(0)
	l = l.ToggleSelect(2)

	l = l.DeleteRows([]int{0, 2})

	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	row, _ := l.Row(0)
	if row.Item.ProductID != 2 {
		t.Errorf("surviving row holds product %d, want 2", row.Item.ProductID)
	}
	if len(l.SelectedIndices()) != 0 {
		t.Error("selection should be cleared after delete")
	}
}

func TestDeleteRows_SideStateFollowsSurvivors(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(testProducts())
	l := boundList(t, 1, 2, 3)
	l = l.Search(2, "tea", catalog)

	l = l.DeleteRows([]int{0})

	row, _ := l.Row(1)
	if row.SearchText != "tea" {
		t.Errorf("row 1 search text = %q, want %q", row.SearchText, "tea")
	}
	if len(row.Candidates) != 1 || row.Candidates[0].ID != 3 {
		t.Errorf("row 1 candidates = %+v, want Green Tea", row.Candidates)
	}
}

func TestCopyRows_AppendsUnselectedCopies(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2)
	l = l.ToggleSelect(0)
	l = l.ToggleSelect(1)

	l = l.CopyRows([]int{1, 0})

	if l.Len() != 4 {
		t.Fatalf("len = %d, want 4", l.Len())
	}
	// Ascending order regardless of the argument order.
	c0, _ := l.Row(2)
	c1, _ := l.Row(3)
	if c0.Item.ProductID != 1 || c1.Item.ProductID != 2 {
		t.Errorf("copies out of order: %d, %d", c0.Item.ProductID, c1.Item.ProductID)
	}
	if c0.Selected || c1.Selected {
		t.Error("copies must start unselected")
	}
	if got := l.SelectedIndices(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("original selection disturbed: %v", got)
	}
}

func TestMoveUp_Boundary(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2)
	before := l.Rows()

	l = l.MoveUp([]int{0})

	for i, row := range l.Rows() {
		if row.Item.ProductID != before[i].Item.ProductID {
			t.Fatalf("moveUp at index 0 changed the list")
		}
	}
}

func TestMoveDown_Boundary(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2)
	before := l.Rows()

	l = l.MoveDown([]int{1})

	for i, row := range l.Rows() {
		if row.Item.ProductID != before[i].Item.ProductID {
			t.Fatalf("moveDown at last index changed the list")
		}
	}
}

func TestMoveUp_BlockAtTopKeepsOrder(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2, 3)
	l = l.MoveUp([]int{0, 1})

	ids := []int64{}
	for _, row := range l.Rows() {
		ids = append(ids, row.Item.ProductID)
	}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("blocked block reordered: %v", ids)
	}
}

func TestMove_SelectionFollowsRows(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2, 3)
	l = l.ToggleSelect(1)

	l = l.MoveUp([]int{1})

	if got := l.SelectedIndices(); len(got) != 1 || got[0] != 0 {
		t.Errorf("selection = %v, want [0]", got)
	}
	row, _ := l.Row(0)
	if row.Item.ProductID != 2 {
		t.Errorf("row 0 holds product %d, want 2", row.Item.ProductID)
	}

	l = l.MoveDown([]int{0})
	if got := l.SelectedIndices(); len(got) != 1 || got[0] != 1 {
		t.Errorf("selection after move down = %v, want [1]", got)
	}
}

func TestTotalRecomputedOnFieldUpdates(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1)
	l = l.SetQuantity(0, dec("4"))

	row, _ := l.Row(0)
	if !row.Item.TotalPrice.Equal(dec("50")) {
		t.Errorf("total = %s, want 50", row.Item.TotalPrice)
	}

	l = l.SetUnitPrice(0, dec("10.25"))
	row, _ = l.Row(0)
	if !row.Item.TotalPrice.Equal(dec("41")) {
		t.Errorf("total = %s, want 41", row.Item.TotalPrice)
	}
}

func TestStaleIndicesAreDropped(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(testProducts())
	l := boundList(t, 1)
	before := l.Rows()

	l = l.SetQuantity(5, dec("9"))
	l = l.Search(-1, "x", catalog)
	l = l.DeleteRows([]int{7})
	l, notice := l.SelectProduct(3, testProducts()[1])
	l = l.SetSearchFocus(99, true)

	if notice.Merged {
		t.Error("stale select must not merge")
	}
	after := l.Rows()
	if len(after) != len(before) {
		t.Fatalf("stale index changed row count: %d -> %d", len(before), len(after))
	}
	if !after[0].Item.Quantity.Equal(before[0].Item.Quantity) {
		t.Error("stale write reached a live row")
	}
}

func TestSearch_BlankQueryYieldsNoCandidates(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(testProducts())
	l := boundList(t, 1)

	l = l.Search(0, "coffee", catalog)
	row, _ := l.Row(0)
	if len(row.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(row.Candidates))
	}

	l = l.Search(0, "   ", catalog)
	row, _ = l.Row(0)
	if len(row.Candidates) != 0 {
		t.Errorf("blank query returned %d candidates, want none", len(row.Candidates))
	}
}

func TestSelectAll_TogglesWhenAllSelected(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2)

	l = l.SelectAll()
	if got := l.SelectedIndices(); len(got) != 2 {
		t.Fatalf("selected = %v, want all rows", got)
	}

	l = l.SelectAll()
	if got := l.SelectedIndices(); len(got) != 0 {
		t.Errorf("second select-all should clear; got %v", got)
	}
}

func TestLines_FiltersUnboundRows(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1)
	l, _ = l.AddEmptyRow()

	lines := l.Lines()
	if len(lines) != 1 || lines[0].ProductID != 1 {
		t.Errorf("lines = %+v, want only the bound row", lines)
	}

	if !l.Total().Equal(dec("12.5")) {
		t.Errorf("total = %s, want 12.5", l.Total())
	}
}

func TestMutatorsDoNotAliasReceiver(t *testing.T) {
	t.Parallel()

	l := boundList(t, 1, 2)
	snapshot := l.Rows()

	_ = l.DeleteRows([]int{0})
	_ = l.SetQuantity(1, dec("99"))
	_, _ = l.SelectProduct(0, testProducts()[2])

	for i, row := range l.Rows() {
		if row.Item.ProductID != snapshot[i].Item.ProductID ||
			!row.Item.Quantity.Equal(snapshot[i].Item.Quantity) {
			t.Fatalf("receiver mutated in place at row %d", i)
		}
	}
}
