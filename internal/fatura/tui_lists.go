package fatura

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Table keys for persisted grid layouts.
const (
	tableSalesInvoices    = "sales_invoices"
	tablePurchaseInvoices = "purchase_invoices"
)

// defaultInvoiceColumns is the column template both invoice tables start
// from. Widths use the persisted 50..500 scale; the renderer maps ten
// units to one terminal cell.
func defaultInvoiceColumns() []Column {
	return []Column{
		{ID: ColCheckbox, Label: " ", Visible: true, Width: 50, Order: 0},
		{ID: "number", Label: "Number", Visible: true, Width: 140, Order: 1},
		{ID: "party", Label: "Party", Visible: true, Width: 220, Order: 2},
		{ID: "created_at", Label: "Created", Visible: true, Width: 120, Order: 3},
		{ID: "payment_date", Label: "Payment", Visible: false, Width: 120, Order: 4},
		{ID: "total", Label: "Total", Visible: true, Width: 120, Order: 5, Align: AlignRight},
		{ID: "status", Label: "Status", Visible: true, Width: 120, Order: 6},
	}
}

func (m *Model) loadLayouts() {
	for _, table := range []string{tableSalesInvoices, tablePurchaseInvoices} {
		cols, err := m.store.Load(table)
		if err != nil || cols == nil {
			m.layouts[table] = NewGridLayout(defaultInvoiceColumns())
			continue
		}
		m.layouts[table] = NewGridLayout(cols)
	}
}

func (m Model) layoutKey() string {
	if m.kind == PurchaseInvoice {
		return tablePurchaseInvoices
	}
	return tableSalesInvoices
}

func (m Model) invoiceListView() View {
	if m.kind == PurchaseInvoice {
		return ViewPurchaseInvoices
	}
	return ViewSalesInvoices
}

// persistLayout stores the table's layout in memory and writes it through
// the store. A write failure is reported but never blocks the UI.
func (m Model) persistLayout(g GridLayout) Model {
	m.layouts[m.layoutKey()] = g
	if err := m.store.Save(m.layoutKey(), g.Columns()); err != nil {
		m.message = err.Error()
		m.messageType = "error"
	}
	return m
}

// Load commands

func (m Model) loadInvoices(kind InvoiceKind) tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.client.FetchInvoices(kind)
		if err != nil {
			return errorMsg{err}
		}
		return invoicesLoadedMsg{kind: kind, invoices: invoices}
	}
}

func (m Model) loadInvoiceDetail(id int64) tea.Cmd {
	kind := m.kind
	return func() tea.Msg {
		inv, err := m.client.FetchInvoice(kind, id)
		if err != nil {
			return errorMsg{err}
		}
		return invoiceLoadedMsg{invoice: inv}
	}
}

func (m Model) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := m.client.FetchProducts()
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, p := range products {
			details := FormatCurrency(p.SalePrice)
			if p.Code != "" {
				details = p.Code + " • " + details
			}
			items = append(items, ListItem{name: p.Name, details: details})
		}
		return listLoadedMsg{items}
	}
}

func (m Model) loadCustomers() tea.Cmd {
	return func() tea.Msg {
		customers, err := m.client.FetchCustomers()
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, cu := range customers {
			items = append(items, ListItem{name: cu.Name, details: cu.Phone})
		}
		return listLoadedMsg{items}
	}
}

func (m Model) loadSuppliers() tea.Cmd {
	return func() tea.Msg {
		suppliers, err := m.client.FetchSuppliers()
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, s := range suppliers {
			items = append(items, ListItem{name: s.Name, details: s.Phone})
		}
		return listLoadedMsg{items}
	}
}

func (m *Model) setListTitle() {
	switch m.view {
	case ViewProducts:
		m.currentList.Title = "Products"
	case ViewCustomers:
		m.currentList.Title = "Customers"
	case ViewSuppliers:
		m.currentList.Title = "Suppliers"
	}
	m.currentList.Styles.Title = titleStyle
}

// Invoice list interaction

func (m Model) cursorInvoice() (Invoice, bool) {
	rows := m.sortedInvoices()
	if m.invCursor < 0 || m.invCursor >= len(rows) {
		return Invoice{}, false
	}
	return rows[m.invCursor], true
}

func (m Model) handleInvoiceListKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.invCursor > 0 {
			m.invCursor--
		}
		return m, nil

	case "down", "j":
		if m.invCursor < len(m.invoices)-1 {
			m.invCursor++
		}
		return m, nil

	case "l":
		m.layoutMode = true
		m.layoutCol = 0
		return m, nil

	case "e":
		if inv, ok := m.cursorInvoice(); ok {
			if inv.Active {
				return m.notify("Unconfirm the invoice before editing", "error")
			}
			m.loading = true
			return m, m.openEditor(&inv)
		}
		return m, nil

	case "c":
		if inv, ok := m.cursorInvoice(); ok {
			m.prevView = m.view
			m.view = ViewConfirmAction
			m.confirmMsg = fmt.Sprintf("Confirm invoice %q? Stock will be updated.", inv.Number)
			m.confirmAction = m.setActiveCmd(inv, true)
		}
		return m, nil

	case "u":
		if inv, ok := m.cursorInvoice(); ok {
			m.prevView = m.view
			m.view = ViewConfirmAction
			m.confirmMsg = fmt.Sprintf("Unconfirm invoice %q? Stock will be reverted.", inv.Number)
			m.confirmAction = m.setActiveCmd(inv, false)
		}
		return m, nil

	case "d":
		if inv, ok := m.cursorInvoice(); ok {
			if inv.Active {
				return m.notify("Unconfirm the invoice before deleting", "error")
			}
			m.prevView = m.view
			m.view = ViewConfirmAction
			m.confirmMsg = fmt.Sprintf("Delete invoice %q? This cannot be undone.", inv.Number)
			m.confirmAction = m.deleteCmd(inv)
		}
		return m, nil
	}
	return m, nil
}

// handleDetailKeys mirrors the list actions for the opened invoice. The
// confirm prompt returns to the list, not the detail, since the action
// changes what the detail would show.
func (m Model) handleDetailKeys(key string) (tea.Model, tea.Cmd) {
	inv := m.detail
	switch key {
	case "e":
		if inv.Active {
			return m.notify("Unconfirm the invoice before editing", "error")
		}
		m.loading = true
		return m, m.openEditor(&inv)

	case "c":
		m.prevView = m.invoiceListView()
		m.view = ViewConfirmAction
		m.breadcrumbs = m.breadcrumbs[:2]
		m.confirmMsg = fmt.Sprintf("Confirm invoice %q? Stock will be updated.", inv.Number)
		m.confirmAction = m.setActiveCmd(inv, true)
		return m, nil

	case "u":
		m.prevView = m.invoiceListView()
		m.view = ViewConfirmAction
		m.breadcrumbs = m.breadcrumbs[:2]
		m.confirmMsg = fmt.Sprintf("Unconfirm invoice %q? Stock will be reverted.", inv.Number)
		m.confirmAction = m.setActiveCmd(inv, false)
		return m, nil

	case "d":
		if inv.Active {
			return m.notify("Unconfirm the invoice before deleting", "error")
		}
		m.prevView = m.invoiceListView()
		m.view = ViewConfirmAction
		m.breadcrumbs = m.breadcrumbs[:2]
		m.confirmMsg = fmt.Sprintf("Delete invoice %q? This cannot be undone.", inv.Number)
		m.confirmAction = m.deleteCmd(inv)
		return m, nil
	}
	return m, nil
}

func (m Model) setActiveCmd(inv Invoice, active bool) tea.Cmd {
	kind := m.kind
	return func() tea.Msg {
		if err := m.client.SetInvoiceActive(kind, inv.ID, active); err != nil {
			return errorMsg{err}
		}
		if active {
			return actionDoneMsg{fmt.Sprintf("Invoice confirmed: %s", inv.Number)}
		}
		return actionDoneMsg{fmt.Sprintf("Invoice unconfirmed: %s", inv.Number)}
	}
}

func (m Model) deleteCmd(inv Invoice) tea.Cmd {
	kind := m.kind
	return func() tea.Msg {
		if err := m.client.DeleteInvoice(kind, inv.ID); err != nil {
			return errorMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Invoice deleted: %s", inv.Number)}
	}
}

// Layout mode: keyboard reorder, resize, visibility and sort for the
// current table's columns, persisted on every change.

func (m Model) handleLayoutKeys(key string) (tea.Model, tea.Cmd) {
	g := m.layouts[m.layoutKey()]
	cols := g.Columns()
	if len(cols) == 0 {
		m.layoutMode = false
		return m, nil
	}
	if m.layoutCol >= len(cols) {
		m.layoutCol = len(cols) - 1
	}
	cur := cols[m.layoutCol]

	switch key {
	case "esc", "l", "q":
		m.layoutMode = false
		return m, nil

	case "left", "h":
		if m.layoutCol > 0 {
			m.layoutCol--
		}
		return m, nil

	case "right":
		if m.layoutCol < len(cols)-1 {
			m.layoutCol++
		}
		return m, nil

	case "<":
		// The checkbox column is pinned; nothing moves past it and the
		// cursor must not land on it.
		if m.layoutCol > 0 && cols[m.layoutCol-1].ID != ColCheckbox {
			m = m.persistLayout(g.Reorder(cur.ID, cols[m.layoutCol-1].ID))
			m.layoutCol--
		}
		return m, nil

	case ">":
		// Reorder inserts before the target, so moving right means
		// inserting before the column two places over, or swapping with
		// the last column directly.
		if m.layoutCol < len(cols)-1 {
			if m.layoutCol+2 < len(cols) {
				m = m.persistLayout(g.Reorder(cur.ID, cols[m.layoutCol+2].ID))
			} else {
				m = m.persistLayout(g.Reorder(cols[m.layoutCol+1].ID, cur.ID))
			}
			g = m.layouts[m.layoutKey()]
			if g.indexOf(cur.ID) >= 0 {
				m.layoutCol = g.indexOf(cur.ID)
			}
		}
		return m, nil

	case "+", "=":
		m = m.persistLayout(g.Resize(cur.ID, 20))
		return m, nil

	case "-":
		m = m.persistLayout(g.Resize(cur.ID, -20))
		return m, nil

	case "v":
		m = m.persistLayout(g.SetVisible(cur.ID, !cur.Visible))
		return m, nil

	case "s":
		m = m.persistLayout(g.SortBy(cur.ID))
		return m, nil
	}
	return m, nil
}

// sortedInvoices applies the grid's sort state to the loaded invoices.
func (m Model) sortedInvoices() []Invoice {
	g := m.layouts[m.layoutKey()]
	col, dir := g.SortState()
	rows := append([]Invoice(nil), m.invoices...)
	if col == "" || dir == SortNone {
		return rows
	}

	less := func(a, b Invoice) bool {
		switch col {
		case "number":
			return a.Number < b.Number
		case "party":
			return a.PartyName < b.PartyName
		case "created_at":
			return a.CreatedAt < b.CreatedAt
		case "payment_date":
			return a.PaymentDate < b.PaymentDate
		case "total":
			return a.TotalAmount.LessThan(b.TotalAmount)
		case "status":
			return !a.Active && b.Active
		}
		return false
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if dir == SortDesc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return rows
}

// Rendering

func colWidthCells(w int) int {
	cells := w / 10
	if cells < 4 {
		cells = 4
	}
	return cells
}

func padCell(text string, width int, align Align) string {
	runes := []rune(text)
	if len(runes) > width {
		return string(runes[:width])
	}
	pad := width - len(runes)
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

func (m Model) invoiceCell(inv Invoice, colID string) string {
	switch colID {
	case ColCheckbox:
		return " "
	case "number":
		return inv.Number
	case "party":
		return inv.PartyName
	case "created_at":
		return inv.CreatedAt
	case "payment_date":
		return inv.PaymentDate
	case "total":
		return FormatCurrency(inv.TotalAmount)
	case "status":
		if inv.Active {
			return "confirmed"
		}
		return "draft"
	}
	return ""
}

func (m Model) renderInvoiceTable() string {
	g := m.layouts[m.layoutKey()]
	visible := g.VisibleOrdered()
	sortCol, sortDir := g.SortState()
	rows := m.sortedInvoices()

	var b strings.Builder

	title := "Sales Invoices"
	if m.kind == PurchaseInvoice {
		title = "Purchase Invoices"
	}
	b.WriteString(titleStyle.Render(" "+title+" ") + "\n\n")

	// Header row. In layout mode the picked column is highlighted and
	// hidden columns are shown too so they can be re-enabled.
	header := visible
	if m.layoutMode {
		header = g.Columns()
	}
	b.WriteString("  ")
	for i, col := range header {
		label := col.Label
		if col.ID == sortCol {
			if sortDir == SortAsc {
				label += " ↑"
			} else if sortDir == SortDesc {
				label += " ↓"
			}
		}
		if m.layoutMode && !col.Visible {
			label += " (hidden)"
		}
		cell := padCell(label, colWidthCells(col.Width), col.Align)
		if m.layoutMode && i == m.layoutCol {
			b.WriteString(layoutCellStyle.Render(cell))
		} else {
			b.WriteString(headerCellStyle.Render(cell))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString("\n  No invoices\n")
		return b.String()
	}

	for i, inv := range rows {
		line := "  "
		for _, col := range visible {
			cell := m.invoiceCell(inv, col.ID)
			if col.ID == ColCheckbox && i == m.invCursor {
				cell = ">"
			}
			line += padCell(cell, colWidthCells(col.Width), col.Align) + "  "
		}
		if i == m.invCursor && !m.layoutMode {
			b.WriteString(cursorRowStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d invoices\n", len(rows)))
	return b.String()
}

func (m Model) renderInvoiceDetail() string {
	if m.loading {
		return "\n  Loading..."
	}

	inv := m.detail
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Invoice: "+inv.Number) + "\n\n")

	badge := draftBadge.Render("DRAFT")
	if inv.Active {
		badge = confirmedBadge.Render("CONFIRMED")
	}
	b.WriteString("  Status: " + badge + "\n")
	b.WriteString(fmt.Sprintf("  Party: %s\n", inv.PartyName))
	if inv.CreatedAt != "" {
		b.WriteString(fmt.Sprintf("  Created: %s\n", inv.CreatedAt))
	}
	if inv.PaymentDate != "" {
		b.WriteString(fmt.Sprintf("  Payment due: %s\n", inv.PaymentDate))
	}
	if inv.Notes != "" {
		b.WriteString(fmt.Sprintf("  Notes: %s\n", inv.Notes))
	}

	if len(inv.Items) > 0 {
		b.WriteString(fmt.Sprintf("\n  Items (%d):\n", len(inv.Items)))
		for _, ln := range inv.Items {
			b.WriteString(fmt.Sprintf("    • %s  x%s  @ %s  = %s\n",
				ln.ProductName, ln.Quantity.String(),
				FormatCurrency(ln.UnitPrice), FormatCurrency(ln.TotalPrice)))
		}
	}

	b.WriteString(fmt.Sprintf("\n  Total: %s\n", FormatCurrency(inv.TotalAmount)))
	return boxStyle.Render(b.String())
}
