package fatura

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// editorZone is the part of the editor the cursor lives in.
type editorZone int

const (
	zoneParty editorZone = iota
	zonePayment
	zoneNotes
	zoneItems
)

// Item table columns the cursor can sit on.
const (
	colSearch = iota
	colQty
	colPrice
)

const dropdownLimit = 8

// dismissDelay is how long a blurred search dropdown stays visible, so a
// selection click arriving right after the blur still lands.
const dismissDelay = 300 * time.Millisecond

type partyRef struct {
	id   int64
	name string
}

// editorState is the invoice editor: header fields, the item rows and
// the cell currently being edited.
type editorState struct {
	kind      InvoiceKind
	invoiceID int64 // 0 when creating
	number    string

	catalog  *Catalog
	items    ItemList
	parties  []partyRef
	partyIdx int

	payment textinput.Model
	notes   textinput.Model

	zone    editorZone
	row     int
	col     int
	editing bool
	input   textinput.Model
	pick    int

	// dismissGen invalidates scheduled dropdown dismissals: a tick only
	// fires if its generation still matches, so re-focusing the search
	// box cancels the pending dismissal by bumping the counter.
	dismissGen int
	dismissRow int

	saving bool
}

func (e *editorState) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if e.editing {
		e.input, cmd = e.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	e.payment, cmd = e.payment.Update(msg)
	cmds = append(cmds, cmd)
	e.notes, cmd = e.notes.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// openEditor fetches everything the editor needs in one command: the
// catalog, the party list for the invoice kind and, when editing, the
// full invoice with its lines.
func (m Model) openEditor(inv *Invoice) tea.Cmd {
	kind := m.kind
	client := m.client
	var id int64
	if inv != nil {
		id = inv.ID
	}
	return func() tea.Msg {
		products, err := client.FetchProducts()
		if err != nil {
			return errorMsg{err}
		}
		msg := editorReadyMsg{catalog: NewCatalog(products)}

		if kind == PurchaseInvoice {
			suppliers, err := client.FetchSuppliers()
			if err != nil {
				return errorMsg{err}
			}
			msg.suppliers = suppliers
		} else {
			customers, err := client.FetchCustomers()
			if err != nil {
				return errorMsg{err}
			}
			msg.customers = customers
		}

		if id != 0 {
			full, err := client.FetchInvoice(kind, id)
			if err != nil {
				return errorMsg{err}
			}
			msg.invoice = &full
		}
		return msg
	}
}

func (m Model) enterEditor(msg editorReadyMsg) (tea.Model, tea.Cmd) {
	e := editorState{
		kind:    m.kind,
		catalog: msg.catalog,
		zone:    zoneItems,
	}

	if m.kind == PurchaseInvoice {
		for _, s := range msg.suppliers {
			e.parties = append(e.parties, partyRef{id: s.ID, name: s.Name})
		}
	} else {
		for _, cu := range msg.customers {
			e.parties = append(e.parties, partyRef{id: cu.ID, name: cu.Name})
		}
	}

	e.payment = textinput.New()
	e.payment.Placeholder = "YYYY-MM-DD"
	e.payment.CharLimit = 10
	e.payment.Width = 12

	e.notes = textinput.New()
	e.notes.Placeholder = "Notes"
	e.notes.Width = 40

	crumb := "New Invoice"
	if msg.invoice != nil {
		inv := msg.invoice
		e.invoiceID = inv.ID
		e.number = inv.Number
		e.items = ItemListFrom(m.kind, inv.Items)
		e.payment.SetValue(inv.PaymentDate)
		e.notes.SetValue(inv.Notes)
		for i, p := range e.parties {
			if p.id == inv.PartyID {
				e.partyIdx = i
				break
			}
		}
		crumb = inv.Number
	} else {
		e.items = NewItemList(m.kind)
		e.items, _ = e.items.AddEmptyRow()
	}

	m.ed = e
	m.view = ViewEditor
	m.breadcrumbs = append(m.breadcrumbs[:2], crumb)
	return m, nil
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ed.editing {
		return m.handleCellKeys(msg)
	}

	switch key {
	case "esc":
		m.view = m.invoiceListView()
		m.breadcrumbs = m.breadcrumbs[:2]
		return m.refreshCurrentView()

	case "ctrl+s":
		return m.saveInvoice()

	case "tab":
		m.ed.blurHeader()
		switch m.ed.zone {
		case zoneParty:
			m.ed.zone = zonePayment
			m.ed.payment.Focus()
		case zonePayment:
			m.ed.zone = zoneNotes
			m.ed.notes.Focus()
		case zoneNotes:
			m.ed.zone = zoneItems
		default:
			m.ed.zone = zoneParty
		}
		return m, nil
	}

	if m.ed.zone != zoneItems {
		return m.handleHeaderKeys(msg)
	}
	return m.handleItemKeys(key)
}

// rowsMutated invalidates any scheduled dropdown dismissal: its row
// index was captured before the rows renumbered.
func (e *editorState) rowsMutated() {
	e.dismissGen++
}

func (e *editorState) blurHeader() {
	e.payment.Blur()
	e.notes.Blur()
}

func (m Model) handleHeaderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.ed.zone {
	case zoneParty:
		switch key {
		case "left", "h":
			if m.ed.partyIdx > 0 {
				m.ed.partyIdx--
			}
			return m, nil
		case "right", "l":
			if m.ed.partyIdx < len(m.ed.parties)-1 {
				m.ed.partyIdx++
			}
			return m, nil
		case "down", "enter":
			m.ed.zone = zonePayment
			m.ed.payment.Focus()
			return m, nil
		}
		return m, nil

	case zonePayment:
		if key == "down" || key == "enter" {
			m.ed.payment.Blur()
			m.ed.zone = zoneNotes
			m.ed.notes.Focus()
			return m, nil
		}
		if key == "up" {
			m.ed.payment.Blur()
			m.ed.zone = zoneParty
			return m, nil
		}
		var cmd tea.Cmd
		m.ed.payment, cmd = m.ed.payment.Update(msg)
		return m, cmd

	case zoneNotes:
		if key == "down" || key == "enter" {
			m.ed.notes.Blur()
			m.ed.zone = zoneItems
			return m, nil
		}
		if key == "up" {
			m.ed.notes.Blur()
			m.ed.zone = zonePayment
			m.ed.payment.Focus()
			return m, nil
		}
		var cmd tea.Cmd
		m.ed.notes, cmd = m.ed.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

// targetRows is the index set row operations act on: the selection when
// one exists, the cursor row otherwise.
func (e editorState) targetRows() []int {
	if sel := e.items.SelectedIndices(); len(sel) > 0 {
		return sel
	}
	if e.items.Len() == 0 {
		return nil
	}
	return []int{e.row}
}

func (m Model) clampRow() Model {
	if m.ed.row >= m.ed.items.Len() {
		m.ed.row = m.ed.items.Len() - 1
	}
	if m.ed.row < 0 {
		m.ed.row = 0
	}
	return m
}

func (m Model) handleItemKeys(key string) (tea.Model, tea.Cmd) {
	e := &m.ed

	switch key {
	case "up", "k":
		if e.row > 0 {
			e.row--
		} else {
			e.zone = zoneParty
		}
		return m, nil

	case "down", "j":
		if e.row < e.items.Len()-1 {
			e.row++
		}
		return m, nil

	case "left", "h":
		if e.col > colSearch {
			e.col--
		}
		return m, nil

	case "right", "l":
		if e.col < colPrice {
			e.col++
		}
		return m, nil

	case "enter", "i":
		return m.startCellEdit()

	case " ", "space":
		e.items = e.items.ToggleSelect(e.row)
		return m, nil

	case "ctrl+a":
		e.items = e.items.SelectAll()
		return m, nil

	case "a":
		var idx int
		e.items, idx = e.items.AddEmptyRow()
		e.rowsMutated()
		e.row = idx
		e.col = colSearch
		return m, nil

	case "d":
		targets := e.targetRows()
		e.items = e.items.DeleteRows(targets)
		e.rowsMutated()
		return m.clampRow(), nil

	case "c":
		e.items = e.items.CopyRows(e.targetRows())
		e.rowsMutated()
		return m, nil

	case "K", "shift+up":
		targets := e.targetRows()
		e.items = e.items.MoveUp(targets)
		e.rowsMutated()
		if len(targets) == 1 && targets[0] == e.row && e.row > 0 {
			e.row--
		}
		return m, nil

	case "J", "shift+down":
		targets := e.targetRows()
		e.items = e.items.MoveDown(targets)
		e.rowsMutated()
		if len(targets) == 1 && targets[0] == e.row && e.row < e.items.Len()-1 {
			e.row++
		}
		return m, nil
	}
	return m, nil
}

func (m Model) startCellEdit() (tea.Model, tea.Cmd) {
	e := &m.ed
	row, ok := e.items.Row(e.row)
	if !ok {
		return m, nil
	}

	e.input = textinput.New()
	e.input.Width = 24

	switch e.col {
	case colSearch:
		e.input.SetValue(row.SearchText)
		e.items = e.items.SetSearchFocus(e.row, true)
		e.items = e.items.Search(e.row, row.SearchText, e.catalog)
		e.pick = 0
		e.dismissGen++
	case colQty:
		e.input.SetValue(row.Item.Quantity.String())
		e.input.CharLimit = 12
	case colPrice:
		e.input.SetValue(row.Item.UnitPrice.String())
		e.input.CharLimit = 12
	}

	e.editing = true
	e.input.CursorEnd()
	return m, e.input.Focus()
}

func (m Model) handleCellKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.ed
	key := msg.String()

	if e.col == colSearch {
		switch key {
		case "esc":
			return m.stopSearchEdit()

		case "up":
			if e.pick > 0 {
				e.pick--
			}
			return m, nil

		case "down":
			row, _ := e.items.Row(e.row)
			limit := len(row.Candidates)
			if limit > dropdownLimit {
				limit = dropdownLimit
			}
			if e.pick < limit-1 {
				e.pick++
			}
			return m, nil

		case "enter":
			row, ok := e.items.Row(e.row)
			if !ok || e.pick >= len(row.Candidates) {
				return m.stopSearchEdit()
			}
			product := row.Candidates[e.pick]
			var notice MergeNotice
			e.items, notice = e.items.SelectProduct(e.row, product)
			e.editing = false
			e.input.Blur()
			m = m.clampRow()
			if notice.Merged {
				e.rowsMutated()
				e.row = notice.Index
				return m.notify(fmt.Sprintf(
					"Quantities combined for duplicate product: %s (%s)",
					notice.ProductName, notice.Quantity.String()), "success")
			}
			return m, nil
		}

		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		e.items = e.items.Search(e.row, e.input.Value(), e.catalog)
		e.pick = 0
		return m, cmd
	}

	// Numeric cells commit on enter or tab and discard on esc.
	switch key {
	case "esc":
		e.editing = false
		e.input.Blur()
		return m, nil

	case "enter", "tab":
		raw := strings.TrimSpace(e.input.Value())
		val := decimal.Zero
		if raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				e.editing = false
				e.input.Blur()
				return m.notify("Invalid number: "+raw, "error")
			}
			val = parsed
		}
		if e.col == colQty {
			e.items = e.items.SetQuantity(e.row, val)
		} else {
			e.items = e.items.SetUnitPrice(e.row, val)
		}
		e.editing = false
		e.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return m, cmd
}

// stopSearchEdit blurs the search box and schedules the dropdown to
// collapse after a short delay unless the box is focused again first.
func (m Model) stopSearchEdit() (tea.Model, tea.Cmd) {
	e := &m.ed
	e.editing = false
	e.input.Blur()
	e.items = e.items.SetSearchFocus(e.row, false)
	e.dismissGen++
	e.dismissRow = e.row
	gen := e.dismissGen
	return m, tea.Tick(dismissDelay, func(time.Time) tea.Msg {
		return dismissDropdownMsg{gen: gen}
	})
}

func (m Model) handleDismiss(msg dismissDropdownMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewEditor || msg.gen != m.ed.dismissGen {
		return m, nil
	}
	m.ed.items = m.ed.items.ClearCandidates(m.ed.dismissRow)
	return m, nil
}

func (m Model) saveInvoice() (tea.Model, tea.Cmd) {
	e := &m.ed
	if e.saving {
		return m, nil
	}

	lines := e.items.Lines()
	if len(lines) == 0 {
		return m.notify("Select at least one product", "error")
	}
	if len(e.parties) == 0 || e.partyIdx >= len(e.parties) {
		return m.notify("Select a customer or supplier", "error")
	}

	draft := InvoiceDraft{
		Number:      e.number,
		PartyID:     e.parties[e.partyIdx].id,
		PaymentDate: strings.TrimSpace(e.payment.Value()),
		Notes:       strings.TrimSpace(e.notes.Value()),
		TotalAmount: e.items.Total(),
		Items:       lines,
	}

	e.saving = true
	kind := e.kind
	id := e.invoiceID
	client := m.client
	return m, func() tea.Msg {
		var inv Invoice
		var err error
		if id == 0 {
			inv, err = client.CreateInvoice(kind, draft)
		} else {
			inv, err = client.UpdateInvoice(kind, id, draft)
		}
		if err != nil {
			return errorMsg{err}
		}
		return invoiceSavedMsg{invoice: inv}
	}
}

func (m Model) editorHelp() string {
	if m.ed.editing {
		if m.ed.col == colSearch {
			return "type to search • ↑/↓: pick • enter: select • esc: close"
		}
		return "enter: apply • esc: cancel"
	}
	if m.ed.zone != zoneItems {
		return "←/→: change • ↑/↓: field • tab: next • ctrl+s: save • esc: back"
	}
	return "↑/↓/←/→: move • enter: edit • space: select • ctrl+a: all • a: add • d: delete • c: copy • K/J: reorder • ctrl+s: save • esc: back"
}

func (m Model) renderEditor() string {
	e := m.ed
	var b strings.Builder

	title := " New Sales Invoice "
	if e.kind == PurchaseInvoice {
		title = " New Purchase Invoice "
	}
	if e.invoiceID != 0 {
		title = fmt.Sprintf(" Invoice: %s ", e.number)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	partyLabel := "Customer"
	if e.kind == PurchaseInvoice {
		partyLabel = "Supplier"
	}
	partyName := "(none)"
	if len(e.parties) > 0 && e.partyIdx < len(e.parties) {
		partyName = e.parties[e.partyIdx].name
	}
	partyLine := fmt.Sprintf("  %s: ◂ %s ▸", partyLabel, partyName)
	if e.zone == zoneParty {
		b.WriteString(cursorRowStyle.Render(partyLine))
	} else {
		b.WriteString(partyLine)
	}
	b.WriteString("\n")

	b.WriteString("  Payment due: " + e.payment.View() + "\n")
	b.WriteString("  Notes: " + e.notes.View() + "\n\n")

	header := fmt.Sprintf("  %-3s %-34s %12s %14s %14s", " ", "Product", "Qty", "Price", "Total")
	b.WriteString(headerCellStyle.Render(header) + "\n")

	for i, row := range e.items.Rows() {
		mark := "[ ]"
		if row.Selected {
			mark = "[x]"
		}

		search := row.SearchText
		if search == "" {
			search = "(search product)"
		}
		qty := row.Item.Quantity.String()
		price := row.Item.UnitPrice.StringFixed(2)

		if e.editing && i == e.row && e.zone == zoneItems {
			switch e.col {
			case colSearch:
				search = e.input.View()
			case colQty:
				qty = e.input.View()
			case colPrice:
				price = e.input.View()
			}
		}

		line := fmt.Sprintf("  %-3s %-34s %12s %14s %14s",
			mark, search, qty, price, FormatCurrency(row.Item.TotalPrice))
		if i == e.row && e.zone == zoneItems {
			b.WriteString(cursorRowStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")

		// Dropdown under the focused row.
		if i == e.row && len(row.Candidates) > 0 && (row.SearchFocused || e.editing) {
			var d strings.Builder
			for j, p := range row.Candidates {
				if j >= dropdownLimit {
					d.WriteString(fmt.Sprintf("… and %d more\n", len(row.Candidates)-dropdownLimit))
					break
				}
				cursor := "  "
				if j == e.pick {
					cursor = "> "
				}
				d.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, p.Name, FormatCurrency(e.items.priceFor(p))))
			}
			b.WriteString(dropdownStyle.Render(strings.TrimRight(d.String(), "\n")))
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("\n  Total: %s", FormatCurrency(e.items.Total())))
	if e.saving {
		b.WriteString("   " + helpStyle.Render("saving…"))
	}
	b.WriteString("\n")

	return b.String()
}
