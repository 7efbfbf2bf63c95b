package fatura

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version info
const (
	Version = "0.3.1"
	Author  = "Elvin M"
	Year    = "2026"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	creditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	draftBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#FFA500")).
			Foreground(lipgloss.Color("#000")).
			Padding(0, 1)

	confirmedBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#04B575")).
			Foreground(lipgloss.Color("#FFF")).
			Padding(0, 1)

	notificationSuccess = lipgloss.NewStyle().
				Background(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	notificationError = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF4444")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	layoutCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000")).
			Background(lipgloss.Color("#FFA500"))

	cursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// View represents different screens
type View int

const (
	ViewMain View = iota
	ViewSalesInvoices
	ViewPurchaseInvoices
	ViewInvoiceDetail
	ViewEditor
	ViewProducts
	ViewCustomers
	ViewSuppliers
	ViewConfirmAction
)

// MenuItem for the main menu
type MenuItem struct {
	title       string
	description string
	view        View
}

func (i MenuItem) Title() string       { return i.title }
func (i MenuItem) Description() string { return i.description }
func (i MenuItem) FilterValue() string { return i.title }

// ListItem for resource lists
type ListItem struct {
	name    string
	details string
}

func (i ListItem) Title() string       { return i.name }
func (i ListItem) Description() string { return i.details }
func (i ListItem) FilterValue() string { return i.name }

// Model is the main TUI model
type Model struct {
	client   *Client
	store    *LayoutStore
	view     View
	prevView View
	width    int
	height   int

	mainMenu    list.Model
	currentList list.Model

	spinner spinner.Model
	loading bool

	breadcrumbs []string
	message     string
	messageType string

	notification     string
	notificationType string
	showNotification bool

	// Invoice list state. The grid layouts are keyed by table name and
	// survive edits to either list because both live in the map.
	kind       InvoiceKind
	invoices   []Invoice
	invCursor  int
	layouts    map[string]GridLayout
	layoutMode bool
	layoutCol  int

	detail Invoice

	confirmMsg    string
	confirmAction tea.Cmd

	ed editorState
}

// Messages
type errorMsg struct {
	err error
}

type invoicesLoadedMsg struct {
	kind     InvoiceKind
	invoices []Invoice
}

type invoiceLoadedMsg struct {
	invoice Invoice
}

type listLoadedMsg struct {
	items []ListItem
}

type actionDoneMsg struct {
	message string
}

type invoiceSavedMsg struct {
	invoice Invoice
}

type editorReadyMsg struct {
	catalog   *Catalog
	customers []Customer
	suppliers []Supplier
	invoice   *Invoice
}

type dismissDropdownMsg struct {
	gen int
}

type clearNotificationMsg struct{}

// NewTUI creates a new TUI model
func NewTUI(client *Client, store *LayoutStore) Model {
	menuItems := []list.Item{
		MenuItem{"Sales Invoices", "Customer invoices & stock out", ViewSalesInvoices},
		MenuItem{"Purchase Invoices", "Supplier invoices & stock in", ViewPurchaseInvoices},
		MenuItem{"Products", "Catalog with prices & barcodes", ViewProducts},
		MenuItem{"Customers", "Buyer accounts", ViewCustomers},
		MenuItem{"Suppliers", "Seller accounts", ViewSuppliers},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	mainMenu := list.New(menuItems, delegate, 0, 0)
	mainMenu.Title = client.Config.Brand
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := Model{
		client:      client,
		store:       store,
		view:        ViewMain,
		mainMenu:    mainMenu,
		spinner:     s,
		breadcrumbs: []string{"Main"},
		layouts:     make(map[string]GridLayout),
	}
	m.loadLayouts()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) notify(text, kind string) (Model, tea.Cmd) {
	m.notification = text
	m.notificationType = kind
	m.showNotification = true
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		m.messageType = ""

		// The editor owns its keys entirely.
		if m.view == ViewEditor {
			return m.handleEditorKeys(msg)
		}

		if m.layoutMode {
			return m.handleLayoutKeys(msg.String())
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.view == ViewMain {
				return m, tea.Quit
			}
			m.view = ViewMain
			m.breadcrumbs = []string{"Main"}
			return m, nil

		case "esc":
			switch m.view {
			case ViewMain:
				// Do nothing at main
			case ViewInvoiceDetail:
				m.view = m.invoiceListView()
				if len(m.breadcrumbs) > 2 {
					m.breadcrumbs = m.breadcrumbs[:2]
				}
			case ViewConfirmAction:
				m.view = m.prevView
			default:
				m.view = ViewMain
				m.breadcrumbs = []string{"Main"}
			}
			return m, nil

		case "enter":
			return m.handleEnter()

		case "y":
			if m.view == ViewConfirmAction {
				m.view = m.prevView
				m.loading = true
				return m, m.confirmAction
			}

		case "n":
			if m.view == ViewConfirmAction {
				m.view = m.prevView
				return m, nil
			}
			if m.view == ViewSalesInvoices || m.view == ViewPurchaseInvoices {
				m.loading = true
				return m, m.openEditor(nil)
			}

		case "r":
			return m.refreshCurrentView()

		default:
			if m.view == ViewSalesInvoices || m.view == ViewPurchaseInvoices {
				return m.handleInvoiceListKeys(msg.String())
			}
			if m.view == ViewInvoiceDetail {
				return m.handleDetailKeys(msg.String())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := msg.Height - 8
		w := msg.Width - 4

		m.mainMenu.SetSize(w, h)
		if m.currentList.Items() != nil {
			m.currentList.SetSize(w, h)
		}

	case errorMsg:
		m.loading = false
		m.ed.saving = false
		m.message = msg.err.Error()
		m.messageType = "error"
		return m, nil

	case invoicesLoadedMsg:
		m.loading = false
		m.kind = msg.kind
		m.invoices = msg.invoices
		if m.invCursor >= len(m.invoices) {
			m.invCursor = 0
		}
		return m, nil

	case invoiceLoadedMsg:
		m.loading = false
		m.detail = msg.invoice
		m.view = ViewInvoiceDetail
		m.breadcrumbs = append(m.breadcrumbs[:2], msg.invoice.Number)
		return m, nil

	case listLoadedMsg:
		m.loading = false
		items := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			items[i] = item
		}

		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = selectedStyle

		m.currentList = list.New(items, delegate, m.width-4, m.height-8)
		m.currentList.SetShowStatusBar(true)
		m.currentList.SetFilteringEnabled(true)
		m.setListTitle()
		return m, nil

	case editorReadyMsg:
		m.loading = false
		return m.enterEditor(msg)

	case invoiceSavedMsg:
		m.ed.saving = false
		m.view = m.invoiceListView()
		if len(m.breadcrumbs) > 2 {
			m.breadcrumbs = m.breadcrumbs[:2]
		}
		refreshModel, refreshCmd := m.refreshCurrentView()
		m = refreshModel.(Model)
		notified, notifyCmd := m.notify(fmt.Sprintf("Invoice saved: %s", msg.invoice.Number), "success")
		return notified, tea.Batch(refreshCmd, notifyCmd)

	case actionDoneMsg:
		refreshModel, refreshCmd := m.refreshCurrentView()
		m = refreshModel.(Model)
		notified, notifyCmd := m.notify(msg.message, "success")
		return notified, tea.Batch(refreshCmd, notifyCmd)

	case dismissDropdownMsg:
		return m.handleDismiss(msg)

	case clearNotificationMsg:
		m.showNotification = false
		m.notification = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewMain:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewProducts, ViewCustomers, ViewSuppliers:
		m.currentList, cmd = m.currentList.Update(msg)
	case ViewEditor:
		// Cursor blink and other residual input messages.
		cmd = m.ed.updateInputs(msg)
	}

	return m, cmd
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewMain:
		if item, ok := m.mainMenu.SelectedItem().(MenuItem); ok {
			m.view = item.view
			m.loading = true
			m.breadcrumbs = []string{"Main", item.title}

			switch item.view {
			case ViewSalesInvoices:
				return m, m.loadInvoices(SalesInvoice)
			case ViewPurchaseInvoices:
				return m, m.loadInvoices(PurchaseInvoice)
			case ViewProducts:
				return m, m.loadProducts()
			case ViewCustomers:
				return m, m.loadCustomers()
			case ViewSuppliers:
				return m, m.loadSuppliers()
			}
		}

	case ViewSalesInvoices, ViewPurchaseInvoices:
		if inv, ok := m.cursorInvoice(); ok {
			m.loading = true
			return m, m.loadInvoiceDetail(inv.ID)
		}
	}

	return m, nil
}

func (m Model) refreshCurrentView() (tea.Model, tea.Cmd) {
	m.loading = true
	switch m.view {
	case ViewSalesInvoices:
		return m, m.loadInvoices(SalesInvoice)
	case ViewPurchaseInvoices:
		return m, m.loadInvoices(PurchaseInvoice)
	case ViewProducts:
		return m, m.loadProducts()
	case ViewCustomers:
		return m, m.loadCustomers()
	case ViewSuppliers:
		return m, m.loadSuppliers()
	}
	m.loading = false
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.view {
	case ViewMain:
		content = m.mainMenu.View()
	case ViewSalesInvoices, ViewPurchaseInvoices:
		if m.loading {
			content = fmt.Sprintf("\n  %s Loading...", m.spinner.View())
		} else {
			content = m.renderInvoiceTable()
		}
	case ViewInvoiceDetail:
		content = m.renderInvoiceDetail()
	case ViewEditor:
		content = m.renderEditor()
	case ViewProducts, ViewCustomers, ViewSuppliers:
		if m.loading {
			content = fmt.Sprintf("\n  %s Loading...", m.spinner.View())
		} else {
			content = m.currentList.View()
		}
	case ViewConfirmAction:
		content = boxStyle.Render(fmt.Sprintf("\n  %s\n\n  [y] Yes    [n] No\n", m.confirmMsg))
	}

	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n")

	// Notification (auto-dismisses)
	if m.showNotification {
		if m.notificationType == "success" {
			b.WriteString(notificationSuccess.Render("✓ " + m.notification))
		} else {
			b.WriteString(notificationError.Render("✗ " + m.notification))
		}
		b.WriteString("\n")
	}

	b.WriteString(content)

	// Error message (persists until user takes action)
	if m.message != "" {
		b.WriteString("\n\n")
		if m.messageType == "error" {
			b.WriteString(errorStyle.Render("Error: " + m.message))
		} else {
			b.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())

	b.WriteString("\n")
	b.WriteString(creditStyle.Render(fmt.Sprintf("Created by %s in %s • v%s", Author, Year, Version)))

	return b.String()
}

func (m Model) renderStatusBar() string {
	status := fmt.Sprintf(" %s | %s ", m.client.Config.Brand, m.client.Config.APIURL)
	return statusBarStyle.Render(status)
}

func (m Model) renderBreadcrumbs() string {
	if len(m.breadcrumbs) == 0 {
		return ""
	}
	return breadcrumbStyle.Render("  " + strings.Join(m.breadcrumbs, " > "))
}

func (m Model) renderHelp() string {
	var help string
	switch m.view {
	case ViewMain:
		help = "↑/↓: navigate • enter: select • q: quit"
	case ViewSalesInvoices, ViewPurchaseInvoices:
		if m.layoutMode {
			help = "←/→: pick column • </>: move • +/-: width • v: show/hide • s: sort • esc: done"
		} else {
			help = "↑/↓: navigate • enter: detail • n: new • e: edit • c: confirm • u: unconfirm • d: delete • l: layout • r: refresh • esc: back"
		}
	case ViewInvoiceDetail:
		help = "esc: back • e: edit • c: confirm • u: unconfirm • d: delete"
	case ViewEditor:
		help = m.editorHelp()
	case ViewProducts, ViewCustomers, ViewSuppliers:
		help = "↑/↓: navigate • /: search • r: refresh • esc: back"
	case ViewConfirmAction:
		help = "y: confirm • n: cancel"
	}
	return helpStyle.Render(help)
}

// RunTUI starts the TUI
func RunTUI(client *Client, store *LayoutStore) error {
	p := tea.NewProgram(NewTUI(client, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
