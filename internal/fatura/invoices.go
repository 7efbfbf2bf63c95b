package fatura

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// InvoiceDraft is an invoice payload for create and update calls. Lines
// must all reference a product; the editor filters unbound rows before
// building a draft.
type InvoiceDraft struct {
	Number      string          `json:"number,omitempty"`
	PartyID     int64           `json:"party_id"`
	PaymentDate string          `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []InvoiceLine   `json:"items"`
}

// FetchInvoices loads all invoices of a kind.
func (c *Client) FetchInvoices(kind InvoiceKind) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.Request("GET", kind.endpoint(), nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// FetchInvoice loads one invoice with its lines.
func (c *Client) FetchInvoice(kind InvoiceKind, id int64) (Invoice, error) {
	var inv Invoice
	if err := c.Request("GET", fmt.Sprintf("%s/%d", kind.endpoint(), id), nil, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// CreateInvoice submits a new invoice and returns the saved record.
func (c *Client) CreateInvoice(kind InvoiceKind, draft InvoiceDraft) (Invoice, error) {
	var inv Invoice
	if err := c.Request("POST", kind.endpoint(), draft, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// UpdateInvoice replaces an existing invoice's header and lines.
func (c *Client) UpdateInvoice(kind InvoiceKind, id int64, draft InvoiceDraft) (Invoice, error) {
	var inv Invoice
	if err := c.Request("PUT", fmt.Sprintf("%s/%d", kind.endpoint(), id), draft, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// DeleteInvoice removes an invoice.
func (c *Client) DeleteInvoice(kind InvoiceKind, id int64) error {
	return c.Request("DELETE", fmt.Sprintf("%s/%d", kind.endpoint(), id), nil, nil)
}

// SetInvoiceActive confirms or unconfirms an invoice. Confirmed invoices
// affect stock and cannot be edited until unconfirmed.
func (c *Client) SetInvoiceActive(kind InvoiceKind, id int64, active bool) error {
	body := map[string]interface{}{"active": active}
	return c.Request("PATCH", fmt.Sprintf("%s/%d/active", kind.endpoint(), id), body, nil)
}

// CmdInvoice handles invoice commands
func (c *Client) CmdInvoice(kind InvoiceKind, args []string) error {
	name := kind.String()
	if len(args) == 0 {
		fmt.Printf("Usage: fatura-cli %s <subcommand> [args...]\n", name)
		fmt.Println("Subcommands: list, get, confirm, unconfirm, delete")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Printf("  fatura-cli %s list\n", name)
		fmt.Printf("  fatura-cli %s get 15\n", name)
		fmt.Printf("  fatura-cli %s confirm 15\n", name)
		fmt.Printf("  fatura-cli %s delete 15\n", name)
		return nil
	}

	sub := args[0]
	if sub == "list" {
		return c.invoiceList(kind)
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: fatura-cli %s %s <id>", name, sub)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %s", args[1])
	}

	switch sub {
	case "get":
		return c.invoiceGet(kind, id)
	case "confirm":
		return c.invoiceSetActive(kind, id, true)
	case "unconfirm":
		return c.invoiceSetActive(kind, id, false)
	case "delete":
		return c.invoiceDelete(kind, id)
	default:
		return fmt.Errorf("unknown %s subcommand: %s", name, sub)
	}
}

func (c *Client) invoiceList(kind InvoiceKind) error {
	fmt.Printf("%sFetching %s invoices...%s\n", Blue, kind, Reset)

	invoices, err := c.FetchInvoices(kind)
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		fmt.Printf("%sNo invoices found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sInvoices (%d):%s\n", Cyan, len(invoices), Reset)
	for _, inv := range invoices {
		status := fmt.Sprintf("%s[draft]%s", Yellow, Reset)
		if inv.Active {
			status = fmt.Sprintf("%s[confirmed]%s", Green, Reset)
		}
		fmt.Printf("  [%d] %s - %s - %s %s\n",
			inv.ID, inv.Number, inv.PartyName, FormatCurrency(inv.TotalAmount), status)
	}
	return nil
}

func (c *Client) invoiceGet(kind InvoiceKind, id int64) error {
	fmt.Printf("%sFetching %s invoice: %d%s\n", Blue, kind, id, Reset)

	inv, err := c.FetchInvoice(kind, id)
	if err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(inv, "", "  ")
	fmt.Println(string(jsonOut))
	return nil
}

func (c *Client) invoiceSetActive(kind InvoiceKind, id int64, active bool) error {
	verb := "Confirming"
	if !active {
		verb = "Unconfirming"
	}
	fmt.Printf("%s%s %s invoice: %d%s\n", Blue, verb, kind, id, Reset)

	if err := c.SetInvoiceActive(kind, id, active); err != nil {
		return err
	}

	if active {
		fmt.Printf("%s✓ Invoice confirmed: %d%s\n", Green, id, Reset)
	} else {
		fmt.Printf("%s✓ Invoice unconfirmed: %d%s\n", Green, id, Reset)
	}
	return nil
}

func (c *Client) invoiceDelete(kind InvoiceKind, id int64) error {
	fmt.Printf("%sDeleting %s invoice: %d%s\n", Blue, kind, id, Reset)

	if err := c.DeleteInvoice(kind, id); err != nil {
		return err
	}

	fmt.Printf("%s✓ Invoice deleted: %d%s\n", Green, id, Reset)
	return nil
}
