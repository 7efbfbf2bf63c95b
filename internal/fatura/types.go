package fatura

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as returned by the backend.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	Article       string          `json:"article,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// Customer is a buyer account.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Supplier is a seller account. Same shape as Customer but a separate
// resource on the backend.
type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// InvoiceLine is one flattened row of a submitted invoice. Rows without a
// bound product never reach the wire.
type InvoiceLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Invoice is a sales or purchase invoice document. The two kinds share a
// shape; PartyName carries the customer or supplier name respectively.
type Invoice struct {
	ID          int64           `json:"id"`
	Number      string          `json:"invoice_number,omitempty"`
	PartyID     int64           `json:"party_id,omitempty"`
	PartyName   string          `json:"party_name,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	PaymentDate string          `json:"payment_date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Active      bool            `json:"is_active"`
	Items       []InvoiceLine   `json:"items,omitempty"`
}

// InvoiceKind selects the backend resource an invoice belongs to.
type InvoiceKind int

const (
	SalesInvoice InvoiceKind = iota
	PurchaseInvoice
)

func (k InvoiceKind) String() string {
	if k == PurchaseInvoice {
		return "purchase"
	}
	return "sales"
}

// endpoint returns the REST resource path for the kind.
func (k InvoiceKind) endpoint() string {
	if k == PurchaseInvoice {
		return "purchase-invoices"
	}
	return "sales-invoices"
}
