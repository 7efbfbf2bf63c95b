package fatura

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(&Config{
		APIURL:   srv.URL,
		APIToken: "test-token",
		Brand:    "Test",
	})
	return c, srv
}

func TestRequest_DecodesAndAuthenticates(t *testing.T) {
	t.Parallel()

	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/api/products" {
			t.Errorf("path = %q, want /api/products", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Espresso Beans","sale_price":"12.50","purchase_price":"8.00"}]`))
	})
	defer srv.Close()

	products, err := c.FetchProducts()
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Espresso Beans" {
		t.Fatalf("products = %+v", products)
	}
	if !products[0].SalePrice.Equal(dec("12.50")) {
		t.Errorf("sale price = %s", products[0].SalePrice)
	}
}

func TestRequest_SendsJSONBody(t *testing.T) {
	t.Parallel()

	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var draft InvoiceDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if draft.PartyID != 7 || len(draft.Items) != 1 {
			t.Errorf("draft = %+v", draft)
		}
		w.Write([]byte(`{"id":10,"invoice_number":"SAT-0010"}`))
	})
	defer srv.Close()

	inv, err := c.CreateInvoice(SalesInvoice, InvoiceDraft{
		PartyID: 7,
		Items: []InvoiceLine{
			{ProductID: 1, Quantity: dec("2"), UnitPrice: dec("12.50"), TotalPrice: dec("25")},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.ID != 10 || inv.Number != "SAT-0010" {
		t.Errorf("invoice = %+v", inv)
	}
}

func TestRequest_ErrorEnvelope(t *testing.T) {
	t.Parallel()

	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invoice number already used"}`))
	})
	defer srv.Close()

	_, err := c.FetchInvoices(SalesInvoice)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "invoice number already used") {
		t.Errorf("error = %v, want the backend message", err)
	}
}

func TestRequest_ErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()

	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	err := c.Request("GET", "auth/me", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("error = %v", err)
	}
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	if got := FormatCurrency(dec("1234.5")); got != "1234.50 ₼" {
		t.Errorf("FormatCurrency = %q", got)
	}
	if got := FormatCurrency(dec("0")); got != "0.00 ₼" {
		t.Errorf("FormatCurrency = %q", got)
	}
}
