package fatura

import "strings"

// ProductSource supplies products for line item search and lookup.
type ProductSource interface {
	Search(query string) []Product
	FindByID(id int64) (Product, bool)
}

// Catalog is an in-memory ProductSource over a loaded product list. The
// TUI fetches the list once per editor session and searches locally.
type Catalog struct {
	products []Product
}

// NewCatalog wraps a product slice. The slice is not copied; callers hand
// over ownership.
func NewCatalog(products []Product) *Catalog {
	return &Catalog{products: products}
}

// Search returns products whose name, code, article or barcode contains
// the query, case-insensitively. A blank query matches nothing so a
// cleared search box collapses its dropdown.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Code), q) ||
			strings.Contains(strings.ToLower(p.Article), q) ||
			strings.Contains(strings.ToLower(p.Barcode), q) {
			out = append(out, p)
		}
	}
	return out
}

// FindByID looks a product up by its identifier.
func (c *Catalog) FindByID(id int64) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
