package fatura

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FetchProducts loads the full product list for the editor's catalog.
func (c *Client) FetchProducts() ([]Product, error) {
	var products []Product
	if err := c.Request("GET", "products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct loads a single product by id.
func (c *Client) FetchProduct(id int64) (Product, error) {
	var p Product
	if err := c.Request("GET", fmt.Sprintf("products/%d", id), nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// CmdProduct handles product commands
func (c *Client) CmdProduct(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: fatura-cli product <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, search")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  fatura-cli product list")
		fmt.Println("  fatura-cli product get 42")
		fmt.Println("  fatura-cli product search \"coffee\"")
		return nil
	}

	switch args[0] {
	case "list":
		return c.productList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli product get <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id: %s", args[1])
		}
		return c.productGet(id)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli product search <query>")
		}
		return c.productSearch(args[1])
	default:
		return fmt.Errorf("unknown product subcommand: %s", args[0])
	}
}

func (c *Client) productList() error {
	fmt.Printf("%sFetching products...%s\n", Blue, Reset)

	products, err := c.FetchProducts()
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Printf("%sNo products found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sProducts (%d):%s\n", Cyan, len(products), Reset)
	for _, p := range products {
		fmt.Printf("  [%d] %s", p.ID, p.Name)
		if p.Code != "" {
			fmt.Printf(" %s(%s)%s", Yellow, p.Code, Reset)
		}
		fmt.Printf(" - %s\n", FormatCurrency(p.SalePrice))
	}
	return nil
}

func (c *Client) productGet(id int64) error {
	fmt.Printf("%sFetching product: %d%s\n", Blue, id, Reset)

	p, err := c.FetchProduct(id)
	if err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(jsonOut))
	return nil
}

func (c *Client) productSearch(query string) error {
	products, err := c.FetchProducts()
	if err != nil {
		return err
	}

	matches := NewCatalog(products).Search(query)
	if len(matches) == 0 {
		fmt.Printf("%sNo products match %q%s\n", Yellow, query, Reset)
		return nil
	}

	fmt.Printf("\n%sMatches (%d):%s\n", Cyan, len(matches), Reset)
	for _, p := range matches {
		fmt.Printf("  [%d] %s - %s\n", p.ID, p.Name, FormatCurrency(p.SalePrice))
	}
	return nil
}
