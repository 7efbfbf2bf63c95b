package fatura

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FetchSuppliers loads all suppliers.
func (c *Client) FetchSuppliers() ([]Supplier, error) {
	var suppliers []Supplier
	if err := c.Request("GET", "suppliers", nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CmdSupplier handles supplier commands
func (c *Client) CmdSupplier(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: fatura-cli supplier <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, create, delete")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  fatura-cli supplier list")
		fmt.Println("  fatura-cli supplier get 3")
		fmt.Println("  fatura-cli supplier create \"Baki Anbar MMC\"")
		fmt.Println("  fatura-cli supplier delete 3")
		return nil
	}

	switch args[0] {
	case "list":
		return c.supplierList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli supplier get <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid supplier id: %s", args[1])
		}
		return c.supplierGet(id)
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli supplier create <name> [--phone=X]")
		}
		return c.supplierCreate(args[1], parsePartyOptions(args[2:]))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli supplier delete <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid supplier id: %s", args[1])
		}
		return c.supplierDelete(id)
	default:
		return fmt.Errorf("unknown supplier subcommand: %s", args[0])
	}
}

func (c *Client) supplierList() error {
	fmt.Printf("%sFetching suppliers...%s\n", Blue, Reset)

	suppliers, err := c.FetchSuppliers()
	if err != nil {
		return err
	}

	if len(suppliers) == 0 {
		fmt.Printf("%sNo suppliers found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sSuppliers (%d):%s\n", Cyan, len(suppliers), Reset)
	for _, s := range suppliers {
		fmt.Printf("  [%d] %s", s.ID, s.Name)
		if s.Phone != "" {
			fmt.Printf(" - %s%s%s", Yellow, s.Phone, Reset)
		}
		fmt.Println()
	}
	return nil
}

func (c *Client) supplierGet(id int64) error {
	fmt.Printf("%sFetching supplier: %d%s\n", Blue, id, Reset)

	var s Supplier
	if err := c.Request("GET", fmt.Sprintf("suppliers/%d", id), nil, &s); err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(s, "", "  ")
	fmt.Println(string(jsonOut))
	return nil
}

func (c *Client) supplierCreate(name string, opts partyOptions) error {
	fmt.Printf("%sCreating supplier: %s%s\n", Blue, name, Reset)

	body := map[string]interface{}{"name": name}
	if opts.phone != "" {
		body["phone"] = opts.phone
		fmt.Printf("  Phone: %s\n", opts.phone)
	}
	if opts.notes != "" {
		body["notes"] = opts.notes
	}

	var s Supplier
	if err := c.Request("POST", "suppliers", body, &s); err != nil {
		return err
	}

	fmt.Printf("%s✓ Supplier created: %d%s\n", Green, s.ID, Reset)
	return nil
}

func (c *Client) supplierDelete(id int64) error {
	fmt.Printf("%sDeleting supplier: %d%s\n", Blue, id, Reset)

	if err := c.Request("DELETE", fmt.Sprintf("suppliers/%d", id), nil, nil); err != nil {
		return err
	}

	fmt.Printf("%s✓ Supplier deleted: %d%s\n", Green, id, Reset)
	return nil
}
