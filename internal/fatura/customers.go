package fatura

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FetchCustomers loads all customers.
func (c *Client) FetchCustomers() ([]Customer, error) {
	var customers []Customer
	if err := c.Request("GET", "customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CmdCustomer handles customer commands
func (c *Client) CmdCustomer(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: fatura-cli customer <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, create, delete")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  fatura-cli customer list")
		fmt.Println("  fatura-cli customer get 7")
		fmt.Println("  fatura-cli customer create \"Acme MMC\" --phone=\"+994501234567\"")
		fmt.Println("  fatura-cli customer delete 7")
		return nil
	}

	switch args[0] {
	case "list":
		return c.customerList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli customer get <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer id: %s", args[1])
		}
		return c.customerGet(id)
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli customer create <name> [--phone=X]")
		}
		return c.customerCreate(args[1], parsePartyOptions(args[2:]))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: fatura-cli customer delete <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer id: %s", args[1])
		}
		return c.customerDelete(id)
	default:
		return fmt.Errorf("unknown customer subcommand: %s", args[0])
	}
}

type partyOptions struct {
	phone string
	notes string
}

func parsePartyOptions(args []string) partyOptions {
	opts := partyOptions{}
	for _, arg := range args {
		if len(arg) > 8 && arg[:8] == "--phone=" {
			opts.phone = arg[8:]
		}
		if len(arg) > 8 && arg[:8] == "--notes=" {
			opts.notes = arg[8:]
		}
	}
	return opts
}

func (c *Client) customerList() error {
	fmt.Printf("%sFetching customers...%s\n", Blue, Reset)

	customers, err := c.FetchCustomers()
	if err != nil {
		return err
	}

	if len(customers) == 0 {
		fmt.Printf("%sNo customers found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sCustomers (%d):%s\n", Cyan, len(customers), Reset)
	for _, cu := range customers {
		fmt.Printf("  [%d] %s", cu.ID, cu.Name)
		if cu.Phone != "" {
			fmt.Printf(" - %s%s%s", Yellow, cu.Phone, Reset)
		}
		fmt.Println()
	}
	return nil
}

func (c *Client) customerGet(id int64) error {
	fmt.Printf("%sFetching customer: %d%s\n", Blue, id, Reset)

	var cu Customer
	if err := c.Request("GET", fmt.Sprintf("customers/%d", id), nil, &cu); err != nil {
		return err
	}

	jsonOut, _ := json.MarshalIndent(cu, "", "  ")
	fmt.Println(string(jsonOut))
	return nil
}

func (c *Client) customerCreate(name string, opts partyOptions) error {
	fmt.Printf("%sCreating customer: %s%s\n", Blue, name, Reset)

	body := map[string]interface{}{"name": name}
	if opts.phone != "" {
		body["phone"] = opts.phone
		fmt.Printf("  Phone: %s\n", opts.phone)
	}
	if opts.notes != "" {
		body["notes"] = opts.notes
	}

	var cu Customer
	if err := c.Request("POST", "customers", body, &cu); err != nil {
		return err
	}

	fmt.Printf("%s✓ Customer created: %d%s\n", Green, cu.ID, Reset)
	return nil
}

func (c *Client) customerDelete(id int64) error {
	fmt.Printf("%sDeleting customer: %d%s\n", Blue, id, Reset)

	if err := c.Request("DELETE", fmt.Sprintf("customers/%d", id), nil, nil); err != nil {
		return err
	}

	fmt.Printf("%s✓ Customer deleted: %d%s\n", Green, id, Reset)
	return nil
}
