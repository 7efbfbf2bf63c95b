package main

import (
	"fmt"
	"os"

	"github.com/elvinmz/fatura-cli/internal/fatura"
)

func main() {
	// No arguments or "tui" command -> launch TUI
	if len(os.Args) < 2 || os.Args[1] == "tui" {
		config, err := fatura.LoadConfig()
		if err != nil {
			fmt.Printf("%sError: %s%s\n", fatura.Red, err, fatura.Reset)
			os.Exit(1)
		}
		client := fatura.NewClient(config)
		store, err := fatura.OpenLayoutStore(config.LayoutDB)
		if err != nil {
			fmt.Printf("%sError: %s%s\n", fatura.Red, err, fatura.Reset)
			os.Exit(1)
		}
		defer store.Close()
		if err := fatura.RunTUI(client, store); err != nil {
			fmt.Printf("%sError: %s%s\n", fatura.Red, err, fatura.Reset)
			os.Exit(1)
		}
		return
	}

	cmd := os.Args[1]

	// Help doesn't need config
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		os.Exit(0)
	}

	// Version
	if cmd == "version" || cmd == "-v" || cmd == "--version" {
		fmt.Printf("Fatura CLI v%s\n", fatura.Version)
		fmt.Printf("Created by %s in %s\n", fatura.Author, fatura.Year)
		os.Exit(0)
	}

	// Load config
	config, err := fatura.LoadConfig()
	if err != nil {
		fmt.Printf("%sError: %s%s\n", fatura.Red, err, fatura.Reset)
		os.Exit(1)
	}

	// Create client
	client := fatura.NewClient(config)

	// Route commands
	var cmdErr error
	switch cmd {
	case "ping":
		cmdErr = client.CmdPing()
	case "config":
		cmdErr = client.CmdConfig()
	case "product":
		cmdErr = client.CmdProduct(os.Args[2:])
	case "customer":
		cmdErr = client.CmdCustomer(os.Args[2:])
	case "supplier":
		cmdErr = client.CmdSupplier(os.Args[2:])
	case "sales", "si":
		cmdErr = client.CmdInvoice(fatura.SalesInvoice, os.Args[2:])
	case "purchase", "pi":
		cmdErr = client.CmdInvoice(fatura.PurchaseInvoice, os.Args[2:])
	default:
		fmt.Printf("%sUnknown command: %s%s\n", fatura.Red, cmd, fatura.Reset)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Printf("%sError: %s%s\n", fatura.Red, cmdErr, fatura.Reset)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%sFatura CLI%s - invoicing from the terminal

Usage: fatura-cli <command> [subcommand] [args...]

Running without arguments (or with "tui") opens the interactive UI.

%sCommands:%s

  %sping%s                              Test connection and authentication
  %sconfig%s                            Show current configuration
  %sversion%s                           Show version information

%sProducts:%s
  %sproduct list%s                      List the product catalog
  %sproduct get <id>%s                  Get product details
  %sproduct search <query>%s            Search by name, code, article or barcode

%sCustomers & Suppliers:%s
  %scustomer list%s                     List all customers
  %scustomer get <id>%s                 Get customer details
  %scustomer create <name> [--phone=X]%s Create a customer
  %scustomer delete <id>%s              Delete a customer
  %ssupplier list|get|create|delete%s   Same subcommands for suppliers

%sInvoices:%s
  %ssales list%s                        List sales invoices
  %ssales get <id>%s                    Get invoice with line items
  %ssales confirm <id>%s                Confirm (updates stock)
  %ssales unconfirm <id>%s              Revert to draft
  %ssales delete <id>%s                 Delete a draft invoice
  %spurchase <subcommand>%s             Same subcommands for purchase invoices

%sExamples:%s
  fatura-cli ping
  fatura-cli product search "qəhvə"
  fatura-cli sales list
  fatura-cli purchase confirm 15

`,
		fatura.Blue, fatura.Reset,
		fatura.Yellow, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Yellow, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Yellow, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Yellow, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Green, fatura.Reset, fatura.Green, fatura.Reset, fatura.Green, fatura.Reset,
		fatura.Yellow, fatura.Reset,
	)
}
