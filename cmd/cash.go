package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/marwank/zakah"
	"github.com/marwank/zakah/renderer"
)

// assetsCmd lists the active person's holdings.
type assetsCmd struct{}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list cash and metal holdings" }
func (*assetsCmd) Usage() string {
	return `zkt assets

  Lists the active person's currency and metal holdings with their
  value in the base currency.
`
}

func (*assetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAssets(renderer.BuildAssets(s.ActivePerson().Name, s.State())))
	return subcommands.ExitSuccess
}

// addCashCmd holds the flags for the 'add-cash' subcommand.
type addCashCmd struct {
	label    string
	currency string
	amount   string
}

func (*addCashCmd) Name() string     { return "add-cash" }
func (*addCashCmd) Synopsis() string { return "add a cash holding" }
func (*addCashCmd) Usage() string {
	return `zkt add-cash -label <label> -currency <code> -amount <amount>

  Adds a cash holding for the active person. The amount is kept in its
  own currency and converted to the base currency from the recorded
  exchange rates when the total is computed.

Usage Examples:
# a savings account in euros
$ zkt add-cash -label "Savings" -currency EUR -amount 1200.50
`
}

func (c *addCashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Name of the holding.")
	f.StringVar(&c.currency, "currency", "", "ISO currency code of the amount.")
	f.StringVar(&c.amount, "amount", "", "Amount held, in the holding currency.")
}

func (c *addCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.label == "" || c.currency == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -label, -currency and -amount are required.")
		return subcommands.ExitUsageError
	}
	amount, err := parseDecimal("amount", c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	h := s.AddCurrencyHolding(zakah.CurrencyHolding{
		Label:    c.label,
		Currency: strings.ToUpper(c.currency),
		Amount:   amount,
	})
	fmt.Printf("Added cash holding %q (%s)\n", h.Label, h.ID)
	return subcommands.ExitSuccess
}

// updateCashCmd holds the flags for the 'update-cash' subcommand.
type updateCashCmd struct {
	label    string
	currency string
	amount   string
}

func (*updateCashCmd) Name() string     { return "update-cash" }
func (*updateCashCmd) Synopsis() string { return "update a cash holding" }
func (*updateCashCmd) Usage() string {
	return `zkt update-cash [-label <label>] [-currency <code>] [-amount <amount>] <id>

  Updates the cash holding with the given id. Omitted flags keep their
  current value.
`
}

func (c *updateCashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "New name of the holding.")
	f.StringVar(&c.currency, "currency", "", "New ISO currency code.")
	f.StringVar(&c.amount, "amount", "", "New amount, in the holding currency.")
}

func (c *updateCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := oneArg(f, "id")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var current *zakah.CurrencyHolding
	for _, h := range s.State().CurrencyHoldings {
		if h.ID == id {
			current = &h
			break
		}
	}
	if current == nil {
		fmt.Fprintf(os.Stderr, "Error: no cash holding with id %q\n", id)
		return subcommands.ExitFailure
	}

	if c.label != "" {
		current.Label = c.label
	}
	if c.currency != "" {
		current.Currency = strings.ToUpper(c.currency)
	}
	if c.amount != "" {
		amount, err := parseDecimal("amount", c.amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		current.Amount = amount
	}

	s.UpdateCurrencyHolding(id, *current)
	fmt.Printf("Updated cash holding %q\n", current.Label)
	return subcommands.ExitSuccess
}

// deleteCashCmd holds the flags for the 'delete-cash' subcommand.
type deleteCashCmd struct{}

func (*deleteCashCmd) Name() string     { return "delete-cash" }
func (*deleteCashCmd) Synopsis() string { return "delete a cash holding" }
func (*deleteCashCmd) Usage() string {
	return `zkt delete-cash <id>

  Deletes the cash holding with the given id.
`
}

func (*deleteCashCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := oneArg(f, "id")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s.DeleteCurrencyHolding(id)
	fmt.Printf("Deleted cash holding %s\n", id)
	return subcommands.ExitSuccess
}
