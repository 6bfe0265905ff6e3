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

// ratesCmd lists price settings and exchange rates.
type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "list metal prices and exchange rates" }
func (*ratesCmd) Usage() string {
	return `zkt rates

  Lists the shared price settings, the per-karat gold price overrides
  and the recorded exchange rates.
`
}

func (*ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	st := s.State()
	printMarkdown(renderer.RenderRates(renderer.BuildRates(st.PriceSettings, st.ExchangeRates)))
	return subcommands.ExitSuccess
}

// addRateCmd holds the flags for the 'add-rate' subcommand.
type addRateCmd struct {
	from string
	rate string
}

func (*addRateCmd) Name() string     { return "add-rate" }
func (*addRateCmd) Synopsis() string { return "record an exchange rate to the base currency" }
func (*addRateCmd) Usage() string {
	return `zkt add-rate -from <code> -rate <rate>

  Records how much one unit of the given currency is worth in the base
  currency. Holdings in currencies without a recorded rate count as
  zero in the total.

Usage Examples:
# 1 EUR = 1.08 of the base currency
$ zkt add-rate -from EUR -rate 1.08
`
}

func (c *addRateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "ISO currency code the rate converts from.")
	f.StringVar(&c.rate, "rate", "", "Value of one unit in the base currency.")
}

func (c *addRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.rate == "" {
		fmt.Fprintln(os.Stderr, "Error: -from and -rate are required.")
		return subcommands.ExitUsageError
	}
	rate, err := parseDecimal("rate", c.rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	r := s.AddExchangeRate(zakah.ExchangeRate{
		FromCurrency: strings.ToUpper(c.from),
		Rate:         rate,
	})
	fmt.Printf("Added rate %s = %s %s (%s)\n", r.FromCurrency, r.Rate, s.State().PriceSettings.BaseCurrency, r.ID)
	return subcommands.ExitSuccess
}

// updateRateCmd holds the flags for the 'update-rate' subcommand.
type updateRateCmd struct {
	rate string
}

func (*updateRateCmd) Name() string     { return "update-rate" }
func (*updateRateCmd) Synopsis() string { return "update an exchange rate" }
func (*updateRateCmd) Usage() string {
	return `zkt update-rate -rate <rate> <id>

  Updates the exchange rate with the given id. Payments already logged
  keep the base amount computed when they were logged.
`
}

func (c *updateRateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rate, "rate", "", "New value of one unit in the base currency.")
}

func (c *updateRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := oneArg(f, "id")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.rate == "" {
		fmt.Fprintln(os.Stderr, "Error: -rate is required.")
		return subcommands.ExitUsageError
	}
	rate, err := parseDecimal("rate", c.rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var current *zakah.ExchangeRate
	for _, r := range s.State().ExchangeRates {
		if r.ID == id {
			current = &r
			break
		}
	}
	if current == nil {
		fmt.Fprintf(os.Stderr, "Error: no exchange rate with id %q\n", id)
		return subcommands.ExitFailure
	}

	current.Rate = rate
	s.UpdateExchangeRate(id, *current)
	fmt.Printf("Updated rate %s\n", current.FromCurrency)
	return subcommands.ExitSuccess
}

// deleteRateCmd holds the flags for the 'delete-rate' subcommand.
type deleteRateCmd struct{}

func (*deleteRateCmd) Name() string     { return "delete-rate" }
func (*deleteRateCmd) Synopsis() string { return "delete an exchange rate" }
func (*deleteRateCmd) Usage() string {
	return `zkt delete-rate <id>

  Deletes the exchange rate with the given id. Holdings in that
  currency count as zero afterwards.
`
}

func (*deleteRateCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s.DeleteExchangeRate(id)
	fmt.Printf("Deleted exchange rate %s\n", id)
	return subcommands.ExitSuccess
}
