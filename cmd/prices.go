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

// pricesCmd holds the flags for the 'prices' subcommand.
type pricesCmd struct {
	gold       string
	silver     string
	currency   string
	karat      string
	karatPrice string
	clearKarat string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show or update the shared metal prices" }
func (*pricesCmd) Usage() string {
	return `zkt prices [-gold <price>] [-silver <price>] [-currency <code>] [-karat <purity> -price <price>] [-clear-karat <purity>]

  Without flags, shows the shared price settings. With flags, applies a
  partial update: omitted values keep their current setting. The gold
  price is the per-gram price of pure (24k) gold; -karat sets a direct
  per-gram price for one specific purity instead of deriving it.

Usage Examples:
# raise the 24k gold price
$ zkt prices -gold 98.50

# local market quotes 21k directly
$ zkt prices -karat 21 -price 86

# go back to deriving 21k from the 24k price
$ zkt prices -clear-karat 21
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.gold, "gold", "", "Per-gram price of 24k gold, in the base currency.")
	f.StringVar(&c.silver, "silver", "", "Per-gram price of silver, in the base currency.")
	f.StringVar(&c.currency, "currency", "", "Base currency code everything is valued in.")
	f.StringVar(&c.karat, "karat", "", "Purity to set a direct per-gram price for.")
	f.StringVar(&c.karatPrice, "price", "", "Per-gram price for the purity given in -karat.")
	f.StringVar(&c.clearKarat, "clear-karat", "", "Purity whose direct price override to remove.")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var patch zakah.PriceSettingsPatch
	changed := false

	if c.gold != "" {
		gold, err := parseDecimal("gold price", c.gold)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		patch.GoldPricePerGram = &gold
		changed = true
	}
	if c.silver != "" {
		silver, err := parseDecimal("silver price", c.silver)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		patch.SilverPricePerGram = &silver
		changed = true
	}
	if c.currency != "" {
		currency := strings.ToUpper(c.currency)
		patch.BaseCurrency = &currency
		changed = true
	}
	if changed {
		s.UpdatePriceSettings(patch)
	}

	if c.karat != "" {
		if c.karatPrice == "" {
			fmt.Fprintln(os.Stderr, "Error: -karat requires -price.")
			return subcommands.ExitUsageError
		}
		purity, err := parseDecimal("karat", c.karat)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		price, err := parseDecimal("price", c.karatPrice)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		s.SetGoldPurityPrice(purity, &price)
	}
	if c.clearKarat != "" {
		purity, err := parseDecimal("clear-karat", c.clearKarat)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		s.SetGoldPurityPrice(purity, nil)
	}

	st := s.State()
	printMarkdown(renderer.RenderRates(renderer.BuildRates(st.PriceSettings, st.ExchangeRates)))
	return subcommands.ExitSuccess
}
