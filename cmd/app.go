// Package cmd implements the CLI application to manage Zakah
// calculations.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/marwank/zakah"
	"github.com/shopspring/decimal"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&assetsCmd{},
	&addCashCmd{},
	&updateCashCmd{},
	&deleteCashCmd{},
	&addMetalCmd{},
	&updateMetalCmd{},
	&deleteMetalCmd{},
	&ratesCmd{},
	&addRateCmd{},
	&updateRateCmd{},
	&deleteRateCmd{},
	&payCmd{},
	&updatePaymentCmd{},
	&deletePaymentCmd{},
	&paymentsCmd{},
	&pricesCmd{},
	&peopleCmd{},
	&personCmd{},
	&exportCmd{},
	&importCmd{},
	&queryCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", defaultDataDir(), "Path to the folder holding the saved calculator document")

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zakah"
	}
	return filepath.Join(home, ".zakah")
}

// openStore opens the store in the app data folder. A missing or
// unreadable document falls back to the default single-person one.
func openStore() (*zakah.Store, error) {
	s, err := zakah.Open(*dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store in %q: %w", *dataDir, err)
	}
	s.OnWrite = func(r zakah.WriteResult) {
		if r.Err != nil {
			log.Printf("warning: could not save %q: %v", r.Path, r.Err)
		}
	}
	return s, nil
}

// parseDecimal parses a CLI numeric argument.
func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: must be a number", name, value)
	}
	return d, nil
}

// oneArg returns the single positional argument of a command, or an
// error when the count is wrong.
func oneArg(f *flag.FlagSet, name string) (string, error) {
	if f.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one %s argument", name)
	}
	return f.Arg(0), nil
}
