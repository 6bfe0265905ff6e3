package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marwank/zakah"
)

// addMetalCmd holds the flags for the 'add-metal' subcommand.
type addMetalCmd struct {
	label  string
	metal  string
	weight string
	purity string
	unit   string
}

func (*addMetalCmd) Name() string     { return "add-metal" }
func (*addMetalCmd) Synopsis() string { return "add a gold or silver holding" }
func (*addMetalCmd) Usage() string {
	return `zkt add-metal -label <label> -metal gold|silver -weight <grams> -purity <purity> [-unit karats|percentage]

  Adds a metal holding for the active person. Purity is a karat value
  out of 24 (gold) or a percentage (gold or silver).

Usage Examples:
# 50 grams of 21 karat gold
$ zkt add-metal -label "Necklace" -metal gold -weight 50 -purity 21

# sterling silver, purity as a percentage
$ zkt add-metal -label "Cutlery" -metal silver -weight 800 -purity 92.5 -unit percentage
`
}

func (c *addMetalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "Name of the holding.")
	f.StringVar(&c.metal, "metal", "", "Metal type: gold or silver.")
	f.StringVar(&c.weight, "weight", "", "Weight in grams.")
	f.StringVar(&c.purity, "purity", "", "Purity value, in the chosen unit.")
	f.StringVar(&c.unit, "unit", "karats", "Purity unit: karats or percentage.")
}

func (c *addMetalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.label == "" || c.metal == "" || c.weight == "" || c.purity == "" {
		fmt.Fprintln(os.Stderr, "Error: -label, -metal, -weight and -purity are required.")
		return subcommands.ExitUsageError
	}
	metal, err := zakah.ParseMetalType(c.metal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	unit, err := zakah.ParsePurityUnit(c.unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	weight, err := parseDecimal("weight", c.weight)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	purity, err := parseDecimal("purity", c.purity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	h := s.AddMetalHolding(zakah.MetalHolding{
		Label:       c.label,
		Type:        metal,
		WeightGrams: weight,
		Purity:      purity,
		PurityUnit:  unit,
	})
	fmt.Printf("Added %s holding %q (%s)\n", h.Type, h.Label, h.ID)
	return subcommands.ExitSuccess
}

// updateMetalCmd holds the flags for the 'update-metal' subcommand.
type updateMetalCmd struct {
	label  string
	weight string
	purity string
	unit   string
}

func (*updateMetalCmd) Name() string     { return "update-metal" }
func (*updateMetalCmd) Synopsis() string { return "update a metal holding" }
func (*updateMetalCmd) Usage() string {
	return `zkt update-metal [-label <label>] [-weight <grams>] [-purity <purity>] [-unit karats|percentage] <id>

  Updates the metal holding with the given id. Omitted flags keep
  their current value.
`
}

func (c *updateMetalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "New name of the holding.")
	f.StringVar(&c.weight, "weight", "", "New weight in grams.")
	f.StringVar(&c.purity, "purity", "", "New purity value.")
	f.StringVar(&c.unit, "unit", "", "New purity unit: karats or percentage.")
}

func (c *updateMetalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var current *zakah.MetalHolding
	for _, h := range s.State().MetalHoldings {
		if h.ID == id {
			current = &h
			break
		}
	}
	if current == nil {
		fmt.Fprintf(os.Stderr, "Error: no metal holding with id %q\n", id)
		return subcommands.ExitFailure
	}

	if c.label != "" {
		current.Label = c.label
	}
	if c.weight != "" {
		weight, err := parseDecimal("weight", c.weight)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		current.WeightGrams = weight
	}
	if c.purity != "" {
		purity, err := parseDecimal("purity", c.purity)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		current.Purity = purity
	}
	if c.unit != "" {
		unit, err := zakah.ParsePurityUnit(c.unit)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		current.PurityUnit = unit
	}

	s.UpdateMetalHolding(id, *current)
	fmt.Printf("Updated metal holding %q\n", current.Label)
	return subcommands.ExitSuccess
}

// deleteMetalCmd holds the flags for the 'delete-metal' subcommand.
type deleteMetalCmd struct{}

func (*deleteMetalCmd) Name() string     { return "delete-metal" }
func (*deleteMetalCmd) Synopsis() string { return "delete a metal holding" }
func (*deleteMetalCmd) Usage() string {
	return `zkt delete-metal <id>

  Deletes the metal holding with the given id.
`
}

func (*deleteMetalCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteMetalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s.DeleteMetalHolding(id)
	fmt.Printf("Deleted metal holding %s\n", id)
	return subcommands.ExitSuccess
}
