package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marwank/zakah/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	asJSON bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the Zakah summary for the active person" }
func (*summaryCmd) Usage() string {
	return `zkt summary [-json]

  Displays the active person's full Zakah position: total wealth in the
  base currency, the Nisab threshold, the Zakah due, payments made and
  the remaining amount, with a per-asset breakdown.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print the raw calculation as JSON instead of a report.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.Calculation()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding calculation: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	view := renderer.BuildSummary(s.ActivePerson().Name, s.State(), s.Calculation())
	printMarkdown(renderer.RenderSummary(view))

	return subcommands.ExitSuccess
}
