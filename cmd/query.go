package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/marwank/zakah"
)

// queryCmd evaluates a JSONPath expression against the stored document.
type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the stored document" }
func (*queryCmd) Usage() string {
	return `zkt query <jsonpath>

  Evaluates a JSONPath expression against the stored document and
  prints the result as JSON.

Usage Examples:
# all people names
$ zkt query '$.people[*].name'

# the active person's payments
$ zkt query '$.people[0].data.payments'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := oneArg(f, "jsonpath")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Round-trip through the codec so the query sees the exact
	// persisted shape, numbers included.
	var buf bytes.Buffer
	if err := zakah.EncodeAppData(&buf, s.Document()); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding document: %v\n", err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding document: %v\n", err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", path, err)
		return subcommands.ExitUsageError
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jval); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
