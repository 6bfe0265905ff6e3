package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marwank/zakah"
	"github.com/marwank/zakah/renderer"
)

// peopleCmd lists the people in the store.
type peopleCmd struct{}

func (*peopleCmd) Name() string     { return "people" }
func (*peopleCmd) Synopsis() string { return "list the people tracked in the store" }
func (*peopleCmd) Usage() string {
	return `zkt people

  Lists everyone tracked in the store, marking the active person.
  Holdings and payments are private to each person; prices and
  exchange rates are shared.
`
}

func (*peopleCmd) SetFlags(f *flag.FlagSet) {}

func (c *peopleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderPeople(renderer.BuildPeople(s.People(), s.ActivePerson().ID)))
	return subcommands.ExitSuccess
}

// personCmd holds the flags for the 'person' subcommand.
type personCmd struct {
	add     string
	rename  string
	del     bool
	switchT bool
}

func (*personCmd) Name() string     { return "person" }
func (*personCmd) Synopsis() string { return "add, rename, delete or switch to a person" }
func (*personCmd) Usage() string {
	return `zkt person -add <name>
zkt person -switch <id>
zkt person -rename <name> <id>
zkt person -delete <id>

  Manages the people in the store. Adding a person makes them active.
  Deleting the active person activates the first remaining one; the
  last person cannot be deleted.

Usage Examples:
# start tracking a spouse, and switch to them
$ zkt person -add "Aisha"

# back to the first person
$ zkt person -switch <id>
`
}

func (c *personCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Add a person with this name and make them active.")
	f.StringVar(&c.rename, "rename", "", "Rename the person given by the id argument.")
	f.BoolVar(&c.del, "delete", false, "Delete the person given by the id argument.")
	f.BoolVar(&c.switchT, "switch", false, "Make the person given by the id argument active.")
}

func (c *personCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add != "":
		p := s.AddPerson(c.add)
		fmt.Printf("Added person %q (%s), now active\n", p.Name, p.ID)

	case c.rename != "":
		id, err := oneArg(f, "id")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := s.RenamePerson(id, c.rename); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Renamed person %s to %q\n", id, c.rename)

	case c.del:
		id, err := oneArg(f, "id")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := s.DeletePerson(id); err != nil {
			if errors.Is(err, zakah.ErrLastPerson) {
				fmt.Fprintln(os.Stderr, "Error: cannot delete the last person.")
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted person %s, %q is now active\n", id, s.ActivePerson().Name)

	case c.switchT:
		id, err := oneArg(f, "id")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := s.SwitchPerson(id); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Switched to %q\n", s.ActivePerson().Name)

	default:
		fmt.Fprintln(os.Stderr, "Error: one of -add, -rename, -delete or -switch is required.")
		return subcommands.ExitUsageError
	}

	return subcommands.ExitSuccess
}
