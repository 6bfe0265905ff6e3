package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/marwank/zakah"
	"github.com/marwank/zakah/renderer"
)

func parsePaymentStatus(s string) (zakah.PaymentStatus, error) {
	switch s {
	case "":
		return "", nil
	case string(zakah.PaymentPending):
		return zakah.PaymentPending, nil
	case string(zakah.PaymentCompleted):
		return zakah.PaymentCompleted, nil
	}
	return "", fmt.Errorf("invalid status %q: must be pending or completed", s)
}

// paymentsCmd lists the active person's payments.
type paymentsCmd struct{}

func (*paymentsCmd) Name() string     { return "payments" }
func (*paymentsCmd) Synopsis() string { return "list logged Zakah payments" }
func (*paymentsCmd) Usage() string {
	return `zkt payments

  Lists the active person's Zakah payments, newest first, with the
  total paid and the remaining amount.
`
}

func (*paymentsCmd) SetFlags(f *flag.FlagSet) {}

func (c *paymentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderPayments(renderer.BuildPayments(s.ActivePerson().Name, s.State(), s.Calculation())))
	return subcommands.ExitSuccess
}

// payCmd holds the flags for the 'pay' subcommand.
type payCmd struct {
	amount   string
	currency string
	note     string
	date     string
	status   string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "log a Zakah payment" }
func (*payCmd) Usage() string {
	return `zkt pay -amount <amount> [-currency <code>] [-note <note>] [-d <date>] [-status pending|completed]

  Logs a Zakah payment for the active person. The amount is converted
  to the base currency with the exchange rate in effect now, and that
  converted value is kept even if the rate changes later.

Usage Examples:
# paid 500 of the base currency today
$ zkt pay -amount 500

# paid in another currency, with a note
$ zkt pay -amount 200 -currency EUR -note "To the local mosque"
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount paid, in the payment currency.")
	f.StringVar(&c.currency, "currency", "", "ISO currency code of the payment. Defaults to the base currency.")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the payment.")
	f.StringVar(&c.date, "d", "", "Payment date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.status, "status", "", "Optional status: pending or completed.")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -amount is required.")
		return subcommands.ExitUsageError
	}
	amount, err := parseDecimal("amount", c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	status, err := parsePaymentStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	paidAt := time.Now()
	if c.date != "" {
		paidAt, err = time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	currency := strings.ToUpper(c.currency)
	if currency == "" {
		currency = s.State().PriceSettings.BaseCurrency
	}

	p := s.LogPayment(amount, currency, c.note, paidAt, status)
	fmt.Printf("Logged payment of %s (%s in %s) (%s)\n",
		zakah.FormatMoney(p.AmountBaseCurrency, s.State().PriceSettings.BaseCurrency),
		p.AmountDisplayCurrency, p.Currency, p.ID)
	return subcommands.ExitSuccess
}

// updatePaymentCmd holds the flags for the 'update-payment' subcommand.
type updatePaymentCmd struct {
	note   string
	status string
}

func (*updatePaymentCmd) Name() string     { return "update-payment" }
func (*updatePaymentCmd) Synopsis() string { return "update a payment's note or status" }
func (*updatePaymentCmd) Usage() string {
	return `zkt update-payment [-note <note>] [-status pending|completed] <id>

  Updates the note or status of the payment with the given id. The
  converted base amount is a snapshot and is never recomputed.
`
}

func (c *updatePaymentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "New note.")
	f.StringVar(&c.status, "status", "", "New status: pending or completed.")
}

func (c *updatePaymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := oneArg(f, "id")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	status, err := parsePaymentStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var current *zakah.Payment
	for _, p := range s.State().Payments {
		if p.ID == id {
			current = &p
			break
		}
	}
	if current == nil {
		fmt.Fprintf(os.Stderr, "Error: no payment with id %q\n", id)
		return subcommands.ExitFailure
	}

	if c.note != "" {
		current.Note = c.note
	}
	if status != "" {
		current.Status = status
	}

	s.UpdatePayment(id, *current)
	fmt.Printf("Updated payment %s\n", id)
	return subcommands.ExitSuccess
}

// deletePaymentCmd holds the flags for the 'delete-payment' subcommand.
type deletePaymentCmd struct{}

func (*deletePaymentCmd) Name() string     { return "delete-payment" }
func (*deletePaymentCmd) Synopsis() string { return "delete a payment" }
func (*deletePaymentCmd) Usage() string {
	return `zkt delete-payment <id>

  Deletes the payment with the given id. The remaining Zakah goes back
  up accordingly.
`
}

func (*deletePaymentCmd) SetFlags(f *flag.FlagSet) {}

func (c *deletePaymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	s.DeletePayment(id)
	fmt.Printf("Deleted payment %s\n", id)
	return subcommands.ExitSuccess
}
