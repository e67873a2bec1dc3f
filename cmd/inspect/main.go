package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/internal/factoring"
	"github.com/wippyai/ledger-types/internal/ledgertest"
	"github.com/wippyai/ledger-types/schema"
	"github.com/wippyai/ledger-types/template"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to TOML config file")
		templateID  = flag.String("template", "", "Template identifier")
		payloadFile = flag.String("payload", "", "Decode a contract payload from file (- for stdin)")
		eventFile   = flag.String("event", "", "Decode a create event from file (- for stdin)")
		list        = flag.Bool("list", false, "List registered templates and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	template.SetLogger(logger)

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch {
	case *list:
		listTemplates(os.Stdout, template.Default())
	case *templateID != "" && *payloadFile != "":
		err = decodeFile(os.Stdout, *templateID, *payloadFile, false)
	case *templateID != "" && *eventFile != "":
		err = decodeFile(os.Stdout, *templateID, *eventFile, true)
	case *templateID == "" && flag.NArg() == 0:
		err = demo(os.Stdout, logger)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: inspect -list")
	fmt.Fprintln(os.Stderr, "       inspect -template <id> -payload <file.json>")
	fmt.Fprintln(os.Stderr, "       inspect -template <id> -event <file.json>")
	fmt.Fprintln(os.Stderr, "       inspect -i  (interactive mode)")
}

func listTemplates(w io.Writer, r *template.Registry) {
	for _, id := range r.IDs() {
		d := r.MustLookup(id)
		fmt.Fprintf(w, "%s\n", id)
		fmt.Fprintf(w, "  key:     %s\n", schema.Format(d.KeyType()))
		fmt.Fprintf(w, "  payload: %s\n", schema.Format(d.PayloadType()))
		for _, name := range d.ChoiceNames() {
			c, _ := d.LookupChoice(name)
			fmt.Fprintf(w, "  choice   %s\n", formatChoice(c))
		}
	}
}

func formatChoice(c template.ChoiceDescriptor) string {
	return c.Name() + "(" + schema.Format(c.ArgumentType()) + ") -> " + schema.Format(c.ResultType())
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func decodeFile(w io.Writer, templateID, path string, event bool) error {
	d, err := template.Lookup(templateID)
	if err != nil {
		return err
	}

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	raw, err := codec.ParseJSON(data)
	if err != nil {
		return err
	}

	var v any
	if event {
		v, err = d.DecodeCreateEvent(raw)
	} else {
		v, err = d.DecodePayload(raw)
	}
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(w, "%+v\n", v)
	return nil
}

// describeError adds the location and the innermost mismatch of a decode
// error to its message.
func describeError(err error) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return err
	}
	inner := e.Innermost()
	if inner == e {
		return err
	}
	return fmt.Errorf("at %s: %v", strings.Join(e.Path, "."), inner)
}

// seededLedger returns an in-memory ledger with the factoring handlers and
// sample contracts, logging to logger.
func seededLedger(logger *zap.Logger, now time.Time) *ledgertest.Ledger {
	l := ledgertest.New(logger)
	factoring.Install(l)
	factoring.Seed(l, now)
	return l
}

// demo seeds an in-memory ledger and walks one invoice through its choices.
func demo(w io.Writer, logger *zap.Logger) error {
	ctx := context.Background()
	l := seededLedger(logger, time.Now())

	ids := l.Active(factoring.InvoiceTemplateID)
	if len(ids) == 0 {
		return fmt.Errorf("no invoice seeded")
	}
	raw, err := l.Event(ids[0])
	if err != nil {
		return err
	}
	ev, err := template.DecodeCreateEvent(factoring.InvoiceTemplate, raw)
	if err != nil {
		return describeError(err)
	}
	fmt.Fprintf(w, "created  %s %s amount=%s\n", ev.ContractID, ev.Key, ev.Payload.Amount)

	parts, err := template.Exercise(ctx, l, factoring.InvoiceSplit, ev.ContractID, factoring.SplitInvoice{
		Amounts: []codec.Decimal{"6000.5", "6000"},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "split    %v\n", parts)

	accepted, err := template.Exercise(ctx, l, factoring.InvoiceAccept, parts[0], factoring.AcceptInvoice{Buyer: "Bank A"})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "accepted %s\n", accepted)

	if _, err := template.Exercise(ctx, l, factoring.InvoiceAccept, accepted, factoring.AcceptInvoice{Buyer: "Bank B"}); err != nil {
		fmt.Fprintf(w, "accept   rejected: %v\n", err)
	}

	paid, err := template.Exercise(ctx, l, factoring.InvoicePay, accepted, codec.Unit{})
	if err != nil {
		return err
	}
	inv, err := ledgertest.Fetch(l, factoring.InvoiceTemplate, paid)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "paid     %s status=%s buyer=%s\n", paid, inv.Status, inv.Buyer)
	return nil
}
