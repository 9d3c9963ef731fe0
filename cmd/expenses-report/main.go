// Command expenses-report prints a window summary of the expense ledger
// to stdout, using the same configuration and backend as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"expenses/internal/cli"
	"expenses/internal/core"
	"expenses/internal/ledger"
	"expenses/internal/services"
)

func main() {
	windowFlag := flag.String("window", "all", "summary window: all, week or month")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	window := core.Window(*windowFlag)
	if !window.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown window %q: use all, week or month\n", *windowFlag)
		os.Exit(2)
	}

	store := cli.InitStore(logger, cfg)
	service := services.NewExpenseService(store.Store, cfg.CacheTTL)
	defer func() {
		if store.Cleanup != nil {
			_ = store.Cleanup()
		}
	}()

	ctx := context.Background()
	now := time.Now()

	sum, err := service.Summarize(ctx, window, now)
	if err != nil {
		logger.Error("Summarize failed", "error", err, "window", *windowFlag)
		os.Exit(1)
	}
	skipped, err := service.SkippedRows(ctx)
	if err != nil {
		skipped = nil
	}

	printSummary(sum, skipped)
}

type namedAmount struct {
	name  string
	cents int64
}

func printSummary(sum core.Summary, skipped []ledger.SkippedRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Window:\t%s\n", sum.Window)
	fmt.Fprintf(w, "Total spent:\t%s\n\n", sum.Total.Decimal())

	if len(sum.ByCategory) > 0 {
		fmt.Fprintln(w, "By category:")
		for _, c := range sortedCategories(sum) {
			fmt.Fprintf(w, "  %s\t%s\n", c.name, core.Money{Cents: c.cents}.Decimal())
		}
		fmt.Fprintln(w)
	}

	if len(sum.ByDay) > 0 {
		fmt.Fprintln(w, "By day:")
		for _, d := range sortedDays(sum) {
			fmt.Fprintf(w, "  %s\t%s\n", d.name, core.Money{Cents: d.cents}.Decimal())
		}
	}

	if len(sum.ByDay) == 0 {
		fmt.Fprintln(w, "No expenses found for this period.")
	}

	if n := len(skipped); n > 0 {
		fmt.Fprintf(w, "\nWarning: %d unreadable ledger row(s) were skipped.\n", n)
	}

	w.Flush()
}

func sortedCategories(sum core.Summary) []namedAmount {
	out := make([]namedAmount, 0, len(sum.ByCategory))
	for name, amount := range sum.ByCategory {
		out = append(out, namedAmount{name: name, cents: amount.Cents})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].cents != out[j].cents {
			return out[i].cents > out[j].cents
		}
		return out[i].name < out[j].name
	})
	return out
}

func sortedDays(sum core.Summary) []namedAmount {
	out := make([]namedAmount, 0, len(sum.ByDay))
	for day, amount := range sum.ByDay {
		out = append(out, namedAmount{name: day.String(), cents: amount.Cents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
