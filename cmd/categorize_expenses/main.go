package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
	"github.com/SscSPs/reconciliation_engine/internal/platform/storage"
)

// One-time back-fill of expense categories. Expenses recorded before categories existed are
// classified from their concept and recipient with the same rules the reports apply at read
// time, so running it does not change any report figure.
func main() {
	dryRun := flag.Bool("dry-run", true, "Print the planned categories without writing them")
	quiet := flag.Bool("quiet", false, "Only print the per-category totals")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	migrator := services.NewExpenseCategoryMigrator(store, services.WithLocation(cfg.BusinessLocation))
	assignments, err := migrator.MigrateExpenseCategories(ctx, *dryRun)
	if err != nil {
		logger.Error("Category migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if !*quiet {
		fmt.Fprintln(w, "EXPENSE\tCONCEPT\tRECIPIENT\tCATEGORY")
		for _, a := range assignments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ExpenseID, a.Concept, a.Recipient, a.Category)
		}
		fmt.Fprintln(w)
	}
	counts := make(map[domain.ExpenseCategory]int)
	for _, a := range assignments {
		counts[a.Category]++
	}
	for _, cat := range []domain.ExpenseCategory{domain.CategoryCommissionPayment, domain.CategoryPayroll, domain.CategoryFixedCost, domain.CategoryOther} {
		fmt.Fprintf(w, "%s\t%d\n", cat, counts[cat])
	}
	w.Flush()

	if *dryRun {
		fmt.Printf("\nDry run: %d expenses would be categorized. Re-run with --dry-run=false to write.\n", len(assignments))
		return
	}
	fmt.Printf("\n%d expenses categorized.\n", len(assignments))
}
