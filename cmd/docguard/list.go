package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runList,
	}

	cmd.Flags().String("status", "", "filter by status (complete, incomplete)")
	cmd.Flags().String("type", "", "filter by type (purchase, sale)")
	cmd.Flags().String("search", "", "match vendor or reference number")
	cmd.Flags().Int("limit", 0, "maximum number of rows (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	_, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var filter service.TransactionFilter
	if s, _ := cmd.Flags().GetString("status"); s != "" {
		status := model.Status(s)
		filter.Status = &status
	}
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		ttype := model.TransactionType(t)
		filter.Type = &ttype
	}
	filter.Search, _ = cmd.Flags().GetString("search")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return err
	}

	if len(txns) == 0 {
		fmt.Println(cli.FormatInfo("No transactions found."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Transactions (%d)", len(txns))))
	for _, txn := range txns {
		fmt.Printf("%s  %-10s %-28s %12s  %s\n",
			cli.SubtleStyle.Render(txn.CreatedAt.Format("2006-01-02")),
			txn.Type,
			truncate(txn.Vendor, 28),
			txn.DisplayAmount(),
			cli.StatusBadge(txn.Status))
		fmt.Printf("  %s\n", cli.SubtleStyle.Render(txn.ID))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
