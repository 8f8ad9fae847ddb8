package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
)

func missingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "List transactions with missing documents",
		RunE:  runMissing,
	}
}

func runMissing(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := eng.Stats(ctx)
	if err != nil {
		return err
	}

	if len(stats.MissingDocs) == 0 {
		fmt.Println(cli.FormatSuccess("No transactions are missing documents."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Missing Documents (%d)", len(stats.MissingDocs))))
	for _, entry := range stats.MissingDocs {
		txn := entry.Transaction
		fmt.Printf("%s  %-28s %12s\n",
			cli.SubtleStyle.Render(txn.TransactionDate.Format("2006-01-02")),
			truncate(txn.Vendor, 28),
			txn.DisplayAmount())
		fmt.Printf("  %s %s\n", cli.ErrorStyle.Render("Missing:"), cli.DocList(entry.MissingDocs))
		fmt.Printf("  %s\n", cli.SubtleStyle.Render(txn.ID))
	}
	return nil
}
