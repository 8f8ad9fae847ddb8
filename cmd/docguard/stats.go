package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the compliance dashboard",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
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

	fmt.Println(cli.FormatTitle("Compliance Dashboard " + cli.ChartIcon))
	fmt.Printf("  Total transactions:  %d\n", stats.Total)
	fmt.Printf("  %s %d\n", cli.SuccessStyle.Render("Complete:           "), stats.Complete)
	fmt.Printf("  %s %d\n", cli.WarningStyle.Render("Incomplete:         "), stats.Incomplete)
	fmt.Printf("  Ready for turnover:  %d\n", len(stats.ReadyForYTO))

	if len(stats.MissingDocs) > 0 {
		fmt.Println()
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions are missing documents; run `docguard missing` for details", len(stats.MissingDocs))))
	} else if stats.Total > 0 {
		fmt.Println()
		fmt.Println(cli.FormatSuccess("No missing documents. Audit-ready!"))
	}
	return nil
}
