package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a receipt image and record the transaction",
		Long: `Upload a receipt photo to the analysis service, review the extracted
fields, and save the transaction.

Handwritten receipts and low-confidence reads always go through a
field-by-field review before anything is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Bool("yes", false, "accept the draft without review (refused for low-confidence reads)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx := interruptHandler.HandleInterrupts(cmd.Context())
	imagePath := args[0]

	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("cannot read receipt image: %w", err)
	}

	client, err := initAnalyzer()
	if err != nil {
		return err
	}

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	fmt.Println(cli.FormatInfo("Analyzing receipt..."))
	analysis, err := client.AnalyzeReceipt(ctx, imagePath)
	if err != nil {
		return err
	}

	draft, err := eng.BuildFromAnalysis(ctx, analysis, imagePath)
	if err != nil {
		return err
	}

	needsReview := analysis.NeedsVerification()
	if needsReview {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Confidence %.0f%%, handwritten: %v", analysis.Confidence, analysis.IsHandwritten)))
	}

	skipReview, _ := cmd.Flags().GetBool("yes")
	if !skipReview || needsReview {
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)
		draft, err = prompter.ReviewDraft(ctx, draft, needsReview)
		if err != nil {
			if interruptHandler.WasInterrupted() {
				// The handler already said goodbye.
				return nil
			}
			return err
		}
		if draft == nil {
			fmt.Println(cli.FormatInfo("Skipped; nothing saved."))
			return nil
		}
	}

	if err := eng.SaveTransaction(ctx, draft); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s from %s", draft.DisplayAmount(), draft.Vendor)))
	fmt.Printf("  ID: %s\n", draft.ID)
	fmt.Printf("  Status: %s\n", cli.StatusBadge(draft.Status))
	return nil
}
