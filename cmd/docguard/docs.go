package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
)

func docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs <id>",
		Short: "Update a transaction's document checklist",
		Long: `Mark documents as received or missing. The completeness status is
re-evaluated and persisted after every change.

  docguard docs <id> --receive or,form2307
  docguard docs <id> --unreceive inv
  docguard docs <id> --complete`,
		Args: cobra.ExactArgs(1),
		RunE: runDocs,
	}

	cmd.Flags().StringSlice("receive", nil, "documents received (or, inv, form2307, dr)")
	cmd.Flags().StringSlice("unreceive", nil, "documents to mark missing again")
	cmd.Flags().Bool("complete", false, "mark every required document as received")

	return cmd
}

// docFlagNames maps the short flag values to document kinds.
var docFlagNames = map[string]model.DocumentKind{
	"or":       model.DocOfficialReceipt,
	"inv":      model.DocInvoice,
	"form2307": model.DocForm2307,
	"2307":     model.DocForm2307,
	"dr":       model.DocDeliveryReceipt,
}

func runDocs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := args[0]

	if complete, _ := cmd.Flags().GetBool("complete"); complete {
		txn, err := eng.CompleteDocuments(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("All required documents marked received"))
		fmt.Printf("  Status: %s\n", cli.StatusBadge(txn.Status))
		return nil
	}

	txn, err := store.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	docs := txn.Documents
	receive, _ := cmd.Flags().GetStringSlice("receive")
	unreceive, _ := cmd.Flags().GetStringSlice("unreceive")
	if len(receive) == 0 && len(unreceive) == 0 {
		return fmt.Errorf("nothing to do: pass --receive, --unreceive, or --complete")
	}

	for _, name := range receive {
		kind, ok := docFlagNames[name]
		if !ok {
			return fmt.Errorf("unknown document %q (use or, inv, form2307, dr)", name)
		}
		docs.Set(kind, true)
	}
	for _, name := range unreceive {
		kind, ok := docFlagNames[name]
		if !ok {
			return fmt.Errorf("unknown document %q (use or, inv, form2307, dr)", name)
		}
		docs.Set(kind, false)
	}

	updated, err := eng.UpdateDocuments(ctx, id, docs)
	if err != nil {
		return err
	}

	required := policy.RequiredDocuments(updated.Type, updated.EffectiveSubtype(), updated.Amount, eng.Policy())
	fmt.Println(cli.FormatSuccess("Checklist updated"))
	fmt.Println(cli.Checklist(updated.Documents, required))
	fmt.Printf("Status: %s\n", cli.StatusBadge(updated.Status))
	return nil
}
