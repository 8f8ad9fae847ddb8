package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/tax"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction with its document checklist",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txn, err := store.GetTransactionByID(ctx, args[0])
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s / %s)\n", cli.BoldStyle.Render("Vendor:"), txn.Vendor, txn.Type, txn.EffectiveSubtype())
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Amount:"), txn.DisplayAmount())
	if txn.VendorTIN != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("TIN:"), txn.VendorTIN)
	}
	if txn.InvoiceNumber != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Reference:"), txn.InvoiceNumber)
	}
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Date:"), txn.TransactionDate.Format("Jan 2, 2006"))
	if txn.ExpenseAccount != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Account:"), txn.ExpenseAccount)
	}
	if txn.Remarks != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Remarks:"), txn.Remarks)
	}
	if txn.ReceiptImage != "" {
		fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Receipt:"), txn.ReceiptImage)
	}
	fmt.Fprintf(&b, "%s %s\n", cli.BoldStyle.Render("Status:"), cli.StatusBadge(txn.Status))

	if txn.VatDetails != nil {
		v := txn.VatDetails
		fmt.Fprintf(&b, "\n%s\n", cli.BoldStyle.Render("VAT breakdown"))
		fmt.Fprintf(&b, "  Vatable sales:   %s\n", model.FormatPeso(v.VatableSales))
		if v.VatExemptSales != 0 {
			fmt.Fprintf(&b, "  VAT-exempt:      %s\n", model.FormatPeso(v.VatExemptSales))
		}
		if v.ZeroRatedSales != 0 {
			fmt.Fprintf(&b, "  Zero-rated:      %s\n", model.FormatPeso(v.ZeroRatedSales))
		}
		fmt.Fprintf(&b, "  VAT (%.0f%%):       %s\n", tax.VatRate*100, model.FormatPeso(v.VatAmount))
		if v.OtherCharges != 0 {
			fmt.Fprintf(&b, "  Other charges:   %s\n", model.FormatPeso(v.OtherCharges))
		}
		if v.WithholdingTax != 0 {
			fmt.Fprintf(&b, "  Net sales:       %s\n", model.FormatPeso(v.TotalNetSales()))
			fmt.Fprintf(&b, "  Withholding %s%%:  %s\n", v.WithholdingRate, model.FormatPeso(v.WithholdingTax))
		}
	}

	required := policy.RequiredDocuments(txn.Type, txn.EffectiveSubtype(), txn.Amount, eng.Policy())
	fmt.Fprintf(&b, "\n%s\n%s", cli.BoldStyle.Render("Documents"), cli.Checklist(txn.Documents, required))

	fmt.Println(cli.RenderBox("Transaction "+txn.ID, b.String()))
	return nil
}
