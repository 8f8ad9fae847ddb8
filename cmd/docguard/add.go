package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docguard-ph/docguard/internal/cli"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/tax"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a purchase or sale",
		Long: `Record a transaction with its document checklist and VAT breakdown.

The completeness status is evaluated against the document policy at save
time. Vendor name and TIN, when both given, are remembered for future
pre-fills.`,
		RunE: runAdd,
	}

	cmd.Flags().String("type", "purchase", "transaction type (purchase, sale)")
	cmd.Flags().String("subtype", "", "subtype (goods, services, withPDC, cash)")
	cmd.Flags().String("vendor", "", "vendor or client name (required)")
	cmd.Flags().Float64("amount", 0, "gross amount, VAT inclusive (required)")
	cmd.Flags().String("tin", "", "vendor TIN")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().String("invoice-no", "", "invoice or OR reference number")
	cmd.Flags().String("account", "", "expense account (suggested from vendor when omitted)")
	cmd.Flags().String("remarks", "", "free-form remarks")

	cmd.Flags().Bool("or", false, "official receipt received")
	cmd.Flags().Bool("inv", false, "invoice received")
	cmd.Flags().Bool("form2307", false, "Form 2307 received")
	cmd.Flags().Bool("dr", false, "delivery receipt received")

	cmd.Flags().Float64("vat-exempt", 0, "VAT-exempt sales portion")
	cmd.Flags().Float64("zero-rated", 0, "zero-rated sales portion")
	cmd.Flags().Float64("other-charges", 0, "non-vatable other charges")
	cmd.Flags().Float64("discount", 0, "discount applied")
	cmd.Flags().String("withholding-rate", model.DefaultWithholdingRate, "expanded withholding rate in percent (1, 2, 5, 10, 15)")
	cmd.Flags().Bool("no-vat", false, "skip the VAT breakdown entirely")

	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, store, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ttype, _ := cmd.Flags().GetString("type")
	subtype, _ := cmd.Flags().GetString("subtype")
	vendorName, _ := cmd.Flags().GetString("vendor")
	amount, _ := cmd.Flags().GetFloat64("amount")
	tin, _ := cmd.Flags().GetString("tin")
	dateStr, _ := cmd.Flags().GetString("date")
	invoiceNo, _ := cmd.Flags().GetString("invoice-no")
	account, _ := cmd.Flags().GetString("account")
	remarks, _ := cmd.Flags().GetString("remarks")

	txn := &model.Transaction{
		Type:           model.TransactionType(ttype),
		Subtype:        model.Subtype(subtype),
		Vendor:         vendorName,
		VendorTIN:      tin,
		Amount:         amount,
		InvoiceNumber:  invoiceNo,
		ExpenseAccount: account,
		Remarks:        remarks,
	}

	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
		}
		txn.TransactionDate = date
	}

	txn.Documents.OfficialReceipt, _ = cmd.Flags().GetBool("or")
	txn.Documents.Invoice, _ = cmd.Flags().GetBool("inv")
	txn.Documents.Form2307, _ = cmd.Flags().GetBool("form2307")
	txn.Documents.DeliveryReceipt, _ = cmd.Flags().GetBool("dr")

	if noVat, _ := cmd.Flags().GetBool("no-vat"); !noVat {
		txn.VatDetails, err = buildVatDetails(cmd, amount)
		if err != nil {
			return err
		}
	}

	if txn.VendorTIN == "" || txn.ExpenseAccount == "" {
		fill := eng.PrefillFor(ctx, vendorName, remarks)
		if txn.VendorTIN == "" {
			txn.VendorTIN = fill.VendorTIN
		}
		if txn.ExpenseAccount == "" {
			txn.ExpenseAccount = fill.ExpenseAccount
		}
	}

	if err := eng.SaveTransaction(ctx, txn); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s from %s", txn.Type, txn.DisplayAmount(), txn.Vendor)))
	fmt.Printf("  ID: %s\n", txn.ID)
	fmt.Printf("  Status: %s\n", cli.StatusBadge(txn.Status))

	verdict := policy.Evaluate(*txn, eng.Policy())
	if len(verdict.Missing) > 0 {
		fmt.Println(cli.FormatWarning("Still missing: " + cli.DocList(verdict.Missing)))
	}
	if txn.VatDetails != nil {
		fmt.Printf("  VAT: %s on %s vatable\n",
			model.FormatPeso(txn.VatDetails.VatAmount),
			model.FormatPeso(txn.VatDetails.VatableSales))
		if txn.VatDetails.WithholdingTax > 0 {
			fmt.Printf("  Withholding (%s%%): %s\n",
				txn.VatDetails.WithholdingRate,
				model.FormatPeso(txn.VatDetails.WithholdingTax))
		}
	}

	return nil
}

// buildVatDetails derives the VAT breakdown from the gross amount and the
// exemption flags. The withholding rate must come from the standard set;
// lenient parsing is reserved for stored data, not fresh input.
func buildVatDetails(cmd *cobra.Command, amount float64) (*model.VatDetails, error) {
	vatExempt, _ := cmd.Flags().GetFloat64("vat-exempt")
	zeroRated, _ := cmd.Flags().GetFloat64("zero-rated")
	otherCharges, _ := cmd.Flags().GetFloat64("other-charges")
	discount, _ := cmd.Flags().GetFloat64("discount")
	rate, _ := cmd.Flags().GetString("withholding-rate")
	if !model.IsStandardWithholdingRate(rate) {
		return nil, fmt.Errorf("unknown withholding rate %q, expected one of %s",
			rate, strings.Join(model.WithholdingRates, ", "))
	}

	details := &model.VatDetails{
		WithholdingRate: rate,
		VatExemptSales:  vatExempt,
		ZeroRatedSales:  zeroRated,
		OtherCharges:    otherCharges,
		Discount:        discount,
	}
	details.VatableSales, details.VatAmount = tax.DeriveVatBreakdown(amount, vatExempt, otherCharges)
	details.WithholdingTax = tax.ComputeWithholding(
		details.VatableSales, details.VatExemptSales, details.ZeroRatedSales, rate)

	return details, nil
}
