// Package engine orchestrates the transaction workflow: saving and
// updating transactions, evaluating their document checklists, pre-filling
// from vendor profiles, and turning receipt analyses into drafts.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docguard-ph/docguard/internal/accounts"
	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/report"
	"github.com/docguard-ph/docguard/internal/service"
	"github.com/docguard-ph/docguard/internal/tax"
	"github.com/docguard-ph/docguard/internal/vendor"
)

// transactionDateLayout is the date format the analysis service returns.
const transactionDateLayout = "2006-01-02"

// Engine coordinates storage, vendor profiles, and the document policy.
type Engine struct {
	store    service.Storage
	resolver *vendor.Resolver
	policy   policy.Policy
}

// New creates an engine over the given storage and policy.
func New(store service.Storage, p policy.Policy) *Engine {
	return &Engine{
		store:    store,
		resolver: vendor.NewResolver(store),
		policy:   p,
	}
}

// Policy returns the document-requirement policy the engine evaluates with.
func (e *Engine) Policy() policy.Policy {
	return e.policy
}

// SaveTransaction validates and persists a new transaction. The status is
// computed from the document checklist at save time, and the vendor's
// profile is upserted when both a name and TIN are present.
func (e *Engine) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction is required", common.ErrValidation)
	}
	if txn.Vendor == "" {
		return fmt.Errorf("%w: vendor is required", common.ErrValidation)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = txn.CreatedAt
	}

	verdict := policy.Evaluate(*txn, e.policy)
	txn.Status = verdict.Status

	if err := e.store.SaveTransaction(ctx, txn); err != nil {
		return err
	}

	// Remember the vendor for future pre-fills. Profiles are only worth
	// keeping once we know the TIN; a save failure here never fails the
	// transaction.
	if txn.Vendor != "" && txn.VendorTIN != "" {
		err := e.resolver.Upsert(ctx, txn.Vendor, vendor.ProfilePatch{
			DisplayName:           txn.Vendor,
			TIN:                   txn.VendorTIN,
			DefaultExpenseAccount: txn.ExpenseAccount,
		})
		if err != nil {
			slog.Warn("Failed to upsert vendor profile",
				"vendor", txn.Vendor,
				"error", err)
		}
	}

	return nil
}

// UpdateDocuments replaces a transaction's document checklist, re-evaluates
// its status, and persists the result.
func (e *Engine) UpdateDocuments(ctx context.Context, id string, docs model.DocumentSet) (*model.Transaction, error) {
	txn, err := e.store.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txn.Documents = docs
	verdict := policy.Evaluate(*txn, e.policy)
	txn.Status = verdict.Status

	if err := e.store.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// CompleteDocuments marks every required document as received, which by
// construction makes the transaction complete.
func (e *Engine) CompleteDocuments(ctx context.Context, id string) (*model.Transaction, error) {
	txn, err := e.store.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	docs := txn.Documents
	for _, kind := range policy.RequiredDocuments(txn.Type, txn.EffectiveSubtype(), txn.Amount, e.policy) {
		docs.Set(kind, true)
	}
	return e.UpdateDocuments(ctx, id, docs)
}

// Prefill holds suggested values for a new transaction form.
type Prefill struct {
	VendorTIN      string
	ExpenseAccount string
}

// PrefillFor suggests a TIN and expense account for a vendor. The stored
// profile wins for both; the keyword classifier fills in the account when
// no profile carries one.
func (e *Engine) PrefillFor(ctx context.Context, vendorName, items string) Prefill {
	var fill Prefill

	profile, err := e.resolver.Lookup(ctx, vendorName)
	switch {
	case err == nil:
		fill.VendorTIN = profile.TIN
		fill.ExpenseAccount = profile.DefaultExpenseAccount
	case !errors.Is(err, common.ErrNotFound):
		slog.Warn("Vendor profile lookup failed", "vendor", vendorName, "error", err)
	}

	if fill.ExpenseAccount == "" {
		fill.ExpenseAccount = accounts.Suggest(vendorName, items)
	}
	return fill
}

// BuildFromAnalysis turns a receipt analysis into a draft transaction.
// The draft is not persisted; callers review it (mandatorily so when the
// analysis needs verification) and then pass it to SaveTransaction.
func (e *Engine) BuildFromAnalysis(ctx context.Context, analysis *model.ReceiptAnalysis, imagePath string) (*model.Transaction, error) {
	if analysis == nil {
		return nil, fmt.Errorf("%w: analysis is required", common.ErrValidation)
	}

	txn := &model.Transaction{
		Type:          model.TypePurchase,
		Subtype:       model.SubtypeServices,
		Vendor:        analysis.Vendor,
		VendorTIN:     analysis.VendorTIN,
		Amount:        analysis.Amount,
		InvoiceNumber: analysis.ReferenceNumber,
		ReceiptImage:  imagePath,
	}

	if analysis.Date != "" {
		if date, err := time.Parse(transactionDateLayout, analysis.Date); err == nil {
			txn.TransactionDate = date
		}
	}

	// The captured receipt itself is one of the required documents.
	switch analysis.ReceiptType {
	case model.ReceiptTypeOfficialReceipt:
		txn.Documents.OfficialReceipt = true
	case model.ReceiptTypeSalesInvoice:
		txn.Documents.Invoice = true
	}

	txn.VatDetails = vatDetailsFromAnalysis(analysis)

	fill := e.PrefillFor(ctx, analysis.Vendor, analysis.Items)
	if txn.VendorTIN == "" {
		txn.VendorTIN = fill.VendorTIN
	}
	txn.ExpenseAccount = fill.ExpenseAccount

	return txn, nil
}

// vatDetailsFromAnalysis builds the VAT breakdown, trusting the service's
// explicit breakdown when present and deriving one from the total
// otherwise.
func vatDetailsFromAnalysis(analysis *model.ReceiptAnalysis) *model.VatDetails {
	details := &model.VatDetails{
		WithholdingRate: model.DefaultWithholdingRate,
		VatExemptSales:  deref(analysis.VatExemptSales),
		ZeroRatedSales:  deref(analysis.ZeroRatedSales),
		Discount:        deref(analysis.Discount),
		OtherCharges:    deref(analysis.OtherCharges),
	}

	if analysis.HasVatBreakdown() {
		details.VatableSales = deref(analysis.VatableSales)
		details.VatAmount = deref(analysis.VatAmount)
		if analysis.VatAmount == nil {
			_, details.VatAmount = tax.DeriveVatBreakdown(
				analysis.Amount, details.VatExemptSales, details.OtherCharges)
		}
	} else {
		details.VatableSales, details.VatAmount = tax.DeriveVatBreakdown(
			analysis.Amount, details.VatExemptSales, details.OtherCharges)
	}

	details.WithholdingTax = tax.ComputeWithholding(
		details.VatableSales, details.VatExemptSales, details.ZeroRatedSales,
		details.WithholdingRate)

	return details
}

// Stats loads every transaction and folds it into dashboard statistics.
func (e *Engine) Stats(ctx context.Context) (report.Stats, error) {
	txns, err := e.store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return report.Stats{}, err
	}
	return report.Summarize(txns, e.policy), nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
