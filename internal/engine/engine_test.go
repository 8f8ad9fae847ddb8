package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
	"github.com/docguard-ph/docguard/internal/service"
)

// mockStorage is an in-memory service.Storage for engine tests.
type mockStorage struct {
	transactions map[string]*model.Transaction
	profiles     map[string]*model.VendorProfile
	order        []string
	saveErr      error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		transactions: make(map[string]*model.Transaction),
		profiles:     make(map[string]*model.VendorProfile),
	}
}

func (m *mockStorage) SaveTransaction(_ context.Context, txn *model.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.transactions[txn.ID]; ok {
		return common.ErrDuplicateEntry
	}
	clone := *txn
	m.transactions[txn.ID] = &clone
	m.order = append([]string{txn.ID}, m.order...)
	return nil
}

func (m *mockStorage) GetTransactions(_ context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, id := range m.order {
		txn := m.transactions[id]
		if filter.Status != nil && txn.Status != *filter.Status {
			continue
		}
		out = append(out, *txn)
	}
	return out, nil
}

func (m *mockStorage) GetTransactionByID(_ context.Context, id string) (*model.Transaction, error) {
	txn, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	clone := *txn
	return &clone, nil
}

func (m *mockStorage) UpdateTransaction(_ context.Context, txn *model.Transaction) error {
	if _, ok := m.transactions[txn.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *txn
	m.transactions[txn.ID] = &clone
	return nil
}

func (m *mockStorage) GetVendorProfile(_ context.Context, key string) (*model.VendorProfile, error) {
	profile, ok := m.profiles[key]
	if !ok {
		return nil, fmt.Errorf("vendor profile %s: %w", key, common.ErrNotFound)
	}
	clone := *profile
	return &clone, nil
}

func (m *mockStorage) SaveVendorProfile(_ context.Context, profile *model.VendorProfile) error {
	clone := *profile
	m.profiles[profile.Key] = &clone
	return nil
}

func (m *mockStorage) GetAllVendorProfiles(_ context.Context) ([]model.VendorProfile, error) {
	var out []model.VendorProfile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockStorage) LoadPolicy(_ context.Context) (policy.Policy, error) {
	return policy.Policy{}, common.ErrNotFound
}

func (m *mockStorage) SavePolicy(_ context.Context, _ policy.Policy) error { return nil }

func (m *mockStorage) Migrate(_ context.Context) error { return nil }

func (m *mockStorage) Close() error { return nil }

func newTestEngine() (*Engine, *mockStorage) {
	store := newMockStorage()
	return New(store, policy.Default()), store
}

func TestSaveTransactionAssignsIDAndStatus(t *testing.T) {
	eng, store := newTestEngine()
	ctx := context.Background()

	txn := &model.Transaction{
		Type:    model.TypePurchase,
		Subtype: model.SubtypeServices,
		Vendor:  "PLDT",
		Amount:  2000,
	}
	if err := eng.SaveTransaction(ctx, txn); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}

	if txn.ID == "" {
		t.Error("expected generated ID")
	}
	if txn.CreatedAt.IsZero() || txn.TransactionDate.IsZero() {
		t.Error("expected timestamps to be defaulted")
	}
	if txn.Status != model.StatusIncomplete {
		t.Errorf("status = %s, want incomplete (no documents received)", txn.Status)
	}
	if len(store.transactions) != 1 {
		t.Errorf("stored %d transactions, want 1", len(store.transactions))
	}
}

func TestSaveTransactionCompleteWhenAllDocsPresent(t *testing.T) {
	eng, _ := newTestEngine()

	txn := &model.Transaction{
		Type:    model.TypeSale,
		Subtype: model.SubtypeCash,
		Vendor:  "Acme Client",
		Amount:  10000,
		Documents: model.DocumentSet{
			OfficialReceipt: true,
			Invoice:         true,
		},
	}
	if err := eng.SaveTransaction(context.Background(), txn); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}
	if txn.Status != model.StatusComplete {
		t.Errorf("status = %s, want complete", txn.Status)
	}
}

func TestSaveTransactionValidation(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	err := eng.SaveTransaction(ctx, &model.Transaction{Type: model.TypePurchase, Amount: 100})
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("missing vendor: expected ErrValidation, got %v", err)
	}

	err = eng.SaveTransaction(ctx, &model.Transaction{Type: model.TypePurchase, Vendor: "X", Amount: 0})
	if !errors.Is(err, common.ErrValidation) {
		t.Errorf("zero amount: expected ErrValidation, got %v", err)
	}
}

func TestSaveTransactionUpsertsVendorProfile(t *testing.T) {
	eng, store := newTestEngine()
	ctx := context.Background()

	withTIN := &model.Transaction{
		Type:           model.TypePurchase,
		Subtype:        model.SubtypeServices,
		Vendor:         "Meralco",
		VendorTIN:      "001-234-567-00000",
		ExpenseAccount: "6050 - Utilities",
		Amount:         5000,
	}
	if err := eng.SaveTransaction(ctx, withTIN); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	profile, ok := store.profiles["meralco"]
	if !ok {
		t.Fatal("expected vendor profile to be created")
	}
	if profile.TIN != "001-234-567-00000" {
		t.Errorf("tin = %q", profile.TIN)
	}
	if profile.DefaultExpenseAccount != "6050 - Utilities" {
		t.Errorf("account = %q", profile.DefaultExpenseAccount)
	}

	// No TIN, no profile.
	withoutTIN := &model.Transaction{
		Type:    model.TypePurchase,
		Subtype: model.SubtypeGoods,
		Vendor:  "Corner Store",
		Amount:  300,
	}
	if err := eng.SaveTransaction(ctx, withoutTIN); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := store.profiles["corner store"]; ok {
		t.Error("profile should not be created without a TIN")
	}
}

func TestUpdateDocumentsReevaluatesStatus(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	txn := &model.Transaction{
		Type:    model.TypeSale,
		Subtype: model.SubtypeCash,
		Vendor:  "Client",
		Amount:  1000,
	}
	if err := eng.SaveTransaction(ctx, txn); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if txn.Status != model.StatusIncomplete {
		t.Fatalf("precondition: status = %s", txn.Status)
	}

	updated, err := eng.UpdateDocuments(ctx, txn.ID, model.DocumentSet{
		OfficialReceipt: true,
		Invoice:         true,
	})
	if err != nil {
		t.Fatalf("UpdateDocuments failed: %v", err)
	}
	if updated.Status != model.StatusComplete {
		t.Errorf("status = %s, want complete", updated.Status)
	}

	// Unchecking a required document flips it back.
	updated, err = eng.UpdateDocuments(ctx, txn.ID, model.DocumentSet{Invoice: true})
	if err != nil {
		t.Fatalf("second UpdateDocuments failed: %v", err)
	}
	if updated.Status != model.StatusIncomplete {
		t.Errorf("status = %s, want incomplete", updated.Status)
	}
}

func TestUpdateDocumentsNotFound(t *testing.T) {
	eng, _ := newTestEngine()

	_, err := eng.UpdateDocuments(context.Background(), "ghost", model.DocumentSet{})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteDocuments(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	// Purchase of services above any threshold: OR, invoice, and 2307.
	txn := &model.Transaction{
		Type:    model.TypePurchase,
		Subtype: model.SubtypeServices,
		Vendor:  "Consultant",
		Amount:  20000,
	}
	if err := eng.SaveTransaction(ctx, txn); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	updated, err := eng.CompleteDocuments(ctx, txn.ID)
	if err != nil {
		t.Fatalf("CompleteDocuments failed: %v", err)
	}
	if updated.Status != model.StatusComplete {
		t.Errorf("status = %s, want complete", updated.Status)
	}
	if !updated.Documents.OfficialReceipt || !updated.Documents.Invoice || !updated.Documents.Form2307 {
		t.Errorf("documents = %+v, want OR, invoice, and 2307 received", updated.Documents)
	}
	if updated.Documents.DeliveryReceipt {
		t.Error("delivery receipt is not required for service purchases")
	}
}

func TestPrefillFor(t *testing.T) {
	eng, store := newTestEngine()
	ctx := context.Background()

	store.profiles["meralco"] = &model.VendorProfile{
		Key:                   "meralco",
		DisplayName:           "Meralco",
		TIN:                   "001-234-567-00000",
		DefaultExpenseAccount: "6050 - Utilities",
	}

	fill := eng.PrefillFor(ctx, "MERALCO", "")
	if fill.VendorTIN != "001-234-567-00000" {
		t.Errorf("tin = %q", fill.VendorTIN)
	}
	if fill.ExpenseAccount != "6050 - Utilities" {
		t.Errorf("account = %q", fill.ExpenseAccount)
	}

	// Unknown vendor falls back to the keyword classifier.
	fill = eng.PrefillFor(ctx, "Shell Gas Station", "unleaded fuel")
	if fill.VendorTIN != "" {
		t.Errorf("tin = %q, want empty", fill.VendorTIN)
	}
	if fill.ExpenseAccount == "" {
		t.Error("expected a classifier suggestion for a fuel purchase")
	}
}

func TestBuildFromAnalysisWithBreakdown(t *testing.T) {
	eng, _ := newTestEngine()

	vatable := 4464.29
	vat := 535.71
	analysis := &model.ReceiptAnalysis{
		Vendor:          "Meralco",
		VendorTIN:       "001-234-567-00000",
		Amount:          5000,
		VatableSales:    &vatable,
		VatAmount:       &vat,
		ReferenceNumber: "OR-1001",
		Date:            "2025-06-15",
		ReceiptType:     model.ReceiptTypeOfficialReceipt,
		Confidence:      95,
	}

	txn, err := eng.BuildFromAnalysis(context.Background(), analysis, "/tmp/receipt.jpg")
	if err != nil {
		t.Fatalf("BuildFromAnalysis failed: %v", err)
	}

	if txn.Vendor != "Meralco" || txn.Amount != 5000 {
		t.Errorf("draft = %+v", txn)
	}
	if !txn.Documents.OfficialReceipt {
		t.Error("official receipt should be checked from the receipt type")
	}
	if txn.TransactionDate != time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("date = %v", txn.TransactionDate)
	}
	if txn.VatDetails == nil {
		t.Fatal("expected vat details")
	}
	if txn.VatDetails.VatableSales != 4464.29 {
		t.Errorf("vatable = %v, want the service's explicit breakdown", txn.VatDetails.VatableSales)
	}
	// 2% of 4464.29 = 89.29
	if txn.VatDetails.WithholdingTax != 89.29 {
		t.Errorf("withholding = %v, want 89.29", txn.VatDetails.WithholdingTax)
	}
	if txn.ID != "" || txn.Status != "" {
		t.Error("draft must not be persisted or evaluated yet")
	}
}

func TestBuildFromAnalysisDerivesBreakdown(t *testing.T) {
	eng, _ := newTestEngine()

	analysis := &model.ReceiptAnalysis{
		Vendor:      "Sari-Sari Store",
		Amount:      1120,
		ReceiptType: model.ReceiptTypeSalesInvoice,
		Confidence:  60,
	}

	txn, err := eng.BuildFromAnalysis(context.Background(), analysis, "")
	if err != nil {
		t.Fatalf("BuildFromAnalysis failed: %v", err)
	}

	if !txn.Documents.Invoice {
		t.Error("invoice should be checked from the receipt type")
	}
	if txn.VatDetails.VatableSales != 1000 {
		t.Errorf("vatable = %v, want 1000 derived from the total", txn.VatDetails.VatableSales)
	}
	if txn.VatDetails.VatAmount != 120 {
		t.Errorf("vat = %v, want 120", txn.VatDetails.VatAmount)
	}
	if !analysis.NeedsVerification() {
		t.Error("confidence 60 should require verification")
	}
}

func TestBuildFromAnalysisPrefersProfileTIN(t *testing.T) {
	eng, store := newTestEngine()

	store.profiles["pldt"] = &model.VendorProfile{
		Key:         "pldt",
		DisplayName: "PLDT",
		TIN:         "999-111-222-00000",
	}

	analysis := &model.ReceiptAnalysis{Vendor: "PLDT", Amount: 1699}
	txn, err := eng.BuildFromAnalysis(context.Background(), analysis, "")
	if err != nil {
		t.Fatalf("BuildFromAnalysis failed: %v", err)
	}
	if txn.VendorTIN != "999-111-222-00000" {
		t.Errorf("tin = %q, want backfill from the stored profile", txn.VendorTIN)
	}
}

func TestStats(t *testing.T) {
	eng, _ := newTestEngine()
	ctx := context.Background()

	complete := &model.Transaction{
		Type:    model.TypeSale,
		Subtype: model.SubtypeCash,
		Vendor:  "Client A",
		Amount:  5000,
		Documents: model.DocumentSet{
			OfficialReceipt: true,
			Invoice:         true,
		},
	}
	incomplete := &model.Transaction{
		Type:    model.TypePurchase,
		Subtype: model.SubtypeServices,
		Vendor:  "Vendor B",
		Amount:  2000,
	}
	for _, txn := range []*model.Transaction{complete, incomplete} {
		if err := eng.SaveTransaction(ctx, txn); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	stats, err := eng.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Complete != 1 || stats.Incomplete != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.MissingDocs) != 1 {
		t.Fatalf("missing entries = %d, want 1", len(stats.MissingDocs))
	}
	if stats.MissingDocs[0].Transaction.Vendor != "Vendor B" {
		t.Errorf("missing entry vendor = %q", stats.MissingDocs[0].Transaction.Vendor)
	}
	if len(stats.ReadyForYTO) != 1 {
		t.Errorf("ready = %d, want 1", len(stats.ReadyForYTO))
	}
}
