// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
)

// TransactionFilter defines filtering options for transaction queries.
// Zero-value fields are ignored.
type TransactionFilter struct {
	Status *model.Status
	Type   *model.TransactionType
	Search string
	Limit  int
}

// Storage defines the contract for the persistence layer. Transactions
// are always returned newest-first.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error

	// Vendor profile operations
	GetVendorProfile(ctx context.Context, key string) (*model.VendorProfile, error)
	SaveVendorProfile(ctx context.Context, profile *model.VendorProfile) error
	GetAllVendorProfiles(ctx context.Context) ([]model.VendorProfile, error)

	// Policy persistence
	LoadPolicy(ctx context.Context) (policy.Policy, error)
	SavePolicy(ctx context.Context, p policy.Policy) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReceiptAnalyzer is the remote receipt-analysis collaborator.
type ReceiptAnalyzer interface {
	AnalyzeReceipt(ctx context.Context, imagePath string) (*model.ReceiptAnalysis, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
