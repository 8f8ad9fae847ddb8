package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: context is required", common.ErrValidation)
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, name)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction is required", common.ErrValidation)
	}
	if err := validateString(txn.ID, "transaction id"); err != nil {
		return err
	}
	if err := validateString(txn.Vendor, "vendor"); err != nil {
		return err
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrValidation)
	}
	switch txn.Type {
	case model.TypePurchase, model.TypeSale:
	default:
		return fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, txn.Type)
	}
	switch txn.Status {
	case model.StatusComplete, model.StatusIncomplete:
	default:
		return fmt.Errorf("%w: unknown status %q", common.ErrValidation, txn.Status)
	}
	return nil
}

func validateVendorProfile(profile *model.VendorProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: vendor profile is required", common.ErrValidation)
	}
	if err := validateString(profile.Key, "vendor key"); err != nil {
		return err
	}
	if profile.Key != model.VendorKey(profile.Key) {
		return fmt.Errorf("%w: vendor key must be lower-cased", common.ErrValidation)
	}
	return nil
}
