package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/service"
)

// SaveTransaction inserts a new transaction.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	documentsJSON, err := json.Marshal(txn.Documents)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}

	vatJSON, err := marshalVatDetails(txn.VatDetails)
	if err != nil {
		return err
	}

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, type, subtype, vendor, amount, vendor_tin, transaction_date,
			invoice_number, expense_account, remarks, documents, vat_details,
			status, receipt_image, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID,
		string(txn.Type),
		string(txn.Subtype),
		txn.Vendor,
		txn.Amount,
		txn.VendorTIN,
		txn.TransactionDate,
		txn.InvoiceNumber,
		txn.ExpenseAccount,
		txn.Remarks,
		string(documentsJSON),
		vatJSON,
		string(txn.Status),
		txn.ReceiptImage,
		txn.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// GetTransactions returns transactions newest-first, optionally filtered.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, type, subtype, vendor, amount, vendor_tin, transaction_date,
		       invoice_number, expense_account, remarks, documents, vat_details,
		       status, receipt_image, created_at
		FROM transactions
	`

	var conditions []string
	var args []any
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Search != "" {
		conditions = append(conditions, "(vendor LIKE ? OR invoice_number LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

// GetTransactionByID fetches a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, subtype, vendor, amount, vendor_tin, transaction_date,
		       invoice_number, expense_account, remarks, documents, vat_details,
		       status, receipt_image, created_at
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction replaces the stored row for the transaction's ID.
// The ID and created_at are immutable; everything else is overwritten.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	documentsJSON, err := json.Marshal(txn.Documents)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	vatJSON, err := marshalVatDetails(txn.VatDetails)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET
			type = ?, subtype = ?, vendor = ?, amount = ?, vendor_tin = ?,
			transaction_date = ?, invoice_number = ?, expense_account = ?,
			remarks = ?, documents = ?, vat_details = ?, status = ?,
			receipt_image = ?
		WHERE id = ?
	`,
		string(txn.Type),
		string(txn.Subtype),
		txn.Vendor,
		txn.Amount,
		txn.VendorTIN,
		txn.TransactionDate,
		txn.InvoiceNumber,
		txn.ExpenseAccount,
		txn.Remarks,
		string(documentsJSON),
		vatJSON,
		string(txn.Status),
		txn.ReceiptImage,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrNotFound)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var (
		txn           model.Transaction
		ttype         string
		subtype       string
		status        string
		documentsJSON string
		vatJSON       sql.NullString
	)

	err := row.Scan(
		&txn.ID,
		&ttype,
		&subtype,
		&txn.Vendor,
		&txn.Amount,
		&txn.VendorTIN,
		&txn.TransactionDate,
		&txn.InvoiceNumber,
		&txn.ExpenseAccount,
		&txn.Remarks,
		&documentsJSON,
		&vatJSON,
		&status,
		&txn.ReceiptImage,
		&txn.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(ttype)
	txn.Subtype = model.Subtype(subtype)
	txn.Status = model.Status(status)

	if err := json.Unmarshal([]byte(documentsJSON), &txn.Documents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents for %s: %w", txn.ID, err)
	}

	if vatJSON.Valid && vatJSON.String != "" {
		var vat model.VatDetails
		if err := json.Unmarshal([]byte(vatJSON.String), &vat); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vat details for %s: %w", txn.ID, err)
		}
		txn.VatDetails = &vat
	}

	return &txn, nil
}

func marshalVatDetails(vat *model.VatDetails) (sql.NullString, error) {
	if vat == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(vat)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal vat details: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
