package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/model"
)

// GetVendorProfile fetches a vendor profile by its normalized key.
func (s *SQLiteStorage) GetVendorProfile(ctx context.Context, key string) (*model.VendorProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "vendor key"); err != nil {
		return nil, err
	}

	var profile model.VendorProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT key, display_name, tin, default_expense_account, last_updated
		FROM vendor_profiles
		WHERE key = ?
	`, key).Scan(
		&profile.Key,
		&profile.DisplayName,
		&profile.TIN,
		&profile.DefaultExpenseAccount,
		&profile.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vendor profile %s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor profile: %w", err)
	}
	return &profile, nil
}

// SaveVendorProfile inserts or replaces the profile under its key.
func (s *SQLiteStorage) SaveVendorProfile(ctx context.Context, profile *model.VendorProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVendorProfile(profile); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendor_profiles (key, display_name, tin, default_expense_account, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			display_name = excluded.display_name,
			tin = excluded.tin,
			default_expense_account = excluded.default_expense_account,
			last_updated = excluded.last_updated
	`,
		profile.Key,
		profile.DisplayName,
		profile.TIN,
		profile.DefaultExpenseAccount,
		profile.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor profile: %w", err)
	}
	return nil
}

// GetAllVendorProfiles returns every stored profile ordered by display name.
func (s *SQLiteStorage) GetAllVendorProfiles(ctx context.Context) ([]model.VendorProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, display_name, tin, default_expense_account, last_updated
		FROM vendor_profiles
		ORDER BY display_name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.VendorProfile
	for rows.Next() {
		var profile model.VendorProfile
		if err := rows.Scan(
			&profile.Key,
			&profile.DisplayName,
			&profile.TIN,
			&profile.DefaultExpenseAccount,
			&profile.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vendor profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
