package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docguard-ph/docguard/internal/common"
	"github.com/docguard-ph/docguard/internal/policy"
)

const policySettingKey = "document_policy"

// LoadPolicy reads the document-requirement policy from the settings table.
// Returns ErrNotFound when no policy has been saved yet; callers fall back
// to policy.Default().
func (s *SQLiteStorage) LoadPolicy(ctx context.Context) (policy.Policy, error) {
	var p policy.Policy
	if err := validateContext(ctx); err != nil {
		return p, err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", policySettingKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("document policy: %w", common.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("failed to load policy: %w", err)
	}

	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal policy: %w", err)
	}
	return p, nil
}

// SavePolicy persists the policy as JSON in the settings table.
func (s *SQLiteStorage) SavePolicy(ctx context.Context, p policy.Policy) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, policySettingKey, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}
	return nil
}
