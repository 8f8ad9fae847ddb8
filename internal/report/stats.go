// Package report folds stored transactions into dashboard statistics.
package report

import (
	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/policy"
)

// MissingEntry pairs an incomplete transaction with the documents it
// still lacks.
type MissingEntry struct {
	Transaction model.Transaction
	MissingDocs []model.DocumentKind
}

// Stats summarizes a transaction set for the dashboard.
type Stats struct {
	MissingDocs []MissingEntry
	ReadyForYTO []model.Transaction
	Total       int
	Complete    int
	Incomplete  int
}

// Summarize partitions transactions by their persisted status and builds
// the missing-document listing for the incomplete ones.
//
// The stored status is the source of truth for the partition: a policy
// change after save does not retroactively move transactions between
// buckets (only a document-checklist edit re-evaluates and re-persists).
// The missing lists themselves are recomputed against the current policy
// on every call. Input order, newest-first per the persistence contract,
// is preserved.
func Summarize(transactions []model.Transaction, p policy.Policy) Stats {
	stats := Stats{Total: len(transactions)}

	for _, txn := range transactions {
		if txn.Status == model.StatusComplete {
			stats.Complete++
			stats.ReadyForYTO = append(stats.ReadyForYTO, txn)
			continue
		}

		stats.Incomplete++

		verdict := policy.Evaluate(txn, p)
		if len(verdict.Missing) > 0 {
			stats.MissingDocs = append(stats.MissingDocs, MissingEntry{
				Transaction: txn,
				MissingDocs: verdict.Missing,
			})
		}
	}

	return stats
}
