package model

import (
	"strings"
	"time"
)

// VendorProfile stores per-vendor defaults used to pre-fill new
// transactions. Profiles are keyed by the lower-cased vendor name and live
// independently of any transaction.
type VendorProfile struct {
	LastUpdated           time.Time
	Key                   string
	DisplayName           string
	TIN                   string
	DefaultExpenseAccount string
}

// VendorKey normalizes a vendor name into its profile key.
func VendorKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
