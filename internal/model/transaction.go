// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

// Transaction type constants.
const (
	TypePurchase TransactionType = "purchase"
	TypeSale     TransactionType = "sale"
)

// Subtype refines a transaction type for document-requirement purposes.
type Subtype string

// Subtype constants. Purchases are goods or services; sales are paid in
// cash or with a post-dated check.
const (
	SubtypeGoods    Subtype = "goods"
	SubtypeServices Subtype = "services"
	SubtypeWithPDC  Subtype = "withPDC"
	SubtypeCash     Subtype = "cash"
)

// Status is the persisted document-completeness verdict. It is written at
// save time and on document-checklist edits, never recomputed on read.
type Status string

// Status constants.
const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// DocumentKind identifies one of the compliance documents tracked per
// transaction.
type DocumentKind string

// Document kinds, in canonical display order.
const (
	DocOfficialReceipt DocumentKind = "officialReceipt"
	DocInvoice         DocumentKind = "invoice"
	DocForm2307        DocumentKind = "form2307"
	DocDeliveryReceipt DocumentKind = "deliveryReceipt"
)

// DocumentOrder is the canonical ordering used everywhere a list of
// document kinds is shown to the user.
var DocumentOrder = []DocumentKind{
	DocOfficialReceipt,
	DocInvoice,
	DocForm2307,
	DocDeliveryReceipt,
}

// Label returns the human-readable name of a document kind.
func (k DocumentKind) Label() string {
	switch k {
	case DocOfficialReceipt:
		return "Official Receipt"
	case DocInvoice:
		return "Invoice"
	case DocForm2307:
		return "Form 2307"
	case DocDeliveryReceipt:
		return "Delivery Receipt"
	}
	return string(k)
}

// DocumentSet records which physical/digital documents have been received.
type DocumentSet struct {
	OfficialReceipt bool `json:"officialReceipt"`
	Invoice         bool `json:"invoice"`
	Form2307        bool `json:"form2307"`
	DeliveryReceipt bool `json:"deliveryReceipt"`
}

// Has reports whether the given document has been received.
func (d DocumentSet) Has(kind DocumentKind) bool {
	switch kind {
	case DocOfficialReceipt:
		return d.OfficialReceipt
	case DocInvoice:
		return d.Invoice
	case DocForm2307:
		return d.Form2307
	case DocDeliveryReceipt:
		return d.DeliveryReceipt
	}
	return false
}

// Set marks the given document as received or not.
func (d *DocumentSet) Set(kind DocumentKind, received bool) {
	switch kind {
	case DocOfficialReceipt:
		d.OfficialReceipt = received
	case DocInvoice:
		d.Invoice = received
	case DocForm2307:
		d.Form2307 = received
	case DocDeliveryReceipt:
		d.DeliveryReceipt = received
	}
}

// Transaction is the unit of persistence: one purchase or sale with its
// document checklist and optional VAT breakdown.
type Transaction struct {
	TransactionDate time.Time
	CreatedAt       time.Time
	VatDetails      *VatDetails
	ID              string
	Vendor          string
	VendorTIN       string
	InvoiceNumber   string
	ExpenseAccount  string
	Remarks         string
	ReceiptImage    string
	Type            TransactionType
	Subtype         Subtype
	Status          Status
	Documents       DocumentSet
	Amount          float64
}

// EffectiveSubtype resolves the subtype used for policy evaluation.
// When no subtype was recorded, purchases default to services (the
// strictest common case, which always requires Form 2307) and sales to
// cash.
func (t Transaction) EffectiveSubtype() Subtype {
	if t.Subtype != "" {
		return t.Subtype
	}
	if t.Type == TypeSale {
		return SubtypeCash
	}
	return SubtypeServices
}

// DisplayAmount formats the amount as Philippine pesos with thousands
// separators, e.g. "₱2,750.00".
func (t Transaction) DisplayAmount() string {
	return FormatPeso(t.Amount)
}

// FormatPeso renders an amount in the ₱1,234,567.89 form.
func FormatPeso(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₱")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}
