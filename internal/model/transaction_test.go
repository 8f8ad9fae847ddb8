package model

import "testing"

func TestFormatPeso(t *testing.T) {
	tests := []struct {
		want   string
		amount float64
	}{
		{"₱0.00", 0},
		{"₱2,750.00", 2750},
		{"₱1,234,567.89", 1234567.89},
		{"₱999.99", 999.99},
		{"₱1,000.00", 1000},
		{"-₱112.00", -112},
	}

	for _, tt := range tests {
		if got := FormatPeso(tt.amount); got != tt.want {
			t.Errorf("FormatPeso(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestEffectiveSubtype(t *testing.T) {
	tests := []struct {
		name string
		txn  Transaction
		want Subtype
	}{
		{"explicit subtype wins", Transaction{Type: TypePurchase, Subtype: SubtypeGoods}, SubtypeGoods},
		{"bare purchase is services", Transaction{Type: TypePurchase}, SubtypeServices},
		{"bare sale is cash", Transaction{Type: TypeSale}, SubtypeCash},
		{"explicit sale subtype wins", Transaction{Type: TypeSale, Subtype: SubtypeWithPDC}, SubtypeWithPDC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.EffectiveSubtype(); got != tt.want {
				t.Errorf("EffectiveSubtype() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentSetHasSet(t *testing.T) {
	var docs DocumentSet

	for _, kind := range DocumentOrder {
		if docs.Has(kind) {
			t.Errorf("zero set should not have %s", kind)
		}
		docs.Set(kind, true)
		if !docs.Has(kind) {
			t.Errorf("Set(%s, true) not reflected by Has", kind)
		}
		docs.Set(kind, false)
		if docs.Has(kind) {
			t.Errorf("Set(%s, false) not reflected by Has", kind)
		}
	}

	if docs.Has(DocumentKind("bogus")) {
		t.Error("unknown kind should never be present")
	}
}

func TestReceiptAnalysisNeedsVerification(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		written    bool
		want       bool
	}{
		{"confident typed receipt", 95, false, false},
		{"exactly at the floor", 70, false, false},
		{"below the floor", 69.9, false, true},
		{"handwritten is always verified", 99, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ReceiptAnalysis{Confidence: tt.confidence, IsHandwritten: tt.written}
			if got := r.NeedsVerification(); got != tt.want {
				t.Errorf("NeedsVerification() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentKindLabel(t *testing.T) {
	if got := DocForm2307.Label(); got != "Form 2307" {
		t.Errorf("Label() = %q", got)
	}
	if got := DocumentKind("custom").Label(); got != "custom" {
		t.Errorf("unknown kind Label() = %q, want passthrough", got)
	}
}
