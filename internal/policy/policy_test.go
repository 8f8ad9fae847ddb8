package policy

import (
	"reflect"
	"testing"

	"github.com/docguard-ph/docguard/internal/model"
)

func TestRequiredDocuments(t *testing.T) {
	p := Default()

	tests := []struct {
		name    string
		ttype   model.TransactionType
		subtype model.Subtype
		amount  float64
		want    []model.DocumentKind
	}{
		{
			name:    "purchase of services always needs 2307",
			ttype:   model.TypePurchase,
			subtype: model.SubtypeServices,
			amount:  1000,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307},
		},
		{
			name:    "small services purchase still needs 2307",
			ttype:   model.TypePurchase,
			subtype: model.SubtypeServices,
			amount:  50,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307},
		},
		{
			name:    "goods purchase under threshold skips 2307",
			ttype:   model.TypePurchase,
			subtype: model.SubtypeGoods,
			amount:  499.99,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice},
		},
		{
			name:    "goods purchase at threshold needs 2307",
			ttype:   model.TypePurchase,
			subtype: model.SubtypeGoods,
			amount:  500,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307},
		},
		{
			name:    "PDC sale needs the full set",
			ttype:   model.TypeSale,
			subtype: model.SubtypeWithPDC,
			amount:  10000,
			want: []model.DocumentKind{
				model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307, model.DocDeliveryReceipt,
			},
		},
		{
			name:    "cash sale never needs 2307",
			ttype:   model.TypeSale,
			subtype: model.SubtypeCash,
			amount:  100000,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice},
		},
		{
			name:    "unknown subtype falls back to defaults",
			ttype:   model.TypePurchase,
			subtype: model.Subtype("unknown"),
			amount:  1000,
			want:    []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredDocuments(tt.ttype, tt.subtype, tt.amount, p)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RequiredDocuments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequiredDocuments_unknownSubtypeFallback(t *testing.T) {
	// A policy missing entries must not panic or silently require nothing.
	empty := Policy{}
	got := RequiredDocuments(model.TypeSale, model.SubtypeCash, 100, empty)
	want := []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredDocuments() with empty policy = %v, want %v", got, want)
	}
}

func TestEvaluate(t *testing.T) {
	p := Default()

	t.Run("no documents checked", func(t *testing.T) {
		txn := model.Transaction{
			Type:    model.TypePurchase,
			Subtype: model.SubtypeServices,
			Amount:  1000,
		}

		v := Evaluate(txn, p)
		if v.Status != model.StatusIncomplete {
			t.Errorf("Status = %v, want incomplete", v.Status)
		}
		want := []model.DocumentKind{model.DocOfficialReceipt, model.DocInvoice, model.DocForm2307}
		if !reflect.DeepEqual(v.Missing, want) {
			t.Errorf("Missing = %v, want %v", v.Missing, want)
		}
	})

	t.Run("all required documents present", func(t *testing.T) {
		txn := model.Transaction{
			Type:    model.TypePurchase,
			Subtype: model.SubtypeServices,
			Amount:  1000,
			Documents: model.DocumentSet{
				OfficialReceipt: true,
				Invoice:         true,
				Form2307:        true,
				// Delivery receipt not required for services.
			},
		}

		v := Evaluate(txn, p)
		if v.Status != model.StatusComplete {
			t.Errorf("Status = %v, want complete", v.Status)
		}
		if len(v.Missing) != 0 {
			t.Errorf("Missing = %v, want empty", v.Missing)
		}
	})

	t.Run("subtype inferred when unset", func(t *testing.T) {
		// A bare purchase evaluates as services: 2307 required at any amount.
		txn := model.Transaction{Type: model.TypePurchase, Amount: 50}

		v := Evaluate(txn, p)
		found := false
		for _, k := range v.Missing {
			if k == model.DocForm2307 {
				found = true
			}
		}
		if !found {
			t.Errorf("Missing = %v, want form2307 present", v.Missing)
		}
	})
}

func TestEvaluate_idempotent(t *testing.T) {
	p := Default()
	txn := model.Transaction{
		Type:      model.TypeSale,
		Subtype:   model.SubtypeWithPDC,
		Amount:    2500,
		Documents: model.DocumentSet{OfficialReceipt: true},
	}

	first := Evaluate(txn, p)
	for i := 0; i < 5; i++ {
		again := Evaluate(txn, p)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Evaluate() not idempotent: %v vs %v", first, again)
		}
	}
}

func TestEvaluate_missingSetMonotonic(t *testing.T) {
	// Checking off one more document never grows the missing list.
	p := Default()
	txn := model.Transaction{
		Type:    model.TypeSale,
		Subtype: model.SubtypeWithPDC,
		Amount:  2500,
	}

	prev := len(Evaluate(txn, p).Missing)
	for _, kind := range model.DocumentOrder {
		txn.Documents.Set(kind, true)
		cur := len(Evaluate(txn, p).Missing)
		if cur > prev {
			t.Fatalf("missing list grew from %d to %d after checking %s", prev, cur, kind)
		}
		prev = cur
	}
	if prev != 0 {
		t.Fatalf("missing list not empty after checking everything: %d left", prev)
	}
}

func TestForm2307Rule_Applies(t *testing.T) {
	tests := []struct {
		name   string
		rule   Form2307Rule
		amount float64
		want   bool
	}{
		{"not required", Form2307Rule{Required: false, Threshold: 500}, 10000, false},
		{"zero threshold always applies", Form2307Rule{Required: true, Threshold: 0}, 0.01, true},
		{"below threshold", Form2307Rule{Required: true, Threshold: 500}, 499.99, false},
		{"at threshold", Form2307Rule{Required: true, Threshold: 500}, 500, true},
		{"above threshold", Form2307Rule{Required: true, Threshold: 500}, 500.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Applies(tt.amount); got != tt.want {
				t.Errorf("Applies(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
