package model

import "testing"

func TestTotalNetSales(t *testing.T) {
	tests := []struct {
		name string
		v    VatDetails
		want float64
	}{
		{"zero value", VatDetails{}, 0},
		{"vatable only", VatDetails{VatableSales: 1000}, 1000},
		{
			"all three components",
			VatDetails{VatableSales: 892.86, VatExemptSales: 107.14, ZeroRatedSales: 250},
			1250,
		},
		{
			"vat and charges excluded from the base",
			VatDetails{VatableSales: 1000, VatAmount: 120, OtherCharges: 50, Discount: 10},
			1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.TotalNetSales(); got != tt.want {
				t.Errorf("TotalNetSales() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStandardWithholdingRate(t *testing.T) {
	for _, rate := range WithholdingRates {
		if !IsStandardWithholdingRate(rate) {
			t.Errorf("IsStandardWithholdingRate(%q) = false, want true", rate)
		}
	}
	if !IsStandardWithholdingRate(DefaultWithholdingRate) {
		t.Error("default rate must be in the standard set")
	}

	for _, rate := range []string{"", "3", "2.0", "2%", "abc"} {
		if IsStandardWithholdingRate(rate) {
			t.Errorf("IsStandardWithholdingRate(%q) = true, want false", rate)
		}
	}
}
