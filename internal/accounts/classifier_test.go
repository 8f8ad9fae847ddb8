package accounts

import "testing"

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		vendor string
		items  string
		want   string
	}{
		{
			name:   "utility vendor by name",
			vendor: "Meralco Main Office",
			want:   "6050 - Utilities",
		},
		{
			name:   "keyword in items",
			vendor: "Acme Trading",
			items:  "bond paper, office supplies",
			want:   "6070 - Supplies Expense",
		},
		{
			name:   "fuel station",
			vendor: "Petron C5",
			want:   "6080 - Fuel and Oil",
		},
		{
			name:   "first table hit wins over later entries",
			vendor: "Shell Select",
			items:  "snacks and fuel",
			// Groceries (6075, "snacks") precedes Fuel (6080) in the table.
			want: "6075 - Groceries and Pantry",
		},
		{
			name:   "vendor fallback for hardware stores",
			vendor: "Uy Hardware",
			want:   "6060 - Repairs and Maintenance",
		},
		{
			name:   "vendor fallback for couriers",
			vendor: "LBC Express Cubao",
			// The table's Delivery Services keywords already include "lbc".
			want: "6095 - Delivery Services",
		},
		{
			name:   "no match",
			vendor: "Juan Dela Cruz",
			items:  "",
			want:   "",
		},
		{
			name:   "empty inputs",
			vendor: "",
			items:  "",
			want:   "",
		},
		{
			name:   "case insensitive",
			vendor: "MAYNILAD WATER SERVICES",
			want:   "6050 - Utilities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Suggest(tt.vendor, tt.items); got != tt.want {
				t.Errorf("Suggest(%q, %q) = %q, want %q", tt.vendor, tt.items, got, tt.want)
			}
		})
	}
}

func TestSuggest_deterministic(t *testing.T) {
	first := Suggest("Robinsons Supermarket", "groceries for pantry")
	for i := 0; i < 10; i++ {
		if got := Suggest("Robinsons Supermarket", "groceries for pantry"); got != first {
			t.Fatalf("Suggest() not deterministic: %q vs %q", first, got)
		}
	}
}

func TestSuggest_fallbackOnlyScansVendorName(t *testing.T) {
	// Fallback rules look at the vendor name only, never the item text.
	if got := Suggest("Unknown Vendor", "hardware things"); got != "" {
		t.Errorf("Suggest() = %q, want empty: fallback must ignore items", got)
	}
}
