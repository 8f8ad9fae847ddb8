package model

// DefaultWithholdingRate is the pre-selected expanded withholding rate.
const DefaultWithholdingRate = "2"

// WithholdingRates lists the selectable expanded withholding tax rates,
// in percent.
var WithholdingRates = []string{"1", "2", "5", "10", "15"}

// IsStandardWithholdingRate reports whether rate is one of the
// selectable expanded withholding rates.
func IsStandardWithholdingRate(rate string) bool {
	for _, r := range WithholdingRates {
		if r == rate {
			return true
		}
	}
	return false
}

// VatDetails is the optional VAT and withholding breakdown embedded in a
// transaction. All monetary fields default to zero; WithholdingRate is a
// percentage from WithholdingRates.
type VatDetails struct {
	WithholdingRate string  `json:"withholdingRate"`
	VatableSales    float64 `json:"vatableSales"`
	VatExemptSales  float64 `json:"vatExemptSales"`
	ZeroRatedSales  float64 `json:"zeroRatedSales"`
	VatAmount       float64 `json:"vatAmount"`
	Discount        float64 `json:"discount"`
	OtherCharges    float64 `json:"otherCharges"`
	WithholdingTax  float64 `json:"withholdingTax"`
}

// TotalNetSales is the withholding base: vatable plus VAT-exempt plus
// zero-rated sales.
func (v VatDetails) TotalNetSales() float64 {
	return v.VatableSales + v.VatExemptSales + v.ZeroRatedSales
}
