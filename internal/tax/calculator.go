// Package tax computes Philippine VAT breakdowns and expanded withholding
// tax. All operations are pure functions over monetary values; arithmetic
// runs on decimals and results are rounded half-up to centavos.
package tax

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// VatRate is the standard Philippine VAT rate.
const VatRate = 0.12

// vatDivisor converts a VAT-inclusive amount to its net base.
var vatDivisor = decimal.NewFromInt(1).Add(decimal.NewFromFloat(VatRate))

// ParseAmount converts user or service input to a monetary value.
// Unparseable input yields 0; strict validation is the caller's job.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// DeriveVatBreakdown splits a VAT-inclusive total into vatable sales and
// the 12% VAT portion, after removing VAT-exempt sales and other charges.
// The subtraction is deliberately unclamped: when exemptions and charges
// exceed the total, negative values flow through for the caller to surface.
func DeriveVatBreakdown(totalAmount, vatExemptSales, otherCharges float64) (vatableSales, vatAmount float64) {
	base := decimal.NewFromFloat(totalAmount).
		Sub(decimal.NewFromFloat(vatExemptSales)).
		Sub(decimal.NewFromFloat(otherCharges))

	vatable := base.DivRound(vatDivisor, 2)
	vat := base.Sub(vatable).Round(2)

	vatableSales, _ = vatable.Float64()
	vatAmount, _ = vat.Float64()
	return vatableSales, vatAmount
}

// ComputeWithholding calculates expanded withholding tax on the total net
// sales base. The rate is a percentage string from the standard rate set;
// a rate that fails to parse contributes 0, matching the lenient input
// policy used across the calculators.
func ComputeWithholding(vatableSales, vatExemptSales, zeroRatedSales float64, ratePercent string) float64 {
	base := decimal.NewFromFloat(vatableSales).
		Add(decimal.NewFromFloat(vatExemptSales)).
		Add(decimal.NewFromFloat(zeroRatedSales))

	rate := decimal.NewFromFloat(ParseAmount(ratePercent))

	tax := base.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	result, _ := tax.Float64()
	return result
}
