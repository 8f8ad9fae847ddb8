package model

// Receipt types the analysis service distinguishes.
const (
	ReceiptTypeOfficialReceipt = "Official Receipt"
	ReceiptTypeSalesInvoice    = "Sales Invoice"
)

// VerificationConfidenceFloor is the confidence below which an analysis
// result must pass through human verification before acceptance.
const VerificationConfidenceFloor = 70

// ReceiptAnalysis is the structured result returned by the remote
// receipt-analysis service. Every field is optional and untrustworthy;
// callers treat absent values as "not detected".
type ReceiptAnalysis struct {
	VatableSales     *float64 `json:"vatableSales"`
	VatExemptSales   *float64 `json:"vatExemptSales"`
	ZeroRatedSales   *float64 `json:"zeroRatedSales"`
	VatAmount        *float64 `json:"vatAmount"`
	Discount         *float64 `json:"discount"`
	OtherCharges     *float64 `json:"otherCharges"`
	Vendor           string   `json:"vendor"`
	VendorTIN        string   `json:"vendorTIN"`
	ReferenceNumber  string   `json:"referenceNumber"`
	Date             string   `json:"date"`
	Items            string   `json:"items"`
	ReceiptType      string   `json:"receiptType"`
	HandwritingNotes string   `json:"handwritingNotes"`
	RawText          string   `json:"rawText"`
	Amount           float64  `json:"amount"`
	Confidence       float64  `json:"confidence"`
	IsHandwritten    bool     `json:"isHandwritten"`
}

// NeedsVerification reports whether the result must be confirmed by a
// human before it is accepted: handwritten receipts and low-confidence
// reads are never silently trusted.
func (r *ReceiptAnalysis) NeedsVerification() bool {
	return r.IsHandwritten || r.Confidence < VerificationConfidenceFloor
}

// HasVatBreakdown reports whether the service detected an explicit sales
// breakdown (as opposed to just a total).
func (r *ReceiptAnalysis) HasVatBreakdown() bool {
	return r.VatableSales != nil || r.VatExemptSales != nil
}
