// Package policy decides which compliance documents a transaction needs
// and whether its checklist is complete. The requirement table is loaded
// once from settings and passed by value into every evaluation; there is
// no hidden mutable state, so evaluations are idempotent and re-runnable.
package policy

import (
	"github.com/docguard-ph/docguard/internal/model"
)

// Form2307Rule controls when a Certificate of Creditable Tax Withheld
// (BIR Form 2307) is required. A zero threshold means "always required";
// a positive threshold requires the form only for amounts at or above it.
type Form2307Rule struct {
	Required  bool    `json:"required"`
	Threshold float64 `json:"threshold"`
}

// Applies reports whether Form 2307 is required for the given amount.
func (r Form2307Rule) Applies(amount float64) bool {
	if !r.Required {
		return false
	}
	if r.Threshold <= 0 {
		return true
	}
	return amount >= r.Threshold
}

// Requirement is the document rule set for one (type, subtype) pair.
type Requirement struct {
	OfficialReceipt bool         `json:"officialReceipt"`
	Invoice         bool         `json:"invoice"`
	DeliveryReceipt bool         `json:"deliveryReceipt"`
	Form2307        Form2307Rule `json:"form2307"`
}

// Policy maps transaction type and subtype to document requirements. The
// JSON shape mirrors the persisted settings object.
type Policy struct {
	Purchase map[model.Subtype]Requirement `json:"purchase"`
	Sale     map[model.Subtype]Requirement `json:"sale"`
}

// Default returns the stock requirement table: purchases always need an
// OR and invoice (2307 above ₱500 for goods, always for services); PDC
// sales additionally need a delivery receipt and 2307; cash sales need
// only OR and invoice.
func Default() Policy {
	return Policy{
		Purchase: map[model.Subtype]Requirement{
			model.SubtypeGoods: {
				OfficialReceipt: true,
				Invoice:         true,
				Form2307:        Form2307Rule{Required: true, Threshold: 500},
			},
			model.SubtypeServices: {
				OfficialReceipt: true,
				Invoice:         true,
				Form2307:        Form2307Rule{Required: true, Threshold: 0},
			},
		},
		Sale: map[model.Subtype]Requirement{
			model.SubtypeWithPDC: {
				OfficialReceipt: true,
				Invoice:         true,
				DeliveryReceipt: true,
				Form2307:        Form2307Rule{Required: true, Threshold: 0},
			},
			model.SubtypeCash: {
				OfficialReceipt: true,
				Invoice:         true,
				Form2307:        Form2307Rule{Required: false, Threshold: 500},
			},
		},
	}
}

// Lookup returns the requirement entry for a (type, subtype) pair, falling
// back to the default table when the stored policy has no entry.
func (p Policy) Lookup(ttype model.TransactionType, subtype model.Subtype) Requirement {
	var table map[model.Subtype]Requirement
	switch ttype {
	case model.TypeSale:
		table = p.Sale
	default:
		table = p.Purchase
	}

	if req, ok := table[subtype]; ok {
		return req
	}

	// Stored policy has no entry; consult the stock table, resolving an
	// unknown subtype to the type's default subtype.
	def := Default()
	if ttype == model.TypeSale {
		if req, ok := def.Sale[subtype]; ok {
			return req
		}
		return def.Sale[model.SubtypeCash]
	}
	if req, ok := def.Purchase[subtype]; ok {
		return req
	}
	return def.Purchase[model.SubtypeServices]
}

// RequiredDocuments lists the documents the policy demands for a
// transaction of the given type, subtype, and amount, in canonical order.
func RequiredDocuments(ttype model.TransactionType, subtype model.Subtype, amount float64, p Policy) []model.DocumentKind {
	req := p.Lookup(ttype, subtype)

	var docs []model.DocumentKind
	if req.OfficialReceipt {
		docs = append(docs, model.DocOfficialReceipt)
	}
	if req.Invoice {
		docs = append(docs, model.DocInvoice)
	}
	if req.Form2307.Applies(amount) {
		docs = append(docs, model.DocForm2307)
	}
	if req.DeliveryReceipt {
		docs = append(docs, model.DocDeliveryReceipt)
	}
	return docs
}

// Verdict is the outcome of evaluating a transaction's checklist.
type Verdict struct {
	Status  model.Status
	Missing []model.DocumentKind
}

// Evaluate checks a transaction's received documents against the policy.
// The missing list preserves canonical document order for deterministic
// display. Evaluation is pure: the same (transaction, policy) pair always
// yields the same verdict.
func Evaluate(t model.Transaction, p Policy) Verdict {
	required := RequiredDocuments(t.Type, t.EffectiveSubtype(), t.Amount, p)

	var missing []model.DocumentKind
	for _, kind := range required {
		if !t.Documents.Has(kind) {
			missing = append(missing, kind)
		}
	}

	status := model.StatusComplete
	if len(missing) > 0 {
		status = model.StatusIncomplete
	}
	return Verdict{Status: status, Missing: missing}
}
