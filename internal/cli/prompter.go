package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docguard-ph/docguard/internal/model"
	"github.com/docguard-ph/docguard/internal/tax"
)

// Prompter handles interactive review of draft transactions on the
// terminal. Drafts built from receipt analysis are shown field by field;
// the user accepts, corrects, or discards them.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ReviewDraft shows a draft transaction and asks the user to accept,
// edit, or skip it. Returns (nil, nil) when the user skips. When the
// analysis needed verification the accept shortcut is withheld and every
// field is confirmed.
func (p *Prompter) ReviewDraft(ctx context.Context, draft *model.Transaction, forceEdit bool) (*model.Transaction, error) {
	p.printf("%s\n", RenderBox("Receipt Review", p.formatDraft(draft)))

	if forceEdit {
		p.printf("%s\n", FormatWarning("Low confidence or handwritten receipt; please confirm each field."))
		return p.editDraft(ctx, draft)
	}

	choice, err := p.promptChoice(ctx, "[a]ccept, [e]dit, [s]kip", []string{"a", "e", "s"})
	if err != nil {
		return nil, err
	}

	switch choice {
	case "a":
		return draft, nil
	case "e":
		return p.editDraft(ctx, draft)
	default:
		return nil, nil
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	choice, err := p.promptChoice(ctx, question+" [y/N]", []string{"y", "n", ""})
	if err != nil {
		return false, err
	}
	return choice == "y", nil
}

// Ask prompts for a free-form value, returning fallback on empty input.
func (p *Prompter) Ask(ctx context.Context, label, fallback string) (string, error) {
	if fallback != "" {
		p.printf("%s", FormatPrompt(fmt.Sprintf("%s [%s]", label, fallback)))
	} else {
		p.printf("%s", FormatPrompt(label))
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

func (p *Prompter) editDraft(ctx context.Context, draft *model.Transaction) (*model.Transaction, error) {
	edited := *draft

	vendorName, err := p.Ask(ctx, "Vendor", edited.Vendor)
	if err != nil {
		return nil, err
	}
	edited.Vendor = vendorName

	amountStr, err := p.Ask(ctx, "Amount", fmt.Sprintf("%.2f", edited.Amount))
	if err != nil {
		return nil, err
	}
	if amount := tax.ParseAmount(amountStr); amount > 0 {
		edited.Amount = amount
	}

	tin, err := p.Ask(ctx, "Vendor TIN", edited.VendorTIN)
	if err != nil {
		return nil, err
	}
	edited.VendorTIN = tin

	invoice, err := p.Ask(ctx, "Invoice/OR number", edited.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	edited.InvoiceNumber = invoice

	account, err := p.Ask(ctx, "Expense account", edited.ExpenseAccount)
	if err != nil {
		return nil, err
	}
	edited.ExpenseAccount = account

	return &edited, nil
}

func (p *Prompter) formatDraft(draft *model.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Vendor:"), draft.Vendor)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Amount:"), draft.DisplayAmount())
	if draft.VendorTIN != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("TIN:"), draft.VendorTIN)
	}
	if draft.InvoiceNumber != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Reference:"), draft.InvoiceNumber)
	}
	if !draft.TransactionDate.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Date:"), draft.TransactionDate.Format("Jan 2, 2006"))
	}
	if draft.ExpenseAccount != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Account:"), draft.ExpenseAccount)
	}
	if draft.VatDetails != nil {
		fmt.Fprintf(&b, "%s %s VAT on %s\n",
			BoldStyle.Render("VAT:"),
			model.FormatPeso(draft.VatDetails.VatAmount),
			model.FormatPeso(draft.VatDetails.VatableSales))
		if draft.VatDetails.WithholdingTax > 0 {
			fmt.Fprintf(&b, "%s %s at %s%%\n",
				BoldStyle.Render("Withholding:"),
				model.FormatPeso(draft.VatDetails.WithholdingTax),
				draft.VatDetails.WithholdingRate)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	deadline := time.Now().Add(5 * time.Minute)
	for time.Now().Before(deadline) {
		p.printf("%s", FormatPrompt(prompt))

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(line))
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}
		p.printf("%s\n", FormatWarning("Invalid choice, try again"))
	}
	return "", fmt.Errorf("no valid choice made")
}

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.writer, format, args...)
}
