package reminder

import (
	"strings"
	"testing"

	"github.com/docguard-ph/docguard/internal/model"
)

func TestComposeDefaultMessage(t *testing.T) {
	txn := model.Transaction{Vendor: "Acme", Amount: 12500}
	missing := []model.DocumentKind{model.DocOfficialReceipt, model.DocForm2307}

	msg := Compose(txn, missing, "")

	if !strings.Contains(msg, "₱12,500.00") {
		t.Errorf("message missing formatted amount: %q", msg)
	}
	if !strings.Contains(msg, "Official Receipt, Form 2307") {
		t.Errorf("message missing document list: %q", msg)
	}
	if !strings.HasPrefix(msg, "Hi! This is a friendly reminder") {
		t.Errorf("unexpected opening: %q", msg)
	}
}

func TestComposeCustomTemplate(t *testing.T) {
	txn := model.Transaction{Amount: 100}
	missing := []model.DocumentKind{model.DocInvoice}

	msg := Compose(txn, missing, "Please send: {DOCS}")
	if msg != "Please send: Invoice" {
		t.Errorf("msg = %q", msg)
	}

	// A template without the placeholder passes through untouched.
	msg = Compose(txn, missing, "Just checking in!")
	if msg != "Just checking in!" {
		t.Errorf("msg = %q", msg)
	}
}

func TestSMSURL(t *testing.T) {
	url := SMSURL("+639171234567", "Send the OR & invoice")

	if !strings.HasPrefix(url, "sms:+639171234567?body=") {
		t.Errorf("url = %q", url)
	}
	if strings.Contains(url, " ") {
		t.Errorf("url contains unescaped space: %q", url)
	}
	if !strings.Contains(url, "%20") {
		t.Errorf("expected %%20 space encoding, got %q", url)
	}
	if !strings.Contains(url, "%26") {
		t.Errorf("ampersand should be escaped in the body: %q", url)
	}
}

func TestEmailURL(t *testing.T) {
	url := EmailURL("Hello there")

	if !strings.HasPrefix(url, "mailto:?subject=Missing%20Documents%20Reminder&body=") {
		t.Errorf("url = %q", url)
	}
	if !strings.HasSuffix(url, "Hello%20there") {
		t.Errorf("url = %q", url)
	}
}
