// Package reminder composes follow-up messages for transactions with
// missing documents, plus the sms: and mailto: URLs that hand the message
// off to the user's messaging apps.
package reminder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/docguard-ph/docguard/internal/model"
)

// DefaultTemplate is the stock reminder template. {DOCS} is replaced with
// the comma-joined list of missing documents.
const DefaultTemplate = "Hi! Just a friendly reminder that we need the following documents: {DOCS}. Thank you!"

// EmailSubject is the subject line used for mailto reminders.
const EmailSubject = "Missing Documents Reminder"

// Compose builds the reminder text for a transaction. An empty template
// yields the long-form default that mentions the transaction amount;
// otherwise {DOCS} in the template is substituted with the document list.
func Compose(txn model.Transaction, missing []model.DocumentKind, template string) string {
	docs := joinDocs(missing)
	if template == "" {
		return fmt.Sprintf(
			"Hi! This is a friendly reminder that we're still waiting for the following documents for your transaction worth %s:\n\n%s\n\nPlease send them at your earliest convenience. Thank you!",
			model.FormatPeso(txn.Amount), docs)
	}
	return strings.ReplaceAll(template, "{DOCS}", docs)
}

// SMSURL builds an sms: URL that opens a prefilled text message.
func SMSURL(phoneNumber, message string) string {
	return "sms:" + phoneNumber + "?body=" + escape(message)
}

// EmailURL builds a mailto: URL with the reminder subject and body. The
// recipient is left blank for the user to fill in.
func EmailURL(message string) string {
	return "mailto:?subject=" + escape(EmailSubject) + "&body=" + escape(message)
}

func joinDocs(missing []model.DocumentKind) string {
	labels := make([]string, 0, len(missing))
	for _, kind := range missing {
		labels = append(labels, kind.Label())
	}
	return strings.Join(labels, ", ")
}

// escape percent-encodes for URL query components, using %20 for spaces
// so messaging apps render the body correctly.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
