package notify

import (
	"fmt"
	"strings"
)

// InquiryEmail builds the email a landlord receives when a tenant opens an
// inquiry on one of their listings.
func InquiryEmail(listingTitle, tenantName, message string) (subject, body string) {
	subject = fmt.Sprintf("New inquiry on %q", listingTitle)

	var b strings.Builder
	fmt.Fprintf(&b, "%s sent an inquiry about your listing %q.\n\n", tenantName, listingTitle)
	fmt.Fprintf(&b, "Message:\n%s\n\n", message)
	b.WriteString("Reply from your Kejani dashboard to keep the conversation in one place.\n")
	return subject, b.String()
}

// PaymentSMS builds the confirmation text sent after M-Pesa reports a
// completed payment.
func PaymentSMS(amount int64, receipt, accountReference string) string {
	return fmt.Sprintf("Kejani: payment of KES %d received (M-Pesa %s, ref %s). Thank you.",
		amount, receipt, accountReference)
}

// DigestItem is one matched listing inside a saved-search digest email.
type DigestItem struct {
	Title        string
	Neighborhood string
	MonthlyRent  int64
}

// DigestEmail builds the daily saved-search alert. The subject carries the
// hit count; the body lists one line per matched listing.
func DigestEmail(searchName string, items []DigestItem) (subject, body string) {
	noun := "listings"
	if len(items) == 1 {
		noun = "listing"
	}
	subject = fmt.Sprintf("%d new %s for your search %q", len(items), noun, searchName)

	var b strings.Builder
	fmt.Fprintf(&b, "Your saved search %q matched %d new %s:\n\n", searchName, len(items), noun)
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s, %s, KES %d/month\n", item.Title, item.Neighborhood, item.MonthlyRent)
	}
	b.WriteString("\nOpen Kejani to view photos and send an inquiry.\n")
	return subject, b.String()
}
