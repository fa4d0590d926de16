// Package mail composes outgoing messages for documents and leads. Nothing
// here talks SMTP: the server has no mail credentials, so a composition is
// returned to the caller as a ready-to-open mailto URL plus its parts, and
// the operator's own mail client does the sending. A failed or abandoned
// mail client never rolls back the document state that was saved before
// composing.
package mail

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"crportal/internal/compute"
	"crportal/internal/config"
	"crportal/internal/model"
)

// Message is one composed mail: the addressee, the prefilled subject and
// body, and the mailto URL encoding all three.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// Composer builds messages signed with a fixed company identity.
type Composer struct {
	company config.CompanyConfig
}

// NewComposer constructs a Composer for the given company identity.
func NewComposer(company config.CompanyConfig) *Composer {
	return &Composer{company: company}
}

// ForDocument composes the send-to-client message for a document. The
// caller guarantees doc.ClientEmail is set.
func (c *Composer) ForDocument(doc *model.Document) Message {
	t := compute.Compute(doc)
	number := doc.DisplayNumber()
	first := firstName(doc.ClientName)
	project := doc.ProjectName
	if project == "" {
		project = "your project"
	}

	var subject, body string
	switch doc.Type {
	case model.TypeChangeOrder:
		subject = fmt.Sprintf("Change Order %s - %s", number, orBrand(doc.ProjectName, c.company.Brand))
		body = fmt.Sprintf(
			"Hi %s,\n\nPlease find attached Change Order %s for additional work on your project.\n\n"+
				"The change order total is %s.\n\n"+
				"Please review, sign, and return at your earliest convenience.",
			first, number, compute.FormatUSD(t.Subtotal))
	case model.TypeContract:
		property := doc.PropertyAddress
		if property == "" {
			property = "your property"
		}
		amount := t.Total
		if doc.Contract != nil {
			amount = doc.Contract.TotalAmount
		}
		subject = fmt.Sprintf("Contract %s - %s", number, orBrand(doc.ProjectName, c.company.Brand))
		body = fmt.Sprintf(
			"Hi %s,\n\nPlease find attached the contract for %s at %s.\n\n"+
				"Total estimated cost: %s\n\n"+
				"Please review, sign, and return at your earliest convenience. "+
				"If you have any questions, don't hesitate to reach out.",
			first, project, property, compute.FormatUSD(amount))
	default:
		due := ""
		if doc.Invoice != nil && doc.Invoice.DueDate != "" {
			due = fmt.Sprintf("\n\nPayment is due by %s.", longDate(doc.Invoice.DueDate))
		}
		subject = fmt.Sprintf("Invoice %s - %s", number, orBrand(doc.ProjectName, c.company.Brand))
		body = fmt.Sprintf(
			"Hi %s,\n\nPlease find attached Invoice %s for %s in the amount of %s.%s\n\n"+
				"If you have any questions, please don't hesitate to reach out.",
			first, number, project, compute.FormatUSD(t.Total), due)
	}

	body += "\n\nBest regards,\n" + c.signature()
	return newMessage(doc.ClientEmail, subject, body)
}

// LeadNotification composes the internal heads-up for a newly captured
// lead, addressed to the company inbox.
func (c *Composer) LeadNotification(lead *model.Lead) Message {
	subject := "New Lead: " + lead.Name
	if len(lead.Services) > 0 {
		subject += " - " + strings.Join(lead.Services, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New lead from the %s form.\n\n", orBrand(lead.Source, "website"))
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nPhone: %s\n", lead.Name, lead.Email, lead.Phone)
	writeField(&b, "Address", lead.Address)
	if len(lead.Services) > 0 {
		writeField(&b, "Services", strings.Join(lead.Services, ", "))
	}
	writeField(&b, "Project", lead.ProjectDescription)
	writeField(&b, "Timeline", lead.Timeline)
	writeField(&b, "Budget", lead.Budget)
	writeField(&b, "Message", lead.Message)

	return newMessage(c.company.Email, subject, b.String())
}

func (c *Composer) signature() string {
	return c.company.Owner + "\n" + c.company.Brand + "\n" + c.company.Phone
}

func newMessage(to, subject, body string) Message {
	return Message{
		To:      to,
		Subject: subject,
		Body:    body,
		Mailto:  fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, escape(subject), escape(body)),
	}
}

// escape percent-encodes a mailto query component. Mail clients do not
// uniformly decode "+" as a space, so spaces stay %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return "there"
}

func orBrand(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// longDate renders an ISO date as "January 2, 2006"; anything unparseable
// passes through as entered.
func longDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}

func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}
