package mail

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"crportal/internal/config"
	"crportal/internal/model"
)

func testComposer() *Composer {
	return NewComposer(config.CompanyConfig{
		Brand: "CR Home Pros",
		Owner: "Carlos Hernandez",
		Phone: "(571) 237-7164",
		Email: "crhomepros@gmail.com",
	})
}

func TestForDocumentInvoice(t *testing.T) {
	doc := &model.Document{
		Type:        model.TypeInvoice,
		Number:      "INV-2026-014",
		ClientName:  "Jordan Blake",
		ClientEmail: "jordan@example.com",
		ProjectName: "Deck Rebuild",
		Items: []model.LineItem{
			{Description: "Labor", Quantity: 2, UnitPrice: decimal.RequireFromString("100")},
			{Description: "Haul", Quantity: 1, UnitPrice: decimal.RequireFromString("50")},
		},
		TaxRate: decimal.RequireFromString("8"),
		Invoice: &model.InvoiceDetails{DueDate: "2026-08-26"},
	}

	msg := testComposer().ForDocument(doc)

	assert.Equal(t, "jordan@example.com", msg.To)
	assert.Equal(t, "Invoice INV-2026-014 - Deck Rebuild", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Jordan,")
	assert.Contains(t, msg.Body, "in the amount of $270.00")
	assert.Contains(t, msg.Body, "Payment is due by August 26, 2026.")
	assert.Contains(t, msg.Body, "Best regards,\nCarlos Hernandez\nCR Home Pros\n(571) 237-7164")
	assert.True(t, strings.HasPrefix(msg.Mailto, "mailto:jordan@example.com?subject="))
}

func TestForDocumentChangeOrder(t *testing.T) {
	doc := &model.Document{
		Type:         model.TypeChangeOrder,
		Number:       "CO-2026-007",
		IsCorrection: true,
		ClientName:   "Jordan Blake",
		ClientEmail:  "jordan@example.com",
		Items: []model.LineItem{
			{Description: "Framing", Quantity: 1, UnitPrice: decimal.RequireFromString("1200")},
		},
		ChangeOrder: &model.ChangeOrderDetails{
			PreviousContractAmount: decimal.RequireFromString("10000"),
		},
	}

	msg := testComposer().ForDocument(doc)

	// No project name: the brand stands in.
	assert.Equal(t, "Change Order CO-2026-007-CORRECTED - CR Home Pros", msg.Subject)
	assert.Contains(t, msg.Body, "The change order total is $1,200.00.")
}

func TestForDocumentContract(t *testing.T) {
	doc := &model.Document{
		Type:            model.TypeContract,
		Number:          "CON-2026-003",
		ClientName:      "Morgan Reyes",
		ClientEmail:     "morgan@example.com",
		ProjectName:     "Kitchen Remodel",
		PropertyAddress: "412 Maple Ct, Vienna, VA",
		Contract: &model.ContractDetails{
			TotalAmount: decimal.RequireFromString("17097"),
		},
	}

	msg := testComposer().ForDocument(doc)

	assert.Contains(t, msg.Body, "the contract for Kitchen Remodel at 412 Maple Ct, Vienna, VA")
	assert.Contains(t, msg.Body, "Total estimated cost: $17,097.00")
	assert.Contains(t, msg.Body, "review, sign, and return")
}

func TestForDocumentEmptyClientName(t *testing.T) {
	doc := &model.Document{
		Type:        model.TypeInvoice,
		Number:      "INV-1",
		ClientEmail: "x@example.com",
	}

	msg := testComposer().ForDocument(doc)

	assert.Contains(t, msg.Body, "Hi there,")
	assert.Contains(t, msg.Body, "for your project")
}

func TestLeadNotification(t *testing.T) {
	lead := &model.Lead{
		Name:     "Sam Ortiz",
		Email:    "sam@example.com",
		Phone:    "(703) 555-0100",
		Services: []string{"Roofing", "Gutters"},
		Timeline: "This month",
		Source:   "get-started",
	}

	msg := testComposer().LeadNotification(lead)

	assert.Equal(t, "crhomepros@gmail.com", msg.To)
	assert.Equal(t, "New Lead: Sam Ortiz - Roofing, Gutters", msg.Subject)
	assert.Contains(t, msg.Body, "Phone: (703) 555-0100")
	assert.Contains(t, msg.Body, "Timeline: This month")
	assert.NotContains(t, msg.Body, "Budget:")
}

func TestMailtoEscaping(t *testing.T) {
	msg := newMessage("a@b.c", "Invoice #1 & more", "line one\nline two")

	assert.NotContains(t, msg.Mailto, "+")
	assert.Contains(t, msg.Mailto, "%20")
	assert.Contains(t, msg.Mailto, "%0Aline%20two")
	assert.Contains(t, msg.Mailto, "%26")
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "August 26, 2026", longDate("2026-08-26"))
	assert.Equal(t, "soon", longDate("soon"))
}
