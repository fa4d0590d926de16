// Package compute derives every money figure a document shows from its
// items and variant payload. All arithmetic is decimal; nothing here does
// I/O, so recomputation can run on every field edit.
package compute

import (
	"strings"

	"github.com/shopspring/decimal"

	"crportal/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	three   = decimal.NewFromInt(3)
)

// Totals are the derived money figures of a document.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal is the extension of a single item: quantity x unit price.
func LineTotal(it model.LineItem) decimal.Decimal {
	return decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice)
}

// Subtotal sums the extensions of all items. An empty or nil list yields
// zero; items with quantity zero contribute nothing but stay in the list.
func Subtotal(items []model.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	return sum
}

// Tax is subtotal x rate/100, where rate is a whole-number percentage or
// a decimal percentage such as 5.75.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate.Div(hundred))
}

// Compute derives the totals for a document per its variant:
//
//   - invoice: subtotal from items, tax from the rate, total = subtotal+tax
//   - change-order: subtotal is the change total; total is the total after
//     change (previous + change - deposit), which may go negative
//   - contract: total is the operator-entered amount; items carry no price
//
// Intermediate values stay unrounded; rounding happens at display time.
// Computing twice on unchanged input yields identical results.
func Compute(doc *model.Document) Totals {
	switch doc.Type {
	case model.TypeChangeOrder:
		change := Subtotal(doc.Items)
		t := Totals{Subtotal: change, Tax: decimal.Zero, Total: change}
		if co := doc.ChangeOrder; co != nil {
			t.Total = co.PreviousContractAmount.Add(change).Sub(co.DepositAmount)
		}
		return t
	case model.TypeContract:
		amount := decimal.Zero
		if ct := doc.Contract; ct != nil {
			amount = ct.TotalAmount
		}
		return Totals{Subtotal: amount, Tax: decimal.Zero, Total: amount}
	default:
		sub := Subtotal(doc.Items)
		tax := Tax(sub, doc.TaxRate)
		return Totals{Subtotal: sub, Tax: tax, Total: sub.Add(tax)}
	}
}

// Apply recomputes the document's derived fields in place.
func Apply(doc *model.Document) {
	t := Compute(doc)
	doc.Subtotal = t.Subtotal
	doc.Tax = t.Tax
	doc.Total = t.Total
}

// DefaultPaymentStructure renders a contract amount as three equal
// installments of round(amount/3, 2) with the standard milestone wording.
func DefaultPaymentStructure(totalAmount decimal.Decimal) string {
	third := FormatUSD(totalAmount.Div(three).Round(2))
	return third + " USD when client authorizes work agreement.\n" +
		third + " USD due at project midpoint.\n" +
		third + " USD upon completion and customer satisfaction."
}

// FillPaymentStructure populates the contract's payment structure with the
// default three-installment split, but only when the amount is positive
// and the structure is still empty. A structure the operator has edited is
// never overwritten.
func FillPaymentStructure(ct *model.ContractDetails) {
	if ct == nil || !ct.TotalAmount.IsPositive() {
		return
	}
	if strings.TrimSpace(ct.PaymentStructure) != "" {
		return
	}
	ct.PaymentStructure = DefaultPaymentStructure(ct.TotalAmount)
}

// ChangeOrderSummary renders the payment block a change order prints in
// place of a payment structure: the original contract reference, the
// deposit, and the before/after totals.
func ChangeOrderSummary(doc *model.Document) string {
	co := doc.ChangeOrder
	if co == nil {
		return ""
	}
	t := Compute(doc)
	change := t.Subtotal
	deposit := FormatUSD(co.DepositAmount)
	if co.DepositNote != "" {
		deposit += " " + co.DepositNote
	}
	return "DATE OF EXISTING CONTRACT: " + co.ExistingContractDate + "\n\n" +
		"PREVIOUS CONTRACT AMOUNT: " + FormatUSD(co.PreviousContractAmount) + "\n" +
		"DEPOSIT: " + deposit + "\n\n" +
		"CHANGE ORDER TOTAL: " + FormatUSD(change) + "\n" +
		"TOTAL AFTER CHANGE ORDER: " + FormatUSD(t.Total)
}
