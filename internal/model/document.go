package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type discriminates the three business document kinds.
type Type string

const (
	TypeInvoice     Type = "invoice"
	TypeChangeOrder Type = "change-order"
	TypeContract    Type = "contract"
)

// Valid reports whether t is one of the known document types.
func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypeChangeOrder, TypeContract:
		return true
	}
	return false
}

// LineItem is a single row of work on a document. The extension is
// Quantity x UnitPrice; contract scope items carry a zero UnitPrice.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Document is the shared envelope for invoices, change orders, and
// contracts. Exactly one of the variant payloads (Invoice, ChangeOrder,
// Contract) is non-nil, matching Type. It is a pure domain model with no
// database-specific dependencies or tags; derived money fields (Subtotal,
// Tax, Total) are always recomputed from Items and the variant payload,
// never edited directly.
type Document struct {
	ID              string     `json:"id"`
	Type            Type       `json:"type"`
	Number          string     `json:"number"`
	IsCorrection    bool       `json:"is_correction"`
	ClientName      string     `json:"client_name"`
	ClientEmail     string     `json:"client_email"`
	ClientPhone     string     `json:"client_phone"`
	ClientAddress   string     `json:"client_address"`
	PropertyAddress string     `json:"property_address,omitempty"`
	ProjectName     string     `json:"project_name"`
	Date            string     `json:"date"`
	Items           []LineItem `json:"items"`
	Notes           string     `json:"notes"`

	// SignatureData holds an inline image (data URL) or a reference to the
	// persisted default signature; empty when unsigned at generate time.
	SignatureData string `json:"signature_data,omitempty"`

	Status   Status          `json:"status"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Total    decimal.Decimal `json:"total"`

	SignedFileURL  string `json:"signed_file_url,omitempty"`
	SignedFileName string `json:"signed_file_name,omitempty"`

	Invoice     *InvoiceDetails     `json:"invoice,omitempty"`
	ChangeOrder *ChangeOrderDetails `json:"change_order,omitempty"`
	Contract    *ContractDetails    `json:"contract,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceDetails is the invoice-only payload.
type InvoiceDetails struct {
	DueDate string `json:"due_date"`
}

// ChangeOrderDetails is the change-order-only payload. The envelope Total
// of a change order is the total after change: previous contract amount
// plus the change total minus the deposit.
type ChangeOrderDetails struct {
	ExistingContractDate   string          `json:"existing_contract_date"`
	PreviousContractAmount decimal.Decimal `json:"previous_contract_amount"`
	DepositAmount          decimal.Decimal `json:"deposit_amount"`
	DepositNote            string          `json:"deposit_note"`
}

// ContractDetails is the contract-only payload. Contract items describe
// scope with no per-line pricing; TotalAmount is entered by the operator
// and PaymentStructure presents that number as installments.
type ContractDetails struct {
	FreeformDescription string          `json:"freeform_description"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	PaymentStructure    string          `json:"payment_structure"`
	ContractTerms       string          `json:"contract_terms"`
}

// DisplayNumber is the number as printed, with the corrected suffix applied.
func (d *Document) DisplayNumber() string {
	if d.IsCorrection {
		return d.Number + "-CORRECTED"
	}
	return d.Number
}
