package entity

import (
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalkInQuotationNo is the sentinel quotation number of an invoice raised
// without a preceding quotation.
const WalkInQuotationNo = "0000"

// Invoice represents a sales invoice, converted from a quotation or raised for a walk-in
type Invoice struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	InvoiceNo     string             `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	QuotationID   *uint              `gorm:"index" json:"quotation_id"`
	QuotationNo   *string            `gorm:"size:100;index" json:"quotation_no"`
	CustomerID    uint               `gorm:"not null;index" json:"customer_id"`
	CustomerTRN   string             `gorm:"size:100;column:customer_trn" json:"customer_trn"`
	ProjectName   string             `gorm:"size:255" json:"project_name"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	FlatDiscount  decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"flat_discount"`
	Discount      decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"discount"`
	VAT           decimal.Decimal    `gorm:"type:decimal(18,4);not null;column:vat" json:"vat"`
	TotalWithVAT  decimal.Decimal    `gorm:"type:decimal(18,4);not null;column:total_with_vat" json:"total_with_vat"`
	Received      decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"received"`
	Remaining     decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"remaining"`
	CreditAmount  decimal.Decimal    `gorm:"-" json:"credit_amount"`
	PaymentStatus enum.PaymentStatus `gorm:"not null;default:0" json:"payment_status"`
	IsDeleted     bool               `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"invoice_items"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// ApplyTotals copies computed document totals onto the invoice
func (i *Invoice) ApplyTotals(t money.DocumentTotals) {
	i.TotalAmount = t.TotalAmount
	i.VAT = t.VAT
	i.Discount = t.Discount
	i.Received = t.Received
	i.settle()
}

// BeforeSave enforces the header identities on every write
func (i *Invoice) BeforeSave(tx *gorm.DB) error {
	i.settle()
	return nil
}

// AfterFind fills the derived credit
func (i *Invoice) AfterFind(tx *gorm.DB) error {
	i.CreditAmount = money.Credit(i.Remaining)
	return nil
}

func (i *Invoice) settle() {
	i.TotalWithVAT = money.TotalWithVAT(i.TotalAmount, i.VAT, i.Discount)
	i.Remaining = money.Balance(i.TotalWithVAT, i.Received)
	i.CreditAmount = money.Credit(i.Remaining)
	i.PaymentStatus = enum.DerivePaymentStatus(i.TotalWithVAT, i.Received)
}

// LineInputs returns the calculation inputs of the invoice items
func (i *Invoice) LineInputs() []money.LineInput {
	lines := make([]money.LineInput, len(i.Items))
	for idx, item := range i.Items {
		lines[idx] = item.LineInput()
	}
	return lines
}

// InvoiceItem represents a line item in an invoice
type InvoiceItem struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	InvoiceID          uint            `gorm:"not null;index" json:"invoice_id"`
	Description        string          `gorm:"type:text" json:"description"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Discount           decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"discount"`
	VAT                decimal.Decimal `gorm:"type:decimal(7,4);not null;column:vat" json:"vat"`
	NetUnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"net_unit_price"`
	VATPerUnit         decimal.Decimal `gorm:"type:decimal(18,4);not null;column:vat_per_unit" json:"vat_per_unit"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_price"`
	TotalAmountWithVAT decimal.Decimal `gorm:"type:decimal(18,4);not null;column:total_amount_with_vat" json:"total_amount_with_vat"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// LineInput returns the raw calculation inputs of the item
func (ii *InvoiceItem) LineInput() money.LineInput {
	return money.LineInput{
		Quantity:    ii.Quantity,
		UnitPrice:   ii.UnitPrice,
		DiscountPct: ii.Discount,
		VATPct:      ii.VAT,
	}
}

// Recalculate derives the per-line figures from the inputs
func (ii *InvoiceItem) Recalculate() {
	amounts := money.Line(ii.LineInput())
	ii.NetUnitPrice = amounts.NetUnitPrice
	ii.VATPerUnit = amounts.VATPerUnit
	ii.TotalPrice = amounts.Net
	ii.TotalAmountWithVAT = amounts.TotalWithVAT
}

// BeforeSave keeps the derived columns in step with the inputs
func (ii *InvoiceItem) BeforeSave(tx *gorm.DB) error {
	ii.Recalculate()
	return nil
}
