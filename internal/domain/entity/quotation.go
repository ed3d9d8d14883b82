package entity

import (
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quotation represents a price quotation for a customer
type Quotation struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	QuotationNo string               `gorm:"size:100;uniqueIndex;not null" json:"quotation_no"`
	CustomerID  uint                 `gorm:"not null;index" json:"customer_id"`
	ProjectName string               `gorm:"size:255" json:"project_name"`
	Status      enum.QuotationStatus `gorm:"not null;default:0;index" json:"status"`
	ValidUntil  time.Time            `gorm:"not null" json:"valid_until"`
	TotalAmount decimal.Decimal      `gorm:"-" json:"total_amount"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	// Relationships
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []QuotationItem `gorm:"foreignKey:QuotationID" json:"quotation_items"`
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// AfterFind fills the derived total from the loaded items
func (q *Quotation) AfterFind(tx *gorm.DB) error {
	q.ComputeTotal()
	return nil
}

// ComputeTotal sums quantity x unit price over the items
func (q *Quotation) ComputeTotal() {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(money.QuotationLineTotal(item.Quantity, item.UnitPrice))
	}
	q.TotalAmount = total
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	QuotationID uint            `gorm:"not null;index" json:"quotation_id"`
	Description string          `gorm:"type:text" json:"description"`
	Size        string          `gorm:"size:100" json:"size"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeSave keeps total_price in step with quantity and unit price
func (qi *QuotationItem) BeforeSave(tx *gorm.DB) error {
	qi.TotalPrice = money.QuotationLineTotal(qi.Quantity, qi.UnitPrice)
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
