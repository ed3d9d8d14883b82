package entity

import (
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase represents a purchase from a supplier
type Purchase struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	PurchaseNo    string             `gorm:"size:100;uniqueIndex;not null" json:"purchase_no"`
	SupplierName  string             `gorm:"size:255;not null" json:"supplier_name"`
	Description   string             `gorm:"type:text" json:"description"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"paid_amount"`
	Balance       decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"balance"`
	PaymentStatus enum.PaymentStatus `gorm:"not null;default:0" json:"payment_status"`
	IsDeleted     bool               `gorm:"not null;default:false;index" json:"is_deleted"`
	Remarks       string             `gorm:"type:text" json:"remarks"`
	PurchaseDate  time.Time          `gorm:"not null" json:"purchase_date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// BeforeSave keeps balance and payment status in step with the amounts
func (p *Purchase) BeforeSave(tx *gorm.DB) error {
	p.Settle()
	return nil
}

// Settle derives balance and payment status
func (p *Purchase) Settle() {
	p.Balance = money.Balance(p.TotalAmount, p.PaidAmount)
	p.PaymentStatus = enum.DerivePaymentStatus(p.TotalAmount, p.PaidAmount)
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
