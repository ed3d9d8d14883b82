package request

import (
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	PurchaseNo   string          `json:"purchase_no" binding:"omitempty,max=100"`
	SupplierName string          `json:"supplier_name" binding:"required,max=255"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Remarks      string          `json:"remarks"`
	PurchaseDate *string         `json:"purchase_date"`
}

// UpdatePurchaseRequest represents a partial purchase update
type UpdatePurchaseRequest struct {
	SupplierName *string          `json:"supplier_name" binding:"omitempty,max=255"`
	Description  *string          `json:"description"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	PaidAmount   *decimal.Decimal `json:"paid_amount"`
	Remarks      *string          `json:"remarks"`
	PurchaseDate *string          `json:"purchase_date"`
}
