package request

import (
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents an invoice creation or quotation conversion.
// An empty quotation_no or "0000" raises a walk-in invoice.
type CreateInvoiceRequest struct {
	CustomerFields
	InvoiceNo   string               `json:"invoice_no" binding:"omitempty,max=100"`
	QuotationNo string               `json:"quotation_no" binding:"omitempty,max=100"`
	CustomerTRN string               `json:"customer_trn" binding:"max=100"`
	ProjectName string               `json:"project_name" binding:"max=255"`
	VAT         *decimal.Decimal     `json:"vat"`
	Discount    decimal.Decimal      `json:"discount"`
	Received    decimal.Decimal      `json:"received"`
	Items       []InvoiceItemRequest `json:"invoice_items"`
}

// InvoiceItemRequest represents one invoice line
type InvoiceItemRequest struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Discount    decimal.Decimal  `json:"discount"`
	VAT         *decimal.Decimal `json:"vat"`
}

// ToInput converts the request to a service input
func (r *CreateInvoiceRequest) ToInput() *service.CreateInvoiceInput {
	input := &service.CreateInvoiceInput{
		InvoiceNo:    r.InvoiceNo,
		QuotationNo:  r.QuotationNo,
		Customer:     r.CustomerFields.ToInput(),
		CustomerTRN:  r.CustomerTRN,
		ProjectName:  r.ProjectName,
		VAT:          r.VAT,
		FlatDiscount: r.Discount,
		Received:     r.Received,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, item.ToInput())
	}
	return input
}

// ToInput converts the line to a service input
func (r InvoiceItemRequest) ToInput() service.InvoiceItemInput {
	return service.InvoiceItemInput{
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Discount:    r.Discount,
		VAT:         r.VAT,
	}
}

// CreateInvoiceItemRequest represents a standalone invoice line creation
type CreateInvoiceItemRequest struct {
	InvoiceID uint `json:"invoice_id" binding:"required"`
	InvoiceItemRequest
}

// UpdateInvoiceRequest represents a full invoice update. When invoice_items
// is sent it replaces the line set.
type UpdateInvoiceRequest struct {
	CustomerFields
	CustomerTRN *string                    `json:"customer_trn" binding:"omitempty,max=100"`
	ProjectName *string                    `json:"project_name" binding:"omitempty,max=255"`
	Discount    *decimal.Decimal           `json:"discount"`
	Received    *decimal.Decimal           `json:"received"`
	Items       []InvoiceItemChangeRequest `json:"invoice_items"`
}

// InvoiceItemChangeRequest represents a partial invoice line
type InvoiceItemChangeRequest struct {
	ID          *uint            `json:"id"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	VAT         *decimal.Decimal `json:"vat"`
}

// ToInput converts the request to a service input
func (r *UpdateInvoiceRequest) ToInput() *service.UpdateInvoiceInput {
	input := &service.UpdateInvoiceInput{
		CustomerTRN:  r.CustomerTRN,
		ProjectName:  r.ProjectName,
		FlatDiscount: r.Discount,
		Received:     r.Received,
	}
	if !r.CustomerFields.IsEmpty() {
		customer := r.CustomerFields.ToInput()
		input.Customer = &customer
	}
	if r.Items != nil {
		input.Items = make([]service.InvoiceItemChange, 0, len(r.Items))
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, item.ToChange())
	}
	return input
}

// ToChange converts the line to a service change
func (r InvoiceItemChangeRequest) ToChange() service.InvoiceItemChange {
	return service.InvoiceItemChange{
		ID:          r.ID,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Discount:    r.Discount,
		VAT:         r.VAT,
	}
}

// DocumentFilterRequest represents list parameters of soft-deletable documents
type DocumentFilterRequest struct {
	State  string `form:"state"`
	Search string `form:"search"`
}

// SalesSummaryRequest represents the summary date range
type SalesSummaryRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
