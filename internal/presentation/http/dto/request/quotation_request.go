package request

import (
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CreateQuotationRequest represents a quotation creation request
type CreateQuotationRequest struct {
	CustomerFields
	QuotationNo string                 `json:"quotation_no" binding:"omitempty,max=100"`
	ProjectName string                 `json:"project_name" binding:"max=255"`
	Status      *enum.QuotationStatus  `json:"status"`
	Items       []QuotationItemRequest `json:"quotation_items"`
}

// QuotationItemRequest represents one quotation line
type QuotationItemRequest struct {
	Description string          `json:"description"`
	Size        string          `json:"size" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ToInput converts the line to a service input
func (r QuotationItemRequest) ToInput() service.QuotationItemInput {
	return service.QuotationItemInput{
		Description: r.Description,
		Size:        r.Size,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

// ToInput converts the request to a service input
func (r *CreateQuotationRequest) ToInput() *service.CreateQuotationInput {
	input := &service.CreateQuotationInput{
		QuotationNo: r.QuotationNo,
		Customer:    r.CustomerFields.ToInput(),
		ProjectName: r.ProjectName,
		Status:      r.Status,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, item.ToInput())
	}
	return input
}

// UpdateQuotationRequest represents a quotation diff: lines with an id are
// changed, lines without one are added, deleted_item_ids are removed
type UpdateQuotationRequest struct {
	ProjectName    *string                      `json:"project_name" binding:"omitempty,max=255"`
	Items          []QuotationItemChangeRequest `json:"quotation_items"`
	DeletedItemIDs []uint                       `json:"deleted_item_ids"`
}

// QuotationItemChangeRequest represents a partial quotation line
type QuotationItemChangeRequest struct {
	ID          *uint            `json:"id"`
	Description *string          `json:"description"`
	Size        *string          `json:"size" binding:"omitempty,max=100"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// ToChange converts the line to a service change
func (r QuotationItemChangeRequest) ToChange() service.QuotationItemChange {
	return service.QuotationItemChange{
		ID:          r.ID,
		Description: r.Description,
		Size:        r.Size,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

// ToInput converts the request to a service input
func (r *UpdateQuotationRequest) ToInput() *service.UpdateQuotationInput {
	input := &service.UpdateQuotationInput{
		ProjectName:    r.ProjectName,
		DeletedItemIDs: r.DeletedItemIDs,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, item.ToChange())
	}
	return input
}

// UpdateQuotationStatusRequest represents a status change
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuotationFilterRequest represents quotation list parameters
type QuotationFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID *uint  `form:"customer_id"`
}

// CreateQuotationItemRequest represents a standalone quotation line creation
type CreateQuotationItemRequest struct {
	QuotationID uint `json:"quotation_id" binding:"required"`
	QuotationItemRequest
}
