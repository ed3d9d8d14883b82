package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
)

// QuotationItemHandler handles quotation line HTTP requests
type QuotationItemHandler struct {
	itemService *service.QuotationItemService
}

// NewQuotationItemHandler creates a new quotation item handler
func NewQuotationItemHandler(itemService *service.QuotationItemService) *QuotationItemHandler {
	return &QuotationItemHandler{itemService: itemService}
}

// List handles listing all quotation lines
func (h *QuotationItemHandler) List(c *gin.Context) {
	page, err := paginationParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.itemService.ListItems(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotation items retrieved successfully", result)
}

// ListByQuotation handles listing the lines of one quotation, by id or quotation_no
func (h *QuotationItemHandler) ListByQuotation(c *gin.Context) {
	items, err := h.itemService.ListByQuotation(c.Request.Context(), c.Param("quotation_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation items retrieved successfully", items)
}

// Get handles getting a quotation line by ID
func (h *QuotationItemHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation item retrieved successfully", item)
}

// Create handles adding a line to a quotation
func (h *QuotationItemHandler) Create(c *gin.Context) {
	var req request.CreateQuotationItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req.QuotationID, req.QuotationItemRequest.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation item created successfully", item)
}

// Update handles a partial line update
func (h *QuotationItemHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.QuotationItemChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, req.ToChange())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation item updated successfully", item)
}

// Delete handles removing a line
func (h *QuotationItemHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation item deleted successfully", nil)
}
