package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
)

// InvoiceItemHandler handles invoice line HTTP requests
type InvoiceItemHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceItemHandler creates a new invoice item handler
func NewInvoiceItemHandler(invoiceService *service.InvoiceService) *InvoiceItemHandler {
	return &InvoiceItemHandler{invoiceService: invoiceService}
}

// List handles listing the lines of active invoices
func (h *InvoiceItemHandler) List(c *gin.Context) {
	page, err := paginationParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.ListInvoiceItems(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoice items retrieved successfully", result)
}

// Get handles getting an invoice line by ID
func (h *InvoiceItemHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.invoiceService.GetInvoiceItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice item retrieved successfully", item)
}

// Create handles adding a line to an invoice
func (h *InvoiceItemHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	item, err := h.invoiceService.CreateInvoiceItem(c.Request.Context(), req.InvoiceID, req.InvoiceItemRequest.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice item created successfully", item)
}

// Update handles a partial line update
func (h *InvoiceItemHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.InvoiceItemChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	item, err := h.invoiceService.UpdateInvoiceItem(c.Request.Context(), id, req.ToChange())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice item updated successfully", item)
}

// Delete handles removing a line
func (h *InvoiceItemHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.invoiceService.DeleteInvoiceItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice item deleted successfully", nil)
}
