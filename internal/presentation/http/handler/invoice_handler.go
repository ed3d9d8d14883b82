package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService   *service.InvoiceService
	dashboardService *service.DashboardService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, dashboardService *service.DashboardService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:   invoiceService,
		dashboardService: dashboardService,
	}
}

// List handles listing invoices; ?state=deleted lists the trash
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, errInvalidQuery)
		return
	}
	page, err := paginationParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.DocumentFilterParams{
		Pagination: page,
		State:      enum.ParseRecordState(filter.State),
		Search:     filter.Search,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetByQuotationNo handles fetching the latest invoice raised from a quotation
func (h *InvoiceHandler) GetByQuotationNo(c *gin.Context) {
	invoice, err := h.invoiceService.GetByQuotationNo(c.Request.Context(), c.Param("quotation_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Search handles free-text invoice search
func (h *InvoiceHandler) Search(c *gin.Context) {
	invoices, err := h.invoiceService.SearchInvoices(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Draft handles previewing the conversion of a quotation
func (h *InvoiceHandler) Draft(c *gin.Context) {
	var vat *decimal.Decimal
	if raw := c.Query("vat"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError("Invalid vat"))
			return
		}
		vat = &v
	}

	draft, err := h.invoiceService.DraftFromQuotation(c.Request.Context(), c.Param("quotation_no"), vat)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice draft prepared successfully", draft)
}

// Create handles creating an invoice, converted or walk-in
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles the full invoice update
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// SoftDelete handles moving an invoice to the trash
func (h *InvoiceHandler) SoftDelete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.invoiceService.SoftDeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// Restore handles recovering a soft-deleted invoice
func (h *InvoiceHandler) Restore(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	invoice, err := h.invoiceService.RestoreInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice restored successfully", invoice)
}

// Purge handles permanently removing a soft-deleted invoice
func (h *InvoiceHandler) Purge(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.invoiceService.PurgeInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice permanently deleted", nil)
}

// SalesSummary handles the sales total over a date range
func (h *InvoiceHandler) SalesSummary(c *gin.Context) {
	var req request.SalesSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, errInvalidQuery)
		return
	}

	summary, err := h.dashboardService.SalesSummary(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}
