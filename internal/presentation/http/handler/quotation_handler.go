package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// List handles listing quotations
func (h *QuotationHandler) List(c *gin.Context) {
	var filter request.QuotationFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, errInvalidQuery)
		return
	}
	page, err := paginationParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.QuotationFilterParams{
		Pagination: page,
		Search:     filter.Search,
		CustomerID: filter.CustomerID,
	}
	if filter.Status != "" {
		status, ok := enum.ParseQuotationStatus(filter.Status)
		if !ok {
			response.Error(c, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "is invalid"}}))
			return
		}
		params.Status = &status
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles getting a quotation by ID
func (h *QuotationHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// GetByQuotationNo handles the business-key lookup
func (h *QuotationHandler) GetByQuotationNo(c *gin.Context) {
	quotation, err := h.quotationService.GetByQuotationNo(c.Request.Context(), c.Param("quotation_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Create handles creating a quotation
func (h *QuotationHandler) Create(c *gin.Context) {
	var req request.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// Update handles the quotation diff update
func (h *QuotationHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// UpdateStatus handles a quotation status change
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	status, ok := enum.ParseQuotationStatus(req.Status)
	if !ok {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "is invalid"}}))
		return
	}

	quotation, err := h.quotationService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated successfully", quotation)
}

// Delete handles deleting a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation deleted successfully", nil)
}
