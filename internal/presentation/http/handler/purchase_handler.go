package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases; ?state=deleted lists the trash
func (h *PurchaseHandler) List(c *gin.Context) {
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

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Get handles getting a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// GetByPurchaseNo handles the business-key lookup
func (h *PurchaseHandler) GetByPurchaseNo(c *gin.Context) {
	purchase, err := h.purchaseService.GetByPurchaseNo(c.Request.Context(), c.Param("purchase_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Create handles recording a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	purchaseDate, err := parseDocumentDate("purchase_date", req.PurchaseDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		PurchaseNo:   req.PurchaseNo,
		SupplierName: req.SupplierName,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		PaidAmount:   req.PaidAmount,
		Remarks:      req.Remarks,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Update handles a partial purchase update
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	purchaseDate, err := parseDocumentDate("purchase_date", req.PurchaseDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.UpdatePurchase(c.Request.Context(), id, &service.UpdatePurchaseInput{
		SupplierName: req.SupplierName,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		PaidAmount:   req.PaidAmount,
		Remarks:      req.Remarks,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase updated successfully", purchase)
}

// SoftDelete handles moving a purchase to the trash
func (h *PurchaseHandler) SoftDelete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.purchaseService.SoftDeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase deleted successfully", nil)
}

// Restore handles recovering a soft-deleted purchase
func (h *PurchaseHandler) Restore(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.purchaseService.RestorePurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase restored successfully", purchase)
}

// Purge handles permanently removing a soft-deleted purchase
func (h *PurchaseHandler) Purge(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.purchaseService.PurgePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase permanently deleted", nil)
}
