package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, err := paginationParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), page, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// SearchByContact handles the email-or-phone lookup
func (h *CustomerHandler) SearchByContact(c *gin.Context) {
	var req request.CustomerSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, errInvalidQuery)
		return
	}

	customer, err := h.customerService.FindByContact(c.Request.Context(), req.Email, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}
