package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/config"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Quotation     *handler.QuotationHandler
	QuotationItem *handler.QuotationItemHandler
	Invoice       *handler.InvoiceHandler
	InvoiceItem   *handler.InvoiceItemHandler
	Purchase      *handler.PurchaseHandler
	Customer      *handler.CustomerHandler
	Dashboard     *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; the caller owns it and stops it on shutdown
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes on the root and under /api/v1.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	registerAPIRoutes(router, h, idempotent)
	registerAPIRoutes(router.Group("/api/v1"), h, idempotent)

	return router
}

func registerAPIRoutes(r gin.IRouter, h *Handlers, idempotent gin.HandlerFunc) {
	r.GET("/dashboard", h.Dashboard.GetStats)

	registerQuotationRoutes(r, h, idempotent)
	registerQuotationItemRoutes(r, h)
	registerInvoiceRoutes(r, h, idempotent)
	registerInvoiceItemRoutes(r, h)
	registerPurchaseRoutes(r, h, idempotent)
	registerCustomerRoutes(r, h)
}

func registerQuotationRoutes(r gin.IRouter, h *Handlers, idempotent gin.HandlerFunc) {
	quotations := r.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", idempotent, h.Quotation.Create)
		quotations.GET("/search/:quotation_no", h.Quotation.GetByQuotationNo)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/update/:id", h.Quotation.Update)
		quotations.PUT("/:id/status", h.Quotation.UpdateStatus)
		quotations.DELETE("/:id", h.Quotation.Delete)
	}
}

func registerQuotationItemRoutes(r gin.IRouter, h *Handlers) {
	items := r.Group("/quotation-items")
	{
		items.GET("", h.QuotationItem.List)
		items.POST("", h.QuotationItem.Create)
		items.GET("/quotation-items/:quotation_id", h.QuotationItem.ListByQuotation)
		items.GET("/:id", h.QuotationItem.Get)
		items.PUT("/:id", h.QuotationItem.Update)
		items.DELETE("/:id", h.QuotationItem.Delete)
	}
}

func registerInvoiceRoutes(r gin.IRouter, h *Handlers, idempotent gin.HandlerFunc) {
	invoices := r.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", idempotent, h.Invoice.Create)
		invoices.GET("/invoice/search", h.Invoice.Search)
		invoices.GET("/invoice/:quotation_no", h.Invoice.GetByQuotationNo)
		invoices.GET("/draft/:quotation_no", h.Invoice.Draft)
		invoices.GET("/sale/summary", h.Invoice.SalesSummary)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/invoice/:id", h.Invoice.Update)
		invoices.PUT("/recover-invoice/:id", h.Invoice.Restore)
		invoices.DELETE("/remove-invoice/:id", h.Invoice.Purge)
		invoices.DELETE("/:id", h.Invoice.SoftDelete)
	}
}

func registerInvoiceItemRoutes(r gin.IRouter, h *Handlers) {
	items := r.Group("/invoice-items")
	{
		items.GET("", h.InvoiceItem.List)
		items.POST("", h.InvoiceItem.Create)
		items.GET("/:id", h.InvoiceItem.Get)
		items.PUT("/:id", h.InvoiceItem.Update)
		items.DELETE("/:id", h.InvoiceItem.Delete)
	}
}

func registerPurchaseRoutes(r gin.IRouter, h *Handlers, idempotent gin.HandlerFunc) {
	purchases := r.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotent, h.Purchase.Create)
		purchases.GET("/search/:purchase_no", h.Purchase.GetByPurchaseNo)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PUT("/restore/:id", h.Purchase.Restore)
		purchases.PUT("/:id", h.Purchase.Update)
		purchases.DELETE("/delete/:id", h.Purchase.Purge)
		purchases.DELETE("/:id", h.Purchase.SoftDelete)
	}
}

func registerCustomerRoutes(r gin.IRouter, h *Handlers) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/customer/search-customer", h.Customer.SearchByContact)
		customers.GET("/:id", h.Customer.Get)
	}
}
