package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdocs-api/internal/application/service"
	"github.com/sangkips/salesdocs-api/internal/config"
	"github.com/sangkips/salesdocs-api/internal/infrastructure/database"
	"github.com/sangkips/salesdocs-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdocs-api/internal/presentation/http/routes"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	customerRepo := repository.NewCustomerRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	quotationItemRepo := repository.NewQuotationItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	settings := service.DocumentSettings{
		QuotationValidDays: cfg.Document.QuotationValidDays,
		DefaultVAT:         decimal.NewFromFloat(cfg.Document.DefaultVAT),
		KeyAttempts:        cfg.Document.KeyAttempts,
	}

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	quotationService := service.NewQuotationService(transactor, quotationRepo, quotationItemRepo, invoiceRepo, customerService, settings)
	quotationItemService := service.NewQuotationItemService(quotationRepo, quotationItemRepo)
	invoiceService := service.NewInvoiceService(transactor, invoiceRepo, invoiceItemRepo, quotationRepo, customerService, settings)
	purchaseService := service.NewPurchaseService(transactor, purchaseRepo, settings)
	dashboardService := service.NewDashboardService(analyticsRepo)

	handlers := &routes.Handlers{
		Quotation:     handler.NewQuotationHandler(quotationService),
		QuotationItem: handler.NewQuotationItemHandler(quotationItemService),
		Invoice:       handler.NewInvoiceHandler(invoiceService, dashboardService),
		InvoiceItem:   handler.NewInvoiceItemHandler(invoiceService),
		Purchase:      handler.NewPurchaseHandler(purchaseService),
		Customer:      handler.NewCustomerHandler(customerService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFrom(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, database driver: %s", cfg.App.Env, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	rateLimiter.Stop()

	if err := database.Close(db); err != nil {
		log.Printf("Failed to close database: %v", err)
	}

	log.Println("Server exited")
}
