package repository

import (
	"context"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SalesSummaryResult aggregates active invoices over a date range
type SalesSummaryResult struct {
	TotalSales    decimal.Decimal
	TotalInvoices int64
	TotalRevenue  decimal.Decimal
}

// OutstandingResult counts active documents and sums what is still owed on them
type OutstandingResult struct {
	Count       int64
	Outstanding decimal.Decimal
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetSalesSummary sums total_with_vat of active invoices created between
	// from and to (both inclusive dates) plus the lifetime total
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)

	// GetQuotationStatusCounts returns the number of quotations per status
	GetQuotationStatusCounts(ctx context.Context) (map[enum.QuotationStatus]int64, error)

	// GetReceivables sums positive remaining over active invoices
	GetReceivables(ctx context.Context) (*OutstandingResult, error)

	// GetPayables sums positive balance over active purchases
	GetPayables(ctx context.Context) (*OutstandingResult, error)
}
