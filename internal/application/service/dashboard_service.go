package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/money"
	"github.com/shopspring/decimal"
)

// DateLayout is the format of summary date parameters
const DateLayout = "2006-01-02"

// DashboardService provides dashboard statistics and the sales summary
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// SalesSummary is the sales total over a date range plus the lifetime revenue
type SalesSummary struct {
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalInvoices int64           `json:"totalInvoices"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Quotations      map[string]int64 `json:"quotations"`
	TotalQuotations int64            `json:"total_quotations"`
	Invoices        int64            `json:"invoices"`
	Receivables     decimal.Decimal  `json:"receivables"`
	Purchases       int64            `json:"purchases"`
	Payables        decimal.Decimal  `json:"payables"`
}

// SalesSummary sums active invoices created between two inclusive dates
func (s *DashboardService) SalesSummary(ctx context.Context, startDate, endDate string) (*SalesSummary, error) {
	var fields apperror.FieldErrors
	from := parseDate(&fields, "startDate", startDate)
	to := parseDate(&fields, "endDate", endDate)
	if err := fields.Err(); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("endDate must not be before startDate")
	}

	result, err := s.analyticsRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &SalesSummary{
		StartDate:     from.Format(DateLayout),
		EndDate:       to.Format(DateLayout),
		TotalSales:    money.Round(result.TotalSales),
		TotalInvoices: result.TotalInvoices,
		TotalRevenue:  money.Round(result.TotalRevenue),
	}, nil
}

func parseDate(f *apperror.FieldErrors, field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		f.Add(field, "is required")
		return time.Time{}
	}
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		f.Add(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return t
}

// GetStats returns document counts and outstanding amounts
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.analyticsRepo.GetQuotationStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	receivables, err := s.analyticsRepo.GetReceivables(ctx)
	if err != nil {
		return nil, err
	}
	payables, err := s.analyticsRepo.GetPayables(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Quotations:  make(map[string]int64, len(counts)),
		Invoices:    receivables.Count,
		Receivables: money.Round(receivables.Outstanding),
		Purchases:   payables.Count,
		Payables:    money.Round(payables.Outstanding),
	}
	for status, n := range counts {
		stats.Quotations[status.String()] = n
		stats.TotalQuotations += n
	}
	return stats, nil
}
