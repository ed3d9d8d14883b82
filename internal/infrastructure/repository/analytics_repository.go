package repository

import (
	"context"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummaryResult, error) {
	var ranged struct {
		TotalSales    decimal.Decimal
		TotalInvoices int64
	}
	err := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(ActiveScope).
		Select("COALESCE(SUM(total_with_vat), 0) AS total_sales, COUNT(*) AS total_invoices").
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Scan(&ranged).Error
	if err != nil {
		return nil, err
	}

	var lifetime struct {
		TotalRevenue decimal.Decimal
	}
	err = dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(ActiveScope).
		Select("COALESCE(SUM(total_with_vat), 0) AS total_revenue").
		Scan(&lifetime).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.SalesSummaryResult{
		TotalSales:    ranged.TotalSales,
		TotalInvoices: ranged.TotalInvoices,
		TotalRevenue:  lifetime.TotalRevenue,
	}, nil
}

func (r *analyticsRepository) GetQuotationStatusCounts(ctx context.Context) (map[enum.QuotationStatus]int64, error) {
	var rows []struct {
		Status enum.QuotationStatus
		Count  int64
	}
	err := dbFrom(ctx, r.db).Model(&entity.Quotation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.QuotationStatus]int64, len(enum.QuotationStatuses()))
	for _, s := range enum.QuotationStatuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepository) GetReceivables(ctx context.Context) (*domainRepo.OutstandingResult, error) {
	return r.outstanding(ctx, &entity.Invoice{}, "remaining")
}

func (r *analyticsRepository) GetPayables(ctx context.Context) (*domainRepo.OutstandingResult, error) {
	return r.outstanding(ctx, &entity.Purchase{}, "balance")
}

// outstanding counts active rows and sums the positive part of column
func (r *analyticsRepository) outstanding(ctx context.Context, model interface{}, column string) (*domainRepo.OutstandingResult, error) {
	var result struct {
		Count       int64
		Outstanding decimal.Decimal
	}
	err := dbFrom(ctx, r.db).Model(model).
		Scopes(ActiveScope).
		Select("COUNT(*) AS count, COALESCE(SUM(CASE WHEN " + column + " > 0 THEN " + column + " ELSE 0 END), 0) AS outstanding").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.OutstandingResult{Count: result.Count, Outstanding: result.Outstanding}, nil
}
