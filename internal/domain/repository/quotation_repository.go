package repository

import (
	"context"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	// Create inserts the quotation together with its items
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uint) (*entity.Quotation, error)
	GetByQuotationNo(ctx context.Context, quotationNo string) (*entity.Quotation, error)
	// Update writes the header columns only; items, quotation_no and valid_until are left alone
	Update(ctx context.Context, quotation *entity.Quotation) error
	UpdateStatus(ctx context.Context, id uint, status enum.QuotationStatus) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uint
}

// QuotationItemRepository defines the interface for quotation item data operations
type QuotationItemRepository interface {
	Create(ctx context.Context, item *entity.QuotationItem) error
	GetByID(ctx context.Context, id uint) (*entity.QuotationItem, error)
	GetByQuotationID(ctx context.Context, quotationID uint) ([]entity.QuotationItem, error)
	Update(ctx context.Context, item *entity.QuotationItem) error
	Delete(ctx context.Context, id uint) error
	// DeleteByIDs removes the listed items of one quotation and reports how many went
	DeleteByIDs(ctx context.Context, quotationID uint, ids []uint) (int64, error)
	DeleteByQuotationID(ctx context.Context, quotationID uint) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.QuotationItem, int64, error)
}
