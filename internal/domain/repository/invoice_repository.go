package repository

import (
	"context"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create inserts the invoice together with its items
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID returns the invoice in either lifecycle state
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	// GetLatestByQuotationNo returns the newest active invoice raised from the quotation
	GetLatestByQuotationNo(ctx context.Context, quotationNo string) (*entity.Invoice, error)
	// Search matches active invoices by exact invoice_no or a fragment of project name or TRN
	Search(ctx context.Context, term string, limit int) ([]entity.Invoice, error)
	// Update writes the header columns only
	Update(ctx context.Context, invoice *entity.Invoice) error
	SetDeleted(ctx context.Context, id uint, deleted bool) error
	Delete(ctx context.Context, id uint) error
	// DetachQuotation clears quotation_id on every invoice raised from the quotation
	DetachQuotation(ctx context.Context, quotationID uint) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Invoice, int64, error)
}

// DocumentFilterParams contains filtering parameters for soft-deletable documents
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	State      enum.RecordState
	Search     string
}

// InvoiceItemRepository defines the interface for invoice item data operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	GetByID(ctx context.Context, id uint) (*entity.InvoiceItem, error)
	GetByInvoiceID(ctx context.Context, invoiceID uint) ([]entity.InvoiceItem, error)
	Update(ctx context.Context, item *entity.InvoiceItem) error
	// DeleteExcept removes the items of an invoice whose ids are not in keep
	DeleteExcept(ctx context.Context, invoiceID uint, keep []uint) error
	DeleteByInvoiceID(ctx context.Context, invoiceID uint) error
	// List pages through the items of active invoices
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.InvoiceItem, int64, error)
}
