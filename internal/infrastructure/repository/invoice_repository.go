package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Omit("Customer").Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).Scopes(withItems).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetLatestByQuotationNo(ctx context.Context, quotationNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Scopes(ActiveScope, withItems).
		Where("quotation_no = ?", quotationNo).
		Order("created_at DESC, id DESC").
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Search(ctx context.Context, term string, limit int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	term = strings.TrimSpace(term)

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{}).Scopes(ActiveScope)
	if cond, args := containsCondition(term, "project_name", "customer_trn"); cond != "" {
		query = query.Where("(invoice_no = ? OR "+cond+")", append([]interface{}{term}, args...)...)
	}

	err := query.Scopes(withItems).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return dbFrom(ctx, r.db).Model(invoice).
		Select("customer_id", "customer_trn", "project_name", "total_amount", "flat_discount",
			"discount", "vat", "total_with_vat", "received", "remaining", "payment_status", "updated_at").
		Updates(invoice).Error
}

func (r *invoiceRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	// updated_at is left alone so a restore returns the row unchanged
	return dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ?", id).
		UpdateColumn("is_deleted", deleted).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) DetachQuotation(ctx context.Context, quotationID uint) error {
	return dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("quotation_id = ?", quotationID).
		UpdateColumn("quotation_id", nil).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(LifecycleScope(params.State), ContainsScope(params.Search, "invoice_no", "project_name", "customer_trn"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Find(&invoices).Error

	return invoices, total, err
}

type invoiceItemRepository struct {
	db *gorm.DB
}

// NewInvoiceItemRepository creates a new invoice item repository
func NewInvoiceItemRepository(db *gorm.DB) domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{db: db}
}

func (r *invoiceItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *invoiceItemRepository) GetByID(ctx context.Context, id uint) (*entity.InvoiceItem, error) {
	var item entity.InvoiceItem
	err := dbFrom(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *invoiceItemRepository) GetByInvoiceID(ctx context.Context, invoiceID uint) ([]entity.InvoiceItem, error) {
	var items []entity.InvoiceItem
	err := dbFrom(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *invoiceItemRepository) Update(ctx context.Context, item *entity.InvoiceItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *invoiceItemRepository) DeleteExcept(ctx context.Context, invoiceID uint, keep []uint) error {
	query := dbFrom(ctx, r.db).Where("invoice_id = ?", invoiceID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&entity.InvoiceItem{}).Error
}

func (r *invoiceItemRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.InvoiceItem{}, "invoice_id = ?", invoiceID).Error
}

func (r *invoiceItemRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.InvoiceItem, int64, error) {
	var items []entity.InvoiceItem
	var total int64

	active := dbFrom(ctx, r.db).Model(&entity.Invoice{}).Select("id").Scopes(ActiveScope)
	query := dbFrom(ctx, r.db).Model(&entity.InvoiceItem{}).Where("invoice_id IN (?)", active)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.Limit).
		Order("id ASC").
		Find(&items).Error

	return items, total, err
}
