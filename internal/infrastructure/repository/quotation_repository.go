package repository

import (
	"context"
	"errors"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return dbFrom(ctx, r.db).Omit("Customer").Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uint) (*entity.Quotation, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *quotationRepository) GetByQuotationNo(ctx context.Context, quotationNo string) (*entity.Quotation, error) {
	return r.first(ctx, "quotation_no = ?", quotationNo)
}

func (r *quotationRepository) first(ctx context.Context, cond string, arg interface{}) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&quotation, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) Update(ctx context.Context, quotation *entity.Quotation) error {
	return dbFrom(ctx, r.db).Model(quotation).
		Select("customer_id", "project_name", "updated_at").
		Omit(clause.Associations).
		Updates(quotation).Error
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id uint, status enum.QuotationStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Quotation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quotationRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Quotation{}, "id = ?", id).Error
}

func (r *quotationRepository) List(ctx context.Context, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Quotation{})

	if cond, args := containsCondition(params.Search, "quotation_no", "project_name"); cond != "" {
		nameCond, nameArgs := containsCondition(params.Search, "name")
		customers := dbFrom(ctx, r.db).Model(&entity.Customer{}).
			Select("id").
			Where(nameCond, nameArgs...)
		query = query.Where("("+cond+" OR customer_id IN (?))", append(args, customers)...)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&quotations).Error

	return quotations, total, err
}

type quotationItemRepository struct {
	db *gorm.DB
}

// NewQuotationItemRepository creates a new quotation item repository
func NewQuotationItemRepository(db *gorm.DB) domainRepo.QuotationItemRepository {
	return &quotationItemRepository{db: db}
}

func (r *quotationItemRepository) Create(ctx context.Context, item *entity.QuotationItem) error {
	return dbFrom(ctx, r.db).Create(item).Error
}

func (r *quotationItemRepository) GetByID(ctx context.Context, id uint) (*entity.QuotationItem, error) {
	var item entity.QuotationItem
	err := dbFrom(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *quotationItemRepository) GetByQuotationID(ctx context.Context, quotationID uint) ([]entity.QuotationItem, error) {
	var items []entity.QuotationItem
	err := dbFrom(ctx, r.db).
		Where("quotation_id = ?", quotationID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *quotationItemRepository) Update(ctx context.Context, item *entity.QuotationItem) error {
	return dbFrom(ctx, r.db).Save(item).Error
}

func (r *quotationItemRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.QuotationItem{}, "id = ?", id).Error
}

func (r *quotationItemRepository) DeleteByIDs(ctx context.Context, quotationID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := dbFrom(ctx, r.db).
		Where("quotation_id = ? AND id IN ?", quotationID, ids).
		Delete(&entity.QuotationItem{})
	return result.RowsAffected, result.Error
}

func (r *quotationItemRepository) DeleteByQuotationID(ctx context.Context, quotationID uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.QuotationItem{}, "quotation_id = ?", quotationID).Error
}

func (r *quotationItemRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.QuotationItem, int64, error) {
	var items []entity.QuotationItem
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.QuotationItem{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.Limit).
		Order("id ASC").
		Find(&items).Error

	return items, total, err
}
