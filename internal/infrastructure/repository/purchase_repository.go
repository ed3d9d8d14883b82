package repository

import (
	"context"
	"errors"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return dbFrom(ctx, r.db).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uint) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := dbFrom(ctx, r.db).First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := dbFrom(ctx, r.db).Scopes(ActiveScope).First(&purchase, "purchase_no = ?", purchaseNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	return dbFrom(ctx, r.db).Model(purchase).
		Select("supplier_name", "description", "total_amount", "paid_amount", "balance",
			"payment_status", "remarks", "purchase_date", "updated_at").
		Updates(purchase).Error
}

func (r *purchaseRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	// updated_at is left alone so a restore returns the row unchanged
	return dbFrom(ctx, r.db).Model(&entity.Purchase{}).
		Where("id = ?", id).
		UpdateColumn("is_deleted", deleted).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Purchase{}, "id = ?", id).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Purchase{}).
		Scopes(LifecycleScope(params.State), ContainsScope(params.Search, "purchase_no", "supplier_name", "description"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Order("created_at DESC, id DESC").
		Find(&purchases).Error

	return purchases, total, err
}
