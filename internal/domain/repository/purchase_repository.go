package repository

import (
	"context"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	// GetByID returns the purchase in either lifecycle state
	GetByID(ctx context.Context, id uint) (*entity.Purchase, error)
	// GetByPurchaseNo returns the active purchase with that number
	GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	SetDeleted(ctx context.Context, id uint, deleted bool) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Purchase, int64, error)
}
