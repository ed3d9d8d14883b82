package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/sangkips/salesdocs-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	tx           repository.Transactor
	purchaseRepo repository.PurchaseRepository
	settings     DocumentSettings
	keys         utils.DocumentNoGenerator
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx repository.Transactor,
	purchaseRepo repository.PurchaseRepository,
	settings DocumentSettings,
) *PurchaseService {
	return &PurchaseService{
		tx:           tx,
		purchaseRepo: purchaseRepo,
		settings:     settings.normalized(),
		keys:         utils.PrefixedGenerator{Prefix: utils.PurchaseNoPrefix},
	}
}

// SetKeyGenerator replaces the purchase number generator
func (s *PurchaseService) SetKeyGenerator(keys utils.DocumentNoGenerator) {
	s.keys = keys
}

// CreatePurchaseInput represents the input for creating a purchase
type CreatePurchaseInput struct {
	PurchaseNo   string
	SupplierName string
	Description  string
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	Remarks      string
	PurchaseDate *time.Time
}

// CreatePurchase records a supplier purchase
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	var fields apperror.FieldErrors
	if strings.TrimSpace(input.SupplierName) == "" {
		fields.Add("supplier_name", "is required")
	}
	checkAmount(&fields, "total_amount", input.TotalAmount)
	checkAmount(&fields, "paid_amount", input.PaidAmount)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}

	var created *entity.Purchase
	err := createWithKey(ctx, strings.TrimSpace(input.PurchaseNo), s.keys, s.settings.KeyAttempts, "Purchase",
		func(ctx context.Context, key string) error {
			purchase := &entity.Purchase{
				PurchaseNo:   key,
				SupplierName: strings.TrimSpace(input.SupplierName),
				Description:  strings.TrimSpace(input.Description),
				TotalAmount:  input.TotalAmount,
				PaidAmount:   input.PaidAmount,
				Remarks:      strings.TrimSpace(input.Remarks),
				PurchaseDate: purchaseDate,
			}
			if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
				return err
			}
			created = purchase
			return nil
		})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetPurchase retrieves a purchase in either lifecycle state
func (s *PurchaseService) GetPurchase(ctx context.Context, id uint) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// GetByPurchaseNo retrieves an active purchase by its business key
func (s *PurchaseService) GetByPurchaseNo(ctx context.Context, purchaseNo string) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByPurchaseNo(ctx, strings.TrimSpace(purchaseNo))
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists active or soft-deleted purchases
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// UpdatePurchaseInput is a partial update: nil fields are left untouched
type UpdatePurchaseInput struct {
	SupplierName *string
	Description  *string
	TotalAmount  *decimal.Decimal
	PaidAmount   *decimal.Decimal
	Remarks      *string
	PurchaseDate *time.Time
}

// UpdatePurchase applies a partial update; balance and status are re-derived
func (s *PurchaseService) UpdatePurchase(ctx context.Context, id uint, input *UpdatePurchaseInput) (*entity.Purchase, error) {
	var fields apperror.FieldErrors
	if input.SupplierName != nil && strings.TrimSpace(*input.SupplierName) == "" {
		fields.Add("supplier_name", "must not be empty")
	}
	if input.TotalAmount != nil {
		checkAmount(&fields, "total_amount", *input.TotalAmount)
	}
	if input.PaidAmount != nil {
		checkAmount(&fields, "paid_amount", *input.PaidAmount)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var updated *entity.Purchase
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		purchase, err := s.GetPurchase(ctx, id)
		if err != nil {
			return err
		}
		if purchase.IsDeleted {
			return apperror.NewConflictError("Purchase is deleted; restore it before editing")
		}

		if input.SupplierName != nil {
			purchase.SupplierName = strings.TrimSpace(*input.SupplierName)
		}
		if input.Description != nil {
			purchase.Description = strings.TrimSpace(*input.Description)
		}
		if input.TotalAmount != nil {
			purchase.TotalAmount = *input.TotalAmount
		}
		if input.PaidAmount != nil {
			purchase.PaidAmount = *input.PaidAmount
		}
		if input.Remarks != nil {
			purchase.Remarks = strings.TrimSpace(*input.Remarks)
		}
		if input.PurchaseDate != nil {
			purchase.PurchaseDate = *input.PurchaseDate
		}
		purchase.Settle()

		if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
			return err
		}
		updated = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDeletePurchase moves an active purchase to the trash
func (s *PurchaseService) SoftDeletePurchase(ctx context.Context, id uint) error {
	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return err
	}
	if purchase.IsDeleted {
		return apperror.NewConflictError("Purchase is already deleted")
	}
	return s.purchaseRepo.SetDeleted(ctx, id, true)
}

// RestorePurchase brings a soft-deleted purchase back
func (s *PurchaseService) RestorePurchase(ctx context.Context, id uint) (*entity.Purchase, error) {
	purchase, err := s.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !purchase.IsDeleted {
		return nil, apperror.NewConflictError("Purchase is not deleted")
	}
	if err := s.purchaseRepo.SetDeleted(ctx, id, false); err != nil {
		return nil, err
	}
	return s.GetPurchase(ctx, id)
}

// PurgePurchase permanently removes a soft-deleted purchase
func (s *PurchaseService) PurgePurchase(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		purchase, err := s.GetPurchase(ctx, id)
		if err != nil {
			return err
		}
		if !purchase.IsDeleted {
			return apperror.NewConflictError("Only a deleted purchase can be purged")
		}
		return s.purchaseRepo.Delete(ctx, id)
	})
}
