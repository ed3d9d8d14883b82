package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/sangkips/salesdocs-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	tx            repository.Transactor
	quotationRepo repository.QuotationRepository
	itemRepo      repository.QuotationItemRepository
	invoiceRepo   repository.InvoiceRepository
	customers     *CustomerService
	settings      DocumentSettings
	keys          utils.DocumentNoGenerator
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	tx repository.Transactor,
	quotationRepo repository.QuotationRepository,
	itemRepo repository.QuotationItemRepository,
	invoiceRepo repository.InvoiceRepository,
	customers *CustomerService,
	settings DocumentSettings,
) *QuotationService {
	return &QuotationService{
		tx:            tx,
		quotationRepo: quotationRepo,
		itemRepo:      itemRepo,
		invoiceRepo:   invoiceRepo,
		customers:     customers,
		settings:      settings.normalized(),
		keys:          utils.PrefixedGenerator{Prefix: utils.QuotationNoPrefix},
	}
}

// SetKeyGenerator replaces the quotation number generator
func (s *QuotationService) SetKeyGenerator(keys utils.DocumentNoGenerator) {
	s.keys = keys
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	QuotationNo string
	Customer    CustomerInput
	ProjectName string
	Status      *enum.QuotationStatus
	Items       []QuotationItemInput
}

// QuotationItemInput represents a line item input
type QuotationItemInput struct {
	Description string
	Size        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

func (in QuotationItemInput) validate(f *apperror.FieldErrors, prefix string) {
	checkQuantity(f, prefix+"quantity", in.Quantity)
	checkAmount(f, prefix+"unit_price", in.UnitPrice)
}

func (in QuotationItemInput) toEntity(quotationID uint) entity.QuotationItem {
	return entity.QuotationItem{
		QuotationID: quotationID,
		Description: strings.TrimSpace(in.Description),
		Size:        strings.TrimSpace(in.Size),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
	}
}

// CreateQuotation creates a quotation with its items and, when needed, its customer
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	var fields apperror.FieldErrors
	for i, item := range input.Items {
		item.validate(&fields, itemField("quotation_items", i))
	}
	if input.Status != nil && !input.Status.IsValid() {
		fields.Add("status", "is invalid")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var created *entity.Quotation
	err := createWithKey(ctx, strings.TrimSpace(input.QuotationNo), s.keys, s.settings.KeyAttempts, "Quotation",
		func(ctx context.Context, key string) error {
			return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				customer, err := s.customers.Resolve(ctx, input.Customer, nil)
				if err != nil {
					return err
				}

				now := time.Now()
				quotation := &entity.Quotation{
					QuotationNo: key,
					CustomerID:  customer.ID,
					ProjectName: strings.TrimSpace(input.ProjectName),
					ValidUntil:  now.AddDate(0, 0, s.settings.QuotationValidDays),
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if input.Status != nil {
					quotation.Status = *input.Status
				}
				for _, item := range input.Items {
					quotation.Items = append(quotation.Items, item.toEntity(0))
				}

				if err := s.quotationRepo.Create(ctx, quotation); err != nil {
					return err
				}
				created = quotation
				return nil
			})
		})
	if err != nil {
		return nil, err
	}

	return s.GetQuotation(ctx, created.ID)
}

// GetQuotation retrieves a quotation with its customer and items
func (s *QuotationService) GetQuotation(ctx context.Context, id uint) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// GetByQuotationNo retrieves a quotation by its business key
func (s *QuotationService) GetByQuotationNo(ctx context.Context, quotationNo string) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByQuotationNo(ctx, strings.TrimSpace(quotationNo))
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations lists quotations with filtering
func (s *QuotationService) ListQuotations(ctx context.Context, params *repository.QuotationFilterParams) (*pagination.PaginatedResult[entity.Quotation], error) {
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}

// UpdateQuotationInput is a partial update: nil fields are left untouched.
// Items with an ID are updated, items without one are inserted.
type UpdateQuotationInput struct {
	ProjectName    *string
	Items          []QuotationItemChange
	DeletedItemIDs []uint
}

// QuotationItemChange represents a partial change to a quotation line
type QuotationItemChange struct {
	ID          *uint
	Description *string
	Size        *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

func (c QuotationItemChange) validate(f *apperror.FieldErrors, prefix string) {
	if c.ID == nil {
		if c.Quantity == nil {
			f.Add(prefix+"quantity", "is required")
		}
		if c.UnitPrice == nil {
			f.Add(prefix+"unit_price", "is required")
		}
	}
	if c.Quantity != nil {
		checkQuantity(f, prefix+"quantity", *c.Quantity)
	}
	if c.UnitPrice != nil {
		checkAmount(f, prefix+"unit_price", *c.UnitPrice)
	}
}

func (c QuotationItemChange) apply(item *entity.QuotationItem) {
	if c.Description != nil {
		item.Description = strings.TrimSpace(*c.Description)
	}
	if c.Size != nil {
		item.Size = strings.TrimSpace(*c.Size)
	}
	if c.Quantity != nil {
		item.Quantity = *c.Quantity
	}
	if c.UnitPrice != nil {
		item.UnitPrice = *c.UnitPrice
	}
}

// UpdateQuotation applies a header and item diff in one transaction
func (s *QuotationService) UpdateQuotation(ctx context.Context, id uint, input *UpdateQuotationInput) (*entity.Quotation, error) {
	var fields apperror.FieldErrors
	for i, change := range input.Items {
		change.validate(&fields, itemField("quotation_items", i))
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quotation, err := editableQuotation(ctx, s.quotationRepo, id)
		if err != nil {
			return err
		}

		if input.ProjectName != nil {
			quotation.ProjectName = strings.TrimSpace(*input.ProjectName)
			if err := s.quotationRepo.Update(ctx, quotation); err != nil {
				return err
			}
		}

		owned := make(map[uint]entity.QuotationItem, len(quotation.Items))
		for _, item := range quotation.Items {
			owned[item.ID] = item
		}

		if _, err := s.itemRepo.DeleteByIDs(ctx, id, input.DeletedItemIDs); err != nil {
			return err
		}
		for _, deleted := range input.DeletedItemIDs {
			delete(owned, deleted)
		}

		for _, change := range input.Items {
			if change.ID == nil {
				item := entity.QuotationItem{QuotationID: id}
				change.apply(&item)
				if err := s.itemRepo.Create(ctx, &item); err != nil {
					return err
				}
				continue
			}

			item, ok := owned[*change.ID]
			if !ok {
				return apperror.NewNotFoundError("Quotation item")
			}
			change.apply(&item)
			if err := s.itemRepo.Update(ctx, &item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuotation(ctx, id)
}

// UpdateStatus moves a quotation to any status
func (s *QuotationService) UpdateStatus(ctx context.Context, id uint, status enum.QuotationStatus) (*entity.Quotation, error) {
	if !status.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "status", Message: "is invalid"}})
	}

	if _, err := s.GetQuotation(ctx, id); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.GetQuotation(ctx, id)
}

// DeleteQuotation hard-deletes a quotation with its items. Invoices raised
// from it keep their quotation_no but lose the link, and the customer goes
// too when nothing else refers to it.
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		quotation, err := s.quotationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if quotation == nil {
			return apperror.NewNotFoundError("Quotation")
		}

		if err := s.itemRepo.DeleteByQuotationID(ctx, id); err != nil {
			return err
		}
		if err := s.invoiceRepo.DetachQuotation(ctx, id); err != nil {
			return err
		}
		if err := s.quotationRepo.Delete(ctx, id); err != nil {
			return err
		}

		_, err = s.customers.removeIfOrphaned(ctx, quotation.CustomerID)
		return err
	})
}

// editableQuotation loads a quotation and refuses it once approved or rejected
func editableQuotation(ctx context.Context, repo repository.QuotationRepository, id uint) (*entity.Quotation, error) {
	quotation, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if quotation.Status.IsLocked() {
		return nil, apperror.NewConflictError("Quotation is " + quotation.Status.String() + " and can no longer be edited")
	}
	return quotation, nil
}

func itemField(list string, i int) string {
	return list + "[" + strconv.Itoa(i) + "]."
}
