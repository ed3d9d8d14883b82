package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// QuotationItemService handles single quotation line operations
type QuotationItemService struct {
	quotationRepo repository.QuotationRepository
	itemRepo      repository.QuotationItemRepository
}

// NewQuotationItemService creates a new quotation item service
func NewQuotationItemService(
	quotationRepo repository.QuotationRepository,
	itemRepo repository.QuotationItemRepository,
) *QuotationItemService {
	return &QuotationItemService{
		quotationRepo: quotationRepo,
		itemRepo:      itemRepo,
	}
}

// CreateItem adds a line to an editable quotation
func (s *QuotationItemService) CreateItem(ctx context.Context, quotationID uint, input QuotationItemInput) (*entity.QuotationItem, error) {
	var fields apperror.FieldErrors
	if quotationID == 0 {
		fields.Add("quotation_id", "is required")
	}
	input.validate(&fields, "")
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if _, err := editableQuotation(ctx, s.quotationRepo, quotationID); err != nil {
		return nil, err
	}

	item := input.toEntity(quotationID)
	if err := s.itemRepo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem retrieves a quotation line by ID
func (s *QuotationItemService) GetItem(ctx context.Context, id uint) (*entity.QuotationItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Quotation item")
	}
	return item, nil
}

// ListItems lists every quotation line
func (s *QuotationItemService) ListItems(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.QuotationItem], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.Limit, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListByQuotation returns the lines of a quotation given its id or quotation_no
func (s *QuotationItemService) ListByQuotation(ctx context.Context, ref string) ([]entity.QuotationItem, error) {
	ref = strings.TrimSpace(ref)

	var quotation *entity.Quotation
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		quotation, err = s.quotationRepo.GetByID(ctx, uint(id))
	} else {
		quotation, err = s.quotationRepo.GetByQuotationNo(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	items, err := s.itemRepo.GetByQuotationID(ctx, quotation.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.QuotationItem{}
	}
	return items, nil
}

// UpdateItem applies a partial change to one line of an editable quotation
func (s *QuotationItemService) UpdateItem(ctx context.Context, id uint, change QuotationItemChange) (*entity.QuotationItem, error) {
	change.ID = &id
	var fields apperror.FieldErrors
	change.validate(&fields, "")
	if err := fields.Err(); err != nil {
		return nil, err
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := editableQuotation(ctx, s.quotationRepo, item.QuotationID); err != nil {
		return nil, err
	}

	change.apply(item)
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes one line of an editable quotation
func (s *QuotationItemService) DeleteItem(ctx context.Context, id uint) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if _, err := editableQuotation(ctx, s.quotationRepo, item.QuotationID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}
