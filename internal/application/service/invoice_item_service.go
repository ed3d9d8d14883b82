package service

import (
	"context"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// Single-line operations on invoices. Each one rewrites the parent header in
// the same transaction.

// ListInvoiceItems lists the lines of active invoices
func (s *InvoiceService) ListInvoiceItems(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.InvoiceItem], error) {
	items, total, err := s.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.Limit, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// GetInvoiceItem retrieves an invoice line by ID
func (s *InvoiceService) GetInvoiceItem(ctx context.Context, id uint) (*entity.InvoiceItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Invoice item")
	}
	return item, nil
}

// CreateInvoiceItem adds a line to an active invoice
func (s *InvoiceService) CreateInvoiceItem(ctx context.Context, invoiceID uint, input InvoiceItemInput) (*entity.InvoiceItem, error) {
	var fields apperror.FieldErrors
	if invoiceID == 0 {
		fields.Add("invoice_id", "is required")
	}
	input.validate(&fields, "")
	if err := fields.Err(); err != nil {
		return nil, err
	}

	added := InvoiceItemChange{
		Description: &input.Description,
		Quantity:    &input.Quantity,
		UnitPrice:   &input.UnitPrice,
		Discount:    &input.Discount,
		VAT:         input.VAT,
	}

	var created entity.InvoiceItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.editableInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		items, err := s.rewriteItems(ctx, invoice, append(keepItems(invoice.Items), added))
		if err != nil {
			return err
		}
		created = items[len(items)-1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInvoiceItem applies a partial change to one line of an active invoice
func (s *InvoiceService) UpdateInvoiceItem(ctx context.Context, id uint, change InvoiceItemChange) (*entity.InvoiceItem, error) {
	change.ID = &id
	var fields apperror.FieldErrors
	change.validate(&fields, "")
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var updated entity.InvoiceItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.itemInvoice(ctx, id)
		if err != nil {
			return err
		}

		changes := keepItems(invoice.Items)
		for i := range changes {
			if *changes[i].ID == id {
				changes[i] = change
			}
		}
		items, err := s.rewriteItems(ctx, invoice, changes)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].ID == id {
				updated = items[i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInvoiceItem removes one line of an active invoice. The last line
// cannot go; delete the invoice instead.
func (s *InvoiceService) DeleteInvoiceItem(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.itemInvoice(ctx, id)
		if err != nil {
			return err
		}
		if len(invoice.Items) == 1 {
			return apperror.NewConflictError("An invoice needs at least one item")
		}

		changes := make([]InvoiceItemChange, 0, len(invoice.Items)-1)
		for _, change := range keepItems(invoice.Items) {
			if *change.ID != id {
				changes = append(changes, change)
			}
		}
		_, err = s.rewriteItems(ctx, invoice, changes)
		return err
	})
}

// itemInvoice loads the editable invoice owning a line
func (s *InvoiceService) itemInvoice(ctx context.Context, itemID uint) (*entity.Invoice, error) {
	item, err := s.GetInvoiceItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.editableInvoice(ctx, item.InvoiceID)
}
