package service

import (
	"context"
	"strings"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/money"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/sangkips/salesdocs-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SearchLimit caps free-text invoice search results
const SearchLimit = 50

// InvoiceService handles invoices, including conversion from quotations
type InvoiceService struct {
	tx            repository.Transactor
	invoiceRepo   repository.InvoiceRepository
	itemRepo      repository.InvoiceItemRepository
	quotationRepo repository.QuotationRepository
	customers     *CustomerService
	settings      DocumentSettings
	keys          utils.DocumentNoGenerator
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	tx repository.Transactor,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	quotationRepo repository.QuotationRepository,
	customers *CustomerService,
	settings DocumentSettings,
) *InvoiceService {
	return &InvoiceService{
		tx:            tx,
		invoiceRepo:   invoiceRepo,
		itemRepo:      itemRepo,
		quotationRepo: quotationRepo,
		customers:     customers,
		settings:      settings.normalized(),
		keys:          utils.PrefixedGenerator{Prefix: utils.InvoiceNoPrefix},
	}
}

// SetKeyGenerator replaces the invoice number generator
func (s *InvoiceService) SetKeyGenerator(keys utils.DocumentNoGenerator) {
	s.keys = keys
}

// IsWalkIn reports whether a quotation number means "no source quotation"
func IsWalkIn(quotationNo string) bool {
	q := strings.TrimSpace(quotationNo)
	return q == "" || q == entity.WalkInQuotationNo
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	InvoiceNo    string
	QuotationNo  string
	Customer     CustomerInput
	CustomerTRN  string
	ProjectName  string
	VAT          *decimal.Decimal
	FlatDiscount decimal.Decimal
	Received     decimal.Decimal
	Items        []InvoiceItemInput
}

// InvoiceItemInput represents an invoice line input. A nil VAT takes the
// document VAT.
type InvoiceItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	VAT         *decimal.Decimal
}

func (in InvoiceItemInput) validate(f *apperror.FieldErrors, prefix string) {
	checkQuantity(f, prefix+"quantity", in.Quantity)
	checkAmount(f, prefix+"unit_price", in.UnitPrice)
	checkPercent(f, prefix+"discount", in.Discount)
	if in.VAT != nil {
		checkPercent(f, prefix+"vat", *in.VAT)
	}
}

func (in InvoiceItemInput) toEntity(invoiceID uint, vat decimal.Decimal) entity.InvoiceItem {
	if in.VAT != nil {
		vat = *in.VAT
	}
	item := entity.InvoiceItem{
		InvoiceID:   invoiceID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Discount:    in.Discount,
		VAT:         vat,
	}
	item.Recalculate()
	return item
}

// InvoiceDraft is an unsaved invoice prefilled from a quotation
type InvoiceDraft struct {
	QuotationID uint                 `json:"quotation_id"`
	QuotationNo string               `json:"quotation_no"`
	Customer    *entity.Customer     `json:"customer"`
	ProjectName string               `json:"project_name"`
	VAT         decimal.Decimal      `json:"vat_percent"`
	Items       []entity.InvoiceItem `json:"invoice_items"`
	Totals      money.DocumentTotals `json:"totals"`
}

func (s *InvoiceService) vatOrDefault(vat *decimal.Decimal) decimal.Decimal {
	if vat == nil {
		return s.settings.DefaultVAT
	}
	return *vat
}

// draftItems maps quotation lines to invoice lines at the given VAT and no discount
func draftItems(quotation *entity.Quotation, vat decimal.Decimal) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(quotation.Items))
	for _, qi := range quotation.Items {
		items = append(items, InvoiceItemInput{
			Description: qi.Description,
			Quantity:    qi.Quantity,
			UnitPrice:   qi.UnitPrice,
			Discount:    decimal.Zero,
		}.toEntity(0, vat))
	}
	return items
}

// DraftFromQuotation previews the invoice a quotation would convert into
func (s *InvoiceService) DraftFromQuotation(ctx context.Context, quotationNo string, vat *decimal.Decimal) (*InvoiceDraft, error) {
	if IsWalkIn(quotationNo) {
		return nil, apperror.NewBadRequestError("A walk-in invoice has no quotation to draft from")
	}
	if vat != nil {
		var fields apperror.FieldErrors
		checkPercent(&fields, "vat", *vat)
		if err := fields.Err(); err != nil {
			return nil, err
		}
	}

	quotation, err := s.quotationRepo.GetByQuotationNo(ctx, strings.TrimSpace(quotationNo))
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	rate := s.vatOrDefault(vat)
	items := draftItems(quotation, rate)
	lines := make([]money.LineInput, len(items))
	for i := range items {
		lines[i] = items[i].LineInput()
	}

	return &InvoiceDraft{
		QuotationID: quotation.ID,
		QuotationNo: quotation.QuotationNo,
		Customer:    quotation.Customer,
		ProjectName: quotation.ProjectName,
		VAT:         rate,
		Items:       items,
		Totals:      money.InvoiceTotals(lines, decimal.Zero, decimal.Zero),
	}, nil
}

// CreateInvoice converts a quotation into an invoice, or raises a walk-in
// invoice when no quotation is named. Quotation lines are used when the
// request carries none.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	walkIn := IsWalkIn(input.QuotationNo)

	var fields apperror.FieldErrors
	if input.VAT != nil {
		checkPercent(&fields, "vat", *input.VAT)
	}
	checkAmount(&fields, "discount", input.FlatDiscount)
	checkAmount(&fields, "received", input.Received)
	for i, item := range input.Items {
		item.validate(&fields, itemField("invoice_items", i))
	}
	if walkIn && len(input.Items) == 0 {
		fields.Add("invoice_items", "is required for a walk-in invoice")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	rate := s.vatOrDefault(input.VAT)

	var created *entity.Invoice
	err := createWithKey(ctx, strings.TrimSpace(input.InvoiceNo), s.keys, s.settings.KeyAttempts, "Invoice",
		func(ctx context.Context, key string) error {
			return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				invoice := &entity.Invoice{
					InvoiceNo:    key,
					CustomerTRN:  strings.TrimSpace(input.CustomerTRN),
					ProjectName:  strings.TrimSpace(input.ProjectName),
					FlatDiscount: input.FlatDiscount,
				}

				var fallback *entity.Customer
				if walkIn {
					sentinel := entity.WalkInQuotationNo
					invoice.QuotationNo = &sentinel
				} else {
					quotation, err := s.quotationRepo.GetByQuotationNo(ctx, strings.TrimSpace(input.QuotationNo))
					if err != nil {
						return err
					}
					if quotation == nil {
						return apperror.NewNotFoundError("Quotation")
					}
					invoice.QuotationID = &quotation.ID
					invoice.QuotationNo = &quotation.QuotationNo
					if invoice.ProjectName == "" {
						invoice.ProjectName = quotation.ProjectName
					}
					fallback = quotation.Customer
					if len(input.Items) == 0 {
						invoice.Items = draftItems(quotation, rate)
					}
				}

				for _, item := range input.Items {
					invoice.Items = append(invoice.Items, item.toEntity(0, rate))
				}

				customer, err := s.customers.Resolve(ctx, input.Customer, fallback)
				if err != nil {
					return err
				}
				invoice.CustomerID = customer.ID

				invoice.ApplyTotals(money.InvoiceTotals(invoice.LineInputs(), input.FlatDiscount, input.Received))

				if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
					return err
				}
				created = invoice
				return nil
			})
		})
	if err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, created.ID)
}

// GetInvoice retrieves an invoice in either lifecycle state
func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetByQuotationNo returns the newest active invoice raised from a quotation
func (s *InvoiceService) GetByQuotationNo(ctx context.Context, quotationNo string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetLatestByQuotationNo(ctx, strings.TrimSpace(quotationNo))
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// SearchInvoices matches active invoices by number, project name or TRN
func (s *InvoiceService) SearchInvoices(ctx context.Context, term string) ([]entity.Invoice, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperror.NewBadRequestError("search is required")
	}
	invoices, err := s.invoiceRepo.Search(ctx, term, SearchLimit)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []entity.Invoice{}
	}
	return invoices, nil
}

// ListInvoices lists active or soft-deleted invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput is a full invoice update. Nil header fields are left
// untouched. When Items is non-nil it replaces the line set: lines with an
// ID are updated, lines without one are inserted, the rest are removed.
type UpdateInvoiceInput struct {
	Customer     *CustomerInput
	CustomerTRN  *string
	ProjectName  *string
	FlatDiscount *decimal.Decimal
	Received     *decimal.Decimal
	Items        []InvoiceItemChange
}

// InvoiceItemChange represents a partial change to an invoice line
type InvoiceItemChange struct {
	ID          *uint
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	Discount    *decimal.Decimal
	VAT         *decimal.Decimal
}

func (c InvoiceItemChange) validate(f *apperror.FieldErrors, prefix string) {
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
	if c.Discount != nil {
		checkPercent(f, prefix+"discount", *c.Discount)
	}
	if c.VAT != nil {
		checkPercent(f, prefix+"vat", *c.VAT)
	}
}

func (c InvoiceItemChange) apply(item *entity.InvoiceItem) {
	if c.Description != nil {
		item.Description = strings.TrimSpace(*c.Description)
	}
	if c.Quantity != nil {
		item.Quantity = *c.Quantity
	}
	if c.UnitPrice != nil {
		item.UnitPrice = *c.UnitPrice
	}
	if c.Discount != nil {
		item.Discount = *c.Discount
	}
	if c.VAT != nil {
		item.VAT = *c.VAT
	}
	item.Recalculate()
}

// UpdateInvoice applies a header change and line diff, then recomputes the
// document totals, all in one transaction
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uint, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	var fields apperror.FieldErrors
	if input.FlatDiscount != nil {
		checkAmount(&fields, "discount", *input.FlatDiscount)
	}
	if input.Received != nil {
		checkAmount(&fields, "received", *input.Received)
	}
	if input.Items != nil && len(input.Items) == 0 {
		fields.Add("invoice_items", "must not be empty")
	}
	for i, change := range input.Items {
		change.validate(&fields, itemField("invoice_items", i))
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.editableInvoice(ctx, id)
		if err != nil {
			return err
		}

		if input.Customer != nil {
			customer, err := s.customers.Resolve(ctx, *input.Customer, invoice.Customer)
			if err != nil {
				return err
			}
			invoice.CustomerID = customer.ID
		}
		if input.CustomerTRN != nil {
			invoice.CustomerTRN = strings.TrimSpace(*input.CustomerTRN)
		}
		if input.ProjectName != nil {
			invoice.ProjectName = strings.TrimSpace(*input.ProjectName)
		}
		if input.FlatDiscount != nil {
			invoice.FlatDiscount = *input.FlatDiscount
		}
		if input.Received != nil {
			invoice.Received = *input.Received
		}

		changes := input.Items
		if changes == nil {
			changes = keepItems(invoice.Items)
		}
		_, err = s.rewriteItems(ctx, invoice, changes)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, id)
}

// editableInvoice loads an invoice that may still be changed
func (s *InvoiceService) editableInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsDeleted {
		return nil, apperror.NewConflictError("Invoice is deleted; restore it before editing")
	}
	return invoice, nil
}

// keepItems lists the current lines as unchanged entries of a line diff
func keepItems(items []entity.InvoiceItem) []InvoiceItemChange {
	changes := make([]InvoiceItemChange, 0, len(items))
	for i := range items {
		id := items[i].ID
		changes = append(changes, InvoiceItemChange{ID: &id})
	}
	return changes
}

// rewriteItems applies a line diff and writes the recomputed header. It must
// run inside the caller's transaction.
func (s *InvoiceService) rewriteItems(ctx context.Context, invoice *entity.Invoice, changes []InvoiceItemChange) ([]entity.InvoiceItem, error) {
	items, err := s.applyItemDiff(ctx, invoice, changes)
	if err != nil {
		return nil, err
	}

	lines := make([]money.LineInput, len(items))
	for i := range items {
		lines[i] = items[i].LineInput()
	}
	invoice.ApplyTotals(money.InvoiceTotals(lines, invoice.FlatDiscount, invoice.Received))
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return items, nil
}

// lineVAT is the rate a new line takes when none is given: the rate of the
// invoice's first line, or the default for an invoice without lines
func (s *InvoiceService) lineVAT(invoice *entity.Invoice) decimal.Decimal {
	if len(invoice.Items) > 0 {
		return invoice.Items[0].VAT
	}
	return s.settings.DefaultVAT
}

func (s *InvoiceService) applyItemDiff(ctx context.Context, invoice *entity.Invoice, changes []InvoiceItemChange) ([]entity.InvoiceItem, error) {
	owned := make(map[uint]entity.InvoiceItem, len(invoice.Items))
	for _, item := range invoice.Items {
		owned[item.ID] = item
	}

	vat := s.lineVAT(invoice)

	var keep []uint
	var updated []entity.InvoiceItem
	var added []entity.InvoiceItem
	for _, change := range changes {
		if change.ID == nil {
			item := entity.InvoiceItem{InvoiceID: invoice.ID, VAT: vat}
			change.apply(&item)
			added = append(added, item)
			continue
		}
		item, ok := owned[*change.ID]
		if !ok {
			return nil, apperror.NewNotFoundError("Invoice item")
		}
		change.apply(&item)
		updated = append(updated, item)
		keep = append(keep, item.ID)
	}

	if err := s.itemRepo.DeleteExcept(ctx, invoice.ID, keep); err != nil {
		return nil, err
	}
	for i := range updated {
		if err := s.itemRepo.Update(ctx, &updated[i]); err != nil {
			return nil, err
		}
	}
	if err := s.itemRepo.CreateBatch(ctx, added); err != nil {
		return nil, err
	}
	return append(updated, added...), nil
}

// SoftDeleteInvoice moves an active invoice to the trash
func (s *InvoiceService) SoftDeleteInvoice(ctx context.Context, id uint) error {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoice.IsDeleted {
		return apperror.NewConflictError("Invoice is already deleted")
	}
	return s.invoiceRepo.SetDeleted(ctx, id, true)
}

// RestoreInvoice brings a soft-deleted invoice back
func (s *InvoiceService) RestoreInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !invoice.IsDeleted {
		return nil, apperror.NewConflictError("Invoice is not deleted")
	}
	if err := s.invoiceRepo.SetDeleted(ctx, id, false); err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, id)
}

// PurgeInvoice permanently removes a soft-deleted invoice and its lines
func (s *InvoiceService) PurgeInvoice(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if !invoice.IsDeleted {
			return apperror.NewConflictError("Only a deleted invoice can be purged")
		}
		if err := s.itemRepo.DeleteByInvoiceID(ctx, id); err != nil {
			return err
		}
		return s.invoiceRepo.Delete(ctx, id)
	})
}
