package service

import (
	"context"
	"strings"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// CustomerService handles customer lookup and resolution
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput identifies or describes the customer of a document
type CustomerInput struct {
	ID      *uint
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// Resolve finds or creates the customer for a document, in order: by id,
// by email or phone, a new row when a name is given, else the fallback.
// Must be called with the ctx of the surrounding transaction.
func (s *CustomerService) Resolve(ctx context.Context, input CustomerInput, fallback *entity.Customer) (*entity.Customer, error) {
	if input.ID != nil {
		return s.GetCustomer(ctx, *input.ID)
	}

	email := entity.NormalizeContact(input.Email)
	phone := entity.NormalizeContact(input.Phone)

	existing, err := s.customerRepo.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		if fallback != nil {
			return fallback, nil
		}
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_name", Message: "is required"},
		})
	}

	customer := &entity.Customer{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: entity.NormalizeContact(input.Address),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, conflictOnDuplicate(err, "Customer email or phone already exists")
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// FindByContact returns the first customer whose email or phone matches
func (s *CustomerService) FindByContact(ctx context.Context, email, phone string) (*entity.Customer, error) {
	e := entity.NormalizeContact(&email)
	p := entity.NormalizeContact(&phone)
	if e == nil && p == nil {
		return nil, apperror.NewBadRequestError("email or phone is required")
	}

	customer, err := s.customerRepo.FindByEmailOrPhone(ctx, e, p)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.Limit, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// removeIfOrphaned deletes the customer once no quotation or invoice refers to it
func (s *CustomerService) removeIfOrphaned(ctx context.Context, id uint) (bool, error) {
	quotations, invoices, err := s.customerRepo.CountDocuments(ctx, id)
	if err != nil {
		return false, err
	}
	if quotations > 0 || invoices > 0 {
		return false, nil
	}
	return true, s.customerRepo.Delete(ctx, id)
}
