package repository

import (
	"context"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	// FindByEmailOrPhone returns the first customer matching either contact; nil contacts are ignored.
	FindByEmailOrPhone(ctx context.Context, email, phone *string) (*entity.Customer, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// CountDocuments returns how many quotations and invoices reference the customer.
	CountDocuments(ctx context.Context, id uint) (quotations int64, invoices int64, err error)
}
