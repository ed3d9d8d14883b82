package repository

import (
	"context"
	"errors"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) FindByEmailOrPhone(ctx context.Context, email, phone *string) (*entity.Customer, error) {
	if email == nil && phone == nil {
		return nil, nil
	}

	query := dbFrom(ctx, r.db).Model(&entity.Customer{})
	switch {
	case email != nil && phone != nil:
		query = query.Where("email = ? OR phone = ?", *email, *phone)
	case email != nil:
		query = query.Where("email = ?", *email)
	default:
		query = query.Where("phone = ?", *phone)
	}

	var customer entity.Customer
	err := query.Order("id ASC").First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Customer{}).
		Scopes(ContainsScope(search, "name", "email", "phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.Limit).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) CountDocuments(ctx context.Context, id uint) (int64, int64, error) {
	var quotations, invoices int64
	db := dbFrom(ctx, r.db)
	if err := db.Model(&entity.Quotation{}).Where("customer_id = ?", id).Count(&quotations).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&entity.Invoice{}).Where("customer_id = ?", id).Count(&invoices).Error; err != nil {
		return 0, 0, err
	}
	return quotations, invoices, nil
}
