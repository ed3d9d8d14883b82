package request

import "github.com/sangkips/salesdocs-api/internal/application/service"

// CustomerFields identifies or describes the customer of a document
type CustomerFields struct {
	CustomerID      *uint   `json:"customer_id"`
	CustomerName    string  `json:"customer_name" binding:"max=255"`
	CustomerEmail   *string `json:"customer_email" binding:"omitempty,max=255"`
	CustomerPhone   *string `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerAddress *string `json:"customer_address"`
}

// ToInput converts the request fields to a service input
func (f CustomerFields) ToInput() service.CustomerInput {
	return service.CustomerInput{
		ID:      f.CustomerID,
		Name:    f.CustomerName,
		Email:   f.CustomerEmail,
		Phone:   f.CustomerPhone,
		Address: f.CustomerAddress,
	}
}

// IsEmpty reports whether no customer field was sent
func (f CustomerFields) IsEmpty() bool {
	return f.CustomerID == nil && f.CustomerName == "" && f.CustomerEmail == nil &&
		f.CustomerPhone == nil && f.CustomerAddress == nil
}

// CustomerSearchRequest represents the contact lookup parameters
type CustomerSearchRequest struct {
	Email string `form:"email"`
	Phone string `form:"phone"`
}
