package entity

import (
	"strings"
	"time"
)

// Customer represents a buyer referenced by quotations and invoices
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone     *string   `gorm:"size:50;uniqueIndex" json:"phone,omitempty"`
	Address   *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Quotations []Quotation `gorm:"foreignKey:CustomerID" json:"-"`
	Invoices   []Invoice   `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// NormalizeContact trims a contact field and maps blank to nil, so blank
// emails and phones never collide on the unique indexes.
func NormalizeContact(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
