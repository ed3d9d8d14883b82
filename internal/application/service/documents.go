package service

import (
	"context"
	"errors"
	"log"

	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/sangkips/salesdocs-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocumentSettings carries the configurable business defaults
type DocumentSettings struct {
	QuotationValidDays int
	DefaultVAT         decimal.Decimal
	KeyAttempts        int
}

// DefaultDocumentSettings returns 15 valid days, 5% VAT and 5 key attempts
func DefaultDocumentSettings() DocumentSettings {
	return DocumentSettings{
		QuotationValidDays: 15,
		DefaultVAT:         decimal.NewFromInt(5),
		KeyAttempts:        5,
	}
}

func (s DocumentSettings) normalized() DocumentSettings {
	d := DefaultDocumentSettings()
	if s.QuotationValidDays <= 0 {
		s.QuotationValidDays = d.QuotationValidDays
	}
	if s.KeyAttempts <= 0 {
		s.KeyAttempts = d.KeyAttempts
	}
	if s.DefaultVAT.IsNegative() {
		s.DefaultVAT = d.DefaultVAT
	}
	return s
}

// createWithKey inserts a document under a unique business key. A supplied
// key is used once and a duplicate is a conflict. A generated key that
// collides is replaced and create runs again, each attempt in its own
// transaction.
func createWithKey(ctx context.Context, supplied string, keys utils.DocumentNoGenerator, attempts int, resource string, create func(ctx context.Context, key string) error) error {
	if supplied != "" {
		err := create(ctx, supplied)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewConflictError(resource + " number " + supplied + " already exists")
		}
		return err
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		key := keys.Next()
		err := create(ctx, key)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Printf("%s number %s collided (attempt %d/%d)", resource, key, attempt, attempts)
	}
	return apperror.NewConflictError("Could not allocate a unique " + resource + " number")
}

// conflictOnDuplicate maps a unique violation to a 409
func conflictOnDuplicate(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError(message)
	}
	return err
}

var hundred = decimal.NewFromInt(100)

func checkQuantity(f *apperror.FieldErrors, field string, v decimal.Decimal) {
	if !v.IsPositive() {
		f.Add(field, "must be greater than 0")
	}
}

func checkAmount(f *apperror.FieldErrors, field string, v decimal.Decimal) {
	if v.IsNegative() {
		f.Add(field, "must not be negative")
	}
}

func checkPercent(f *apperror.FieldErrors, field string, v decimal.Decimal) {
	if v.IsNegative() || v.GreaterThan(hundred) {
		f.Add(field, "must be between 0 and 100")
	}
}
