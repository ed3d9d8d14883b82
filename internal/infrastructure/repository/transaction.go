package repository

import (
	"context"

	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor over the shared handle
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction runs fn in a transaction. A nested call joins the
// outer transaction instead of opening a second one.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction bound to ctx, or the base handle
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
