package repository

import "context"

// Transactor runs a unit of work inside a single database transaction.
// Repositories called with the ctx handed to fn join that transaction; an
// error returned from fn rolls every step back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
