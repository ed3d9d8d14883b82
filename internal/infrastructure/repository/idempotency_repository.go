package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, scope, endpoint string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	// struct conditions keep the "key" column quoted on mysql
	err := dbFrom(ctx, r.db).
		Where(&entity.IdempotencyKey{Key: key, Scope: scope, Endpoint: endpoint}).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return dbFrom(ctx, r.db).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return dbFrom(ctx, r.db).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
