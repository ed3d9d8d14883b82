package entity

import (
	"time"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uint      `gorm:"primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_key_scope;size:255;not null"` // The idempotency key from client
	Scope        string    `gorm:"uniqueIndex:idx_idempotency_key_scope;size:100;not null"` // Client the key belongs to
	Endpoint     string    `gorm:"uniqueIndex:idx_idempotency_key_scope;size:255;not null"` // API endpoint (e.g., "POST /invoices")
	ResponseCode int       `gorm:"not null"`                                                // HTTP status code of original response
	ResponseBody string    `gorm:"type:text"`                                               // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
