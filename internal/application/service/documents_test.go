package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateWithKey_RetriesGeneratedKeyOnCollision(t *testing.T) {
	keys := &sequenceKeys{keys: []string{"K-1", "K-2", "K-3"}}
	var tried []string

	err := createWithKey(context.Background(), "", keys, 5, "Test", func(_ context.Context, key string) error {
		tried = append(tried, key)
		if key != "K-3" {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"K-1", "K-2", "K-3"}, tried)
}

func TestCreateWithKey_GivesUpAfterAttempts(t *testing.T) {
	keys := &sequenceKeys{keys: []string{"K-1"}}
	calls := 0

	err := createWithKey(context.Background(), "", keys, 3, "Test", func(_ context.Context, _ string) error {
		calls++
		return gorm.ErrDuplicatedKey
	})

	assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, 3, calls)
}

func TestCreateWithKey_SuppliedKeyIsNotRetried(t *testing.T) {
	keys := &sequenceKeys{keys: []string{"K-1"}}
	calls := 0

	err := createWithKey(context.Background(), "MINE", keys, 5, "Test", func(_ context.Context, key string) error {
		calls++
		assert.Equal(t, "MINE", key)
		return gorm.ErrDuplicatedKey
	})

	assertAppError(t, err, http.StatusConflict)
	assert.Equal(t, 1, calls)
}

func TestCreateWithKey_OtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	err := createWithKey(context.Background(), "", &sequenceKeys{keys: []string{"K"}}, 5, "Test",
		func(context.Context, string) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestDocumentSettings_Normalized(t *testing.T) {
	s := DocumentSettings{DefaultVAT: d("-1")}.normalized()
	assert.Equal(t, 15, s.QuotationValidDays)
	assert.Equal(t, 5, s.KeyAttempts)
	assertDecimal(t, "5", s.DefaultVAT)

	s = DocumentSettings{QuotationValidDays: 30, DefaultVAT: d("0"), KeyAttempts: 2}.normalized()
	assert.Equal(t, 30, s.QuotationValidDays)
	assert.Equal(t, 2, s.KeyAttempts)
	assertDecimal(t, "0", s.DefaultVAT)
}
