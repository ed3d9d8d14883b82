package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/sangkips/salesdocs-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdocs-api/internal/testutil"
	"github.com/sangkips/salesdocs-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db         *gorm.DB
	customers  *CustomerService
	quotations *QuotationService
	items      *QuotationItemService
	invoices   *InvoiceService
	purchases  *PurchaseService
	dashboard  *DashboardService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewTestDB(t)

	tx := repository.NewTransactor(db)
	quotationRepo := repository.NewQuotationRepository(db)
	quotationItemRepo := repository.NewQuotationItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settings := DefaultDocumentSettings()

	customers := NewCustomerService(repository.NewCustomerRepository(db))
	return &testServices{
		db:         db,
		customers:  customers,
		quotations: NewQuotationService(tx, quotationRepo, quotationItemRepo, invoiceRepo, customers, settings),
		items:      NewQuotationItemService(quotationRepo, quotationItemRepo),
		invoices:   NewInvoiceService(tx, invoiceRepo, repository.NewInvoiceItemRepository(db), quotationRepo, customers, settings),
		purchases:  NewPurchaseService(tx, repository.NewPurchaseRepository(db), settings),
		dashboard:  NewDashboardService(repository.NewAnalyticsRepository(db)),
	}
}

// sequenceKeys hands out keys in order and repeats the last one
type sequenceKeys struct {
	keys []string
	next int
}

func (s *sequenceKeys) Next() string {
	key := s.keys[s.next]
	if s.next < len(s.keys)-1 {
		s.next++
	}
	return key
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func sp(s string) *string {
	return &s
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected an AppError, got %v", err)
	assert.Equal(t, code, apperror.GetAppError(err).Code, err.Error())
}

func countRows(t *testing.T, db *gorm.DB, table, cond string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Where(cond, args...).Count(&n).Error)
	return n
}

var testCtx = context.Background()

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
