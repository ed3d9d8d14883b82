package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/internal/testutil"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var ctx = context.Background()

func seedPurchase(t *testing.T, repo domainRepo.PurchaseRepository, no, supplier string, total, paid int64) *entity.Purchase {
	t.Helper()
	p := &entity.Purchase{
		PurchaseNo:   no,
		SupplierName: supplier,
		TotalAmount:  decimal.NewFromInt(total),
		PaidAmount:   decimal.NewFromInt(paid),
		PurchaseDate: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, p))
	return p
}

func seedInvoice(t *testing.T, db *gorm.DB, no, project string, total, received int64) *entity.Invoice {
	t.Helper()
	customer := &entity.Customer{Name: "Customer " + no}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, customer))

	invoice := &entity.Invoice{
		InvoiceNo:   no,
		CustomerID:  customer.ID,
		ProjectName: project,
		TotalAmount: decimal.NewFromInt(total),
		VAT:         decimal.NewFromInt(total).Div(decimal.NewFromInt(20)),
		Received:    decimal.NewFromInt(received),
	}
	require.NoError(t, NewInvoiceRepository(db).Create(ctx, invoice))
	return invoice
}

func listPurchases(t *testing.T, repo domainRepo.PurchaseRepository, state enum.RecordState, search string, page, limit int) ([]entity.Purchase, int64) {
	t.Helper()
	rows, total, err := repo.List(ctx, &domainRepo.DocumentFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, Limit: limit},
		State:      state,
		Search:     search,
	})
	require.NoError(t, err)
	return rows, total
}

func TestLifecycleScopesPartitionRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPurchaseRepository(db)

	kept := seedPurchase(t, repo, "P-1", "Alpha", 100, 0)
	gone := seedPurchase(t, repo, "P-2", "Beta", 100, 0)
	require.NoError(t, repo.SetDeleted(ctx, gone.ID, true))

	active, total := listPurchases(t, repo, enum.RecordStateActive, "", 1, 10)
	assert.Equal(t, int64(1), total)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	deleted, total := listPurchases(t, repo, enum.RecordStateDeleted, "", 1, 10)
	assert.Equal(t, int64(1), total)
	require.Len(t, deleted, 1)
	assert.Equal(t, gone.ID, deleted[0].ID)
	assert.True(t, deleted[0].IsDeleted)

	byNo, err := repo.GetByPurchaseNo(ctx, "P-2")
	require.NoError(t, err)
	assert.Nil(t, byNo, "business key lookups skip deleted rows")

	byID, err := repo.GetByID(ctx, gone.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.True(t, byID.IsDeleted)
}

func TestSetDeletedChangesOnlyTheFlag(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPurchaseRepository(db)
	p := seedPurchase(t, repo, "P-1", "Alpha", 100, 40)
	before, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, repo.SetDeleted(ctx, p.ID, true))
	require.NoError(t, repo.SetDeleted(ctx, p.ID, false))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.True(t, before.UpdatedAt.Equal(got.UpdatedAt), "updated_at untouched: %v != %v", before.UpdatedAt, got.UpdatedAt)
	assert.True(t, decimal.NewFromInt(60).Equal(got.Balance))
	assert.Equal(t, enum.PaymentStatusPartial, got.PaymentStatus)
}

func TestContainsScopeTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPurchaseRepository(db)
	seedPurchase(t, repo, "P-1", "50% Off Supplies", 10, 0)
	seedPurchase(t, repo, "P-2", "500 Units Ltd", 10, 0)
	seedPurchase(t, repo, "P-3", "a_b Trading", 10, 0)
	seedPurchase(t, repo, "P-4", "axb Trading", 10, 0)

	tests := []struct {
		search string
		want   []string
	}{
		{"50%", []string{"P-1"}},
		{"a_b", []string{"P-3"}},
		{"TRADING", []string{"P-3", "P-4"}},
		{"  ", []string{"P-1", "P-2", "P-3", "P-4"}},
		{"!", nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.search), func(t *testing.T) {
			rows, total := listPurchases(t, repo, enum.RecordStateActive, tt.search, 1, 10)
			var got []string
			for _, r := range rows {
				got = append(got, r.PurchaseNo)
			}
			assert.ElementsMatch(t, tt.want, got)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestContainsCondition(t *testing.T) {
	cond, args := containsCondition(" 10%_off ", "a", "b")
	assert.Equal(t, "(LOWER(a) LIKE ? ESCAPE '!' OR LOWER(b) LIKE ? ESCAPE '!')", cond)
	assert.Equal(t, []interface{}{"%10!%!_off%", "%10!%!_off%"}, args)

	cond, args = containsCondition("", "a")
	assert.Empty(t, cond)
	assert.Nil(t, args)
}

func TestListTotalIgnoresPage(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPurchaseRepository(db)
	for i := 1; i <= 5; i++ {
		seedPurchase(t, repo, fmt.Sprintf("P-%d", i), "Supplier", 10, 0)
	}

	first, total := listPurchases(t, repo, enum.RecordStateActive, "", 1, 2)
	assert.Equal(t, int64(5), total)
	assert.Len(t, first, 2)
	assert.Equal(t, "P-5", first[0].PurchaseNo, "newest first")

	last, total := listPurchases(t, repo, enum.RecordStateActive, "", 3, 2)
	assert.Equal(t, int64(5), total)
	require.Len(t, last, 1)
	assert.Equal(t, "P-1", last[0].PurchaseNo)

	beyond, total := listPurchases(t, repo, enum.RecordStateActive, "", 9, 2)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, beyond)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPurchaseRepository(db)
	seedPurchase(t, repo, "P-1", "Alpha", 10, 0)

	err := repo.Create(ctx, &entity.Purchase{PurchaseNo: "P-1", SupplierName: "Beta", PurchaseDate: time.Now()})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTransactorRollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := NewTransactor(db)
	repo := NewPurchaseRepository(db)
	boom := errors.New("boom")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, &entity.Purchase{PurchaseNo: "P-1", SupplierName: "A", PurchaseDate: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByPurchaseNo(ctx, "P-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactorNestedCallsJoinOuter(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := NewTransactor(db)
	repo := NewPurchaseRepository(db)

	err := tx.WithinTransaction(ctx, func(outer context.Context) error {
		outerTx := outer.Value(txKey{})
		err := tx.WithinTransaction(outer, func(inner context.Context) error {
			assert.Same(t, outerTx, inner.Value(txKey{}))
			return repo.Create(inner, &entity.Purchase{PurchaseNo: "P-1", SupplierName: "A", PurchaseDate: time.Now()})
		})
		require.NoError(t, err)
		return errors.New("outer fails")
	})
	require.Error(t, err)

	got, err := repo.GetByPurchaseNo(ctx, "P-1")
	require.NoError(t, err)
	assert.Nil(t, got, "inner work is rolled back with the outer transaction")
}

func TestInvoiceSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInvoiceRepository(db)
	seedInvoice(t, db, "SC-AAAA0001", "Marina Tower", 100, 0)
	seedInvoice(t, db, "SC-AAAA0002", "Palm Villa", 100, 0)
	gone := seedInvoice(t, db, "SC-AAAA0003", "Marina Mall", 100, 0)
	require.NoError(t, repo.SetDeleted(ctx, gone.ID, true))

	byNo, err := repo.Search(ctx, "SC-AAAA0002", 10)
	require.NoError(t, err)
	require.Len(t, byNo, 1)
	assert.Equal(t, "Palm Villa", byNo[0].ProjectName)

	byProject, err := repo.Search(ctx, "marina", 10)
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, "SC-AAAA0001", byProject[0].InvoiceNo)
}

func TestAnalytics(t *testing.T) {
	db := testutil.NewTestDB(t)
	analytics := NewAnalyticsRepository(db)
	invoices := NewInvoiceRepository(db)
	purchases := NewPurchaseRepository(db)

	seedInvoice(t, db, "SC-1", "A", 100, 0)   // 105 owed
	seedInvoice(t, db, "SC-2", "B", 200, 300) // overpaid
	gone := seedInvoice(t, db, "SC-3", "C", 1000, 0)
	require.NoError(t, invoices.SetDeleted(ctx, gone.ID, true))

	seedPurchase(t, purchases, "P-1", "S", 500, 200)
	seedPurchase(t, purchases, "P-2", "S", 100, 150)

	today := time.Now()
	summary, err := analytics.GetSalesSummary(ctx, today.AddDate(0, 0, -1), today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalInvoices)
	assert.True(t, decimal.NewFromInt(315).Equal(summary.TotalSales), summary.TotalSales.String())
	assert.True(t, summary.TotalSales.Equal(summary.TotalRevenue))

	empty, err := analytics.GetSalesSummary(ctx, today.AddDate(-1, 0, 0), today.AddDate(-1, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, empty.TotalInvoices)
	assert.True(t, empty.TotalSales.IsZero())

	receivables, err := analytics.GetReceivables(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), receivables.Count)
	assert.True(t, decimal.NewFromInt(105).Equal(receivables.Outstanding), receivables.Outstanding.String())

	payables, err := analytics.GetPayables(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), payables.Count)
	assert.True(t, decimal.NewFromInt(300).Equal(payables.Outstanding), payables.Outstanding.String())

	counts, err := analytics.GetQuotationStatusCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(enum.QuotationStatuses()))
	for _, n := range counts {
		assert.Zero(t, n)
	}
}

func TestIdempotencyRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewIdempotencyRepository(db)

	fresh := &entity.IdempotencyKey{
		Key: "abc", Scope: "10.0.0.1", Endpoint: "POST /invoices",
		ResponseCode: 201, ResponseBody: `{"success":true}`,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	stale := &entity.IdempotencyKey{
		Key: "old", Scope: "10.0.0.1", Endpoint: "POST /invoices",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByKey(ctx, "abc", "10.0.0.1", "POST /invoices")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"success":true}`, got.ResponseBody)
	assert.False(t, got.IsExpired())

	other, err := repo.GetByKey(ctx, "abc", "10.0.0.2", "POST /invoices")
	require.NoError(t, err)
	assert.Nil(t, other, "keys are scoped per client")

	elsewhere, err := repo.GetByKey(ctx, "abc", "10.0.0.1", "POST /purchases")
	require.NoError(t, err)
	assert.Nil(t, elsewhere, "keys are scoped per endpoint")
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", Scope: "10.0.0.1", Endpoint: "POST /purchases",
		ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour),
	}), "the same key may be stored once per endpoint")

	require.NoError(t, repo.DeleteExpired(ctx))
	gone, err := repo.GetByKey(ctx, "old", "10.0.0.1", "POST /invoices")
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := repo.GetByKey(ctx, "abc", "10.0.0.1", "POST /invoices")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
