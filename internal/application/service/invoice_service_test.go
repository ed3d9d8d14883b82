package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"github.com/sangkips/salesdocs-api/internal/domain/repository"
	"github.com/sangkips/salesdocs-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWalkInInvoice(t *testing.T, s *testServices, project string, received string) *entity.Invoice {
	t.Helper()
	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		Customer:    CustomerInput{Name: "Walk-in " + project},
		ProjectName: project,
		Received:    d(received),
		Items: []InvoiceItemInput{
			{Description: "Panel", Quantity: d("1"), UnitPrice: d("100")},
		},
	})
	require.NoError(t, err)
	return invoice
}

func TestConvertQuotationToInvoice(t *testing.T) {
	s := newTestServices(t)
	q := createTestQuotation(t, s, "Acme")
	assertDecimal(t, "250", q.TotalAmount)

	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		QuotationNo: q.QuotationNo,
		VAT:         dp("5"),
		Received:    d("200"),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^SC-[0-9A-F]{8}$`, invoice.InvoiceNo)
	require.NotNil(t, invoice.QuotationID)
	assert.Equal(t, q.ID, *invoice.QuotationID)
	assert.Equal(t, q.QuotationNo, *invoice.QuotationNo)
	assert.Equal(t, q.CustomerID, invoice.CustomerID)
	assert.Equal(t, q.ProjectName, invoice.ProjectName)

	assertDecimal(t, "250", invoice.TotalAmount)
	assertDecimal(t, "12.5", invoice.VAT)
	assertDecimal(t, "0", invoice.Discount)
	assertDecimal(t, "262.5", invoice.TotalWithVAT)
	assertDecimal(t, "200", invoice.Received)
	assertDecimal(t, "62.5", invoice.Remaining)
	assert.Equal(t, enum.PaymentStatusPartial, invoice.PaymentStatus)

	require.Len(t, invoice.Items, 2)
	door := invoice.Items[0]
	assertDecimal(t, "100", door.NetUnitPrice)
	assertDecimal(t, "5", door.VATPerUnit)
	assertDecimal(t, "200", door.TotalPrice)
	assertDecimal(t, "210", door.TotalAmountWithVAT)

	for _, item := range invoice.Items {
		want := item.TotalPrice.Add(item.Quantity.Mul(item.VATPerUnit))
		assert.True(t, want.Equal(item.TotalAmountWithVAT), "line identity for %s", item.Description)
	}
}

func TestCreateInvoice_DefaultVATAndRequestLines(t *testing.T) {
	s := newTestServices(t)
	q := createTestQuotation(t, s, "Acme")

	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		QuotationNo:  q.QuotationNo,
		FlatDiscount: d("10"),
		Items: []InvoiceItemInput{
			{Description: "Door", Quantity: d("2"), UnitPrice: d("100"), Discount: d("10")},
			{Description: "Zero rated", Quantity: d("1"), UnitPrice: d("50"), VAT: dp("0")},
		},
	})
	require.NoError(t, err)

	// line 1: base 200, net 180, vat 9; line 2: base 50, vat 0
	assertDecimal(t, "250", invoice.TotalAmount)
	assertDecimal(t, "9", invoice.VAT)
	assertDecimal(t, "30", invoice.Discount)
	assertDecimal(t, "229", invoice.TotalWithVAT)
	assertDecimal(t, "229", invoice.Remaining)
	assertDecimal(t, "10", invoice.FlatDiscount)
	assert.Equal(t, enum.PaymentStatusUnpaid, invoice.PaymentStatus)
	assertDecimal(t, "5", invoice.Items[0].VAT)
	assertDecimal(t, "0", invoice.Items[1].VAT)
}

func TestCreateInvoice_UnknownQuotation(t *testing.T) {
	s := newTestServices(t)

	_, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{QuotationNo: "QT-NOPE"})
	assertAppError(t, err, http.StatusNotFound)
}

func TestCreateInvoice_Validation(t *testing.T) {
	s := newTestServices(t)

	tests := []struct {
		name  string
		input *CreateInvoiceInput
	}{
		{"walk-in without lines", &CreateInvoiceInput{Customer: CustomerInput{Name: "Bob"}}},
		{"vat above 100", &CreateInvoiceInput{QuotationNo: "QT-1", VAT: dp("101")}},
		{"negative received", &CreateInvoiceInput{QuotationNo: "QT-1", Received: d("-1")}},
		{"negative discount", &CreateInvoiceInput{QuotationNo: "QT-1", FlatDiscount: d("-5")}},
		{"line discount above 100", &CreateInvoiceInput{
			Customer: CustomerInput{Name: "Bob"},
			Items:    []InvoiceItemInput{{Quantity: d("1"), UnitPrice: d("1"), Discount: d("150")}},
		}},
		{"zero quantity", &CreateInvoiceInput{
			Customer: CustomerInput{Name: "Bob"},
			Items:    []InvoiceItemInput{{Quantity: d("0"), UnitPrice: d("1")}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.invoices.CreateInvoice(testCtx, tt.input)
			assertAppError(t, err, http.StatusBadRequest)
		})
	}
	assert.Zero(t, countRows(t, s.db, "invoices", "1 = 1"))
}

func TestCreateWalkInInvoice(t *testing.T) {
	s := newTestServices(t)

	invoice := createWalkInInvoice(t, s, "Counter sale", "0")

	assert.Nil(t, invoice.QuotationID)
	require.NotNil(t, invoice.QuotationNo)
	assert.Equal(t, entity.WalkInQuotationNo, *invoice.QuotationNo)
	assert.Equal(t, "Walk-in Counter sale", invoice.Customer.Name)
	assertDecimal(t, "105", invoice.TotalWithVAT)

	_, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		QuotationNo: entity.WalkInQuotationNo,
		Items:       []InvoiceItemInput{{Quantity: d("1"), UnitPrice: d("1")}},
	})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestOverpaidInvoiceCarriesCredit(t *testing.T) {
	s := newTestServices(t)

	invoice := createWalkInInvoice(t, s, "Overpaid", "120")

	assertDecimal(t, "105", invoice.TotalWithVAT)
	assertDecimal(t, "-15", invoice.Remaining)
	assertDecimal(t, "15", invoice.CreditAmount)
	assert.Equal(t, enum.PaymentStatusPaid, invoice.PaymentStatus)
}

func TestCreateInvoice_RegeneratesCollidingNumber(t *testing.T) {
	s := newTestServices(t)

	_, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		InvoiceNo: "SC-TAKEN",
		Customer:  CustomerInput{Name: "Bob"},
		Items:     []InvoiceItemInput{{Quantity: d("1"), UnitPrice: d("1")}},
	})
	require.NoError(t, err)

	s.invoices.SetKeyGenerator(&sequenceKeys{keys: []string{"SC-TAKEN", "SC-FREE"}})
	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		Customer: CustomerInput{Name: "Bob"},
		Items:    []InvoiceItemInput{{Quantity: d("1"), UnitPrice: d("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SC-FREE", invoice.InvoiceNo)
	assert.Equal(t, int64(2), countRows(t, s.db, "invoice_items", "1 = 1"))
}

func TestDraftFromQuotation(t *testing.T) {
	s := newTestServices(t)
	q := createTestQuotation(t, s, "Acme")

	draft, err := s.invoices.DraftFromQuotation(testCtx, q.QuotationNo, nil)
	require.NoError(t, err)
	assert.Equal(t, q.ID, draft.QuotationID)
	assertDecimal(t, "5", draft.VAT)
	assert.Len(t, draft.Items, 2)
	assertDecimal(t, "262.5", draft.Totals.TotalWithVAT)

	draft, err = s.invoices.DraftFromQuotation(testCtx, q.QuotationNo, dp("0"))
	require.NoError(t, err)
	assertDecimal(t, "250", draft.Totals.TotalWithVAT)

	assert.Zero(t, countRows(t, s.db, "invoices", "1 = 1"), "a draft is never stored")

	_, err = s.invoices.DraftFromQuotation(testCtx, entity.WalkInQuotationNo, nil)
	assertAppError(t, err, http.StatusBadRequest)

	_, err = s.invoices.DraftFromQuotation(testCtx, "QT-NOPE", nil)
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdateInvoice_RecomputesTotals(t *testing.T) {
	s := newTestServices(t)
	q := createTestQuotation(t, s, "Acme")
	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{QuotationNo: q.QuotationNo})
	require.NoError(t, err)
	door, frame := invoice.Items[0], invoice.Items[1]

	updated, err := s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{
		CustomerTRN: sp("100200300"),
		Received:    dp("105"),
		Items: []InvoiceItemChange{
			{ID: &door.ID, Quantity: dp("1")},
			{Description: sp("Lock"), Quantity: dp("2"), UnitPrice: dp("25")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, door.ID, updated.Items[0].ID)
	assert.NotEqual(t, frame.ID, updated.Items[1].ID)
	assert.Equal(t, "Lock", updated.Items[1].Description)

	// 1x100 + 2x25 at 5%
	assertDecimal(t, "150", updated.TotalAmount)
	assertDecimal(t, "7.5", updated.VAT)
	assertDecimal(t, "157.5", updated.TotalWithVAT)
	assertDecimal(t, "52.5", updated.Remaining)
	assert.Equal(t, enum.PaymentStatusPartial, updated.PaymentStatus)
	assert.Equal(t, "100200300", updated.CustomerTRN)
	assert.Equal(t, invoice.CustomerID, updated.CustomerID)
}

func TestUpdateInvoice_HeaderOnlyKeepsLines(t *testing.T) {
	s := newTestServices(t)
	invoice := createWalkInInvoice(t, s, "Counter", "0")

	updated, err := s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{
		FlatDiscount: dp("5"),
		Received:     dp("100"),
		Customer:     &CustomerInput{Name: "Named buyer"},
	})
	require.NoError(t, err)

	assert.Len(t, updated.Items, 1)
	assertDecimal(t, "5", updated.Discount)
	assertDecimal(t, "100", updated.TotalWithVAT)
	assertDecimal(t, "0", updated.Remaining)
	assert.Equal(t, enum.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, "Named buyer", updated.Customer.Name)
}

func TestUpdateInvoice_Rejections(t *testing.T) {
	s := newTestServices(t)
	invoice := createWalkInInvoice(t, s, "Counter", "0")
	other := createWalkInInvoice(t, s, "Other", "0")

	_, err := s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{Items: []InvoiceItemChange{}})
	assertAppError(t, err, http.StatusBadRequest)

	_, err = s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{
		Items: []InvoiceItemChange{{ID: &other.Items[0].ID, Quantity: dp("2")}},
	})
	assertAppError(t, err, http.StatusNotFound)

	_, err = s.invoices.UpdateInvoice(testCtx, 999, &UpdateInvoiceInput{})
	assertAppError(t, err, http.StatusNotFound)

	require.NoError(t, s.invoices.SoftDeleteInvoice(testCtx, invoice.ID))
	_, err = s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{ProjectName: sp("x")})
	assertAppError(t, err, http.StatusConflict)
}

func TestUpdateInvoice_NewLineTakesInvoiceVAT(t *testing.T) {
	s := newTestServices(t)
	invoice, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{
		Customer: CustomerInput{Name: "Export buyer"},
		VAT:      dp("10"),
		Items: []InvoiceItemInput{
			{Description: "Panel", Quantity: d("1"), UnitPrice: d("100")},
		},
	})
	require.NoError(t, err)

	updated, err := s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{
		Items: []InvoiceItemChange{
			{ID: &invoice.Items[0].ID},
			{Description: sp("Trim"), Quantity: dp("1"), UnitPrice: dp("50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assertDecimal(t, "10", updated.Items[1].VAT, "new line follows the invoice rate, not the default")
	assertDecimal(t, "15", updated.VAT)
	assertDecimal(t, "165", updated.TotalWithVAT)

	updated, err = s.invoices.UpdateInvoice(testCtx, invoice.ID, &UpdateInvoiceInput{
		Items: []InvoiceItemChange{
			{ID: &updated.Items[0].ID},
			{Description: sp("Zero rated"), Quantity: dp("1"), UnitPrice: dp("10"), VAT: dp("0")},
		},
	})
	require.NoError(t, err)
	assertDecimal(t, "0", updated.Items[1].VAT, "an explicit rate wins")
}

func TestInvoiceLifecycle(t *testing.T) {
	s := newTestServices(t)
	invoice := createWalkInInvoice(t, s, "Lifecycle", "0")
	createWalkInInvoice(t, s, "Bystander", "0")

	active := func() []entity.Invoice {
		result, err := s.invoices.ListInvoices(testCtx, &repository.DocumentFilterParams{
			Pagination: pagination.DefaultPagination(),
			State:      enum.RecordStateActive,
		})
		require.NoError(t, err)
		return result.Data
	}
	deleted := func() []entity.Invoice {
		result, err := s.invoices.ListInvoices(testCtx, &repository.DocumentFilterParams{
			Pagination: pagination.DefaultPagination(),
			State:      enum.RecordStateDeleted,
		})
		require.NoError(t, err)
		return result.Data
	}

	assertAppError(t, s.invoices.PurgeInvoice(testCtx, invoice.ID), http.StatusConflict)
	_, err := s.invoices.RestoreInvoice(testCtx, invoice.ID)
	assertAppError(t, err, http.StatusConflict)

	before, err := s.invoices.GetInvoice(testCtx, invoice.ID)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, s.invoices.SoftDeleteInvoice(testCtx, invoice.ID))
	assert.Len(t, active(), 1)
	require.Len(t, deleted(), 1)
	assert.Equal(t, invoice.ID, deleted()[0].ID)
	assertAppError(t, s.invoices.SoftDeleteInvoice(testCtx, invoice.ID), http.StatusConflict)

	trashed, err := s.invoices.GetInvoice(testCtx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, trashed.IsDeleted)
	assertDecimal(t, invoice.TotalWithVAT.String(), trashed.TotalWithVAT, "soft delete keeps totals")

	restored, err := s.invoices.RestoreInvoice(testCtx, invoice.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, before, restored, "restore gives back the row as it was, timestamps included")
	assert.Len(t, restored.Items, 1)
	assert.Len(t, active(), 2)
	assert.Empty(t, deleted())

	require.NoError(t, s.invoices.SoftDeleteInvoice(testCtx, invoice.ID))
	require.NoError(t, s.invoices.PurgeInvoice(testCtx, invoice.ID))

	_, err = s.invoices.GetInvoice(testCtx, invoice.ID)
	assertAppError(t, err, http.StatusNotFound)
	assert.Zero(t, countRows(t, s.db, "invoice_items", "invoice_id = ?", invoice.ID))
	assertAppError(t, s.invoices.PurgeInvoice(testCtx, invoice.ID), http.StatusNotFound)
}

func TestSearchInvoices(t *testing.T) {
	s := newTestServices(t)
	a := createWalkInInvoice(t, s, "Marina Tower", "0")
	b := createWalkInInvoice(t, s, "Palm Villa", "0")

	_, err := s.invoices.SearchInvoices(testCtx, "  ")
	assertAppError(t, err, http.StatusBadRequest)

	found, err := s.invoices.SearchInvoices(testCtx, a.InvoiceNo)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	found, err = s.invoices.SearchInvoices(testCtx, "villa")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)

	require.NoError(t, s.invoices.SoftDeleteInvoice(testCtx, b.ID))
	found, err = s.invoices.SearchInvoices(testCtx, "villa")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	found, err = s.invoices.SearchInvoices(testCtx, "100%")
	require.NoError(t, err)
	assert.Empty(t, found, "wildcards are matched literally")
}

func TestGetInvoiceByQuotationNo(t *testing.T) {
	s := newTestServices(t)
	q := createTestQuotation(t, s, "Acme")

	_, err := s.invoices.GetByQuotationNo(testCtx, q.QuotationNo)
	assertAppError(t, err, http.StatusNotFound)

	first, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{QuotationNo: q.QuotationNo})
	require.NoError(t, err)
	second, err := s.invoices.CreateInvoice(testCtx, &CreateInvoiceInput{QuotationNo: q.QuotationNo})
	require.NoError(t, err)
	assert.NotEqual(t, first.InvoiceNo, second.InvoiceNo)

	latest, err := s.invoices.GetByQuotationNo(testCtx, q.QuotationNo)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	require.NoError(t, s.invoices.SoftDeleteInvoice(testCtx, second.ID))
	latest, err = s.invoices.GetByQuotationNo(testCtx, q.QuotationNo)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}
