package service

import (
	"context"
	"testing"
	"time"

	"saribill/internal/dto"
	"saribill/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type billFixture struct {
	svc       BillService
	bills     *memBillRepo
	trash     *memTrashRepo
	customers *memCustomerRepo
	shop      *memShopRepo
}

func newBillFixture() *billFixture {
	f := &billFixture{
		bills:     newMemBillRepo(),
		trash:     newMemTrashRepo(),
		customers: newMemCustomerRepo(),
		shop:      &memShopRepo{},
	}
	f.svc = NewBillService(f.bills, f.trash, f.customers, f.shop, nil, "http://localhost:8000")
	return f
}

func sareeRequest() dto.CreateBillRequest {
	return dto.CreateBillRequest{
		Date:          "2025-04-19",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Items: []dto.BillItemRequest{
			{Kind: model.ItemKindSaree, UnitPrice: decimal.NewFromInt(1200), Quantity: 2},
			{Kind: model.ItemKindDress, CustomLabel: "Anarkali", UnitPrice: decimal.NewFromInt(800), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(3200),
		PaymentMode: model.PaymentModeUPI,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	assert.Equal(t, "25041901", first.ID)
	assert.Equal(t, "25041902", second.ID)
	assert.Regexp(t, `^[1-9a-z]{8}$`, first.URLHash)
	assert.NotEqual(t, first.URLHash, second.URLHash)
	assert.Equal(t, "http://localhost:8000/view/"+first.URLHash, first.ViewURL)

	// The customer directory is updated as part of the create
	cust, err := f.customers.FindByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", cust.Name)
}

func TestCreateCountsPerDate(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	otherDay := sareeRequest()
	otherDay.Date = "2025-04-20"
	resp, err := f.svc.Create(ctx, otherDay)
	require.NoError(t, err)

	// A new date starts its own sequence
	assert.Equal(t, "25042001", resp.ID)
}

func TestCreateRejectsMismatchedTotal(t *testing.T) {
	f := newBillFixture()

	req := sareeRequest()
	req.TotalAmount = decimal.NewFromInt(9999)
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.bills.bills)
}

func TestCreateSequenceExhausted(t *testing.T) {
	f := newBillFixture()
	f.bills.seqs["250419"] = 99

	_, err := f.svc.Create(context.Background(), sareeRequest())
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	f := newBillFixture()

	req := sareeRequest()
	req.Date = ""
	resp, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, BillPrefix(time.Now())+"01", resp.ID)
}

func TestUpdateKeepsIdentifierOnDateChange(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, dto.UpdateBillRequest{
		Date:          "2025-05-01",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Items: []dto.BillItemRequest{
			{Kind: model.ItemKindSaree, UnitPrice: decimal.NewFromInt(500), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(500),
		PaymentMode: model.PaymentModeCash,
	})
	require.NoError(t, err)

	// The identifier prefix no longer matches the date; both stay as issued
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.URLHash, updated.URLHash)
	assert.Equal(t, "2025-05-01", updated.Date)
}

func TestUpdateMissingBill(t *testing.T) {
	f := newBillFixture()

	_, err := f.svc.Update(context.Background(), "25041999", dto.UpdateBillRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrashRestoreRoundTrip(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Trash(ctx, created.ID))

	// The bill lives in exactly one collection at a time
	_, err = f.bills.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	trashed, err := f.trash.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bills", trashed.OriginalCollection)
	assert.False(t, trashed.DeletedAt.IsZero())

	restored, err := f.svc.Restore(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, restored.ID)
	assert.Equal(t, created.URLHash, restored.URLHash)
	assert.True(t, created.TotalAmount.Equal(restored.TotalAmount))
	_, err = f.trash.FindByID(ctx, created.ID)
	assert.Error(t, err)
}

func TestTrashMissingBill(t *testing.T) {
	f := newBillFixture()
	assert.ErrorIs(t, f.svc.Trash(context.Background(), "25041999"), ErrNotFound)
}

func TestRestoreRequiresTrashedBill(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	// Active but not trashed
	_, err = f.svc.Restore(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurgeIsIrreversible(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)
	require.NoError(t, f.svc.Trash(ctx, created.ID))
	require.NoError(t, f.svc.Purge(ctx, created.ID))

	_, err = f.svc.Restore(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Purge(ctx, created.ID), ErrNotFound)
}

func TestPurgeSkipsActiveBills(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	// Only trashed bills can be purged; the active record is untouched
	assert.ErrorIs(t, f.svc.Purge(ctx, created.ID), ErrNotFound)
	_, err = f.bills.FindByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestShareEmailRequiresAddress(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	err = f.svc.Share(ctx, created.ID, dto.ShareBillRequest{Channel: "email"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResponseCarriesUPILinkWhenConfigured(t *testing.T) {
	f := newBillFixture()
	ctx := context.Background()
	require.NoError(t, f.shop.Put(ctx, &model.ShopDetails{Name: "Sari Palace", UPIID: "shop@upi"}))

	resp, err := f.svc.Create(ctx, sareeRequest())
	require.NoError(t, err)

	assert.Contains(t, resp.UPILink, "upi://pay?pa=shop@upi")
	assert.Contains(t, resp.UPILink, "am=3200.00")
}
