package service

import (
	"context"
	"testing"
	"time"

	"saribill/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		queryID string
		kind    LookupKind
		value   string
	}{
		{"legacy query parameter wins", "/view/whatever", "ABC", LookupOldID, "ABC"},
		{"empty segment", "/view/", "", LookupInvalid, ""},
		{"the page itself", "/view/index.html", "", LookupInvalid, ""},
		{"eight lowercase alphanumerics", "/view/a1b2c3d4", "", LookupHash, "a1b2c3d4"},
		{"eight digits is still a hash shape", "/view/19042501", "", LookupHash, "19042501"},
		{"uppercase falls through to identifier", "/view/A1B2C3D4", "", LookupOldID, "A1B2C3D4"},
		{"wrong length falls through to identifier", "/view/190425", "", LookupOldID, "190425"},
		{"bare segment without directory", "a1b2c3d4", "", LookupHash, "a1b2c3d4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, value := ClassifyIdentifier(tt.path, tt.queryID)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.value, value)
		})
	}
}

type publicFixture struct {
	svc   PublicService
	bills *memBillRepo
	old   *memOldBillRepo
	shop  *memShopRepo
}

func newPublicFixture() *publicFixture {
	f := &publicFixture{
		bills: newMemBillRepo(),
		old:   newMemOldBillRepo(),
		shop:  &memShopRepo{shop: &model.ShopDetails{Name: "Sari Palace", Phone: "0401234567", UPIID: "shop@upi"}},
	}
	f.svc = NewPublicService(f.bills, f.old, f.shop, nil, "http://localhost:8000")
	return f
}

func storedBill(id, hash string) *model.Bill {
	return &model.Bill{
		ID:            id,
		URLHash:       hash,
		Date:          time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Items: model.BillItems{
			{Kind: model.ItemKindSaree, UnitPrice: decimal.NewFromInt(1500), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(1500),
		PaymentMode: model.PaymentModeCash,
	}
}

func TestResolveByHash(t *testing.T) {
	f := newPublicFixture()
	ctx := context.Background()
	require.NoError(t, f.bills.Create(ctx, nil, storedBill("25041901", "a1b2c3d4")))

	resp, err := f.svc.Resolve(ctx, "/a1b2c3d4", "")
	require.NoError(t, err)

	assert.Equal(t, "25041901", resp.Bill.ID)
	assert.Equal(t, "Sari Palace", resp.Shop.Name)
	assert.Contains(t, resp.Bill.UPILink, "upi://pay?pa=shop@upi")
}

func TestResolveByLegacyIdentifier(t *testing.T) {
	f := newPublicFixture()
	ctx := context.Background()
	require.NoError(t, f.bills.Create(ctx, nil, storedBill("250419-01", "a1b2c3d4")))

	// Nine characters: not hash-shaped, resolved as an identifier
	resp, err := f.svc.Resolve(ctx, "/250419-01", "")
	require.NoError(t, err)
	assert.Equal(t, "250419-01", resp.Bill.ID)

	// Same record through the ?id= form
	resp, err = f.svc.Resolve(ctx, "/index.html", "250419-01")
	require.NoError(t, err)
	assert.Equal(t, "250419-01", resp.Bill.ID)
}

func TestResolveFallsBackToArchive(t *testing.T) {
	f := newPublicFixture()
	f.old.bills["19042501-1"] = &model.OldBill{
		ID:            "19042501-1",
		Date:          time.Date(2019, time.April, 25, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Asha Rao",
		CustomerPhone: "9000000000",
		Items: model.BillItems{
			{Kind: model.ItemKindDress, UnitPrice: decimal.NewFromInt(700), Quantity: 2},
		},
		TotalAmount: decimal.NewFromInt(1400),
		PaymentMode: model.PaymentModeCash,
	}

	resp, err := f.svc.Resolve(context.Background(), "/19042501-1", "")
	require.NoError(t, err)
	assert.Equal(t, "19042501-1", resp.Bill.ID)
	assert.Equal(t, "Asha Rao", resp.Bill.CustomerName)
}

func TestResolveUnknownHash(t *testing.T) {
	f := newPublicFixture()

	_, err := f.svc.Resolve(context.Background(), "/zzzzzzzz", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveUnknownIdentifier(t *testing.T) {
	f := newPublicFixture()

	_, err := f.svc.Resolve(context.Background(), "/no-such-bill", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveInvalidRequest(t *testing.T) {
	f := newPublicFixture()

	_, err := f.svc.Resolve(context.Background(), "/view/", "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = f.svc.Resolve(context.Background(), "/view/index.html", "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
