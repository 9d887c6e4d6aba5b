package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validBill() *Bill {
	return &Bill{
		ID:            "25041901",
		URLHash:       "a1b2c3d4",
		CustomerName:  "Priya Sharma",
		CustomerPhone: "9876543210",
		Items: BillItems{
			{Kind: ItemKindSaree, UnitPrice: decimal.NewFromInt(1200), Quantity: 2},
			{Kind: ItemKindSuitPiece, CustomLabel: "Silk suit piece", UnitPrice: decimal.NewFromInt(600), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(3000),
		PaymentMode: PaymentModeCash,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validBill().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bill)
	}{
		{"missing phone", func(b *Bill) { b.CustomerPhone = "" }},
		{"missing name", func(b *Bill) { b.CustomerName = "" }},
		{"no items", func(b *Bill) { b.Items = nil }},
		{"unknown payment mode", func(b *Bill) { b.PaymentMode = "CHEQUE" }},
		{"zero price item", func(b *Bill) { b.Items[0].UnitPrice = decimal.Zero }},
		{"zero quantity item", func(b *Bill) { b.Items[0].Quantity = 0 }},
		{"total does not match items", func(b *Bill) { b.TotalAmount = decimal.NewFromInt(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBill()
			tt.mutate(b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestItemName(t *testing.T) {
	item := BillItem{Kind: ItemKindSaree}
	assert.Equal(t, "Saree", item.Name())

	item.CustomLabel = "Kanjeevaram silk"
	assert.Equal(t, "Kanjeevaram silk", item.Name())
}

func TestTrashedBillRoundTrip(t *testing.T) {
	original := validBill()
	trashed := NewTrashedBill(original, time.Now().UTC())

	assert.Equal(t, "bills", trashed.OriginalCollection)

	restored := trashed.Bill()
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.URLHash, restored.URLHash)
	assert.True(t, original.TotalAmount.Equal(restored.TotalAmount))
	assert.Equal(t, original.Items, restored.Items)
}
