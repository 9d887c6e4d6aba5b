package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item kinds sold by the shop. A custom label may accompany any kind.
const (
	ItemKindSaree     = "Saree"
	ItemKindDress     = "Dress"
	ItemKindSuitPiece = "Suit-Piece"
)

// Payment modes accepted on a bill.
const (
	PaymentModeCash = "CASH"
	PaymentModeUPI  = "UPI"
)

// BillItem is one line of a bill. Items are embedded in the bill row as a
// JSONB array: a bill moves between collections (active → trash → active)
// as a whole document, so its lines travel with it.
type BillItem struct {
	Kind        string          `json:"kind"`
	CustomLabel string          `json:"customLabel,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns unit price × quantity for the line.
func (i BillItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// BillItems serializes to a JSONB column.
type BillItems []BillItem

func (items BillItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *BillItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return fmt.Errorf("bill items: unsupported column type %T", value)
	}
}

// Bill is the central entity. ID is the human-readable sequential identifier
// (YYMMDD prefix + two-digit daily counter) and doubles as the legacy lookup
// key; URLHash is the public, non-enumerable viewer token. Both are immutable
// once assigned.
type Bill struct {
	ID            string          `gorm:"type:varchar(8);primaryKey"`
	URLHash       string          `gorm:"type:varchar(8);uniqueIndex;not null"`
	Date          time.Time       `gorm:"index;not null"`
	CustomerName  string          `gorm:"type:varchar(100)"`
	CustomerPhone string          `gorm:"type:varchar(20);index;not null"`
	Items         BillItems       `gorm:"type:jsonb;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode   string          `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Bill) TableName() string { return "bills" }

// Name returns the display label of an item: the custom label when present,
// otherwise the kind.
func (i BillItem) Name() string {
	if i.CustomLabel != "" {
		return i.CustomLabel
	}
	return i.Kind
}

// Validate enforces the write-time invariants of a bill: a customer phone,
// at least one item, every item named with a positive price and quantity,
// a known payment mode, and a total that matches the sum of line subtotals.
func (b *Bill) Validate() error {
	if b.CustomerPhone == "" {
		return errors.New("customer phone is required")
	}
	if b.CustomerName == "" {
		return errors.New("customer name is required")
	}
	if len(b.Items) == 0 {
		return errors.New("bill must contain at least one item")
	}
	if b.PaymentMode != PaymentModeCash && b.PaymentMode != PaymentModeUPI {
		return fmt.Errorf("unknown payment mode %q", b.PaymentMode)
	}
	sum := decimal.Zero
	for i, item := range b.Items {
		if item.Name() == "" {
			return fmt.Errorf("item %d has no name", i+1)
		}
		if !item.UnitPrice.IsPositive() {
			return fmt.Errorf("item %d has non-positive price", i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d has non-positive quantity", i+1)
		}
		sum = sum.Add(item.Subtotal())
	}
	if !sum.Equal(b.TotalAmount) {
		return fmt.Errorf("total amount %s does not match item sum %s", b.TotalAmount, sum)
	}
	return nil
}
