package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrashedBill is a soft-deleted bill held in the trash collection. It mirrors
// Bill field-for-field plus the two trash markers, so restore can strip them
// and put the record back unchanged.
type TrashedBill struct {
	ID            string          `gorm:"type:varchar(8);primaryKey"`
	URLHash       string          `gorm:"type:varchar(8);not null"`
	Date          time.Time       `gorm:"not null"`
	CustomerName  string          `gorm:"type:varchar(100)"`
	CustomerPhone string          `gorm:"type:varchar(20);not null"`
	Items         BillItems       `gorm:"type:jsonb;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode   string          `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	DeletedAt          time.Time `gorm:"index;not null"`
	OriginalCollection string    `gorm:"type:varchar(20);not null"`
}

func (TrashedBill) TableName() string { return "trash" }

// NewTrashedBill wraps an active bill for the trash collection.
func NewTrashedBill(b *Bill, deletedAt time.Time) *TrashedBill {
	return &TrashedBill{
		ID:                 b.ID,
		URLHash:            b.URLHash,
		Date:               b.Date,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		Items:              b.Items,
		TotalAmount:        b.TotalAmount,
		PaymentMode:        b.PaymentMode,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		DeletedAt:          deletedAt,
		OriginalCollection: Bill{}.TableName(),
	}
}

// Bill strips the trash markers and returns the original record.
func (t *TrashedBill) Bill() *Bill {
	return &Bill{
		ID:            t.ID,
		URLHash:       t.URLHash,
		Date:          t.Date,
		CustomerName:  t.CustomerName,
		CustomerPhone: t.CustomerPhone,
		Items:         t.Items,
		TotalAmount:   t.TotalAmount,
		PaymentMode:   t.PaymentMode,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// OldBill lives in the read-only old_bills archive: bills issued before the
// hash scheme existed, kept resolvable by their legacy identifier. Written
// only by the backfill command, never by the running service.
type OldBill struct {
	ID            string          `gorm:"type:varchar(12);primaryKey"`
	URLHash       string          `gorm:"type:varchar(8)"`
	Date          time.Time       `gorm:"not null"`
	CustomerName  string          `gorm:"type:varchar(100)"`
	CustomerPhone string          `gorm:"type:varchar(20)"`
	Items         BillItems       `gorm:"type:jsonb;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode   string          `gorm:"type:varchar(10)"`
	CreatedAt     time.Time
}

func (OldBill) TableName() string { return "old_bills" }
