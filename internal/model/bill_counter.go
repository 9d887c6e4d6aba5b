package model

// BillCounter tracks the last sequence number issued for one business date.
// Prefix is the YYMMDD date prefix of the bill identifier. Allocation happens
// with a single UPSERT … RETURNING so concurrent creators can never observe
// the same value.
type BillCounter struct {
	Prefix  string `gorm:"type:varchar(6);primaryKey"`
	LastSeq int    `gorm:"not null"`
}

func (BillCounter) TableName() string { return "bill_counters" }
