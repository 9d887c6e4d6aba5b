package model

import "time"

// Customer is keyed by phone number. It has no lifecycle of its own beyond
// upsert-on-bill-creation; a recurring phone overwrites the stored name.
type Customer struct {
	Phone     string `gorm:"type:varchar(20);primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string { return "customers" }
