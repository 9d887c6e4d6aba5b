package model

import "time"

// ShopDetailsKey is the fixed key of the shop singleton row.
const ShopDetailsKey = "details"

// ShopDetails is a singleton record holding the shop profile. Read by the
// billing and public-viewer flows, mutated only through the settings endpoint.
type ShopDetails struct {
	ID      string  `gorm:"type:varchar(20);primaryKey"`
	Name    string  `gorm:"type:varchar(100);not null"`
	Address string  `gorm:"type:varchar(255)"`
	Phone   string  `gorm:"type:varchar(20)"`
	GST     *string `gorm:"type:varchar(20);column:gst"`
	Logo    *string
	// UPIID is the payee VPA used to build upi:// payment links.
	UPIID     string `gorm:"type:varchar(100);column:upi_id"`
	UpdatedAt time.Time
}

func (ShopDetails) TableName() string { return "shop" }
