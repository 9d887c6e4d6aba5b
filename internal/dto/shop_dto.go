package dto

// UpdateShopRequest replaces the shop singleton.
type UpdateShopRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"   validate:"required,min=6,max=15"`
	GST     *string `json:"gst"     validate:"omitempty,min=5"`
	Logo    *string `json:"logo"    validate:"omitempty,url"`
	UPIID   string  `json:"upi_id"`
}

type ShopResponse struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	GST     *string `json:"gst,omitempty"`
	Logo    *string `json:"logo,omitempty"`
	UPIID   string  `json:"upi_id"`
}
