package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// BillFilter is bound from query string of GET /v1/bills.
// From/To filter on the business date (inclusive day bounds).
type BillFilter struct {
	From  string `form:"from"`  // YYYY-MM-DD
	To    string `form:"to"`    // YYYY-MM-DD
	Phone string `form:"phone"` // exact customer phone
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BillItemRequest struct {
	Kind        string          `json:"kind"         validate:"required,oneof=Saree Dress Suit-Piece"`
	CustomLabel string          `json:"custom_label"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"required,gt=0"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
}

type CreateBillRequest struct {
	// Date is the business date the bill is recorded against (YYYY-MM-DD).
	// Defaults to today when empty. Drives the identifier prefix.
	Date          string            `json:"date"           validate:"omitempty,datetime=2006-01-02"`
	CustomerName  string            `json:"customer_name"  validate:"required"`
	CustomerPhone string            `json:"customer_phone" validate:"required,min=6,max=15"`
	Items         []BillItemRequest `json:"items"          validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal   `json:"total_amount"   validate:"required"`
	PaymentMode   string            `json:"payment_mode"   validate:"required,oneof=CASH UPI"`
	// ShareVia dispatches the bill link after creation: "whatsapp" | "email".
	ShareVia   *string `json:"share_via"   validate:"omitempty,oneof=whatsapp email"`
	ShareEmail *string `json:"share_email" validate:"omitempty,email"`
}

// UpdateBillRequest carries the full replacement field set of an existing
// bill. The identifier and url hash are never part of it — both stay as
// issued, even when the business date changes.
type UpdateBillRequest struct {
	Date          string            `json:"date"           validate:"required,datetime=2006-01-02"`
	CustomerName  string            `json:"customer_name"  validate:"required"`
	CustomerPhone string            `json:"customer_phone" validate:"required,min=6,max=15"`
	Items         []BillItemRequest `json:"items"          validate:"required,min=1,dive"`
	TotalAmount   decimal.Decimal   `json:"total_amount"   validate:"required"`
	PaymentMode   string            `json:"payment_mode"   validate:"required,oneof=CASH UPI"`
}

type ShareBillRequest struct {
	Channel string  `json:"channel" validate:"required,oneof=whatsapp email"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BillItemResponse struct {
	Kind        string          `json:"kind"`
	CustomLabel string          `json:"custom_label,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type BillResponse struct {
	ID            string             `json:"id"`
	URLHash       string             `json:"url_hash"`
	Date          string             `json:"date"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []BillItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMode   string             `json:"payment_mode"`
	ViewURL       string             `json:"view_url"`
	// UPILink is present when the shop has a UPI payee id configured.
	UPILink   string `json:"upi_link,omitempty"`
	CreatedAt string `json:"created_at"`
}

// TrashedBillResponse is a bill as shown in the trash listing.
type TrashedBillResponse struct {
	BillResponse
	DeletedAt string `json:"deleted_at"`
}
