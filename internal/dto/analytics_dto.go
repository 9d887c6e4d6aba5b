package dto

import "github.com/shopspring/decimal"

// AnalyticsFilter is bound from query string of GET /v1/analytics/summary.
type AnalyticsFilter struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// PaymentSlice is one wedge of the payment-mode distribution.
type PaymentSlice struct {
	Mode   string          `json:"mode"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyRevenue is one point of the per-day revenue series.
type DailyRevenue struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type AnalyticsSummaryResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	BillCount    int64           `json:"bill_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	AverageBill  decimal.Decimal `json:"average_bill"`
	PaymentModes []PaymentSlice  `json:"payment_modes"`
	Daily        []DailyRevenue  `json:"daily"`
}
