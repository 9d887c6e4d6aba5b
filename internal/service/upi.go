package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// BuildUPILink constructs a upi://pay deep link the client renders as a QR
// code or tap-to-pay button. Amount is clamped at zero and fixed to two
// decimals; payee name and note are query-escaped.
func BuildUPILink(payeeVPA, payeeName string, amount decimal.Decimal, note string) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&tn=%s&cu=INR",
		payeeVPA,
		url.QueryEscape(strings.TrimSpace(payeeName)),
		amount.StringFixed(2),
		url.QueryEscape(strings.TrimSpace(note)),
	)
}
