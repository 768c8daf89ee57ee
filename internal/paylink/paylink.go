// Package paylink renders UPI deep links for settlement transfers.
package paylink

import (
	"net/url"
	"strings"

	"github.com/mmynk/tripsplit/internal/money"
)

// Request describes a single payment to be made.
type Request struct {
	PayeeAddress string // UPI VPA, e.g. "alice@okbank"
	PayeeName    string
	Amount       money.Amount
	Currency     string
	Note         string
}

// UPI returns a upi://pay link, or "" when the payee has no address or the
// amount is not positive.
func UPI(r Request) string {
	address := strings.TrimSpace(r.PayeeAddress)
	if address == "" || r.Amount <= 0 {
		return ""
	}

	currency := r.Currency
	if currency == "" {
		currency = "INR"
	}

	q := url.Values{}
	q.Set("pa", address)
	if r.PayeeName != "" {
		q.Set("pn", r.PayeeName)
	}
	q.Set("am", r.Amount.String())
	q.Set("cu", currency)
	if r.Note != "" {
		q.Set("tn", r.Note)
	}

	return "upi://pay?" + q.Encode()
}
