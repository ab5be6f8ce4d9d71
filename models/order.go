package models

import (
	"errors"
	"strings"
)

type PaymentMethod string

const (
	PaymentGCash      PaymentMethod = "GCash"
	PaymentPayPal     PaymentMethod = "PayPal"
	PaymentCashOnHand PaymentMethod = "Cash on Hand"
)

// OrderTimeLayout is how order timestamps are rendered in history.
const OrderTimeLayout = "2006-01-02 15:04"

// PCNotSpecified replaces an empty PC number on orders and summaries.
const PCNotSpecified = "Not specified"

var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// PaymentMethods lists the accepted methods in the order they are offered.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentGCash, PaymentPayPal, PaymentCashOnHand}
}

// ParsePaymentMethod maps user input to a PaymentMethod, ignoring case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	for _, m := range PaymentMethods() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", ErrUnknownPaymentMethod
}

// Order is a completed checkout. It is immutable once recorded.
type Order struct {
	Ref           string        `json:"ref"`
	Time          string        `json:"time"`
	ItemsSummary  string        `json:"items_summary"` // one "name xQty = Ptotal" per line
	Total         int           `json:"total"`
	ItemCount     int           `json:"item_count"`
	PCNumber      string        `json:"pc_number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
