package domain

import "time"

type PaymentMethod string

const (
	PaymentDebit  PaymentMethod = "debit"
	PaymentCredit PaymentMethod = "credit"
	PaymentCash   PaymentMethod = "cash"
	PaymentPix    PaymentMethod = "pix"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentDebit, PaymentCredit, PaymentCash, PaymentPix:
		return true
	}
	return false
}

type CartItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type CheckoutRequest struct {
	Method       PaymentMethod `json:"method"`
	Received     float64       `json:"received,omitempty"`
	Installments int           `json:"installments,omitempty"`
}

// Receipt is the result of a simulated payment.
type Receipt struct {
	Method       PaymentMethod `json:"method"`
	Items        []CartItem    `json:"items"`
	Total        float64       `json:"total"`
	Received     float64       `json:"received,omitempty"`
	Change       float64       `json:"change,omitempty"`
	Installments int           `json:"installments,omitempty"`
	PixCode      string        `json:"pixCode,omitempty"`
	PaidAt       time.Time     `json:"paidAt"`
}
