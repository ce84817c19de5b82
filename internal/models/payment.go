package models

import "time"

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodUPI          = "upi"
	PaymentMethodCheque       = "cheque"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodUPI, PaymentMethodCheque:
		return true
	}
	return false
}

// Payment records money received against an inquiry. Inserting one atomically
// increments the parent inquiry's paid_amount by the same amount.
type Payment struct {
	ID            int       `json:"id"`
	InquiryID     int       `json:"inquiry_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ReceiptNumber string    `json:"receipt_number"`
	CreatedBy     int       `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`

	CreatorName string `json:"creator_name,omitempty"`
}

// AddPaymentRequest is the payload for recording a payment.
type AddPaymentRequest struct {
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDate   *time.Time `json:"payment_date"`
	TransactionID *string    `json:"transaction_id"`
	Notes         *string    `json:"notes"`
	ReceiptNumber string     `json:"receipt_number"`
}

// PaymentList is the payments of one inquiry plus their running total.
type PaymentList struct {
	Payments  []*Payment `json:"payments"`
	TotalPaid float64    `json:"total_paid"`
}

// PaymentLink is an online collection link for an inquiry's outstanding
// balance, created through the payment gateway.
type PaymentLink struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	ShortURL string  `json:"short_url,omitempty"`
}
