package models

import "time"

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceItem is one line item on an invoice, stored as JSON on the invoice row.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is a billing document attached to an inquiry. Invoice numbers are
// unique; duplicates surface as a conflict.
type Invoice struct {
	ID            int           `json:"id"`
	InquiryID     int           `json:"inquiry_id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	Subtotal      float64       `json:"subtotal"`
	GSTAmount     float64       `json:"gst_amount"`
	TotalAmount   float64       `json:"total_amount"`
	GSTNumber     *string       `json:"gst_number,omitempty"`
	Items         []InvoiceItem `json:"invoice_items"`
	Status        string        `json:"status"`
	CreatedBy     int           `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	CreatorName string `json:"creator_name,omitempty"`
}

// CreateInvoiceRequest is the payload for creating an invoice. An empty
// invoice number requests server-side generation.
type CreateInvoiceRequest struct {
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   *time.Time    `json:"invoice_date"`
	Subtotal      float64       `json:"subtotal"`
	GSTAmount     float64       `json:"gst_amount"`
	TotalAmount   float64       `json:"total_amount"`
	GSTNumber     *string       `json:"gst_number"`
	Items         []InvoiceItem `json:"invoice_items"`
	Status        string        `json:"status"`
}
