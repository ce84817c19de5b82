package models

import "time"

const (
	DetailTypeQuotation = "quotation"
	DetailTypeNote      = "note"
	DetailTypeReminder  = "reminder"
)

func ValidDetailType(t string) bool {
	return t == DetailTypeQuotation || t == DetailTypeNote || t == DetailTypeReminder
}

// InquiryDetail is a free-form attachment on an inquiry: a quotation, a note,
// or a reminder. It has no effect on other aggregates.
type InquiryDetail struct {
	ID           int        `json:"id"`
	InquiryID    int        `json:"inquiry_id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Attachment   *string    `json:"attachment,omitempty"` // object storage key
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	IsCompleted  bool       `json:"is_completed"`
	CreatedBy    int        `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`

	CreatorName string `json:"creator_name,omitempty"`
}

// AddDetailRequest is the payload for attaching a detail to an inquiry.
type AddDetailRequest struct {
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Attachment   *string    `json:"attachment"`
	ReminderDate *time.Time `json:"reminder_date"`
}

// ListDetailsQuery filters and paginates an inquiry's details.
type ListDetailsQuery struct {
	Type  string
	Page  int
	Limit int
}

// DetailPage is one page of details plus pagination metadata.
type DetailPage struct {
	Details    []*InquiryDetail `json:"details"`
	Pagination Pagination       `json:"pagination"`
}
