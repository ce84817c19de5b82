package models

import "time"

// Inquiry stages form a permissive sales pipeline: any stage may be set from
// any other, including re-opening closed or cancelled inquiries.
const (
	StageNew                = "new"
	StageInProgress         = "in_progress"
	StageWaitingForCustomer = "waiting_for_customer"
	StageNeedChanges        = "need_changes"
	StageApproved           = "approved"
	StageClosed             = "closed"
	StageCancelled          = "cancelled"
)

const (
	TypeHotel     = "hotel"
	TypeTicket    = "ticket"
	TypeTransport = "transport"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Stages lists every pipeline stage in board order.
var Stages = []string{
	StageNew,
	StageInProgress,
	StageWaitingForCustomer,
	StageNeedChanges,
	StageApproved,
	StageClosed,
	StageCancelled,
}

func ValidStage(s string) bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

func ValidInquiryType(t string) bool {
	return t == TypeHotel || t == TypeTicket || t == TypeTransport
}

func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Inquiry struct {
	ID                 int        `json:"id"`
	InquiryName        string     `json:"inquiry_name"`
	InquiryType        string     `json:"inquiry_type"`
	CustomerName       string     `json:"customer_name"`
	CustomerPhone      string     `json:"customer_phone"`
	CustomerEmail      *string    `json:"customer_email,omitempty"`
	AdultsCount        int        `json:"adults_count"`
	ChildrenCount      int        `json:"children_count"`
	ChildrenAges       []int      `json:"children_ages,omitempty"`
	TentativeDate      time.Time  `json:"tentative_date"`
	InquiryPriority    string     `json:"inquiry_priority"`
	ContactPersonName  *string    `json:"contact_person_name,omitempty"`
	ContactPersonPhone *string    `json:"contact_person_phone,omitempty"`
	FollowupDate       *time.Time `json:"followup_date,omitempty"`
	Stage              string     `json:"stage"`
	AssignedTo         *int       `json:"assigned_to,omitempty"`
	TotalAmount        float64    `json:"total_amount"`
	PaidAmount         float64    `json:"paid_amount"`
	Notes              *string    `json:"notes,omitempty"`
	Status             bool       `json:"status"`
	CreatedBy          int        `json:"created_by"`
	UpdatedBy          *int       `json:"updated_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Denormalized user names for display
	CreatorName  string  `json:"creator_name,omitempty"`
	AssigneeName *string `json:"assignee_name,omitempty"`

	// Exactly one of these matches InquiryType; the others stay nil.
	HotelDetails     *HotelDetail     `json:"hotel_details,omitempty"`
	TicketDetails    *TicketDetail    `json:"ticket_details,omitempty"`
	TransportDetails *TransportDetail `json:"transport_details,omitempty"`
}

// CreateInquiryRequest is the payload for creating an inquiry. The
// type-specific detail payload matching InquiryType is optional.
type CreateInquiryRequest struct {
	InquiryName        string     `json:"inquiry_name"`
	InquiryType        string     `json:"inquiry_type"`
	CustomerName       string     `json:"customer_name"`
	CustomerPhone      string     `json:"customer_phone"`
	CustomerEmail      *string    `json:"customer_email"`
	AdultsCount        *int       `json:"adults_count"`
	ChildrenCount      *int       `json:"children_count"`
	ChildrenAges       []int      `json:"children_ages"`
	TentativeDate      *time.Time `json:"tentative_date"`
	InquiryPriority    string     `json:"inquiry_priority"`
	ContactPersonName  *string    `json:"contact_person_name"`
	ContactPersonPhone *string    `json:"contact_person_phone"`
	FollowupDate       *time.Time `json:"followup_date"`
	Notes              *string    `json:"notes"`

	HotelDetails     *HotelDetailPayload     `json:"hotel_details"`
	TicketDetails    *TicketDetailPayload    `json:"ticket_details"`
	TransportDetails *TransportDetailPayload `json:"transport_details"`
}

// UpdateInquiryRequest carries partial updates; nil fields keep their
// current values.
type UpdateInquiryRequest struct {
	InquiryName        *string    `json:"inquiry_name"`
	CustomerName       *string    `json:"customer_name"`
	CustomerPhone      *string    `json:"customer_phone"`
	CustomerEmail      *string    `json:"customer_email"`
	AdultsCount        *int       `json:"adults_count"`
	ChildrenCount      *int       `json:"children_count"`
	ChildrenAges       []int      `json:"children_ages"`
	TentativeDate      *time.Time `json:"tentative_date"`
	InquiryPriority    *string    `json:"inquiry_priority"`
	ContactPersonName  *string    `json:"contact_person_name"`
	ContactPersonPhone *string    `json:"contact_person_phone"`
	FollowupDate       *time.Time `json:"followup_date"`
	Notes              *string    `json:"notes"`

	HotelDetails     *HotelDetailPayload     `json:"hotel_details"`
	TicketDetails    *TicketDetailPayload    `json:"ticket_details"`
	TransportDetails *TransportDetailPayload `json:"transport_details"`
}

// StageUpdateRequest is the payload for a stage change.
type StageUpdateRequest struct {
	Stage string `json:"stage"`
	Notes string `json:"notes"`
}

// AssignRequest is the payload for assigning an inquiry to a user.
type AssignRequest struct {
	AssignedTo int `json:"assigned_to"`
}

// BulkUpdateRequest applies the same field updates to many inquiries.
type BulkUpdateRequest struct {
	InquiryIDs []int             `json:"inquiry_ids"`
	Updates    BulkUpdatePayload `json:"updates"`
}

// BulkUpdatePayload holds the fields a bulk update may touch.
type BulkUpdatePayload struct {
	Stage           *string    `json:"stage"`
	InquiryPriority *string    `json:"priority"`
	AssignedTo      *int       `json:"assigned_to"`
	FollowupDate    *time.Time `json:"followup_date"`
}

// ListInquiriesQuery collects the filter, sort, and pagination parameters
// for listing inquiries. Soft-deleted rows are always excluded.
type ListInquiriesQuery struct {
	Page        int
	Limit       int
	Search      string
	Stage       string
	InquiryType string
	Priority    string
	AssignedTo  int
	DateFrom    *time.Time
	DateTo      *time.Time
	SortBy      string
	SortOrder   string
}

// Pagination describes one page of a paginated result.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	TotalPages  int `json:"total_pages"`
}

// InquiryPage is one page of inquiries plus pagination metadata.
type InquiryPage struct {
	Inquiries  []*Inquiry `json:"inquiries"`
	Pagination Pagination `json:"pagination"`
}

// StageCount is a per-stage/type/priority count bucket.
type StageCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DashboardStats aggregates the active inquiry set.
type DashboardStats struct {
	StageStats    []StageCount    `json:"stage_stats"`
	TypeStats     []StageCount    `json:"type_stats"`
	PriorityStats []StageCount    `json:"priority_stats"`
	Totals        DashboardTotals `json:"total_stats"`
}

// DashboardTotals sums amounts over the filtered set.
type DashboardTotals struct {
	TotalAmount    float64 `json:"total_amount"`
	PaidAmount     float64 `json:"paid_amount"`
	TotalInquiries int     `json:"total_inquiries"`
}

// StatsQuery filters dashboard aggregates.
type StatsQuery struct {
	AssignedTo int
	DateFrom   *time.Time
	DateTo     *time.Time
}

// BoardColumn is one stage column of the kanban board. Count is the total
// number of active inquiries in the stage even when Inquiries is capped.
type BoardColumn struct {
	Stage     string     `json:"stage"`
	Count     int        `json:"count"`
	Inquiries []*Inquiry `json:"inquiries"`
}

// BoardQuery filters the kanban board view.
type BoardQuery struct {
	AssignedTo  int
	InquiryType string
}

// ExportRow is the flattened projection used for exports.
type ExportRow struct {
	InquiryName   string    `json:"inquiry_name"`
	InquiryType   string    `json:"inquiry_type"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	AdultsCount   int       `json:"adults_count"`
	ChildrenCount int       `json:"children_count"`
	TentativeDate time.Time `json:"tentative_date"`
	Stage         string    `json:"stage"`
	Priority      string    `json:"priority"`
	TotalAmount   float64   `json:"total_amount"`
	PaidAmount    float64   `json:"paid_amount"`
	CreatedAt     time.Time `json:"created_at"`
	Assignee      string    `json:"assignee"`
}
