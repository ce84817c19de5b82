package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/cache"
	"travel-crm/internal/metrics"
	"travel-crm/internal/models"
	"travel-crm/internal/timeutil"
)

// InquiryStore is the persistence surface the inquiry service needs.
type InquiryStore interface {
	Create(ctx context.Context, inq *models.Inquiry, history *models.StageHistory) error
	GetByID(ctx context.Context, id int) (*models.Inquiry, error)
	Update(ctx context.Context, inq *models.Inquiry) error
	ChangeStage(ctx context.Context, id int, toStage, notes string, changedBy int) (*models.StageHistory, error)
	Assign(ctx context.Context, id, assignedTo, updatedBy int) error
	SoftDelete(ctx context.Context, id, updatedBy int) error
	BulkUpdate(ctx context.Context, ids []int, upd models.BulkUpdatePayload, updatedBy int) (int, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByInquiry(ctx context.Context, inquiryID int) (*models.PaymentList, error)
}

// HistoryStore reads the stage audit trail.
type HistoryStore interface {
	ListByInquiry(ctx context.Context, inquiryID int) ([]*models.StageHistory, error)
}

// UserGetter resolves users, used to validate assignees.
type UserGetter interface {
	Get(ctx context.Context, id int) (*models.User, error)
}

type InquiryService struct {
	inquiries InquiryStore
	payments  PaymentStore
	histories HistoryStore
	users     UserGetter
}

func NewInquiryService(inquiries InquiryStore, payments PaymentStore, histories HistoryStore, users UserGetter) *InquiryService {
	return &InquiryService{inquiries: inquiries, payments: payments, histories: histories, users: users}
}

// Create validates the request and persists the inquiry together with its
// type-specific detail row and the initial stage history entry. Nothing is
// written when validation fails.
func (s *InquiryService) Create(ctx context.Context, req *models.CreateInquiryRequest, createdBy int) (*models.Inquiry, error) {
	if req.InquiryName == "" {
		return nil, apperrors.Validation("inquiry_name is required")
	}
	if req.CustomerName == "" {
		return nil, apperrors.Validation("customer_name is required")
	}
	if req.CustomerPhone == "" {
		return nil, apperrors.Validation("customer_phone is required")
	}
	if req.TentativeDate == nil {
		return nil, apperrors.Validation("tentative_date is required")
	}
	if !models.ValidInquiryType(req.InquiryType) {
		return nil, apperrors.Validation("inquiry_type must be hotel, ticket or transport")
	}

	priority := req.InquiryPriority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, apperrors.Validation("inquiry_priority must be high, medium or low")
	}

	adults := 1
	if req.AdultsCount != nil {
		adults = *req.AdultsCount
	}
	if adults < 1 {
		return nil, apperrors.Validation("adults_count must be at least 1")
	}
	children := 0
	if req.ChildrenCount != nil {
		children = *req.ChildrenCount
	}
	if children < 0 {
		return nil, apperrors.Validation("children_count cannot be negative")
	}

	ages := req.ChildrenAges
	if ages == nil {
		ages = []int{}
	}

	inq := &models.Inquiry{
		InquiryName:        req.InquiryName,
		InquiryType:        req.InquiryType,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		AdultsCount:        adults,
		ChildrenCount:      children,
		ChildrenAges:       ages,
		TentativeDate:      *req.TentativeDate,
		InquiryPriority:    priority,
		ContactPersonName:  req.ContactPersonName,
		ContactPersonPhone: req.ContactPersonPhone,
		FollowupDate:       req.FollowupDate,
		Stage:              models.StageNew,
		Notes:              req.Notes,
		CreatedBy:          createdBy,
	}
	attachDetailPayload(inq, req.HotelDetails, req.TicketDetails, req.TransportDetails)

	history := &models.StageHistory{
		FromStage: nil,
		ToStage:   models.StageNew,
		ChangedBy: createdBy,
		Notes:     "Inquiry created",
	}

	if err := s.inquiries.Create(ctx, inq, history); err != nil {
		return nil, err
	}

	metrics.InquiriesCreated.WithLabelValues(inq.InquiryType).Inc()
	metrics.StageChanges.WithLabelValues(models.StageNew).Inc()
	cache.InvalidateInquiryCaches(ctx)
	return inq, nil
}

// attachDetailPayload applies the payload matching the inquiry type; the
// other payloads are ignored.
func attachDetailPayload(inq *models.Inquiry, hotel *models.HotelDetailPayload, ticket *models.TicketDetailPayload, transport *models.TransportDetailPayload) {
	switch inq.InquiryType {
	case models.TypeHotel:
		if hotel != nil {
			if inq.HotelDetails == nil {
				inq.HotelDetails = &models.HotelDetail{NumberOfRooms: 1}
			}
			applyHotelPayload(inq.HotelDetails, hotel)
		}
	case models.TypeTicket:
		if ticket != nil {
			if inq.TicketDetails == nil {
				inq.TicketDetails = &models.TicketDetail{}
			}
			applyTicketPayload(inq.TicketDetails, ticket)
		}
	case models.TypeTransport:
		if transport != nil {
			if inq.TransportDetails == nil {
				inq.TransportDetails = &models.TransportDetail{}
			}
			applyTransportPayload(inq.TransportDetails, transport)
		}
	}
}

func applyHotelPayload(d *models.HotelDetail, p *models.HotelDetailPayload) {
	if p.CheckinDate != nil {
		d.CheckinDate = *p.CheckinDate
	}
	if p.CheckoutDate != nil {
		d.CheckoutDate = *p.CheckoutDate
	}
	if p.NumberOfRooms != nil {
		d.NumberOfRooms = *p.NumberOfRooms
	}
	if p.MealPlan != nil {
		d.MealPlan = *p.MealPlan
	}
	if p.Destination != nil {
		d.Destination = *p.Destination
	}
	if p.DurationNights != nil {
		d.DurationNights = *p.DurationNights
	}
	if p.HotelCategory != nil {
		d.HotelCategory = *p.HotelCategory
	}
	if p.BudgetPerPerson != nil {
		d.BudgetPerPerson = p.BudgetPerPerson
	}
	if p.TotalBudget != nil {
		d.TotalBudget = p.TotalBudget
	}
}

func applyTicketPayload(d *models.TicketDetail, p *models.TicketDetailPayload) {
	if p.Destination != nil {
		d.Destination = *p.Destination
	}
	if p.TravelDate != nil {
		d.TravelDate = *p.TravelDate
	}
	if p.TravelMode != nil {
		d.TravelMode = *p.TravelMode
	}
	if p.DepartureFrom != nil {
		d.DepartureFrom = p.DepartureFrom
	}
	if p.ReturnDate != nil {
		d.ReturnDate = p.ReturnDate
	}
	if p.TripType != nil {
		d.TripType = *p.TripType
	}
}

func applyTransportPayload(d *models.TransportDetail, p *models.TransportDetailPayload) {
	if p.Destination != nil {
		d.Destination = *p.Destination
	}
	if p.VehicleType != nil {
		d.VehicleType = *p.VehicleType
	}
	if p.PickupLocation != nil {
		d.PickupLocation = p.PickupLocation
	}
	if p.DropLocation != nil {
		d.DropLocation = p.DropLocation
	}
	if p.PickupDate != nil {
		d.PickupDate = *p.PickupDate
	}
	if p.PickupTime != nil {
		d.PickupTime = p.PickupTime
	}
	if p.VehicleDetails != nil {
		d.VehicleDetails = p.VehicleDetails
	}
}

func (s *InquiryService) Get(ctx context.Context, id int) (*models.Inquiry, error) {
	return s.inquiries.GetByID(ctx, id)
}

// Update merges the non-nil request fields over the current record. The
// inquiry type and stage are never touched here.
func (s *InquiryService) Update(ctx context.Context, id int, req *models.UpdateInquiryRequest, updatedBy int) (*models.Inquiry, error) {
	inq, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InquiryName != nil {
		if *req.InquiryName == "" {
			return nil, apperrors.Validation("inquiry_name cannot be empty")
		}
		inq.InquiryName = *req.InquiryName
	}
	if req.CustomerName != nil {
		if *req.CustomerName == "" {
			return nil, apperrors.Validation("customer_name cannot be empty")
		}
		inq.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		if *req.CustomerPhone == "" {
			return nil, apperrors.Validation("customer_phone cannot be empty")
		}
		inq.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		inq.CustomerEmail = req.CustomerEmail
	}
	if req.AdultsCount != nil {
		if *req.AdultsCount < 1 {
			return nil, apperrors.Validation("adults_count must be at least 1")
		}
		inq.AdultsCount = *req.AdultsCount
	}
	if req.ChildrenCount != nil {
		if *req.ChildrenCount < 0 {
			return nil, apperrors.Validation("children_count cannot be negative")
		}
		inq.ChildrenCount = *req.ChildrenCount
	}
	if req.ChildrenAges != nil {
		inq.ChildrenAges = req.ChildrenAges
	}
	if req.TentativeDate != nil {
		inq.TentativeDate = *req.TentativeDate
	}
	if req.InquiryPriority != nil {
		if !models.ValidPriority(*req.InquiryPriority) {
			return nil, apperrors.Validation("inquiry_priority must be high, medium or low")
		}
		inq.InquiryPriority = *req.InquiryPriority
	}
	if req.ContactPersonName != nil {
		inq.ContactPersonName = req.ContactPersonName
	}
	if req.ContactPersonPhone != nil {
		inq.ContactPersonPhone = req.ContactPersonPhone
	}
	if req.FollowupDate != nil {
		inq.FollowupDate = req.FollowupDate
	}
	if req.Notes != nil {
		inq.Notes = req.Notes
	}
	attachDetailPayload(inq, req.HotelDetails, req.TicketDetails, req.TransportDetails)

	inq.UpdatedBy = &updatedBy
	if err := s.inquiries.Update(ctx, inq); err != nil {
		return nil, err
	}

	cache.InvalidateInquiryCaches(ctx)
	return inq, nil
}

// ChangeStage moves an inquiry to any valid stage, including back to earlier
// ones, and appends the audit entry. An empty note gets a generated one.
func (s *InquiryService) ChangeStage(ctx context.Context, id int, req *models.StageUpdateRequest, changedBy int) (*models.StageHistory, error) {
	if !models.ValidStage(req.Stage) {
		return nil, apperrors.Validation("invalid stage: %s", req.Stage)
	}

	history, err := s.inquiries.ChangeStage(ctx, id, req.Stage, req.Notes, changedBy)
	if err != nil {
		return nil, err
	}

	metrics.StageChanges.WithLabelValues(req.Stage).Inc()
	cache.InvalidateInquiryCaches(ctx)
	return history, nil
}

// Assign hands an inquiry to a user after checking the user exists and is
// active.
func (s *InquiryService) Assign(ctx context.Context, id int, req *models.AssignRequest, updatedBy int) error {
	if req.AssignedTo == 0 {
		return apperrors.Validation("assigned_to is required")
	}
	assignee, err := s.users.Get(ctx, req.AssignedTo)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.Validation("assignee %d does not exist", req.AssignedTo)
		}
		return err
	}
	if !assignee.Status {
		return apperrors.Validation("assignee %d is deactivated", req.AssignedTo)
	}

	if err := s.inquiries.Assign(ctx, id, req.AssignedTo, updatedBy); err != nil {
		return err
	}
	cache.InvalidateInquiryCaches(ctx)
	return nil
}

// Delete soft-deletes an inquiry. Repeating the call reports not found.
func (s *InquiryService) Delete(ctx context.Context, id, deletedBy int) error {
	if err := s.inquiries.SoftDelete(ctx, id, deletedBy); err != nil {
		return err
	}
	cache.InvalidateInquiryCaches(ctx)
	return nil
}

// BulkUpdate applies the same changes to many inquiries at once.
func (s *InquiryService) BulkUpdate(ctx context.Context, req *models.BulkUpdateRequest, updatedBy int) (int, error) {
	if len(req.InquiryIDs) == 0 {
		return 0, apperrors.Validation("inquiry_ids is required")
	}
	upd := req.Updates
	if upd.Stage == nil && upd.InquiryPriority == nil && upd.AssignedTo == nil && upd.FollowupDate == nil {
		return 0, apperrors.Validation("no updates provided")
	}
	if upd.Stage != nil && !models.ValidStage(*upd.Stage) {
		return 0, apperrors.Validation("invalid stage: %s", *upd.Stage)
	}
	if upd.InquiryPriority != nil && !models.ValidPriority(*upd.InquiryPriority) {
		return 0, apperrors.Validation("inquiry_priority must be high, medium or low")
	}
	if upd.AssignedTo != nil {
		if _, err := s.users.Get(ctx, *upd.AssignedTo); err != nil {
			if apperrors.IsNotFound(err) {
				return 0, apperrors.Validation("assignee %d does not exist", *upd.AssignedTo)
			}
			return 0, err
		}
	}

	updated, err := s.inquiries.BulkUpdate(ctx, req.InquiryIDs, upd, updatedBy)
	if err != nil {
		return 0, err
	}
	if upd.Stage != nil {
		metrics.StageChanges.WithLabelValues(*upd.Stage).Add(float64(updated))
	}
	cache.InvalidateInquiryCaches(ctx)
	return updated, nil
}

// AddPayment records money received and bumps the inquiry's paid amount. A
// missing receipt number gets a generated one, missing payment date defaults
// to today.
func (s *InquiryService) AddPayment(ctx context.Context, inquiryID int, req *models.AddPaymentRequest, createdBy int) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, apperrors.Validation("invalid payment_method: %s", req.PaymentMethod)
	}

	paymentDate := timeutil.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	receipt := req.ReceiptNumber
	if receipt == "" {
		receipt = GenerateReceiptNumber()
	}

	p := &models.Payment{
		InquiryID:     inquiryID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
		ReceiptNumber: receipt,
		CreatedBy:     createdBy,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(p.PaymentMethod).Inc()
	cache.InvalidateInquiryCaches(ctx)
	return p, nil
}

// ListPayments returns an inquiry's payments after confirming it exists.
func (s *InquiryService) ListPayments(ctx context.Context, inquiryID int) (*models.PaymentList, error) {
	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}
	return s.payments.ListByInquiry(ctx, inquiryID)
}

// ListHistory returns an inquiry's stage audit trail, oldest first.
func (s *InquiryService) ListHistory(ctx context.Context, inquiryID int) ([]*models.StageHistory, error) {
	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}
	return s.histories.ListByInquiry(ctx, inquiryID)
}

// GenerateReceiptNumber builds a receipt number from the current time plus a
// random suffix, e.g. RCP1735555555123042.
func GenerateReceiptNumber() string {
	return fmt.Sprintf("RCP%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
