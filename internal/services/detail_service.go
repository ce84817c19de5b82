package services

import (
	"context"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
)

// DetailStore persists inquiry details.
type DetailStore interface {
	Create(ctx context.Context, d *models.InquiryDetail) error
	ListByInquiry(ctx context.Context, inquiryID int, q models.ListDetailsQuery) (*models.DetailPage, error)
	MarkCompleted(ctx context.Context, id int) error
}

type DetailService struct {
	details   DetailStore
	inquiries InquiryStore
	storage   *StorageService
}

func NewDetailService(details DetailStore, inquiries InquiryStore, storage *StorageService) *DetailService {
	return &DetailService{details: details, inquiries: inquiries, storage: storage}
}

// Add attaches a quotation, note, or reminder to an inquiry.
func (s *DetailService) Add(ctx context.Context, inquiryID int, req *models.AddDetailRequest, createdBy int) (*models.InquiryDetail, error) {
	detailType := req.Type
	if detailType == "" {
		detailType = models.DetailTypeNote
	}
	if !models.ValidDetailType(detailType) {
		return nil, apperrors.Validation("type must be quotation, note or reminder")
	}
	if req.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if detailType == models.DetailTypeReminder && req.ReminderDate == nil {
		return nil, apperrors.Validation("reminder_date is required for reminders")
	}

	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}

	d := &models.InquiryDetail{
		InquiryID:    inquiryID,
		Type:         detailType,
		Title:        req.Title,
		Description:  req.Description,
		Attachment:   req.Attachment,
		ReminderDate: req.ReminderDate,
		CreatedBy:    createdBy,
	}
	if err := s.details.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AddWithAttachment uploads the file to object storage before saving the
// detail carrying its key.
func (s *DetailService) AddWithAttachment(ctx context.Context, inquiryID int, req *models.AddDetailRequest, createdBy int, filename, contentType string, data []byte) (*models.InquiryDetail, error) {
	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}

	key, err := s.storage.Upload(ctx, inquiryID, filename, contentType, data)
	if err != nil {
		return nil, err
	}
	req.Attachment = &key
	return s.Add(ctx, inquiryID, req, createdBy)
}

// List returns one page of an inquiry's details.
func (s *DetailService) List(ctx context.Context, inquiryID int, q models.ListDetailsQuery) (*models.DetailPage, error) {
	if q.Type != "" && !models.ValidDetailType(q.Type) {
		return nil, apperrors.Validation("type must be quotation, note or reminder")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}
	return s.details.ListByInquiry(ctx, inquiryID, q)
}

// Complete marks a reminder as done.
func (s *DetailService) Complete(ctx context.Context, id int) error {
	return s.details.MarkCompleted(ctx, id)
}

// DownloadAttachment streams a stored attachment.
func (s *DetailService) DownloadAttachment(ctx context.Context, key string) ([]byte, string, error) {
	return s.storage.Download(ctx, key)
}
