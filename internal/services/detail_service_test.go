package services

import (
	"context"
	"testing"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/config"
	"travel-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDetailService(t *testing.T) (*DetailService, *mockDetailStore, *mockInquiryStore) {
	t.Helper()
	details := new(mockDetailStore)
	inquiries := new(mockInquiryStore)
	storage, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	return NewDetailService(details, inquiries, storage), details, inquiries
}

func TestAddDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc, details, _ := newDetailService(t)

		_, err := svc.Add(ctx, 5, &models.AddDetailRequest{Type: "memo", Title: "x"}, 7)
		assert.True(t, apperrors.IsValidation(err))

		_, err = svc.Add(ctx, 5, &models.AddDetailRequest{Type: models.DetailTypeNote}, 7)
		assert.True(t, apperrors.IsValidation(err), "title is required")

		_, err = svc.Add(ctx, 5, &models.AddDetailRequest{Type: models.DetailTypeReminder, Title: "call back"}, 7)
		assert.True(t, apperrors.IsValidation(err), "reminders need a date")

		details.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("type defaults to note", func(t *testing.T) {
		svc, details, inquiries := newDetailService(t)
		inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
		details.On("Create", ctx, mock.Anything).Return(nil).Once()

		d, err := svc.Add(ctx, 5, &models.AddDetailRequest{Title: "Customer prefers sea view"}, 7)
		require.NoError(t, err)
		assert.Equal(t, models.DetailTypeNote, d.Type)
		assert.Equal(t, 7, d.CreatedBy)
	})

	t.Run("unknown inquiry", func(t *testing.T) {
		svc, _, inquiries := newDetailService(t)
		inquiries.On("GetByID", ctx, 404).Return(nil, apperrors.NotFound("inquiry 404 not found")).Once()

		_, err := svc.Add(ctx, 404, &models.AddDetailRequest{Title: "x"}, 7)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("reminder with date", func(t *testing.T) {
		svc, details, inquiries := newDetailService(t)
		inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
		details.On("Create", ctx, mock.Anything).Return(nil).Once()

		remind := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
		d, err := svc.Add(ctx, 5, &models.AddDetailRequest{
			Type:         models.DetailTypeReminder,
			Title:        "Follow up on quotation",
			ReminderDate: &remind,
		}, 7)
		require.NoError(t, err)
		require.NotNil(t, d.ReminderDate)
		assert.Equal(t, remind, *d.ReminderDate)
	})
}

func TestAddWithAttachmentRequiresStorage(t *testing.T) {
	ctx := context.Background()
	svc, _, inquiries := newDetailService(t)
	inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()

	_, err := svc.AddWithAttachment(ctx, 5, &models.AddDetailRequest{Title: "quote"}, 7,
		"quote.pdf", "application/pdf", []byte("%PDF-1.4"))
	assert.True(t, apperrors.IsValidation(err), "upload without configured storage is rejected")
}

func TestListDetailsClampsPagination(t *testing.T) {
	ctx := context.Background()
	svc, details, inquiries := newDetailService(t)

	_, err := svc.List(ctx, 5, models.ListDetailsQuery{Type: "memo"})
	assert.True(t, apperrors.IsValidation(err))

	inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
	details.On("ListByInquiry", ctx, 5, models.ListDetailsQuery{Page: 1, Limit: 20}).
		Return(&models.DetailPage{}, nil).Once()

	_, err = svc.List(ctx, 5, models.ListDetailsQuery{})
	require.NoError(t, err)
	details.AssertExpectations(t)
}

func TestCompleteDetail(t *testing.T) {
	ctx := context.Background()
	svc, details, _ := newDetailService(t)

	details.On("MarkCompleted", ctx, 11).Return(nil).Once()
	assert.NoError(t, svc.Complete(ctx, 11))
	details.AssertExpectations(t)
}
