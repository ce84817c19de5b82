package services

import (
	"bytes"
	"context"
	"testing"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInvoiceService() (*InvoiceService, *mockInvoiceStore, *mockInquiryStore) {
	invoices := new(mockInvoiceStore)
	inquiries := new(mockInquiryStore)
	return NewInvoiceService(invoices, inquiries), invoices, inquiries
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("negative total", func(t *testing.T) {
		svc, _, _ := newInvoiceService()
		_, err := svc.Create(ctx, 5, &models.CreateInvoiceRequest{TotalAmount: -1}, 7)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("bad status", func(t *testing.T) {
		svc, _, _ := newInvoiceService()
		_, err := svc.Create(ctx, 5, &models.CreateInvoiceRequest{Status: "archived"}, 7)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown inquiry", func(t *testing.T) {
		svc, invoices, inquiries := newInvoiceService()
		inquiries.On("GetByID", ctx, 404).Return(nil, apperrors.NotFound("inquiry 404 not found")).Once()

		_, err := svc.Create(ctx, 404, &models.CreateInvoiceRequest{TotalAmount: 100}, 7)
		assert.True(t, apperrors.IsNotFound(err))
		invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank number gets generated", func(t *testing.T) {
		svc, invoices, inquiries := newInvoiceService()
		inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
		invoices.On("NextInvoiceNumber", ctx).Return("INV-000042", nil).Once()
		invoices.On("Create", ctx, mock.Anything).Return(nil).Once()

		inv, err := svc.Create(ctx, 5, &models.CreateInvoiceRequest{
			Subtotal:    1000,
			GSTAmount:   180,
			TotalAmount: 1180,
		}, 7)
		require.NoError(t, err)
		assert.Equal(t, "INV-000042", inv.InvoiceNumber)
		assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
		assert.False(t, inv.InvoiceDate.IsZero())
		assert.NotNil(t, inv.Items)
		assert.Equal(t, 7, inv.CreatedBy)
		invoices.AssertExpectations(t)
	})

	t.Run("caller number kept", func(t *testing.T) {
		svc, invoices, inquiries := newInvoiceService()
		inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
		invoices.On("Create", ctx, mock.Anything).Return(nil).Once()

		inv, err := svc.Create(ctx, 5, &models.CreateInvoiceRequest{
			InvoiceNumber: "INV-CUSTOM-1",
			TotalAmount:   500,
		}, 7)
		require.NoError(t, err)
		assert.Equal(t, "INV-CUSTOM-1", inv.InvoiceNumber)
		invoices.AssertNotCalled(t, "NextInvoiceNumber", mock.Anything)
	})

	t.Run("duplicate number surfaces as conflict", func(t *testing.T) {
		svc, invoices, inquiries := newInvoiceService()
		inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{ID: 5}, nil).Once()
		invoices.On("Create", ctx, mock.Anything).
			Return(apperrors.Conflict("invoice number INV-CUSTOM-1 already exists")).Once()

		_, err := svc.Create(ctx, 5, &models.CreateInvoiceRequest{
			InvoiceNumber: "INV-CUSTOM-1",
			TotalAmount:   500,
		}, 7)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestUpdateInvoiceStatus(t *testing.T) {
	ctx := context.Background()
	svc, invoices, _ := newInvoiceService()

	err := svc.UpdateStatus(ctx, 3, "void")
	assert.True(t, apperrors.IsValidation(err))
	invoices.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)

	invoices.On("UpdateStatus", ctx, 3, models.InvoiceStatusPaid).Return(nil).Once()
	assert.NoError(t, svc.UpdateStatus(ctx, 3, models.InvoiceStatusPaid))
	invoices.AssertExpectations(t)
}

func TestGeneratePDF(t *testing.T) {
	ctx := context.Background()
	svc, invoices, inquiries := newInvoiceService()

	gst := "27AAPFU0939F1ZV"
	inv := &models.Invoice{
		ID:            3,
		InquiryID:     5,
		InvoiceNumber: "INV-000042",
		Subtotal:      1000,
		GSTAmount:     180,
		TotalAmount:   1180,
		GSTNumber:     &gst,
		Items: []models.InvoiceItem{
			{Description: "Hotel booking, 3 nights", Quantity: 1, Rate: 1000, Amount: 1000},
		},
		Status: models.InvoiceStatusSent,
	}
	invoices.On("Get", ctx, 3).Return(inv, nil).Once()
	inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{
		ID:            5,
		CustomerName:  "Ravi Sharma",
		CustomerPhone: "9876543210",
	}, nil).Once()

	data, err := svc.GeneratePDF(ctx, 3)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

func TestListInvoicesChecksInquiryExists(t *testing.T) {
	ctx := context.Background()
	svc, invoices, inquiries := newInvoiceService()

	inquiries.On("GetByID", ctx, 404).Return(nil, apperrors.NotFound("inquiry 404 not found")).Once()

	_, err := svc.ListByInquiry(ctx, 404)
	assert.True(t, apperrors.IsNotFound(err))
	invoices.AssertNotCalled(t, "ListByInquiry", mock.Anything, mock.Anything)
}
