package services

import (
	"context"
	"testing"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderWhenGatewayDisabled(t *testing.T) {
	ctx := context.Background()
	inquiries := new(mockInquiryStore)
	svc := NewPaymentLinkService(inquiries, "", "")

	assert.False(t, svc.Enabled())

	_, err := svc.CreateOrder(ctx, 5, 1000)
	assert.True(t, apperrors.IsValidation(err))
	inquiries.AssertNotCalled(t, "GetByID", ctx, 5)
}

func TestCreateOrderRequiresOutstandingBalance(t *testing.T) {
	ctx := context.Background()
	inquiries := new(mockInquiryStore)
	svc := NewPaymentLinkService(inquiries, "rzp_test_key", "rzp_test_secret")

	inquiries.On("GetByID", ctx, 5).Return(&models.Inquiry{
		ID:          5,
		TotalAmount: 20000,
		PaidAmount:  20000,
	}, nil).Once()

	_, err := svc.CreateOrder(ctx, 5, 1000)
	assert.True(t, apperrors.IsValidation(err))
	inquiries.AssertExpectations(t)
}

func TestCreateOrderUnknownInquiry(t *testing.T) {
	ctx := context.Background()
	inquiries := new(mockInquiryStore)
	svc := NewPaymentLinkService(inquiries, "rzp_test_key", "rzp_test_secret")

	inquiries.On("GetByID", ctx, 404).Return(nil, apperrors.NotFound("inquiry 404 not found")).Once()

	_, err := svc.CreateOrder(ctx, 404, 1000)
	assert.True(t, apperrors.IsNotFound(err))
}
