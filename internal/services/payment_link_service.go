package services

import (
	"context"
	"fmt"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentLinkService creates gateway orders so customers can pay an
// inquiry's outstanding balance online. Disabled when no credentials are
// configured.
type PaymentLinkService struct {
	inquiries InquiryStore
	keyID     string
	keySecret string
}

func NewPaymentLinkService(inquiries InquiryStore, keyID, keySecret string) *PaymentLinkService {
	return &PaymentLinkService{inquiries: inquiries, keyID: keyID, keySecret: keySecret}
}

func (s *PaymentLinkService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateOrder creates a gateway order for the inquiry's outstanding balance,
// or for the requested amount when smaller.
func (s *PaymentLinkService) CreateOrder(ctx context.Context, inquiryID int, amount float64) (*models.PaymentLink, error) {
	if !s.Enabled() {
		return nil, apperrors.Validation("online payments are currently disabled")
	}

	inq, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}

	outstanding := inq.TotalAmount - inq.PaidAmount
	if outstanding <= 0 {
		return nil, apperrors.Validation("inquiry %d has no outstanding balance", inquiryID)
	}
	if amount <= 0 || amount > outstanding {
		amount = outstanding
	}

	client := razorpay.NewClient(s.keyID, s.keySecret)

	// Gateway amounts are in paise
	amountPaise := int(amount * 100)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("inq_%d_%d", inquiryID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"inquiry_id":     inq.ID,
			"customer_name":  inq.CustomerName,
			"customer_phone": inq.CustomerPhone,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create gateway order: %w", err))
	}

	orderID, _ := order["id"].(string)
	return &models.PaymentLink{
		OrderID:  orderID,
		Amount:   amount,
		Currency: "INR",
	}, nil
}
