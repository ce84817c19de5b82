package services

import (
	"context"

	"travel-crm/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockInquiryStore struct {
	mock.Mock
}

func (m *mockInquiryStore) Create(ctx context.Context, inq *models.Inquiry, history *models.StageHistory) error {
	args := m.Called(ctx, inq, history)
	return args.Error(0)
}

func (m *mockInquiryStore) GetByID(ctx context.Context, id int) (*models.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *mockInquiryStore) Update(ctx context.Context, inq *models.Inquiry) error {
	args := m.Called(ctx, inq)
	return args.Error(0)
}

func (m *mockInquiryStore) ChangeStage(ctx context.Context, id int, toStage, notes string, changedBy int) (*models.StageHistory, error) {
	args := m.Called(ctx, id, toStage, notes, changedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StageHistory), args.Error(1)
}

func (m *mockInquiryStore) Assign(ctx context.Context, id, assignedTo, updatedBy int) error {
	args := m.Called(ctx, id, assignedTo, updatedBy)
	return args.Error(0)
}

func (m *mockInquiryStore) SoftDelete(ctx context.Context, id, updatedBy int) error {
	args := m.Called(ctx, id, updatedBy)
	return args.Error(0)
}

func (m *mockInquiryStore) BulkUpdate(ctx context.Context, ids []int, upd models.BulkUpdatePayload, updatedBy int) (int, error) {
	args := m.Called(ctx, ids, upd, updatedBy)
	return args.Int(0), args.Error(1)
}

type mockPaymentStore struct {
	mock.Mock
}

func (m *mockPaymentStore) Create(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPaymentStore) ListByInquiry(ctx context.Context, inquiryID int) (*models.PaymentList, error) {
	args := m.Called(ctx, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentList), args.Error(1)
}

type mockHistoryStore struct {
	mock.Mock
}

func (m *mockHistoryStore) ListByInquiry(ctx context.Context, inquiryID int) ([]*models.StageHistory, error) {
	args := m.Called(ctx, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StageHistory), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) List(ctx context.Context, q models.ListInquiriesQuery) (*models.InquiryPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InquiryPage), args.Error(1)
}

func (m *mockReportStore) Board(ctx context.Context, q models.BoardQuery, perStage int) ([]*models.BoardColumn, error) {
	args := m.Called(ctx, q, perStage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BoardColumn), args.Error(1)
}

func (m *mockReportStore) Stats(ctx context.Context, q models.StatsQuery) (*models.DashboardStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *mockReportStore) Export(ctx context.Context, q models.ListInquiriesQuery, limit int) ([]*models.ExportRow, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExportRow), args.Error(1)
}

type mockInvoiceStore struct {
	mock.Mock
}

func (m *mockInvoiceStore) NextInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockInvoiceStore) Create(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *mockInvoiceStore) Get(ctx context.Context, id int) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *mockInvoiceStore) ListByInquiry(ctx context.Context, inquiryID int) ([]*models.Invoice, error) {
	args := m.Called(ctx, inquiryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *mockInvoiceStore) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockDetailStore struct {
	mock.Mock
}

func (m *mockDetailStore) Create(ctx context.Context, d *models.InquiryDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDetailStore) ListByInquiry(ctx context.Context, inquiryID int, q models.ListDetailsQuery) (*models.DetailPage, error) {
	args := m.Called(ctx, inquiryID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DetailPage), args.Error(1)
}

func (m *mockDetailStore) MarkCompleted(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
