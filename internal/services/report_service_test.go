package services

import (
	"context"
	"testing"
	"time"

	"travel-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListClampsPagination(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name                 string
		page, limit          int
		wantPage, wantLimit  int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"limit capped", 2, 500, 2, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockReportStore)
			svc := NewReportService(store)

			store.On("List", ctx, mock.MatchedBy(func(q models.ListInquiriesQuery) bool {
				return q.Page == tc.wantPage && q.Limit == tc.wantLimit
			})).Return(&models.InquiryPage{}, nil).Once()

			_, err := svc.List(ctx, models.ListInquiriesQuery{Page: tc.page, Limit: tc.limit})
			require.NoError(t, err)
			store.AssertExpectations(t)
		})
	}
}

func TestBoardUsesPerStageCap(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewReportService(store)

	columns := []*models.BoardColumn{
		{Stage: models.StageNew, Count: 120, Inquiries: make([]*models.Inquiry, 50)},
	}
	store.On("Board", ctx, models.BoardQuery{AssignedTo: 4}, 50).Return(columns, nil).Once()

	got, err := svc.Board(ctx, models.BoardQuery{AssignedTo: 4})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 120, got[0].Count, "count reflects the full stage even when rows are capped")
	store.AssertExpectations(t)
}

func TestDashboardPassesFilters(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewReportService(store)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := models.StatsQuery{AssignedTo: 3, DateFrom: &from}
	store.On("Stats", ctx, q).Return(&models.DashboardStats{}, nil).Once()

	_, err := svc.Dashboard(ctx, q)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewReportService(store)

	rows := []*models.ExportRow{
		{
			InquiryName:   "Goa family trip",
			InquiryType:   models.TypeHotel,
			CustomerName:  "Ravi Sharma",
			CustomerPhone: "9876543210",
			AdultsCount:   2,
			Stage:         models.StageInProgress,
			Priority:      models.PriorityHigh,
			TotalAmount:   45000,
			PaidAmount:    15000,
		},
	}
	store.On("Export", ctx, mock.Anything, 10000).Return(rows, nil).Once()

	buf, err := svc.ExportXLSX(ctx, models.ListInquiriesQuery{})
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Inquiries", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Inquiry Name", name)

	customer, err := f.GetCellValue("Inquiries", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Sharma", customer)
	store.AssertExpectations(t)
}

func TestExportRowsUsesLimit(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewReportService(store)

	store.On("Export", ctx, mock.Anything, 10000).Return([]*models.ExportRow{}, nil).Once()

	rows, err := svc.ExportRows(ctx, models.ListInquiriesQuery{Stage: models.StageClosed})
	require.NoError(t, err)
	assert.Empty(t, rows)
	store.AssertExpectations(t)
}
