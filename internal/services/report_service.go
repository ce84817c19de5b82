package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travel-crm/internal/cache"
	"travel-crm/internal/models"
	"travel-crm/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

const (
	boardPerStage = 50
	exportLimit   = 10000

	boardCacheTTL     = 2 * time.Minute
	dashboardCacheTTL = 5 * time.Minute
)

// ReportStore is the read surface the reporting service needs.
type ReportStore interface {
	List(ctx context.Context, q models.ListInquiriesQuery) (*models.InquiryPage, error)
	Board(ctx context.Context, q models.BoardQuery, perStage int) ([]*models.BoardColumn, error)
	Stats(ctx context.Context, q models.StatsQuery) (*models.DashboardStats, error)
	Export(ctx context.Context, q models.ListInquiriesQuery, limit int) ([]*models.ExportRow, error)
}

type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// List returns one page of inquiries. Page and limit are clamped to sane
// bounds before they reach the database.
func (s *ReportService) List(ctx context.Context, q models.ListInquiriesQuery) (*models.InquiryPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return s.store.List(ctx, q)
}

// Board returns the kanban view, cached briefly when no filters are set.
func (s *ReportService) Board(ctx context.Context, q models.BoardQuery) ([]*models.BoardColumn, error) {
	cacheable := q.AssignedTo == 0 && q.InquiryType == ""
	if cacheable {
		if data, ok := cache.GetCached(ctx, cache.BoardDataKey); ok {
			var columns []*models.BoardColumn
			if err := json.Unmarshal(data, &columns); err == nil {
				return columns, nil
			}
		}
	}

	columns, err := s.store.Board(ctx, q, boardPerStage)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(columns); err == nil {
			cache.SetCached(ctx, cache.BoardDataKey, data, boardCacheTTL)
		}
	}
	return columns, nil
}

// Dashboard returns stage/type/priority counts and amount totals.
func (s *ReportService) Dashboard(ctx context.Context, q models.StatsQuery) (*models.DashboardStats, error) {
	cacheable := q.AssignedTo == 0
	var key string
	if cacheable {
		from, to := "", ""
		if q.DateFrom != nil {
			from = q.DateFrom.Format(timeutil.DateLayout)
		}
		if q.DateTo != nil {
			to = q.DateTo.Format(timeutil.DateLayout)
		}
		key = cache.DashboardKey(from, to)
		if data, ok := cache.GetCached(ctx, key); ok {
			stats := &models.DashboardStats{}
			if err := json.Unmarshal(data, stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.store.Stats(ctx, q)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(stats); err == nil {
			cache.SetCached(ctx, key, data, dashboardCacheTTL)
		}
	}
	return stats, nil
}

// ExportRows returns the flattened export projection.
func (s *ReportService) ExportRows(ctx context.Context, q models.ListInquiriesQuery) ([]*models.ExportRow, error) {
	return s.store.Export(ctx, q, exportLimit)
}

var exportHeaders = []string{
	"Inquiry Name", "Type", "Customer", "Phone", "Adults", "Children",
	"Tentative Date", "Stage", "Priority", "Total Amount", "Paid Amount",
	"Assigned To", "Created At",
}

// ExportXLSX renders matching inquiries as a spreadsheet.
func (s *ReportService) ExportXLSX(ctx context.Context, q models.ListInquiriesQuery) (*bytes.Buffer, error) {
	exported, err := s.store.Export(ctx, q, exportLimit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inquiries"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, row := range exported {
		values := []interface{}{
			row.InquiryName,
			row.InquiryType,
			row.CustomerName,
			row.CustomerPhone,
			row.AdultsCount,
			row.ChildrenCount,
			row.TentativeDate.Format(timeutil.DateLayout),
			row.Stage,
			row.Priority,
			row.TotalAmount,
			row.PaidAmount,
			row.Assignee,
			timeutil.FormatIST(row.CreatedAt, timeutil.DateTimeLayout),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
