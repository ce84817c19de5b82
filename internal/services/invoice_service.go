package services

import (
	"bytes"
	"context"
	"fmt"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
	"travel-crm/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// InvoiceStore persists invoices.
type InvoiceStore interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, id int) (*models.Invoice, error)
	ListByInquiry(ctx context.Context, inquiryID int) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type InvoiceService struct {
	invoices  InvoiceStore
	inquiries InquiryStore
}

func NewInvoiceService(invoices InvoiceStore, inquiries InquiryStore) *InvoiceService {
	return &InvoiceService{invoices: invoices, inquiries: inquiries}
}

// Create attaches an invoice to an inquiry. A blank invoice number is filled
// from the server-side sequence; a caller-supplied duplicate is a conflict.
func (s *InvoiceService) Create(ctx context.Context, inquiryID int, req *models.CreateInvoiceRequest, createdBy int) (*models.Invoice, error) {
	if req.TotalAmount < 0 {
		return nil, apperrors.Validation("total_amount cannot be negative")
	}
	status := req.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	if !models.ValidInvoiceStatus(status) {
		return nil, apperrors.Validation("invalid invoice status: %s", status)
	}

	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}

	number := req.InvoiceNumber
	if number == "" {
		var err error
		if number, err = s.invoices.NextInvoiceNumber(ctx); err != nil {
			return nil, err
		}
	}

	invoiceDate := timeutil.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}
	items := req.Items
	if items == nil {
		items = []models.InvoiceItem{}
	}

	inv := &models.Invoice{
		InquiryID:     inquiryID,
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		Subtotal:      req.Subtotal,
		GSTAmount:     req.GSTAmount,
		TotalAmount:   req.TotalAmount,
		GSTNumber:     req.GSTNumber,
		Items:         items,
		Status:        status,
		CreatedBy:     createdBy,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int) (*models.Invoice, error) {
	return s.invoices.Get(ctx, id)
}

func (s *InvoiceService) ListByInquiry(ctx context.Context, inquiryID int) ([]*models.Invoice, error) {
	if _, err := s.inquiries.GetByID(ctx, inquiryID); err != nil {
		return nil, err
	}
	return s.invoices.ListByInquiry(ctx, inquiryID)
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, id int, status string) error {
	if !models.ValidInvoiceStatus(status) {
		return apperrors.Validation("invalid invoice status: %s", status)
	}
	return s.invoices.UpdateStatus(ctx, id, status)
}

// GeneratePDF renders an invoice as a printable PDF.
func (s *InvoiceService) GeneratePDF(ctx context.Context, id int) ([]byte, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inq, err := s.inquiries.GetByID(ctx, inv.InquiryID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Invoice No: %s    Date: %s",
		inv.InvoiceNumber, inv.InvoiceDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Bill To", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", inq.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", inq.CustomerPhone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Inquiry: %s", inq.InquiryName), "LB", 0, "L", false, 0, "")
	gst := ""
	if inv.GSTNumber != nil {
		gst = *inv.GSTNumber
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("GSTIN: %s", gst), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		desc := item.Description
		if len(desc) > 45 {
			desc = desc[:42] + "..."
		}
		pdf.CellFormat(90, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(150, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", inv.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "GST", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", inv.GSTAmount), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.TotalAmount), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(190, 5, fmt.Sprintf("Generated on %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)),
		"", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Internal(err)
	}
	return buf.Bytes(), nil
}
