package repositories

import (
	"context"
	"errors"
	"fmt"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/jackc/pgx/v5"
)

type InvoiceRepository struct {
	DB DB
}

func NewInvoiceRepository(db DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// NextInvoiceNumber reserves the next number from the invoice sequence.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT nextval('invoice_number_sequence')`).Scan(&n)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return fmt.Sprintf("INV-%06d", n), nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO inquiry_invoices(inquiry_id, invoice_number, invoice_date,
			subtotal, gst_amount, total_amount, gst_number, invoice_items,
			status, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		inv.InquiryID, inv.InvoiceNumber, inv.InvoiceDate, inv.Subtotal,
		inv.GSTAmount, inv.TotalAmount, inv.GSTNumber, inv.Items,
		inv.Status, inv.CreatedBy,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("invoice number %s already exists", inv.InvoiceNumber)
		}
		return apperrors.Internal(err)
	}
	return nil
}

const invoiceColumns = `v.id, v.inquiry_id, v.invoice_number, v.invoice_date,
	v.subtotal, v.gst_amount, v.total_amount, v.gst_number, v.invoice_items,
	v.status, v.created_by, v.created_at, v.updated_at, u.name`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.InquiryID, &inv.InvoiceNumber,
		&inv.InvoiceDate, &inv.Subtotal, &inv.GSTAmount, &inv.TotalAmount,
		&inv.GSTNumber, &inv.Items, &inv.Status, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.CreatorName)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM inquiry_invoices v
		JOIN users u ON u.id = v.created_by
		WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("invoice %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return inv, nil
}

// ListByInquiry returns an inquiry's invoices, newest first.
func (r *InvoiceRepository) ListByInquiry(ctx context.Context, inquiryID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM inquiry_invoices v
		JOIN users u ON u.id = v.created_by
		WHERE v.inquiry_id = $1
		ORDER BY v.created_at DESC`, inquiryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	invoices := []*models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return invoices, nil
}

// UpdateStatus moves an invoice through its status lifecycle.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE inquiry_invoices SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("invoice %d not found", id)
	}
	return nil
}
