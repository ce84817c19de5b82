package repositories

import (
	"context"
	"errors"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct {
	DB DB
}

func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Create records a payment and increments the parent inquiry's paid_amount
// in the same transaction. Either both happen or neither does.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE inquiries SET paid_amount = paid_amount + $1, updated_at = NOW()
		WHERE id = $2 AND status = TRUE`,
		p.Amount, p.InquiryID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("inquiry %d not found", p.InquiryID)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO inquiry_payments(inquiry_id, amount, payment_method,
			payment_date, transaction_id, notes, receipt_number, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		p.InquiryID, p.Amount, p.PaymentMethod, p.PaymentDate,
		p.TransactionID, p.Notes, p.ReceiptNumber, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ListByInquiry returns an inquiry's payments, newest first, with the sum.
func (r *PaymentRepository) ListByInquiry(ctx context.Context, inquiryID int) (*models.PaymentList, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.inquiry_id, p.amount, p.payment_method, p.payment_date,
			p.transaction_id, p.notes, p.receipt_number, p.created_by,
			p.created_at, u.name
		FROM inquiry_payments p
		JOIN users u ON u.id = p.created_by
		WHERE p.inquiry_id = $1
		ORDER BY p.created_at DESC`, inquiryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	list := &models.PaymentList{Payments: []*models.Payment{}}
	for rows.Next() {
		p := &models.Payment{}
		err := rows.Scan(&p.ID, &p.InquiryID, &p.Amount, &p.PaymentMethod,
			&p.PaymentDate, &p.TransactionID, &p.Notes, &p.ReceiptNumber,
			&p.CreatedBy, &p.CreatedAt, &p.CreatorName)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		list.Payments = append(list.Payments, p)
		list.TotalPaid += p.Amount
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return list, nil
}

// Get returns a single payment.
func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	p := &models.Payment{}
	err := r.DB.QueryRow(ctx, `
		SELECT p.id, p.inquiry_id, p.amount, p.payment_method, p.payment_date,
			p.transaction_id, p.notes, p.receipt_number, p.created_by,
			p.created_at, u.name
		FROM inquiry_payments p
		JOIN users u ON u.id = p.created_by
		WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.InquiryID, &p.Amount, &p.PaymentMethod, &p.PaymentDate,
		&p.TransactionID, &p.Notes, &p.ReceiptNumber, &p.CreatedBy,
		&p.CreatedAt, &p.CreatorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("payment %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return p, nil
}
