package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment() *models.Payment {
	return &models.Payment{
		InquiryID:     5,
		Amount:        2500,
		PaymentMethod: models.PaymentMethodUPI,
		PaymentDate:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		ReceiptNumber: "RCP1750000000000123",
		CreatedBy:     7,
	}
}

func TestPaymentCreateCommitsBothWrites(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPaymentRepository(mock)

	p := newPayment()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inquiries SET paid_amount = paid_amount").
		WithArgs(2500.0, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO inquiry_payments").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(31, time.Now()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, 31, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreateRollsBackWhenInsertFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPaymentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inquiries SET paid_amount = paid_amount").
		WithArgs(2500.0, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO inquiry_payments").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), newPayment())
	require.Error(t, err)

	// No Commit expectation: the paid_amount increment must not survive a
	// failed payment insert.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreateMissingInquiry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPaymentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE inquiries SET paid_amount = paid_amount").
		WithArgs(2500.0, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), newPayment())
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
