package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func newMockRepo(t *testing.T) (*InquiryRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewInquiryRepository(mock), mock
}

func inquiryInsertRows(id int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "total_amount", "paid_amount", "status", "created_at", "updated_at",
	}).AddRow(id, 0.0, 0.0, true, now, now)
}

func TestCreateWritesInitialHistoryRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	inq := &models.Inquiry{
		InquiryName:     "Goa family trip",
		InquiryType:     models.TypeHotel,
		CustomerName:    "Ravi Sharma",
		CustomerPhone:   "9876543210",
		AdultsCount:     2,
		ChildrenAges:    []int{},
		InquiryPriority: models.PriorityMedium,
		Stage:           models.StageNew,
		CreatedBy:       7,
	}
	history := &models.StageHistory{
		FromStage: nil,
		ToStage:   models.StageNew,
		ChangedBy: 7,
		Notes:     "Inquiry created",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO inquiries").
		WillReturnRows(inquiryInsertRows(10))
	mock.ExpectQuery("INSERT INTO inquiry_stage_histories").
		WithArgs(10, (*string)(nil), models.StageNew, 7, "Inquiry created").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(99, time.Now()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), inq, history))
	assert.Equal(t, 10, inq.ID)
	assert.Equal(t, 10, history.InquiryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenHistoryInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	inq := &models.Inquiry{
		InquiryName: "Goa family trip",
		InquiryType: models.TypeHotel,
		Stage:       models.StageNew,
	}
	history := &models.StageHistory{ToStage: models.StageNew, ChangedBy: 7}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO inquiries").
		WillReturnRows(inquiryInsertRows(10))
	mock.ExpectQuery("INSERT INTO inquiry_stage_histories").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), inq, history)
	require.Error(t, err)

	// The inquiry insert must not survive without its audit row.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInsertsMatchingDetailRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	inq := &models.Inquiry{
		InquiryName: "Goa family trip",
		InquiryType: models.TypeHotel,
		Stage:       models.StageNew,
		HotelDetails: &models.HotelDetail{
			Destination:   "Goa",
			NumberOfRooms: 2,
		},
	}
	history := &models.StageHistory{ToStage: models.StageNew, ChangedBy: 7}

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO inquiries").
		WillReturnRows(inquiryInsertRows(10))
	mock.ExpectQuery("INSERT INTO inquiry_hotel_details").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(4, now, now))
	mock.ExpectQuery("INSERT INTO inquiry_stage_histories").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(99, now))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), inq, history))
	assert.Equal(t, 10, inq.HotelDetails.InquiryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeStageRecordsTruePriorStage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stage FROM inquiries").
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"stage"}).AddRow(models.StageInProgress))
	mock.ExpectExec("UPDATE inquiries SET stage").
		WithArgs(models.StageApproved, 7, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO inquiry_stage_histories").
		WithArgs(5, strptr(models.StageInProgress), models.StageApproved, 7,
			"Stage changed from in_progress to approved").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(100, time.Now()))
	mock.ExpectCommit()

	history, err := repo.ChangeStage(context.Background(), 5, models.StageApproved, "", 7)
	require.NoError(t, err)
	require.NotNil(t, history.FromStage)
	assert.Equal(t, models.StageInProgress, *history.FromStage)
	assert.Equal(t, models.StageApproved, history.ToStage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeStageMissingInquiry(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stage FROM inquiries").
		WithArgs(12).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.ChangeStage(context.Background(), 12, models.StageClosed, "", 7)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateWritesPerInquiryPriorStage(t *testing.T) {
	repo, mock := newMockRepo(t)
	// History inserts iterate a map, so their order is not fixed
	mock.MatchExpectationsInOrder(false)

	ids := []int{1, 2}
	stage := models.StageClosed

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, stage FROM inquiries").
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "stage"}).
			AddRow(1, models.StageNew).
			AddRow(2, models.StageApproved))
	mock.ExpectExec("UPDATE inquiries SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec("INSERT INTO inquiry_stage_histories").
		WithArgs(1, strptr(models.StageNew), models.StageClosed, 9, "Bulk stage update").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO inquiry_stage_histories").
		WithArgs(2, strptr(models.StageApproved), models.StageClosed, 9, "Bulk stage update").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	updated, err := repo.BulkUpdate(context.Background(), ids,
		models.BulkUpdatePayload{Stage: &stage}, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateNoMatchingInquiries(t *testing.T) {
	repo, mock := newMockRepo(t)

	stage := models.StageClosed
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, stage FROM inquiries").
		WithArgs([]int{404}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "stage"}))
	mock.ExpectRollback()

	_, err := repo.BulkUpdate(context.Background(), []int{404},
		models.BulkUpdatePayload{Stage: &stage}, 9)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteTwiceReportsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE inquiries SET status = FALSE").
		WithArgs(7, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE inquiries SET status = FALSE").
		WithArgs(7, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.SoftDelete(context.Background(), 5, 7))

	err := repo.SoftDelete(context.Background(), 5, 7)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
