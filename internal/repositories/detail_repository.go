package repositories

import (
	"context"
	"fmt"
	"strings"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
)

type DetailRepository struct {
	DB DB
}

func NewDetailRepository(db DB) *DetailRepository {
	return &DetailRepository{DB: db}
}

func (r *DetailRepository) Create(ctx context.Context, d *models.InquiryDetail) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO inquiry_details(inquiry_id, detail_type, title, description,
			attachment, reminder_date, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_completed, created_at`,
		d.InquiryID, d.Type, d.Title, d.Description, d.Attachment,
		d.ReminderDate, d.CreatedBy,
	).Scan(&d.ID, &d.IsCompleted, &d.CreatedAt)
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ListByInquiry returns one page of an inquiry's details, newest first,
// optionally filtered by type.
func (r *DetailRepository) ListByInquiry(ctx context.Context, inquiryID int, q models.ListDetailsQuery) (*models.DetailPage, error) {
	where := []string{"d.inquiry_id = $1"}
	args := []interface{}{inquiryID}
	if q.Type != "" {
		args = append(args, q.Type)
		where = append(where, fmt.Sprintf("d.detail_type = $%d", len(args)))
	}
	filter := strings.Join(where, " AND ")

	var total int
	err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM inquiry_details d WHERE "+filter, args...,
	).Scan(&total)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	offset := (q.Page - 1) * q.Limit
	args = append(args, q.Limit, offset)
	query := fmt.Sprintf(`
		SELECT d.id, d.inquiry_id, d.detail_type, d.title, d.description,
			d.attachment, d.reminder_date, d.is_completed, d.created_by,
			d.created_at, u.name
		FROM inquiry_details d
		JOIN users u ON u.id = d.created_by
		WHERE %s
		ORDER BY d.created_at DESC
		LIMIT $%d OFFSET $%d`, filter, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	details := []*models.InquiryDetail{}
	for rows.Next() {
		d := &models.InquiryDetail{}
		err := rows.Scan(&d.ID, &d.InquiryID, &d.Type, &d.Title, &d.Description,
			&d.Attachment, &d.ReminderDate, &d.IsCompleted, &d.CreatedBy,
			&d.CreatedAt, &d.CreatorName)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}

	totalPages := 0
	if q.Limit > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return &models.DetailPage{
		Details: details,
		Pagination: models.Pagination{
			CurrentPage: q.Page,
			PerPage:     q.Limit,
			Total:       total,
			TotalPages:  totalPages,
		},
	}, nil
}

// MarkCompleted flags a reminder as done.
func (r *DetailRepository) MarkCompleted(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inquiry_details SET is_completed = TRUE WHERE id = $1`, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("detail %d not found", id)
	}
	return nil
}
