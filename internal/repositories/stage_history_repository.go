package repositories

import (
	"context"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
)

type StageHistoryRepository struct {
	DB DB
}

func NewStageHistoryRepository(db DB) *StageHistoryRepository {
	return &StageHistoryRepository{DB: db}
}

// ListByInquiry returns an inquiry's stage history in chronological order.
// The first entry always has a nil from_stage.
func (r *StageHistoryRepository) ListByInquiry(ctx context.Context, inquiryID int) ([]*models.StageHistory, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT h.id, h.inquiry_id, h.from_stage, h.to_stage, h.changed_by,
			h.notes, h.created_at, u.name
		FROM inquiry_stage_histories h
		JOIN users u ON u.id = h.changed_by
		WHERE h.inquiry_id = $1
		ORDER BY h.created_at ASC, h.id ASC`, inquiryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	histories := []*models.StageHistory{}
	for rows.Next() {
		h := &models.StageHistory{}
		err := rows.Scan(&h.ID, &h.InquiryID, &h.FromStage, &h.ToStage,
			&h.ChangedBy, &h.Notes, &h.CreatedAt, &h.ChangerName)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return histories, nil
}
