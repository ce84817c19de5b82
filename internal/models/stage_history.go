package models

import "time"

// StageHistory is an append-only audit entry for a stage change. FromStage is
// nil only for the entry written at inquiry creation. Rows are never updated
// or deleted.
type StageHistory struct {
	ID        int       `json:"id"`
	InquiryID int       `json:"inquiry_id"`
	FromStage *string   `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	ChangedBy int       `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	ChangerName string `json:"changer_name,omitempty"`
}
