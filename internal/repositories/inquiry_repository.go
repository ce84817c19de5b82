package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/jackc/pgx/v5"
)

type InquiryRepository struct {
	DB DB
}

func NewInquiryRepository(db DB) *InquiryRepository {
	return &InquiryRepository{DB: db}
}

const inquiryColumns = `i.id, i.inquiry_name, i.inquiry_type, i.customer_name,
	i.customer_phone, i.customer_email, i.adults_count, i.children_count,
	i.children_ages, i.tentative_date, i.inquiry_priority,
	i.contact_person_name, i.contact_person_phone, i.followup_date, i.stage,
	i.assigned_to, i.total_amount, i.paid_amount, i.notes, i.status,
	i.created_by, i.updated_by, i.created_at, i.updated_at,
	c.name AS creator_name, a.name AS assignee_name`

const inquiryJoins = `
	FROM inquiries i
	JOIN users c ON c.id = i.created_by
	LEFT JOIN users a ON a.id = i.assigned_to`

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	inq := &models.Inquiry{}
	err := row.Scan(
		&inq.ID, &inq.InquiryName, &inq.InquiryType, &inq.CustomerName,
		&inq.CustomerPhone, &inq.CustomerEmail, &inq.AdultsCount,
		&inq.ChildrenCount, &inq.ChildrenAges, &inq.TentativeDate,
		&inq.InquiryPriority, &inq.ContactPersonName, &inq.ContactPersonPhone,
		&inq.FollowupDate, &inq.Stage, &inq.AssignedTo, &inq.TotalAmount,
		&inq.PaidAmount, &inq.Notes, &inq.Status, &inq.CreatedBy,
		&inq.UpdatedBy, &inq.CreatedAt, &inq.UpdatedAt,
		&inq.CreatorName, &inq.AssigneeName,
	)
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// Create inserts the inquiry, its type-specific detail row, and the initial
// stage history entry in a single transaction.
func (r *InquiryRepository) Create(ctx context.Context, inq *models.Inquiry, history *models.StageHistory) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO inquiries(inquiry_name, inquiry_type, customer_name,
			customer_phone, customer_email, adults_count, children_count,
			children_ages, tentative_date, inquiry_priority,
			contact_person_name, contact_person_phone, followup_date, stage,
			notes, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, total_amount, paid_amount, status, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		inq.InquiryName, inq.InquiryType, inq.CustomerName, inq.CustomerPhone,
		inq.CustomerEmail, inq.AdultsCount, inq.ChildrenCount, inq.ChildrenAges,
		inq.TentativeDate, inq.InquiryPriority, inq.ContactPersonName,
		inq.ContactPersonPhone, inq.FollowupDate, inq.Stage, inq.Notes,
		inq.CreatedBy,
	).Scan(&inq.ID, &inq.TotalAmount, &inq.PaidAmount, &inq.Status,
		&inq.CreatedAt, &inq.UpdatedAt)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := insertDetailRows(ctx, tx, inq); err != nil {
		return apperrors.Internal(err)
	}

	history.InquiryID = inq.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO inquiry_stage_histories(inquiry_id, from_stage, to_stage, changed_by, notes)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		history.InquiryID, history.FromStage, history.ToStage,
		history.ChangedBy, history.Notes,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func insertDetailRows(ctx context.Context, tx pgx.Tx, inq *models.Inquiry) error {
	switch {
	case inq.HotelDetails != nil:
		d := inq.HotelDetails
		d.InquiryID = inq.ID
		return tx.QueryRow(ctx, `
			INSERT INTO inquiry_hotel_details(inquiry_id, checkin_date,
				checkout_date, number_of_rooms, meal_plan, destination,
				duration_nights, hotel_category, budget_per_person, total_budget)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`,
			d.InquiryID, d.CheckinDate, d.CheckoutDate, d.NumberOfRooms,
			d.MealPlan, d.Destination, d.DurationNights, d.HotelCategory,
			d.BudgetPerPerson, d.TotalBudget,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	case inq.TicketDetails != nil:
		d := inq.TicketDetails
		d.InquiryID = inq.ID
		return tx.QueryRow(ctx, `
			INSERT INTO inquiry_ticket_details(inquiry_id, destination,
				travel_date, travel_mode, departure_from, return_date, trip_type)
			VALUES($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			d.InquiryID, d.Destination, d.TravelDate, d.TravelMode,
			d.DepartureFrom, d.ReturnDate, d.TripType,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	case inq.TransportDetails != nil:
		d := inq.TransportDetails
		d.InquiryID = inq.ID
		return tx.QueryRow(ctx, `
			INSERT INTO inquiry_transport_details(inquiry_id, destination,
				vehicle_type, pickup_location, drop_location, pickup_date,
				pickup_time, vehicle_details)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`,
			d.InquiryID, d.Destination, d.VehicleType, d.PickupLocation,
			d.DropLocation, d.PickupDate, d.PickupTime, d.VehicleDetails,
		).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	}
	return nil
}

// GetByID returns an active inquiry with creator/assignee names and its
// type-specific detail row.
func (r *InquiryRepository) GetByID(ctx context.Context, id int) (*models.Inquiry, error) {
	inq, err := scanInquiry(r.DB.QueryRow(ctx,
		`SELECT `+inquiryColumns+inquiryJoins+` WHERE i.id = $1 AND i.status = TRUE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("inquiry %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	if err := r.loadDetails(ctx, inq); err != nil {
		return nil, apperrors.Internal(err)
	}
	return inq, nil
}

func (r *InquiryRepository) loadDetails(ctx context.Context, inq *models.Inquiry) error {
	switch inq.InquiryType {
	case models.TypeHotel:
		d := &models.HotelDetail{}
		err := r.DB.QueryRow(ctx, `
			SELECT id, inquiry_id, checkin_date, checkout_date, number_of_rooms,
				meal_plan, destination, duration_nights, hotel_category,
				budget_per_person, total_budget, created_at, updated_at
			FROM inquiry_hotel_details WHERE inquiry_id = $1`, inq.ID,
		).Scan(&d.ID, &d.InquiryID, &d.CheckinDate, &d.CheckoutDate,
			&d.NumberOfRooms, &d.MealPlan, &d.Destination, &d.DurationNights,
			&d.HotelCategory, &d.BudgetPerPerson, &d.TotalBudget,
			&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		inq.HotelDetails = d
	case models.TypeTicket:
		d := &models.TicketDetail{}
		err := r.DB.QueryRow(ctx, `
			SELECT id, inquiry_id, destination, travel_date, travel_mode,
				departure_from, return_date, trip_type, created_at, updated_at
			FROM inquiry_ticket_details WHERE inquiry_id = $1`, inq.ID,
		).Scan(&d.ID, &d.InquiryID, &d.Destination, &d.TravelDate,
			&d.TravelMode, &d.DepartureFrom, &d.ReturnDate, &d.TripType,
			&d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		inq.TicketDetails = d
	case models.TypeTransport:
		d := &models.TransportDetail{}
		err := r.DB.QueryRow(ctx, `
			SELECT id, inquiry_id, destination, vehicle_type, pickup_location,
				drop_location, pickup_date, pickup_time, vehicle_details,
				created_at, updated_at
			FROM inquiry_transport_details WHERE inquiry_id = $1`, inq.ID,
		).Scan(&d.ID, &d.InquiryID, &d.Destination, &d.VehicleType,
			&d.PickupLocation, &d.DropLocation, &d.PickupDate, &d.PickupTime,
			&d.VehicleDetails, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		inq.TransportDetails = d
	}
	return nil
}

// Update writes the merged inquiry fields and upserts the matching detail
// row in one transaction. The inquiry type itself never changes.
func (r *InquiryRepository) Update(ctx context.Context, inq *models.Inquiry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE inquiries
		SET inquiry_name = $1, customer_name = $2, customer_phone = $3,
			customer_email = $4, adults_count = $5, children_count = $6,
			children_ages = $7, tentative_date = $8, inquiry_priority = $9,
			contact_person_name = $10, contact_person_phone = $11,
			followup_date = $12, notes = $13, updated_by = $14, updated_at = NOW()
		WHERE id = $15 AND status = TRUE
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, query,
		inq.InquiryName, inq.CustomerName, inq.CustomerPhone, inq.CustomerEmail,
		inq.AdultsCount, inq.ChildrenCount, inq.ChildrenAges, inq.TentativeDate,
		inq.InquiryPriority, inq.ContactPersonName, inq.ContactPersonPhone,
		inq.FollowupDate, inq.Notes, inq.UpdatedBy, inq.ID,
	).Scan(&inq.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("inquiry %d not found", inq.ID)
		}
		return apperrors.Internal(err)
	}

	if err := r.upsertDetailRow(ctx, tx, inq); err != nil {
		return apperrors.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (r *InquiryRepository) upsertDetailRow(ctx context.Context, tx pgx.Tx, inq *models.Inquiry) error {
	switch {
	case inq.HotelDetails != nil:
		d := inq.HotelDetails
		tag, err := tx.Exec(ctx, `
			UPDATE inquiry_hotel_details
			SET checkin_date = $1, checkout_date = $2, number_of_rooms = $3,
				meal_plan = $4, destination = $5, duration_nights = $6,
				hotel_category = $7, budget_per_person = $8, total_budget = $9,
				updated_at = NOW()
			WHERE inquiry_id = $10`,
			d.CheckinDate, d.CheckoutDate, d.NumberOfRooms, d.MealPlan,
			d.Destination, d.DurationNights, d.HotelCategory, d.BudgetPerPerson,
			d.TotalBudget, inq.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return insertDetailRows(ctx, tx, inq)
		}
	case inq.TicketDetails != nil:
		d := inq.TicketDetails
		tag, err := tx.Exec(ctx, `
			UPDATE inquiry_ticket_details
			SET destination = $1, travel_date = $2, travel_mode = $3,
				departure_from = $4, return_date = $5, trip_type = $6,
				updated_at = NOW()
			WHERE inquiry_id = $7`,
			d.Destination, d.TravelDate, d.TravelMode, d.DepartureFrom,
			d.ReturnDate, d.TripType, inq.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return insertDetailRows(ctx, tx, inq)
		}
	case inq.TransportDetails != nil:
		d := inq.TransportDetails
		tag, err := tx.Exec(ctx, `
			UPDATE inquiry_transport_details
			SET destination = $1, vehicle_type = $2, pickup_location = $3,
				drop_location = $4, pickup_date = $5, pickup_time = $6,
				vehicle_details = $7, updated_at = NOW()
			WHERE inquiry_id = $8`,
			d.Destination, d.VehicleType, d.PickupLocation, d.DropLocation,
			d.PickupDate, d.PickupTime, d.VehicleDetails, inq.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return insertDetailRows(ctx, tx, inq)
		}
	}
	return nil
}

// ChangeStage moves an inquiry to a new stage and appends the audit entry in
// one transaction. The prior stage is read under a row lock so concurrent
// changes record a correct from_stage chain.
func (r *InquiryRepository) ChangeStage(ctx context.Context, id int, toStage, notes string, changedBy int) (*models.StageHistory, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	var fromStage string
	err = tx.QueryRow(ctx,
		`SELECT stage FROM inquiries WHERE id = $1 AND status = TRUE FOR UPDATE`, id,
	).Scan(&fromStage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("inquiry %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE inquiries SET stage = $1, updated_by = $2, updated_at = NOW() WHERE id = $3`,
		toStage, changedBy, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if notes == "" {
		notes = fmt.Sprintf("Stage changed from %s to %s", fromStage, toStage)
	}

	history := &models.StageHistory{
		InquiryID: id,
		FromStage: &fromStage,
		ToStage:   toStage,
		ChangedBy: changedBy,
		Notes:     notes,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO inquiry_stage_histories(inquiry_id, from_stage, to_stage, changed_by, notes)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		history.InquiryID, history.FromStage, history.ToStage,
		history.ChangedBy, history.Notes,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	return history, nil
}

// Assign sets the assignee of an active inquiry.
func (r *InquiryRepository) Assign(ctx context.Context, id, assignedTo, updatedBy int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE inquiries SET assigned_to = $1, updated_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = TRUE`,
		assignedTo, updatedBy, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("inquiry %d not found", id)
	}
	return nil
}

// SoftDelete hides an inquiry from every read path. Child rows are kept.
// Deleting an already deleted inquiry reports not found.
func (r *InquiryRepository) SoftDelete(ctx context.Context, id, updatedBy int) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE inquiries SET status = FALSE, updated_by = $1, updated_at = NOW()
		WHERE id = $2 AND status = TRUE`,
		updatedBy, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("inquiry %d not found", id)
	}
	return nil
}

// BulkUpdate applies the same field changes to many inquiries in one
// transaction. When the stage changes, one history row is written per
// inquiry carrying that inquiry's own prior stage. Rows are locked up front
// so the recorded prior stages cannot go stale mid-update.
func (r *InquiryRepository) BulkUpdate(ctx context.Context, ids []int, upd models.BulkUpdatePayload, updatedBy int) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, stage FROM inquiries
		WHERE id = ANY($1) AND status = TRUE
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	priorStages := make(map[int]string)
	for rows.Next() {
		var id int
		var stage string
		if err := rows.Scan(&id, &stage); err != nil {
			rows.Close()
			return 0, apperrors.Internal(err)
		}
		priorStages[id] = stage
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.Internal(err)
	}
	if len(priorStages) == 0 {
		return 0, apperrors.NotFound("no matching inquiries")
	}

	set := []string{"updated_by = $1", "updated_at = NOW()"}
	args := []interface{}{updatedBy}
	if upd.Stage != nil {
		args = append(args, *upd.Stage)
		set = append(set, fmt.Sprintf("stage = $%d", len(args)))
	}
	if upd.InquiryPriority != nil {
		args = append(args, *upd.InquiryPriority)
		set = append(set, fmt.Sprintf("inquiry_priority = $%d", len(args)))
	}
	if upd.AssignedTo != nil {
		args = append(args, *upd.AssignedTo)
		set = append(set, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if upd.FollowupDate != nil {
		args = append(args, *upd.FollowupDate)
		set = append(set, fmt.Sprintf("followup_date = $%d", len(args)))
	}

	matched := make([]int, 0, len(priorStages))
	for id := range priorStages {
		matched = append(matched, id)
	}
	args = append(args, matched)
	query := fmt.Sprintf("UPDATE inquiries SET %s WHERE id = ANY($%d)",
		strings.Join(set, ", "), len(args))
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	if upd.Stage != nil {
		for id, prior := range priorStages {
			prior := prior
			_, err = tx.Exec(ctx, `
				INSERT INTO inquiry_stage_histories(inquiry_id, from_stage, to_stage, changed_by, notes)
				VALUES($1, $2, $3, $4, $5)`,
				id, &prior, *upd.Stage, updatedBy, "Bulk stage update")
			if err != nil {
				return 0, apperrors.Internal(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperrors.Internal(err)
	}
	return int(tag.RowsAffected()), nil
}

var inquirySortColumns = map[string]string{
	"created_at":       "i.created_at",
	"updated_at":       "i.updated_at",
	"tentative_date":   "i.tentative_date",
	"followup_date":    "i.followup_date",
	"inquiry_name":     "i.inquiry_name",
	"customer_name":    "i.customer_name",
	"inquiry_priority": "i.inquiry_priority",
	"stage":            "i.stage",
	"total_amount":     "i.total_amount",
}

func buildInquiryFilter(q models.ListInquiriesQuery) (string, []interface{}) {
	where := []string{"i.status = TRUE"}
	var args []interface{}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(i.inquiry_name ILIKE $%d OR i.customer_name ILIKE $%d OR i.customer_phone ILIKE $%d OR i.customer_email ILIKE $%d)",
			n, n, n, n))
	}
	if q.Stage != "" {
		args = append(args, q.Stage)
		where = append(where, fmt.Sprintf("i.stage = $%d", len(args)))
	}
	if q.InquiryType != "" {
		args = append(args, q.InquiryType)
		where = append(where, fmt.Sprintf("i.inquiry_type = $%d", len(args)))
	}
	if q.Priority != "" {
		args = append(args, q.Priority)
		where = append(where, fmt.Sprintf("i.inquiry_priority = $%d", len(args)))
	}
	if q.AssignedTo != 0 {
		args = append(args, q.AssignedTo)
		where = append(where, fmt.Sprintf("i.assigned_to = $%d", len(args)))
	}
	if q.DateFrom != nil {
		args = append(args, *q.DateFrom)
		where = append(where, fmt.Sprintf("i.created_at >= $%d", len(args)))
	}
	if q.DateTo != nil {
		args = append(args, *q.DateTo)
		where = append(where, fmt.Sprintf("i.created_at <= $%d", len(args)))
	}

	return strings.Join(where, " AND "), args
}

// List returns one page of active inquiries matching the filters.
func (r *InquiryRepository) List(ctx context.Context, q models.ListInquiriesQuery) (*models.InquiryPage, error) {
	filter, args := buildInquiryFilter(q)

	var total int
	err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM inquiries i WHERE "+filter, args...,
	).Scan(&total)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	sortCol, ok := inquirySortColumns[q.SortBy]
	if !ok {
		sortCol = "i.created_at"
	}
	order := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	args = append(args, q.Limit, offset)
	query := fmt.Sprintf(
		"SELECT %s %s WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		inquiryColumns, inquiryJoins, filter, sortCol, order,
		len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	inquiries := []*models.Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		inquiries = append(inquiries, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}

	totalPages := 0
	if q.Limit > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return &models.InquiryPage{
		Inquiries: inquiries,
		Pagination: models.Pagination{
			CurrentPage: q.Page,
			PerPage:     q.Limit,
			Total:       total,
			TotalPages:  totalPages,
		},
	}, nil
}

// Board returns the kanban view: every stage except cancelled, newest first,
// capped per column with the uncapped count alongside.
func (r *InquiryRepository) Board(ctx context.Context, q models.BoardQuery, perStage int) ([]*models.BoardColumn, error) {
	where := []string{"i.status = TRUE", "i.stage = $1"}
	var baseArgs []interface{}
	if q.AssignedTo != 0 {
		baseArgs = append(baseArgs, q.AssignedTo)
		where = append(where, fmt.Sprintf("i.assigned_to = $%d", len(baseArgs)+1))
	}
	if q.InquiryType != "" {
		baseArgs = append(baseArgs, q.InquiryType)
		where = append(where, fmt.Sprintf("i.inquiry_type = $%d", len(baseArgs)+1))
	}
	filter := strings.Join(where, " AND ")

	columns := make([]*models.BoardColumn, 0, len(models.Stages))
	for _, stage := range models.Stages {
		if stage == models.StageCancelled {
			continue
		}
		args := append([]interface{}{stage}, baseArgs...)

		var count int
		err := r.DB.QueryRow(ctx,
			"SELECT COUNT(*) FROM inquiries i WHERE "+filter, args...,
		).Scan(&count)
		if err != nil {
			return nil, apperrors.Internal(err)
		}

		query := fmt.Sprintf(
			"SELECT %s %s WHERE %s ORDER BY i.created_at DESC LIMIT %d",
			inquiryColumns, inquiryJoins, filter, perStage)
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return nil, apperrors.Internal(err)
		}

		col := &models.BoardColumn{Stage: stage, Count: count, Inquiries: []*models.Inquiry{}}
		for rows.Next() {
			inq, err := scanInquiry(rows)
			if err != nil {
				rows.Close()
				return nil, apperrors.Internal(err)
			}
			col.Inquiries = append(col.Inquiries, inq)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, apperrors.Internal(err)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// Stats aggregates counts and amount totals over the active inquiry set.
func (r *InquiryRepository) Stats(ctx context.Context, q models.StatsQuery) (*models.DashboardStats, error) {
	where := []string{"status = TRUE"}
	var args []interface{}
	if q.AssignedTo != 0 {
		args = append(args, q.AssignedTo)
		where = append(where, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if q.DateFrom != nil {
		args = append(args, *q.DateFrom)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if q.DateTo != nil {
		args = append(args, *q.DateTo)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	filter := strings.Join(where, " AND ")

	stats := &models.DashboardStats{}
	var err error
	if stats.StageStats, err = r.countBy(ctx, "stage", filter, args); err != nil {
		return nil, err
	}
	if stats.TypeStats, err = r.countBy(ctx, "inquiry_type", filter, args); err != nil {
		return nil, err
	}
	if stats.PriorityStats, err = r.countBy(ctx, "inquiry_priority", filter, args); err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0), COUNT(*)
		FROM inquiries WHERE `+filter, args...,
	).Scan(&stats.Totals.TotalAmount, &stats.Totals.PaidAmount, &stats.Totals.TotalInquiries)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}

func (r *InquiryRepository) countBy(ctx context.Context, column, filter string, args []interface{}) ([]models.StageCount, error) {
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM inquiries WHERE %s GROUP BY %s ORDER BY %s",
		column, filter, column, column)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	counts := []models.StageCount{}
	for rows.Next() {
		var c models.StageCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, apperrors.Internal(err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return counts, nil
}

// Export returns a flattened projection of matching inquiries, capped at
// limit rows, newest first.
func (r *InquiryRepository) Export(ctx context.Context, q models.ListInquiriesQuery, limit int) ([]*models.ExportRow, error) {
	filter, args := buildInquiryFilter(q)
	query := fmt.Sprintf(`
		SELECT i.inquiry_name, i.inquiry_type, i.customer_name,
			i.customer_phone, i.adults_count, i.children_count,
			i.tentative_date, i.stage, i.inquiry_priority, i.total_amount,
			i.paid_amount, i.created_at, COALESCE(a.name, '')
		%s WHERE %s ORDER BY i.created_at DESC LIMIT %d`,
		inquiryJoins, filter, limit)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	exported := []*models.ExportRow{}
	for rows.Next() {
		row := &models.ExportRow{}
		err := rows.Scan(&row.InquiryName, &row.InquiryType, &row.CustomerName,
			&row.CustomerPhone, &row.AdultsCount, &row.ChildrenCount,
			&row.TentativeDate, &row.Stage, &row.Priority, &row.TotalAmount,
			&row.PaidAmount, &row.CreatedAt, &row.Assignee)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		exported = append(exported, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return exported, nil
}
