package repositories

import (
	"context"
	"errors"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type UserRepository struct {
	DB DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, username, password, user_type, phone,
	is_email_verified, profile_image, status, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.UserType, &u.Phone, &u.IsEmailVerified, &u.ProfileImage, &u.Status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users(name, email, username, password, user_type, phone)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, status, is_email_verified, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		u.Name, u.Email, u.Username, u.PasswordHash, u.UserType, u.Phone,
	).Scan(&u.ID, &u.Status, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email or username already in use")
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user %d not found", id)
		}
		return nil, apperrors.Internal(err)
	}
	return u, nil
}

// GetByLogin looks a user up by email or username.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1`, login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, username = $3, password = $4, user_type = $5,
			phone = $6, status = $7, profile_image = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		u.Name, u.Email, u.Username, u.PasswordHash, u.UserType,
		u.Phone, u.Status, u.ProfileImage, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("user %d not found", u.ID)
		}
		if isUniqueViolation(err) {
			return apperrors.Conflict("email or username already in use")
		}
		return apperrors.Internal(err)
	}
	return nil
}

// Deactivate disables a user account. Existing rows that reference the user
// are preserved.
func (r *UserRepository) Deactivate(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET status = FALSE, updated_at = NOW() WHERE id = $1 AND status = TRUE`, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user %d not found", id)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
