package services

import (
	"context"
	"strings"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/auth"
	"travel-crm/internal/cache"
	"travel-crm/internal/models"
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Deactivate(ctx context.Context, id int) error
	UpdateLastLogin(ctx context.Context, id int) error
}

type UserService struct {
	users      UserStore
	jwtManager *auth.JWTManager
}

func NewUserService(users UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{users: users, jwtManager: jwtManager}
}

// Login authenticates by email or username and returns a signed token.
// Lookup misses and bad passwords report the same error.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	user, err := s.users.GetByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("invalid credentials")
		}
		return nil, err
	}
	if !user.Status {
		return nil, apperrors.Validation("account is deactivated")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid credentials")
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// Best effort, login should not fail on this
	_ = s.users.UpdateLastLogin(ctx, user.ID)

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Create registers a staff user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if req.Email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}
	userType := req.UserType
	if userType == "" {
		userType = models.RoleAgent
	}
	if !models.ValidRole(userType) {
		return nil, apperrors.Validation("user_type must be admin, manager or agent")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	u := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     req.Username,
		PasswordHash: hash,
		UserType:     userType,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	cache.InvalidateUserCaches(ctx)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// Update merges non-empty fields over the current user. A non-empty password
// is re-hashed.
func (s *UserService) Update(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Username != nil {
		u.Username = req.Username
	}
	if req.UserType != "" {
		if !models.ValidRole(req.UserType) {
			return nil, apperrors.Validation("user_type must be admin, manager or agent")
		}
		u.UserType = req.UserType
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, apperrors.Validation("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	cache.InvalidateUserCaches(ctx)
	return u, nil
}

// Deactivate disables an account without deleting its rows.
func (s *UserService) Deactivate(ctx context.Context, id int) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// UpdateProfile lets a user change their own name, phone, and profile image.
// Email, role, and status are out of reach here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.ProfileImage != nil {
		u.ProfileImage = req.ProfileImage
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	cache.InvalidateUserCaches(ctx)
	return u, nil
}

// ChangePassword replaces a user's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" {
		return apperrors.Validation("current_password is required")
	}
	if len(req.NewPassword) < 6 {
		return apperrors.Validation("new password must be at least 6 characters")
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return apperrors.Validation("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	u.PasswordHash = hash

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// RefreshToken issues a fresh token for an authenticated user, rejecting
// accounts deactivated since the current token was issued.
func (s *UserService) RefreshToken(ctx context.Context, userID int) (*models.AuthResponse, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Status {
		return nil, apperrors.Validation("account is deactivated")
	}

	token, err := s.jwtManager.GenerateToken(u)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
