package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/apperr"
	"github.com/fennwick/brasserie/pkg/auth"
	"github.com/fennwick/brasserie/pkg/logger"
)

// RegisterInput is the staff registration payload.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,alpha_dash,min=3,max=100"`
	Email           string `json:"email" validate:"nullable,email"`
	FirstName       string `json:"first_name" validate:"nullable,max=100"`
	LastName        string `json:"last_name" validate:"nullable,max=100"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,confirmed"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles staff registration, login and logout.
type AuthService struct {
	staff *repositories.StaffRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{staff: repositories.NewStaffRepository(db)}
}

// Register creates a staff account and returns it with a fresh token.
// Validation of the payload (including password confirmation) happens at
// bind time; this checks username uniqueness and hashes the password.
func (s *AuthService) Register(input RegisterInput) (models.Staff, string, error) {
	if s.staff.UsernameTaken(input.Username) {
		return models.Staff{}, "", apperr.ValidationFields(map[string]string{
			"username": "This username is already taken.",
		})
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.Staff{}, "", err
	}

	staff := models.Staff{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  hash,
		IsActive:  true,
	}
	if err := s.staff.Create(&staff); err != nil {
		return models.Staff{}, "", err
	}

	token, err := auth.GenerateToken(staff.ID, staff.Username)
	if err != nil {
		return models.Staff{}, "", err
	}

	logger.Info("auth: staff registered", "staff_id", staff.ID, "username", staff.Username)
	return staff, token, nil
}

// Login verifies credentials and returns the staff member with a token.
// Wrong username, wrong password and disabled accounts all return the same
// authentication error so the response does not leak which part failed.
func (s *AuthService) Login(input LoginInput) (models.Staff, string, error) {
	staff, err := s.staff.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, "", apperr.Authentication("Invalid username or password")
		}
		return models.Staff{}, "", err
	}

	if !auth.CheckPassword(staff.Password, input.Password) {
		return models.Staff{}, "", apperr.Authentication("Invalid username or password")
	}

	if !staff.IsActive {
		return models.Staff{}, "", apperr.Authentication("This account has been disabled")
	}

	token, err := auth.GenerateToken(staff.ID, staff.Username)
	if err != nil {
		return models.Staff{}, "", err
	}

	return staff, token, nil
}

// Logout denylists the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return auth.Revoke(ctx, claims)
}

// Me returns the staff member for the given ID.
func (s *AuthService) Me(staffID uint) (models.Staff, error) {
	staff, err := s.staff.FindByID(staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Staff{}, apperr.NotFound("Staff")
		}
		return models.Staff{}, err
	}
	return staff, nil
}
