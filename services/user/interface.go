package user

import (
	"context"
	"errors"

	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/notification"
)

// ErrInvalidCredentials is returned on a failed login attempt. Handlers map
// it to 401 without revealing which part of the credentials was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Role        models.UserRole
	Location    models.Location
	KVKKConsent models.KVKKConsent
}

// AuthResponse contains the user's ID, token and display details.
type AuthResponse struct {
	ID           string          `json:"id"`
	Token        string          `json:"token"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	ProfileImage string          `json:"profileImage,omitempty"`
}

// UserService owns accounts: registration, authentication, profile updates,
// password reset and admin management.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error

	// Admin operations.
	ListUsers(ctx context.Context, page, limit int64) ([]models.User, int64, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Notifier notification.Service
}
