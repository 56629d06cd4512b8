package user

import (
	"context"
	"strings"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 7 * 24 * time.Hour

// Register creates a customer or provider account. Registration requires an
// accepted KVKK consent; a taken email conflicts.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, utils.ValidationError("name and email are required")
	}
	if len(in.Password) < 6 {
		return nil, utils.ValidationError("password must be at least 6 characters")
	}
	if in.Role != models.RoleCustomer && in.Role != models.RoleProvider {
		return nil, utils.ValidationError("role must be customer or provider")
	}
	if !in.KVKKConsent.Accepted {
		return nil, utils.ValidationError("registration requires an accepted KVKK consent")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         in.Role,
		Location:     in.Location,
		KVKKConsent:  in.KVKKConsent,
		IsActive:     true,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and issues a session token. The
// token's hash is stored on the user and cached so middleware can reject
// revoked sessions.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), sessionTTL)
	if err != nil {
		return nil, err
	}
	tokenHash := utils.HashToken(token)

	now := time.Now()
	if err := s.Repo.UpdateWithDocument(user.ID, bson.M{
		"tokenHash":   tokenHash,
		"lastLoginAt": now,
		"updatedAt":   now,
	}); err != nil {
		return nil, err
	}

	cacheKey := utils.AuthCachePrefix + user.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, sessionTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache auth token hash",
			zap.String("userID", user.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:           user.ID,
		Token:        token,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}, nil
}

// Logout revokes the user's current session token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateWithDocument(userID, bson.M{"$unset": bson.M{"tokenHash": ""}}); err != nil {
		return err
	}
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to evict auth cache entry",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// RequestPasswordReset emails a short-lived OTP. Unknown emails succeed
// silently so the endpoint cannot be used to probe for accounts.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		utils.GetLogger().Info("Password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := utils.StoreResetOTP(email, otp); err != nil {
		return err
	}
	if err := s.Notifier.PasswordResetOTP(ctx, email, otp); err != nil {
		return utils.DependencyError("failed to send reset code")
	}
	return nil
}

// ResetPassword verifies the OTP and replaces the password. All existing
// sessions are revoked.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < 6 {
		return utils.ValidationError("password must be at least 6 characters")
	}

	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFoundError("account not found")
	}
	if err := utils.VerifyResetOTP(email, otp); err != nil {
		return utils.ValidationError("invalid or expired reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateWithDocument(user.ID, bson.M{
		"$set":   bson.M{"passwordHash": string(hash), "updatedAt": time.Now()},
		"$unset": bson.M{"tokenHash": ""},
	}); err != nil {
		return err
	}

	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+user.ID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to evict auth cache entry",
			zap.String("userID", user.ID), zap.Error(err))
	}
	return nil
}
