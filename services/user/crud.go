package user

import (
	"context"
	"fmt"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// profileFields whitelists what a user may change about themselves. Derived
// blocks (stats, rating) and credentials never pass through here.
var profileFields = map[string]bool{
	"name":                    true,
	"phone":                   true,
	"about":                   true,
	"profileImage":            true,
	"location":                true,
	"providerInfo.experience": true,
	"providerInfo.bio":        true,
	"providerInfo.services":   true,
}

// GetUserByID returns the user without credential fields.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByIDWithProjection(userID, bson.M{"passwordHash": 0, "tokenHash": 0})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFoundError("user not found")
	}
	return user, nil
}

// UpdateProfile applies a partial update restricted to the profile
// whitelist. Unknown fields are rejected rather than dropped so clients
// learn about typos.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	if len(updates) == 0 {
		return nil, utils.ValidationError("no fields to update")
	}

	doc := bson.M{}
	for field, value := range updates {
		if !profileFields[field] {
			return nil, utils.ValidationError(fmt.Sprintf("field %q cannot be updated", field))
		}
		doc[field] = value
	}
	doc["updatedAt"] = time.Now()

	if err := s.Repo.UpdateWithDocument(userID, doc); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, userID)
}

// ListUsers returns accounts page by page for the admin panel.
func (s *DefaultUserService) ListUsers(ctx context.Context, page, limit int64) ([]models.User, int64, error) {
	return s.Repo.GetAll(page, limit)
}

// SetUserActive enables or disables an account. Disabling also revokes the
// current session.
func (s *DefaultUserService) SetUserActive(ctx context.Context, userID string, active bool) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFoundError("user not found")
	}

	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}
	if !active {
		update["$unset"] = bson.M{"tokenHash": ""}
	}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return nil, err
	}
	if !active {
		if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("Failed to evict auth cache entry",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	return s.GetUserByID(ctx, userID)
}

// DeleteUser removes an account. Jobs, proposals and reviews referencing it
// become orphans and are collected by the maintenance sweep.
func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.NotFoundError("user not found")
	}

	if err := s.Repo.Delete(userID); err != nil {
		return err
	}
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to evict auth cache entry",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
