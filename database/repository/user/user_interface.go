package userRepo

import (
	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for users. Lookups return
// (nil, nil) when no document matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(page, limit int64) ([]models.User, int64, error)
	UpdateWithDocument(id string, update bson.M) error
	UpdateStats(id string, stats models.UserStats) error
	UpdateRating(id string, rating models.Rating) error
	Delete(id string) error
}
