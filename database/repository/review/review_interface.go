package reviewRepo

import (
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
)

// ReviewRepository defines persistence operations for reviews. Lookups return
// (nil, nil) when no document matches. Create reports a duplicate
// (jobId, reviewerId) pair as a conflict; the unique index is the backstop
// against racing submissions.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	GetByJobAndReviewer(jobID, reviewerID string) (*models.Review, error)
	ListByJob(jobID string) ([]models.Review, error)
	ListByReviewed(reviewedID string, page, limit int64) ([]models.Review, int64, error)
	ListAllByReviewed(reviewedID string) ([]models.Review, error)
	ListAll() ([]models.Review, error)
	CountByReviewer(reviewerID string) (int64, error)
	CountByReviewed(reviewedID string) (int64, error)

	Delete(id string) error
	DeleteByJob(jobID string) (int64, error)
}
