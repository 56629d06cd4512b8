package review

import (
	"context"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	proposalRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/proposal"
	reviewRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/review"
	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/stats"
)

// CreateReviewInput carries a new review. The reviewed party is derived from
// the job, never taken from the client.
type CreateReviewInput struct {
	JobID      string
	ReviewerID string
	Rating     int
	Comment    string
}

// CompletedJobView is a completed job from one participant's perspective,
// with whether that participant may still review it.
type CompletedJobView struct {
	Job       models.Job          `json:"job"`
	Role      models.ReviewerType `json:"role"`
	CanReview bool                `json:"canReview"`
}

// ReviewService owns reviews on completed jobs and the derived rating
// refresh that follows every review mutation.
type ReviewService interface {
	CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error

	JobReviews(ctx context.Context, jobID string) ([]models.Review, error)
	UserReviews(ctx context.Context, reviewedID string, page, limit int64) ([]models.Review, int64, error)
	CompletedJobs(ctx context.Context, userID string) ([]CompletedJobView, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Jobs      jobRepo.JobRepository
	Proposals proposalRepo.ProposalRepository
	Reviews   reviewRepo.ReviewRepository
	Users     userRepo.UserRepository
	Stats     stats.Reconciler
}
