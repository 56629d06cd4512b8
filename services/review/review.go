package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReview records a rating for the counterparty of a completed job and
// refreshes both users' derived stats. One review per participant per job;
// a duplicate submission conflicts.
func (s *DefaultReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.ValidationError("rating must be between 1 and 5")
	}
	if len(in.Comment) > models.MaxReviewCommentLength {
		return nil, utils.ValidationError(fmt.Sprintf("comment cannot exceed %d characters", models.MaxReviewCommentLength))
	}

	job, err := s.Jobs.GetByID(in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}
	if job.Status != models.JobStatusCompleted {
		return nil, utils.InvalidStateError("only completed jobs can be reviewed")
	}

	reviewerType, reviewedID, err := s.resolveParties(job, in.ReviewerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Reviews.GetByJobAndReviewer(in.JobID, in.ReviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError("you have already reviewed this job")
	}

	review := &models.Review{
		ID:           uuid.New().String(),
		JobID:        in.JobID,
		ReviewerID:   in.ReviewerID,
		ReviewedID:   reviewedID,
		Rating:       in.Rating,
		Comment:      strings.TrimSpace(in.Comment),
		ReviewerType: reviewerType,
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, err
	}

	s.applyStats(in.ReviewerID)
	s.applyStats(reviewedID)

	return review, nil
}

// DeleteReview removes a review and refreshes both parties' derived stats.
func (s *DefaultReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	review, err := s.Reviews.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return utils.NotFoundError("review not found")
	}

	if err := s.Reviews.Delete(reviewID); err != nil {
		return err
	}

	s.applyStats(review.ReviewerID)
	s.applyStats(review.ReviewedID)
	return nil
}

// JobReviews returns the reviews written on a job.
func (s *DefaultReviewService) JobReviews(ctx context.Context, jobID string) ([]models.Review, error) {
	return s.Reviews.ListByJob(jobID)
}

// UserReviews returns the reviews written about a user, newest first.
func (s *DefaultReviewService) UserReviews(ctx context.Context, reviewedID string, page, limit int64) ([]models.Review, int64, error) {
	return s.Reviews.ListByReviewed(reviewedID, page, limit)
}

// CompletedJobs returns the user's completed jobs from both sides with a
// per-job flag for whether the user may still write a review.
func (s *DefaultReviewService) CompletedJobs(ctx context.Context, userID string) ([]CompletedJobView, error) {
	var views []CompletedJobView

	customerJobs, err := s.Jobs.CompletedByCustomer(userID)
	if err != nil {
		return nil, err
	}
	for _, job := range customerJobs {
		canReview, err := s.canReview(job, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, CompletedJobView{Job: job, Role: models.ReviewerCustomer, CanReview: canReview})
	}

	accepted, err := s.Proposals.ListAcceptedByProvider(userID)
	if err != nil {
		return nil, err
	}
	proposalIDs := make([]string, 0, len(accepted))
	for _, p := range accepted {
		proposalIDs = append(proposalIDs, p.ID)
	}
	providerJobs, err := s.Jobs.CompletedByAcceptedProposals(proposalIDs)
	if err != nil {
		return nil, err
	}
	for _, job := range providerJobs {
		canReview, err := s.canReview(job, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, CompletedJobView{Job: job, Role: models.ReviewerProvider, CanReview: canReview})
	}

	return views, nil
}

// resolveParties checks the reviewer participated in the job and returns
// their side plus the counterparty. Guest-owned jobs have no reviewable
// counterparty for the provider and no account to review from.
func (s *DefaultReviewService) resolveParties(job *models.Job, reviewerID string) (models.ReviewerType, string, error) {
	if job.CustomerID != "" && job.CustomerID == reviewerID {
		provider, err := s.acceptedProviderID(job)
		if err != nil {
			return "", "", err
		}
		if provider == "" {
			return "", "", utils.InvalidStateError("job has no accepted provider to review")
		}
		return models.ReviewerCustomer, provider, nil
	}

	provider, err := s.acceptedProviderID(job)
	if err != nil {
		return "", "", err
	}
	if provider != "" && provider == reviewerID {
		if job.CustomerID == "" {
			return "", "", utils.ValidationError("guest-posted jobs cannot be reviewed")
		}
		return models.ReviewerProvider, job.CustomerID, nil
	}

	return "", "", utils.ForbiddenError("only participants of the job can write a review")
}

func (s *DefaultReviewService) acceptedProviderID(job *models.Job) (string, error) {
	if job.AcceptedProposalID == "" {
		return "", nil
	}
	proposal, err := s.Proposals.GetByID(job.AcceptedProposalID)
	if err != nil {
		return "", err
	}
	if proposal == nil {
		return "", nil
	}
	return proposal.ProviderID, nil
}

// canReview reports whether the user may still review the given completed
// job: no prior review and a registered counterparty.
func (s *DefaultReviewService) canReview(job models.Job, userID string) (bool, error) {
	if _, _, err := s.resolveParties(&job, userID); err != nil {
		if utils.KindOf(err) != "" {
			return false, nil
		}
		return false, err
	}
	existing, err := s.Reviews.GetByJobAndReviewer(job.ID, userID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *DefaultReviewService) applyStats(userID string) {
	if err := s.Stats.Apply(userID); err != nil {
		utils.GetLogger().Error("Failed to refresh user stats after review change",
			zap.String("userID", userID), zap.Error(err))
	}
}
