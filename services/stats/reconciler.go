package stats

import (
	"fmt"
	"math"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	proposalRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/proposal"
	reviewRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/review"
	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.uber.org/zap"
)

// Reconciler rebuilds the denormalized per-user aggregates from the
// authoritative job, proposal and review records. Recompute and RatingFor are
// pure reads; Apply persists their output. Running Apply any number of times
// against unchanged records yields the same stored values.
type Reconciler interface {
	Recompute(userID string) (models.UserStats, error)
	RatingFor(userID string) (models.Rating, error)
	Apply(userID string) error
}

// DefaultStatsReconciler is the production Reconciler.
type DefaultStatsReconciler struct {
	Jobs      jobRepo.JobRepository
	Proposals proposalRepo.ProposalRepository
	Reviews   reviewRepo.ReviewRepository
	Users     userRepo.UserRepository
}

// NewStatsReconciler creates a Reconciler over the given repositories.
func NewStatsReconciler(
	jobs jobRepo.JobRepository,
	proposals proposalRepo.ProposalRepository,
	reviews reviewRepo.ReviewRepository,
	users userRepo.UserRepository,
) *DefaultStatsReconciler {
	return &DefaultStatsReconciler{Jobs: jobs, Proposals: proposals, Reviews: reviews, Users: users}
}

// Recompute derives the user's stats block from scratch. The customer side
// comes from completed jobs the user owns; the provider side comes from
// completed jobs whose accepted proposal belongs to the user. Amounts are the
// acceptance snapshot prices, so later edits to proposal records never move
// historical totals.
func (r *DefaultStatsReconciler) Recompute(userID string) (models.UserStats, error) {
	var stats models.UserStats

	customerJobs, err := r.Jobs.CompletedByCustomer(userID)
	if err != nil {
		return stats, fmt.Errorf("failed to load completed jobs for user %s: %w", userID, err)
	}
	for _, job := range customerJobs {
		stats.TotalSpent += job.AcceptedPrice
	}

	accepted, err := r.Proposals.ListAcceptedByProvider(userID)
	if err != nil {
		return stats, fmt.Errorf("failed to load accepted proposals for user %s: %w", userID, err)
	}
	proposalIDs := make([]string, 0, len(accepted))
	for _, p := range accepted {
		proposalIDs = append(proposalIDs, p.ID)
	}

	providerJobs, err := r.Jobs.CompletedByAcceptedProposals(proposalIDs)
	if err != nil {
		return stats, fmt.Errorf("failed to load delivered jobs for user %s: %w", userID, err)
	}
	for _, job := range providerJobs {
		stats.TotalEarnings += job.AcceptedPrice
	}

	// A user completes a job once per side they were on.
	stats.CompletedJobs = len(customerJobs) + len(providerJobs)

	given, err := r.Reviews.CountByReviewer(userID)
	if err != nil {
		return stats, fmt.Errorf("failed to count reviews given by user %s: %w", userID, err)
	}
	received, err := r.Reviews.CountByReviewed(userID)
	if err != nil {
		return stats, fmt.Errorf("failed to count reviews received by user %s: %w", userID, err)
	}
	stats.ReviewsGiven = int(given)
	stats.ReviewsReceived = int(received)

	return stats, nil
}

// RatingFor derives the user's review aggregate from every review about them.
// The average is rounded to one decimal; no reviews yields the zero Rating.
func (r *DefaultStatsReconciler) RatingFor(userID string) (models.Rating, error) {
	reviews, err := r.Reviews.ListAllByReviewed(userID)
	if err != nil {
		return models.Rating{}, fmt.Errorf("failed to load reviews for user %s: %w", userID, err)
	}
	if len(reviews) == 0 {
		return models.Rating{}, nil
	}

	var sum int
	for _, rv := range reviews {
		sum += rv.Rating
	}
	average := math.Round(float64(sum)/float64(len(reviews))*10) / 10

	return models.Rating{Average: average, Count: len(reviews)}, nil
}

// Apply recomputes the user's stats and rating and overwrites the stored
// blocks. Unknown users are skipped; the caller may have raced a deletion.
func (r *DefaultStatsReconciler) Apply(userID string) error {
	user, err := r.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		utils.GetLogger().Warn("Skipping stats apply for unknown user", zap.String("userID", userID))
		return nil
	}

	stats, err := r.Recompute(userID)
	if err != nil {
		return err
	}
	if err := r.Users.UpdateStats(userID, stats); err != nil {
		return fmt.Errorf("failed to persist stats for user %s: %w", userID, err)
	}

	rating, err := r.RatingFor(userID)
	if err != nil {
		return err
	}
	if err := r.Users.UpdateRating(userID, rating); err != nil {
		return fmt.Errorf("failed to persist rating for user %s: %w", userID, err)
	}
	return nil
}
