package maintenance

import (
	"context"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	proposalRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/proposal"
	reviewRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/review"
	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/stats"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.uber.org/zap"
)

// OrphanRecord names one deleted record and why it was an orphan.
type OrphanRecord struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// SweepSection summarizes one collection's share of a sweep run.
type SweepSection struct {
	Checked int            `json:"checked"`
	Deleted int            `json:"deleted"`
	Orphans []OrphanRecord `json:"orphans,omitempty"`
}

// SweepReport is the outcome of one orphan sweep run.
type SweepReport struct {
	Proposals SweepSection `json:"proposals"`
	Reviews   SweepSection `json:"reviews"`
}

// MaintenanceService owns the periodic consistency work: collecting records
// whose parents are gone and rebuilding derived user stats.
type MaintenanceService interface {
	SweepOrphans(ctx context.Context) (*SweepReport, error)
	RepairUserStats(ctx context.Context) (int, error)
}

// DefaultMaintenanceService is the production implementation.
type DefaultMaintenanceService struct {
	Jobs      jobRepo.JobRepository
	Proposals proposalRepo.ProposalRepository
	Reviews   reviewRepo.ReviewRepository
	Users     userRepo.UserRepository
	Stats     stats.Reconciler
}

// SweepOrphans deletes proposals and reviews whose job or users no longer
// exist. Deletes of records that vanished mid-sweep are tolerated; a
// concurrent cascade doing the same work is not an error.
func (s *DefaultMaintenanceService) SweepOrphans(ctx context.Context) (*SweepReport, error) {
	report := &SweepReport{}
	jobSeen := map[string]bool{}
	userSeen := map[string]bool{}
	affected := map[string]bool{}

	proposals, err := s.Proposals.ListAll()
	if err != nil {
		return nil, err
	}
	report.Proposals.Checked = len(proposals)
	for _, p := range proposals {
		reason := ""
		switch {
		case !s.jobExists(jobSeen, p.JobID):
			reason = "job no longer exists"
		case !s.userExists(userSeen, p.ProviderID):
			reason = "provider no longer exists"
		}
		if reason == "" {
			continue
		}
		if err := s.Proposals.Delete(p.ID); err != nil {
			utils.GetLogger().Warn("Orphan proposal already gone",
				zap.String("proposalID", p.ID), zap.Error(err))
			continue
		}
		report.Proposals.Deleted++
		report.Proposals.Orphans = append(report.Proposals.Orphans, OrphanRecord{ID: p.ID, Reason: reason})
		if s.userExists(userSeen, p.ProviderID) {
			affected[p.ProviderID] = true
		}
	}

	reviews, err := s.Reviews.ListAll()
	if err != nil {
		return nil, err
	}
	report.Reviews.Checked = len(reviews)
	for _, rv := range reviews {
		reason := ""
		switch {
		case !s.jobExists(jobSeen, rv.JobID):
			reason = "job no longer exists"
		case !s.userExists(userSeen, rv.ReviewerID):
			reason = "reviewer no longer exists"
		case !s.userExists(userSeen, rv.ReviewedID):
			reason = "reviewed user no longer exists"
		}
		if reason == "" {
			continue
		}
		if err := s.Reviews.Delete(rv.ID); err != nil {
			utils.GetLogger().Warn("Orphan review already gone",
				zap.String("reviewID", rv.ID), zap.Error(err))
			continue
		}
		report.Reviews.Deleted++
		report.Reviews.Orphans = append(report.Reviews.Orphans, OrphanRecord{ID: rv.ID, Reason: reason})
		if s.userExists(userSeen, rv.ReviewerID) {
			affected[rv.ReviewerID] = true
		}
		if s.userExists(userSeen, rv.ReviewedID) {
			affected[rv.ReviewedID] = true
		}
	}

	// Deleted orphans feed the derived aggregates, so surviving parties get a
	// stats refresh.
	for userID := range affected {
		if err := s.Stats.Apply(userID); err != nil {
			utils.GetLogger().Error("Failed to refresh stats after sweep",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("Orphan sweep finished",
		zap.Int("proposalsChecked", report.Proposals.Checked),
		zap.Int("proposalsDeleted", report.Proposals.Deleted),
		zap.Int("reviewsChecked", report.Reviews.Checked),
		zap.Int("reviewsDeleted", report.Reviews.Deleted))

	return report, nil
}

// RepairUserStats re-derives the stats and rating blocks for every account
// and returns how many were refreshed.
func (s *DefaultMaintenanceService) RepairUserStats(ctx context.Context) (int, error) {
	repaired := 0
	var page int64 = 1
	const limit int64 = 100

	for {
		users, total, err := s.Users.GetAll(page, limit)
		if err != nil {
			return repaired, err
		}
		for _, u := range users {
			if err := s.Stats.Apply(u.ID); err != nil {
				utils.GetLogger().Error("Failed to repair stats",
					zap.String("userID", u.ID), zap.Error(err))
				continue
			}
			repaired++
		}
		if page*limit >= total || len(users) == 0 {
			break
		}
		page++
	}
	return repaired, nil
}

// jobExists checks the job store through a per-run memo. Lookup failures
// count as existing so a flaky read never deletes live data.
func (s *DefaultMaintenanceService) jobExists(seen map[string]bool, jobID string) bool {
	if exists, ok := seen[jobID]; ok {
		return exists
	}
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		utils.GetLogger().Warn("Sweep job lookup failed", zap.String("jobID", jobID), zap.Error(err))
		seen[jobID] = true
		return true
	}
	seen[jobID] = job != nil
	return seen[jobID]
}

func (s *DefaultMaintenanceService) userExists(seen map[string]bool, userID string) bool {
	if exists, ok := seen[userID]; ok {
		return exists
	}
	user, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Warn("Sweep user lookup failed", zap.String("userID", userID), zap.Error(err))
		seen[userID] = true
		return true
	}
	seen[userID] = user != nil
	return seen[userID]
}
