package job

import (
	"context"
	"time"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.uber.org/zap"
)

// ListJobs returns the public listing: approved postings, newest first.
func (s *DefaultJobService) ListJobs(ctx context.Context, q ListJobsQuery) ([]models.Job, int64, error) {
	return s.Jobs.List(jobRepo.JobFilter{
		Status:     models.JobStatusApproved,
		CategoryID: q.CategoryID,
		City:       q.City,
		Page:       q.Page,
		Limit:      q.Limit,
	})
}

// Opportunities returns approved postings the provider can still bid on:
// not their own, not expired, not already proposed to. The total counts the
// approved listing the page was drawn from.
func (s *DefaultJobService) Opportunities(ctx context.Context, providerID string, q ListJobsQuery) ([]models.Job, int64, error) {
	jobs, total, err := s.Jobs.List(jobRepo.JobFilter{
		Status:     models.JobStatusApproved,
		CategoryID: q.CategoryID,
		City:       q.City,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.CustomerID == providerID || j.IsExpired(now) {
			continue
		}
		existing, err := s.Proposals.GetByJobAndProvider(j.ID, providerID)
		if err != nil {
			return nil, 0, err
		}
		if existing != nil {
			continue
		}
		out = append(out, j)
	}
	return out, total, nil
}

// AdminListJobs returns postings in any status for the moderation queue.
func (s *DefaultJobService) AdminListJobs(ctx context.Context, status models.JobStatus, page, limit int64) ([]models.Job, int64, error) {
	return s.Jobs.List(jobRepo.JobFilter{Status: status, Page: page, Limit: limit})
}

// GetJob fetches a single posting and bumps its view counter best effort.
func (s *DefaultJobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}

	if err := s.Jobs.IncrementViews(jobID); err != nil {
		utils.GetLogger().Warn("Failed to increment job views",
			zap.String("jobID", jobID), zap.Error(err))
	} else {
		job.Stats.Views++
	}
	return job, nil
}

// MyJobs returns every posting owned by the customer, regardless of status.
func (s *DefaultJobService) MyJobs(ctx context.Context, customerID string, page, limit int64) ([]models.Job, int64, error) {
	return s.Jobs.List(jobRepo.JobFilter{CustomerID: customerID, Page: page, Limit: limit})
}

// MyProposals returns the provider's proposals across all jobs.
func (s *DefaultJobService) MyProposals(ctx context.Context, providerID string, page, limit int64) ([]models.Proposal, int64, error) {
	return s.Proposals.ListByProvider(providerID, page, limit)
}

// JobProposals returns every proposal on a job. Only the job owner and
// admins may see them.
func (s *DefaultJobService) JobProposals(ctx context.Context, jobID, actorID string, actorIsAdmin bool) ([]models.Proposal, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}
	if !actorIsAdmin && (job.CustomerID == "" || job.CustomerID != actorID) {
		return nil, utils.ForbiddenError("only the job owner can view its proposals")
	}
	return s.Proposals.ListByJob(jobID)
}
