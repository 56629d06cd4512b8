package job

import (
	"context"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	proposalRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/proposal"
	reviewRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/review"
	userRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/notification"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/stats"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/storage"
)

// CreateJobInput carries a new posting. Exactly one of CustomerID (set from
// the authenticated session) or Guest must be present.
type CreateJobInput struct {
	Title         string
	Description   string
	CategoryID    string
	SubcategoryID string
	CustomerID    string
	Guest         *models.GuestCustomer
	Location      models.Location
	Attachments   models.Attachments
	Budget        *models.Budget
	Duration      models.JobDuration
	KVKKConsent   *models.KVKKConsent
}

// SubmitProposalInput carries a provider's bid.
type SubmitProposalInput struct {
	JobID       string
	ProviderID  string
	Description string
	Price       float64
	Duration    models.ProposalDuration
	Notes       string
}

// ListJobsQuery narrows the public job listing.
type ListJobsQuery struct {
	CategoryID string
	City       string
	Page       int64
	Limit      int64
}

// JobService owns the posting lifecycle: creation, moderation, proposals,
// acceptance, delivery and deletion.
type JobService interface {
	CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error)
	ApproveJob(ctx context.Context, jobID string) (*models.Job, error)
	RejectJob(ctx context.Context, jobID, reason string) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID, actorID string, actorIsAdmin bool) error

	SubmitProposal(ctx context.Context, in SubmitProposalInput) (*models.Proposal, error)
	AcceptProposal(ctx context.Context, jobID, proposalID, customerID string) (*models.Job, error)
	DeliverJob(ctx context.Context, jobID, providerID string) (*models.Job, error)

	ListJobs(ctx context.Context, q ListJobsQuery) ([]models.Job, int64, error)
	Opportunities(ctx context.Context, providerID string, q ListJobsQuery) ([]models.Job, int64, error)
	AdminListJobs(ctx context.Context, status models.JobStatus, page, limit int64) ([]models.Job, int64, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	MyJobs(ctx context.Context, customerID string, page, limit int64) ([]models.Job, int64, error)
	MyProposals(ctx context.Context, providerID string, page, limit int64) ([]models.Proposal, int64, error)
	JobProposals(ctx context.Context, jobID, actorID string, actorIsAdmin bool) ([]models.Proposal, error)
}

// DefaultJobService is the production implementation.
type DefaultJobService struct {
	Jobs      jobRepo.JobRepository
	Proposals proposalRepo.ProposalRepository
	Reviews   reviewRepo.ReviewRepository
	Users     userRepo.UserRepository
	Stats     stats.Reconciler
	Notifier  notification.Service
	Storage   storage.StorageService
}
