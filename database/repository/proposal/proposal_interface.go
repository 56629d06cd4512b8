package proposalRepo

import (
	"context"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
)

// ProposalRepository defines persistence operations for proposals. Lookups
// return (nil, nil) when no document matches. Create reports a duplicate
// (jobId, providerId) pair as a conflict; the unique index is the backstop
// against racing submissions.
type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	GetByID(id string) (*models.Proposal, error)
	GetByJobAndProvider(jobID, providerID string) (*models.Proposal, error)
	ListByJob(jobID string) ([]models.Proposal, error)
	ListByProvider(providerID string, page, limit int64) ([]models.Proposal, int64, error)
	ListAcceptedByProvider(providerID string) ([]models.Proposal, error)
	ListAll() ([]models.Proposal, error)
	CountByJob(jobID string) (int64, error)

	// AcceptTransactionally accepts the target proposal and rejects its
	// pending siblings while moving the job from approved to accepted, all in
	// one mongo transaction. A conflict is returned when another acceptance
	// won the race.
	AcceptTransactionally(ctx context.Context, jobID, proposalID string, snap models.AcceptSnapshot) error

	Delete(id string) error
	DeleteByJob(jobID string) (int64, error)
}
