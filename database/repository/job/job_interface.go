package jobRepo

import (
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// JobFilter narrows job listings.
type JobFilter struct {
	Status     models.JobStatus
	CategoryID string
	City       string
	CustomerID string
	Page       int64
	Limit      int64
}

// JobRepository defines persistence operations for jobs. Lookups return
// (nil, nil) when no document matches. Status transitions are guarded: the
// filter carries the required current status and a false return reports that
// no document matched, i.e. the caller lost the race or the precondition no
// longer holds.
type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id string) (*models.Job, error)
	List(filter JobFilter) ([]models.Job, int64, error)
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error

	IncrementViews(id string) error
	SetProposalCount(id string, count int64) error

	// SetStatus moves a job to the target status only when its current status
	// is one of from.
	SetStatus(id string, from []models.JobStatus, to models.JobStatus) (bool, error)
	// MarkDelivered completes a job only while it is still accepted.
	MarkDelivered(id, providerID string, at time.Time) (bool, error)

	// Reconciler queries.
	CompletedByCustomer(customerID string) ([]models.Job, error)
	CompletedByAcceptedProposals(proposalIDs []string) ([]models.Job, error)
}
