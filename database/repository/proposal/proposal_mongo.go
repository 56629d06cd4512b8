package proposalRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/database"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProposalRepo implements ProposalRepository using MongoDB.
type MongoProposalRepo struct {
	coll    *mongo.Collection
	jobColl *mongo.Collection
}

// NewMongoProposalRepo creates a new instance of ProposalRepository using MongoDB.
func NewMongoProposalRepo() ProposalRepository {
	repo := &MongoProposalRepo{
		coll:    database.Collection("proposals"),
		jobColl: database.Collection("jobs"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create proposal indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new proposal document.
func (r *MongoProposalRepo) Create(proposal *models.Proposal) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, proposal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ConflictError("you have already submitted a proposal for this job")
		}
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// GetByID retrieves a proposal by its unique ID.
func (r *MongoProposalRepo) GetByID(id string) (*models.Proposal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var proposal models.Proposal
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&proposal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch proposal with id %s: %w", id, err)
	}
	return &proposal, nil
}

// GetByJobAndProvider retrieves the provider's proposal on a job, if any.
func (r *MongoProposalRepo) GetByJobAndProvider(jobID, providerID string) (*models.Proposal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var proposal models.Proposal
	filter := bson.M{"jobId": jobID, "providerId": providerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&proposal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch proposal for job %s by provider %s: %w", jobID, providerID, err)
	}
	return &proposal, nil
}

// ListByJob retrieves all proposals on a job, newest first.
func (r *MongoProposalRepo) ListByJob(jobID string) ([]models.Proposal, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"jobId": jobID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve proposals for job %s: %w", jobID, err)
	}
	defer cursor.Close(ctx)

	var proposals []models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, nil
}

// ListByProvider retrieves a provider's proposals page by page, newest first,
// with the total count.
func (r *MongoProposalRepo) ListByProvider(providerID string, page, limit int64) ([]models.Proposal, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{"providerId": providerID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count proposals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve proposals for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var proposals []models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, total, nil
}

// ListAcceptedByProvider retrieves the provider's accepted proposals.
func (r *MongoProposalRepo) ListAcceptedByProvider(providerID string) ([]models.Proposal, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"providerId": providerID,
		"status":     models.ProposalStatusAccepted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accepted proposals for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var proposals []models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, nil
}

// ListAll retrieves every proposal. Used by the orphan sweep.
func (r *MongoProposalRepo) ListAll() ([]models.Proposal, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var proposals []models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, nil
}

// CountByJob returns the authoritative proposal count for a job.
func (r *MongoProposalRepo) CountByJob(jobID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to count proposals for job %s: %w", jobID, err)
	}
	return count, nil
}

// Delete removes a proposal document by its ID.
func (r *MongoProposalRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete proposal with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("proposal with id %s not found", id)
	}
	return nil
}

// DeleteByJob removes every proposal on a job and returns the number removed.
// A zero count is not an error; cascades and sweeps tolerate already-gone
// documents.
func (r *MongoProposalRepo) DeleteByJob(jobID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete proposals for job %s: %w", jobID, err)
	}
	return result.DeletedCount, nil
}
