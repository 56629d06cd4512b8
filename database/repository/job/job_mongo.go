package jobRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/database"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo creates a new instance of JobRepository using MongoDB.
func NewMongoJobRepo() JobRepository {
	coll := database.Collection("jobs")
	repo := &MongoJobRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create job indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// hasUpdateOperator reports whether the document already uses update
// operators; plain field maps get wrapped in $set.
func hasUpdateOperator(update bson.M) bool {
	for key := range update {
		if len(key) > 0 && key[0] == '$' {
			return true
		}
	}
	return false
}

// Create inserts a new job document.
func (r *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by its unique ID.
func (r *MongoJobRepo) GetByID(id string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var job models.Job
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch job with id %s: %w", id, err)
	}
	return &job, nil
}

// List retrieves jobs matching the filter, newest first, with the total count.
func (r *MongoJobRepo) List(filter JobFilter) ([]models.Job, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CategoryID != "" {
		query["categoryId"] = filter.CategoryID
	}
	if filter.City != "" {
		query["location.city"] = filter.City
	}
	if filter.CustomerID != "" {
		query["customerId"] = filter.CustomerID
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, total, nil
}

// UpdateWithDocument applies the given update document to a job.
func (r *MongoJobRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if !hasUpdateOperator(update) {
		update = bson.M{"$set": update}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update job with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("job with id %s not found", id)
	}
	return nil
}

// Delete removes a job document by its ID.
func (r *MongoJobRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("job with id %s not found", id)
	}
	return nil
}

// IncrementViews bumps the view counter.
func (r *MongoJobRepo) IncrementViews(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"stats.views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views for job %s: %w", id, err)
	}
	return nil
}

// SetProposalCount refreshes the cached proposal count from the proposal
// store's authoritative count.
func (r *MongoJobRepo) SetProposalCount(id string, count int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"stats.proposalCount": count,
		"updatedAt":           time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set proposal count for job %s: %w", id, err)
	}
	return nil
}

// SetStatus moves a job to the target status only when its current status is
// one of from. Returns false when no document matched the guard.
func (r *MongoJobRepo) SetStatus(id string, from []models.JobStatus, to models.JobStatus) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set status for job %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// MarkDelivered completes a job only while it is still accepted; the status
// guard makes re-issued delivery requests lose cleanly.
func (r *MongoJobRepo) MarkDelivered(id, providerID string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.JobStatusAccepted}
	update := bson.M{"$set": bson.M{
		"status":      models.JobStatusCompleted,
		"deliveredAt": at,
		"deliveredBy": providerID,
		"updatedAt":   at,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark job %s delivered: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// CompletedByCustomer returns completed jobs owned by the given customer.
func (r *MongoJobRepo) CompletedByCustomer(customerID string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"customerId": customerID,
		"status":     models.JobStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query completed jobs for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode completed jobs: %w", err)
	}
	return jobs, nil
}

// CompletedByAcceptedProposals returns completed jobs whose accepted proposal
// is one of the given ids.
func (r *MongoJobRepo) CompletedByAcceptedProposals(proposalIDs []string) ([]models.Job, error) {
	if len(proposalIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{
		"acceptedProposalId": bson.M{"$in": proposalIDs},
		"status":             models.JobStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query completed jobs by proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode completed jobs: %w", err)
	}
	return jobs, nil
}
