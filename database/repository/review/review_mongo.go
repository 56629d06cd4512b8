package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{coll: database.Collection("reviews")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	review.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ConflictError("you have already reviewed this job")
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// GetByJobAndReviewer retrieves the reviewer's review on a job, if any.
func (r *MongoReviewRepo) GetByJobAndReviewer(jobID, reviewerID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	filter := bson.M{"jobId": jobID, "reviewerId": reviewerID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for job %s by reviewer %s: %w", jobID, reviewerID, err)
	}
	return &review, nil
}

// ListByJob retrieves all reviews on a job, newest first.
func (r *MongoReviewRepo) ListByJob(jobID string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"jobId": jobID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews for job %s: %w", jobID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ListByReviewed retrieves reviews about a user page by page, newest first,
// with the total count.
func (r *MongoReviewRepo) ListByReviewed(reviewedID string, page, limit int64) ([]models.Review, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{"reviewedId": reviewedID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve reviews for user %s: %w", reviewedID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

// ListAllByReviewed retrieves every review about a user. Used by the rating
// recompute.
func (r *MongoReviewRepo) ListAllByReviewed(reviewedID string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"reviewedId": reviewedID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews for user %s: %w", reviewedID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ListAll retrieves every review. Used by the orphan sweep.
func (r *MongoReviewRepo) ListAll() ([]models.Review, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// CountByReviewer counts reviews written by a user.
func (r *MongoReviewRepo) CountByReviewer(reviewerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"reviewerId": reviewerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews by reviewer %s: %w", reviewerID, err)
	}
	return count, nil
}

// CountByReviewed counts reviews received by a user.
func (r *MongoReviewRepo) CountByReviewed(reviewedID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"reviewedId": reviewedID})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews for user %s: %w", reviewedID, err)
	}
	return count, nil
}

// Delete removes a review document by its ID.
func (r *MongoReviewRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review with id %s not found", id)
	}
	return nil
}

// DeleteByJob removes every review on a job and returns the number removed.
// A zero count is not an error.
func (r *MongoReviewRepo) DeleteByJob(jobID string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"jobId": jobID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews for job %s: %w", jobID, err)
	}
	return result.DeletedCount, nil
}
