package proposalRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AcceptTransactionally performs the exclusive acceptance step: the job moves
// from approved to accepted with the snapshot written once, the target
// proposal becomes accepted, and every still-pending sibling becomes rejected.
// All three writes commit or none do. The job update is guarded on the current
// status, so when a concurrent acceptance already moved the job the guard
// matches nothing and the loser gets a conflict instead of a second snapshot.
func (r *MongoProposalRepo) AcceptTransactionally(ctx context.Context, jobID, proposalID string, snap models.AcceptSnapshot) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		jobFilter := bson.M{"id": jobID, "status": models.JobStatusApproved}
		jobUpdate := bson.M{"$set": bson.M{
			"status":             models.JobStatusAccepted,
			"acceptedProposalId": snap.ProposalID,
			"acceptedPrice":      snap.Price,
			"acceptedDuration":   snap.Duration,
			"acceptedAt":         snap.AcceptedAt,
			"updatedAt":          snap.AcceptedAt,
		}}

		res, err := r.jobColl.UpdateOne(sc, jobFilter, jobUpdate)
		if err != nil {
			return fmt.Errorf("failed to accept job %s: %w", jobID, err)
		}
		if res.MatchedCount == 0 {
			return utils.ConflictError("job is no longer open for acceptance")
		}

		targetFilter := bson.M{"id": proposalID, "status": models.ProposalStatusPending}
		targetUpdate := bson.M{"$set": bson.M{
			"status":     models.ProposalStatusAccepted,
			"acceptedAt": snap.AcceptedAt,
			"updatedAt":  snap.AcceptedAt,
		}}

		res, err = r.coll.UpdateOne(sc, targetFilter, targetUpdate)
		if err != nil {
			return fmt.Errorf("failed to accept proposal %s: %w", proposalID, err)
		}
		if res.MatchedCount == 0 {
			return utils.ConflictError("proposal is no longer pending")
		}

		// Only pending siblings are rejected; terminal siblings keep their
		// status.
		siblingFilter := bson.M{
			"jobId":  jobID,
			"id":     bson.M{"$ne": proposalID},
			"status": models.ProposalStatusPending,
		}
		siblingUpdate := bson.M{"$set": bson.M{
			"status":     models.ProposalStatusRejected,
			"rejectedAt": snap.AcceptedAt,
			"updatedAt":  snap.AcceptedAt,
		}}

		if _, err := r.coll.UpdateMany(sc, siblingFilter, siblingUpdate); err != nil {
			return fmt.Errorf("failed to reject sibling proposals for job %s: %w", jobID, err)
		}
		return nil
	}

	txnCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := mongo.WithSession(txnCtx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if utils.KindOf(err) != "" {
			return err
		}
		return fmt.Errorf("accept transaction failed: %w", err)
	}

	return nil
}
