package models

import "time"

// ReviewerType records which side of the job wrote the review.
type ReviewerType string

const (
	ReviewerCustomer ReviewerType = "customer"
	ReviewerProvider ReviewerType = "provider"
)

// MaxReviewCommentLength bounds review comments.
const MaxReviewCommentLength = 500

// Review is a rating and comment written by one participant of a completed
// job about the other. At most one review exists per (job, reviewer) pair.
type Review struct {
	ID           string       `bson:"id" json:"id"`
	JobID        string       `bson:"jobId" json:"jobId"`
	ReviewerID   string       `bson:"reviewerId" json:"reviewerId"`
	ReviewedID   string       `bson:"reviewedId" json:"reviewedId"`
	Rating       int          `bson:"rating" json:"rating"`
	Comment      string       `bson:"comment" json:"comment"`
	ReviewerType ReviewerType `bson:"reviewerType" json:"reviewerType"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}
