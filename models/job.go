package models

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle status of a job posting.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusApproved  JobStatus = "approved"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusCompleted JobStatus = "completed"
	JobStatusRejected  JobStatus = "rejected"
)

// jobTransitions lists the legal one-way transitions. Completed and rejected
// are terminal; no transition ever returns a job to an earlier status.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:  {JobStatusApproved, JobStatusRejected},
	JobStatusApproved: {JobStatusAccepted, JobStatusRejected},
	JobStatusAccepted: {JobStatusCompleted},
}

// CanTransitionTo reports whether the status may legally move to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s JobStatus) IsTerminal() bool {
	return len(jobTransitions[s]) == 0
}

// GuestCustomer is the contact record for a job posted without an account.
type GuestCustomer struct {
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	IsVerified bool   `bson:"isVerified" json:"isVerified"`
}

// JobOwner is a tagged variant: a job is owned by exactly one of a registered
// customer or a guest contact record. Construct through RegisteredOwner or
// GuestOwner so the exactly-one-of invariant holds from creation.
type JobOwner struct {
	CustomerID string         `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Guest      *GuestCustomer `bson:"guestCustomer,omitempty" json:"guestCustomer,omitempty"`
}

// RegisteredOwner builds an owner backed by a platform account.
func RegisteredOwner(customerID string) (JobOwner, error) {
	if customerID == "" {
		return JobOwner{}, fmt.Errorf("customer id is required")
	}
	return JobOwner{CustomerID: customerID}, nil
}

// GuestOwner builds an owner backed by guest contact details.
func GuestOwner(guest GuestCustomer) (JobOwner, error) {
	if guest.Name == "" || guest.Email == "" {
		return JobOwner{}, fmt.Errorf("guest name and email are required")
	}
	g := guest
	return JobOwner{Guest: &g}, nil
}

// Validate enforces the exactly-one-of invariant.
func (o JobOwner) Validate() error {
	if o.CustomerID != "" && o.Guest != nil {
		return fmt.Errorf("job owner cannot be both registered and guest")
	}
	if o.CustomerID == "" && o.Guest == nil {
		return fmt.Errorf("job owner must be registered or guest")
	}
	return nil
}

// IsGuest reports whether the job was posted without an account.
func (o JobOwner) IsGuest() bool {
	return o.Guest != nil
}

// ContactEmail returns the email used for owner notifications, empty when the
// registered owner's email must be resolved through the user store.
func (o JobOwner) ContactEmail() string {
	if o.Guest != nil {
		return o.Guest.Email
	}
	return ""
}

// Budget is the optional customer budget hint on a posting.
type Budget struct {
	Min      float64 `bson:"min" json:"min"`
	Max      float64 `bson:"max" json:"max"`
	Currency string  `bson:"currency" json:"currency"`
}

// DocumentRef points at an uploaded document in blob storage.
type DocumentRef struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
}

// Attachments groups the blob-store references on a job.
type Attachments struct {
	Images    []string      `bson:"images" json:"images"`
	Documents []DocumentRef `bson:"documents" json:"documents"`
}

// JobDuration is the customer's rough time estimate for the work.
type JobDuration struct {
	Value int    `bson:"value" json:"value"`
	Unit  string `bson:"unit" json:"unit"`
}

// JobStats caches per-job counters. ProposalCount mirrors the number of
// proposals in the proposal store and is refreshed after every proposal
// mutation.
type JobStats struct {
	Views         int `bson:"views" json:"views"`
	ProposalCount int `bson:"proposalCount" json:"proposalCount"`
}

// AcceptSnapshot is the immutable contract captured when a proposal is
// accepted. Once written to the job it is never recomputed, even if the
// underlying proposal record changes.
type AcceptSnapshot struct {
	ProposalID string
	Price      float64
	Duration   string
	AcceptedAt time.Time
}

// Job is a customer's request for work.
type Job struct {
	ID            string      `bson:"id" json:"id"`
	Title         string      `bson:"title" json:"title"`
	Description   string      `bson:"description" json:"description"`
	CategoryID    string      `bson:"categoryId" json:"categoryId"`
	SubcategoryID string      `bson:"subcategoryId,omitempty" json:"subcategoryId,omitempty"`
	JobOwner      `bson:",inline"`
	Location      Location    `bson:"location" json:"location"`
	Attachments   Attachments `bson:"attachments" json:"attachments"`
	Budget        *Budget     `bson:"budget,omitempty" json:"budget,omitempty"`
	Duration      JobDuration `bson:"duration" json:"duration"`
	Status        JobStatus   `bson:"status" json:"status"`

	// Acceptance snapshot; written exactly once on the approved -> accepted
	// transition.
	AcceptedProposalID string     `bson:"acceptedProposalId,omitempty" json:"acceptedProposalId,omitempty"`
	AcceptedPrice      float64    `bson:"acceptedPrice,omitempty" json:"acceptedPrice,omitempty"`
	AcceptedDuration   string     `bson:"acceptedDuration,omitempty" json:"acceptedDuration,omitempty"`
	AcceptedAt         *time.Time `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`

	// Delivery; written exactly once on the accepted -> completed transition.
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	DeliveredBy string     `bson:"deliveredBy,omitempty" json:"deliveredBy,omitempty"`

	MaxProposals int          `bson:"maxProposals" json:"maxProposals"`
	ExpiresAt    time.Time    `bson:"expiresAt" json:"expiresAt"`
	Stats        JobStats     `bson:"stats" json:"stats"`
	AdminNotes   string       `bson:"adminNotes,omitempty" json:"-"`
	KVKKConsent  *KVKKConsent `bson:"kvkkConsent,omitempty" json:"kvkkConsent,omitempty"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// IsExpired reports whether the posting no longer accepts proposals.
func (j *Job) IsExpired(now time.Time) bool {
	return !now.Before(j.ExpiresAt)
}

// OpenForProposals reports whether new proposals may be submitted.
func (j *Job) OpenForProposals(now time.Time) bool {
	return j.Status == JobStatusApproved && !j.IsExpired(now)
}
