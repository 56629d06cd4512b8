package models

import (
	"fmt"
	"time"
)

// ProposalStatus is the lifecycle status of a proposal. Accepted and rejected
// are terminal.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// IsTerminal reports whether the proposal status admits no further change.
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusRejected
}

// Valid proposal duration units (hour, day, week, month).
var proposalDurationUnits = map[string]bool{
	"saat":  true,
	"gün":   true,
	"hafta": true,
	"ay":    true,
}

// ProposalDuration is the provider's time estimate, e.g. {2, "hafta"}.
type ProposalDuration struct {
	Value int    `bson:"value" json:"value"`
	Unit  string `bson:"unit" json:"unit"`
}

// Validate checks the duration value and unit.
func (d ProposalDuration) Validate() error {
	if d.Value < 1 {
		return fmt.Errorf("duration value must be at least 1")
	}
	if !proposalDurationUnits[d.Unit] {
		return fmt.Errorf("invalid duration unit %q", d.Unit)
	}
	return nil
}

// String renders the duration as displayed to users, e.g. "2 hafta".
func (d ProposalDuration) String() string {
	return fmt.Sprintf("%d %s", d.Value, d.Unit)
}

// Proposal is a provider's bid on a job. Proposals live only in the proposal
// store; a job references its accepted proposal by id and never embeds
// mutable proposal state.
type Proposal struct {
	ID          string           `bson:"id" json:"id"`
	JobID       string           `bson:"jobId" json:"jobId"`
	ProviderID  string           `bson:"providerId" json:"providerId"`
	Description string           `bson:"description" json:"description"`
	Price       float64          `bson:"price" json:"price"`
	Duration    ProposalDuration `bson:"duration" json:"duration"`
	Status      ProposalStatus   `bson:"status" json:"status"`
	Notes       string           `bson:"notes,omitempty" json:"notes,omitempty"`
	AcceptedAt  *time.Time       `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time       `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}
