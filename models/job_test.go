package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobStatusPending, JobStatusApproved, true},
		{JobStatusPending, JobStatusRejected, true},
		{JobStatusPending, JobStatusAccepted, false},
		{JobStatusPending, JobStatusCompleted, false},

		{JobStatusApproved, JobStatusAccepted, true},
		{JobStatusApproved, JobStatusRejected, true},
		{JobStatusApproved, JobStatusPending, false},
		{JobStatusApproved, JobStatusCompleted, false},

		{JobStatusAccepted, JobStatusCompleted, true},
		{JobStatusAccepted, JobStatusApproved, false},
		{JobStatusAccepted, JobStatusRejected, false},

		{JobStatusCompleted, JobStatusPending, false},
		{JobStatusCompleted, JobStatusApproved, false},
		{JobStatusRejected, JobStatusPending, false},
		{JobStatusRejected, JobStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.IsTerminal())
	assert.False(t, JobStatusApproved.IsTerminal())
	assert.False(t, JobStatusAccepted.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusRejected.IsTerminal())
}

func TestJobOwnerExactlyOne(t *testing.T) {
	registered, err := RegisteredOwner("cust-1")
	require.NoError(t, err)
	assert.NoError(t, registered.Validate())
	assert.False(t, registered.IsGuest())
	assert.Empty(t, registered.ContactEmail())

	guest, err := GuestOwner(GuestCustomer{Name: "Misafir", Email: "g@example.com"})
	require.NoError(t, err)
	assert.NoError(t, guest.Validate())
	assert.True(t, guest.IsGuest())
	assert.Equal(t, "g@example.com", guest.ContactEmail())

	_, err = RegisteredOwner("")
	assert.Error(t, err)
	_, err = GuestOwner(GuestCustomer{Name: "Misafir"})
	assert.Error(t, err)

	both := JobOwner{CustomerID: "cust-1", Guest: guest.Guest}
	assert.Error(t, both.Validate())
	assert.Error(t, JobOwner{}.Validate())
}

func TestOpenForProposals(t *testing.T) {
	now := time.Now()
	job := &Job{Status: JobStatusApproved, ExpiresAt: now.Add(time.Hour)}

	assert.True(t, job.OpenForProposals(now))
	assert.False(t, job.IsExpired(now))

	// Expiry is a hard close even while approved.
	assert.False(t, job.OpenForProposals(now.Add(2*time.Hour)))
	assert.True(t, job.IsExpired(job.ExpiresAt))

	job.Status = JobStatusPending
	assert.False(t, job.OpenForProposals(now))
	job.Status = JobStatusAccepted
	assert.False(t, job.OpenForProposals(now))
}

func TestProposalDurationValidate(t *testing.T) {
	assert.NoError(t, ProposalDuration{Value: 2, Unit: "hafta"}.Validate())
	assert.NoError(t, ProposalDuration{Value: 1, Unit: "saat"}.Validate())
	assert.NoError(t, ProposalDuration{Value: 10, Unit: "gün"}.Validate())
	assert.NoError(t, ProposalDuration{Value: 3, Unit: "ay"}.Validate())

	assert.Error(t, ProposalDuration{Value: 0, Unit: "hafta"}.Validate())
	assert.Error(t, ProposalDuration{Value: 2, Unit: "yıl"}.Validate())
	assert.Error(t, ProposalDuration{Value: 2}.Validate())
}

func TestProposalDurationString(t *testing.T) {
	assert.Equal(t, "2 hafta", ProposalDuration{Value: 2, Unit: "hafta"}.String())
	assert.Equal(t, "1 gün", ProposalDuration{Value: 1, Unit: "gün"}.String())
}

func TestProposalStatusTerminal(t *testing.T) {
	assert.False(t, ProposalStatusPending.IsTerminal())
	assert.True(t, ProposalStatusAccepted.IsTerminal())
	assert.True(t, ProposalStatusRejected.IsTerminal())
}
