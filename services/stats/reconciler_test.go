package stats

import (
	"context"
	"testing"
	"time"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Slice-backed read-only fakes; only the reconciler's read paths and the two
// persistence hooks carry behavior.

type memJobs struct{ jobs []models.Job }

func (m *memJobs) Create(*models.Job) error            { return nil }
func (m *memJobs) GetByID(string) (*models.Job, error) { return nil, nil }
func (m *memJobs) List(jobRepo.JobFilter) ([]models.Job, int64, error) {
	return nil, 0, nil
}
func (m *memJobs) UpdateWithDocument(string, bson.M) error { return nil }
func (m *memJobs) Delete(string) error                     { return nil }
func (m *memJobs) IncrementViews(string) error             { return nil }
func (m *memJobs) SetProposalCount(string, int64) error    { return nil }
func (m *memJobs) SetStatus(string, []models.JobStatus, models.JobStatus) (bool, error) {
	return false, nil
}
func (m *memJobs) MarkDelivered(string, string, time.Time) (bool, error) { return false, nil }

func (m *memJobs) CompletedByCustomer(customerID string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range m.jobs {
		if j.CustomerID == customerID && j.Status == models.JobStatusCompleted {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) CompletedByAcceptedProposals(proposalIDs []string) ([]models.Job, error) {
	ids := make(map[string]bool, len(proposalIDs))
	for _, id := range proposalIDs {
		ids[id] = true
	}
	var out []models.Job
	for _, j := range m.jobs {
		if j.Status == models.JobStatusCompleted && ids[j.AcceptedProposalID] {
			out = append(out, j)
		}
	}
	return out, nil
}

type memProposals struct{ proposals []models.Proposal }

func (m *memProposals) Create(*models.Proposal) error            { return nil }
func (m *memProposals) GetByID(string) (*models.Proposal, error) { return nil, nil }
func (m *memProposals) GetByJobAndProvider(string, string) (*models.Proposal, error) {
	return nil, nil
}
func (m *memProposals) ListByJob(string) ([]models.Proposal, error) { return nil, nil }
func (m *memProposals) ListByProvider(string, int64, int64) ([]models.Proposal, int64, error) {
	return nil, 0, nil
}
func (m *memProposals) ListAll() ([]models.Proposal, error) { return nil, nil }
func (m *memProposals) CountByJob(string) (int64, error)    { return 0, nil }
func (m *memProposals) AcceptTransactionally(context.Context, string, string, models.AcceptSnapshot) error {
	return nil
}
func (m *memProposals) Delete(string) error               { return nil }
func (m *memProposals) DeleteByJob(string) (int64, error) { return 0, nil }

func (m *memProposals) ListAcceptedByProvider(providerID string) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range m.proposals {
		if p.ProviderID == providerID && p.Status == models.ProposalStatusAccepted {
			out = append(out, p)
		}
	}
	return out, nil
}

type memReviews struct{ reviews []models.Review }

func (m *memReviews) Create(*models.Review) error            { return nil }
func (m *memReviews) GetByID(string) (*models.Review, error) { return nil, nil }
func (m *memReviews) GetByJobAndReviewer(string, string) (*models.Review, error) {
	return nil, nil
}
func (m *memReviews) ListByJob(string) ([]models.Review, error) { return nil, nil }
func (m *memReviews) ListByReviewed(string, int64, int64) ([]models.Review, int64, error) {
	return nil, 0, nil
}
func (m *memReviews) ListAll() ([]models.Review, error) { return nil, nil }
func (m *memReviews) Delete(string) error               { return nil }
func (m *memReviews) DeleteByJob(string) (int64, error) { return 0, nil }

func (m *memReviews) ListAllByReviewed(reviewedID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.reviews {
		if r.ReviewedID == reviewedID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) CountByReviewer(reviewerID string) (int64, error) {
	var count int64
	for _, r := range m.reviews {
		if r.ReviewerID == reviewerID {
			count++
		}
	}
	return count, nil
}

func (m *memReviews) CountByReviewed(reviewedID string) (int64, error) {
	var count int64
	for _, r := range m.reviews {
		if r.ReviewedID == reviewedID {
			count++
		}
	}
	return count, nil
}

type memUsers struct {
	users   map[string]*models.User
	stats   map[string][]models.UserStats
	ratings map[string][]models.Rating
}

func newMemUsers(ids ...string) *memUsers {
	m := &memUsers{
		users:   make(map[string]*models.User),
		stats:   make(map[string][]models.UserStats),
		ratings: make(map[string][]models.Rating),
	}
	for _, id := range ids {
		m.users[id] = &models.User{ID: id, IsActive: true}
	}
	return m
}

func (m *memUsers) Create(*models.User) error { return nil }

func (m *memUsers) GetByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (m *memUsers) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return m.GetByID(id)
}
func (m *memUsers) GetByEmail(string) (*models.User, error) { return nil, nil }
func (m *memUsers) GetAll(int64, int64) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (m *memUsers) UpdateWithDocument(string, bson.M) error { return nil }
func (m *memUsers) Delete(string) error                     { return nil }

func (m *memUsers) UpdateStats(id string, stats models.UserStats) error {
	m.stats[id] = append(m.stats[id], stats)
	return nil
}

func (m *memUsers) UpdateRating(id string, rating models.Rating) error {
	m.ratings[id] = append(m.ratings[id], rating)
	return nil
}

// completedJob builds a completed job with its acceptance snapshot in place.
func completedJob(id, customerID, proposalID string, price float64) models.Job {
	return models.Job{
		ID:                 id,
		JobOwner:           models.JobOwner{CustomerID: customerID},
		Status:             models.JobStatusCompleted,
		AcceptedProposalID: proposalID,
		AcceptedPrice:      price,
	}
}

func TestRecomputeCustomerSide(t *testing.T) {
	jobs := &memJobs{jobs: []models.Job{
		completedJob("job-1", "cust-1", "prop-1", 5000),
		completedJob("job-2", "cust-1", "prop-2", 1500),
		// In-flight job never counts.
		{ID: "job-3", JobOwner: models.JobOwner{CustomerID: "cust-1"}, Status: models.JobStatusAccepted, AcceptedPrice: 9000},
	}}
	rec := NewStatsReconciler(jobs, &memProposals{}, &memReviews{}, newMemUsers("cust-1"))

	stats, err := rec.Recompute("cust-1")
	require.NoError(t, err)

	assert.Equal(t, 6500.0, stats.TotalSpent)
	assert.Equal(t, 0.0, stats.TotalEarnings)
	assert.Equal(t, 2, stats.CompletedJobs)
}

func TestRecomputeProviderSide(t *testing.T) {
	proposals := &memProposals{proposals: []models.Proposal{
		{ID: "prop-1", JobID: "job-1", ProviderID: "prov-1", Status: models.ProposalStatusAccepted, Price: 5000},
		{ID: "prop-2", JobID: "job-2", ProviderID: "prov-1", Status: models.ProposalStatusAccepted, Price: 3000},
		// Rejected proposals never contribute.
		{ID: "prop-3", JobID: "job-3", ProviderID: "prov-1", Status: models.ProposalStatusRejected, Price: 8000},
	}}
	jobs := &memJobs{jobs: []models.Job{
		completedJob("job-1", "cust-1", "prop-1", 5000),
		// Accepted but not yet delivered: no earnings yet.
		{ID: "job-2", JobOwner: models.JobOwner{CustomerID: "cust-1"}, Status: models.JobStatusAccepted, AcceptedProposalID: "prop-2", AcceptedPrice: 3000},
	}}
	rec := NewStatsReconciler(jobs, proposals, &memReviews{}, newMemUsers("prov-1"))

	stats, err := rec.Recompute("prov-1")
	require.NoError(t, err)

	assert.Equal(t, 5000.0, stats.TotalEarnings)
	assert.Equal(t, 0.0, stats.TotalSpent)
	assert.Equal(t, 1, stats.CompletedJobs)
}

func TestRecomputeBothSides(t *testing.T) {
	// A provider who also hires: both totals accumulate on the same user.
	jobs := &memJobs{jobs: []models.Job{
		completedJob("job-1", "mixed-1", "prop-other", 2000),
		completedJob("job-2", "cust-9", "prop-1", 7000),
	}}
	proposals := &memProposals{proposals: []models.Proposal{
		{ID: "prop-1", JobID: "job-2", ProviderID: "mixed-1", Status: models.ProposalStatusAccepted, Price: 7000},
	}}
	rec := NewStatsReconciler(jobs, proposals, &memReviews{}, newMemUsers("mixed-1"))

	stats, err := rec.Recompute("mixed-1")
	require.NoError(t, err)

	assert.Equal(t, 2000.0, stats.TotalSpent)
	assert.Equal(t, 7000.0, stats.TotalEarnings)
	assert.Equal(t, 2, stats.CompletedJobs)
}

func TestRecomputeUsesSnapshotPrice(t *testing.T) {
	// The proposal record drifted after acceptance; the job snapshot rules.
	proposals := &memProposals{proposals: []models.Proposal{
		{ID: "prop-1", JobID: "job-1", ProviderID: "prov-1", Status: models.ProposalStatusAccepted, Price: 9999},
	}}
	jobs := &memJobs{jobs: []models.Job{
		completedJob("job-1", "cust-1", "prop-1", 5000),
	}}
	rec := NewStatsReconciler(jobs, proposals, &memReviews{}, newMemUsers("prov-1"))

	stats, err := rec.Recompute("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, stats.TotalEarnings)
}

func TestRecomputeReviewCounts(t *testing.T) {
	reviews := &memReviews{reviews: []models.Review{
		{ID: "r1", JobID: "job-1", ReviewerID: "cust-1", ReviewedID: "prov-1", Rating: 4},
		{ID: "r2", JobID: "job-2", ReviewerID: "cust-1", ReviewedID: "prov-2", Rating: 5},
		{ID: "r3", JobID: "job-1", ReviewerID: "prov-1", ReviewedID: "cust-1", Rating: 3},
	}}
	rec := NewStatsReconciler(&memJobs{}, &memProposals{}, reviews, newMemUsers("cust-1"))

	stats, err := rec.Recompute("cust-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReviewsGiven)
	assert.Equal(t, 1, stats.ReviewsReceived)
}

func TestRatingForRoundsToOneDecimal(t *testing.T) {
	reviews := &memReviews{reviews: []models.Review{
		{ID: "r1", ReviewedID: "prov-1", Rating: 4},
		{ID: "r2", ReviewedID: "prov-1", Rating: 5},
		{ID: "r3", ReviewedID: "prov-1", Rating: 3},
	}}
	rec := NewStatsReconciler(&memJobs{}, &memProposals{}, reviews, newMemUsers("prov-1"))

	rating, err := rec.RatingFor("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating.Average)
	assert.Equal(t, 3, rating.Count)

	// Dropping the 3 moves the average to 4.5.
	reviews.reviews = reviews.reviews[:2]
	rating, err = rec.RatingFor("prov-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.Average)
	assert.Equal(t, 2, rating.Count)
}

func TestRatingForNoReviews(t *testing.T) {
	rec := NewStatsReconciler(&memJobs{}, &memProposals{}, &memReviews{}, newMemUsers("prov-1"))

	rating, err := rec.RatingFor("prov-1")
	require.NoError(t, err)
	assert.Equal(t, models.Rating{}, rating)
}

func TestApplyIsIdempotent(t *testing.T) {
	proposals := &memProposals{proposals: []models.Proposal{
		{ID: "prop-1", JobID: "job-1", ProviderID: "prov-1", Status: models.ProposalStatusAccepted, Price: 5000},
	}}
	jobs := &memJobs{jobs: []models.Job{
		completedJob("job-1", "cust-1", "prop-1", 5000),
	}}
	reviews := &memReviews{reviews: []models.Review{
		{ID: "r1", JobID: "job-1", ReviewerID: "cust-1", ReviewedID: "prov-1", Rating: 4},
	}}
	users := newMemUsers("prov-1")
	rec := NewStatsReconciler(jobs, proposals, reviews, users)

	require.NoError(t, rec.Apply("prov-1"))
	require.NoError(t, rec.Apply("prov-1"))

	writes := users.stats["prov-1"]
	require.Len(t, writes, 2)
	assert.Equal(t, writes[0], writes[1])
	assert.Equal(t, 5000.0, writes[0].TotalEarnings)
	assert.Equal(t, 1, writes[0].CompletedJobs)
	assert.Equal(t, 1, writes[0].ReviewsReceived)

	ratings := users.ratings["prov-1"]
	require.Len(t, ratings, 2)
	assert.Equal(t, ratings[0], ratings[1])
	assert.Equal(t, 4.0, ratings[0].Average)
}

func TestApplySkipsUnknownUser(t *testing.T) {
	users := newMemUsers("prov-1")
	rec := NewStatsReconciler(&memJobs{}, &memProposals{}, &memReviews{}, users)

	require.NoError(t, rec.Apply("missing"))
	assert.Empty(t, users.stats["missing"])
	assert.Empty(t, users.ratings["missing"])
}
