package job

import (
	"context"
	"sync"
	"time"

	jobRepo "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// In-memory repository fakes. The accept fake mirrors the production
// transaction's status guards so races resolve the same way.

type fakeJobs struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobs) Create(job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	copy := *job
	f.jobs[job.ID] = &copy
	return nil
}

func (f *fakeJobs) GetByID(id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	copy := *job
	return &copy, nil
}

func (f *fakeJobs) List(filter jobRepo.JobFilter) ([]models.Job, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, job := range f.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && job.CustomerID != filter.CustomerID {
			continue
		}
		if filter.CategoryID != "" && job.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, *job)
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobs) UpdateWithDocument(id string, update bson.M) error { return nil }

func (f *fakeJobs) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobs) IncrementViews(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.Stats.Views++
	}
	return nil
}

func (f *fakeJobs) SetProposalCount(id string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.Stats.ProposalCount = int(count)
	}
	return nil
}

func (f *fakeJobs) SetStatus(id string, from []models.JobStatus, to models.JobStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if job.Status == s {
			job.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJobs) MarkDelivered(id, providerID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok || job.Status != models.JobStatusAccepted {
		return false, nil
	}
	job.Status = models.JobStatusCompleted
	job.DeliveredAt = &at
	job.DeliveredBy = providerID
	return true, nil
}

func (f *fakeJobs) CompletedByCustomer(customerID string) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, job := range f.jobs {
		if job.CustomerID == customerID && job.Status == models.JobStatusCompleted {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobs) CompletedByAcceptedProposals(proposalIDs []string) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make(map[string]bool, len(proposalIDs))
	for _, id := range proposalIDs {
		ids[id] = true
	}
	var out []models.Job
	for _, job := range f.jobs {
		if job.Status == models.JobStatusCompleted && ids[job.AcceptedProposalID] {
			out = append(out, *job)
		}
	}
	return out, nil
}

type fakeProposals struct {
	mu        sync.Mutex
	jobs      *fakeJobs
	proposals map[string]*models.Proposal
}

func newFakeProposals(jobs *fakeJobs) *fakeProposals {
	return &fakeProposals{jobs: jobs, proposals: make(map[string]*models.Proposal)}
}

func (f *fakeProposals) Create(p *models.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.proposals {
		if existing.JobID == p.JobID && existing.ProviderID == p.ProviderID {
			return utils.ConflictError("you have already submitted a proposal for this job")
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	copy := *p
	f.proposals[p.ID] = &copy
	return nil
}

func (f *fakeProposals) GetByID(id string) (*models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.proposals[id]
	if !ok {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProposals) GetByJobAndProvider(jobID, providerID string) (*models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.proposals {
		if p.JobID == jobID && p.ProviderID == providerID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeProposals) ListByJob(jobID string) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.JobID == jobID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProposals) ListByProvider(providerID string, page, limit int64) ([]models.Proposal, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProposals) ListAcceptedByProvider(providerID string) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.ProviderID == providerID && p.Status == models.ProposalStatusAccepted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProposals) ListAll() ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Proposal
	for _, p := range f.proposals {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProposals) CountByJob(jobID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.proposals {
		if p.JobID == jobID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProposals) AcceptTransactionally(ctx context.Context, jobID, proposalID string, snap models.AcceptSnapshot) error {
	// Take both locks the way the transaction takes both collections.
	f.jobs.mu.Lock()
	defer f.jobs.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs.jobs[jobID]
	if !ok || job.Status != models.JobStatusApproved {
		return utils.ConflictError("job is no longer open for acceptance")
	}
	target, ok := f.proposals[proposalID]
	if !ok || target.Status != models.ProposalStatusPending {
		return utils.ConflictError("proposal is no longer pending")
	}

	job.Status = models.JobStatusAccepted
	job.AcceptedProposalID = snap.ProposalID
	job.AcceptedPrice = snap.Price
	job.AcceptedDuration = snap.Duration
	at := snap.AcceptedAt
	job.AcceptedAt = &at

	target.Status = models.ProposalStatusAccepted
	target.AcceptedAt = &at

	for _, sibling := range f.proposals {
		if sibling.JobID == jobID && sibling.ID != proposalID && sibling.Status == models.ProposalStatusPending {
			sibling.Status = models.ProposalStatusRejected
			sibling.RejectedAt = &at
		}
	}
	return nil
}

func (f *fakeProposals) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.proposals, id)
	return nil
}

func (f *fakeProposals) DeleteByJob(jobID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, p := range f.proposals {
		if p.JobID == jobID {
			delete(f.proposals, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeReviews struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviews) Create(r *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.JobID == r.JobID && existing.ReviewerID == r.ReviewerID {
			return utils.ConflictError("you have already reviewed this job")
		}
	}
	copy := *r
	f.reviews[r.ID] = &copy
	return nil
}

func (f *fakeReviews) GetByID(id string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	copy := *r
	return &copy, nil
}

func (f *fakeReviews) GetByJobAndReviewer(jobID, reviewerID string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.JobID == jobID && r.ReviewerID == reviewerID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeReviews) ListByJob(jobID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		if r.JobID == jobID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByReviewed(reviewedID string, page, limit int64) ([]models.Review, int64, error) {
	out, err := f.ListAllByReviewed(reviewedID)
	return out, int64(len(out)), err
}

func (f *fakeReviews) ListAllByReviewed(reviewedID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		if r.ReviewedID == reviewedID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ListAll() ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviews) CountByReviewer(reviewerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reviews {
		if r.ReviewerID == reviewerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviews) CountByReviewed(reviewedID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reviews {
		if r.ReviewedID == reviewedID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviews) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviews) DeleteByJob(jobID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, r := range f.reviews {
		if r.JobID == jobID {
			delete(f.reviews, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*models.User)}
}

func (f *fakeUsers) add(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = &u
}

func (f *fakeUsers) Create(u *models.User) error {
	f.add(*u)
	return nil
}

func (f *fakeUsers) GetByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUsers) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

func (f *fakeUsers) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetAll(page, limit int64) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) UpdateWithDocument(id string, update bson.M) error { return nil }

func (f *fakeUsers) UpdateStats(id string, stats models.UserStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Stats = stats
	}
	return nil
}

func (f *fakeUsers) UpdateRating(id string, rating models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.ProviderInfo.Rating = rating
	}
	return nil
}

func (f *fakeUsers) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeReconciler struct {
	mu      sync.Mutex
	applied []string
}

func (f *fakeReconciler) Recompute(userID string) (models.UserStats, error) {
	return models.UserStats{}, nil
}

func (f *fakeReconciler) RatingFor(userID string) (models.Rating, error) {
	return models.Rating{}, nil
}

func (f *fakeReconciler) Apply(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, userID)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) record(event string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeNotifier) ProposalSubmitted(ctx context.Context, to, jobTitle, providerName string, price float64) error {
	return f.record("proposal_submitted:" + to)
}

func (f *fakeNotifier) ProposalAccepted(ctx context.Context, to, jobTitle, customerName string, price float64) error {
	return f.record("proposal_accepted:" + to)
}

func (f *fakeNotifier) JobApproved(ctx context.Context, to, jobTitle string) error {
	return f.record("job_approved:" + to)
}

func (f *fakeNotifier) PasswordResetOTP(ctx context.Context, to, otp string) error {
	return f.record("password_reset:" + to)
}
