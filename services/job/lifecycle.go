package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/config"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateJob stores a new posting in pending status awaiting moderation.
// Guest postings require an accepted KVKK consent; registered postings take
// the owner from the authenticated session.
func (s *DefaultJobService) CreateJob(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, utils.ValidationError("title and description are required")
	}
	if in.CategoryID == "" {
		return nil, utils.ValidationError("category is required")
	}

	var owner models.JobOwner
	var err error
	switch {
	case in.CustomerID != "":
		customer, uerr := s.Users.GetByID(in.CustomerID)
		if uerr != nil {
			return nil, uerr
		}
		if customer == nil {
			return nil, utils.NotFoundError("customer not found")
		}
		owner, err = models.RegisteredOwner(in.CustomerID)
	case in.Guest != nil:
		if in.KVKKConsent == nil || !in.KVKKConsent.Accepted {
			return nil, utils.ValidationError("guest postings require an accepted KVKK consent")
		}
		owner, err = models.GuestOwner(*in.Guest)
	default:
		return nil, utils.ValidationError("job owner is required")
	}
	if err != nil {
		return nil, utils.ValidationError(err.Error())
	}
	if err := owner.Validate(); err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	maxProposals := config.AppConfig.JobMaxProposals
	if maxProposals < 1 {
		maxProposals = 10
	}
	expiryDays := config.AppConfig.JobExpiryDays
	if expiryDays < 1 {
		expiryDays = 30
	}

	now := time.Now()
	job := &models.Job{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		JobOwner:      owner,
		Location:      in.Location,
		Attachments:   in.Attachments,
		Budget:        in.Budget,
		Duration:      in.Duration,
		Status:        models.JobStatusPending,
		MaxProposals:  maxProposals,
		ExpiresAt:     now.AddDate(0, 0, expiryDays),
		KVKKConsent:   in.KVKKConsent,
	}

	if err := s.Jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// ApproveJob moves a pending posting into the public listing.
func (s *DefaultJobService) ApproveJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}

	ok, err := s.Jobs.SetStatus(jobID, []models.JobStatus{models.JobStatusPending}, models.JobStatusApproved)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.InvalidStateError(fmt.Sprintf("job cannot be approved from status %s", job.Status))
	}

	s.notifyOwner(ctx, job, func(email string) error {
		return s.Notifier.JobApproved(ctx, email, job.Title)
	})

	return s.Jobs.GetByID(jobID)
}

// RejectJob takes a posting out of circulation. Pending and approved jobs may
// be rejected; the reason lands in the admin notes, never in the public view.
func (s *DefaultJobService) RejectJob(ctx context.Context, jobID, reason string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}

	ok, err := s.Jobs.SetStatus(jobID,
		[]models.JobStatus{models.JobStatusPending, models.JobStatusApproved},
		models.JobStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.InvalidStateError(fmt.Sprintf("job cannot be rejected from status %s", job.Status))
	}

	if reason != "" {
		if err := s.Jobs.UpdateWithDocument(jobID, bson.M{"adminNotes": reason}); err != nil {
			utils.GetLogger().Error("Failed to record rejection reason",
				zap.String("jobID", jobID), zap.Error(err))
		}
	}
	return s.Jobs.GetByID(jobID)
}

// SubmitProposal records a provider's bid on an open job. The preconditions
// are checked in a fixed order so a request failing several of them always
// reports the same error.
func (s *DefaultJobService) SubmitProposal(ctx context.Context, in SubmitProposalInput) (*models.Proposal, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, utils.ValidationError("proposal description is required")
	}
	if in.Price <= 0 {
		return nil, utils.ValidationError("proposal price must be positive")
	}
	if err := in.Duration.Validate(); err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	job, err := s.Jobs.GetByID(in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}
	if !job.OpenForProposals(time.Now()) {
		return nil, utils.InvalidStateError("job is not open for proposals")
	}

	count, err := s.Proposals.CountByJob(in.JobID)
	if err != nil {
		return nil, err
	}
	if count >= int64(job.MaxProposals) {
		return nil, utils.LimitExceededError("job has reached its proposal limit")
	}

	provider, err := s.Users.GetByID(in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil || !provider.IsProvider() {
		return nil, utils.ForbiddenError("only providers can submit proposals")
	}
	if job.CustomerID == in.ProviderID {
		return nil, utils.ValidationError("cannot propose on your own job")
	}

	existing, err := s.Proposals.GetByJobAndProvider(in.JobID, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError("you have already submitted a proposal for this job")
	}

	proposal := &models.Proposal{
		ID:          uuid.New().String(),
		JobID:       in.JobID,
		ProviderID:  in.ProviderID,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Duration:    in.Duration,
		Status:      models.ProposalStatusPending,
		Notes:       in.Notes,
	}
	if err := s.Proposals.Create(proposal); err != nil {
		return nil, err
	}

	s.refreshProposalCount(in.JobID)
	s.notifyOwner(ctx, job, func(email string) error {
		return s.Notifier.ProposalSubmitted(ctx, email, job.Title, provider.Name, in.Price)
	})

	return proposal, nil
}

// AcceptProposal is the exclusive-acceptance step. The winning proposal's
// price and duration are snapshotted onto the job; every pending sibling is
// rejected in the same transaction. A concurrent acceptance loses with a
// conflict and the job keeps its first snapshot.
func (s *DefaultJobService) AcceptProposal(ctx context.Context, jobID, proposalID, customerID string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}
	if job.CustomerID == "" || job.CustomerID != customerID {
		return nil, utils.ForbiddenError("only the job owner can accept a proposal")
	}

	proposal, err := s.Proposals.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil || proposal.JobID != jobID {
		return nil, utils.NotFoundError("proposal not found for this job")
	}

	if job.Status != models.JobStatusApproved {
		return nil, utils.InvalidStateError(fmt.Sprintf("job cannot accept proposals in status %s", job.Status))
	}
	if job.IsExpired(time.Now()) {
		return nil, utils.InvalidStateError("job has expired")
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, utils.InvalidStateError(fmt.Sprintf("proposal is %s and can no longer be accepted", proposal.Status))
	}

	snap := models.AcceptSnapshot{
		ProposalID: proposal.ID,
		Price:      proposal.Price,
		Duration:   proposal.Duration.String(),
		AcceptedAt: time.Now(),
	}
	if err := s.Proposals.AcceptTransactionally(ctx, jobID, proposalID, snap); err != nil {
		return nil, err
	}

	s.notifyProvider(ctx, proposal.ProviderID, func(email string) error {
		customerName := ""
		if customer, cerr := s.Users.GetByID(customerID); cerr == nil && customer != nil {
			customerName = customer.Name
		}
		return s.Notifier.ProposalAccepted(ctx, email, job.Title, customerName, proposal.Price)
	})

	return s.Jobs.GetByID(jobID)
}

// DeliverJob marks an accepted job completed. Only the accepted provider can
// deliver; the status guard on the write makes a second delivery lose.
// Derived user stats are refreshed best effort, the reconciler repairs any
// missed refresh later.
func (s *DefaultJobService) DeliverJob(ctx context.Context, jobID, providerID string) (*models.Job, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.NotFoundError("job not found")
	}
	if job.Status != models.JobStatusAccepted {
		return nil, utils.InvalidStateError(fmt.Sprintf("job cannot be delivered from status %s", job.Status))
	}

	accepted, err := s.Proposals.GetByID(job.AcceptedProposalID)
	if err != nil {
		return nil, err
	}
	if accepted == nil || accepted.ProviderID != providerID {
		return nil, utils.ForbiddenError("only the accepted provider can deliver this job")
	}

	ok, err := s.Jobs.MarkDelivered(jobID, providerID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.InvalidStateError("job is no longer awaiting delivery")
	}

	s.applyStats(providerID)
	if job.CustomerID != "" {
		s.applyStats(job.CustomerID)
	}

	return s.Jobs.GetByID(jobID)
}

// DeleteJob removes a posting together with its proposals, reviews and
// stored attachments. Jobs with an active engagement cannot be deleted.
func (s *DefaultJobService) DeleteJob(ctx context.Context, jobID, actorID string, actorIsAdmin bool) error {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return utils.NotFoundError("job not found")
	}
	if !actorIsAdmin && (job.CustomerID == "" || job.CustomerID != actorID) {
		return utils.ForbiddenError("only the job owner or an admin can delete this job")
	}
	if job.Status == models.JobStatusAccepted || job.Status == models.JobStatusCompleted {
		return utils.InvalidStateError(fmt.Sprintf("job cannot be deleted in status %s", job.Status))
	}

	if _, err := s.Proposals.DeleteByJob(jobID); err != nil {
		return err
	}
	if _, err := s.Reviews.DeleteByJob(jobID); err != nil {
		return err
	}
	s.deleteAttachments(ctx, job)

	return s.Jobs.Delete(jobID)
}

// refreshProposalCount re-derives the cached per-job counter from the
// proposal store. Failures are logged; the counter is advisory.
func (s *DefaultJobService) refreshProposalCount(jobID string) {
	count, err := s.Proposals.CountByJob(jobID)
	if err == nil {
		err = s.Jobs.SetProposalCount(jobID, count)
	}
	if err != nil {
		utils.GetLogger().Error("Failed to refresh proposal count",
			zap.String("jobID", jobID), zap.Error(err))
	}
}

func (s *DefaultJobService) applyStats(userID string) {
	if err := s.Stats.Apply(userID); err != nil {
		utils.GetLogger().Error("Failed to refresh user stats",
			zap.String("userID", userID), zap.Error(err))
	}
}

// notifyOwner resolves the owner's contact email (guest record or user
// account) and sends best effort.
func (s *DefaultJobService) notifyOwner(ctx context.Context, job *models.Job, send func(email string) error) {
	email := job.ContactEmail()
	if email == "" && job.CustomerID != "" {
		owner, err := s.Users.GetByID(job.CustomerID)
		if err != nil || owner == nil {
			return
		}
		email = owner.Email
	}
	if email == "" {
		return
	}
	if err := send(email); err != nil {
		utils.GetLogger().Warn("Failed to notify job owner",
			zap.String("jobID", job.ID), zap.Error(err))
	}
}

func (s *DefaultJobService) notifyProvider(ctx context.Context, providerID string, send func(email string) error) {
	provider, err := s.Users.GetByID(providerID)
	if err != nil || provider == nil || provider.Email == "" {
		return
	}
	if err := send(provider.Email); err != nil {
		utils.GetLogger().Warn("Failed to notify provider",
			zap.String("providerID", providerID), zap.Error(err))
	}
}

// deleteAttachments removes stored files best effort. Delivery URLs are
// mapped back to their public IDs; anything unparseable is skipped.
func (s *DefaultJobService) deleteAttachments(ctx context.Context, job *models.Job) {
	if s.Storage == nil {
		return
	}
	urls := append([]string{}, job.Attachments.Images...)
	for _, doc := range job.Attachments.Documents {
		urls = append(urls, doc.URL)
	}
	for _, u := range urls {
		publicID := publicIDFromURL(u)
		if publicID == "" {
			continue
		}
		if err := s.Storage.DeleteFile(ctx, publicID); err != nil {
			utils.GetLogger().Warn("Failed to delete attachment",
				zap.String("jobID", job.ID), zap.String("publicID", publicID), zap.Error(err))
		}
	}
}

// publicIDFromURL extracts the storage public ID from a cloudinary delivery
// URL, e.g. .../upload/v12345/folder/name.jpg yields folder/name.
func publicIDFromURL(u string) string {
	idx := strings.Index(u, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := u[idx+len("/upload/"):]
	if slash := strings.Index(rest, "/"); slash >= 0 && strings.HasPrefix(rest, "v") {
		rest = rest[slash+1:]
	}
	if dot := strings.LastIndex(rest, "."); dot > 0 {
		rest = rest[:dot]
	}
	return rest
}
