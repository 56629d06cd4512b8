package handlers

import (
	userRepoPkg "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/maintenance"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/review"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/storage"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct. The UserRepo is
// exposed for the auth middleware.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler       gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
	ForgotPasswordHandler gin.HandlerFunc
	ResetPasswordHandler  gin.HandlerFunc

	// User endpoints
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	GetUserHandler       gin.HandlerFunc

	// Job endpoints
	CreateJobHandler     gin.HandlerFunc
	ListJobsHandler      gin.HandlerFunc
	OpportunitiesHandler gin.HandlerFunc
	GetJobHandler        gin.HandlerFunc
	MyJobsHandler        gin.HandlerFunc
	DeleteJobHandler     gin.HandlerFunc
	DeliverJobHandler    gin.HandlerFunc

	// Proposal endpoints
	SubmitProposalHandler gin.HandlerFunc
	MyProposalsHandler    gin.HandlerFunc
	JobProposalsHandler   gin.HandlerFunc
	AcceptProposalHandler gin.HandlerFunc

	// Review endpoints
	CreateReviewHandler  gin.HandlerFunc
	JobReviewsHandler    gin.HandlerFunc
	UserReviewsHandler   gin.HandlerFunc
	CompletedJobsHandler gin.HandlerFunc

	// Storage endpoints
	UploadFileHandler gin.HandlerFunc

	// Admin endpoints
	AdminListJobsHandler     gin.HandlerFunc
	ApproveJobHandler        gin.HandlerFunc
	RejectJobHandler         gin.HandlerFunc
	AdminListUsersHandler    gin.HandlerFunc
	SetUserActiveHandler     gin.HandlerFunc
	AdminDeleteUserHandler   gin.HandlerFunc
	AdminDeleteReviewHandler gin.HandlerFunc
	OrphanSweepHandler       gin.HandlerFunc
	RepairStatsHandler       gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	userRepo userRepoPkg.UserRepository,
	userSvc user.UserService,
	jobSvc job.JobService,
	reviewSvc review.ReviewService,
	maintSvc maintenance.MaintenanceService,
	storageSvc storage.StorageService,
) *HandlerBundle {
	return &HandlerBundle{
		UserRepo: userRepo,

		RegisterHandler:       Register(userSvc),
		LoginHandler:          Login(userSvc),
		LogoutHandler:         Logout(userSvc),
		ForgotPasswordHandler: ForgotPassword(userSvc),
		ResetPasswordHandler:  ResetPassword(userSvc),

		GetProfileHandler:    GetProfile(userSvc),
		UpdateProfileHandler: UpdateProfile(userSvc),
		GetUserHandler:       GetUser(userSvc),

		CreateJobHandler:     CreateJob(jobSvc),
		ListJobsHandler:      ListJobs(jobSvc),
		OpportunitiesHandler: Opportunities(jobSvc),
		GetJobHandler:        GetJob(jobSvc),
		MyJobsHandler:        MyJobs(jobSvc),
		DeleteJobHandler:     DeleteJob(jobSvc),
		DeliverJobHandler:    DeliverJob(jobSvc),

		SubmitProposalHandler: SubmitProposal(jobSvc),
		MyProposalsHandler:    MyProposals(jobSvc),
		JobProposalsHandler:   JobProposals(jobSvc),
		AcceptProposalHandler: AcceptProposal(jobSvc),

		CreateReviewHandler:  CreateReview(reviewSvc),
		JobReviewsHandler:    JobReviews(reviewSvc),
		UserReviewsHandler:   UserReviews(reviewSvc),
		CompletedJobsHandler: CompletedJobs(reviewSvc),

		UploadFileHandler: UploadFile(storageSvc),

		AdminListJobsHandler:     AdminListJobs(jobSvc),
		ApproveJobHandler:        ApproveJob(jobSvc),
		RejectJobHandler:         RejectJob(jobSvc),
		AdminListUsersHandler:    AdminListUsers(userSvc),
		SetUserActiveHandler:     SetUserActive(userSvc),
		AdminDeleteUserHandler:   AdminDeleteUser(userSvc),
		AdminDeleteReviewHandler: AdminDeleteReview(reviewSvc),
		OrphanSweepHandler:       OrphanSweep(maintSvc),
		RepairStatsHandler:       RepairStats(maintSvc),
	}
}
