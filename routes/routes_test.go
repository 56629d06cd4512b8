package routes

import (
	"testing"

	"github.com/FeyzullahTeklik/esantiyem-backend/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func stubBundle() *handlers.HandlerBundle {
	stub := func(c *gin.Context) {}
	return &handlers.HandlerBundle{
		RegisterHandler:       stub,
		LoginHandler:          stub,
		LogoutHandler:         stub,
		ForgotPasswordHandler: stub,
		ResetPasswordHandler:  stub,

		GetProfileHandler:    stub,
		UpdateProfileHandler: stub,
		GetUserHandler:       stub,

		CreateJobHandler:     stub,
		ListJobsHandler:      stub,
		OpportunitiesHandler: stub,
		GetJobHandler:        stub,
		MyJobsHandler:        stub,
		DeleteJobHandler:     stub,
		DeliverJobHandler:    stub,

		SubmitProposalHandler: stub,
		MyProposalsHandler:    stub,
		JobProposalsHandler:   stub,
		AcceptProposalHandler: stub,

		CreateReviewHandler:  stub,
		JobReviewsHandler:    stub,
		UserReviewsHandler:   stub,
		CompletedJobsHandler: stub,

		UploadFileHandler: stub,

		AdminListJobsHandler:     stub,
		ApproveJobHandler:        stub,
		RejectJobHandler:         stub,
		AdminListUsersHandler:    stub,
		SetUserActiveHandler:     stub,
		AdminDeleteUserHandler:   stub,
		AdminDeleteReviewHandler: stub,
		OrphanSweepHandler:       stub,
		RepairStatsHandler:       stub,
	}
}

func hasRoute(r *gin.Engine, method, path string) bool {
	for _, rt := range r.Routes() {
		if rt.Method == method && rt.Path == path {
			return true
		}
	}
	return false
}

func TestRegisterRoutesExposesEveryEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, stubBundle())

	want := []struct {
		method, path string
	}{
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"POST", "/api/jobs"},
		{"GET", "/api/jobs/opportunities"},
		{"POST", "/api/jobs/:id/proposals"},
		{"POST", "/api/jobs/:id/proposals/:proposalId/accept"},
		{"POST", "/api/jobs/:id/deliver"},
		{"POST", "/api/reviews"},
		{"GET", "/api/users/:id/reviews"},
		{"POST", "/api/admin/jobs/:id/approve"},
		{"DELETE", "/api/admin/users/:id"},
		{"DELETE", "/api/admin/reviews/:id"},
		{"POST", "/api/admin/maintenance/orphan-sweep"},
	}
	for _, w := range want {
		assert.True(t, hasRoute(r, w.method, w.path), "%s %s should be registered", w.method, w.path)
	}
}
