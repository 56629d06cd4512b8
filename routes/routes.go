package routes

import (
	"net/http"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/handlers"
	"github.com/FeyzullahTeklik/esantiyem-backend/middleware"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up CORS, global middleware and every endpoint group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAuthRoutes(r, hb)
	registerUserRoutes(r, hb)
	registerJobRoutes(r, hb)
	registerProposalRoutes(r, hb)
	registerReviewRoutes(r, hb)
	registerUploadRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

func registerAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.POST("/reset-password", hb.ResetPasswordHandler)

		api.POST("/logout", middleware.JWTAuthMiddleware(hb.UserRepo, false), hb.LogoutHandler)
	}
}

func registerUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.GET("/:id", hb.GetUserHandler)
		api.GET("/:id/reviews", hb.UserReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false))
		protected.GET("/me/profile", hb.GetProfileHandler)
		protected.PATCH("/me/profile", hb.UpdateProfileHandler)
		protected.GET("/me/completed-jobs", hb.CompletedJobsHandler)
	}
}

func registerJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	{
		// Creation allows guests; an attached token claims ownership.
		api.POST("", middleware.JWTAuthMiddleware(hb.UserRepo, true), hb.CreateJobHandler)
		api.GET("", hb.ListJobsHandler)
		api.GET("/:id", hb.GetJobHandler)
		api.GET("/:id/reviews", hb.JobReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false))
		protected.GET("/mine", hb.MyJobsHandler)
		protected.GET("/opportunities", middleware.RequireRole(models.RoleProvider), hb.OpportunitiesHandler)
		protected.DELETE("/:id", hb.DeleteJobHandler)
		protected.POST("/:id/deliver", hb.DeliverJobHandler)
		protected.POST("/:id/proposals", hb.SubmitProposalHandler)
		protected.GET("/:id/proposals", hb.JobProposalsHandler)
		protected.POST("/:id/proposals/:proposalId/accept", hb.AcceptProposalHandler)
	}
}

func registerProposalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/proposals")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false))
	{
		api.GET("/mine", hb.MyProposalsHandler)
	}
}

func registerReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false))
	{
		api.POST("", hb.CreateReviewHandler)
	}
}

func registerUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/upload")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false))
	{
		api.POST("", hb.UploadFileHandler)
	}
}

func registerAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo, false), middleware.AdminOnly())
	{
		api.GET("/jobs", hb.AdminListJobsHandler)
		api.POST("/jobs/:id/approve", hb.ApproveJobHandler)
		api.POST("/jobs/:id/reject", hb.RejectJobHandler)

		api.GET("/users", hb.AdminListUsersHandler)
		api.PATCH("/users/:id/active", hb.SetUserActiveHandler)
		api.DELETE("/users/:id", hb.AdminDeleteUserHandler)

		api.DELETE("/reviews/:id", hb.AdminDeleteReviewHandler)

		api.POST("/maintenance/orphan-sweep", hb.OrphanSweepHandler)
		api.POST("/maintenance/repair-stats", hb.RepairStatsHandler)
	}
}
