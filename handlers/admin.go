package handlers

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/maintenance"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/review"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminListJobs returns postings for the moderation queue. The status query
// parameter defaults to pending.
func AdminListJobs(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		status := models.JobStatus(c.DefaultQuery("status", string(models.JobStatusPending)))

		jobs, total, err := svc.AdminListJobs(c.Request.Context(), status, page, limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": total, "page": page, "limit": limit})
	}
}

// ApproveJob publishes a pending posting.
func ApproveJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		approved, err := svc.ApproveJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, approved)
	}
}

type rejectJobRequest struct {
	Reason string `json:"reason"`
}

// RejectJob takes a posting out of circulation.
func RejectJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rejectJobRequest
		_ = c.ShouldBindJSON(&req)

		rejected, err := svc.RejectJob(c.Request.Context(), c.Param("id"), req.Reason)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rejected)
	}
}

// AdminListUsers pages through every account.
func AdminListUsers(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		users, total, err := svc.ListUsers(c.Request.Context(), page, limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page, "limit": limit})
	}
}

type setUserActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserActive enables or disables an account.
func SetUserActive(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setUserActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		updated, err := svc.SetUserActive(c.Request.Context(), c.Param("id"), *req.Active)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// AdminDeleteUser removes an account; its records become orphans for the
// sweep.
func AdminDeleteUser(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// AdminDeleteReview removes a review and refreshes both parties' ratings.
func AdminDeleteReview(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}

// OrphanSweep runs the consistency sweep on demand and returns its report.
func OrphanSweep(svc maintenance.MaintenanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.SweepOrphans(c.Request.Context())
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// RepairStats rebuilds every user's derived stats blocks.
func RepairStats(svc maintenance.MaintenanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		repaired, err := svc.RepairUserStats(c.Request.Context())
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"repaired": repaired})
	}
}
