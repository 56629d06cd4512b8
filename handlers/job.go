package handlers

import (
	"net/http"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

type createJobRequest struct {
	Title         string                `json:"title" binding:"required"`
	Description   string                `json:"description" binding:"required"`
	CategoryID    string                `json:"categoryId" binding:"required"`
	SubcategoryID string                `json:"subcategoryId"`
	Guest         *models.GuestCustomer `json:"guestCustomer"`
	Location      models.Location       `json:"location"`
	Attachments   models.Attachments    `json:"attachments"`
	Budget        *models.Budget        `json:"budget"`
	Duration      models.JobDuration    `json:"duration"`
	KVKKConsent   bool                  `json:"kvkkConsent"`
}

// CreateJob posts a new job. Authenticated callers own the posting; anonymous
// callers must supply guest contact details and KVKK consent.
func CreateJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		in := job.CreateJobInput{
			Title:         req.Title,
			Description:   req.Description,
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
			Location:      req.Location,
			Attachments:   req.Attachments,
			Budget:        req.Budget,
			Duration:      req.Duration,
		}
		if userID := currentUserID(c); userID != "" {
			in.CustomerID = userID
		} else {
			in.Guest = req.Guest
		}
		if req.KVKKConsent {
			in.KVKKConsent = &models.KVKKConsent{
				Accepted:   true,
				AcceptedAt: time.Now(),
				IP:         c.ClientIP(),
			}
		}

		created, err := svc.CreateJob(c.Request.Context(), in)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListJobs returns the public listing of approved jobs.
func ListJobs(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		jobs, total, err := svc.ListJobs(c.Request.Context(), job.ListJobsQuery{
			CategoryID: c.Query("categoryId"),
			City:       c.Query("city"),
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": total, "page": page, "limit": limit})
	}
}

// Opportunities returns approved jobs the calling provider can still bid on.
func Opportunities(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		jobs, total, err := svc.Opportunities(c.Request.Context(), currentUserID(c), job.ListJobsQuery{
			CategoryID: c.Query("categoryId"),
			City:       c.Query("city"),
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": total, "page": page, "limit": limit})
	}
}

// GetJob returns a single job and counts the view.
func GetJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svc.GetJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// MyJobs returns the caller's postings in every status.
func MyJobs(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		jobs, total, err := svc.MyJobs(c.Request.Context(), currentUserID(c), page, limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": total, "page": page, "limit": limit})
	}
}

// DeleteJob removes a posting and everything hanging off it.
func DeleteJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.DeleteJob(c.Request.Context(), c.Param("id"), currentUserID(c), isAdmin(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
	}
}

// DeliverJob lets the accepted provider mark the job completed.
func DeliverJob(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		delivered, err := svc.DeliverJob(c.Request.Context(), c.Param("id"), currentUserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, delivered)
	}
}
