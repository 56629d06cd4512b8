package handlers

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/services/review"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	JobID   string `json:"jobId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview records the caller's rating for the counterparty of a
// completed job.
func CreateReview(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		created, err := svc.CreateReview(c.Request.Context(), review.CreateReviewInput{
			JobID:      req.JobID,
			ReviewerID: currentUserID(c),
			Rating:     req.Rating,
			Comment:    req.Comment,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// JobReviews lists the reviews written on a job.
func JobReviews(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.JobReviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// UserReviews lists the reviews written about a user.
func UserReviews(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		reviews, total, err := svc.UserReviews(c.Request.Context(), c.Param("id"), page, limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": total, "page": page, "limit": limit})
	}
}

// CompletedJobs lists the caller's completed jobs with review eligibility.
func CompletedJobs(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobs, err := svc.CompletedJobs(c.Request.Context(), currentUserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}
