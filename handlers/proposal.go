package handlers

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

type submitProposalRequest struct {
	Description string                  `json:"description" binding:"required"`
	Price       float64                 `json:"price" binding:"required"`
	Duration    models.ProposalDuration `json:"duration" binding:"required"`
	Notes       string                  `json:"notes"`
}

// SubmitProposal records the caller's bid on a job.
func SubmitProposal(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitProposalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		created, err := svc.SubmitProposal(c.Request.Context(), job.SubmitProposalInput{
			JobID:       c.Param("id"),
			ProviderID:  currentUserID(c),
			Description: req.Description,
			Price:       req.Price,
			Duration:    req.Duration,
			Notes:       req.Notes,
		})
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// MyProposals returns the caller's proposals across all jobs.
func MyProposals(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paging(c)
		proposals, total, err := svc.MyProposals(c.Request.Context(), currentUserID(c), page, limit)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"proposals": proposals, "total": total, "page": page, "limit": limit})
	}
}

// JobProposals returns every proposal on the caller's job.
func JobProposals(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		proposals, err := svc.JobProposals(c.Request.Context(), c.Param("id"), currentUserID(c), isAdmin(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"proposals": proposals})
	}
}

// AcceptProposal accepts one proposal and rejects its pending siblings.
func AcceptProposal(svc job.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accepted, err := svc.AcceptProposal(c.Request.Context(),
			c.Param("id"), c.Param("proposalId"), currentUserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, accepted)
	}
}
