package handlers

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/services/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's own record.
func GetProfile(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := svc.GetUserByID(c.Request.Context(), currentUserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfile applies a whitelisted partial update to the caller's profile.
func UpdateProfile(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		updated, err := svc.UpdateProfile(c.Request.Context(), currentUserID(c), updates)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// GetUser returns a user's public record by ID.
func GetUser(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := svc.GetUserByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}
