package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paging reads the page and limit query parameters with sane defaults.
func paging(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// currentUserID returns the authenticated user's ID, empty for anonymous
// requests on optionally-authenticated routes.
func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// isAdmin reports whether the authenticated user has the admin role.
func isAdmin(c *gin.Context) bool {
	return c.GetString("userRole") == "admin"
}
