package handlers

import (
	"net/http"

	"github.com/FeyzullahTeklik/esantiyem-backend/services/storage"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds attachment uploads at 10 MB.
const maxUploadSize = 10 << 20

// UploadFile stores a multipart attachment and returns its public ID and
// delivery URL.
func UploadFile(svc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
			return
		}
		if header.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		defer file.Close()

		folder := c.DefaultPostForm("folder", "jobs")
		result, err := svc.UploadFile(c.Request.Context(), file, folder)
		if err != nil {
			utils.RespondError(c, utils.DependencyError("file upload failed"))
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
