package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/services"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
)

// UploadAttachment handles POST /api/v1/uploads - accepts a multipart file
// (project brief or mockup) and returns the storage key to reference from a
// quote request submission
func UploadAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A file must be provided in the 'file' form field",
			},
		})
		return
	}

	attachments := services.GetAttachmentService()
	if attachments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOADS_UNAVAILABLE",
				"message": "Attachment storage is not configured",
			},
		})
		return
	}

	attachmentKey, err := attachments.UploadAttachment(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		log.Printf("Failed to upload attachment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store the attachment",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"attachmentKey": attachmentKey,
		},
	})
}
