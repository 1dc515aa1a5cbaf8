package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formbuilder-server/config"
	"github.com/formforge/formbuilder-server/middleware"
	"github.com/formforge/formbuilder-server/models"
	"github.com/formforge/formbuilder-server/utils"
)

// PUT /api/me/photo — replace the profile photo.
func UpdateProfilePhoto(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file received"})
		return
	}

	if err := validateImage(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	fileID := fmt.Sprintf("%s_%d", u.ID, time.Now().UnixNano())
	publicURL, err := utils.UploadToSupabase(fileHeader, fileID, "avatars")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", u.ID).
		Update("user_photo", publicURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": publicURL, "message": "Photo updated"})
}

func validateImage(fileHeader *multipart.FileHeader) error {
	// 5MB cap for avatars
	if fileHeader.Size > 5<<20 {
		return fmt.Errorf("file exceeds the allowed size")
	}

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	// Only the first 512 bytes matter for content sniffing.
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		return err
	}

	contentType := http.DetectContentType(buffer)
	if !allowedTypes[contentType] {
		return fmt.Errorf("unsupported file type")
	}
	return nil
}
