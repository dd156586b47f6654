package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"home-service-server/config"
	"home-service-server/middleware"
	"home-service-server/models"
)

// MediaHandler uploads request attachments to Cloudinary and hands back the
// hosted URL for inclusion in a service request.
type MediaHandler struct{}

// NewMediaHandler creates the media handler
func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Register registers the media upload route on a protected group
func (h *MediaHandler) Register(router *gin.RouterGroup) {
	router.POST("/media/upload", h.upload)
}

// validateMediaFile validates mimetype and size (<= 10MB)
func validateMediaFile(header *multipart.FileHeader) (models.MediaType, bool) {
	if header == nil || header.Size <= 0 || header.Size > 10*1024*1024 {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return models.MediaImage, true
	case ".mp4", ".mov", ".webm":
		return models.MediaVideo, true
	default:
		return "", false
	}
}

func (h *MediaHandler) upload(c *gin.Context) {
	user := middleware.CurrentUser(c)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No file provided",
			"message": "Attach the upload as form field 'file'",
		})
		return
	}

	mediaType, ok := validateMediaFile(header)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid file",
			"message": "Only images (jpg, png, webp) and videos (mp4, mov, webm) up to 10MB are accepted",
		})
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload unavailable",
			"message": "Media storage is not configured",
		})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload unavailable",
			"message": "Media storage initialization failed",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid file",
			"message": "Could not read uploaded file",
		})
		return
	}
	defer file.Close()

	overwrite := true
	unique := true
	resourceType := "image"
	if mediaType == models.MediaVideo {
		resourceType = "video"
	}

	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         "service-requests/" + user.ID,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   resourceType,
	})
	if err != nil {
		log.Printf("❌ Media upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Upload failed",
			"message": "Media storage rejected the upload",
		})
		return
	}

	log.Printf("📸 Media uploaded for user %s: %s", user.ID, result.SecureURL)

	c.JSON(http.StatusCreated, gin.H{
		"media": models.MediaAttachment{
			Type: mediaType,
			URL:  result.SecureURL,
		},
	})
}
