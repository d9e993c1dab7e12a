// Package upload exposes the product image upload endpoint.
package upload

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps uploads at 5 MB.
const maxImageSize = 5 << 20

// Storage saves an uploaded file and returns its public URL.
type Storage interface {
	SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type Handler struct {
	storage Storage
}

func NewHandler(storage Storage) *Handler {
	return &Handler{storage: storage}
}

// UploadImage handles POST /api/v1/upload. Field name "image", images only,
// 5 MB max.
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Image file is required"})
		return
	}

	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Image must be smaller than 5MB"})
		return
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Only image files are allowed"})
		return
	}

	url, err := h.storage.SaveImage(c.Request.Context(), file)
	if err != nil {
		log.Printf("❌ Error uploading image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
