package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tillpoint/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler exposes menu image upload and URL retrieval.
type StorageHandler struct {
	Service storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: svc}
}

// UploadFileHandler accepts a multipart image and stores it in the menu folder.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	logger := getLogger(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		logger.Error("Failed to buffer upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process upload"})
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Service.UploadFile(c.Request.Context(), tmpPath, "menu")
	if err != nil {
		logger.Error("Failed to upload file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"publicId": publicID})
}

// GetDownloadURLHandler returns a delivery URL for a stored image.
func (h *StorageHandler) GetDownloadURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing publicId"})
		return
	}

	url, err := h.Service.GetDownloadURL(c.Request.Context(), publicID)
	if err != nil {
		getLogger(c).Error("Failed to build download URL", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build download URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteFileHandler removes a stored image (admin only).
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing publicId"})
		return
	}

	if err := h.Service.DeleteFile(c.Request.Context(), publicID); err != nil {
		getLogger(c).Error("Failed to delete file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
