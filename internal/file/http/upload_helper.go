package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/file"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
)

// FileUploadConfig configures one upload surface, e.g. club photos.
type FileUploadConfig struct {
	FormFieldName string   // form field holding the file, "file" when empty
	MaxSizeBytes  int64    // 0 disables the size limit
	AllowedTypes  []string // allowed MIME types, empty allows all
	ResizeImage   bool     // downscale to the standard photo size, stored as JPEG
	AfterUpload   func(ctx context.Context, fileID string) error
}

// HandleFileUpload stores the uploaded file and runs the optional
// after-upload hook. A failing hook rolls the upload back.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	userID := auth.GetUserID(c)

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldName + " is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), fileHeader, file.UploadOptions{
		UserID:       userID,
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			_ = h.fileService.Delete(c.Request.Context(), f.ID)
			response.Error(c, err)
			return
		}
	}

	resp := FileUploadResponse{
		Message: "file uploaded successfully",
		FileID:  f.ID,
		URL:     file.FileURL(f.ID),
	}
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		resp.ThumbnailURL = &t
	}

	c.JSON(http.StatusOK, resp)
}
