package file

import (
	"net/http"
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "file not found")
	ErrTooLarge        = apperror.New(http.StatusBadRequest, "file too large")
	ErrUnsupportedType = apperror.New(http.StatusBadRequest, "unsupported file type")
	ErrNoThumbnail     = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// File is one stored upload, typically a club photo.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileURL returns the public URL serving the file content.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL serving the file's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
