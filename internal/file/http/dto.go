package http

// FileUploadResponse is returned by every upload surface built on
// HandleFileUpload.
type FileUploadResponse struct {
	Message      string  `json:"message"`
	FileID       string  `json:"file_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}
