package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/courtable/club-booking-backend/internal/pkg/storage"
)

// Bounding boxes applied to image uploads.
const (
	imageMaxDim  = 1000
	thumbnailDim = 200
)

// UploadOptions controls validation and processing of one upload.
type UploadOptions struct {
	UserID       string
	MaxSizeBytes int64    // 0 disables the size check
	AllowedTypes []string // empty allows any content type
	ResizeImage  bool     // downscale to imageMaxDim and store as JPEG
}

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, opts UploadOptions) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, opts UploadOptions) (*File, error) {
	if opts.MaxSizeBytes > 0 && header.Size > opts.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if len(opts.AllowedTypes) > 0 && !slices.Contains(opts.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Uploads are images of bounded size, buffering keeps the resize and
	// thumbnail passes simple.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if opts.ResizeImage {
		normalized, err := s.imgProc.Normalize(bytes.NewReader(fileBytes), imageMaxDim, imageMaxDim)
		if err != nil {
			return nil, ErrUnsupportedType
		}
		if fileBytes, err = io.ReadAll(normalized); err != nil {
			return nil, fmt.Errorf("failed to read normalized image: %w", err)
		}
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	fileID := uuid.New().String()

	// Shard by the ID prefix: upload/ab/<uuid>.<ext>
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		// A failed thumbnail never fails the upload.
		if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), thumbnailDim, thumbnailDim); err == nil {
			tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
				thumbnailPath = &tPath
			}
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        opts.UserID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(fileBytes)),
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Storage cleanup is best effort, the record is authoritative.
	_ = s.storage.Delete(ctx, f.StoragePath)
	if f.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *f.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}

	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, f, nil
}
