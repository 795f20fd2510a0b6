package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memRepo struct {
	files   map[string]*File
	failput bool
}

func (r *memRepo) Create(_ context.Context, f *File) error {
	if r.failput {
		return errors.New("insert failed")
	}
	if r.files == nil {
		r.files = map[string]*File{}
	}
	r.files[f.ID] = f
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.files, id)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func (s *memStorage) Save(_ context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[path] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

func formFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewService(&memRepo{}, &memStorage{})

	header := formFile(t, "big.png", "image/png", bytes.Repeat([]byte{0}, 64))
	_, err := svc.Upload(context.Background(), header, UploadOptions{MaxSizeBytes: 32})
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc := NewService(&memRepo{}, &memStorage{})

	header := formFile(t, "notes.txt", "text/plain", []byte("hello"))
	_, err := svc.Upload(context.Background(), header, UploadOptions{
		AllowedTypes: []string{"image/jpeg", "image/png"},
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadResizesImageAndStoresThumbnail(t *testing.T) {
	repo := &memRepo{}
	store := &memStorage{}
	svc := NewService(repo, store)

	header := formFile(t, "photo.png", "image/png", pngBytes(t, 20, 10))
	f, err := svc.Upload(context.Background(), header, UploadOptions{
		UserID:       "user-1",
		AllowedTypes: []string{"image/png"},
		ResizeImage:  true,
	})
	require.NoError(t, err)

	require.Equal(t, "image/jpeg", f.ContentType)
	require.True(t, strings.HasSuffix(f.StoragePath, ".jpg"))
	require.Equal(t, "user-1", f.UserID)
	require.NotNil(t, f.ThumbnailPath)
	require.Contains(t, store.objects, f.StoragePath)
	require.Contains(t, store.objects, *f.ThumbnailPath)
	require.Contains(t, repo.files, f.ID)

	stream, info, err := svc.DownloadThumbnail(context.Background(), f.ID)
	require.NoError(t, err)
	defer stream.Close()
	require.Equal(t, f.ID, info.ID)
}

func TestUploadResizeRejectsNonImagePayload(t *testing.T) {
	svc := NewService(&memRepo{}, &memStorage{})

	header := formFile(t, "fake.png", "image/png", []byte("not an image"))
	_, err := svc.Upload(context.Background(), header, UploadOptions{ResizeImage: true})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadRollsBackStorageOnRepoFailure(t *testing.T) {
	store := &memStorage{}
	svc := NewService(&memRepo{failput: true}, store)

	header := formFile(t, "photo.png", "image/png", pngBytes(t, 4, 4))
	_, err := svc.Upload(context.Background(), header, UploadOptions{ResizeImage: true})
	require.Error(t, err)
	require.Empty(t, store.objects)
}

func TestDownloadThumbnailMissing(t *testing.T) {
	repo := &memRepo{files: map[string]*File{
		"f1": {ID: "f1", StoragePath: "upload/f1/f1.txt"},
	}}
	svc := NewService(repo, &memStorage{})

	_, _, err := svc.DownloadThumbnail(context.Background(), "f1")
	require.ErrorIs(t, err, ErrNoThumbnail)
}
