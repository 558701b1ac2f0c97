package service

import (
	"context"
	"io"
	"strings"

	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/storage"
)

// ImageService wraps the upload store and turns stored filenames into the
// public URLs served under /uploads.
type ImageService struct {
	store  *storage.Store
	events events.Sink
}

func NewImageService(store *storage.Store, sink events.Sink) *ImageService {
	if sink == nil {
		sink = events.Discard
	}
	return &ImageService{store: store, events: sink}
}

// Upload stores one image. baseURL is the scheme and host the file will be
// served from, e.g. "http://localhost:5000".
func (s *ImageService) Upload(ctx context.Context, baseURL, originalName, contentType string, size int64, r io.Reader) (models.UploadedFile, error) {
	info, err := s.store.Save(originalName, contentType, size, r)
	if err != nil {
		return models.UploadedFile{}, err
	}

	s.events.Record(ctx, events.New(ctx, events.TypeUploaded, events.EntityImage, info.Filename, originalName))
	return toUploadedFile(baseURL, *info), nil
}

// Dir is the directory stored images are served from.
func (s *ImageService) Dir() string {
	return s.store.Dir()
}

func (s *ImageService) List(baseURL string) ([]models.UploadedFile, error) {
	files, err := s.store.List()
	if err != nil {
		return nil, err
	}

	result := make([]models.UploadedFile, 0, len(files))
	for _, f := range files {
		result = append(result, toUploadedFile(baseURL, f))
	}
	return result, nil
}

func (s *ImageService) Delete(ctx context.Context, filename string) error {
	if err := s.store.Delete(filename); err != nil {
		return err
	}
	s.events.Record(ctx, events.New(ctx, events.TypeImageDeleted, events.EntityImage, filename, ""))
	return nil
}

func toUploadedFile(baseURL string, f storage.FileInfo) models.UploadedFile {
	return models.UploadedFile{
		Filename: f.Filename,
		URL:      strings.TrimRight(baseURL, "/") + "/uploads/" + f.Filename,
		Size:     f.Size,
	}
}
