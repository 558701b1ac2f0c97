// Package storage keeps uploaded images in a flat directory on disk.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	MaxFileSize = 10 * 1024 * 1024
	MaxFiles    = 5

	// sniffLen is how much of the upload is inspected to detect its real type.
	sniffLen = 3072
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrTooManyFiles    = errors.New("too many files")
	ErrNotFound        = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FileInfo describes a stored image.
type FileInfo struct {
	Filename string
	Size     int64
	ModTime  time.Time
}

type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save validates one upload and writes it under a fresh name.
// originalName only contributes its extension; contentType is the MIME type
// the client declared, which must agree with the sniffed content.
func (s *Store) Save(originalName, contentType string, size int64, r io.Reader) (*FileInfo, error) {
	if r == nil {
		return nil, ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] || !isImageMIME(contentType) {
		return nil, ErrInvalidFileType
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrNoFile
	}
	if !isImageMIME(mimetype.Detect(head).String()) {
		return nil, ErrInvalidFileType
	}

	name := s.newFilename(ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	written, err := io.Copy(dst, io.LimitReader(body, MaxFileSize+1))
	closeErr := dst.Close()

	switch {
	case err != nil:
		os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", name, err)
	case written > MaxFileSize:
		os.Remove(path)
		return nil, ErrFileTooLarge
	case closeErr != nil:
		os.Remove(path)
		return nil, fmt.Errorf("close %s: %w", name, closeErr)
	}

	return &FileInfo{Filename: name, Size: written, ModTime: s.now()}, nil
}

// List returns the stored images, newest first. Files with other
// extensions in the directory are ignored.
func (s *Store) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !allowedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		files = append(files, FileInfo{
			Filename: entry.Name(),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b FileInfo) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(b.Filename, a.Filename)
	})
	return files, nil
}

// Delete removes filename from the directory. Names containing path
// separators or dot segments are refused.
func (s *Store) Delete(filename string) error {
	if !validFilename(filename) {
		return ErrInvalidFilename
	}

	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *Store) newFilename(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("image-%d-%s%s", s.now().UnixMilli(), suffix, ext)
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

func isImageMIME(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
