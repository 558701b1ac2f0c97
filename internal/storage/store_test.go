package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal magic headers recognised by the content sniffer.
var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 64)...)
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x00}, 64)...)
	pdfBytes  = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func TestSave_JPEG(t *testing.T) {
	s := newTestStore(t)

	info, err := s.Save("photo.JPG", "image/jpeg", int64(len(jpegBytes)), bytes.NewReader(jpegBytes))

	require.NoError(t, err)
	assert.Regexp(t, `^image-\d+-[0-9a-f]{8}\.jpg$`, info.Filename)
	assert.Equal(t, int64(len(jpegBytes)), info.Size)

	stored, err := os.ReadFile(filepath.Join(s.Dir(), info.Filename))
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, stored)

	files, err := s.List()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, info.Filename, files[0].Filename)
}

func TestSave_NamesAreUnique(t *testing.T) {
	s := newTestStore(t)
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		info, err := s.Save("a.png", "image/png", 0, bytes.NewReader(pngBytes))
		require.NoError(t, err)
		assert.False(t, seen[info.Filename])
		seen[info.Filename] = true
	}
}

func TestSave_RejectsDisallowedTypes(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		body        []byte
	}{
		{"pdf mime and extension", "doc.pdf", "application/pdf", pdfBytes},
		{"pdf mime with image extension", "doc.jpg", "application/pdf", jpegBytes},
		{"image mime with bad extension", "photo.bmp", "image/bmp", jpegBytes},
		{"content is not an image", "fake.png", "image/png", pdfBytes},
		{"no extension", "photo", "image/jpeg", jpegBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Save(tt.filename, tt.contentType, int64(len(tt.body)), bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidFileType)
		})
	}

	files, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, files, "rejected uploads leave nothing behind")
}

func TestSave_TooLarge(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("big.jpg", "image/jpeg", MaxFileSize+1, bytes.NewReader(jpegBytes))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// Declared size lies; the stream is still capped
	body := io.MultiReader(bytes.NewReader(jpegBytes), io.LimitReader(zeroReader{}, MaxFileSize))
	_, err = s.Save("big.jpg", "image/jpeg", 100, body)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	files, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSave_Empty(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("empty.jpg", "image/jpeg", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = s.Save("empty.jpg", "image/jpeg", 0, nil)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestList_FiltersAndSorts(t *testing.T) {
	s := newTestStore(t)

	older := filepath.Join(s.Dir(), "image-1-aaaaaaaa.png")
	newer := filepath.Join(s.Dir(), "image-2-bbbbbbbb.webp")
	require.NoError(t, os.WriteFile(older, pngBytes, 0o644))
	require.NoError(t, os.WriteFile(newer, pngBytes, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "nested.png"), 0o755))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	files, err := s.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "image-2-bbbbbbbb.webp", files[0].Filename)
	assert.Equal(t, "image-1-aaaaaaaa.png", files[1].Filename)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	info, err := s.Save("a.png", "image/png", 0, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	path := filepath.Join(s.Dir(), info.Filename)
	require.FileExists(t, path)

	require.NoError(t, s.Delete(info.Filename))
	assert.NoFileExists(t, path)

	assert.ErrorIs(t, s.Delete(info.Filename), ErrNotFound)
}

func TestDelete_RejectsPaths(t *testing.T) {
	s := newTestStore(t)
	outside := filepath.Join(filepath.Dir(s.Dir()), "secret.png")
	require.NoError(t, os.WriteFile(outside, pngBytes, 0o644))

	for _, name := range []string{"", ".", "..", "../secret.png", "a/b.png", `a\b.png`} {
		assert.ErrorIs(t, s.Delete(name), ErrInvalidFilename, name)
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err, "file outside the upload dir must survive")
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
