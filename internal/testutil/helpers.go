package testutil

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/utils"
)

// JPEGBytes is a tiny payload the MIME sniffer recognises as image/jpeg.
var JPEGBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x01}, 128)...)

// PDFBytes is a tiny payload the MIME sniffer recognises as application/pdf.
var PDFBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func Ptr[T any](v T) *T {
	return &v
}

// IssueToken signs a token for user, issued at issuedAt with the usual lifetime.
func IssueToken(t *testing.T, user models.User, secret string, issuedAt time.Time) string {
	t.Helper()
	token, err := utils.GenerateTokenAt(&user, secret, 24*time.Hour, issuedAt)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// MultipartFile is one file part of a multipart form.
type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartBody encodes files as multipart/form-data and returns the body
// and its Content-Type header.
func MultipartBody(t *testing.T, files ...MultipartFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		header.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create multipart part: %v", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("Failed to write multipart part: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
