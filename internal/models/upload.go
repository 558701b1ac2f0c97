package models

// UploadedFile is an image stored by the upload store. Nothing ties it to
// the records that reference its URL.
type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size,omitempty"`
}
