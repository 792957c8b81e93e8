// Package documents turns uploaded syllabus files into the single raster
// image a vision model reads. Images pass through unchanged; PDFs are
// validated and their first page is rendered.
package documents

import (
	"mime"
	"strings"
)

// File is an uploaded file held in memory for the duration of a request.
// Key is the blob storage key once the upload has been archived.
type File struct {
	Name        string
	ContentType string
	Field       string
	Key         string
	Data        []byte
}

// Size returns the file size in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Image is the canonical model input: base64 image data and its format.
// PageCount is set for images rendered from a PDF.
type Image struct {
	Data      string `json:"data"`
	Format    string `json:"format"`
	PageCount *int   `json:"page_count,omitempty"`
}

// MimeType returns the image MIME type derived from Format.
func (i Image) MimeType() string {
	if i.Format == "jpg" {
		return "image/jpeg"
	}
	return "image/" + i.Format
}

// DataURI returns the image as a base64 data URI.
func (i Image) DataURI() string {
	return "data:" + i.MimeType() + ";base64," + i.Data
}

// IsImage reports whether the content type is an image type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(mediaType(contentType), "image/")
}

// IsPDF reports whether the content type is application/pdf.
func IsPDF(contentType string) bool {
	return mediaType(contentType) == "application/pdf"
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
