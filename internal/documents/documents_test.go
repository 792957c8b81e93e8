package documents_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/syllascan/internal/documents"
)

type mockRenderer struct {
	calls    int
	renderFn func(ctx context.Context, data []byte) ([]byte, error)
}

func (m *mockRenderer) RenderFirstPage(ctx context.Context, data []byte) ([]byte, error) {
	m.calls++
	return m.renderFn(ctx, data)
}

func newNormalizer(r documents.Renderer) *documents.Normalizer {
	return documents.NewNormalizer(r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func readPDF(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/syllabus.pdf")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	return data
}

func TestNormalizeImage(t *testing.T) {
	r := &mockRenderer{}
	data := []byte{0x89, 'P', 'N', 'G'}

	img, err := newNormalizer(r).Normalize(context.Background(), documents.File{
		Name:        "week1.png",
		ContentType: "image/png",
		Data:        data,
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if img.Format != "png" {
		t.Errorf("Format = %q, want png", img.Format)
	}
	if img.Data != base64.StdEncoding.EncodeToString(data) {
		t.Error("image data should pass through unchanged")
	}
	if img.PageCount != nil {
		t.Error("PageCount should be nil for images")
	}
	if r.calls != 0 {
		t.Error("renderer should not be called for images")
	}
}

func TestNormalizePDF(t *testing.T) {
	r := &mockRenderer{
		renderFn: func(ctx context.Context, data []byte) ([]byte, error) {
			return []byte("rendered"), nil
		},
	}

	img, err := newNormalizer(r).Normalize(context.Background(), documents.File{
		Name:        "syllabus.pdf",
		ContentType: "application/pdf",
		Data:        readPDF(t),
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if img.Format != "jpg" {
		t.Errorf("Format = %q, want jpg", img.Format)
	}
	if !strings.HasPrefix(img.DataURI(), "data:image/jpeg;base64,") {
		t.Errorf("DataURI() = %q", img.DataURI()[:24])
	}
	if img.PageCount == nil || *img.PageCount != 1 {
		t.Errorf("PageCount = %v, want 1", img.PageCount)
	}
	if img.Data != base64.StdEncoding.EncodeToString([]byte("rendered")) {
		t.Error("unexpected rendered data")
	}
}

func TestImageMagickRendererConfig(t *testing.T) {
	cfg := documents.NewImageMagickRenderer().Config()

	if cfg.Format != "jpg" {
		t.Errorf("Format = %q, want jpg", cfg.Format)
	}
	if cfg.Quality != 95 {
		t.Errorf("Quality = %d, want 95", cfg.Quality)
	}
	if cfg.DPI != 108 {
		t.Errorf("DPI = %d, want 108", cfg.DPI)
	}
}

func TestNormalizeErrors(t *testing.T) {
	failing := &mockRenderer{
		renderFn: func(ctx context.Context, data []byte) ([]byte, error) {
			return nil, errors.New("no graphics context")
		},
	}

	tests := []struct {
		name     string
		file     documents.File
		renderer *mockRenderer
		want     error
	}{
		{
			name:     "corrupt pdf",
			file:     documents.File{Name: "broken.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 not really")},
			renderer: failing,
			want:     documents.ErrRenderFailed,
		},
		{
			name:     "renderer unavailable",
			file:     documents.File{Name: "syllabus.pdf", ContentType: "application/pdf", Data: readPDF(t)},
			renderer: failing,
			want:     documents.ErrRenderFailed,
		},
		{
			name:     "unsupported type",
			file:     documents.File{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")},
			renderer: failing,
			want:     documents.ErrUnsupportedType,
		},
		{
			name:     "empty file",
			file:     documents.File{Name: "empty.png", ContentType: "image/png"},
			renderer: failing,
			want:     documents.ErrInvalidFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newNormalizer(tt.renderer).Normalize(context.Background(), tt.file)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestImageDataURI(t *testing.T) {
	tests := []struct {
		img  documents.Image
		want string
	}{
		{documents.Image{Data: "AAA", Format: "png"}, "data:image/png;base64,AAA"},
		{documents.Image{Data: "BBB", Format: "jpg"}, "data:image/jpeg;base64,BBB"},
		{documents.Image{Data: "CCC", Format: "jpeg"}, "data:image/jpeg;base64,CCC"},
	}

	for _, tt := range tests {
		if got := tt.img.DataURI(); got != tt.want {
			t.Errorf("DataURI() = %q, want %q", got, tt.want)
		}
	}
}

func TestContentTypePredicates(t *testing.T) {
	if !documents.IsImage("image/jpeg") {
		t.Error("image/jpeg should be an image")
	}
	if !documents.IsPDF("application/pdf; charset=binary") {
		t.Error("parameters should be ignored")
	}
	if documents.IsImage("application/pdf") {
		t.Error("pdf is not an image")
	}
}

type part struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func parseForm(t *testing.T, parts ...part) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		pw.Write(p.data)
	}
	w.WriteField("note", "ignored")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm
}

func TestCollect(t *testing.T) {
	form := parseForm(t,
		part{field: "file10", filename: "c.png", contentType: "image/png", data: []byte("c")},
		part{field: "file", filename: "a.pdf", contentType: "application/octet-stream", data: []byte("%PDF-1.4\n")},
		part{field: "file2", filename: "b.png", contentType: "image/png", data: []byte("bb")},
		part{field: "attachment", filename: "skip.png", contentType: "image/png", data: []byte("x")},
	)

	files, rejected := documents.Collect(form, documents.Limits{MaxFiles: 10, MaxFileSize: 1 << 10})
	if len(rejected) != 0 {
		t.Fatalf("rejected = %v", rejected)
	}

	names := []string{"a.pdf", "b.png", "c.png"}
	if len(files) != len(names) {
		t.Fatalf("files = %d, want %d", len(files), len(names))
	}
	for i, want := range names {
		if files[i].Name != want {
			t.Errorf("files[%d].Name = %q, want %q", i, files[i].Name, want)
		}
	}
	if files[0].ContentType != "application/pdf" {
		t.Errorf("detected content type = %q, want application/pdf", files[0].ContentType)
	}
}

func TestCollectLimits(t *testing.T) {
	form := parseForm(t,
		part{field: "file0", filename: "a.png", contentType: "image/png", data: []byte("a")},
		part{field: "file1", filename: "big.png", contentType: "image/png", data: bytes.Repeat([]byte("x"), 64)},
		part{field: "file2", filename: "b.png", contentType: "image/png", data: []byte("b")},
		part{field: "file3", filename: "c.png", contentType: "image/png", data: []byte("c")},
	)

	files, rejected := documents.Collect(form, documents.Limits{MaxFiles: 2, MaxFileSize: 32})

	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if len(rejected) != 2 {
		t.Fatalf("rejected = %d, want 2", len(rejected))
	}
	if rejected[0].Name != "big.png" || !errors.Is(rejected[0].Err, documents.ErrFileTooLarge) {
		t.Errorf("rejected[0] = %+v", rejected[0])
	}
	if rejected[1].Name != "c.png" || !errors.Is(rejected[1].Err, documents.ErrTooManyFiles) {
		t.Errorf("rejected[1] = %+v", rejected[1])
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{documents.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{documents.ErrRenderFailed, http.StatusUnprocessableEntity},
		{documents.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{documents.ErrNoFiles, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := documents.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
