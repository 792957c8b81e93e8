package documents

import (
	"cmp"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"
)

// FieldPrefix marks multipart fields that carry files: file, file0, file-1.
const FieldPrefix = "file"

// Limits bounds the files accepted from one request.
type Limits struct {
	MaxFiles    int
	MaxFileSize int64
}

// Rejection records a file that was not accepted for processing.
type Rejection struct {
	Name string
	Err  error
}

// Collect reads every file part whose field name starts with FieldPrefix.
// Fields are visited in natural order. Files beyond MaxFiles or larger than
// MaxFileSize are rejected individually rather than failing the request.
func Collect(form *multipart.Form, limits Limits) ([]File, []Rejection) {
	if form == nil {
		return nil, nil
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		if strings.HasPrefix(field, FieldPrefix) {
			fields = append(fields, field)
		}
	}
	slices.SortFunc(fields, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	var (
		files    []File
		rejected []Rejection
	)

	for _, field := range fields {
		for _, header := range form.File[field] {
			name := cleanName(header.Filename)

			if limits.MaxFiles > 0 && len(files) >= limits.MaxFiles {
				rejected = append(rejected, Rejection{Name: name, Err: ErrTooManyFiles})
				continue
			}
			if limits.MaxFileSize > 0 && header.Size > limits.MaxFileSize {
				rejected = append(rejected, Rejection{Name: name, Err: ErrFileTooLarge})
				continue
			}

			data, err := readPart(header)
			if err != nil {
				rejected = append(rejected, Rejection{Name: name, Err: err})
				continue
			}

			files = append(files, File{
				Name:        name,
				ContentType: detectContentType(header.Header.Get("Content-Type"), data),
				Field:       field,
				Data:        data,
			})
		}
	}

	return files, rejected
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return data, nil
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
