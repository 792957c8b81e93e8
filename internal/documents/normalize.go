package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Normalizer converts uploaded files into model-ready images.
type Normalizer struct {
	renderer Renderer
	logger   *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil renderer uses ImageMagick.
func NewNormalizer(renderer Renderer, logger *slog.Logger) *Normalizer {
	if renderer == nil {
		renderer = NewImageMagickRenderer()
	}
	return &Normalizer{
		renderer: renderer,
		logger:   logger.With("system", "documents"),
	}
}

// Normalize converts one file. Images are base64-encoded as is and PDFs
// have page 1 rendered. Any other content type returns ErrUnsupportedType.
func (n *Normalizer) Normalize(ctx context.Context, f File) (*Image, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidFile, f.Name)
	}

	switch {
	case IsImage(f.ContentType):
		return &Image{
			Data:   base64.StdEncoding.EncodeToString(f.Data),
			Format: imageFormat(f.ContentType),
		}, nil
	case IsPDF(f.ContentType):
		return n.normalizePDF(ctx, f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, f.ContentType)
	}
}

func (n *Normalizer) normalizePDF(ctx context.Context, f File) (*Image, error) {
	count, err := api.PageCount(bytes.NewReader(f.Data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, f.Name, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrRenderFailed, f.Name)
	}

	data, err := n.renderer.RenderFirstPage(ctx, f.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, f.Name, err)
	}

	n.logger.InfoContext(ctx, "pdf rendered",
		"file", f.Name,
		"page_count", count,
		"image_bytes", len(data),
	)

	return &Image{
		Data:      base64.StdEncoding.EncodeToString(data),
		Format:    RenderFormat,
		PageCount: &count,
	}, nil
}

func imageFormat(contentType string) string {
	_, sub, _ := strings.Cut(mediaType(contentType), "/")
	return sub
}
