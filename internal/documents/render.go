package documents

import (
	"context"
	"fmt"
	"os"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"
)

// RenderDPI is 1.5x the 72 DPI PDF user space.
const RenderDPI = 108

// RenderFormat is the image format produced for rendered PDF pages.
const RenderFormat = "jpg"

// RenderQuality is the JPEG quality of rendered PDF pages.
const RenderQuality = 95

// Renderer rasterizes the first page of a PDF.
type Renderer interface {
	RenderFirstPage(ctx context.Context, data []byte) ([]byte, error)
}

// ImageMagickRenderer renders PDF pages through ImageMagick.
type ImageMagickRenderer struct {
	config config.ImageConfig
}

// NewImageMagickRenderer creates a renderer producing white-background
// JPEG images at RenderDPI and RenderQuality.
func NewImageMagickRenderer() *ImageMagickRenderer {
	return &ImageMagickRenderer{
		config: config.ImageConfig{
			Format:  RenderFormat,
			DPI:     RenderDPI,
			Quality: RenderQuality,
			Options: map[string]any{
				"background": "white",
			},
		},
	}
}

// Config returns the image settings passed to ImageMagick.
func (r *ImageMagickRenderer) Config() config.ImageConfig {
	return r.config
}

// RenderFirstPage writes data to a temp file, opens it and renders page 1.
// A missing ImageMagick installation surfaces as a renderer construction error.
func (r *ImageMagickRenderer) RenderFirstPage(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "syllascan-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	pdfDoc, err := document.OpenPDF(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer pdfDoc.Close()

	page, err := pdfDoc.ExtractPage(1)
	if err != nil {
		return nil, fmt.Errorf("extract page 1: %w", err)
	}

	renderer, err := image.NewImageMagickRenderer(r.config)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	img, err := page.ToImage(renderer, nil)
	if err != nil {
		return nil, fmt.Errorf("render page 1: %w", err)
	}

	return img, nil
}
