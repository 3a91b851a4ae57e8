package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"
)

var errNoPages = errors.New("document has no pages")

// pageDocument is the subset of *fitz.Document used for extraction.
type pageDocument interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	ImagePNG(pageNumber int, dpi float64) ([]byte, error)
	Close() error
}

func openFitz(data []byte) (pageDocument, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// extractPDF reads every page, preferring the embedded text layer and
// falling back to rasterize-and-OCR for pages without one. Pages run
// concurrently and are joined in page order.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	doc, err := e.openPDF(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages == 0 {
		return "", errNoPages
	}

	pages := make([]string, numPages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.PageWorkers)
	for i := 0; i < numPages; i++ {
		i := i
		g.Go(func() error {
			text, err := e.pageText(gctx, doc, i)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			pages[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	e.logger.Debug("PDF pages extracted", "pages", numPages)
	return strings.Join(pages, "\n"), nil
}

func (e *Extractor) pageText(ctx context.Context, doc pageDocument, idx int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := doc.Text(idx)
	if err != nil {
		e.logger.Warn("PDF text layer unavailable; using OCR", "page", idx+1, "error", err)
	} else if strings.TrimSpace(text) != "" {
		return text, nil
	}

	img, err := doc.ImagePNG(idx, float64(e.cfg.DPI))
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	e.logger.Debug("OCR on rendered PDF page", "page", idx+1, "dpi", e.cfg.DPI)
	return e.ocrImage(ctx, img)
}
