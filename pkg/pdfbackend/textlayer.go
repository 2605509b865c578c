package pdfbackend

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayerBackend reads the embedded text layer with the pure-Go
// ledongthuc/pdf reader. Scanned (image-only) PDFs produce empty pages; OCR
// is out of scope. It is compiled in, so it is always available.
type TextLayerBackend struct{}

func (TextLayerBackend) Name() string { return "textlayer" }

func (TextLayerBackend) Available() bool { return true }

func (TextLayerBackend) Extract(ctx context.Context, data []byte) (ext *Extraction, err error) {
	// The reader panics on some malformed files; contain that as an error so
	// the chain can move on.
	defer func() {
		if r := recover(); r != nil {
			ext = nil
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	ext = &Extraction{}
	fonts := make(map[string]*pdf.Font)
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			ext.Pages = append(ext.Pages, "")
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, pageErr)
		}
		ext.Pages = append(ext.Pages, strings.TrimSpace(text))
	}

	readInfoMetadata(reader, ext)
	return ext, nil
}

// readInfoMetadata copies title/author/creation date from the document info
// dictionary when present. Absent fields stay empty.
func readInfoMetadata(reader *pdf.Reader, ext *Extraction) {
	defer func() {
		// Malformed trailers are not worth failing an otherwise good
		// extraction.
		_ = recover()
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}
	ext.Title = strings.TrimSpace(info.Key("Title").Text())
	ext.Author = strings.TrimSpace(info.Key("Author").Text())
	ext.CreationDate = strings.TrimSpace(info.Key("CreationDate").Text())
}
