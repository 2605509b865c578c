package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/arthrokinetix/content-adapters/models"
	"github.com/arthrokinetix/content-adapters/pkg/pdfbackend"
)

// PDFAdapter extracts PDF text through the backend chain. PDF layout
// semantics do not survive text extraction, so structure is limited to one
// pseudo-section per page; that is a documented limitation, not a bug.
type PDFAdapter struct {
	Config models.AdapterConfig
	Chain  *pdfbackend.Chain
}

func NewPDFAdapter(cfg models.AdapterConfig) *PDFAdapter {
	return &PDFAdapter{
		Config: cfg,
		Chain:  pdfbackend.DefaultChain(cfg.PDFBackendTimeout),
	}
}

func (a *PDFAdapter) ContentType() string { return models.ContentTypePDF }

func (a *PDFAdapter) Extract(ctx context.Context, content interface{}) (*models.Document, error) {
	data, err := resolvePDFInput(content)
	if err != nil {
		return nil, err
	}

	ext, err := a.Chain.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	out := models.NewDocument(models.ContentTypePDF)
	var pages []string
	for i, page := range ext.Pages {
		out.Structure.Sections = append(out.Structure.Sections, models.Section{
			Heading: fmt.Sprintf("Page %d", i+1),
			Text:    page,
		})
		if page != "" {
			pages = append(pages, page)
		}
	}
	out.TextContent = strings.Join(pages, "\n\n")

	out.Metadata.PageCount = len(ext.Pages)
	out.Metadata.ExtractionBackend = ext.Backend
	out.Metadata.Title = ext.Title
	out.Metadata.Author = ext.Author
	out.Metadata.CreationDate = ext.CreationDate
	out.Finalize(a.Config.ReadingWPM)

	return out, nil
}

// resolvePDFInput coerces the three accepted input shapes into raw bytes.
// Strings are resolved in a fixed order to avoid ambiguity: filesystem path
// first, then base64, then the string's own bytes.
func resolvePDFInput(content interface{}) ([]byte, error) {
	switch v := content.(type) {
	case []byte:
		return v, nil
	case string:
		if data, err := os.ReadFile(v); err == nil {
			return data, nil
		}
		trimmed := strings.TrimSpace(v)
		if data, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
			return data, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: unsupported pdf input type %T", ErrParseFailure, content)
	}
}
