// Package normalize is the single entry point that turns raw article content
// into the standardized document shape. Recoverable adapter failures never
// escape: the facade degrades to the legacy HTML processor or to a minimal
// document, so downstream always receives well-formed input.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/arthrokinetix/content-adapters/models"
	"github.com/arthrokinetix/content-adapters/pkg/adapters"
	"github.com/arthrokinetix/content-adapters/pkg/legacy"
)

// ErrUnsupportedFormat reports a content type outside {html, text, pdf}. It
// indicates a caller programming error and is the one failure the facade
// does not swallow.
var ErrUnsupportedFormat = errors.New("unsupported content type")

// Facade dispatches content to the adapter named by the content-type hint.
// The hint is authoritative; the facade never sniffs.
type Facade struct {
	cfg    models.AdapterConfig
	logger *slog.Logger

	html adapters.Adapter
	text adapters.Adapter
	pdf  adapters.Adapter

	legacyHTML func(string) (*models.LegacyResult, error)
}

// New builds a facade over the production adapters. A nil logger falls back
// to slog.Default().
func New(cfg models.AdapterConfig, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{
		cfg:        cfg,
		logger:     logger,
		html:       adapters.NewHTMLAdapter(cfg),
		text:       adapters.NewTextAdapter(cfg),
		pdf:        adapters.NewPDFAdapter(cfg),
		legacyHTML: legacy.ProcessArticleWithManualAlgorithm,
	}
}

// Normalize converts content into a standardized document. For the three
// supported content types it is total over recoverable errors: adapter
// failures degrade to the legacy path (HTML) or a minimal document instead
// of surfacing.
func (f *Facade) Normalize(ctx context.Context, content interface{}, contentType string) (*models.Document, error) {
	var adapter adapters.Adapter
	switch contentType {
	case models.ContentTypeHTML:
		adapter = f.html
	case models.ContentTypeText:
		adapter = f.text
	case models.ContentTypePDF:
		adapter = f.pdf
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}

	doc, err := adapter.Extract(ctx, content)
	if err == nil && wellFormed(doc) {
		return doc, nil
	}
	if err == nil {
		err = errors.New("adapter returned malformed document")
	}
	f.logger.Warn("adapter failed, falling back",
		"content_type", contentType, "error", err)

	if contentType == models.ContentTypeHTML {
		if raw, rawErr := rawString(content); rawErr == nil {
			if lr, legacyErr := f.legacyHTML(raw); legacyErr == nil {
				return legacyDocument(lr, f.cfg.ReadingWPM), nil
			} else {
				f.logger.Warn("legacy processing failed, producing minimal document",
					"error", legacyErr)
			}
		}
	}

	return f.minimal(content, contentType), nil
}

// minimal builds the degraded document: empty structure, best-effort
// raw-to-text coercion, fallback flag set.
func (f *Facade) minimal(content interface{}, contentType string) *models.Document {
	doc := models.NewDocument(contentType)
	doc.Metadata.Fallback = true

	if raw, err := rawString(content); err == nil && utf8.ValidString(raw) {
		if contentType == models.ContentTypeHTML {
			doc.TextContent = stripTags(raw)
		} else {
			doc.TextContent = strings.TrimSpace(raw)
		}
	}
	doc.Finalize(f.cfg.ReadingWPM)
	return doc
}

// wellFormed checks the document contract: present structure slices and a
// non-null text content. Adapters uphold this; the check guards against
// regressions in injected ones.
func wellFormed(doc *models.Document) bool {
	if doc == nil {
		return false
	}
	s := doc.Structure
	return s.Headings != nil && s.Sections != nil && s.Paragraphs != nil && s.Lists != nil
}

// legacyDocument lifts a LegacyResult into the standardized shape so adapter
// callers still get the uniform contract when the legacy path handled the
// content.
func legacyDocument(lr *models.LegacyResult, wpm int) *models.Document {
	doc := models.NewDocument(models.ContentTypeHTML)
	doc.TextContent = lr.Text
	doc.Metadata.Title = lr.Title
	doc.Metadata.Fallback = true
	for i, h := range lr.Headings {
		doc.Structure.Headings = append(doc.Structure.Headings, models.Heading{
			Level:    1,
			Text:     h,
			Position: i,
		})
	}
	doc.Structure.Paragraphs = append(doc.Structure.Paragraphs, lr.Paragraphs...)
	doc.Finalize(wpm)
	return doc
}

func rawString(content interface{}) (string, error) {
	switch v := content.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported input type %T", content)
	}
}

// stripTags is the last-resort HTML-to-text coercion: collect text tokens,
// skipping script and style bodies.
func stripTags(raw string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skip++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

var (
	defaultFacadeOnce sync.Once
	defaultFacade     *Facade
)

// ProcessContentWithAdapters is the public entry point for the web server:
// content plus a content-type hint in, a plain nested mapping out. Only an
// unsupported content type returns an error.
func ProcessContentWithAdapters(content interface{}, contentType string) (map[string]interface{}, error) {
	defaultFacadeOnce.Do(func() {
		defaultFacade = New(models.DefaultAdapterConfig(), nil)
	})
	doc, err := defaultFacade.Normalize(context.Background(), content, contentType)
	if err != nil {
		return nil, err
	}
	return doc.ToMap(), nil
}
