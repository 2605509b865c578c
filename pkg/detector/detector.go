// Package detector sniffs a content-type hint for callers that do not know
// one, and detects document language. The normalization facade itself never
// sniffs; the hint it receives stays authoritative.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/arthrokinetix/content-adapters/models"
)

var pdfMagic = []byte("%PDF-")

// DetectFormat guesses the content type of a file from its name and leading
// bytes. The extension wins when recognized; otherwise magic bytes decide,
// and anything that is not PDF or markup is treated as plain text.
func DetectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return models.ContentTypeHTML
	case ".pdf":
		return models.ContentTypePDF
	case ".txt", ".text", ".md":
		return models.ContentTypeText
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return models.ContentTypePDF
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return models.ContentTypeHTML
	}
	return models.ContentTypeText
}

// The lingua detector loads language models on first build, so it is created
// once and treated as read-only afterwards.
var (
	languageOnce     sync.Once
	languageDetector lingua.LanguageDetector
)

// DetectLanguage returns the ISO 639-1 code of the dominant language in text,
// or an empty string when detection is inconclusive.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	languageOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Italian,
				lingua.Portuguese,
			).
			Build()
	})
	lang, ok := languageDetector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
