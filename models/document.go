// Package models defines the standardized document shape that every adapter
// produces, plus the tunable configuration for the adapter heuristics.
package models

import (
	"encoding/json"
	"strings"
)

// Content type values carried in Metadata.ContentType. The value always
// matches the adapter that produced the document.
const (
	ContentTypeHTML = "html"
	ContentTypeText = "text"
	ContentTypePDF  = "pdf"
)

// Heading is a document heading with its order of appearance.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Section pairs a heading with the body text that follows it, up to the next
// heading.
type Section struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// List is an ordered or unordered group of item texts.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// Table holds tabular rows extracted as auxiliary structure.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// Structure groups the ordered structural elements of a document. All four
// required slices are non-nil after NewDocument, so consumers never need to
// check for missing keys.
type Structure struct {
	Headings   []Heading `json:"headings"`
	Sections   []Section `json:"sections"`
	Paragraphs []string  `json:"paragraphs"`
	Lists      []List    `json:"lists"`
	Tables     []Table   `json:"tables,omitempty"`
}

// Metadata carries recognized document metadata. Format-specific fields are
// omitted from the serialized form when unset, never fabricated.
type Metadata struct {
	WordCount   int    `json:"word_count"`
	ContentType string `json:"content_type"`
	ReadTime    int    `json:"read_time"`

	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	TopKeywords []string `json:"top_keywords,omitempty"`

	// HTML
	HTMLSize      int    `json:"html_size,omitempty"`
	LinkCount     int    `json:"link_count,omitempty"`
	Author        string `json:"author,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`

	// Plain text
	SentenceCount int     `json:"sentence_count,omitempty"`
	SyllableCount int     `json:"syllable_count,omitempty"`
	FleschScore   float64 `json:"flesch_score,omitempty"`

	// PDF
	PageCount         int    `json:"page_count,omitempty"`
	CreationDate      string `json:"creation_date,omitempty"`
	ExtractionBackend string `json:"extraction_backend,omitempty"`

	// Fallback marks a minimal document produced after an adapter failure.
	Fallback bool `json:"fallback,omitempty"`
}

// Document is the single output contract of every adapter. It is constructed
// fresh per call and never mutated after the adapter returns it.
type Document struct {
	TextContent string    `json:"text_content"`
	Structure   Structure `json:"structure"`
	Metadata    Metadata  `json:"metadata"`
}

// NewDocument returns a document with every required structure slice
// initialized, so the zero shape is already valid for consumers.
func NewDocument(contentType string) *Document {
	return &Document{
		Structure: Structure{
			Headings:   []Heading{},
			Sections:   []Section{},
			Paragraphs: []string{},
			Lists:      []List{},
		},
		Metadata: Metadata{ContentType: contentType},
	}
}

// Finalize recomputes word count and read time from TextContent. Counts are
// never trusted from the input.
func (d *Document) Finalize(wpm int) {
	d.Metadata.WordCount = CountWords(d.TextContent)
	d.Metadata.ReadTime = ReadTimeMinutes(d.Metadata.WordCount, wpm)
}

// ToMap flattens the document into a plain nested mapping so downstream
// consumers can treat it as data rather than a specialized object.
func (d *Document) ToMap() map[string]interface{} {
	data, err := json.Marshal(d)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

// CountWords counts whitespace-delimited tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ReadTimeMinutes converts a word count to reading minutes, rounded up with a
// floor of one minute.
func ReadTimeMinutes(words, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultReadingWPM
	}
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
