package models

// LegacyResult is the output shape of the pre-adapter HTML processor.
// Existing callers depend on these exact fields; do not change them.
type LegacyResult struct {
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Headings   []string `json:"headings"`
	Paragraphs []string `json:"paragraphs"`
	WordCount  int      `json:"word_count"`
}
