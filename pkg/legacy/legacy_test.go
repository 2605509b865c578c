package legacy

import (
	"strings"
	"testing"
)

func TestProcessArticle_BasicExtraction(t *testing.T) {
	input := `<html><head><title>Rotator Cuff Repair</title></head><body>
<h1>Rotator Cuff Repair</h1>
<p>Arthroscopic repair has become the dominant technique.</p>
<p>Open repair is reserved for massive tears.</p>
</body></html>`

	result, err := ProcessArticleWithManualAlgorithm(input)
	if err != nil {
		t.Fatalf("ProcessArticleWithManualAlgorithm() error = %v", err)
	}

	if result.Title == "" {
		t.Error("Title is empty")
	}
	if len(result.Headings) == 0 {
		t.Error("Headings is empty")
	}
	if len(result.Paragraphs) < 2 {
		t.Errorf("len(Paragraphs) = %d, want >= 2", len(result.Paragraphs))
	}
	if !strings.Contains(result.Text, "Arthroscopic repair") {
		t.Errorf("Text = %q, missing paragraph content", result.Text)
	}
	if want := len(strings.Fields(result.Text)); result.WordCount != want {
		t.Errorf("WordCount = %d, want %d", result.WordCount, want)
	}
}

func TestProcessArticle_EmptyInput(t *testing.T) {
	result, err := ProcessArticleWithManualAlgorithm("")
	if err != nil {
		t.Fatalf("ProcessArticleWithManualAlgorithm() error = %v", err)
	}
	if result.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", result.WordCount)
	}
	if result.Headings == nil || result.Paragraphs == nil {
		t.Error("Headings and Paragraphs must be non-nil")
	}
}

func TestProcessArticle_StripsScripts(t *testing.T) {
	input := `<body><p>Visible sentence.</p><script>var hidden = "secret";</script></body>`

	result, err := ProcessArticleWithManualAlgorithm(input)
	if err != nil {
		t.Fatalf("ProcessArticleWithManualAlgorithm() error = %v", err)
	}
	if strings.Contains(result.Text, "secret") {
		t.Errorf("Text = %q, contains script content", result.Text)
	}
}
