// Package legacy preserves the pre-adapter HTML-only processor. Its output
// shape is frozen: callers that predate the adapter layer must keep receiving
// identical results, so change nothing here without checking them first.
package legacy

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/arthrokinetix/content-adapters/models"
)

const legacyBaseURL = "https://arthrokinetix.local/article"

// ProcessArticleWithManualAlgorithm runs the original readability-then-query
// pipeline over an HTML article.
func ProcessArticleWithManualAlgorithm(htmlContent string) (*models.LegacyResult, error) {
	content := htmlContent
	title := ""

	if baseURL, err := url.Parse(legacyBaseURL); err == nil {
		parser := readability.NewParser()
		if article, err := parser.Parse(strings.NewReader(htmlContent), baseURL); err == nil {
			if strings.TrimSpace(article.Content) != "" {
				content = article.Content
			}
			title = strings.TrimSpace(article.Title)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	doc.Find("script,style,noscript").Remove()

	result := &models.LegacyResult{
		Title:      title,
		Headings:   []string{},
		Paragraphs: []string{},
	}

	var blocks []string
	doc.Find("h1,h2,h3,h4,h5,h6,p").Each(func(i int, s *goquery.Selection) {
		text := collapse(s.Text())
		if text == "" {
			return
		}
		blocks = append(blocks, text)
		if goquery.NodeName(s) == "p" {
			result.Paragraphs = append(result.Paragraphs, text)
		} else {
			result.Headings = append(result.Headings, text)
		}
	})

	result.Text = strings.Join(blocks, "\n")
	result.WordCount = len(strings.Fields(result.Text))
	if result.Title == "" && len(result.Headings) > 0 {
		result.Title = result.Headings[0]
	}

	return result, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
