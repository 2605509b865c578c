package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/arthrokinetix/content-adapters/models"
	"github.com/arthrokinetix/content-adapters/pkg/analytics"
	"github.com/arthrokinetix/content-adapters/pkg/detector"
)

// readabilityBaseURL anchors go-readability's link resolution; articles
// arrive as content, not URLs, so the base is synthetic.
const readabilityBaseURL = "https://arthrokinetix.local/article"

// HTMLAdapter parses HTML into the standardized document shape. Parsing is
// lenient: malformed markup gets best-effort close-tag inference from the
// underlying html5 parser rather than failing.
type HTMLAdapter struct {
	Config models.AdapterConfig
}

func NewHTMLAdapter(cfg models.AdapterConfig) *HTMLAdapter {
	return &HTMLAdapter{Config: cfg}
}

func (a *HTMLAdapter) ContentType() string { return models.ContentTypeHTML }

func (a *HTMLAdapter) Extract(ctx context.Context, content interface{}) (*models.Document, error) {
	raw, err := contentString(content)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: building html tree: %v", ErrParseFailure, err)
	}

	out := models.NewDocument(models.ContentTypeHTML)
	out.Metadata.HTMLSize = len(raw)
	out.Metadata.LinkCount = doc.Find("a[href]").Length()
	out.Metadata.Title = normalizeText(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		out.Metadata.Description = strings.TrimSpace(desc)
	}

	// Scripts and styles are invisible text; drop them before any walk.
	doc.Find("script,style,noscript").Remove()

	a.extractStructure(doc, out)
	a.extractFirstTable(doc, out)

	if body := doc.Find("body"); body.Length() > 0 && len(body.Nodes) > 0 {
		out.TextContent = visibleText(body.Nodes[0])
	}

	a.enrichFromReadability(raw, out)

	if out.Metadata.Title == "" && len(out.Structure.Headings) > 0 {
		out.Metadata.Title = out.Structure.Headings[0].Text
	}
	out.Metadata.TopKeywords = analytics.TopKeywords(
		analytics.WordFrequencies(out.TextContent), a.Config.TopKeywordCount)
	if a.Config.DetectLanguage {
		out.Metadata.Language = detector.DetectLanguage(out.TextContent)
	}
	out.Finalize(a.Config.ReadingWPM)

	return out, nil
}

// extractStructure walks content-bearing tags in document order, collecting
// headings (with positions), paragraphs, lists, and heading-to-next-heading
// sections.
func (a *HTMLAdapter) extractStructure(doc *goquery.Document, out *models.Document) {
	var (
		currentHeading string
		sectionText    []string
	)
	flushSection := func() {
		if currentHeading != "" {
			out.Structure.Sections = append(out.Structure.Sections, models.Section{
				Heading: currentHeading,
				Text:    strings.Join(sectionText, "\n"),
			})
		}
		sectionText = nil
	}

	doc.Find("h1,h2,h3,h4,h5,h6,p,ul,ol").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		switch tag {
		case "p":
			if text := normalizeText(s.Text()); text != "" {
				out.Structure.Paragraphs = append(out.Structure.Paragraphs, text)
				sectionText = append(sectionText, text)
			}
		case "ul", "ol":
			list := models.List{Ordered: tag == "ol"}
			s.ChildrenFiltered("li").Each(func(j int, li *goquery.Selection) {
				if item := normalizeText(li.Text()); item != "" {
					list.Items = append(list.Items, item)
				}
			})
			if len(list.Items) > 0 {
				out.Structure.Lists = append(out.Structure.Lists, list)
			}
		default:
			text := normalizeText(s.Text())
			if text == "" {
				return
			}
			flushSection()
			currentHeading = text
			level := int(tag[1] - '0')
			out.Structure.Headings = append(out.Structure.Headings, models.Heading{
				Level:    level,
				Text:     text,
				Position: len(out.Structure.Headings),
			})
		}
	})
	flushSection()
}

// extractFirstTable keeps the first table's rows as auxiliary structure.
func (a *HTMLAdapter) extractFirstTable(doc *goquery.Document, out *models.Document) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return
	}

	var headers []string
	table.Find("thead tr th").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, normalizeText(th.Text()))
	})
	if len(headers) == 0 {
		table.Find("tr").First().Find("th").Each(func(i int, cell *goquery.Selection) {
			headers = append(headers, normalizeText(cell.Text()))
		})
	}

	var rows [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			row = append(row, normalizeText(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if len(headers) > 0 || len(rows) > 0 {
		out.Structure.Tables = append(out.Structure.Tables, models.Table{
			Headers: headers,
			Rows:    rows,
		})
	}
}

// enrichFromReadability pulls byline/excerpt/site metadata out of the
// distilled article. Best effort: a readability failure costs only the
// enrichment.
func (a *HTMLAdapter) enrichFromReadability(raw string, out *models.Document) {
	baseURL, err := url.Parse(readabilityBaseURL)
	if err != nil {
		return
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(raw), baseURL)
	if err != nil {
		return
	}

	if out.Metadata.Title == "" {
		out.Metadata.Title = normalizeText(article.Title)
	}
	out.Metadata.Author = strings.TrimSpace(article.Byline)
	out.Metadata.Excerpt = strings.TrimSpace(article.Excerpt)
	out.Metadata.SiteName = strings.TrimSpace(article.SiteName)
	if article.PublishedTime != nil {
		out.Metadata.PublishedTime = article.PublishedTime.Format("2006-01-02")
	}
	if out.Metadata.Description == "" {
		out.Metadata.Description = out.Metadata.Excerpt
	}
}

// visibleText collects the text of a node tree with block-level separation,
// so adjacent blocks never run together into one token.
func visibleText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode {
			switch strings.ToLower(cur.Data) {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "td", "th",
				"div", "section", "article", "blockquote", "pre", "br", "hr":
				b.WriteString("\n")
			}
		}
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if cur.Type == html.ElementNode {
			switch strings.ToLower(cur.Data) {
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "td", "th",
				"div", "section", "article", "blockquote", "pre":
				b.WriteString("\n")
			}
		}
	}
	walk(n)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
