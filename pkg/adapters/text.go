package adapters

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/arthrokinetix/content-adapters/models"
	"github.com/arthrokinetix/content-adapters/pkg/analytics"
	"github.com/arthrokinetix/content-adapters/pkg/detector"
)

var (
	bulletMarkerRe  = regexp.MustCompile(`^[-*•]\s+`)
	orderedMarkerRe = regexp.MustCompile(`^(?:\d+[.)]|[A-Za-z][.)])\s+`)
)

// TextAdapter converts plain text into the standardized document shape.
// Plain text has no invalid syntax, so extraction never fails on content: the
// worst case is a single paragraph with no headings or lists.
type TextAdapter struct {
	Config models.AdapterConfig
}

func NewTextAdapter(cfg models.AdapterConfig) *TextAdapter {
	return &TextAdapter{Config: cfg}
}

func (a *TextAdapter) ContentType() string { return models.ContentTypeText }

func (a *TextAdapter) Extract(ctx context.Context, content interface{}) (*models.Document, error) {
	raw, err := contentString(content)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	out := models.NewDocument(models.ContentTypeText)
	out.TextContent = strings.TrimSpace(text)

	a.segment(strings.Split(text, "\n"), out)

	words := models.CountWords(out.TextContent)
	sentences := analytics.CountSentences(out.TextContent)
	syllables := analytics.EstimateSyllables(out.TextContent)
	out.Metadata.SentenceCount = sentences
	out.Metadata.SyllableCount = syllables
	out.Metadata.FleschScore = analytics.FleschReadingEase(words, sentences, syllables)
	out.Metadata.TopKeywords = analytics.TopKeywords(
		analytics.WordFrequencies(out.TextContent), a.Config.TopKeywordCount)
	if a.Config.DetectLanguage {
		out.Metadata.Language = detector.DetectLanguage(out.TextContent)
	}
	out.Finalize(a.Config.ReadingWPM)

	return out, nil
}

// segment classifies lines into headings, list blocks, and paragraphs, and
// pairs each heading with the paragraph text that follows it.
func (a *TextAdapter) segment(lines []string, out *models.Document) {
	var (
		paragraph      []string
		list           *models.List
		currentHeading string
		sectionText    []string
	)

	flushParagraph := func() {
		if len(paragraph) > 0 {
			text := strings.Join(paragraph, " ")
			out.Structure.Paragraphs = append(out.Structure.Paragraphs, text)
			sectionText = append(sectionText, text)
			paragraph = nil
		}
	}
	flushList := func() {
		if list != nil && len(list.Items) > 0 {
			out.Structure.Lists = append(out.Structure.Lists, *list)
		}
		list = nil
	}
	flushSection := func() {
		if currentHeading != "" {
			out.Structure.Sections = append(out.Structure.Sections, models.Section{
				Heading: currentHeading,
				Text:    strings.Join(sectionText, "\n"),
			})
		}
		sectionText = nil
	}

	for i := range lines {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			flushParagraph()
			flushList()
			continue
		}

		if bulletMarkerRe.MatchString(line) {
			flushParagraph()
			if list == nil || list.Ordered {
				flushList()
				list = &models.List{}
			}
			list.Items = append(list.Items, bulletMarkerRe.ReplaceAllString(line, ""))
			continue
		}
		if orderedMarkerRe.MatchString(line) {
			flushParagraph()
			if list == nil || !list.Ordered {
				flushList()
				list = &models.List{Ordered: true}
			}
			list.Items = append(list.Items, orderedMarkerRe.ReplaceAllString(line, ""))
			continue
		}

		if level := a.headingLevel(lines, i); level > 0 {
			flushParagraph()
			flushList()
			flushSection()
			currentHeading = line
			out.Structure.Headings = append(out.Structure.Headings, models.Heading{
				Level:    level,
				Text:     line,
				Position: len(out.Structure.Headings),
			})
			continue
		}

		flushList()
		paragraph = append(paragraph, line)
	}

	flushParagraph()
	flushList()
	flushSection()
}

// headingLevel classifies lines[i], returning 0 for non-headings. Short
// ALL-CAPS lines are always level-1 headings. Other short lines come out
// level 2 when they sit between blank lines (or open the document), carry no
// terminal punctuation, and are followed by body text; terminal punctuation
// marks a short sentence, not a heading. A heading with no body anywhere
// after it is just a short paragraph.
func (a *TextAdapter) headingLevel(lines []string, i int) int {
	line := strings.TrimSpace(lines[i])

	maxWords := a.Config.HeadingMaxWords
	if maxWords <= 0 {
		maxWords = models.DefaultHeadingMaxWords
	}
	words := len(strings.Fields(line))
	if words == 0 || words > maxWords {
		return 0
	}

	hasBody := false
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			hasBody = true
			break
		}
	}
	if !hasBody {
		return 0
	}

	if isAllCaps(line) {
		return 1
	}

	followedByBlank := i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == ""
	if !followedByBlank || hasTerminalPunctuation(line) {
		return 0
	}
	precededByBlank := i == 0 || strings.TrimSpace(lines[i-1]) == ""
	if isTitleCase(line) || precededByBlank {
		return 2
	}
	return 0
}

// isTitleCase reports whether every word longer than three runes starts with
// an uppercase letter.
func isTitleCase(line string) bool {
	sawWord := false
	for _, word := range strings.Fields(line) {
		runes := []rune(word)
		if len(runes) <= 3 {
			continue
		}
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		sawWord = true
	}
	return sawWord
}

func hasTerminalPunctuation(line string) bool {
	return strings.ContainsAny(line[len(line)-1:], ".!?;:,")
}

// isAllCaps reports whether the line contains letters and none of them
// lowercase.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
