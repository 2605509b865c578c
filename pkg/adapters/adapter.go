// Package adapters converts raw HTML, plain-text, and PDF content into the
// standardized document shape consumed by the emotional-analysis pipeline.
// Each adapter is a pure function of its input: no shared state, no caching,
// safe for concurrent calls.
package adapters

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arthrokinetix/content-adapters/models"
)

// ErrParseFailure reports input the adapter could not build any structure
// from. The facade recovers from it; it never reaches end callers.
var ErrParseFailure = errors.New("content parse failure")

// Adapter converts one content format into a standardized document.
// Implementations accept string or []byte content; the PDF adapter also
// accepts base64 strings and filesystem paths.
type Adapter interface {
	ContentType() string
	Extract(ctx context.Context, content interface{}) (*models.Document, error)
}

// contentString coerces string or []byte input; anything else is a caller
// error surfaced as a parse failure.
func contentString(content interface{}) (string, error) {
	switch v := content.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: unsupported input type %T", ErrParseFailure, content)
	}
}

// normalizeText cleans up a string by trimming space and collapsing internal
// line breaks into single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
