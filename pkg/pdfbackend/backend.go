// Package pdfbackend implements the ordered PDF text-extraction chain. The
// chain is static: backends are tried most-accurate first, unavailable ones
// are skipped without counting as failures, and the first success wins.
package pdfbackend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoBackendAvailable reports that every installed backend failed, or that
// no backend is installed at all.
var ErrNoBackendAvailable = errors.New("no pdf extraction backend available")

// Extraction is one backend's successful output.
type Extraction struct {
	// Pages holds the plain text of each page in order. A page with no text
	// layer yields an empty string, keeping page numbering intact.
	Pages []string

	// Embedded PDF metadata, empty when the source omits it.
	Title        string
	Author       string
	CreationDate string

	// Backend is the name of the backend that produced this extraction.
	Backend string
}

// Backend is one concrete PDF text extractor.
type Backend interface {
	Name() string

	// Available reports whether the backend can run in this process. An
	// unavailable backend is skipped, not attempted.
	Available() bool

	Extract(ctx context.Context, data []byte) (*Extraction, error)
}

// Chain tries backends in priority order with a per-backend timeout.
type Chain struct {
	backends []Backend
	timeout  time.Duration
}

// NewChain builds a chain over the given backends in priority order.
func NewChain(timeout time.Duration, backends ...Backend) *Chain {
	return &Chain{backends: backends, timeout: timeout}
}

// DefaultChain returns the statically configured production chain: poppler's
// pdftotext when installed (layout-accurate), then the pure-Go text-layer
// reader as the always-available fallback.
func DefaultChain(timeout time.Duration) *Chain {
	return NewChain(timeout, &PopplerBackend{}, &TextLayerBackend{})
}

// Backends exposes the configured backends, primarily for availability
// reporting.
func (c *Chain) Backends() []Backend {
	return c.backends
}

// Extract runs the chain. Backend errors are contained per-backend; only
// exhaustion of the chain surfaces, wrapped in ErrNoBackendAvailable.
func (c *Chain) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	var attempts []error
	for _, b := range c.backends {
		if !b.Available() {
			continue
		}

		bctx := ctx
		cancel := func() {}
		if c.timeout > 0 {
			bctx, cancel = context.WithTimeout(ctx, c.timeout)
		}
		ext, err := b.Extract(bctx, data)
		cancel()

		if err != nil {
			attempts = append(attempts, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		ext.Backend = b.Name()
		return ext, nil
	}

	if len(attempts) == 0 {
		return nil, ErrNoBackendAvailable
	}
	return nil, fmt.Errorf("%w: %v", ErrNoBackendAvailable, errors.Join(attempts...))
}
