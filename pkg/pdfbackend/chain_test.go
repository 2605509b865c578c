package pdfbackend

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeBackend struct {
	name      string
	available bool
	pages     []string
	err       error
	block     bool // wait for ctx cancellation instead of returning

	attempted bool
}

func (f *fakeBackend) Name() string    { return f.name }
func (f *fakeBackend) Available() bool { return f.available }
func (f *fakeBackend) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	f.attempted = true
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &Extraction{Pages: f.pages}, nil
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &fakeBackend{name: "first", available: true, pages: []string{"from first"}}
	second := &fakeBackend{name: "second", available: true, pages: []string{"from second"}}
	chain := NewChain(0, first, second)

	ext, err := chain.Extract(context.Background(), []byte("data"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Backend != "first" {
		t.Errorf("Backend = %q, want first", ext.Backend)
	}
	if ext.Pages[0] != "from first" {
		t.Errorf("Pages[0] = %q, want from first", ext.Pages[0])
	}
	if second.attempted {
		t.Error("second backend attempted after first succeeded")
	}
}

func TestChain_UnavailableBackendIsSkippedNotAttempted(t *testing.T) {
	first := &fakeBackend{name: "first", available: false, pages: []string{"never"}}
	second := &fakeBackend{name: "second", available: true, pages: []string{"from second"}}
	chain := NewChain(0, first, second)

	ext, err := chain.Extract(context.Background(), []byte("data"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Backend != "second" {
		t.Errorf("Backend = %q, want second", ext.Backend)
	}
	if first.attempted {
		t.Error("unavailable backend was attempted")
	}
}

func TestChain_FailureFallsThrough(t *testing.T) {
	first := &fakeBackend{name: "first", available: true, err: errors.New("corrupt xref")}
	second := &fakeBackend{name: "second", available: true, pages: []string{"recovered"}}
	chain := NewChain(0, first, second)

	ext, err := chain.Extract(context.Background(), []byte("data"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Backend != "second" {
		t.Errorf("Backend = %q, want second after first failed", ext.Backend)
	}
}

func TestChain_ExhaustionReturnsNoBackendAvailable(t *testing.T) {
	chain := NewChain(0,
		&fakeBackend{name: "a", available: true, err: errors.New("bad header")},
		&fakeBackend{name: "b", available: true, err: errors.New("bad trailer")},
	)

	_, err := chain.Extract(context.Background(), []byte("data"))
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Fatalf("Extract() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestChain_NoBackendsInstalled(t *testing.T) {
	chain := NewChain(0, &fakeBackend{name: "a", available: false})

	_, err := chain.Extract(context.Background(), []byte("data"))
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Fatalf("Extract() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestChain_PerBackendTimeout(t *testing.T) {
	stalled := &fakeBackend{name: "stalled", available: true, block: true}
	healthy := &fakeBackend{name: "healthy", available: true, pages: []string{"ok"}}
	chain := NewChain(10*time.Millisecond, stalled, healthy)

	ext, err := chain.Extract(context.Background(), []byte("data"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if ext.Backend != "healthy" {
		t.Errorf("Backend = %q, want healthy after stalled backend timed out", ext.Backend)
	}
}

func TestDefaultChain_Order(t *testing.T) {
	chain := DefaultChain(time.Second)
	backends := chain.Backends()
	if len(backends) != 2 {
		t.Fatalf("len(Backends()) = %d, want 2", len(backends))
	}
	if backends[0].Name() != "pdftotext" {
		t.Errorf("Backends()[0] = %q, want pdftotext first", backends[0].Name())
	}
	if backends[1].Name() != "textlayer" {
		t.Errorf("Backends()[1] = %q, want textlayer fallback", backends[1].Name())
	}
	if !backends[1].Available() {
		t.Error("textlayer backend must always be available")
	}
}

func TestTextLayerBackend_GarbageInputFailsCleanly(t *testing.T) {
	backend := &TextLayerBackend{}
	_, err := backend.Extract(context.Background(), []byte("this is not a pdf"))
	if err == nil {
		t.Fatal("Extract() on garbage input succeeded, want error")
	}
}
