package pdfbackend

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PopplerBackend shells out to poppler's pdftotext, which handles layout and
// encodings the pure-Go reader does not. Available only when the binary is on
// PATH.
type PopplerBackend struct{}

func (PopplerBackend) Name() string { return "pdftotext" }

func (PopplerBackend) Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

func (PopplerBackend) Extract(ctx context.Context, data []byte) (*Extraction, error) {
	dir, err := os.MkdirTemp("", "pdfextract-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(src, data, 0644); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	// "-" sends the text to stdout; pages arrive separated by form feeds.
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", "-enc", "UTF-8", src, "-")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	ext := &Extraction{}
	for _, page := range strings.Split(strings.TrimRight(out.String(), "\f"), "\f") {
		ext.Pages = append(ext.Pages, strings.TrimSpace(page))
	}

	readPdfinfoMetadata(ctx, src, ext)
	return ext, nil
}

// readPdfinfoMetadata enriches the extraction from pdfinfo when that binary
// is also installed. Best effort only.
func readPdfinfoMetadata(ctx context.Context, src string, ext *Extraction) {
	if _, err := exec.LookPath("pdfinfo"); err != nil {
		return
	}

	cmd := exec.CommandContext(ctx, "pdfinfo", src)
	out, err := cmd.Output()
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Title":
			ext.Title = value
		case "Author":
			ext.Author = value
		case "CreationDate":
			ext.CreationDate = value
		}
	}
}
