// Package process implements the CLI verbs. The facade stays a library
// contract; everything here is a caller of it.
package process

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/arthrokinetix/content-adapters/models"
	"github.com/arthrokinetix/content-adapters/pkg/caching"
	"github.com/arthrokinetix/content-adapters/pkg/db"
	"github.com/arthrokinetix/content-adapters/pkg/detector"
	"github.com/arthrokinetix/content-adapters/pkg/normalize"
	"github.com/arthrokinetix/content-adapters/pkg/pdfbackend"
)

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// adapterInput picks the input shape the facade expects: PDFs stay bytes,
// everything else is a string.
func adapterInput(contentType string, data []byte) interface{} {
	if contentType == models.ContentTypePDF {
		return data
	}
	return string(data)
}

// ProcessAction normalizes a single file and prints the standardized
// document as JSON.
func ProcessAction(c *cli.Context) error {
	logger := newLogger(c)

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("no input file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	contentType := c.String("type")
	if contentType == "" {
		contentType = detector.DetectFormat(path, data)
		logger.Info("Detected content type", "path", path, "content_type", contentType)
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	cfg.DetectLanguage = cfg.DetectLanguage || c.Bool("language")

	facade := normalize.New(cfg, logger)
	doc, err := facade.Normalize(c.Context, adapterInput(contentType, data), contentType)
	if err != nil {
		return err
	}

	if dbPath := c.String("db"); dbPath != "" {
		store, err := db.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveDocument(caching.Key(data), doc); err != nil {
			logger.Error("Failed to store document", "error", err)
		}
	}

	out, err := json.MarshalIndent(doc.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// Job defines a task for a batch worker to perform.
type Job struct {
	Path string
}

// Result holds the outcome of a processed job.
type Result struct {
	Path        string
	ContentHash string
	Doc         *models.Document
	Err         error
	ErrorType   string
	CacheHit    bool
}

// BatchAction normalizes many files with a fixed worker pool, writing one
// JSON document per input into the output directory.
func BatchAction(c *cli.Context) error {
	logger := newLogger(c)

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no input files given")
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	cfg.DetectLanguage = cfg.DetectLanguage || c.Bool("language")

	outputDir := c.String("output-dir")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	var cache *caching.Cache
	if cacheDir := c.String("cache-dir"); cacheDir != "" {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return fmt.Errorf("invalid max-age duration: %w", err)
		}
		cache, err = caching.NewCache(cacheDir, maxAge)
		if err != nil {
			return err
		}
	}

	var store *db.DB
	if dbPath := c.String("db"); dbPath != "" {
		store, err = db.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	facade := normalize.New(cfg, logger)

	workerCount := c.Int("workers")
	if workerCount <= 0 {
		workerCount = 4
	}

	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))
	var wg sync.WaitGroup

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(c, facade, cache, logger, id, job)
			}
		}(w)
	}

	for _, path := range paths {
		jobs <- Job{Path: path}
	}
	close(jobs)
	wg.Wait()
	close(results)

	processed, failed, cacheHits := 0, 0, 0
	for result := range results {
		if result.Err != nil {
			failed++
			logger.Error("Failed to process file",
				"path", result.Path, "error_type", result.ErrorType, "error", result.Err)
			continue
		}
		processed++
		if result.CacheHit {
			cacheHits++
		}

		payload, err := json.MarshalIndent(result.Doc.ToMap(), "", "  ")
		if err != nil {
			failed++
			processed--
			logger.Error("Failed to marshal document", "path", result.Path, "error", err)
			continue
		}
		outPath := filepath.Join(outputDir, result.ContentHash+".json")
		if err := os.WriteFile(outPath, payload, 0644); err != nil {
			failed++
			processed--
			logger.Error("Failed to write output", "path", outPath, "error", err)
			continue
		}
		if cache != nil && !result.CacheHit {
			if err := cache.Set(result.ContentHash, payload); err != nil {
				logger.Error("Failed to update cache", "path", result.Path, "error", err)
			}
		}
		if store != nil {
			if _, err := store.SaveDocument(result.ContentHash, result.Doc); err != nil {
				logger.Error("Failed to store document", "path", result.Path, "error", err)
			}
		}
	}

	logger.Info("Batch complete",
		"processed", processed, "failed", failed, "cache_hits", cacheHits)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func runJob(c *cli.Context, facade *normalize.Facade, cache *caching.Cache, logger *slog.Logger, workerID int, job Job) Result {
	result := Result{Path: job.Path}

	data, err := os.ReadFile(job.Path)
	if err != nil {
		result.Err = err
		result.ErrorType = "read_error"
		return result
	}
	result.ContentHash = caching.Key(data)

	if cache != nil {
		if payload, ok := cache.Get(result.ContentHash); ok {
			var doc models.Document
			if err := json.Unmarshal(payload, &doc); err == nil {
				logger.Info("Cache hit", "worker", workerID, "path", job.Path)
				result.Doc = &doc
				result.CacheHit = true
				return result
			}
		}
	}

	contentType := c.String("type")
	if contentType == "" {
		contentType = detector.DetectFormat(job.Path, data)
	}

	logger.Info("Processing file",
		"worker", workerID, "path", job.Path, "content_type", contentType)
	doc, err := facade.Normalize(c.Context, adapterInput(contentType, data), contentType)
	if err != nil {
		result.Err = err
		result.ErrorType = "normalize_error"
		return result
	}

	result.Doc = doc
	return result
}

// BackendsAction reports PDF backend availability in chain order.
func BackendsAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	chain := pdfbackend.DefaultChain(cfg.PDFBackendTimeout)
	for _, backend := range chain.Backends() {
		status := "unavailable"
		if backend.Available() {
			status = "available"
		}
		fmt.Printf("%-12s %s\n", backend.Name(), status)
	}
	return nil
}

// ListAction prints stored normalization runs from the document store.
func ListAction(c *cli.Context) error {
	store, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.ListDocuments(c.String("type"), c.Int("limit"))
	if err != nil {
		return err
	}
	for _, row := range rows {
		line := fmt.Sprintf("%s  %-4s  words=%d  read_time=%dm",
			row.ContentHash[:12], row.ContentType, row.WordCount, row.ReadTime)
		if row.Title != "" {
			line += "  " + strings.TrimSpace(row.Title)
		}
		fmt.Println(line)
	}
	return nil
}
