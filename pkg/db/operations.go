package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthrokinetix/content-adapters/models"
)

// DocumentRow is one stored normalization run.
type DocumentRow struct {
	DocID             int64
	ContentHash       string
	ContentType       string
	Title             string
	Language          string
	WordCount         int
	ReadTime          int
	PageCount         int
	ExtractionBackend string
	Fallback          bool
	CreatedAt         time.Time
}

// SaveDocument inserts or refreshes the stored document for a content hash
// and returns its row ID.
func (db *DB) SaveDocument(contentHash string, doc *models.Document) (int64, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO documents (
			content_hash, content_type, title, language, word_count,
			read_time, page_count, extraction_backend, fallback, document_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			content_type = excluded.content_type,
			title = excluded.title,
			language = excluded.language,
			word_count = excluded.word_count,
			read_time = excluded.read_time,
			page_count = excluded.page_count,
			extraction_backend = excluded.extraction_backend,
			fallback = excluded.fallback,
			document_json = excluded.document_json,
			updated_at = CURRENT_TIMESTAMP`,
		contentHash, doc.Metadata.ContentType, doc.Metadata.Title,
		doc.Metadata.Language, doc.Metadata.WordCount, doc.Metadata.ReadTime,
		doc.Metadata.PageCount, doc.Metadata.ExtractionBackend,
		doc.Metadata.Fallback, string(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to save document: %w", err)
	}

	var docID int64
	err = db.QueryRow(
		"SELECT doc_id FROM documents WHERE content_hash = ?", contentHash).Scan(&docID)
	if err != nil {
		return 0, fmt.Errorf("failed to read back document id: %w", err)
	}
	return docID, nil
}

// GetDocument loads the stored standardized document for a content hash.
// Returns (nil, nil) when the hash is unknown.
func (db *DB) GetDocument(contentHash string) (*models.Document, error) {
	var payload string
	err := db.QueryRow(
		"SELECT document_json FROM documents WHERE content_hash = ?", contentHash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns stored runs, newest first, optionally filtered by
// content type.
func (db *DB) ListDocuments(contentType string, limit int) ([]DocumentRow, error) {
	query := `
		SELECT doc_id, content_hash, content_type, COALESCE(title, ''),
		       COALESCE(language, ''), word_count, read_time, page_count,
		       COALESCE(extraction_backend, ''), fallback, created_at
		FROM documents`
	args := []interface{}{}
	if contentType != "" {
		query += " WHERE content_type = ?"
		args = append(args, contentType)
	}
	query += " ORDER BY doc_id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		if err := rows.Scan(&r.DocID, &r.ContentHash, &r.ContentType, &r.Title,
			&r.Language, &r.WordCount, &r.ReadTime, &r.PageCount,
			&r.ExtractionBackend, &r.Fallback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountByType returns how many stored documents each content type has.
func (db *DB) CountByType() (map[string]int, error) {
	rows, err := db.Query(
		"SELECT content_type, COUNT(*) FROM documents GROUP BY content_type")
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ct string
		var n int
		if err := rows.Scan(&ct, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[ct] = n
	}
	return counts, rows.Err()
}
