package db

import (
	"path/filepath"
	"testing"

	"github.com/arthrokinetix/content-adapters/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return db
}

func sampleDocument(contentType string, words int) *models.Document {
	doc := models.NewDocument(contentType)
	doc.TextContent = "sample"
	doc.Metadata.Title = "Sample Article"
	doc.Metadata.WordCount = words
	doc.Metadata.ReadTime = 1
	return doc
}

func TestSaveDocument_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	doc := sampleDocument(models.ContentTypeHTML, 42)
	doc.Structure.Paragraphs = append(doc.Structure.Paragraphs, "one paragraph")

	docID, err := db.SaveDocument("hash-a", doc)
	if err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	if docID == 0 {
		t.Error("SaveDocument() returned 0 doc ID")
	}

	loaded, err := db.GetDocument("hash-a")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("GetDocument() = nil for stored hash")
	}
	if loaded.Metadata.WordCount != 42 {
		t.Errorf("loaded WordCount = %d, want 42", loaded.Metadata.WordCount)
	}
	if len(loaded.Structure.Paragraphs) != 1 || loaded.Structure.Paragraphs[0] != "one paragraph" {
		t.Errorf("loaded Paragraphs = %v", loaded.Structure.Paragraphs)
	}
}

func TestGetDocument_UnknownHash(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	loaded, err := db.GetDocument("never-stored")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if loaded != nil {
		t.Error("GetDocument() != nil for unknown hash")
	}
}

func TestSaveDocument_UpsertKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id1, err := db.SaveDocument("hash-b", sampleDocument(models.ContentTypeText, 10))
	if err != nil {
		t.Fatalf("SaveDocument() first call error = %v", err)
	}
	id2, err := db.SaveDocument("hash-b", sampleDocument(models.ContentTypeText, 99))
	if err != nil {
		t.Fatalf("SaveDocument() second call error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("doc IDs differ after upsert: %d vs %d", id1, id2)
	}

	loaded, err := db.GetDocument("hash-b")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if loaded.Metadata.WordCount != 99 {
		t.Errorf("loaded WordCount = %d, want refreshed value 99", loaded.Metadata.WordCount)
	}

	rows, err := db.ListDocuments("", 0)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want 1 after upsert", len(rows))
	}
}

func TestListDocuments_FilterByType(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.SaveDocument("h1", sampleDocument(models.ContentTypeHTML, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveDocument("h2", sampleDocument(models.ContentTypePDF, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveDocument("h3", sampleDocument(models.ContentTypePDF, 3)); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListDocuments(models.ContentTypePDF, 0)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2 pdf rows", len(rows))
	}
	for _, row := range rows {
		if row.ContentType != models.ContentTypePDF {
			t.Errorf("row content type = %q, want pdf", row.ContentType)
		}
	}

	counts, err := db.CountByType()
	if err != nil {
		t.Fatalf("CountByType() error = %v", err)
	}
	if counts[models.ContentTypeHTML] != 1 || counts[models.ContentTypePDF] != 2 {
		t.Errorf("CountByType() = %v", counts)
	}
}
