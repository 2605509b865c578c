package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Documents table: one row per normalized article, keyed by content hash
CREATE TABLE IF NOT EXISTS documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    content_hash TEXT NOT NULL UNIQUE,
    content_type TEXT NOT NULL,          -- html, text, pdf
    title TEXT,
    language TEXT,
    word_count INTEGER DEFAULT 0,
    read_time INTEGER DEFAULT 0,
    page_count INTEGER DEFAULT 0,
    extraction_backend TEXT,
    fallback BOOLEAN DEFAULT 0,

    -- Full standardized document as JSON
    document_json TEXT NOT NULL,

    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_content_type ON documents(content_type);
CREATE INDEX IF NOT EXISTS idx_documents_fallback ON documents(fallback) WHERE fallback = 1;
`
