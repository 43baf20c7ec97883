package sqlengine

// Schema contains the complete DDL for the content engine tables.
const Schema = `
-- Pages: one row per live page, pointing at its head revision
CREATE TABLE IF NOT EXISTS pages (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL UNIQUE,
    format      TEXT NOT NULL DEFAULT 'markdown',
    head        TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL
);

-- Revisions: immutable history, content-addressed 40-hex ids
CREATE TABLE IF NOT EXISTS revisions (
    id           TEXT PRIMARY KEY,
    page_id      INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
    content      TEXT NOT NULL,
    format       TEXT NOT NULL,
    author_name  TEXT NOT NULL DEFAULT '',
    author_email TEXT NOT NULL DEFAULT '',
    message      TEXT NOT NULL DEFAULT '',
    created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_revisions_page ON revisions(page_id, created_at DESC);

-- Files: non-page binary content served verbatim
CREATE TABLE IF NOT EXISTS files (
    name        TEXT PRIMARY KEY,
    data        BLOB NOT NULL,
    mime        TEXT NOT NULL,
    updated_at  INTEGER NOT NULL
);
`
