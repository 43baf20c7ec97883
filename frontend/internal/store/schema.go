package store

// Schema contains the DDL for the credential table. CREATE TABLE IF NOT
// EXISTS keeps schema application idempotent across restarts.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    email           TEXT NOT NULL UNIQUE,
    full_name       TEXT NOT NULL,
    password_digest TEXT NOT NULL,
    created_at      INTEGER NOT NULL,
    updated_at      INTEGER NOT NULL
);
`
