package vecstore

import (
	"context"
	"database/sql"
)

const docsSchema = `
CREATE TABLE IF NOT EXISTS docs (
    id TEXT PRIMARY KEY,
    content TEXT,
    meta TEXT,
    embedding BLOB CHECK (embedding IS NULL OR vector_dim(embedding) IS NOT NULL)
);
`

// EnsureSchema creates the docs table if it does not already exist. The
// embedding column only accepts well-formed vectors, so the vector functions
// must be registered before the connection is opened.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, docsSchema)
	return err
}
