package vecstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/vecdex/pkg/log"
	"github.com/viant/vecdex/vector"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("vecstore: document not found")

// SQLiteStore implements Store on a SQLite database with the vecdex
// functions registered.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a Store on db. It verifies that the vector
// functions are visible on db and ensures the docs schema exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vecstore: db is nil")
	}
	var dim int
	if err := db.QueryRowContext(ctx, `SELECT vector_dim(vector0(1))`).Scan(&dim); err != nil {
		return nil, fmt.Errorf("vecstore: vector functions unavailable, register them before opening db: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("vecstore: failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// AddDocuments inserts or replaces documents in one transaction.
func (s *SQLiteStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO docs(id, content, meta, embedding) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("vecstore: Document.ID must be set")
		}
		var emb any
		if d.Embedding != nil {
			emb = vector.Encode(d.Embedding)
		}
		if _, err := stmt.ExecContext(ctx, d.ID, d.Content, d.Metadata, emb); err != nil {
			return nil, fmt.Errorf("vecstore: failed to insert %s: %w", d.ID, err)
		}
		ids = append(ids, d.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.FromCtx(ctx).Debug().Int("count", len(ids)).Msg("added documents")
	return ids, nil
}

// Get loads a single document.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Document, error) {
	var d Document
	var emb []byte
	var absent bool
	err := s.db.QueryRowContext(ctx, `SELECT id, content, meta, embedding, embedding IS NULL FROM docs WHERE id = ?`, id).
		Scan(&d.ID, &d.Content, &d.Metadata, &emb, &absent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if d.Embedding, err = decodeEmbedding(emb, absent); err != nil {
		return nil, err
	}
	return &d, nil
}

const (
	cosineQuery = `SELECT id, content, meta, embedding, embedding IS NULL, score FROM (
    SELECT id, content, meta, embedding, vector_cosim(embedding, ?1) AS score FROM docs
)
WHERE score IS NOT NULL
ORDER BY score DESC, id
LIMIT ?2`

	euclideanQuery = `SELECT id, content, meta, embedding, embedding IS NULL, score FROM (
    SELECT id, content, meta, embedding, vector_dist(embedding, ?1) AS score FROM docs
)
WHERE score IS NOT NULL
ORDER BY score ASC, id
LIMIT ?2`
)

// SimilaritySearch ranks every stored embedding against query.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, query []float32, k int, metric Metric) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	var q string
	switch metric {
	case Cosine:
		q = cosineQuery
	case Euclidean:
		q = euclideanQuery
	default:
		return nil, fmt.Errorf("vecstore: unsupported metric %v", metric)
	}

	rows, err := s.db.QueryContext(ctx, q, vector.Encode(query), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		var emb []byte
		var absent bool
		if err := rows.Scan(&m.ID, &m.Content, &m.Metadata, &emb, &absent, &m.Score); err != nil {
			return nil, err
		}
		if m.Embedding, err = decodeEmbedding(emb, absent); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.FromCtx(ctx).Debug().Stringer("metric", metric).Int("k", k).Int("matches", len(out)).Msg("similarity search")
	return out, nil
}

// Remove deletes a document by ID.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("vecstore: Remove called with empty id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// decodeEmbedding returns nil for a NULL column and a non-nil slice for any
// stored vector, including the zero-dimension one, which the driver may scan
// as a nil []byte.
func decodeEmbedding(b []byte, absent bool) ([]float32, error) {
	if absent {
		return nil, nil
	}
	v, ok := vector.Decode(b)
	if !ok {
		return nil, fmt.Errorf("vecstore: invalid embedding blob length %d", len(b))
	}
	return v.Floats(), nil
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
