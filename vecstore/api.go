package vecstore

import "context"

// Document is a row of the docs table.
type Document struct {
	// ID is the caller-assigned identifier of the document.
	ID string

	// Content holds the main text/body of the document.
	Content string

	// Metadata is an opaque payload, typically JSON.
	Metadata string

	// Embedding is the vector representation of the document content.
	Embedding []float32
}

// Match is a document ranked against a query embedding.
type Match struct {
	Document
	Score float64
}

// Metric selects how documents are ranked.
type Metric int

const (
	// Cosine ranks by vector_cosim, most similar first.
	Cosine Metric = iota
	// Euclidean ranks by vector_dist, closest first.
	Euclidean
)

func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case Euclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// Store is the document store API.
type Store interface {
	// AddDocuments inserts or replaces documents and returns their IDs.
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// Get returns the document with the given ID.
	Get(ctx context.Context, id string) (*Document, error)

	// SimilaritySearch returns up to k documents whose embedding has the
	// query's dimension, ranked by metric. Documents the metric cannot score
	// (for example zero-magnitude embeddings under Cosine) are skipped.
	SimilaritySearch(ctx context.Context, query []float32, k int, metric Metric) ([]Match, error)

	// Remove deletes the document with the given ID.
	Remove(ctx context.Context, id string) error
}
