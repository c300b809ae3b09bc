// Package vecstore keeps documents and their embeddings in a SQLite table
// and ranks them with the vecdex SQL functions. Embeddings are stored in the
// vecdex BLOB format; ranking is an exact scan ordered by vector_cosim or
// vector_dist, without an index.
package vecstore
