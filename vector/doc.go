// Package vector implements the vecdex vector value: a headerless BLOB of
// little-endian float32 elements whose dimension is derived from its length.
// It includes:
//   - View: zero-copy decoding of a BLOB
//   - Codec: loose text parsing, scalar collection, conversion and formatting
//   - Kernels: elementwise arithmetic, comparison, similarity and norms
//   - Debug: truncated pretty-printing
//
// Every function is pure and safe for concurrent use.
package vector
