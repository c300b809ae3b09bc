// Package engine connects the vector package to SQLite through the
// modernc.org/sqlite driver: it models the values SQL functions receive and
// return, declares the vector function table, registers it with the driver
// and opens connections.
package engine
