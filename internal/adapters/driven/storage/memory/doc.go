// Package memory provides in-memory implementations of the driven
// store ports. Used in tests and as a reference for the SQLite and
// Drive-backed adapters.
package memory
