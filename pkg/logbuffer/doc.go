// Package logbuffer provides MappedLog implementations: the adapter side of
// the term-buffer log the poll engine reads from.
//
// MmapLog maps a log file shared with a publisher process into three term
// buffers plus a metadata block, the production case. MemoryLog is a plain
// in-memory log for tests; Appender writes well-formed data and padding
// frames into either one.
//
// # Layout
//
// A log file is a metadata block followed by three term buffers of equal,
// power-of-two length:
//
//	+----------------+----------------+----------------+----------------+
//	| metadata block |     term 0     |     term 1     |     term 2     |
//	+----------------+----------------+----------------+----------------+
//
// The metadata block holds the term length, the initial term id, and three
// tail counters the publisher maintains for diagnostics; the engine never
// consults the tail counters to decide whether a frame has been published,
// only the frame headers themselves (see internal/domain).
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package logbuffer
