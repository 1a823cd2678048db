package ports

// LogMetadata carries the fields the poll engine derives its constants
// from, plus the publisher-owned tail counters the engine never consults
// for control flow (it decides purely from frame headers; see MappedLog).
type LogMetadata struct {
	// TermLength is the power-of-two length, in bytes, of each term buffer.
	TermLength int32

	// InitialTermID is the term id the log started at.
	InitialTermID int32

	// TermTailCounters packs (term_id<<32 | tail_offset) per term, written
	// by the publisher. The engine does not read this; it decides whether a
	// frame has been published from the frame headers alone.
	TermTailCounters [3]int64
}

// MappedLog is the read side of a memory-mapped circular log: three term
// buffers of identical power-of-two length, plus the metadata block that
// describes them. Implementations may be backed by an mmap'd file (the
// production case, shared with a publisher process) or by plain memory (for
// tests).
type MappedLog interface {
	// TermBuffer returns the term buffer at the given index (0, 1, or 2).
	TermBuffer(index int32) []byte

	// Metadata returns the log's derived constants and tail counters.
	Metadata() LogMetadata
}
