package logbuffer

import "github.com/bft-labs/imagepoll/internal/ports"

// MemoryLog is a plain in-memory MappedLog, used by tests when no shared
// file is involved. It is not safe for concurrent use by
// multiple writers; readers and a single appender may share it as long as
// the appender only ever extends frames forward, matching the real log's
// single-publisher contract.
type MemoryLog struct {
	terms         [3][]byte
	termLength    int32
	initialTermID int32
	tailCounters  [3]int64
}

// NewMemoryLog creates a MemoryLog with three zeroed term buffers of the
// given power-of-two length.
func NewMemoryLog(termLength, initialTermID int32) (*MemoryLog, error) {
	if !isPowerOfTwo(termLength) {
		return nil, ErrInvalidTermLength
	}
	l := &MemoryLog{
		termLength:    termLength,
		initialTermID: initialTermID,
	}
	for i := range l.terms {
		l.terms[i] = make([]byte, termLength)
	}
	return l, nil
}

// TermBuffer returns the term buffer at the given index.
func (l *MemoryLog) TermBuffer(index int32) []byte { return l.terms[index] }

// Metadata returns the log's derived constants and tail counters.
func (l *MemoryLog) Metadata() ports.LogMetadata {
	return ports.LogMetadata{
		TermLength:       l.termLength,
		InitialTermID:    l.initialTermID,
		TermTailCounters: l.tailCounters,
	}
}

// setTail records the publisher-side tail counter for a term, used by
// Appender after writing a frame. It does not participate in the engine's
// control flow; it exists for parity with the production metadata block and
// for diagnostics.
func (l *MemoryLog) setTail(index int32, value int64) {
	l.tailCounters[index] = value
}
