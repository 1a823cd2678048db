package logbuffer

import (
	"encoding/binary"

	"github.com/bft-labs/imagepoll/internal/ports"
)

const (
	metadataMagic   = uint32(0x49504c31) // "IPL1"
	metadataVersion = uint32(1)

	// metadataBlockLen is the fixed size, in bytes, of the metadata block that
	// precedes the three term buffers in a log file.
	metadataBlockLen = 64

	offMagic         = 0
	offVersion       = 4
	offTermLength    = 8
	offInitialTermID = 12
	offTailCounters  = 16 // 3 x int64, 24 bytes
)

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int32) bool {
	return n > 0 && n&(n-1) == 0
}

// fileSize returns the total size of a log file with the given term length:
// the metadata block plus three term buffers.
func fileSize(termLength int32) int64 {
	return metadataBlockLen + 3*int64(termLength)
}

// writeMetadataBlock initializes a fresh metadata block in buf for a log
// with the given term length and initial term id. Tail counters start at
// zero.
func writeMetadataBlock(buf []byte, termLength, initialTermID int32) {
	binary.LittleEndian.PutUint32(buf[offMagic:], metadataMagic)
	binary.LittleEndian.PutUint32(buf[offVersion:], metadataVersion)
	binary.LittleEndian.PutUint32(buf[offTermLength:], uint32(termLength))
	binary.LittleEndian.PutUint32(buf[offInitialTermID:], uint32(initialTermID))
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint64(buf[offTailCounters+i*8:], 0)
	}
}

// readMetadataBlock parses a metadata block, validating the magic number and
// the term length.
func readMetadataBlock(buf []byte) (ports.LogMetadata, error) {
	if len(buf) < metadataBlockLen {
		return ports.LogMetadata{}, ErrFileTooSmall
	}
	if binary.LittleEndian.Uint32(buf[offMagic:]) != metadataMagic {
		return ports.LogMetadata{}, ErrFileTooSmall
	}

	termLength := int32(binary.LittleEndian.Uint32(buf[offTermLength:]))
	if !isPowerOfTwo(termLength) {
		return ports.LogMetadata{}, ErrInvalidTermLength
	}

	md := ports.LogMetadata{
		TermLength:    termLength,
		InitialTermID: int32(binary.LittleEndian.Uint32(buf[offInitialTermID:])),
	}
	for i := 0; i < 3; i++ {
		md.TermTailCounters[i] = int64(binary.LittleEndian.Uint64(buf[offTailCounters+i*8:]))
	}
	return md, nil
}

// writeTailCounter updates the tail counter for the given term index.
func writeTailCounter(buf []byte, index int32, value int64) {
	binary.LittleEndian.PutUint64(buf[offTailCounters+int(index)*8:], uint64(value))
}

// PackTail packs a term id and tail offset into the single int64 a tail
// counter stores: term_id in the high 32 bits, tail offset in the low 32.
func PackTail(termID, tailOffset int32) int64 {
	return int64(uint64(uint32(termID))<<32 | uint64(uint32(tailOffset)))
}

// UnpackTail reverses PackTail.
func UnpackTail(packed int64) (termID, tailOffset int32) {
	u := uint64(packed)
	return int32(u >> 32), int32(u)
}
