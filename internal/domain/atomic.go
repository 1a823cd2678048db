package domain

import (
	"sync/atomic"
	"unsafe"
)

// loadFrameLengthAcquire reads the frame_length field (the first four bytes
// of the header, little-endian) with an acquire-ordered atomic load. This
// establishes a happens-before relationship with the publisher's
// release-store of the length, which per the wire contract is always the
// final write when a frame is published: observing a non-zero length here
// guarantees the rest of the header and the payload are visible.
func loadFrameLengthAcquire(buf []byte, offset int32) int32 {
	ptr := (*int32)(unsafe.Pointer(&buf[offset]))
	return atomic.LoadInt32(ptr)
}
