package domain

import "encoding/binary"

// HeaderLen is the fixed size, in bytes, of a frame header prefix.
const HeaderLen = 32

// FrameAlignment is the default boundary frames and position values are
// aligned to. It must be a power of two; 32 matches the wire format used by
// the appending side.
const FrameAlignment = 32

// Frame type values carried in the header's type field.
const (
	FrameTypePadding int16 = 0x00
	FrameTypeData    int16 = 0x01
)

// Kind classifies what Peek found at a term offset.
type Kind int

const (
	// KindEmpty means frame_length == 0: nothing has been published yet.
	KindEmpty Kind = iota
	// KindData is a data frame carrying a payload for the user handler.
	KindData
	// KindPadding is a padding frame inserted to fill out a term; it carries
	// no payload of interest.
	KindPadding
)

// Peek describes what was found when inspecting a frame header.
type Peek struct {
	Kind   Kind
	Length int32 // raw frame_length; meaningless when Kind is KindEmpty
}

// AlignedLength returns the aligned length of this frame, the distance the
// engine actually advances by.
func (p Peek) AlignedLength() int32 {
	return AlignUp(p.Length, FrameAlignment)
}

// PeekFrame inspects the frame header at offset within buf and classifies
// it. A zero frame_length means "not yet published" and is reported as
// KindEmpty. A corrupt header — negative length, or a length whose payload
// would extend past the end of buf — is also reported as KindEmpty: per the
// error-handling contract, a corrupt frame is the safe-stop case, not a
// crash.
//
// The read of frame_length uses an acquire-ordered atomic load so that a
// non-zero value observed here implies the rest of the header and the
// payload bytes, written by a concurrent publisher, are visible too.
func PeekFrame(buf []byte, offset int32) Peek {
	if offset < 0 || int64(offset)+HeaderLen > int64(len(buf)) {
		return Peek{Kind: KindEmpty}
	}

	length := loadFrameLengthAcquire(buf, offset)
	if length <= 0 {
		return Peek{Kind: KindEmpty}
	}
	if int64(offset)+int64(length) > int64(len(buf)) {
		// Corrupt frame: payload would run past the term. Treat as empty.
		return Peek{Kind: KindEmpty}
	}

	switch FrameType(buf, offset) {
	case FrameTypePadding:
		return Peek{Kind: KindPadding, Length: length}
	default:
		return Peek{Kind: KindData, Length: length}
	}
}

// FrameType returns the type field of the frame header at offset.
func FrameType(buf []byte, offset int32) int16 {
	return int16(binary.LittleEndian.Uint16(buf[offset+6 : offset+8]))
}

// FrameVersion returns the version field of the frame header at offset.
func FrameVersion(buf []byte, offset int32) int8 {
	return int8(buf[offset+4])
}

// FrameFlags returns the flags field of the frame header at offset.
func FrameFlags(buf []byte, offset int32) int8 {
	return int8(buf[offset+5])
}

// FrameTermOffset returns the term_offset field of the frame header at offset.
func FrameTermOffset(buf []byte, offset int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset+8 : offset+12]))
}

// FrameSessionID returns the session_id field of the frame header at offset.
func FrameSessionID(buf []byte, offset int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset+12 : offset+16]))
}

// FrameStreamID returns the stream_id field of the frame header at offset.
func FrameStreamID(buf []byte, offset int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset+16 : offset+20]))
}

// FrameTermID returns the term_id field of the frame header at offset.
func FrameTermID(buf []byte, offset int32) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset+20 : offset+24]))
}
