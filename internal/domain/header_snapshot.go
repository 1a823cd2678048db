package domain

// HeaderSnapshot is a read-only, allocation-free copy of a frame header's
// fields. Unlike the payload passed to a handler, a snapshot is safe to
// retain past the end of the handler call: it does not alias the mapped
// log, so the publisher overwriting the frame later cannot invalidate it.
type HeaderSnapshot struct {
	FrameLength int32
	Version     int8
	Flags       int8
	Type        int16
	TermOffset  int32
	SessionID   int32
	StreamID    int32
	TermID      int32
}

// IsPadding reports whether the snapshotted frame is a padding frame.
func (h HeaderSnapshot) IsPadding() bool {
	return h.Type == FrameTypePadding
}

// SnapshotHeader copies the header fields at offset within buf into a
// HeaderSnapshot.
func SnapshotHeader(buf []byte, offset int32) HeaderSnapshot {
	return HeaderSnapshot{
		FrameLength: loadFrameLengthAcquire(buf, offset),
		Version:     FrameVersion(buf, offset),
		Flags:       FrameFlags(buf, offset),
		Type:        FrameType(buf, offset),
		TermOffset:  FrameTermOffset(buf, offset),
		SessionID:   FrameSessionID(buf, offset),
		StreamID:    FrameStreamID(buf, offset),
		TermID:      FrameTermID(buf, offset),
	}
}
