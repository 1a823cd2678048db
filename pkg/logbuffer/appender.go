package logbuffer

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"github.com/bft-labs/imagepoll/internal/domain"
	"github.com/bft-labs/imagepoll/internal/ports"
)

// tailSetter is implemented by log backends that track a publisher-side tail
// counter for diagnostics. It plays no part in the engine's control flow.
type tailSetter interface {
	setTail(index int32, value int64)
}

// Appender writes well-formed data and padding frames into a MappedLog, the
// same way a production publisher would. It exists for tests; the poll
// engine never writes, only reads.
type Appender struct {
	log       ports.MappedLog
	sessionID int32
	streamID  int32
}

// NewAppender creates an Appender that stamps every frame it writes with the
// given session and stream ids.
func NewAppender(log ports.MappedLog, sessionID, streamID int32) *Appender {
	return &Appender{log: log, sessionID: sessionID, streamID: streamID}
}

// AppendMessage writes a single data frame carrying payload at termOffset
// within the term buffer at index, stamped with termID. It returns the
// aligned length the frame occupies, which the caller advances its own
// cursor by.
func (a *Appender) AppendMessage(index, termID, termOffset int32, payload []byte) (int32, error) {
	term := a.log.TermBuffer(index)
	frameLength := domain.HeaderLen + int32(len(payload))
	aligned := domain.AlignUp(frameLength, domain.FrameAlignment)
	if termOffset < 0 || int64(termOffset)+int64(aligned) > int64(len(term)) {
		return 0, ErrFrameTooLarge
	}

	writeHeaderFields(term, termOffset, domain.FrameTypeData, termOffset, a.sessionID, a.streamID, termID)
	copy(term[termOffset+domain.HeaderLen:termOffset+frameLength], payload)
	storeFrameLengthRelease(term, termOffset, frameLength)

	a.setTail(index, termID, termOffset+aligned)
	return aligned, nil
}

// AppendPadding writes a padding frame of the given raw length at termOffset,
// typically used to fill the remainder of a term that is too short for the
// next message.
func (a *Appender) AppendPadding(index, termID, termOffset, length int32) error {
	term := a.log.TermBuffer(index)
	aligned := domain.AlignUp(length, domain.FrameAlignment)
	if termOffset < 0 || int64(termOffset)+int64(aligned) > int64(len(term)) {
		return ErrFrameTooLarge
	}

	writeHeaderFields(term, termOffset, domain.FrameTypePadding, termOffset, a.sessionID, a.streamID, termID)
	storeFrameLengthRelease(term, termOffset, length)

	a.setTail(index, termID, termOffset+aligned)
	return nil
}

func (a *Appender) setTail(index, termID, tailOffset int32) {
	if ts, ok := a.log.(tailSetter); ok {
		ts.setTail(index, PackTail(termID, tailOffset))
	}
}

// writeHeaderFields writes every header field except frame_length, which
// must be stored last (and with release ordering) since it is what the
// reader's acquire load synchronizes on.
func writeHeaderFields(buf []byte, offset int32, frameType int16, termOffset, sessionID, streamID, termID int32) {
	buf[offset+4] = 0 // version
	buf[offset+5] = 0 // flags
	binary.LittleEndian.PutUint16(buf[offset+6:], uint16(frameType))
	binary.LittleEndian.PutUint32(buf[offset+8:], uint32(termOffset))
	binary.LittleEndian.PutUint32(buf[offset+12:], uint32(sessionID))
	binary.LittleEndian.PutUint32(buf[offset+16:], uint32(streamID))
	binary.LittleEndian.PutUint32(buf[offset+20:], uint32(termID))
}

// storeFrameLengthRelease publishes frame_length with release ordering, the
// write-side counterpart of the engine's acquire load in internal/domain.
func storeFrameLengthRelease(buf []byte, offset, length int32) {
	ptr := (*int32)(unsafe.Pointer(&buf[offset]))
	atomic.StoreInt32(ptr, length)
}
