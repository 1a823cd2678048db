package engine

import (
	"math/bits"

	"github.com/bft-labs/imagepoll/internal/domain"
	"github.com/bft-labs/imagepoll/internal/ports"
)

// PollEngine drives the scan loop across a single term per poll call. It
// holds no mutable state of its own; the position cell it reads and writes
// through belongs to the caller (the root image package's Image type).
type PollEngine struct {
	mappedLog     ports.MappedLog
	termLength    int32
	shift         int32
	initialTermID int32
	logger        ports.Logger
}

// New creates a PollEngine over the given mapped log, deriving the term
// length, bit-shift, and initial term id from its metadata once, at
// construction time; they are immutable for the engine's lifetime.
func New(mappedLog ports.MappedLog, logger ports.Logger) *PollEngine {
	md := mappedLog.Metadata()
	return &PollEngine{
		mappedLog:     mappedLog,
		termLength:    md.TermLength,
		shift:         int32(bits.TrailingZeros32(uint32(md.TermLength))),
		initialTermID: md.InitialTermID,
		logger:        logger,
	}
}

// TermLength returns the derived term length constant.
func (e *PollEngine) TermLength() int32 { return e.termLength }

// Shift returns the derived position bit-shift constant.
func (e *PollEngine) Shift() int32 { return e.shift }

// InitialTermID returns the derived initial term id constant.
func (e *PollEngine) InitialTermID() int32 { return e.initialTermID }

// scanTerm resolves the term buffer and starting offset for the position
// currently held in cell.
func (e *PollEngine) scanTerm(cell *int64) (buf []byte, o0 int32) {
	p0 := *cell
	index := domain.IndexByPosition(p0, e.shift)
	o0 = domain.TermOffsetFromPosition(p0, e.termLength)
	buf = e.mappedLog.TermBuffer(index)
	return buf, o0
}

// Poll scans forward from the current position within its term, up to
// fragmentLimit data fragments or until an empty frame or the term boundary
// is reached. The position cell is updated once, at the end, to reflect
// everything scanned.
func (e *PollEngine) Poll(cell *int64, fragmentLimit int, handler Handler) int {
	if fragmentLimit <= 0 {
		return 0
	}

	p0 := *cell
	buf, o0 := e.scanTerm(cell)
	limit := e.termLength

	offset := o0
	fragments := 0
	for offset < limit && fragments < fragmentLimit {
		peek := domain.PeekFrame(buf, offset)
		switch peek.Kind {
		case domain.KindEmpty:
			goto done
		case domain.KindPadding:
			offset += peek.AlignedLength()
		case domain.KindData:
			header := domain.SnapshotHeader(buf, offset)
			payload := buf[offset+domain.HeaderLen : offset+peek.Length]
			handler(payload, header)
			offset += peek.AlignedLength()
			fragments++
		}
	}

done:
	*cell = p0 + int64(offset-o0)
	return fragments
}

// ControlledPoll is like Poll, but the handler steers the loop via its
// returned Disposition. See the Disposition type for the exact semantics of
// each case; in short, Commit writes the position cell immediately so a
// handler that queries the current position mid-scan observes it, and Abort
// discards only the uncommitted tail of the current scan.
func (e *PollEngine) ControlledPoll(cell *int64, fragmentLimit int, handler ControlledHandler) int {
	if fragmentLimit <= 0 {
		return 0
	}

	p0 := *cell
	buf, o0 := e.scanTerm(cell)
	limit := e.termLength

	offset := o0
	fragments := 0
	aborted := false

	for offset < limit && fragments < fragmentLimit {
		peek := domain.PeekFrame(buf, offset)
		switch peek.Kind {
		case domain.KindEmpty:
			goto done
		case domain.KindPadding:
			offset += peek.AlignedLength()
			continue
		case domain.KindData:
			header := domain.SnapshotHeader(buf, offset)
			payload := buf[offset+domain.HeaderLen : offset+peek.Length]
			disposition := handler(payload, header)

			if disposition == domain.AbortDisposition {
				aborted = true
				goto done
			}

			offset += peek.AlignedLength()
			fragments++

			switch disposition {
			case domain.CommitDisposition:
				*cell = p0 + int64(offset-o0)
			case domain.BreakDisposition:
				goto done
			}
		}
	}

done:
	if !aborted {
		*cell = p0 + int64(offset-o0)
	}
	return fragments
}

// BoundedPoll is like Poll, but additionally stops before invoking the
// handler on a data fragment that would carry the position past
// maxPosition. Padding frames are always traversed fully, even past
// maxPosition, as long as they fit within the term.
func (e *PollEngine) BoundedPoll(cell *int64, maxPosition int64, fragmentLimit int, handler Handler) int {
	p0 := *cell
	if maxPosition <= p0 || fragmentLimit <= 0 {
		return 0
	}

	buf, o0 := e.scanTerm(cell)
	limit := e.termLength

	offset := o0
	fragments := 0
	for offset < limit && fragments < fragmentLimit {
		peek := domain.PeekFrame(buf, offset)
		switch peek.Kind {
		case domain.KindEmpty:
			goto done
		case domain.KindPadding:
			offset += peek.AlignedLength()
		case domain.KindData:
			nextOffset := offset + peek.AlignedLength()
			nextPosition := p0 + int64(nextOffset-o0)
			if nextPosition > maxPosition {
				goto done
			}

			header := domain.SnapshotHeader(buf, offset)
			payload := buf[offset+domain.HeaderLen : offset+peek.Length]
			handler(payload, header)
			offset = nextOffset
			fragments++
		}
	}

done:
	*cell = p0 + int64(offset-o0)
	return fragments
}

// BoundedControlledPoll combines ControlledPoll's disposition handling with
// BoundedPoll's maxPosition cutoff.
func (e *PollEngine) BoundedControlledPoll(cell *int64, maxPosition int64, fragmentLimit int, handler ControlledHandler) int {
	p0 := *cell
	if maxPosition <= p0 || fragmentLimit <= 0 {
		return 0
	}

	buf, o0 := e.scanTerm(cell)
	limit := e.termLength

	offset := o0
	fragments := 0
	aborted := false

	for offset < limit && fragments < fragmentLimit {
		peek := domain.PeekFrame(buf, offset)
		switch peek.Kind {
		case domain.KindEmpty:
			goto done
		case domain.KindPadding:
			offset += peek.AlignedLength()
			continue
		case domain.KindData:
			nextOffset := offset + peek.AlignedLength()
			nextPosition := p0 + int64(nextOffset-o0)
			if nextPosition > maxPosition {
				goto done
			}

			header := domain.SnapshotHeader(buf, offset)
			payload := buf[offset+domain.HeaderLen : offset+peek.Length]
			disposition := handler(payload, header)

			if disposition == domain.AbortDisposition {
				aborted = true
				goto done
			}

			offset = nextOffset
			fragments++

			switch disposition {
			case domain.CommitDisposition:
				*cell = p0 + int64(offset-o0)
			case domain.BreakDisposition:
				goto done
			}
		}
	}

done:
	if !aborted {
		*cell = p0 + int64(offset-o0)
	}
	return fragments
}

// SetPosition validates and applies a caller-supplied position. Only
// positions in the closed interval [current, current+termLength], aligned
// to the frame alignment, are accepted; any other value is rejected and the
// cell is left unchanged.
func (e *PollEngine) SetPosition(cell *int64, newPosition int64) error {
	current := *cell
	if newPosition < current || newPosition > current+int64(e.termLength) {
		return domain.ErrPositionOutOfRange
	}
	if newPosition%int64(domain.FrameAlignment) != 0 {
		return domain.ErrPositionMisaligned
	}
	*cell = newPosition
	return nil
}
