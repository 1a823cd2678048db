package imagepoll

import (
	"errors"
	"fmt"

	"github.com/bft-labs/imagepoll/internal/engine"
	"github.com/bft-labs/imagepoll/pkg/log"
)

// ErrClosed is returned by SetPosition and Position on a closed Image. Poll
// operations on a closed Image do not return an error; they return 0
// fragments with no side effects, since polling is the hot path and a
// closed Image should stay cheap to call rather than force error checks
// onto every poll call site.
var ErrClosed = errors.New("imagepoll: image is closed")

// Identity carries the subscriber-facing identity fields an Image reports,
// none of which affect polling behavior: they are for correlating this
// Image with its publication/log source in logs and diagnostics.
type Identity struct {
	// SessionID identifies the publication session this Image subscribes to.
	SessionID int32

	// CorrelationID is an opaque id correlating this Image's registration
	// with the rest of a client's command/response protocol, if any.
	CorrelationID int64

	// SubscriberPositionID identifies the position-tracking counter this
	// Image's progress is published under.
	SubscriberPositionID int32

	// SourceIdentity is a human-readable description of the transport this
	// Image's log buffer is delivered over (for example, a channel URI).
	SourceIdentity string
}

// Image is the subscriber-side handle on a single publication's log buffer.
// It wraps a stateless PollEngine with the mutable position cell and the
// identity fields spec'd for this type: Image owns all of the state the
// engine itself does not.
type Image struct {
	engine   *engine.PollEngine
	position int64
	closed   bool
	identity Identity
	logger   Logger
}

// New creates an Image over the given mapped log, positioned at
// initialPosition. initialPosition is typically 0 for a subscriber joining
// at the start of the log, or a position recovered from a previous session.
func New(mappedLog MappedLog, identity Identity, initialPosition int64, opts ...Option) (*Image, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}
	if mappedLog == nil {
		return nil, errors.New("imagepoll: mappedLog must not be nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := engine.New(mappedLog, o.logger)
	img := &Image{
		engine:   e,
		position: initialPosition,
		identity: identity,
		logger:   o.logger,
	}

	img.logger.Debug("image created",
		log.Int32("session_id", identity.SessionID),
		log.Int64("initial_position", initialPosition),
	)
	return img, nil
}

// SessionID returns this Image's publication session id.
func (img *Image) SessionID() int32 { return img.identity.SessionID }

// CorrelationID returns this Image's registration correlation id.
func (img *Image) CorrelationID() int64 { return img.identity.CorrelationID }

// SubscriberPositionID returns the position-tracking counter id this
// Image's progress is published under.
func (img *Image) SubscriberPositionID() int32 { return img.identity.SubscriberPositionID }

// SourceIdentity returns a human-readable description of this Image's
// transport.
func (img *Image) SourceIdentity() string { return img.identity.SourceIdentity }

// TermLength returns the mapped log's term buffer length.
func (img *Image) TermLength() int32 { return img.engine.TermLength() }

// InitialTermID returns the term id the mapped log started at.
func (img *Image) InitialTermID() int32 { return img.engine.InitialTermID() }

// Closed reports whether this Image has been closed.
func (img *Image) Closed() bool { return img.closed }

// Close marks this Image closed. Every poll operation called afterward
// returns 0 with no side effects. Close is idempotent.
func (img *Image) Close() error {
	if img.closed {
		return nil
	}
	img.closed = true
	img.logger.Debug("image closed", log.Int32("session_id", img.identity.SessionID))
	return nil
}

// Position returns the current stream position.
func (img *Image) Position() (int64, error) {
	if img.closed {
		return 0, ErrClosed
	}
	return img.position, nil
}

// SetPosition validates and applies a caller-supplied position. Only
// positions in the closed interval [current, current+termLength], aligned
// to the frame alignment, are accepted.
func (img *Image) SetPosition(newPosition int64) error {
	if img.closed {
		return ErrClosed
	}
	if err := img.engine.SetPosition(&img.position, newPosition); err != nil {
		return fmt.Errorf("imagepoll: set position: %w", err)
	}
	return nil
}

// Poll scans forward from the current position, invoking handler for up to
// fragmentLimit data fragments. Returns the number of fragments delivered.
// Returns 0 with no side effects if this Image is closed.
func (img *Image) Poll(fragmentLimit int, handler Handler) int {
	if img.closed {
		return 0
	}
	return img.engine.Poll(&img.position, fragmentLimit, handler)
}

// ControlledPoll is like Poll, but handler steers the scan loop via its
// returned Disposition. Returns 0 with no side effects if this Image is
// closed.
func (img *Image) ControlledPoll(fragmentLimit int, handler ControlledHandler) int {
	if img.closed {
		return 0
	}
	return img.engine.ControlledPoll(&img.position, fragmentLimit, handler)
}

// BoundedPoll is like Poll, but additionally stops before invoking handler
// on a fragment that would carry the position past maxPosition. Returns 0
// with no side effects if this Image is closed.
func (img *Image) BoundedPoll(maxPosition int64, fragmentLimit int, handler Handler) int {
	if img.closed {
		return 0
	}
	return img.engine.BoundedPoll(&img.position, maxPosition, fragmentLimit, handler)
}

// BoundedControlledPoll combines ControlledPoll's disposition handling with
// BoundedPoll's maxPosition cutoff. Returns 0 with no side effects if this
// Image is closed.
func (img *Image) BoundedControlledPoll(maxPosition int64, fragmentLimit int, handler ControlledHandler) int {
	if img.closed {
		return 0
	}
	return img.engine.BoundedControlledPoll(&img.position, maxPosition, fragmentLimit, handler)
}
