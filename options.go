package imagepoll

import (
	"github.com/bft-labs/imagepoll/internal/domain"
	"github.com/bft-labs/imagepoll/internal/engine"
	"github.com/bft-labs/imagepoll/internal/ports"
	"github.com/bft-labs/imagepoll/pkg/log"
)

// MappedLog is the read side of a memory-mapped log: three rotating term
// buffers plus the metadata they were built from. Satisfied by
// [github.com/bft-labs/imagepoll/pkg/logbuffer.MmapLog] (production) or
// [github.com/bft-labs/imagepoll/pkg/logbuffer.MemoryLog] (tests, demos).
type MappedLog = ports.MappedLog

// LogMetadata carries the log's derived constants and publisher tail
// counters; see MappedLog.
type LogMetadata = ports.LogMetadata

// Logger is the structured logging interface Image reports its creation and
// close events through (at debug level); corrupt frames are not logged.
// Implementations can wrap zerolog, zap,
// or anything else; a no-op implementation is used if none is supplied.
type Logger = log.Logger

// Field is a structured logging key-value pair; see the constructors in
// [github.com/bft-labs/imagepoll/pkg/log] (String, Int, Int64, and so on).
type Field = log.Field

// Disposition steers a controlled poll's scan loop; see ContinueDisposition,
// BreakDisposition, AbortDisposition, and CommitDisposition.
type Disposition = domain.Disposition

// Disposition values a ControlledHandler may return during ControlledPoll or
// BoundedControlledPoll. See the Disposition type and the package doc for the exact
// semantics of each.
const (
	ContinueDisposition = domain.ContinueDisposition
	BreakDisposition    = domain.BreakDisposition
	AbortDisposition    = domain.AbortDisposition
	CommitDisposition   = domain.CommitDisposition
)

// HeaderSnapshot is a read-only, allocation-free copy of a frame header's
// fields, safe to retain past the end of a handler call.
type HeaderSnapshot = domain.HeaderSnapshot

// Handler receives a fragment's payload and header during Poll or
// BoundedPoll. The payload slice aliases the mapped log and is only valid
// for the duration of the call.
type Handler = engine.Handler

// ControlledHandler receives a fragment's payload and header during
// ControlledPoll or BoundedControlledPoll, and steers the scan loop via its
// returned Disposition.
type ControlledHandler = engine.ControlledHandler

// Option configures optional behavior of an Image at construction time.
type Option func(*options)

type options struct {
	logger Logger
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets a custom logger for construction and diagnostic events.
// If not provided, a no-op logger is used.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
