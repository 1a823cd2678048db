package ports

import "github.com/bft-labs/imagepoll/pkg/log"

// Logger is the structured logging abstraction the engine and its
// adapters depend on. It is a direct alias onto pkg/log.Logger rather than
// a parallel interface, so there is exactly one logging contract in the
// module.
type Logger = log.Logger

// Field, and the constructors below, are re-exported for callers that only
// import ports and don't want a second import of pkg/log.
type Field = log.Field

var (
	String   = log.String
	Int      = log.Int
	Int32    = log.Int32
	Int64    = log.Int64
	Uint64   = log.Uint64
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
