package engine

import "github.com/bft-labs/imagepoll/internal/domain"

// Handler is the plain fragment handler contract: it receives a payload and
// a header snapshot and has no say over the poll loop.
type Handler func(payload []byte, header domain.HeaderSnapshot)

// ControlledHandler is the controlled fragment handler contract: it
// receives the same arguments as Handler but steers the poll loop via its
// returned Disposition.
//
// Handler and ControlledHandler are deliberately sibling function types,
// not two implementations of a shared interface with a sentinel return
// value.
type ControlledHandler func(payload []byte, header domain.HeaderSnapshot) domain.Disposition
