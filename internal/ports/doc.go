// Package ports defines the interfaces that connect the poll engine to its
// infrastructure collaborators, in the hexagonal-architecture sense: the
// engine depends only on these interfaces, never on a concrete mapped-log
// or logging implementation.
//
// # Port interfaces
//
//   - [MappedLog]: read access to the three rotating term buffers and the
//     log metadata (term length, initial term id, tail counters).
//   - [Logger]: structured logging, aliased onto pkg/log so the engine and
//     its adapters share a single logging abstraction.
package ports
