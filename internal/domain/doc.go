// Package domain contains the core position arithmetic and frame decoding
// rules for the Image polling core. It has no dependency on infrastructure
// concerns (mapped files, logging, configuration) and contains only the
// pure, allocation-free math and layout rules the poll engine is built on.
//
// # Contents
//
//   - Position arithmetic: converting between (term id, term offset) pairs
//     and the 64-bit stream position, and selecting the active term index.
//   - Frame decoding: interpreting a frame header at a given term offset.
//
// Both are pure functions over plain integers and byte slices so they can
// be tested exhaustively without any mapped-log fixture.
package domain
