// Package engine implements the poll state machine over a mapped log: it
// computes the active term and offset from a subscriber's position cell,
// scans frames within that term, and advances the cell according to the
// rules in the four polling operations (Poll, ControlledPoll, BoundedPoll,
// BoundedControlledPoll).
//
// The engine is a stateless algorithm object: all mutable state — the
// position cell, the closed flag, identity fields — is owned by the caller
// (the root image package). A *PollEngine only holds the derived constants
// (term length, shift, initial term id) and a reference to the MappedLog.
package engine
