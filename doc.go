// Package imagepoll provides the subscriber-side polling core for a
// memory-mapped log of framed messages: the Image type scans forward
// through a rotating set of term buffers, decoding frame headers and
// delivering payloads to a caller-supplied handler.
//
// # Basic usage
//
// Create a log buffer (in production, one mapped from a file shared with a
// publisher process; [github.com/bft-labs/imagepoll/pkg/logbuffer] provides
// both that and an in-memory implementation for tests), then wrap it in an
// Image:
//
//	log, err := logbuffer.OpenMmapLog("/path/to/image.log")
//	if err != nil {
//	    return err
//	}
//	img, err := imagepoll.New(log, imagepoll.Identity{
//	    SessionID: 110,
//	    SubscriberPositionID: 4,
//	}, 0)
//	if err != nil {
//	    return err
//	}
//
//	n := img.Poll(1024, func(payload []byte, header imagepoll.HeaderSnapshot) {
//	    // handle payload
//	})
//
// # Controlled polling
//
// ControlledPoll and BoundedControlledPoll hand the handler a say over the
// scan loop via the returned [Disposition]: [ContinueDisposition] keeps
// scanning, [BreakDisposition] stops after this fragment, [AbortDisposition]
// discards this fragment and stops without advancing the position past the
// last commit, and [CommitDisposition] writes the position immediately, so
// a handler that calls [Image.Position] later in the same poll observes it,
// rather than only at the end of the poll call. Image has no internal
// synchronization; all calls on one Image belong on one goroutine.
//
// # Closing
//
// Close marks the Image closed; every poll operation on a closed Image
// returns 0 immediately with no side effects, matching the rest of the
// module's error-handling rules.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// Use [ModuleVersions] to inspect the versions of the sub-modules this
// package depends on.
package imagepoll
