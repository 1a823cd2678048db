//go:build unix

package logbuffer

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/bft-labs/imagepoll/internal/ports"
)

// MmapLog is a MappedLog backed by a memory-mapped file, shared with a
// publisher process. This is the production adapter: term buffers are
// windows into the same mapping the publisher writes frames into, so a
// frame becomes visible to the engine the instant the publisher's release
// store lands, with no copy in between.
type MmapLog struct {
	mu            sync.Mutex
	file          *os.File
	data          []byte
	termLength    int32
	initialTermID int32
	closed        bool
}

// CreateMmapLog creates a new log file at path sized for three term buffers
// of termLength bytes each, initializes its metadata block, and maps it.
func CreateMmapLog(path string, termLength, initialTermID int32) (*MmapLog, error) {
	if !isPowerOfTwo(termLength) {
		return nil, ErrInvalidTermLength
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbuffer: create %s: %w", path, err)
	}

	size := fileSize(termLength)
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("logbuffer: truncate %s: %w", path, err)
	}

	l, err := mapFile(f, size, termLength, initialTermID)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	writeMetadataBlock(l.data[:metadataBlockLen], termLength, initialTermID)
	return l, nil
}

// OpenMmapLog maps an existing log file created by CreateMmapLog (or by a
// publisher using the same layout).
func OpenMmapLog(path string) (*MmapLog, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("logbuffer: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("logbuffer: stat %s: %w", path, err)
	}
	if info.Size() < metadataBlockLen {
		_ = f.Close()
		return nil, ErrFileTooSmall
	}

	header := make([]byte, metadataBlockLen)
	if _, err := f.ReadAt(header, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("logbuffer: read metadata block: %w", err)
	}
	md, err := readMetadataBlock(header)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	expected := fileSize(md.TermLength)
	if info.Size() < expected {
		_ = f.Close()
		return nil, ErrFileTooSmall
	}

	return mapFile(f, expected, md.TermLength, md.InitialTermID)
}

func mapFile(f *os.File, size int64, termLength, initialTermID int32) (*MmapLog, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("logbuffer: mmap: %w", err)
	}

	return &MmapLog{
		file:          f,
		data:          data,
		termLength:    termLength,
		initialTermID: initialTermID,
	}, nil
}

// TermBuffer returns the term buffer at the given index, a window into the
// underlying mapping.
func (l *MmapLog) TermBuffer(index int32) []byte {
	start := metadataBlockLen + int(index)*int(l.termLength)
	return l.data[start : start+int(l.termLength)]
}

// Metadata returns the log's derived constants and a live read of the tail
// counters the publisher maintains.
func (l *MmapLog) Metadata() ports.LogMetadata {
	md, err := readMetadataBlock(l.data[:metadataBlockLen])
	if err != nil {
		// The header was validated at open time; a read failure here means
		// the underlying file was corrupted after the fact. Report the
		// constants we already trust and zeroed tail counters rather than
		// panicking on a read path.
		return ports.LogMetadata{TermLength: l.termLength, InitialTermID: l.initialTermID}
	}
	return md
}

func (l *MmapLog) setTail(index int32, value int64) {
	writeTailCounter(l.data[:metadataBlockLen], index, value)
}

// Sync flushes the mapping to disk with a synchronous msync. It returns
// ErrClosed after Close.
func (l *MmapLog) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	return unix.Msync(l.data, unix.MS_SYNC)
}

// Close unmaps the file and closes the underlying descriptor. Safe to call
// more than once.
func (l *MmapLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	var err error
	if l.data != nil {
		if uerr := unix.Munmap(l.data); uerr != nil {
			err = uerr
		}
		l.data = nil
	}
	if cerr := l.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
