package logbuffer

import (
	"testing"

	"github.com/bft-labs/imagepoll/internal/domain"
)

func TestNewMemoryLogRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := NewMemoryLog(100, 0); err != ErrInvalidTermLength {
		t.Fatalf("expected ErrInvalidTermLength, got %v", err)
	}
}

func TestMemoryLogTermBuffersAreIndependent(t *testing.T) {
	l, err := NewMemoryLog(64*1024, 1)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}

	l.TermBuffer(0)[0] = 0xAA
	for i := int32(1); i < 3; i++ {
		if l.TermBuffer(i)[0] != 0 {
			t.Fatalf("term %d was not independent of term 0", i)
		}
	}
}

func TestMemoryLogMetadataReflectsConstruction(t *testing.T) {
	l, err := NewMemoryLog(128*1024, 42)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}

	md := l.Metadata()
	if md.TermLength != 128*1024 {
		t.Errorf("TermLength = %d, want %d", md.TermLength, 128*1024)
	}
	if md.InitialTermID != 42 {
		t.Errorf("InitialTermID = %d, want 42", md.InitialTermID)
	}
}

func TestAppenderWritesReadableMessage(t *testing.T) {
	l, err := NewMemoryLog(64*1024, 7)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}
	a := NewAppender(l, 110, 101)

	payload := []byte("hello, image")
	aligned, err := a.AppendMessage(0, 7, 0, payload)
	if err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	want := domain.AlignUp(domain.HeaderLen+int32(len(payload)), domain.FrameAlignment)
	if aligned != want {
		t.Fatalf("aligned length = %d, want %d", aligned, want)
	}

	peek := domain.PeekFrame(l.TermBuffer(0), 0)
	if peek.Kind != domain.KindData {
		t.Fatalf("peek.Kind = %v, want KindData", peek.Kind)
	}

	header := domain.SnapshotHeader(l.TermBuffer(0), 0)
	if header.SessionID != 110 || header.StreamID != 101 || header.TermID != 7 {
		t.Fatalf("unexpected header fields: %+v", header)
	}

	gotTermID, gotOffset := UnpackTail(l.tailCounters[0])
	if gotTermID != 7 || gotOffset != aligned {
		t.Fatalf("tail counter unpacked = (termID=%d, offset=%d), want (7, %d)", gotTermID, gotOffset, aligned)
	}
}

func TestAppenderWritesReadablePadding(t *testing.T) {
	l, err := NewMemoryLog(64*1024, 7)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}
	a := NewAppender(l, 110, 101)

	const paddingLength = 96
	if err := a.AppendPadding(0, 7, 0, paddingLength); err != nil {
		t.Fatalf("AppendPadding: %v", err)
	}

	peek := domain.PeekFrame(l.TermBuffer(0), 0)
	if peek.Kind != domain.KindPadding {
		t.Fatalf("peek.Kind = %v, want KindPadding", peek.Kind)
	}
	if peek.Length != paddingLength {
		t.Fatalf("peek.Length = %d, want %d", peek.Length, paddingLength)
	}
}

func TestAppenderRejectsFrameLargerThanTerm(t *testing.T) {
	l, err := NewMemoryLog(128, 0)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}
	a := NewAppender(l, 1, 1)

	_, err = a.AppendMessage(0, 0, 0, make([]byte, 200))
	if err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}
