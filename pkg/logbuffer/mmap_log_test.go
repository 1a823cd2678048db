//go:build unix

package logbuffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/imagepoll/internal/domain"
)

func TestCreateAndReopenMmapLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.log")

	created, err := CreateMmapLog(path, 64*1024, 1234)
	if err != nil {
		t.Fatalf("CreateMmapLog: %v", err)
	}

	a := NewAppender(created, 110, 101)
	payload := []byte("mapped payload")
	if _, err := a.AppendMessage(0, 1234, 0, payload); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if err := created.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := created.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenMmapLog(path)
	if err != nil {
		t.Fatalf("OpenMmapLog: %v", err)
	}
	defer reopened.Close()

	md := reopened.Metadata()
	if md.TermLength != 64*1024 || md.InitialTermID != 1234 {
		t.Fatalf("unexpected metadata after reopen: %+v", md)
	}

	peek := domain.PeekFrame(reopened.TermBuffer(0), 0)
	if peek.Kind != domain.KindData {
		t.Fatalf("peek.Kind = %v, want KindData", peek.Kind)
	}
	header := domain.SnapshotHeader(reopened.TermBuffer(0), 0)
	if header.SessionID != 110 || header.TermID != 1234 {
		t.Fatalf("unexpected header after reopen: %+v", header)
	}
}

func TestCreateMmapLogRejectsNonPowerOfTwo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.log")
	if _, err := CreateMmapLog(path, 100, 0); err != ErrInvalidTermLength {
		t.Fatalf("expected ErrInvalidTermLength, got %v", err)
	}
}

func TestOpenMmapLogRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.log")

	l, err := CreateMmapLog(path, 64*1024, 0)
	if err != nil {
		t.Fatalf("CreateMmapLog: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := os.Truncate(path, metadataBlockLen/2); err != nil {
		t.Fatalf("os.Truncate: %v", err)
	}

	if _, err := OpenMmapLog(path); err != ErrFileTooSmall {
		t.Fatalf("expected ErrFileTooSmall, got %v", err)
	}
}

func TestMmapLogCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.log")

	l, err := CreateMmapLog(path, 64*1024, 0)
	if err != nil {
		t.Fatalf("CreateMmapLog: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
