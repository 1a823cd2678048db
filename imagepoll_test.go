package imagepoll

import (
	"errors"
	"testing"

	"github.com/bft-labs/imagepoll/pkg/logbuffer"
)

func newTestImage(t *testing.T) (*Image, *logbuffer.MemoryLog) {
	t.Helper()
	l, err := logbuffer.NewMemoryLog(64*1024, 1234)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}
	img, err := New(l, Identity{SessionID: 110, SubscriberPositionID: 4}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return img, l
}

func TestNewRejectsNilMappedLog(t *testing.T) {
	if _, err := New(nil, Identity{}, 0); err == nil {
		t.Fatal("expected error for nil mapped log")
	}
}

func TestImageIdentityFields(t *testing.T) {
	l, err := logbuffer.NewMemoryLog(64*1024, 1234)
	if err != nil {
		t.Fatalf("NewMemoryLog: %v", err)
	}
	identity := Identity{
		SessionID:            110,
		CorrelationID:        99,
		SubscriberPositionID: 4,
		SourceIdentity:       "aeron:ipc",
	}
	img, err := New(l, identity, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if img.SessionID() != 110 {
		t.Errorf("SessionID() = %d, want 110", img.SessionID())
	}
	if img.CorrelationID() != 99 {
		t.Errorf("CorrelationID() = %d, want 99", img.CorrelationID())
	}
	if img.SubscriberPositionID() != 4 {
		t.Errorf("SubscriberPositionID() = %d, want 4", img.SubscriberPositionID())
	}
	if img.SourceIdentity() != "aeron:ipc" {
		t.Errorf("SourceIdentity() = %q, want aeron:ipc", img.SourceIdentity())
	}
	if img.TermLength() != 64*1024 {
		t.Errorf("TermLength() = %d, want %d", img.TermLength(), 64*1024)
	}
	if img.InitialTermID() != 1234 {
		t.Errorf("InitialTermID() = %d, want 1234", img.InitialTermID())
	}
}

func TestClosedImageReturnsZeroFromAllPollOperations(t *testing.T) {
	img, l := newTestImage(t)

	a := logbuffer.NewAppender(l, 110, 101)
	if _, err := a.AppendMessage(0, 1234, 0, []byte("payload")); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	if err := img.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !img.Closed() {
		t.Fatal("Closed() = false after Close")
	}

	called := false
	mark := func([]byte, HeaderSnapshot) { called = true }
	markControlled := func([]byte, HeaderSnapshot) Disposition { called = true; return ContinueDisposition }

	if n := img.Poll(10, mark); n != 0 || called {
		t.Fatalf("Poll on closed image: n=%d called=%v", n, called)
	}
	if n := img.ControlledPoll(10, markControlled); n != 0 || called {
		t.Fatalf("ControlledPoll on closed image: n=%d called=%v", n, called)
	}
	if n := img.BoundedPoll(1<<20, 10, mark); n != 0 || called {
		t.Fatalf("BoundedPoll on closed image: n=%d called=%v", n, called)
	}
	if n := img.BoundedControlledPoll(1<<20, 10, markControlled); n != 0 || called {
		t.Fatalf("BoundedControlledPoll on closed image: n=%d called=%v", n, called)
	}
}

func TestClosedImagePositionAndSetPositionReturnError(t *testing.T) {
	img, _ := newTestImage(t)
	if err := img.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := img.Position(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Position() error = %v, want ErrClosed", err)
	}
	if err := img.SetPosition(32); !errors.Is(err, ErrClosed) {
		t.Fatalf("SetPosition() error = %v, want ErrClosed", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	img, _ := newTestImage(t)
	if err := img.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := img.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestPollDeliversAppendedMessage(t *testing.T) {
	img, l := newTestImage(t)
	a := logbuffer.NewAppender(l, 110, 101)
	if _, err := a.AppendMessage(0, 1234, 0, []byte("hello")); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	var gotPayload []byte
	n := img.Poll(10, func(payload []byte, header HeaderSnapshot) {
		gotPayload = append([]byte(nil), payload...)
	})

	if n != 1 {
		t.Fatalf("fragments = %d, want 1", n)
	}
	if string(gotPayload) != "hello" {
		t.Fatalf("payload = %q, want %q", gotPayload, "hello")
	}

	pos, err := img.Position()
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pos == 0 {
		t.Fatalf("position did not advance past 0")
	}
}

func TestSetPositionRejectsMisalignedValue(t *testing.T) {
	img, _ := newTestImage(t)
	if err := img.SetPosition(1); err == nil {
		t.Fatal("expected error for misaligned position")
	}
}
