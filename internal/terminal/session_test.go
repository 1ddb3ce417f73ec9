package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/term"
)

type sessionStub struct {
	rawCalls     int
	restoreCalls int
	restoredFD   int
	restoreErr   error
}

func stubTermcalls(t *testing.T, st *sessionStub, rawErr error) {
	t.Helper()
	origRaw := makeRaw
	origRestore := restoreMode
	t.Cleanup(func() {
		makeRaw = origRaw
		restoreMode = origRestore
	})

	makeRaw = func(fd int) (*term.State, error) {
		st.rawCalls++
		if rawErr != nil {
			return nil, rawErr
		}
		return &term.State{}, nil
	}
	restoreMode = func(fd int, state *term.State) error {
		st.restoreCalls++
		st.restoredFD = fd
		return st.restoreErr
	}
}

func TestOpen_EnablesFocusReporting(t *testing.T) {
	st := &sessionStub{}
	stubTermcalls(t, st, nil)
	var out bytes.Buffer

	s, err := Open(7, &out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if st.rawCalls != 1 {
		t.Errorf("makeRaw calls = %d, want 1", st.rawCalls)
	}
	if got := out.String(); got != "\x1b[?1004h" {
		t.Errorf("emitted %q, want enable sequence", got)
	}

	out.Reset()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := out.String(); got != "\x1b[?1004l" {
		t.Errorf("emitted %q, want disable sequence", got)
	}
	if st.restoreCalls != 1 {
		t.Errorf("restore calls = %d, want 1", st.restoreCalls)
	}
	if st.restoredFD != 7 {
		t.Errorf("restored fd = %d, want 7", st.restoredFD)
	}
}

func TestOpen_RawModeFailure(t *testing.T) {
	st := &sessionStub{}
	stubTermcalls(t, st, errors.New("inappropriate ioctl"))
	var out bytes.Buffer

	if _, err := Open(0, &out); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("wrote %q to terminal despite setup failure", out.String())
	}
	if st.restoreCalls != 0 {
		t.Errorf("restore calls = %d, want 0 (nothing to restore)", st.restoreCalls)
	}
}

func TestClose_ExactlyOnce(t *testing.T) {
	st := &sessionStub{}
	stubTermcalls(t, st, nil)
	var out bytes.Buffer

	s, err := Open(0, &out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i+1, err)
		}
	}
	if st.restoreCalls != 1 {
		t.Errorf("restore calls = %d, want exactly 1", st.restoreCalls)
	}
	if got := strings.Count(out.String(), "\x1b[?1004l"); got != 1 {
		t.Errorf("disable sequence emitted %d times, want 1", got)
	}
}

func TestClose_RestoreErrorSticky(t *testing.T) {
	st := &sessionStub{restoreErr: errors.New("tcsetattr failed")}
	stubTermcalls(t, st, nil)
	var out bytes.Buffer

	s, err := Open(0, &out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	first := s.Close()
	if first == nil {
		t.Fatal("expected restore error")
	}
	second := s.Close()
	if !errors.Is(second, first) && second.Error() != first.Error() {
		t.Errorf("second Close = %v, want the first call's result", second)
	}
	if st.restoreCalls != 1 {
		t.Errorf("restore calls = %d, want exactly 1", st.restoreCalls)
	}
}
