package remote

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// stubSession records the forwarded message and returns a canned reply.
type stubSession struct {
	got   Message
	reply json.RawMessage
	err   error
}

func (s *stubSession) Send(ctx context.Context, msg Message) (json.RawMessage, error) {
	s.got = msg
	return s.reply, s.err
}

func TestCacheStats(t *testing.T) {
	s := &stubSession{reply: json.RawMessage(`{"glyphs":1024,"vram_bytes":4096}`)}

	out, err := CacheStats(context.Background(), s)
	if err != nil {
		t.Fatalf("CacheStats: %v", err)
	}
	if s.got.Cmd != "cache-stats" {
		t.Errorf("cmd = %q, want cache-stats", s.got.Cmd)
	}
	if s.got.Match != "" || s.got.NoResponse {
		t.Errorf("unexpected request fields: %+v", s.got)
	}
	if !strings.Contains(out, `"glyphs": 1024`) {
		t.Errorf("output not indented JSON: %q", out)
	}
}

func TestCacheStats_MalformedResponse(t *testing.T) {
	s := &stubSession{reply: json.RawMessage(`{broken`)}
	if _, err := CacheStats(context.Background(), s); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCacheStats_SessionError(t *testing.T) {
	s := &stubSession{err: errors.New("connection refused")}
	if _, err := CacheStats(context.Background(), s); err == nil {
		t.Fatal("expected error")
	}
}

func TestMarkTabDone(t *testing.T) {
	s := &stubSession{}

	if err := MarkTabDone(context.Background(), s, "title:build"); err != nil {
		t.Fatalf("MarkTabDone: %v", err)
	}
	if s.got.Cmd != "mark-tab-done" {
		t.Errorf("cmd = %q, want mark-tab-done", s.got.Cmd)
	}
	if s.got.Match != "title:build" {
		t.Errorf("match = %q, want title:build", s.got.Match)
	}
	if !s.got.NoResponse {
		t.Error("mark-tab-done should be fire-and-forget")
	}
}

func TestMarkTabDone_RequiresMatch(t *testing.T) {
	s := &stubSession{}
	if err := MarkTabDone(context.Background(), s, ""); err == nil {
		t.Fatal("expected error for empty match")
	}
	if s.got.Cmd != "" {
		t.Errorf("session was called with %+v, want no call", s.got)
	}
}
