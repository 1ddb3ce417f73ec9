//go:build unix

package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHost accepts one connection, decodes a Message, and answers with
// the configured response.
func fakeHost(t *testing.T, resp response) (string, <-chan Message) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "host.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	received := make(chan Message, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var msg Message
		if err := json.NewDecoder(conn).Decode(&msg); err != nil {
			return
		}
		received <- msg
		if !msg.NoResponse {
			_ = json.NewEncoder(conn).Encode(resp)
		}
	}()
	return path, received
}

func TestSocketSession_RoundTrip(t *testing.T) {
	path, received := fakeHost(t, response{OK: true, Data: json.RawMessage(`{"glyphs":7}`)})
	s := &SocketSession{Path: path, Logger: discardLogger()}

	data, err := s.Send(context.Background(), Message{Cmd: "cache-stats"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if string(data) != `{"glyphs":7}` {
		t.Errorf("data = %s, want stats payload", data)
	}

	select {
	case msg := <-received:
		if msg.Cmd != "cache-stats" {
			t.Errorf("host saw cmd %q, want cache-stats", msg.Cmd)
		}
	case <-time.After(time.Second):
		t.Fatal("host never received the message")
	}
}

func TestSocketSession_NoResponse(t *testing.T) {
	path, received := fakeHost(t, response{})
	s := &SocketSession{Path: path, Logger: discardLogger()}

	data, err := s.Send(context.Background(), Message{Cmd: "mark-tab-done", Match: "id:1", NoResponse: true})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if data != nil {
		t.Errorf("data = %s, want none", data)
	}

	select {
	case msg := <-received:
		if msg.Match != "id:1" {
			t.Errorf("host saw match %q, want id:1", msg.Match)
		}
	case <-time.After(time.Second):
		t.Fatal("host never received the message")
	}
}

func TestSocketSession_HostRejection(t *testing.T) {
	path, _ := fakeHost(t, response{OK: false, Error: "no matching tab"})
	s := &SocketSession{Path: path, Logger: discardLogger()}

	_, err := s.Send(context.Background(), Message{Cmd: "mark-tab-done", Match: "id:404"})
	if err == nil {
		t.Fatal("expected rejection error")
	}
	if err.Error() != "no matching tab" {
		t.Errorf("error = %q, want host's message", err)
	}
}

func TestSocketSession_NoHost(t *testing.T) {
	s := &SocketSession{
		Path:   filepath.Join(t.TempDir(), "absent.sock"),
		Logger: discardLogger(),
	}
	if _, err := s.Send(context.Background(), Message{Cmd: "cache-stats"}); err == nil {
		t.Fatal("expected connection error")
	}
}
