// Package remote forwards control commands to a running host session.
//
// These are thin shims: each command builds a request, hands it to the
// session, and shapes the reply (if any) for the caller. None of them
// participate in focus tracking or scheduling.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Message is a request forwarded to the host session.
type Message struct {
	Cmd   string `json:"cmd"`
	Match string `json:"match,omitempty"`
	// NoResponse marks fire-and-forget commands; the session does not
	// wait for a reply.
	NoResponse bool `json:"no_response,omitempty"`
}

// Session is a connection to the host process that owns the tabs,
// windows and caches the commands act on.
type Session interface {
	Send(ctx context.Context, msg Message) (json.RawMessage, error)
}

// CacheStats asks the host for its font cache statistics and returns
// them as indented JSON with stable key order.
func CacheStats(ctx context.Context, s Session) (string, error) {
	raw, err := s.Send(ctx, Message{Cmd: "cache-stats"})
	if err != nil {
		return "", fmt.Errorf("cache-stats: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("cache-stats: decode response: %w", err)
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cache-stats: format response: %w", err)
	}
	return string(pretty), nil
}

// MarkTabDone marks every tab matching the expression with a
// notification indicator; the host clears the indicator when a marked
// tab becomes active. No response is expected.
func MarkTabDone(ctx context.Context, s Session, match string) error {
	if match == "" {
		return errors.New("mark-tab-done: match expression required")
	}
	if _, err := s.Send(ctx, Message{Cmd: "mark-tab-done", Match: match, NoResponse: true}); err != nil {
		return fmt.Errorf("mark-tab-done: %w", err)
	}
	return nil
}
