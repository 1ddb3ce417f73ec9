package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/fennig/focusping/internal/logging"
)

const defaultSendTimeout = 5 * time.Second

// SocketSession talks newline-delimited JSON to the host session over a
// unix socket. Each Send is one short-lived connection.
type SocketSession struct {
	Path   string
	Logger *slog.Logger
}

type response struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (s *SocketSession) Send(ctx context.Context, msg Message) (json.RawMessage, error) {
	logger := s.logger().With("operation_id", logging.NewOperationID(), "cmd", msg.Cmd)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultSendTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", s.Path)
	if err != nil {
		return nil, fmt.Errorf("connect to host session at %s: %w", s.Path, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	logger.Debug("remote.send.started")
	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("send command: %w", err)
	}

	if msg.NoResponse {
		logger.Debug("remote.send.completed", "response", false)
		return nil, nil
	}

	var resp response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("read host response: %w", err)
	}
	if !resp.OK {
		if resp.Error == "" {
			resp.Error = "host rejected the command"
		}
		logger.Debug("remote.send.rejected", "error", resp.Error)
		return nil, errors.New(resp.Error)
	}

	logger.Debug("remote.send.completed", "response", true)
	return resp.Data, nil
}

func (s *SocketSession) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
