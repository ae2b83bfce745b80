package interra

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Session is one authenticated hub connection. It is never modified after
// the handshake; reconnecting installs a new Session.
type Session struct {
	conn  net.Conn
	r     *bufio.Reader
	w     *bufio.Writer
	token json.RawMessage

	writeTimeout time.Duration
}

func newSession(conn net.Conn, cfg Config) *Session {
	return &Session{
		conn:         conn,
		r:            bufio.NewReader(conn),
		w:            bufio.NewWriter(conn),
		writeTimeout: cfg.WriteTimeout,
	}
}

// Token returns the session token issued at login.
func (s *Session) Token() json.RawMessage {
	return s.token
}

// writeFrame writes and flushes one frame.
func (s *Session) writeFrame(ctx context.Context, frame []byte) error {
	stop := s.abortOnCancel(ctx)
	defer stop()

	if err := s.conn.SetWriteDeadline(deadline(ctx, s.writeTimeout)); err != nil {
		return transportError(ctx, "set write deadline", err)
	}
	if _, err := s.w.Write(frame); err != nil {
		return transportError(ctx, "write", err)
	}
	if err := s.w.Flush(); err != nil {
		return transportError(ctx, "flush", err)
	}
	return nil
}

// readLine reads one newline-terminated line, giving up at until.
func (s *Session) readLine(ctx context.Context, until time.Time) ([]byte, error) {
	stop := s.abortOnCancel(ctx)
	defer stop()

	if err := s.conn.SetReadDeadline(until); err != nil {
		return nil, transportError(ctx, "set read deadline", err)
	}
	line, err := s.r.ReadBytes('\n')
	if err != nil {
		return nil, transportError(ctx, "read", err)
	}
	return line, nil
}

// abortOnCancel unblocks pending socket I/O when ctx is cancelled. The
// returned stop waits for an abort already in progress, so it cannot move
// the deadlines of a later operation.
func (s *Session) abortOnCancel(ctx context.Context) func() {
	aborted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(aborted)
		_ = s.conn.SetDeadline(time.Unix(1, 0))
	})
	return func() {
		if !stop() {
			<-aborted
		}
	}
}

func (s *Session) close() error {
	return s.conn.Close()
}

// deadline returns now+d, or the context deadline if that is earlier.
func deadline(ctx context.Context, d time.Duration) time.Time {
	dl := time.Now().Add(d)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(dl) {
		return ctxDeadline
	}
	return dl
}

func transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w: %s: %w", device.ErrTransport, device.ErrTimeout, op, ctxErr)
		}
		return fmt.Errorf("%w: %s: %w", device.ErrTransport, op, ctxErr)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w: %s", device.ErrTransport, device.ErrTimeout, op)
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: connection closed by hub", device.ErrTransport, op)
	}
	return fmt.Errorf("%w: %s: %w", device.ErrTransport, op, err)
}
