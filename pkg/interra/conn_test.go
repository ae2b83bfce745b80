package interra

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// scriptConn is an in-memory net.Conn that serves preloaded lines, one line
// per Read, and records everything written to it.
type scriptConn struct {
	mu         sync.Mutex
	lines      []string
	written    strings.Builder
	failWrites bool
	closed     bool
	deadlines  int
}

func newScriptConn(lines ...string) *scriptConn {
	c := &scriptConn{}
	for _, l := range lines {
		c.lines = append(c.lines, l+"\n")
	}
	return c
}

func (c *scriptConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, net.ErrClosed
	}
	if len(c.lines) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.lines[0])
	if n < len(c.lines[0]) {
		c.lines[0] = c.lines[0][n:]
	} else {
		c.lines = c.lines[1:]
	}
	return n, nil
}

func (c *scriptConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, net.ErrClosed
	}
	if c.failWrites {
		return 0, errors.New("broken pipe")
	}
	return c.written.Write(p)
}

func (c *scriptConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *scriptConn) LocalAddr() net.Addr                { return &net.TCPAddr{} }
func (c *scriptConn) RemoteAddr() net.Addr               { return &net.TCPAddr{} }
func (c *scriptConn) SetDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadlines++
	return nil
}

func (c *scriptConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *scriptConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *scriptConn) setFailWrites(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failWrites = fail
}

// frames returns the written lines without their newlines.
func (c *scriptConn) frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := strings.Split(c.written.String(), "\n")
	return out[:len(out)-1]
}

// deadlineCalls counts SetDeadline calls, which only the cancel abort makes.
func (c *scriptConn) deadlineCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadlines
}

func (c *scriptConn) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *scriptConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// scriptDialer hands out conns in order and fails once they run out.
type scriptDialer struct {
	mu    sync.Mutex
	conns []*scriptConn
	dials int
}

func (d *scriptDialer) dial(ctx context.Context, network, address string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if len(d.conns) == 0 {
		return nil, errors.New("connection refused")
	}
	c := d.conns[0]
	d.conns = d.conns[1:]
	return c, nil
}

func (d *scriptDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func loginReply(token string) string {
	return `{"data":null,"meta":{"authID":"` + token + `","requestType":500}}`
}

func testConfig() Config {
	return Config{Host: "hub.local", Port: "4000", Username: "user", Password: "secret"}
}
