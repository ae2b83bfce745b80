// Package interra is a client for the Interra home-automation hub.
//
// The hub speaks line-delimited, loosely JSON-shaped frames over one
// long-lived TCP connection. Frames carry no message ids, so a reply is
// simply the next line that is not a heartbeat echo. The Client owns that
// connection through a single goroutine: every exchange runs there in
// arrival order, which keeps each request paired with its reply and makes
// reconnecting a plain swap of the Session.
package interra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// DialFunc opens the transport connection to the hub.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the TCP dialer.
func WithDialer(dial DialFunc) Option {
	return func(c *Client) {
		c.dial = dial
	}
}

// WithMetrics records client activity on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithPacer replaces the wait between AC step commands.
func WithPacer(pace func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.pace = pace
	}
}

// exchange is one unit of work with exclusive use of the session.
type exchange struct {
	ctx  context.Context
	fn   func(ctx context.Context, s *Session) error
	done chan error

	// replaces is set for exchanges that install a new session themselves.
	replaces bool
}

// Client holds the single hub Session and implements device.Controller.
type Client struct {
	cfg     Config
	dial    DialFunc
	pace    func(ctx context.Context, d time.Duration) error
	metrics *Metrics

	session   atomic.Pointer[Session]
	connected atomic.Bool

	// desynced is set when an exchange failed mid-flight, so a late reply
	// or the tail of a line may still be buffered. Owned by run.
	desynced bool

	exchanges chan exchange
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	// acMu keeps AC step sequences from interleaving.
	acMu sync.Mutex
}

var _ device.Controller = (*Client)(nil)

// Connect validates cfg, authenticates with the hub and starts the
// connection goroutine.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialer := &net.Dialer{}
	c := &Client{
		cfg:       cfg.withDefaults(),
		dial:      dialer.DialContext,
		pace:      sleepContext,
		exchanges: make(chan exchange),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(prometheus.NewRegistry())
	}

	s, err := c.handshake(ctx)
	if err != nil {
		return nil, err
	}
	c.install(s)

	go c.run()

	return c, nil
}

// IsConnected returns false after a transport failure until a keepalive
// probe or reconnect succeeds.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Reconnect authenticates again and replaces the session. Exchanges queued
// behind it run against the new session.
func (c *Client) Reconnect(ctx context.Context) error {
	return c.submit(ctx, true, func(ctx context.Context, _ *Session) error {
		return c.reconnect(ctx)
	})
}

// Close stops the connection goroutine and closes the hub connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		// Closing the socket unblocks an exchange stuck in I/O.
		if s := c.session.Load(); s != nil {
			_ = s.close()
		}
		<-c.doneChan
		// A reconnect may have installed a new session meanwhile.
		if s := c.session.Load(); s != nil {
			_ = s.close()
		}
		c.setConnected(false)
		log.Info().Msg("Hub client closed")
	})
}

// run executes exchanges one at a time until Close.
func (c *Client) run() {
	defer close(c.doneChan)
	for {
		select {
		case <-c.stopChan:
			return
		case ex := <-c.exchanges:
			if err := ex.ctx.Err(); err != nil {
				ex.done <- err
				continue
			}
			if c.desynced && !ex.replaces {
				log.Warn().Msg("Hub session out of step after a failed exchange, reconnecting")
				if err := c.reconnect(ex.ctx); err != nil {
					ex.done <- err
					continue
				}
			}
			err := ex.fn(ex.ctx, c.session.Load())
			if errors.Is(err, device.ErrTransport) {
				// A reply to this exchange may still arrive on the socket.
				c.desynced = true
				c.setConnected(false)
			}
			ex.done <- err
		}
	}
}

// do hands fn to the connection goroutine and waits for it to finish. If an
// earlier exchange left the session out of step, the session is replaced
// before fn runs.
func (c *Client) do(ctx context.Context, fn func(ctx context.Context, s *Session) error) error {
	return c.submit(ctx, false, fn)
}

func (c *Client) submit(ctx context.Context, replaces bool, fn func(ctx context.Context, s *Session) error) error {
	ex := exchange{ctx: ctx, fn: fn, done: make(chan error, 1), replaces: replaces}
	select {
	case c.exchanges <- ex:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopChan:
		return fmt.Errorf("%w: client closed", device.ErrNotConnected)
	}
	return <-ex.done
}

// handshake dials the hub, logs in and returns the authenticated session.
func (c *Client) handshake(ctx context.Context) (*Session, error) {
	addr := c.cfg.Address()
	log.Info().Str("address", addr).Str("username", c.cfg.Username).Msg("Connecting to hub")

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.DialTimeout)
	defer cancel()

	conn, err := c.dial(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", device.ErrTransport, addr, err)
	}

	s := newSession(conn, c.cfg)
	token, err := c.login(ctx, s)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	s.token = token

	log.Info().Str("address", addr).Msg("Authenticated with hub")
	return s, nil
}

func (c *Client) login(ctx context.Context, s *Session) (json.RawMessage, error) {
	if err := s.writeFrame(ctx, Encode(loginCommand(c.cfg.Username, c.cfg.Password), nil)); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	line, err := s.readLine(ctx, deadline(ctx, c.cfg.ReadTimeout))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	resp, err := Decode(line)
	if err != nil {
		return nil, fmt.Errorf("%w: login: %w", device.ErrTransport, err)
	}

	token, ok := resp.Token()
	if !ok {
		return nil, fmt.Errorf("%w: login: hub returned no session token", device.ErrTransport)
	}
	return token, nil
}

// reconnect must only run on the connection goroutine.
func (c *Client) reconnect(ctx context.Context) error {
	s, err := c.handshake(ctx)
	if err != nil {
		c.setConnected(false)
		c.metrics.Reconnects.WithLabelValues("failure").Inc()
		log.Error().Err(err).Msg("Reconnect failed")
		return err
	}

	c.install(s)
	c.metrics.Reconnects.WithLabelValues("success").Inc()
	log.Info().Msg("Reconnected to hub")
	return nil
}

// install publishes s as the live session and closes the one it replaces.
func (c *Client) install(s *Session) {
	old := c.session.Swap(s)
	c.desynced = false
	c.setConnected(true)
	if old != nil {
		_ = old.close()
	}
}

func (c *Client) setConnected(connected bool) {
	c.connected.Store(connected)
	if connected {
		c.metrics.Connected.Set(1)
	} else {
		c.metrics.Connected.Set(0)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
