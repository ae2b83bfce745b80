package interra

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// KeepaliveInterval is the period between keepalive probes.
	KeepaliveInterval = 180 * time.Second

	// keepaliveAttempts is the number of lines read while waiting for the
	// probe acknowledgement before giving up on the connection.
	keepaliveAttempts = 5
)

// KeepAlive probes the connection once and reconnects if the probe cannot
// be written or goes unacknowledged. Ordinary traffic waits while the probe
// runs.
func (c *Client) KeepAlive(ctx context.Context) error {
	return c.do(ctx, c.probe)
}

func (c *Client) probe(ctx context.Context, s *Session) error {
	if err := s.writeFrame(ctx, probeFrame); err != nil {
		log.Warn().Err(err).Msg("Keepalive probe write failed, reconnecting")
		c.metrics.KeepaliveProbes.WithLabelValues("write_failed").Inc()
		return c.reconnect(ctx)
	}

	for attempt := 1; attempt <= keepaliveAttempts; attempt++ {
		line, err := s.readLine(ctx, deadline(ctx, c.cfg.ReadTimeout))
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("Keepalive read failed, reconnecting")
			c.metrics.KeepaliveProbes.WithLabelValues("read_failed").Inc()
			return c.reconnect(ctx)
		}
		if isAck(line) {
			log.Debug().Int("attempt", attempt).Msg("Keepalive acknowledged")
			c.metrics.KeepaliveProbes.WithLabelValues("ok").Inc()
			c.setConnected(true)
			return nil
		}
		log.Debug().Int("attempt", attempt).Msg("Keepalive reply was not an acknowledgement")
	}

	log.Warn().Int("attempts", keepaliveAttempts).Msg("Keepalive unanswered, reconnecting")
	c.metrics.KeepaliveProbes.WithLabelValues("unanswered").Inc()
	return c.reconnect(ctx)
}

// Watchdog runs KeepAlive on a fixed period.
type Watchdog struct {
	client   *Client
	interval time.Duration
}

// NewWatchdog creates a watchdog for client. A non-positive interval
// selects KeepaliveInterval.
func NewWatchdog(client *Client, interval time.Duration) *Watchdog {
	if interval <= 0 {
		interval = KeepaliveInterval
	}
	return &Watchdog{client: client, interval: interval}
}

// Run probes every interval until ctx is cancelled. Failures are logged and
// retried on the next tick.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("Keepalive watchdog started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Keepalive watchdog stopped")
			return
		case <-ticker.C:
			if err := w.client.KeepAlive(ctx); err != nil {
				log.Error().Err(err).Msg("Keepalive cycle failed")
			}
		}
	}
}
