package interra

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// Send writes one command without waiting for a reply.
func (c *Client) Send(ctx context.Context, cmd Command) error {
	return c.do(ctx, func(ctx context.Context, s *Session) error {
		return c.send(ctx, s, cmd)
	})
}

// ReadNext returns the next line that is not a heartbeat echo.
func (c *Client) ReadNext(ctx context.Context) (Response, error) {
	var resp Response
	err := c.do(ctx, func(ctx context.Context, s *Session) error {
		var err error
		resp, err = c.readNext(ctx, s)
		return err
	})
	return resp, err
}

// RequestRead sends cmd and returns the data section of its reply. Nothing
// else touches the session between the write and the read.
func (c *Client) RequestRead(ctx context.Context, cmd Command) (json.RawMessage, error) {
	var resp Response
	err := c.do(ctx, func(ctx context.Context, s *Session) error {
		if err := c.send(ctx, s, cmd); err != nil {
			return err
		}
		var err error
		resp, err = c.readNext(ctx, s)
		return err
	})
	if err != nil {
		return nil, err
	}

	data, ok := resp.Data()
	if !ok {
		return nil, fmt.Errorf("%w: reply to request type %d has no data", device.ErrMalformedResponse, cmd.RequestType)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, s *Session, cmd Command) error {
	if err := s.writeFrame(ctx, Encode(cmd, s.token)); err != nil {
		return err
	}
	c.metrics.FramesSent.WithLabelValues(strconv.Itoa(cmd.RequestType)).Inc()
	log.Debug().Int("request_type", cmd.RequestType).Msg("Frame sent")
	return nil
}

// readNext skips heartbeat echoes. One deadline covers the whole loop so an
// endless echo stream still times out.
func (c *Client) readNext(ctx context.Context, s *Session) (Response, error) {
	until := deadline(ctx, c.cfg.ReadTimeout)
	for {
		line, err := s.readLine(ctx, until)
		if err != nil {
			return Response{}, err
		}

		resp, err := Decode(line)
		if err != nil {
			return Response{}, err
		}
		if resp.IsEcho() {
			c.metrics.EchoesDiscarded.Inc()
			log.Debug().Msg("Discarded heartbeat echo")
			continue
		}
		return resp, nil
	}
}
