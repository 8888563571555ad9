// Package feed implements a client for the remote feed service that streams
// blocks and milestones over a websocket.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Handler is called for every decoded event in the order they arrive.
type Handler func(ctx context.Context, evt Event) error

// EventHandler defines a function that is called when events occur in the
// processing of the feed.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the client.
type Config struct {
	URL        string
	Topics     []string
	Handler    Handler
	EvHandler  EventHandler
	MaxBackoff time.Duration
	Dialer     *websocket.Dialer
}

// Client maintains a subscription to the feed service, reconnecting with
// exponential backoff when the connection drops.
type Client struct {
	url        string
	topics     []string
	handler    Handler
	evHandler  EventHandler
	maxBackoff time.Duration
	dialer     *websocket.Dialer
}

// New constructs a client for the feed service.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("feed url is required")
	}

	if cfg.Handler == nil {
		return nil, errors.New("feed handler is required")
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	topics := cfg.Topics
	if len(topics) == 0 {
		topics = []string{TypeBlock, TypeMilestone}
	}

	c := Client{
		url:        cfg.URL,
		topics:     topics,
		handler:    cfg.Handler,
		evHandler:  ev,
		maxBackoff: cfg.MaxBackoff,
		dialer:     dialer,
	}

	return &c, nil
}

// Run connects to the feed and processes events until the context is
// cancelled. Connection failures are retried forever.
func (c *Client) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	if c.maxBackoff > 0 {
		bo.MaxInterval = c.maxBackoff
		if bo.InitialInterval > c.maxBackoff {
			bo.InitialInterval = c.maxBackoff
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.evHandler("feed: run: dial: %s: ERROR: %s", c.url, err)
			if err := wait(ctx, bo.NextBackOff()); err != nil {
				return err
			}
			continue
		}

		bo.Reset()
		c.evHandler("feed: run: connected: %s", c.url)

		err = c.session(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.evHandler("feed: run: disconnected: %s: %s", c.url, err)

		if err := wait(ctx, bo.NextBackOff()); err != nil {
			return err
		}
	}
}

// =============================================================================

// session subscribes to the configured topics and reads frames until the
// connection fails or the context is cancelled.
func (c *Client) session(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)

	// Unblock the read below when the context is cancelled.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	data, err := json.Marshal(subscribe{Subscribe: c.topics})
	if err != nil {
		return fmt.Errorf("marshal subscribe: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write subscribe: %w", err)
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		evt, err := Decode(frame)
		if err != nil {
			c.evHandler("feed: session: decode: ERROR: %s", err)
			continue
		}

		if err := c.handler(ctx, evt); err != nil {
			c.evHandler("feed: session: handle %s: ERROR: %s", evt.Type, err)
		}
	}
}

// wait blocks for the duration or until the context is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	if d == backoff.Stop {
		return errors.New("backoff stopped")
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
