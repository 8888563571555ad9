// Package statsgrp maintains the group of handlers for milestone statistics
// and the live event stream.
package statsgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/ardanlabs/explorer/business/sys/metrics"
	"github.com/ardanlabs/explorer/business/web/errs"
	"github.com/ardanlabs/explorer/foundation/events"
	"github.com/ardanlabs/explorer/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Set of limits for paging through milestones.
const (
	defaultRows = 20
	maxRows     = 100
)

// Handlers manages the set of statistics endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Stats *stats.Core
	Evts  *events.Events
	WS    websocket.Upgrader
}

// Summary returns the latest milestone along with the current block rate.
func (h Handlers) Summary(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := AppSummary{
		BlocksPerSecond: h.Stats.BlocksPerSecond(),
		Subscribers:     h.Evts.Count(),
	}

	ms, err := h.Stats.Latest()
	switch {
	case err == nil:
		view := h.Stats.View(ms)
		resp.Latest = &view
	case !errors.Is(err, stats.ErrNotFound):
		return fmt.Errorf("latest: %w", err)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Latest returns the most recent milestone.
func (h Handlers) Latest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ms, err := h.Stats.Latest()
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("latest: %w", err)
	}

	return web.Respond(ctx, w, h.Stats.View(ms), http.StatusOK)
}

// QueryByIndex returns the milestone with the specified index.
func (h Handlers) QueryByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 32)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid index: %w", err), http.StatusBadRequest)
	}

	ms, err := h.Stats.QueryByIndex(ctx, uint32(index))
	if err != nil {
		if errors.Is(err, stats.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("querybyindex: index[%d]: %w", index, err)
	}

	return web.Respond(ctx, w, h.Stats.View(ms), http.StatusOK)
}

// Query returns a page of milestones, newest first.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		return errs.NewTrusted(fmt.Errorf("invalid page: %q", r.URL.Query().Get("page")), http.StatusBadRequest)
	}

	rows, err := queryInt(r, "rows", defaultRows)
	if err != nil || rows < 1 || rows > maxRows {
		return errs.NewTrusted(fmt.Errorf("invalid rows: %q", r.URL.Query().Get("rows")), http.StatusBadRequest)
	}

	mss, err := h.Stats.Query(ctx, page, rows)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	views := make([]stats.MilestoneView, len(mss))
	for i, ms := range mss {
		views[i] = h.Stats.View(ms)
	}

	return web.Respond(ctx, w, views, http.StatusOK)
}

// Events handles a web socket to provide events to a client. The topics
// query parameter limits the events to a comma separated set of topics.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var topics []string
	if s := r.URL.Query().Get("topics"); s != "" {
		topics = strings.Split(s, ",")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the stats core.
	ch := h.Evts.Acquire(v.TraceID, topics...)
	defer h.Evts.Release(v.TraceID)

	metrics.AddWebsocketClients(1)
	defer metrics.AddWebsocketClients(-1)

	h.Log.Infow("websocket open", "traceid", v.TraceID, "topics", topics)
	defer h.Log.Infow("websocket closed", "traceid", v.TraceID)

	// This is a ticker to send a ping to keep the connection alive.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
