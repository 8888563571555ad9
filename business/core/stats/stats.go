// Package stats provides the core business API for milestone statistics
// and token supply figures.
package stats

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/ardanlabs/explorer/foundation/feed"
	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Set of topics events are published under.
const (
	TopicBlocks     = "blocks"
	TopicMilestones = "milestones"
)

// Set of default values for the core configuration.
const (
	defaultWindow     = 100
	defaultRatePeriod = 10 * time.Second
	ratePlaces        = 2
)

// PercentPlaces is the number of decimal places percentages are computed
// and stored with.
const PercentPlaces = 2

// ErrNotFound is returned when a milestone is not known.
var ErrNotFound = errors.New("milestone not found")

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	Create(ctx context.Context, ms Milestone) error
	QueryByIndex(ctx context.Context, index uint32) (Milestone, error)
	Query(ctx context.Context, pageNumber int, rowsPerPage int) ([]Milestone, error)
}

// Sender interface declares the behavior this package needs to publish
// events to subscribers.
type Sender interface {
	Send(topic string, msg string)
}

// Config represents the configuration required to construct the core.
type Config struct {
	Log        *zap.SugaredLogger
	Storer     Storer
	Sender     Sender
	Token      units.Token
	Window     int
	RatePeriod time.Duration
	Now        func() time.Time
}

// Core manages the set of APIs for milestone statistics.
type Core struct {
	log        *zap.SugaredLogger
	storer     Storer
	sender     Sender
	token      units.Token
	window     int
	ratePeriod time.Duration
	now        func() time.Time

	mu         sync.RWMutex
	milestones []Milestone
	arrivals   []time.Time
}

// NewCore constructs a core for milestone statistics api access.
func NewCore(cfg Config) *Core {
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}

	ratePeriod := cfg.RatePeriod
	if ratePeriod <= 0 {
		ratePeriod = defaultRatePeriod
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Core{
		log:        cfg.Log,
		storer:     cfg.Storer,
		sender:     cfg.Sender,
		token:      cfg.Token,
		window:     window,
		ratePeriod: ratePeriod,
		now:        now,
	}
}

// LoadWindow fills the in-memory window with the most recent milestones
// from storage so a restarted service can answer for the latest milestone
// before the feed delivers a new one.
func (c *Core) LoadWindow(ctx context.Context) error {
	mss, err := c.storer.Query(ctx, 1, c.window)
	if err != nil {
		return fmt.Errorf("load window: %w", err)
	}

	// Storage returns newest first and the window is kept oldest first.
	window := make([]Milestone, len(mss))
	for i, ms := range mss {
		window[len(mss)-1-i] = ms
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.milestones = window
	return nil
}

// ApplyMilestone computes the statistics for a milestone from the feed,
// stores them and publishes them to subscribers.
func (c *Core) ApplyMilestone(ctx context.Context, fms feed.Milestone) (Milestone, error) {
	claimed, err := feed.Amount(fms.Claimed)
	if err != nil {
		return Milestone{}, fmt.Errorf("claimed: %w", err)
	}

	total, err := feed.Amount(fms.TotalSupply)
	if err != nil {
		return Milestone{}, fmt.Errorf("total supply: %w", err)
	}

	rate, err := percentage(big.NewInt(int64(fms.IncludedBlocks)), big.NewInt(int64(fms.ReferencedBlocks)), ratePlaces)
	if err != nil {
		return Milestone{}, fmt.Errorf("confirmation rate: %w", err)
	}

	claimedPercent, err := percentage(claimed, total, PercentPlaces)
	if err != nil {
		return Milestone{}, fmt.Errorf("claimed percent: %w", err)
	}

	ms := Milestone{
		Index:            fms.Index,
		ID:               fms.MilestoneID,
		Timestamp:        time.Unix(fms.Timestamp, 0).UTC(),
		IncludedBlocks:   fms.IncludedBlocks,
		ReferencedBlocks: fms.ReferencedBlocks,
		ConfirmationRate: rate,
		Claimed:          claimed,
		TotalSupply:      total,
		ClaimedPercent:   claimedPercent,
	}

	if err := c.storer.Create(ctx, ms); err != nil {
		return Milestone{}, fmt.Errorf("create: %w", err)
	}

	c.mu.Lock()
	{
		c.milestones = append(c.milestones, ms)
		if len(c.milestones) > c.window {
			c.milestones = c.milestones[len(c.milestones)-c.window:]
		}
	}
	c.mu.Unlock()

	c.publish(TopicMilestones, c.View(ms))

	return ms, nil
}

// ApplyBlock records the arrival of a block and publishes it to subscribers.
func (c *Core) ApplyBlock(ctx context.Context, blk feed.Block) error {
	var value string
	if blk.Value != "" {
		amount, err := feed.Amount(blk.Value)
		if err != nil {
			return fmt.Errorf("value: %w", err)
		}
		value = c.token.Format(amount)
	}

	now := c.now()

	c.mu.Lock()
	{
		c.arrivals = append(c.arrivals, now)
		c.arrivals = prune(c.arrivals, now.Add(-c.ratePeriod))
	}
	c.mu.Unlock()

	c.publish(TopicBlocks, toBlockView(blk, value))

	return nil
}

// BlocksPerSecond returns the block arrival rate over the rate period.
func (c *Core) BlocksPerSecond() decimal.Decimal {
	now := c.now()

	c.mu.Lock()
	c.arrivals = prune(c.arrivals, now.Add(-c.ratePeriod))
	count := len(c.arrivals)
	c.mu.Unlock()

	bps, err := decimal.Parse(strconv.Itoa(count), ratePlaces, true)
	if err != nil {
		return decimal.Decimal{}
	}

	seconds := decimal.FromInt64(c.ratePeriod.Milliseconds(), 3, false)
	bps, err = bps.Div(seconds.String())
	if err != nil {
		return decimal.Decimal{}
	}

	return bps
}

// Latest returns the most recent milestone applied.
func (c *Core) Latest() (Milestone, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.milestones) == 0 {
		return Milestone{}, ErrNotFound
	}

	return c.milestones[len(c.milestones)-1], nil
}

// Window returns a copy of the milestones kept in memory, oldest first.
func (c *Core) Window() []Milestone {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cpy := make([]Milestone, len(c.milestones))
	copy(cpy, c.milestones)
	return cpy
}

// QueryByIndex retrieves a milestone from storage.
func (c *Core) QueryByIndex(ctx context.Context, index uint32) (Milestone, error) {
	ms, err := c.storer.QueryByIndex(ctx, index)
	if err != nil {
		return Milestone{}, fmt.Errorf("query: index[%d]: %w", index, err)
	}

	return ms, nil
}

// Query retrieves a page of milestones from storage, newest first.
func (c *Core) Query(ctx context.Context, pageNumber int, rowsPerPage int) ([]Milestone, error) {
	mss, err := c.storer.Query(ctx, pageNumber, rowsPerPage)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return mss, nil
}

// View converts a milestone into the form published to subscribers.
func (c *Core) View(ms Milestone) MilestoneView {
	return MilestoneView{
		Index:            ms.Index,
		ID:               ms.ID,
		Timestamp:        ms.Timestamp.Unix(),
		IncludedBlocks:   ms.IncludedBlocks,
		ReferencedBlocks: ms.ReferencedBlocks,
		ConfirmationRate: ms.ConfirmationRate,
		Claimed:          ms.Claimed.String(),
		TotalSupply:      ms.TotalSupply.String(),
		ClaimedPercent:   ms.ClaimedPercent,
		ClaimedDisplay:   c.token.Format(ms.Claimed),
	}
}

// =============================================================================

func (c *Core) publish(topic string, v any) {
	if c.sender == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		if c.log != nil {
			c.log.Errorw("publish", "topic", topic, "ERROR", err)
		}
		return
	}

	c.sender.Send(topic, string(data))
}

// percentage treats a zero total as a zero percentage since the feed reports
// milestones without referenced blocks or supply figures.
func percentage(part *big.Int, total *big.Int, places int) (decimal.Decimal, error) {
	if total.Sign() == 0 {
		return decimal.FromInt64(0, places, true), nil
	}

	return units.Percentage(part, total, places)
}

// prune removes the arrivals before the cutoff. Arrivals are in order.
func prune(arrivals []time.Time, cutoff time.Time) []time.Time {
	var i int
	for i < len(arrivals) && arrivals[i].Before(cutoff) {
		i++
	}
	return arrivals[i:]
}
