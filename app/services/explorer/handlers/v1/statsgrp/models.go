package statsgrp

import (
	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/ardanlabs/explorer/foundation/decimal"
)

// AppSummary is the current state of the network as seen by the explorer.
type AppSummary struct {
	Latest          *stats.MilestoneView `json:"latest,omitempty"`
	BlocksPerSecond decimal.Decimal      `json:"blocksPerSecond"`
	Subscribers     int                  `json:"subscribers"`
}
