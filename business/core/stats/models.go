package stats

import (
	"math/big"
	"time"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/ardanlabs/explorer/foundation/feed"
)

// Milestone represents the statistics computed for a milestone.
type Milestone struct {
	Index            uint32
	ID               string
	Timestamp        time.Time
	IncludedBlocks   int
	ReferencedBlocks int
	ConfirmationRate decimal.Decimal
	Claimed          *big.Int
	TotalSupply      *big.Int
	ClaimedPercent   decimal.Decimal
}

// BlockView is what is published to subscribers for every block. The value
// is already formatted in display units for the visualizer.
type BlockView struct {
	BlockID     string   `json:"blockId"`
	Parents     []string `json:"parents"`
	PayloadType string   `json:"payloadType"`
	Value       string   `json:"value,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// MilestoneView is the published and API form of a milestone.
type MilestoneView struct {
	Index            uint32          `json:"index"`
	ID               string          `json:"milestoneId"`
	Timestamp        int64           `json:"timestamp"`
	IncludedBlocks   int             `json:"includedBlocks"`
	ReferencedBlocks int             `json:"referencedBlocks"`
	ConfirmationRate decimal.Decimal `json:"confirmationRate"`
	Claimed          string          `json:"claimed"`
	TotalSupply      string          `json:"totalSupply"`
	ClaimedPercent   decimal.Decimal `json:"claimedPercent"`
	ClaimedDisplay   string          `json:"claimedDisplay"`
}

// =============================================================================

func toBlockView(blk feed.Block, value string) BlockView {
	return BlockView{
		BlockID:     blk.BlockID,
		Parents:     blk.Parents,
		PayloadType: blk.PayloadType,
		Value:       value,
		Timestamp:   blk.Timestamp,
	}
}
