package db

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/ardanlabs/explorer/foundation/decimal"
)

// dbMilestone represents a milestone row. Amounts and percentages are kept
// as decimal strings so their exact value round trips.
type dbMilestone struct {
	Index            int64
	ID               string
	Timestamp        int64
	IncludedBlocks   int
	ReferencedBlocks int
	ConfirmationRate string
	Claimed          string
	TotalSupply      string
	ClaimedPercent   string
}

func toDBMilestone(ms stats.Milestone) dbMilestone {
	return dbMilestone{
		Index:            int64(ms.Index),
		ID:               ms.ID,
		Timestamp:        ms.Timestamp.Unix(),
		IncludedBlocks:   ms.IncludedBlocks,
		ReferencedBlocks: ms.ReferencedBlocks,
		ConfirmationRate: ms.ConfirmationRate.String(),
		Claimed:          ms.Claimed.String(),
		TotalSupply:      ms.TotalSupply.String(),
		ClaimedPercent:   ms.ClaimedPercent.String(),
	}
}

func toCoreMilestone(dbMS dbMilestone, places int) (stats.Milestone, error) {
	claimed, ok := new(big.Int).SetString(dbMS.Claimed, 10)
	if !ok {
		return stats.Milestone{}, fmt.Errorf("milestone[%d]: claimed %q", dbMS.Index, dbMS.Claimed)
	}

	total, ok := new(big.Int).SetString(dbMS.TotalSupply, 10)
	if !ok {
		return stats.Milestone{}, fmt.Errorf("milestone[%d]: total supply %q", dbMS.Index, dbMS.TotalSupply)
	}

	rate, err := decimal.Parse(dbMS.ConfirmationRate, places, true)
	if err != nil {
		return stats.Milestone{}, fmt.Errorf("milestone[%d]: confirmation rate: %w", dbMS.Index, err)
	}

	percent, err := decimal.Parse(dbMS.ClaimedPercent, places, true)
	if err != nil {
		return stats.Milestone{}, fmt.Errorf("milestone[%d]: claimed percent: %w", dbMS.Index, err)
	}

	ms := stats.Milestone{
		Index:            uint32(dbMS.Index),
		ID:               dbMS.ID,
		Timestamp:        time.Unix(dbMS.Timestamp, 0).UTC(),
		IncludedBlocks:   dbMS.IncludedBlocks,
		ReferencedBlocks: dbMS.ReferencedBlocks,
		ConfirmationRate: rate,
		Claimed:          claimed,
		TotalSupply:      total,
		ClaimedPercent:   percent,
	}

	return ms, nil
}
