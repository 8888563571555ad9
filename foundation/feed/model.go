package feed

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goccy/go-json"
)

// Set of event types delivered by the feed service.
const (
	TypeBlock     = "block"
	TypeMilestone = "milestone"
)

// Set of error variables for decoding feed frames.
var (
	ErrUnknownType   = errors.New("unknown event type")
	ErrInvalidID     = errors.New("invalid identifier")
	ErrInvalidAmount = errors.New("invalid amount")
)

// idLength is the number of bytes in block and milestone identifiers.
const idLength = 32

// Block represents a block attached to the tangle.
type Block struct {
	BlockID     string   `json:"blockId"`
	Parents     []string `json:"parents"`
	PayloadType string   `json:"payloadType"`
	Value       string   `json:"value,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// Milestone represents a milestone issued by the coordinator along with the
// supply figures known at that point.
type Milestone struct {
	Index            uint32 `json:"index"`
	MilestoneID      string `json:"milestoneId"`
	Timestamp        int64  `json:"timestamp"`
	IncludedBlocks   int    `json:"includedBlocks"`
	ReferencedBlocks int    `json:"referencedBlocks"`
	Claimed          string `json:"claimed"`
	TotalSupply      string `json:"totalSupply"`
}

// Event is a decoded frame. Only the field matching Type is set.
type Event struct {
	Type      string
	Block     *Block
	Milestone *Milestone
}

// envelope is the wire form of every frame.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// subscribe is the request sent after connecting.
type subscribe struct {
	Subscribe []string `json:"subscribe"`
}

// Decode converts a text frame into an event, validating identifiers and
// amounts.
func Decode(frame []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Event{}, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case TypeBlock:
		var blk Block
		if err := json.Unmarshal(env.Data, &blk); err != nil {
			return Event{}, fmt.Errorf("decode block: %w", err)
		}
		if err := blk.validate(); err != nil {
			return Event{}, err
		}
		return Event{Type: TypeBlock, Block: &blk}, nil

	case TypeMilestone:
		var ms Milestone
		if err := json.Unmarshal(env.Data, &ms); err != nil {
			return Event{}, fmt.Errorf("decode milestone: %w", err)
		}
		if err := ms.validate(); err != nil {
			return Event{}, err
		}
		return Event{Type: TypeMilestone, Milestone: &ms}, nil
	}

	return Event{}, fmt.Errorf("type %q: %w", env.Type, ErrUnknownType)
}

// =============================================================================

func (blk Block) validate() error {
	if err := checkID(blk.BlockID); err != nil {
		return fmt.Errorf("block id: %w", err)
	}

	for _, parent := range blk.Parents {
		if err := checkID(parent); err != nil {
			return fmt.Errorf("block %s parent: %w", blk.BlockID, err)
		}
	}

	if blk.Value != "" {
		if _, err := Amount(blk.Value); err != nil {
			return fmt.Errorf("block %s: %w", blk.BlockID, err)
		}
	}

	return nil
}

func (ms Milestone) validate() error {
	if err := checkID(ms.MilestoneID); err != nil {
		return fmt.Errorf("milestone %d id: %w", ms.Index, err)
	}

	if ms.IncludedBlocks < 0 || ms.ReferencedBlocks < 0 {
		return fmt.Errorf("milestone %d: negative block counts", ms.Index)
	}

	for _, amount := range []string{ms.Claimed, ms.TotalSupply} {
		if _, err := Amount(amount); err != nil {
			return fmt.Errorf("milestone %d: %w", ms.Index, err)
		}
	}

	return nil
}

// Amount converts a base unit amount from the feed into an integer. Amounts
// are non-negative base 10 integers.
func Amount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidAmount)
	}
	return n, nil
}

// checkID validates a 0x prefixed hex identifier.
func checkID(id string) error {
	b, err := hexutil.Decode(id)
	if err != nil {
		return fmt.Errorf("%q: %s: %w", id, err, ErrInvalidID)
	}

	if len(b) != idLength {
		return fmt.Errorf("%q: got %d bytes: %w", id, len(b), ErrInvalidID)
	}

	return nil
}
