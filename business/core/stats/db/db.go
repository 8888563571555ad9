// Package db contains milestone related CRUD functionality against SQLite.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ardanlabs/explorer/business/core/stats"
	"go.uber.org/zap"
)

// Store manages the set of APIs for milestone access.
type Store struct {
	log    *zap.SugaredLogger
	db     *sql.DB
	places int
}

// NewStore constructs the api for data access. Percentages are read back
// with the specified number of decimal places.
func NewStore(log *zap.SugaredLogger, db *sql.DB, places int) *Store {
	return &Store{
		log:    log,
		db:     db,
		places: places,
	}
}

// Create adds a milestone to the database. A milestone with the same index
// is replaced since the feed may deliver a milestone again after a reconnect.
func (s *Store) Create(ctx context.Context, ms stats.Milestone) error {
	const q = `
	INSERT INTO milestones
		(milestone_index, milestone_id, timestamp, included_blocks, referenced_blocks,
		 confirmation_rate, claimed, total_supply, claimed_percent)
	VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (milestone_index) DO UPDATE SET
		milestone_id      = excluded.milestone_id,
		timestamp         = excluded.timestamp,
		included_blocks   = excluded.included_blocks,
		referenced_blocks = excluded.referenced_blocks,
		confirmation_rate = excluded.confirmation_rate,
		claimed           = excluded.claimed,
		total_supply      = excluded.total_supply,
		claimed_percent   = excluded.claimed_percent`

	dbMS := toDBMilestone(ms)

	if _, err := s.db.ExecContext(ctx, q,
		dbMS.Index, dbMS.ID, dbMS.Timestamp, dbMS.IncludedBlocks, dbMS.ReferencedBlocks,
		dbMS.ConfirmationRate, dbMS.Claimed, dbMS.TotalSupply, dbMS.ClaimedPercent,
	); err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}

	return nil
}

// QueryByIndex gets the specified milestone from the database.
func (s *Store) QueryByIndex(ctx context.Context, index uint32) (stats.Milestone, error) {
	const q = `
	SELECT
		milestone_index, milestone_id, timestamp, included_blocks, referenced_blocks,
		confirmation_rate, claimed, total_supply, claimed_percent
	FROM
		milestones
	WHERE
		milestone_index = ?`

	row := s.db.QueryRowContext(ctx, q, int64(index))

	dbMS, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats.Milestone{}, stats.ErrNotFound
		}
		return stats.Milestone{}, fmt.Errorf("selecting milestone[%d]: %w", index, err)
	}

	return toCoreMilestone(dbMS, s.places)
}

// Query retrieves a page of milestones from the database, newest first.
func (s *Store) Query(ctx context.Context, pageNumber int, rowsPerPage int) ([]stats.Milestone, error) {
	const q = `
	SELECT
		milestone_index, milestone_id, timestamp, included_blocks, referenced_blocks,
		confirmation_rate, claimed, total_supply, claimed_percent
	FROM
		milestones
	ORDER BY
		milestone_index DESC
	LIMIT ? OFFSET ?`

	if pageNumber < 1 {
		pageNumber = 1
	}

	offset := (pageNumber - 1) * rowsPerPage

	rows, err := s.db.QueryContext(ctx, q, rowsPerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("selecting milestones: %w", err)
	}
	defer rows.Close()

	var mss []stats.Milestone
	for rows.Next() {
		dbMS, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}

		ms, err := toCoreMilestone(dbMS, s.places)
		if err != nil {
			return nil, err
		}
		mss = append(mss, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}

	return mss, nil
}

// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (dbMilestone, error) {
	var dbMS dbMilestone
	err := row.Scan(
		&dbMS.Index, &dbMS.ID, &dbMS.Timestamp, &dbMS.IncludedBlocks, &dbMS.ReferencedBlocks,
		&dbMS.ConfirmationRate, &dbMS.Claimed, &dbMS.TotalSupply, &dbMS.ClaimedPercent,
	)
	return dbMS, err
}
