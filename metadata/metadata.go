// Package metadata reads a challenge's relational header rows: the
// challenges table (type, mode, status, reached stage) and the
// challenge_players table (party order). Both tables are owned by an
// external service; this package only knows the two queries it runs
// against them.
package metadata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/store"
	"github.com/raidreplay/tobengine/types"
)

// ChallengeRow is the decoded shape of a single challenges row.
type ChallengeRow struct {
	ID     int64
	UUID   uuid.UUID
	Type   types.ChallengeType
	Mode   types.ChallengeMode
	Status types.Status
	Stage  types.Stage
}

// Store runs the two metadata queries the challenge loader needs
// against a relational backend. DB is any *sql.DB opened with a
// driver registered under "postgres" (github.com/lib/pq).
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// LoadChallengeRow fetches the challenges row for id, converting its
// wire-level integer columns into engine types. A missing row is
// reported as a NotFound error; a column value outside its enum's
// known range is reported as an InvalidField error rather than
// silently coerced.
func (s *Store) LoadChallengeRow(ctx context.Context, id uuid.UUID) (*ChallengeRow, error) {
	const query = `SELECT id, uuid, type, mode, status, stage FROM challenges WHERE uuid = $1`

	row := s.DB.QueryRowContext(ctx, query, id)

	var (
		rowID      int64
		parsedUUID uuid.UUID
		rawType    int16
		rawMode    int16
		rawStatus  int16
		rawStage   int
	)
	if err := row.Scan(&rowID, &parsedUUID, &rawType, &rawMode, &rawStatus, &rawStage); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NotFound(fmt.Sprintf("challenge %s", id))
		}
		return nil, fmt.Errorf("load challenge row: %w", err)
	}

	challengeType, err := types.ParseChallengeType(rawType)
	if err != nil {
		return nil, err
	}
	mode, err := types.ParseChallengeMode(rawMode)
	if err != nil {
		return nil, err
	}
	status, err := types.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	stage, err := store.ParseStage(rawStage)
	if err != nil {
		return nil, err
	}

	return &ChallengeRow{
		ID:     rowID,
		UUID:   parsedUUID,
		Type:   challengeType,
		Mode:   mode,
		Status: status,
		Stage:  stage,
	}, nil
}

// LoadPartyOrder fetches a challenge's party in presentation order.
func (s *Store) LoadPartyOrder(ctx context.Context, challengeID int64) ([]string, error) {
	const query = `SELECT username FROM challenge_players WHERE challenge_id = $1 ORDER BY orb ASC`

	rows, err := s.DB.QueryContext(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("load party order: %w", err)
	}
	defer rows.Close()

	var party []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("load party order: %w", err)
		}
		party = append(party, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load party order: %w", err)
	}
	if len(party) == 0 {
		return nil, types.NotFound(fmt.Sprintf("party for challenge %d", challengeID))
	}
	return party, nil
}
