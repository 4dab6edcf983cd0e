// Package challenge composes the relational metadata store with the
// per-stage event repository into a single immutable types.Challenge,
// ready for analyzers to run against.
package challenge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/metadata"
	"github.com/raidreplay/tobengine/replay"
	"github.com/raidreplay/tobengine/schema"
	"github.com/raidreplay/tobengine/store"
	"github.com/raidreplay/tobengine/types"
)

// MetadataStore is the subset of *metadata.Store the loader needs,
// narrowed to an interface so tests can supply a fake without opening
// a real database connection.
type MetadataStore interface {
	LoadChallengeRow(ctx context.Context, id uuid.UUID) (*metadata.ChallengeRow, error)
	LoadPartyOrder(ctx context.Context, challengeID int64) ([]string, error)
}

// Loader loads a challenge by composing a relational metadata store
// with an event repository.
type Loader struct {
	Metadata   MetadataStore
	Repository *store.Repository
}

func NewLoader(metadataStore MetadataStore, repository *store.Repository) *Loader {
	return &Loader{Metadata: metadataStore, Repository: repository}
}

// Load fetches and reconstructs a challenge: its metadata row, its
// party order, and every stage from the type's first stage up to the
// reached stage, inclusive.
func (l *Loader) Load(ctx context.Context, id uuid.UUID) (*types.Challenge, error) {
	row, err := l.Metadata.LoadChallengeRow(ctx, id)
	if err != nil {
		return nil, err
	}

	party, err := l.Metadata.LoadPartyOrder(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	firstStage, err := types.FirstStage(row.Type)
	if err != nil {
		return nil, err
	}

	challengeData, err := l.loadChallengeData(ctx, id)
	if err != nil {
		return nil, err
	}

	var stages []*types.StageInfo
	for s := int(firstStage); s <= int(row.Stage); s++ {
		stage := types.Stage(s)

		stageInfo, err := l.loadStage(ctx, id, stage, party, challengeData)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stageInfo)
	}

	return types.NewChallenge(id, row.Type, row.Mode, row.Status, row.Stage, party, stages), nil
}

func (l *Loader) loadChallengeData(ctx context.Context, id uuid.UUID) (*schema.ChallengeData, error) {
	data, err := l.Repository.LoadChallengeData(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load challenge metadata: %w", err)
	}
	return &data, nil
}

func (l *Loader) loadStage(ctx context.Context, id uuid.UUID, stage types.Stage, party []string, challengeData *schema.ChallengeData) (*types.StageInfo, error) {
	stageEvents, err := l.Repository.LoadStageEvents(ctx, id, stage)
	if err != nil {
		return nil, fmt.Errorf("load stage %d events: %w", stage, err)
	}

	npcs := npcTableByRoomID(replay.StageData(challengeData, stage))

	return replay.Build(stage, party, stageEvents.Events, npcs)
}

// npcTableByRoomID indexes a stage's NPC list by room id, the key the
// replay package's player-state reconstruction looks targets up by.
func npcTableByRoomID(npcs *schema.RoomNpcs) map[uint64]*schema.StageNpc {
	if npcs == nil {
		return nil
	}
	table := make(map[uint64]*schema.StageNpc, len(npcs.Npcs))
	for i := range npcs.Npcs {
		table[npcs.Npcs[i].RoomID] = &npcs.Npcs[i]
	}
	return table
}
