package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/schema"
	"github.com/raidreplay/tobengine/types"
)

// LoadStageEvents fetches and decodes a challenge's recorded event log
// for one stage.
func (r *Repository) LoadStageEvents(ctx context.Context, id uuid.UUID, stage types.Stage) (schema.ChallengeEvents, error) {
	path, err := StageEventsPath(id, stage)
	if err != nil {
		return schema.ChallengeEvents{}, err
	}

	raw, err := r.Backend.Get(ctx, path)
	if err != nil {
		return schema.ChallengeEvents{}, err
	}

	return r.Decoder.DecodeEvents(raw)
}

// LoadChallengeData fetches and decodes a challenge's per-room NPC
// tables.
func (r *Repository) LoadChallengeData(ctx context.Context, id uuid.UUID) (schema.ChallengeData, error) {
	raw, err := r.Backend.Get(ctx, ChallengeMetadataPath(id))
	if err != nil {
		return schema.ChallengeData{}, err
	}
	return r.Decoder.DecodeChallengeData(raw)
}
