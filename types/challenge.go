package types

import "github.com/google/uuid"

// Challenge is one recorded play-through: immutable once constructed,
// shared by pointer across every analyzer run against it.
type Challenge struct {
	UUID   uuid.UUID
	Type   ChallengeType
	Mode   ChallengeMode
	Status Status
	Stage  Stage
	Party  []string

	stages []*StageInfo
}

// NewChallenge constructs an immutable Challenge. stages must already
// be sorted ascending by Stage and cover every stage from the type's
// first stage to stage, inclusive (the challenge package enforces
// this).
func NewChallenge(id uuid.UUID, typ ChallengeType, mode ChallengeMode, status Status, stage Stage, party []string, stages []*StageInfo) *Challenge {
	return &Challenge{
		UUID:   id,
		Type:   typ,
		Mode:   mode,
		Status: status,
		Stage:  stage,
		Party:  party,
		stages: stages,
	}
}

// Scale is the number of players in the challenge.
func (c *Challenge) Scale() int { return len(c.Party) }

// StageInfos returns every stage's reconstructed data, in ascending
// stage order.
func (c *Challenge) StageInfos() []*StageInfo { return c.stages }

// StageInfo returns the reconstructed data for a specific stage, or
// nil if the challenge never reached it.
func (c *Challenge) StageInfo(stage Stage) *StageInfo {
	for _, info := range c.stages {
		if info.Stage == stage {
			return info
		}
	}
	return nil
}
