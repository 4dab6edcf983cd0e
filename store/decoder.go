package store

import "github.com/raidreplay/tobengine/schema"

// Decoder turns the raw bytes a Backend returns into decoded schema
// shapes. The binary event format is produced by the game-client
// event recorder, entirely outside this module's scope; callers
// supply whichever Decoder matches their deployment's wire format.
type Decoder interface {
	DecodeEvents(raw []byte) (schema.ChallengeEvents, error)
	DecodeChallengeData(raw []byte) (schema.ChallengeData, error)
}

// Repository composes a Backend and a Decoder into the single entry
// point the challenge package uses to fetch a stage's reconstructed
// event log.
type Repository struct {
	Backend Backend
	Decoder Decoder
}

func NewRepository(backend Backend, decoder Decoder) *Repository {
	return &Repository{Backend: backend, Decoder: decoder}
}
