package main

import (
	"errors"

	"github.com/raidreplay/tobengine/schema"
	"github.com/raidreplay/tobengine/store"
)

// errDecoderNotConfigured is returned until a deployment wires in its
// own store.Decoder. The binary event format is produced by the game
// client's own event recorder, entirely outside this module's scope
// (see store.Decoder); this binary has nothing to decode it with
// until a deployment supplies one.
var errDecoderNotConfigured = errors.New("no store.Decoder configured: wire one into newDecoder before deploying")

// unconfiguredDecoder satisfies store.Decoder by failing every call,
// so a missing deployment-supplied decoder surfaces as a clean error
// from the first stage-load attempt instead of a nil-pointer panic.
type unconfiguredDecoder struct{}

func (unconfiguredDecoder) DecodeEvents([]byte) (schema.ChallengeEvents, error) {
	return schema.ChallengeEvents{}, errDecoderNotConfigured
}

func (unconfiguredDecoder) DecodeChallengeData([]byte) (schema.ChallengeData, error) {
	return schema.ChallengeData{}, errDecoderNotConfigured
}

// newDecoder is the extension point a deployment fills in with its
// own binary event decoder before building this binary. Left
// unconfigured, any command that needs to read recorded stage events
// fails fast with errDecoderNotConfigured rather than silently
// returning empty data.
func newDecoder() (store.Decoder, error) {
	return unconfiguredDecoder{}, errDecoderNotConfigured
}
