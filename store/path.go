// Package store reads recorded challenge data (raw event logs and NPC
// tables) out of a backing object store, addressed by challenge UUID
// and stage. It never parses the bytes it retrieves; that is the
// Decoder's job (see decoder.go) — the external binary event decoder
// lives outside this module's scope.
package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/types"
)

// challengeFileName is the name of the file holding a challenge's
// metadata blob within its directory.
const challengeFileName = "challenge"

// RelativePath builds the backend-relative path for a file belonging
// to challenge id: the first two hex characters of the UUID, then the
// undashed UUID, then the file name — matching the on-disk layout the
// event repository has always used.
func RelativePath(id uuid.UUID, fileName string) string {
	undashed := strings.ReplaceAll(id.String(), "-", "")
	return undashed[:2] + "/" + undashed + "/" + fileName
}

// ChallengeMetadataPath is the relative path to a challenge's metadata
// blob.
func ChallengeMetadataPath(id uuid.UUID) string {
	return RelativePath(id, challengeFileName)
}

// StageFileName returns the on-disk file name for a stage's recorded
// event log. Theatre of Blood and Colosseum names are taken directly
// from the upstream event repository; Chambers of Xeric and Tombs of
// Amascut names extend the same convention for stages this engine
// added support for.
func StageFileName(stage types.Stage) (string, error) {
	switch stage {
	case types.StageTobMaiden:
		return "maiden", nil
	case types.StageTobBloat:
		return "bloat", nil
	case types.StageTobNylocas:
		return "nylocas", nil
	case types.StageTobSotetseg:
		return "sotetseg", nil
	case types.StageTobXarpus:
		return "xarpus", nil
	case types.StageTobVerzik:
		return "verzik", nil

	case types.StageCoxTekton:
		return "tekton", nil
	case types.StageCoxCrabs:
		return "crabs", nil
	case types.StageCoxIceDemon:
		return "ice-demon", nil
	case types.StageCoxShamans:
		return "shamans", nil
	case types.StageCoxVanguards:
		return "vanguards", nil
	case types.StageCoxThieving:
		return "thieving", nil
	case types.StageCoxVespula:
		return "vespula", nil
	case types.StageCoxTightrope:
		return "tightrope", nil
	case types.StageCoxGuardians:
		return "guardians", nil
	case types.StageCoxVasa:
		return "vasa", nil
	case types.StageCoxMystics:
		return "mystics", nil
	case types.StageCoxMuttadile:
		return "muttadile", nil
	case types.StageCoxOlm:
		return "olm", nil

	case types.StageToaApmeken:
		return "apmeken", nil
	case types.StageToaBaba:
		return "baba", nil
	case types.StageToaScabaras:
		return "scabaras", nil
	case types.StageToaKephri:
		return "kephri", nil
	case types.StageToaHet:
		return "het", nil
	case types.StageToaAkkha:
		return "akkha", nil
	case types.StageToaCrondis:
		return "crondis", nil
	case types.StageToaZebak:
		return "zebak", nil
	case types.StageToaWardens:
		return "wardens", nil

	case types.StageColosseumWave1:
		return "wave-1", nil
	case types.StageColosseumWave2:
		return "wave-2", nil
	case types.StageColosseumWave3:
		return "wave-3", nil
	case types.StageColosseumWave4:
		return "wave-4", nil
	case types.StageColosseumWave5:
		return "wave-5", nil
	case types.StageColosseumWave6:
		return "wave-6", nil
	case types.StageColosseumWave7:
		return "wave-7", nil
	case types.StageColosseumWave8:
		return "wave-8", nil
	case types.StageColosseumWave9:
		return "wave-9", nil
	case types.StageColosseumWave10:
		return "wave-10", nil
	case types.StageColosseumWave11:
		return "wave-11", nil
	case types.StageColosseumWave12:
		return "wave-12", nil

	default:
		return "", types.InvalidField("stage")
	}
}

// StageEventsPath is the relative path to a stage's recorded event
// log within challenge id's directory.
func StageEventsPath(id uuid.UUID, stage types.Stage) (string, error) {
	name, err := StageFileName(stage)
	if err != nil {
		return "", err
	}
	return RelativePath(id, name), nil
}

// rawStageOrder lists every types.Stage this engine knows about, in
// the same order the decoder emits raw stage identifiers. A decoder
// producing schema.ChallengeEvents never imports types (see
// schema.ChallengeEvents.Stage), so this table is the single place
// that maps its raw integers back onto types.Stage.
var rawStageOrder = []types.Stage{
	types.StageUnknown,
	types.StageTobMaiden, types.StageTobBloat, types.StageTobNylocas,
	types.StageTobSotetseg, types.StageTobXarpus, types.StageTobVerzik,
	types.StageCoxTekton, types.StageCoxCrabs, types.StageCoxIceDemon,
	types.StageCoxShamans, types.StageCoxVanguards, types.StageCoxThieving,
	types.StageCoxVespula, types.StageCoxTightrope, types.StageCoxGuardians,
	types.StageCoxVasa, types.StageCoxMystics, types.StageCoxMuttadile,
	types.StageCoxOlm,
	types.StageToaApmeken, types.StageToaBaba, types.StageToaScabaras,
	types.StageToaKephri, types.StageToaHet, types.StageToaAkkha,
	types.StageToaCrondis, types.StageToaZebak, types.StageToaWardens,
	types.StageColosseumWave1, types.StageColosseumWave2, types.StageColosseumWave3,
	types.StageColosseumWave4, types.StageColosseumWave5, types.StageColosseumWave6,
	types.StageColosseumWave7, types.StageColosseumWave8, types.StageColosseumWave9,
	types.StageColosseumWave10, types.StageColosseumWave11, types.StageColosseumWave12,
}

// ParseStage maps a schema.ChallengeEvents.Stage raw identifier onto
// its types.Stage.
func ParseStage(raw int) (types.Stage, error) {
	if raw < 0 || raw >= len(rawStageOrder) {
		return types.StageUnknown, types.InvalidField("stage")
	}
	return rawStageOrder[raw], nil
}
