package types

// ChallengeType enumerates the supported raid/challenge content.
type ChallengeType int

const (
	ChallengeUnknown ChallengeType = iota
	ChallengeTob
	ChallengeCox
	ChallengeToa
	ChallengeColosseum
)

// ChallengeMode enumerates the variant of a ChallengeType a party
// attempted (e.g. regular vs. hard mode Theatre of Blood).
type ChallengeMode int

const (
	ModeUnknown ChallengeMode = iota
	ModeTobRegular
	ModeTobHard
	ModeTobEntry
	ModeCoxRegular
	ModeCoxChallenge
	ModeToaEntry
	ModeToaRegular
	ModeToaExpert
	ModeColosseum
)

func (t ChallengeType) String() string {
	switch t {
	case ChallengeTob:
		return "Theatre of Blood"
	case ChallengeCox:
		return "Chambers of Xeric"
	case ChallengeToa:
		return "Tombs of Amascut"
	case ChallengeColosseum:
		return "Fortis Colosseum"
	default:
		return "Unknown"
	}
}

func (m ChallengeMode) String() string {
	switch m {
	case ModeTobRegular:
		return "Regular"
	case ModeTobHard:
		return "Hard Mode"
	case ModeTobEntry:
		return "Entry Mode"
	case ModeCoxRegular:
		return "Regular"
	case ModeCoxChallenge:
		return "Challenge Mode"
	case ModeToaEntry:
		return "Entry"
	case ModeToaRegular:
		return "Regular"
	case ModeToaExpert:
		return "Expert"
	case ModeColosseum:
		return "Standard"
	default:
		return "Unknown"
	}
}

// Stage enumerates every sub-encounter the engine knows how to load,
// in the same declaration order as the upstream schema: Theatre of
// Blood rooms, then Chambers of Xeric rooms, then Tombs of Amascut
// rooms, then Colosseum waves. Ordering matters: a challenge's stage
// range is computed as an inclusive integer span from the type's
// first stage up to the reached stage.
type Stage int

const (
	StageUnknown Stage = iota

	StageTobMaiden
	StageTobBloat
	StageTobNylocas
	StageTobSotetseg
	StageTobXarpus
	StageTobVerzik

	StageCoxTekton
	StageCoxCrabs
	StageCoxIceDemon
	StageCoxShamans
	StageCoxVanguards
	StageCoxThieving
	StageCoxVespula
	StageCoxTightrope
	StageCoxGuardians
	StageCoxVasa
	StageCoxMystics
	StageCoxMuttadile
	StageCoxOlm

	StageToaApmeken
	StageToaBaba
	StageToaScabaras
	StageToaKephri
	StageToaHet
	StageToaAkkha
	StageToaCrondis
	StageToaZebak
	StageToaWardens

	StageColosseumWave1
	StageColosseumWave2
	StageColosseumWave3
	StageColosseumWave4
	StageColosseumWave5
	StageColosseumWave6
	StageColosseumWave7
	StageColosseumWave8
	StageColosseumWave9
	StageColosseumWave10
	StageColosseumWave11
	StageColosseumWave12
)

var stageNames = map[Stage]string{
	StageTobMaiden:    "Maiden",
	StageTobBloat:     "Bloat",
	StageTobNylocas:   "Nylocas",
	StageTobSotetseg:  "Sotetseg",
	StageTobXarpus:    "Xarpus",
	StageTobVerzik:    "Verzik",

	StageCoxTekton:    "Tekton",
	StageCoxCrabs:     "Crabs",
	StageCoxIceDemon:  "Ice Demon",
	StageCoxShamans:   "Lizardman Shamans",
	StageCoxVanguards: "Vanguards",
	StageCoxThieving:  "Thieving",
	StageCoxVespula:   "Vespula",
	StageCoxTightrope: "Tightrope",
	StageCoxGuardians: "Guardians",
	StageCoxVasa:      "Vasa Nistirio",
	StageCoxMystics:   "Mystics",
	StageCoxMuttadile: "Muttadile",
	StageCoxOlm:       "Great Olm",

	StageToaApmeken:  "Apmeken",
	StageToaBaba:     "Ba-Ba",
	StageToaScabaras: "Scabaras",
	StageToaKephri:   "Kephri",
	StageToaHet:      "Het",
	StageToaAkkha:    "Akkha",
	StageToaCrondis:  "Crondis",
	StageToaZebak:    "Zebak",
	StageToaWardens:  "Wardens",

	StageColosseumWave1:  "Wave 1",
	StageColosseumWave2:  "Wave 2",
	StageColosseumWave3:  "Wave 3",
	StageColosseumWave4:  "Wave 4",
	StageColosseumWave5:  "Wave 5",
	StageColosseumWave6:  "Wave 6",
	StageColosseumWave7:  "Wave 7",
	StageColosseumWave8:  "Wave 8",
	StageColosseumWave9:  "Wave 9",
	StageColosseumWave10: "Wave 10",
	StageColosseumWave11: "Wave 11",
	StageColosseumWave12: "Wave 12",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// FirstStage returns the initial stage for a challenge type, used to
// compute the inclusive stage range [FirstStage(type), reached].
func FirstStage(t ChallengeType) (Stage, error) {
	switch t {
	case ChallengeTob:
		return StageTobMaiden, nil
	case ChallengeColosseum:
		return StageColosseumWave1, nil
	default:
		return StageUnknown, FailedPrecondition("unsupported challenge type for stage range")
	}
}

// ParseChallengeType decodes a challenges row's wire-level type
// integer. Wire ordering follows this package's declaration order:
// 0=Unknown, 1=Tob, 2=Cox, 3=Toa, 4=Colosseum.
func ParseChallengeType(raw int16) (ChallengeType, error) {
	switch raw {
	case 0:
		return ChallengeUnknown, nil
	case 1:
		return ChallengeTob, nil
	case 2:
		return ChallengeCox, nil
	case 3:
		return ChallengeToa, nil
	case 4:
		return ChallengeColosseum, nil
	default:
		return 0, InvalidField("type")
	}
}

// ParseChallengeMode decodes a challenges row's wire-level mode
// integer. Wire ordering follows this package's declaration order:
// 0=Unknown, 1=TobRegular, 2=TobHard, 3=TobEntry, 4=CoxRegular,
// 5=CoxChallenge, 6=ToaEntry, 7=ToaRegular, 8=ToaExpert, 9=Colosseum.
func ParseChallengeMode(raw int16) (ChallengeMode, error) {
	switch raw {
	case 0:
		return ModeUnknown, nil
	case 1:
		return ModeTobRegular, nil
	case 2:
		return ModeTobHard, nil
	case 3:
		return ModeTobEntry, nil
	case 4:
		return ModeCoxRegular, nil
	case 5:
		return ModeCoxChallenge, nil
	case 6:
		return ModeToaEntry, nil
	case 7:
		return ModeToaRegular, nil
	case 8:
		return ModeToaExpert, nil
	case 9:
		return ModeColosseum, nil
	default:
		return 0, InvalidField("mode")
	}
}
