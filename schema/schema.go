// Package schema holds the decoded shapes produced by the external
// binary event decoder (out of scope per the core's own contract —
// see store.Decoder). The core only ever consumes these already
// decoded values; it never parses wire bytes itself.
package schema

// Coords is a player or NPC's tile position within a stage.
type Coords struct {
	X int32
	Y int32
}

// EventType discriminates the Event union.
type EventType int

const (
	EventUnknown EventType = iota
	EventPlayerAttack
	EventPlayerDeath
	EventPlayerUpdate
)

// PlayerAttack enumerates every weapon/special-attack variant the
// decoder can report for a PlayerAttack event.
type PlayerAttack int

const (
	AttackUnknown PlayerAttack = iota
	AttackUnknownBarrage
	AttackKodaiBarrage
	AttackNmStaffBarrage
	AttackSangBarrage
	AttackSceptreBarrage
	AttackShadowBarrage
	AttackSotdBarrage
	AttackToxicTridentBarrage
	AttackToxicStaffBarrage
	AttackTridentBarrage
	AttackChinBlack
	AttackChinGrey
	AttackChinRed
	AttackDinhsSpec
	AttackDinhsBash
	AttackSwiftBlade
	AttackHamJoint
	AttackDualMacuahuitl
	AttackClawScratch
	AttackTentWhip
	AttackBlowpipe
	AttackBlowpipeSpec
	AttackScythe
	AttackScytheUncharged
)

// IsBarrage reports whether the attack is one of the magic barrage
// spell variants (used to detect Maiden crab freezes and Nylocas mage
// prefires).
func (a PlayerAttack) IsBarrage() bool {
	switch a {
	case AttackUnknownBarrage, AttackKodaiBarrage, AttackNmStaffBarrage,
		AttackSangBarrage, AttackSceptreBarrage, AttackShadowBarrage,
		AttackSotdBarrage, AttackToxicTridentBarrage, AttackToxicStaffBarrage,
		AttackTridentBarrage:
		return true
	default:
		return false
	}
}

// IsChin reports whether the attack is a chinchompa throw of any
// grade.
func (a PlayerAttack) IsChin() bool {
	switch a {
	case AttackChinBlack, AttackChinGrey, AttackChinRed:
		return true
	default:
		return false
	}
}

// NpcKind discriminates the StageNpc type union.
type NpcKind int

const (
	NpcBasic NpcKind = iota
	NpcMaidenCrab
	NpcNylo
)

// MaidenCrabPosition is the spawn position of a Maiden Matomenos crab.
type MaidenCrabPosition int

const (
	MaidenCrabS1 MaidenCrabPosition = iota
	MaidenCrabS2
	MaidenCrabS3
	MaidenCrabS4Inner
	MaidenCrabS4Outer
	MaidenCrabN1
	MaidenCrabN2
	MaidenCrabN3
	MaidenCrabN4Inner
	MaidenCrabN4Outer
)

// IsSouth reports whether the position is on the south side of Maiden.
func (p MaidenCrabPosition) IsSouth() bool {
	switch p {
	case MaidenCrabS1, MaidenCrabS2, MaidenCrabS3, MaidenCrabS4Inner, MaidenCrabS4Outer:
		return true
	default:
		return false
	}
}

// NyloSpawnType is the lane a Nylocas waver spawned into.
type NyloSpawnType int

const (
	NyloSpawnSplit NyloSpawnType = iota
	NyloSpawnWest
	NyloSpawnEast
)

// StageNpc is a per-room NPC record, keyed by a per-room id assigned
// at spawn time (see StageInfo.Npcs).
type StageNpc struct {
	RoomID     uint64
	SpawnNpcID uint32
	SpawnTick  uint32
	Kind       NpcKind

	// Populated when Kind == NpcMaidenCrab.
	MaidenCrabPosition MaidenCrabPosition

	// Populated when Kind == NpcNylo.
	NyloWave      uint32
	NyloBig       bool
	NyloSpawnType NyloSpawnType
}

// Npc is the lightweight NPC reference carried on a PlayerAttack
// event's target field (as opposed to the richer StageNpc record
// looked up by room id).
type Npc struct {
	ID uint32
}

// PlayerAttackInfo is the payload of a PlayerAttack event.
type PlayerAttackInfo struct {
	Type   PlayerAttack
	Target *Npc // nil if the attack had no discernible target
}

// PlayerPayload is the payload common to PlayerAttack, PlayerDeath and
// PlayerUpdate events.
type PlayerPayload struct {
	PartyIndex      uint32
	ActivePrayers   uint64
	OffCooldownTick uint32

	// Raw packed skill levels; nil means "not reported this event".
	Attack    *uint32
	Defence   *uint32
	Strength  *uint32
	Hitpoints *uint32
	Ranged    *uint32
	Prayer    *uint32
	Magic     *uint32

	EquipmentDeltas []uint64
}

// Event is one tick-stamped entry in a stage's event log.
type Event struct {
	Type         EventType
	Tick         uint32
	X, Y         int32
	Player       *PlayerPayload
	PlayerAttack *PlayerAttackInfo
}

// ChallengeEvents is the raw, unsorted event log for one stage, as
// returned by the event repository. Stage is the decoder's raw stage
// identifier; callers map it to types.Stage (see store.ParseStage).
type ChallengeEvents struct {
	Stage      int
	PartyNames []string
	Events     []Event
}

// ChallengeData carries the per-room NPC tables for an entire
// challenge, addressed by stage.
type ChallengeData struct {
	// Exactly one of TobRooms or Colosseum is populated, matching the
	// challenge's type.
	TobRooms  *TobRoomsData
	Colosseum *ColosseumData
}

// TobRoomsData holds the NPC table for each Theatre of Blood room.
type TobRoomsData struct {
	Maiden    *RoomNpcs
	Bloat     *RoomNpcs
	Nylocas   *RoomNpcs
	Sotetseg  *RoomNpcs
	Xarpus    *RoomNpcs
	Verzik    *RoomNpcs
}

// ColosseumData holds the NPC table for each Colosseum wave, indexed
// 0..11 for waves 1..12.
type ColosseumData struct {
	Waves []*RoomNpcs
}

// RoomNpcs is the NPC table for a single stage.
type RoomNpcs struct {
	Npcs []StageNpc
}

// IsMaidenMatomenos reports whether the NPC is a Maiden red crab, at
// any mode's NPC id.
func (n *StageNpc) IsMaidenMatomenos() bool {
	if n == nil {
		return false
	}
	switch n.SpawnNpcID {
	case MaidenMatomenosEntry, MaidenMatomenosRegular, MaidenMatomenosHard:
		return true
	default:
		return false
	}
}

// IsMaidenMatomenos reports the same, for the lightweight attack-target
// NPC reference.
func (n *Npc) IsMaidenMatomenos() bool {
	if n == nil {
		return false
	}
	switch n.ID {
	case MaidenMatomenosEntry, MaidenMatomenosRegular, MaidenMatomenosHard:
		return true
	default:
		return false
	}
}

// NPC ids for the Maiden red crab across difficulty modes.
const (
	MaidenMatomenosEntry   uint32 = 10820
	MaidenMatomenosRegular uint32 = 8366
	MaidenMatomenosHard    uint32 = 10828
)
