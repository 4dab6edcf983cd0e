package types

import "github.com/raidreplay/tobengine/schema"

// AttackStateKind discriminates the AttackState union.
type AttackStateKind int

const (
	AttackIdle AttackStateKind = iota
	AttackOnCooldown
	AttackAttacked
)

// AttackState is a player's attack/cooldown status for one tick.
//
// Invariant: Kind == AttackOnCooldown implies CooldownTicks >= 1; a
// cooldown reaching zero transitions to AttackIdle, never observable
// as OnCooldown(0).
type AttackState struct {
	Kind          AttackStateKind
	CooldownTicks uint32
	Attack        schema.PlayerAttack
	Target        *schema.StageNpc // only set when Kind == AttackAttacked; nil if the target NPC is unknown
}

func IdleState() AttackState { return AttackState{Kind: AttackIdle} }

func OnCooldown(ticks uint32) AttackState {
	return AttackState{Kind: AttackOnCooldown, CooldownTicks: ticks}
}

func Attacked(attack schema.PlayerAttack, target *schema.StageNpc) AttackState {
	return AttackState{Kind: AttackAttacked, Attack: attack, Target: target}
}

// DeathState is a player's death status for one tick. JustDied
// persists for exactly one tick before becoming Dead.
type DeathState int

const (
	Alive DeathState = iota
	JustDied
	Dead
)

// SkillLevel is a base/boosted pair for one of the seven tracked
// skills.
type SkillLevel struct {
	Base    int16
	Current int16
}

// SkillLevelFromRaw decodes a packed skill-level update: the low 16
// bits are the base level, the high 16 bits are the current
// (boosted/drained) level.
func SkillLevelFromRaw(raw uint32) SkillLevel {
	return SkillLevel{
		Base:    int16(raw),
		Current: int16(raw >> 16),
	}
}

// PlayerStats holds the seven skill levels tracked per tick. Every
// field is nil on a fresh tick (stats are not inherited); a field is
// populated only by an explicit PlayerUpdate that reports it.
type PlayerStats struct {
	Attack    *SkillLevel
	Defence   *SkillLevel
	Strength  *SkillLevel
	Hitpoints *SkillLevel
	Ranged    *SkillLevel
	Prayer    *SkillLevel
	Magic     *SkillLevel
}

// ItemQuantity is an equipped item and its stack size.
type ItemQuantity struct {
	ID       int32
	Quantity int32
}

// PlayerState is a dense per-tick snapshot of one player.
type PlayerState struct {
	Tick        uint32
	AttackState AttackState
	DeathState  DeathState
	Position    schema.Coords
	Stats       PlayerStats
	Prayers     PrayerSet
	equipment   [NumEquipmentSlots]*ItemQuantity
}

// EquippedItem returns what is worn in slot, or nil if the slot is
// empty.
func (p *PlayerState) EquippedItem(slot EquipmentSlot) *ItemQuantity {
	return p.equipment[slot]
}

// NextTick derives the following tick's starting state per the
// transition rules: cooldowns count down to idle, JustDied becomes
// Dead, position/prayers/equipment carry forward, and stats reset to
// all-unset (they are never inherited, only re-asserted).
func (p *PlayerState) NextTick() PlayerState {
	next := PlayerState{
		Tick:     p.Tick + 1,
		Position: p.Position,
		Prayers:  p.Prayers,
	}
	next.equipment = p.equipment

	switch p.AttackState.Kind {
	case AttackOnCooldown:
		if p.AttackState.CooldownTicks <= 1 {
			next.AttackState = IdleState()
		} else {
			next.AttackState = OnCooldown(p.AttackState.CooldownTicks - 1)
		}
	default:
		next.AttackState = IdleState()
	}

	if p.DeathState == JustDied {
		next.DeathState = Dead
	} else {
		next.DeathState = Alive
	}

	return next
}

// ApplyEquipmentDelta folds a decoded equipment delta into the
// player's equipment vector.
//
// Add: a delta for the same id already worn in the slot accumulates
// its quantity; a delta for a different id (or an empty slot) replaces
// the slot's contents outright (the stack model assumes one item kind
// per slot).
//
// Remove: a delta for the same id subtracts, clearing the slot if the
// removal meets or exceeds the current stack; a delta for a different
// id (or an empty slot) clears the slot unconditionally.
func (p *PlayerState) ApplyEquipmentDelta(slot EquipmentSlot, id, qty int32, added bool) {
	current := p.equipment[slot]

	if added {
		if current != nil && current.ID == id {
			updated := *current
			updated.Quantity += qty
			p.equipment[slot] = &updated
		} else {
			p.equipment[slot] = &ItemQuantity{ID: id, Quantity: qty}
		}
		return
	}

	switch {
	case current != nil && current.ID == id && current.Quantity > qty:
		updated := *current
		updated.Quantity -= qty
		p.equipment[slot] = &updated
	default:
		p.equipment[slot] = nil
	}
}

// ApplyStats overwrites whichever of the seven skills the update
// reports; it never clears a skill the update is silent on (that only
// happens via the fresh-tick reset in NextTick).
func (p *PlayerState) ApplyStats(player *schema.PlayerPayload) {
	if player.Attack != nil {
		lvl := SkillLevelFromRaw(*player.Attack)
		p.Stats.Attack = &lvl
	}
	if player.Defence != nil {
		lvl := SkillLevelFromRaw(*player.Defence)
		p.Stats.Defence = &lvl
	}
	if player.Strength != nil {
		lvl := SkillLevelFromRaw(*player.Strength)
		p.Stats.Strength = &lvl
	}
	if player.Hitpoints != nil {
		lvl := SkillLevelFromRaw(*player.Hitpoints)
		p.Stats.Hitpoints = &lvl
	}
	if player.Ranged != nil {
		lvl := SkillLevelFromRaw(*player.Ranged)
		p.Stats.Ranged = &lvl
	}
	if player.Prayer != nil {
		lvl := SkillLevelFromRaw(*player.Prayer)
		p.Stats.Prayer = &lvl
	}
	if player.Magic != nil {
		lvl := SkillLevelFromRaw(*player.Magic)
		p.Stats.Magic = &lvl
	}
}

// PlayerStates is a read-only view over one player's per-tick state
// across a stage.
type PlayerStates struct {
	states []*PlayerState
}

func NewPlayerStates(states []*PlayerState) PlayerStates {
	return PlayerStates{states: states}
}

// GetTick returns the player's state at tick, or nil if out of range.
func (p PlayerStates) GetTick(tick int) *PlayerState {
	if tick < 0 || tick >= len(p.states) {
		return nil
	}
	return p.states[tick]
}

// All returns every known (non-nil) state, in tick order.
func (p PlayerStates) All() []*PlayerState {
	out := make([]*PlayerState, 0, len(p.states))
	for _, s := range p.states {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Attack pairs a tick with the attack that occurred on it.
type Attack struct {
	Tick   uint32
	Attack schema.PlayerAttack
	Target *schema.StageNpc
}

// Attacks returns every attack the player made, in tick order.
func (p PlayerStates) Attacks() []Attack {
	var out []Attack
	for _, s := range p.states {
		if s == nil || s.AttackState.Kind != AttackAttacked {
			continue
		}
		out = append(out, Attack{Tick: s.Tick, Attack: s.AttackState.Attack, Target: s.AttackState.Target})
	}
	return out
}
