// Package replay reconstructs a dense per-tick player-state timeline
// from a stage's raw, unsorted event log. It is the core of the
// engine: every analyzer reads its input through the StageInfo this
// package produces.
package replay

import (
	"fmt"
	"sort"

	"github.com/raidreplay/tobengine/schema"
	"github.com/raidreplay/tobengine/types"
	"github.com/raidreplay/tobengine/wire"
)

// StageData returns the NPC table for the given stage out of a
// challenge's full NPC data, or nil if the data does not cover it.
// Lives here, rather than on schema.ChallengeData, because it needs
// types.Stage and schema intentionally has no dependency on types.
func StageData(data *schema.ChallengeData, stage types.Stage) *schema.RoomNpcs {
	if data == nil {
		return nil
	}
	if data.TobRooms != nil {
		switch stage {
		case types.StageTobMaiden:
			return data.TobRooms.Maiden
		case types.StageTobBloat:
			return data.TobRooms.Bloat
		case types.StageTobNylocas:
			return data.TobRooms.Nylocas
		case types.StageTobSotetseg:
			return data.TobRooms.Sotetseg
		case types.StageTobXarpus:
			return data.TobRooms.Xarpus
		case types.StageTobVerzik:
			return data.TobRooms.Verzik
		default:
			return nil
		}
	}
	if data.Colosseum != nil {
		idx := int(stage) - int(types.StageColosseumWave1)
		if idx < 0 || idx >= len(data.Colosseum.Waves) {
			return nil
		}
		return data.Colosseum.Waves[idx]
	}
	return nil
}

// Build reconstructs a StageInfo from a stage's raw event list, its
// NPC table, and the party's usernames in presentation order.
func Build(stage types.Stage, partyNames []string, rawEvents []schema.Event, npcs map[uint64]*schema.StageNpc) (*types.StageInfo, error) {
	events := indexEvents(rawEvents)

	playerState, err := buildPlayerState(partyNames, &events, npcs)
	if err != nil {
		return nil, err
	}

	return types.NewStageInfo(stage, events, npcs, playerState), nil
}

// indexEvents sorts events by tick (stable) and builds the tick/type
// indices described in spec step 2.
func indexEvents(rawEvents []schema.Event) types.StageEvents {
	all := make([]schema.Event, len(rawEvents))
	copy(all, rawEvents)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Tick < all[j].Tick })

	var totalTicks uint32
	if len(all) > 0 {
		totalTicks = all[len(all)-1].Tick + 1
	}

	tickIndices := make([]int32, totalTicks)
	for i := range tickIndices {
		tickIndices[i] = -1
	}

	byType := make(map[schema.EventType][]int)
	previousTick := int64(-1)

	for i, ev := range all {
		if int64(ev.Tick) != previousTick {
			tickIndices[ev.Tick] = int32(i)
			previousTick = int64(ev.Tick)
		}
		byType[ev.Type] = append(byType[ev.Type], i)
	}

	return types.StageEvents{
		TotalTicks:  totalTicks,
		All:         all,
		TickIndices: tickIndices,
		ByType:      byType,
	}
}

func isPlayerEvent(t schema.EventType) bool {
	switch t {
	case schema.EventPlayerAttack, schema.EventPlayerDeath, schema.EventPlayerUpdate:
		return true
	default:
		return false
	}
}

// buildPlayerState reconstructs, for every party member, their
// per-tick state vector across the whole stage.
func buildPlayerState(party []string, events *types.StageEvents, npcs map[uint64]*schema.StageNpc) (map[string]types.PlayerStates, error) {
	result := make(map[string]types.PlayerStates, len(party))

	for index, username := range party {
		states := make([]*types.PlayerState, events.TotalTicks)
		var lastKnown *types.PlayerState

		for tick := uint32(0); tick < events.TotalTicks; tick++ {
			var current types.PlayerState
			if lastKnown != nil {
				current = lastKnown.NextTick()
			} else {
				current = types.PlayerState{
					Tick:        tick,
					AttackState: types.IdleState(),
					DeathState:  types.Alive,
					Prayers:     types.EmptyPrayerSet(),
				}
			}

			for _, ev := range events.ForTick(tick) {
				if !isPlayerEvent(ev.Type) {
					continue
				}
				if ev.Player == nil {
					continue // skipped without logging
				}
				if int(ev.Player.PartyIndex) != index {
					continue
				}

				switch ev.Type {
				case schema.EventPlayerAttack:
					if ev.PlayerAttack != nil {
						current.AttackState = types.Attacked(ev.PlayerAttack.Type, resolveTarget(ev.PlayerAttack.Target, npcs))
					} else {
						current.AttackState = types.Attacked(schema.AttackUnknown, nil)
					}

				case schema.EventPlayerDeath:
					current.DeathState = types.JustDied

				case schema.EventPlayerUpdate:
					if current.AttackState.Kind == types.AttackIdle && ev.Player.OffCooldownTick > tick {
						current.AttackState = types.OnCooldown(ev.Player.OffCooldownTick - tick)
					}

					current.Position = schema.Coords{X: ev.X, Y: ev.Y}
					current.ApplyStats(ev.Player)
					current.Prayers = types.PrayerSetFromRaw(ev.Player.ActivePrayers)

					for _, raw := range ev.Player.EquipmentDeltas {
						delta, err := wire.ParseItemDelta(raw)
						if err != nil {
							return nil, types.InvalidField(fmt.Sprintf("PlayerUpdateEvent(%s:%d): equipment_deltas", username, tick))
						}
						current.ApplyEquipmentDelta(delta.Slot, delta.ID, delta.Quantity, delta.Added)
					}
				}
			}

			states[tick] = &current
			lastKnown = &current
		}

		result[username] = types.NewPlayerStates(states)
	}

	return result, nil
}

// resolveTarget looks up an attack's target NPC by room id. A target
// whose room id is unknown resolves to nil, not a failure.
func resolveTarget(target *schema.Npc, npcs map[uint64]*schema.StageNpc) *schema.StageNpc {
	if target == nil {
		return nil
	}
	// The lightweight attack-target NPC reference carries only an id;
	// the room-scoped table is keyed by room id assigned at spawn. The
	// decoder is expected to have already resolved this to a room id
	// via target.ID when producing PlayerAttackInfo (see schema.Npc).
	npc, ok := npcs[uint64(target.ID)]
	if !ok {
		return nil
	}
	return npc
}
