package types

import "github.com/raidreplay/tobengine/schema"

// tickIndexSentinel marks a tick slot with no events.
const tickIndexSentinel = -1

// StageEvents is the tick-indexed view over one stage's event log.
type StageEvents struct {
	TotalTicks  uint32
	All         []schema.Event
	TickIndices []int32
	ByType      map[schema.EventType][]int
}

// ForTick returns the slice of events occurring on tick, in original
// order. Returns nil if the tick has no events.
func (e *StageEvents) ForTick(tick uint32) []schema.Event {
	if int(tick) >= len(e.TickIndices) {
		return nil
	}
	start := e.TickIndices[tick]
	if start < 0 {
		return nil
	}

	end := len(e.All)
	for t := int(tick) + 1; t < len(e.TickIndices); t++ {
		if e.TickIndices[t] >= 0 {
			end = int(e.TickIndices[t])
			break
		}
	}
	return e.All[start:end]
}

// StageInfo is the reconstructed state for one stage: the indexed
// event view, the stage's NPC table, and every party member's
// per-tick state vector.
type StageInfo struct {
	Stage       Stage
	Events      StageEvents
	Npcs        map[uint64]*schema.StageNpc
	playerState map[string]PlayerStates
}

// NewStageInfo wraps already-built components. Construction of the
// event index and player-state vectors happens in the replay package,
// which is the only caller.
func NewStageInfo(stage Stage, events StageEvents, npcs map[uint64]*schema.StageNpc, playerState map[string]PlayerStates) *StageInfo {
	return &StageInfo{Stage: stage, Events: events, Npcs: npcs, playerState: playerState}
}

// PlayerState returns the given player's per-tick state vector, or
// the zero value and false if the player is unknown to this stage.
func (s *StageInfo) PlayerState(username string) (PlayerStates, bool) {
	ps, ok := s.playerState[username]
	return ps, ok
}

// AllEvents returns every event recorded in the stage, tick-ascending.
func (s *StageInfo) AllEvents() []schema.Event {
	return s.Events.All
}

// EventsForType returns every event of the given type, in original
// order.
func (s *StageInfo) EventsForType(t schema.EventType) []schema.Event {
	indices := s.Events.ByType[t]
	out := make([]schema.Event, 0, len(indices))
	for _, i := range indices {
		out = append(out, s.Events.All[i])
	}
	return out
}

// TotalEvents returns the number of recorded events in the stage.
func (s *StageInfo) TotalEvents() int {
	return len(s.Events.All)
}
