// Package gear implements GearAnalyzer, which records every party
// member's equipped items per stage and over the whole challenge, so
// downstream analyzers (role assignment, loadout checks) can query
// "did this player ever wear X" without re-walking player state.
package gear

import (
	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/types"
)

// info is one player's equipped-item record: the items they wore on
// each stage, keyed by item id, plus whether they wore any Void piece
// at any point in the challenge.
type info struct {
	itemsByStage map[types.Stage]map[int32]*items.Item
	hasVoid      bool
}

// PlayerGear is the output of GearAnalyzer: every party member's
// per-stage and whole-challenge equipped-item record.
type PlayerGear struct {
	players map[string]info
}

// Player returns a view over username's gear record, or false if the
// player is not part of the challenge.
func (g *PlayerGear) Player(username string) (Player, bool) {
	i, ok := g.players[username]
	if !ok {
		return Player{}, false
	}
	return Player{gear: i}, true
}

// Player is a read-only view over one party member's recorded gear.
type Player struct {
	gear info
}

// Has reports whether the player had itemID equipped at any point
// during stage.
func (p Player) Has(stage types.Stage, itemID int32) bool {
	byItem, ok := p.gear.itemsByStage[stage]
	if !ok {
		return false
	}
	_, ok = byItem[itemID]
	return ok
}

// HasAny reports whether the player had any of itemIDs equipped at
// any point during stage.
func (p Player) HasAny(stage types.Stage, itemIDs []int32) bool {
	for _, id := range itemIDs {
		if p.Has(stage, id) {
			return true
		}
	}
	return false
}

// HasInChallenge reports whether the player had itemID equipped at
// any point during any recorded stage.
func (p Player) HasInChallenge(itemID int32) bool {
	for _, byItem := range p.gear.itemsByStage {
		if _, ok := byItem[itemID]; ok {
			return true
		}
	}
	return false
}

// HasAnyInChallenge reports whether the player had any of itemIDs
// equipped at any point during any recorded stage.
func (p Player) HasAnyInChallenge(itemIDs []int32) bool {
	for _, id := range itemIDs {
		if p.HasInChallenge(id) {
			return true
		}
	}
	return false
}

// HasVoid reports whether the player wore a Void Knight set of the
// given combat style at any point in the challenge. VoidAny matches
// any style.
func (p Player) HasVoid(style items.VoidStyle) bool {
	if style == items.VoidAny {
		return p.gear.hasVoid
	}
	helmIDs, ok := voidHelmsByStyle[style]
	if !ok {
		return false
	}
	return p.HasAnyInChallenge(helmIDs)
}

// voidHelmsByStyle pins the style check to the matching helm grade
// set; the robe/top/gloves pieces are shared across styles, so the
// helm alone distinguishes Mage/Ranged/Melee Void.
var voidHelmsByStyle = map[items.VoidStyle][]int32{
	items.VoidMage:   {items.IDVoidMageHelm, items.IDVoidMageHelmL, items.IDVoidMageHelmOr},
	items.VoidRanged: {items.IDVoidRangerHelm, items.IDVoidRangerHelmL, items.IDVoidRangerHelmOr},
	items.VoidMelee:  {items.IDVoidMeleeHelm, items.IDVoidMeleeHelmL, items.IDVoidMeleeHelmOr},
}

// Analyzer records, for every party member and every stage they
// appear in, the set of items they had equipped at any tick.
type Analyzer struct{}

// New constructs a GearAnalyzer. Takes no configuration.
func New(map[string]any) (analyzer.Analyzer, error) {
	return &Analyzer{}, nil
}

func (a *Analyzer) Name() string { return "GearAnalyzer" }

func (a *Analyzer) Analyze(ctx *analyzer.Context) (any, error) {
	players := make(map[string]info, len(ctx.Challenge.Party))

	for _, username := range ctx.Challenge.Party {
		itemsByStage := make(map[types.Stage]map[int32]*items.Item)
		hasVoid := false

		for _, stage := range ctx.Challenge.StageInfos() {
			states, ok := stage.PlayerState(username)
			if !ok {
				return nil, types.IncompleteData("missing player state for " + username)
			}

			byItem := make(map[int32]*items.Item)
			for _, state := range states.All() {
				for _, slot := range types.EquipmentSlots() {
					equipped := state.EquippedItem(slot)
					if equipped == nil {
						continue
					}
					item, ok := ctx.Items.Get(equipped.ID)
					if !ok {
						continue
					}
					byItem[item.ID] = item
					if items.IsVoid(item.ID) {
						hasVoid = true
					}
				}
			}
			itemsByStage[stage.Stage] = byItem
		}

		players[username] = info{itemsByStage: itemsByStage, hasVoid: hasVoid}
	}

	return &PlayerGear{players: players}, nil
}
