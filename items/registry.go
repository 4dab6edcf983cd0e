// Package items loads the shared, immutable item-stat registry every
// analyzer run consumes by reference. Loading is the one externally
// documented capability (spec's "domain item-stat JSON loader");
// SPEC_FULL gives it a concrete JSON-file implementation.
package items

import (
	"encoding/json"
	"os"

	"github.com/raidreplay/tobengine/types"
)

// Stats are the combat bonuses an equippable item contributes.
type Stats struct {
	StabAttack    int32 `json:"stabAttack"`
	SlashAttack   int32 `json:"slashAttack"`
	CrushAttack   int32 `json:"crushAttack"`
	MagicAttack   int32 `json:"magicAttack"`
	RangedAttack  int32 `json:"rangedAttack"`
	StabDefence   int32 `json:"stabDefence"`
	SlashDefence  int32 `json:"slashDefence"`
	CrushDefence  int32 `json:"crushDefence"`
	MagicDefence  int32 `json:"magicDefence"`
	RangedDefence int32 `json:"rangedDefence"`
	MeleeStrength int32 `json:"meleeStrength"`
	RangedStrength int32 `json:"rangedStrength"`
	MagicDamage   int32 `json:"magicDamage"`
	Prayer        int32 `json:"prayer"`
	AttackSpeed   int32 `json:"attackSpeed"`
}

func (s *Stats) add(o *Stats) {
	if o == nil {
		return
	}
	s.StabAttack += o.StabAttack
	s.SlashAttack += o.SlashAttack
	s.CrushAttack += o.CrushAttack
	s.MagicAttack += o.MagicAttack
	s.RangedAttack += o.RangedAttack
	s.StabDefence += o.StabDefence
	s.SlashDefence += o.SlashDefence
	s.CrushDefence += o.CrushDefence
	s.MagicDefence += o.MagicDefence
	s.RangedDefence += o.RangedDefence
	s.MeleeStrength += o.MeleeStrength
	s.RangedStrength += o.RangedStrength
	s.MagicDamage += o.MagicDamage
	s.Prayer += o.Prayer
	s.AttackSpeed += o.AttackSpeed
}

// Item is one entry of the item-stat JSON dump.
type Item struct {
	ID        int32               `json:"id"`
	Name      string              `json:"name"`
	Tradeable bool                `json:"tradeable"`
	Slot      *types.EquipmentSlot `json:"-"`
	RawSlot   *int                `json:"slot"`
	Stats     *Stats              `json:"stats"`
}

// Equipable reports whether the item occupies an equipment slot.
func (i *Item) Equipable() bool { return i.Slot != nil }

// Registry is the immutable id -> item lookup, shared by pointer
// across every analyzer run.
type Registry struct {
	items map[int32]*Item
}

// Get looks up an item by id.
func (r *Registry) Get(id int32) (*Item, bool) {
	item, ok := r.items[id]
	return item, ok
}

// LoadRegistry reads a JSON array of Item records from path.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.KindIo, path, err)
	}
	defer f.Close()

	var raw []Item
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, types.WrapError(types.KindIncompleteData, "items file", err)
	}

	items := make(map[int32]*Item, len(raw))
	for i := range raw {
		item := raw[i]
		if item.RawSlot != nil {
			slot, err := types.ParseEquipmentSlot(uint64(*item.RawSlot))
			if err == nil {
				item.Slot = &slot
			}
		}
		items[item.ID] = &item
	}

	return &Registry{items: items}, nil
}

// EquipmentStats sums the stat contributions of every item equipped
// in state, resolved through registry. Lives here rather than on
// types.PlayerState to keep the types package free of a dependency on
// items.
func EquipmentStats(state *types.PlayerState, registry *Registry) Stats {
	var total Stats
	for _, slot := range types.EquipmentSlots() {
		equipped := state.EquippedItem(slot)
		if equipped == nil {
			continue
		}
		item, ok := registry.Get(equipped.ID)
		if !ok {
			continue
		}
		total.add(item.Stats)
	}
	return total
}
