// Package wire implements the packed-bitfield codec used by the
// replay builder for the 64-bit equipment delta (the 32-bit skill
// level update is decoded by types.SkillLevelFromRaw). It is pure bit
// arithmetic, grounded on the
// teacher's bit-manipulation and error-classification style in its
// own IPC frame codec.
package wire

import "github.com/raidreplay/tobengine/types"

const (
	quantityMask uint64 = 0x0000_0000_7fff_ffff
	addedBit     uint64 = 1 << 31
	idShift      uint64 = 32
	idMask       uint64 = 0xffff
	slotShift    uint64 = 48
	slotMask     uint64 = 0x1f
)

// ItemDelta is a decoded packed equipment-delta record: bits 0..30
// are the quantity, bit 31 is the added flag, bits 32..47 are the item
// id, and bits 48..52 are the equipment slot (which must resolve to
// 0..10).
type ItemDelta struct {
	Slot     types.EquipmentSlot
	ID       int32
	Quantity int32
	Added    bool
}

// ParseItemDelta decodes a packed equipment delta. A slot value
// outside 0..10 is malformed and returns an InvalidField error.
func ParseItemDelta(raw uint64) (ItemDelta, error) {
	rawSlot := raw >> slotShift & slotMask
	slot, err := types.ParseEquipmentSlot(rawSlot)
	if err != nil {
		return ItemDelta{}, err
	}

	id := int32(raw >> idShift & idMask)
	quantity := int32(raw & quantityMask)
	added := raw&addedBit != 0

	return ItemDelta{Slot: slot, ID: id, Quantity: quantity, Added: added}, nil
}

// Pack re-encodes the delta to its 64-bit wire form. Pack(Parse(p)) ==
// p for every validly parsed p.
func (d ItemDelta) Pack() uint64 {
	raw := uint64(uint32(d.Quantity)) & quantityMask
	raw |= (uint64(uint16(d.ID)) & idMask) << idShift
	raw |= uint64(d.Slot) << slotShift
	if d.Added {
		raw |= addedBit
	}
	return raw
}
