package items

// VoidStyle selects which combat style's Void helm to check for.
type VoidStyle int

const (
	VoidMage VoidStyle = iota
	VoidRanged
	VoidMelee
	VoidAny
)

var voidItemIDs = map[int32]struct{}{
	IDVoidKnightTop:      {},
	IDVoidKnightRobe:     {},
	IDVoidKnightGloves:   {},
	IDVoidMageHelm:       {},
	IDVoidRangerHelm:     {},
	IDVoidMeleeHelm:      {},
	IDVoidKnightTopL:     {},
	IDEliteVoidTopL:      {},
	IDVoidKnightRobeL:    {},
	IDEliteVoidRobeL:     {},
	IDVoidKnightMaceL:    {},
	IDVoidKnightGlovesL:  {},
	IDVoidMageHelmL:      {},
	IDVoidRangerHelmL:    {},
	IDVoidMeleeHelmL:     {},
	IDVoidKnightTopOr:    {},
	IDVoidKnightRobeOr:   {},
	IDVoidKnightGlovesOr: {},
	IDEliteVoidTopOr:     {},
	IDEliteVoidRobeOr:    {},
	IDVoidMageHelmOr:     {},
	IDVoidRangerHelmOr:   {},
	IDVoidMeleeHelmOr:    {},
}

// IsVoid reports whether id belongs to any Void Knight equipment
// piece, of any grade (normal/locked/deadman "or").
func IsVoid(id int32) bool {
	_, ok := voidItemIDs[id]
	return ok
}
