// Package role implements TobRoleAnalyzer, which infers every party
// member's meta role (Mage/Ranger/Melee/...) in a Theatre of Blood
// raid from their recorded attacks and gear, and a handful of
// room-specific sub-responsibilities (freezer side, Nylocas lane).
//
// The analyzer takes an all-or-nothing approach: if it cannot
// confidently assign a role to every party member, it fails outright
// rather than guess at downstream-unsafe partial data.
package role

import (
	"sort"

	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/analyzers/gear"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/schema"
	"github.com/raidreplay/tobengine/types"
)

// Role is a well-defined meta role for a player in the Theatre of
// Blood.
type Role int

const (
	RoleSolo Role = iota
	RoleDuoMage
	RoleDuoRanger
	RoleMage
	RoleRanger
	RoleMelee
	RoleMeleeFreeze
)

// IsFreezer reports whether the role is responsible for freezing
// (barraging) NPCs at Maiden and in Nylocas.
func (r Role) IsFreezer() bool {
	switch r {
	case RoleMage, RoleMeleeFreeze, RoleDuoMage:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	switch r {
	case RoleSolo:
		return "solo"
	case RoleDuoMage:
		return "duo_mage"
	case RoleDuoRanger:
		return "duo_ranger"
	case RoleMage:
		return "mage"
	case RoleRanger:
		return "ranger"
	case RoleMelee:
		return "melee"
	case RoleMeleeFreeze:
		return "melee_freeze"
	default:
		return "unknown"
	}
}

// SubRole is a room-specific responsibility within a role, e.g. which
// side of Maiden a freezer worked.
type SubRole int

const (
	SubRoleMaidenSoloFreezer SubRole = iota
	SubRoleMaidenNorthFreezer
	SubRoleMaidenSouthFreezer
	SubRoleMaidenChinner
	SubRoleNyloWestMage
	SubRoleNyloEastMage
	SubRoleNyloWestMelee
	SubRoleNyloEastMelee
)

// PlayerRoles is one player's assigned meta role plus any
// sub-responsibilities inferred for specific rooms.
type PlayerRoles struct {
	role     Role
	subRoles []SubRole
}

// Role returns the player's assigned meta role.
func (p PlayerRoles) Role() Role { return p.role }

// HasSubRole reports whether the player was assigned the given
// sub-role.
func (p PlayerRoles) HasSubRole(s SubRole) bool {
	for _, sr := range p.subRoles {
		if sr == s {
			return true
		}
	}
	return false
}

type matchCertainty int

const (
	certaintyNone matchCertainty = iota
	certaintyWeak
	certaintyStrong
)

type matchFn func(role Role, mode types.ChallengeMode, scale int, states types.PlayerStates, g gear.Player) matchCertainty

type playerCandidate struct {
	name        string
	weakMatches int
}

type primaryRole struct {
	player string
	role   Role
}

// assignmentContext tracks in-progress role assignment for a single
// analysis pass.
type assignmentContext struct {
	challenge *types.Challenge

	rolesToAssign []Role

	unassignedPlayers []playerCandidate

	strongMatches map[Role][]string
	weakMatches   map[Role][]string

	playersNotMatchingAnyRole []string
}

// melee4TThreshold is the number of 4-tick melee attacks a player must
// exceed in Nylocas to be considered a meleer using a 4-tick
// mainhand weapon. Set high to avoid false positives from other roles
// filling ticks with claw scratches.
const melee4TThreshold = 12

// nyloPrefireTicks bounds how soon after a Nylocas waver spawns an
// attack on it still counts as a "prefire" for lane-assignment
// purposes.
const nyloPrefireTicks = 9

var nyloMeleeWeapons = []int32{items.IDSwiftBlade, items.IDHamJoint, items.IDDualMacuahuitl}

var maidenMeleeWeapons = []int32{items.IDDinhsBulwark, items.IDDinhsBlazingBulwark}

var nonVoidRangedGear = []int32{
	items.IDZaryteVambraces,
	items.IDMasoriMask, items.IDMasoriBody, items.IDMasoriChaps,
	items.IDMasoriMaskF, items.IDMasoriBodyF, items.IDMasoriChapsF,
}

// Analyzer infers every party member's meta role in a Theatre of
// Blood raid. Depends on GearAnalyzer.
type Analyzer struct{}

// New constructs a TobRoleAnalyzer. Takes no configuration.
func New(map[string]any) (analyzer.Analyzer, error) {
	return &Analyzer{}, nil
}

func (a *Analyzer) Name() string { return "TobRoleAnalyzer" }

func (a *Analyzer) Analyze(ctx *analyzer.Context) (any, error) {
	if ctx.Challenge.Type != types.ChallengeTob {
		return nil, types.FailedPrecondition("TobRoleAnalyzer requires a ToB challenge")
	}

	playerGear, err := analyzer.DependencyOutput[*gear.PlayerGear](ctx, "GearAnalyzer")
	if err != nil {
		return nil, err
	}

	if ctx.Challenge.Scale() == 1 {
		return map[string]PlayerRoles{
			ctx.Challenge.Party[0]: {role: RoleSolo},
		}, nil
	}

	return determineRoles(ctx.Challenge, playerGear)
}

func determineRoles(challenge *types.Challenge, playerGear *gear.PlayerGear) (map[string]PlayerRoles, error) {
	var rolesToAssign []Role
	switch challenge.Scale() {
	case 2:
		rolesToAssign = []Role{RoleDuoMage, RoleDuoRanger}
	case 3:
		rolesToAssign = []Role{RoleMage, RoleRanger, RoleMelee}
	case 4:
		rolesToAssign = []Role{RoleMage, RoleMeleeFreeze, RoleRanger, RoleMelee}
	case 5:
		rolesToAssign = []Role{RoleMage, RoleMage, RoleRanger, RoleMelee, RoleMelee}
	default:
		return nil, types.FailedPrecondition("invalid raid scale")
	}

	ctx := &assignmentContext{
		challenge:     challenge,
		rolesToAssign: rolesToAssign,
		strongMatches: make(map[Role][]string),
		weakMatches:   make(map[Role][]string),
	}

	if err := findRoleMatches(ctx, playerGear); err != nil {
		return nil, err
	}

	var assignedRoles []primaryRole
	for role, players := range ctx.strongMatches {
		for _, p := range players {
			assignedRoles = append(assignedRoles, primaryRole{player: p, role: role})
		}
	}

	assignedRoles = append(assignedRoles, tryGuessUnmatchedRoles(ctx, playerGear)...)

	if len(ctx.playersNotMatchingAnyRole) > 1 {
		return nil, types.IncompleteData("multiple players do not match any role")
	}

	if len(ctx.rolesToAssign) != len(ctx.unassignedPlayers) {
		return nil, types.IncompleteData("role and unassigned-player counts diverged")
	}

	backtracked, ok := tryAssignRoles(append([]Role{}, ctx.rolesToAssign...), nil, ctx.unassignedPlayers, ctx.weakMatches)
	if !ok {
		return nil, types.IncompleteData("failed to assign roles to all players")
	}
	assignedRoles = append(assignedRoles, backtracked...)

	playerRoles := make(map[string]PlayerRoles, len(assignedRoles))
	for _, ar := range assignedRoles {
		var subroles []SubRole

		if maidenData := challenge.StageInfo(types.StageTobMaiden); maidenData != nil {
			states, ok := maidenData.PlayerState(ar.player)
			if !ok {
				return nil, types.IncompleteData("missing maiden state for " + ar.player)
			}
			subroles = append(subroles, determineMaidenSubroles(challenge, states, ar.role)...)
		}
		if nyloData := challenge.StageInfo(types.StageTobNylocas); nyloData != nil {
			states, ok := nyloData.PlayerState(ar.player)
			if !ok {
				return nil, types.IncompleteData("missing nylocas state for " + ar.player)
			}
			subroles = append(subroles, determineNyloSubroles(challenge, states, ar.role)...)
		}

		playerRoles[ar.player] = PlayerRoles{role: ar.role, subRoles: subroles}
	}

	if len(playerRoles) != challenge.Scale() {
		return nil, types.IncompleteData("failed to assign roles to all players")
	}

	return playerRoles, nil
}

func findRoleMatches(ctx *assignmentContext, playerGear *gear.PlayerGear) error {
	var stageData *types.StageInfo
	var match matchFn

	if ctx.challenge.Stage < types.StageTobNylocas {
		stageData = ctx.challenge.StageInfo(types.StageTobMaiden)
		match = tryMatchRolePreNylo
	} else {
		stageData = ctx.challenge.StageInfo(types.StageTobNylocas)
		match = tryMatchRoleNylo
	}
	if stageData == nil {
		return types.IncompleteData("missing stage data for role matching")
	}

	for _, player := range ctx.challenge.Party {
		states, ok := stageData.PlayerState(player)
		if !ok {
			return types.IncompleteData("missing player state for " + player)
		}
		playerGearView, ok := playerGear.Player(player)
		if !ok {
			return types.IncompleteData("missing gear record for " + player)
		}

		var weakRoles []Role
		strongMatchIndex := -1

		for i, role := range ctx.rolesToAssign {
			switch match(role, ctx.challenge.Mode, ctx.challenge.Scale(), states, playerGearView) {
			case certaintyStrong:
				ctx.strongMatches[role] = append(ctx.strongMatches[role], player)
				strongMatchIndex = i
			case certaintyWeak:
				weakRoles = append(weakRoles, role)
			}
			if strongMatchIndex >= 0 {
				break
			}
		}

		if strongMatchIndex >= 0 {
			ctx.rolesToAssign = append(ctx.rolesToAssign[:strongMatchIndex], ctx.rolesToAssign[strongMatchIndex+1:]...)
			continue
		}

		if len(weakRoles) == 0 {
			ctx.playersNotMatchingAnyRole = append(ctx.playersNotMatchingAnyRole, player)
		} else {
			for _, role := range weakRoles {
				ctx.weakMatches[role] = append(ctx.weakMatches[role], player)
			}
		}

		ctx.unassignedPlayers = append(ctx.unassignedPlayers, playerCandidate{name: player, weakMatches: len(weakRoles)})
	}

	sortUnassignedByWeakMatches(ctx.unassignedPlayers)

	return nil
}

// sortUnassignedByWeakMatches orders players by ascending weak-match
// count, so tryAssignRoles assigns the most-constrained players
// first.
func sortUnassignedByWeakMatches(players []playerCandidate) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].weakMatches < players[j].weakMatches
	})
}

// tryGuessUnmatchedRoles pigeonholes players with no role match into
// whatever role must remain, when the raid scale and surrounding
// matches make the outcome unambiguous.
func tryGuessUnmatchedRoles(ctx *assignmentContext, playerGear *gear.PlayerGear) []primaryRole {
	var assigned []primaryRole

	if ctx.challenge.Scale() == 4 {
		if _, ok := ctx.strongMatches[RoleMage]; ok {
			if players := ctx.weakMatches[RoleMage]; len(players) == 1 {
				player := players[0]
				assigned = append(assigned, primaryRole{player: player, role: RoleMeleeFreeze})
				ctx.unassignedPlayers = removePlayers(ctx.unassignedPlayers, player)
				ctx.rolesToAssign = removeRoles(ctx.rolesToAssign, RoleMeleeFreeze)
			}
		}
	}

	if len(ctx.playersNotMatchingAnyRole) != 2 {
		return assigned
	}

	switch ctx.challenge.Scale() {
	case 3, 4:
		withVoidIdx := -1
		count := 0
		for i, player := range ctx.playersNotMatchingAnyRole {
			if pg, ok := playerGear.Player(player); ok && pg.HasVoid(items.VoidAny) {
				withVoidIdx = i
				count++
			}
		}
		if count != 1 {
			return assigned
		}

		potentialRanger := ctx.playersNotMatchingAnyRole[withVoidIdx]
		potentialMelee := ctx.playersNotMatchingAnyRole[1-withVoidIdx]

		meleeHasNonVoidRanged := false
		if pg, ok := playerGear.Player(potentialMelee); ok {
			meleeHasNonVoidRanged = pg.HasAnyInChallenge(nonVoidRangedGear)
		}

		if meleeHasNonVoidRanged {
			ctx.unassignedPlayers = removePlayers(ctx.unassignedPlayers, potentialRanger, potentialMelee)
			ctx.rolesToAssign = removeRoles(ctx.rolesToAssign, RoleRanger, RoleMelee)
			ctx.playersNotMatchingAnyRole = nil
			assigned = append(assigned,
				primaryRole{player: potentialRanger, role: RoleRanger},
				primaryRole{player: potentialMelee, role: RoleMelee},
			)
		}
	case 5:
		if len(ctx.strongMatches[RoleRanger]) > 0 || len(ctx.weakMatches[RoleRanger]) > 0 {
			for _, p := range ctx.playersNotMatchingAnyRole {
				assigned = append(assigned, primaryRole{player: p, role: RoleMelee})
			}
			ctx.unassignedPlayers = removePlayers(ctx.unassignedPlayers, ctx.playersNotMatchingAnyRole...)
			ctx.playersNotMatchingAnyRole = nil
			ctx.rolesToAssign = removeRoles(ctx.rolesToAssign, RoleMelee)
		}
	}

	return assigned
}

// tryAssignRoles recursively assigns a role to every remaining
// player, trying every weak match and backtracking on dead ends. The
// player list is assumed sorted by ascending weak-match count, so
// the most constrained players are assigned first.
func tryAssignRoles(rolesToAssign []Role, assigned []primaryRole, unassignedPlayers []playerCandidate, weakMatches map[Role][]string) ([]primaryRole, bool) {
	if len(rolesToAssign) == 0 {
		return assigned, true
	}

	player := unassignedPlayers[len(assigned)].name

	if len(rolesToAssign) == 1 {
		return append(append([]primaryRole{}, assigned...), primaryRole{player: player, role: rolesToAssign[0]}), true
	}

	for i, role := range rolesToAssign {
		if !containsPlayer(weakMatches[role], player) {
			continue
		}

		remaining := make([]Role, 0, len(rolesToAssign)-1)
		remaining = append(remaining, rolesToAssign[:i]...)
		remaining = append(remaining, rolesToAssign[i+1:]...)

		nextAssigned := append(append([]primaryRole{}, assigned...), primaryRole{player: player, role: role})

		if result, ok := tryAssignRoles(remaining, nextAssigned, unassignedPlayers, weakMatches); ok {
			return result, true
		}
	}

	return nil, false
}

func tryMatchRolePreNylo(role Role, mode types.ChallengeMode, scale int, states types.PlayerStates, playerGear gear.Player) matchCertainty {
	var hasBarraged, hasChinned, hasDinhs bool

	for _, atk := range states.Attacks() {
		if !atk.Target.IsMaidenMatomenos() {
			continue
		}
		switch {
		case atk.Attack.IsBarrage():
			hasBarraged = true
		case atk.Attack.IsChin():
			hasChinned = true
		case atk.Attack == schema.AttackDinhsSpec || atk.Attack == schema.AttackDinhsBash:
			hasDinhs = true
		}
	}

	hasMeleeWeapon := playerGear.HasAnyInChallenge(nyloMeleeWeapons)
	hasDinhs = hasDinhs || playerGear.HasAny(types.StageTobMaiden, maidenMeleeWeapons)

	isHMT := mode == types.ModeTobHard

	switch role {
	case RoleDuoMage:
		if hasBarraged || hasMeleeWeapon {
			return certaintyStrong
		}
	case RoleDuoRanger:
		if hasChinned {
			return certaintyStrong
		}
		if !hasBarraged {
			return certaintyWeak
		}
	case RoleMage:
		if !hasBarraged {
			return certaintyNone
		}
		if hasChinned || (scale == 3 && !isHMT) || scale == 5 {
			return certaintyStrong
		}
		if !hasMeleeWeapon {
			return certaintyWeak
		}
	case RoleRanger:
		if hasChinned && !hasBarraged {
			return certaintyWeak
		}
	case RoleMelee:
		if hasDinhs || (hasMeleeWeapon && !hasBarraged) {
			return certaintyStrong
		}
		if isHMT && hasMeleeWeapon && hasBarraged {
			return certaintyWeak
		}
	case RoleMeleeFreeze:
		if hasBarraged && hasMeleeWeapon {
			return certaintyStrong
		}
	case RoleSolo:
		return certaintyStrong
	}

	return certaintyNone
}

func tryMatchRoleNylo(role Role, _ types.ChallengeMode, scale int, states types.PlayerStates, playerGear gear.Player) matchCertainty {
	var numSwifts, numPipes, num4TMelees int
	var hasBarraged, hasChinned bool

	for _, atk := range states.Attacks() {
		switch {
		case atk.Attack == schema.AttackSwiftBlade || atk.Attack == schema.AttackHamJoint || atk.Attack == schema.AttackDualMacuahuitl:
			numSwifts++
		case atk.Attack == schema.AttackClawScratch || atk.Attack == schema.AttackTentWhip:
			num4TMelees++
		case atk.Attack == schema.AttackBlowpipe || atk.Attack == schema.AttackBlowpipeSpec:
			numPipes++
		case atk.Attack.IsBarrage():
			hasBarraged = true
		case atk.Attack.IsChin():
			hasChinned = true
		}
	}

	hasMeleed := numSwifts > 1 || num4TMelees > melee4TThreshold
	hasPaintCannon := playerGear.Has(types.StageTobNylocas, items.IDGoblinPaintCannon)

	switch role {
	case RoleSolo:
		return certaintyStrong
	case RoleDuoMage:
		if hasBarraged || hasMeleed {
			return certaintyStrong
		}
	case RoleDuoRanger:
		if numPipes > 30 {
			return certaintyStrong
		}
		if !hasMeleed {
			return certaintyWeak
		}
	case RoleMage:
		if hasBarraged {
			if scale == 4 {
				return certaintyWeak
			}
			return certaintyStrong
		}
	case RoleMeleeFreeze:
		if scale == 4 && hasBarraged {
			if hasMeleed {
				return certaintyStrong
			}
			if hasPaintCannon {
				return certaintyWeak
			}
		}
	case RoleRanger:
		if hasChinned {
			return certaintyStrong
		}
		if numPipes > 20 {
			return certaintyWeak
		}
	case RoleMelee:
		if hasMeleed || hasPaintCannon {
			return certaintyWeak
		}
	}

	return certaintyNone
}

func determineMaidenSubroles(challenge *types.Challenge, states types.PlayerStates, role Role) []SubRole {
	maidenData := challenge.StageInfo(types.StageTobMaiden)

	var subroles []SubRole

	if challenge.Scale() > 2 && role.IsFreezer() {
		freezers := make(map[uint32]struct{})
		for _, event := range maidenData.EventsForType(schema.EventPlayerAttack) {
			if event.PlayerAttack == nil || event.Player == nil {
				continue
			}
			if event.PlayerAttack.Type.IsBarrage() && event.PlayerAttack.Target.IsMaidenMatomenos() {
				freezers[event.Player.PartyIndex] = struct{}{}
			}
		}

		if len(freezers) == 1 {
			subroles = append(subroles, SubRoleMaidenSoloFreezer)
		} else {
			north, south := countNorthAndSouthFreezes(states)
			if north > south {
				subroles = append(subroles, SubRoleMaidenNorthFreezer)
			} else {
				subroles = append(subroles, SubRoleMaidenSouthFreezer)
			}
		}
	}

	for _, atk := range states.Attacks() {
		if atk.Attack.IsChin() && atk.Target.IsMaidenMatomenos() {
			subroles = append(subroles, SubRoleMaidenChinner)
			break
		}
	}

	return subroles
}

// countNorthAndSouthFreezes counts barrages landed on north vs. south
// Maiden crabs within 17 ticks of spawn; later freezes are considered
// DPS on the clump rather than a lane freeze.
func countNorthAndSouthFreezes(states types.PlayerStates) (north, south uint32) {
	for _, atk := range states.Attacks() {
		target := atk.Target
		if !atk.Attack.IsBarrage() || target == nil || target.Kind != schema.NpcMaidenCrab {
			continue
		}
		if atk.Tick < target.SpawnTick || atk.Tick-target.SpawnTick > 17 {
			continue
		}
		if target.MaidenCrabPosition.IsSouth() {
			south++
		} else {
			north++
		}
	}
	return north, south
}

type nyloPrefire struct {
	attack schema.PlayerAttack
	npc    *schema.StageNpc
}

// determineNyloSubroles infers west/east lane assignments from
// prefire attacks. Only supported at 5-player scale, where Nylocas
// lane responsibilities are well-defined by the current meta.
func determineNyloSubroles(challenge *types.Challenge, states types.PlayerStates, role Role) []SubRole {
	if challenge.Scale() != 5 {
		return nil
	}

	counted := make(map[uint64]struct{})
	var prefires []nyloPrefire

	for _, atk := range states.Attacks() {
		target := atk.Target
		if target == nil || target.Kind != schema.NpcNylo {
			continue
		}
		if _, ok := counted[target.RoomID]; ok {
			continue
		}
		if target.NyloSpawnType == schema.NyloSpawnSplit {
			continue
		}
		if atk.Tick < target.SpawnTick || atk.Tick-target.SpawnTick > nyloPrefireTicks {
			continue
		}
		counted[target.RoomID] = struct{}{}
		prefires = append(prefires, nyloPrefire{attack: atk.Attack, npc: target})
	}

	var subroles []SubRole

	switch role {
	case RoleMage:
		var west, east int
		for _, pf := range prefires {
			consider := ((pf.npc.NyloWave == 11 || pf.npc.NyloWave == 21) && pf.attack.IsBarrage()) ||
				((pf.npc.NyloWave == 26 || pf.npc.NyloWave == 27) && pf.npc.NyloBig)
			if !consider {
				continue
			}
			switch pf.npc.NyloSpawnType {
			case schema.NyloSpawnWest:
				west++
			case schema.NyloSpawnEast:
				east++
			}
		}
		if west > east {
			subroles = append(subroles, SubRoleNyloWestMage)
		} else if east > west {
			subroles = append(subroles, SubRoleNyloEastMage)
		}
	case RoleMelee:
		var west, east int
		for _, pf := range prefires {
			consider := pf.npc.NyloWave == 12 && (pf.attack == schema.AttackScythe || pf.attack == schema.AttackScytheUncharged)
			if !consider {
				continue
			}
			switch pf.npc.NyloSpawnType {
			case schema.NyloSpawnWest:
				west++
			case schema.NyloSpawnEast:
				east++
			}
		}
		if west > east {
			subroles = append(subroles, SubRoleNyloWestMelee)
		} else if east > west {
			subroles = append(subroles, SubRoleNyloEastMelee)
		}
	}

	return subroles
}

func containsPlayer(players []string, name string) bool {
	for _, p := range players {
		if p == name {
			return true
		}
	}
	return false
}

func removePlayers(players []playerCandidate, names ...string) []playerCandidate {
	out := players[:0]
	for _, p := range players {
		if !containsPlayer(names, p.name) {
			out = append(out, p)
		}
	}
	return out
}

func removeRoles(roles []Role, targets ...Role) []Role {
	out := roles[:0]
	for _, r := range roles {
		remove := false
		for _, t := range targets {
			if r == t {
				remove = true
				break
			}
		}
		if !remove {
			out = append(out, r)
		}
	}
	return out
}
