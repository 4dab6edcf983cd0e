package gear

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/items"
	"github.com/raidreplay/tobengine/types"
)

func testRegistry(t *testing.T) *items.Registry {
	t.Helper()
	slotWeapon := int(types.SlotWeapon)
	slotHead := int(types.SlotHead)
	raw := []map[string]any{
		{"id": 4151, "name": "Abyssal whip", "tradeable": true, "slot": slotWeapon},
		{"id": items.IDVoidMeleeHelm, "name": "Void melee helm", "tradeable": false, "slot": slotHead},
	}
	path := filepath.Join(t.TempDir(), "items.json")
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	reg, err := items.LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func stateWithWeapon(tick uint32, itemID int32) *types.PlayerState {
	s := &types.PlayerState{Tick: tick}
	s.ApplyEquipmentDelta(types.SlotWeapon, itemID, 1, true)
	return s
}

func stateWithHelm(tick uint32, itemID int32) *types.PlayerState {
	s := &types.PlayerState{Tick: tick}
	s.ApplyEquipmentDelta(types.SlotHead, itemID, 1, true)
	return s
}

func buildChallenge(t *testing.T, whip bool) *types.Challenge {
	t.Helper()
	var states []*types.PlayerState
	if whip {
		states = []*types.PlayerState{stateWithWeapon(0, 4151)}
	} else {
		states = []*types.PlayerState{stateWithHelm(0, int32(items.IDVoidMeleeHelm))}
	}
	playerState := map[string]types.PlayerStates{
		"zuk": types.NewPlayerStates(states),
	}
	stage := types.NewStageInfo(types.StageTobMaiden, types.StageEvents{}, nil, playerState)
	return types.NewChallenge(uuid.New(), types.ChallengeTob, types.ModeTobRegular, types.StatusCompleted, types.StageTobMaiden, []string{"zuk"}, []*types.StageInfo{stage})
}

func TestGearAnalyzer_RecordsEquippedItems(t *testing.T) {
	registry := testRegistry(t)
	challenge := buildChallenge(t, true)

	ctx := analyzer.NewContext(challenge, registry, analyzer.LevelBasic, analyzer.NewCompletedMap())

	a := &Analyzer{}
	out, err := a.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	gear, ok := out.(*PlayerGear)
	if !ok {
		t.Fatalf("output type = %T, want *PlayerGear", out)
	}

	player, ok := gear.Player("zuk")
	if !ok {
		t.Fatal("expected zuk to be present")
	}
	if !player.Has(types.StageTobMaiden, 4151) {
		t.Error("expected zuk to have whip recorded on Maiden")
	}
	if !player.HasInChallenge(4151) {
		t.Error("expected zuk to have whip recorded in challenge")
	}
	if player.Has(types.StageTobMaiden, 9999) {
		t.Error("did not expect zuk to have an unworn item recorded")
	}
}

func TestGearAnalyzer_MissingPlayerIsIncompleteData(t *testing.T) {
	registry := testRegistry(t)
	challenge := types.NewChallenge(uuid.New(), types.ChallengeTob, types.ModeTobRegular, types.StatusCompleted, types.StageTobMaiden, []string{"nobody"},
		[]*types.StageInfo{types.NewStageInfo(types.StageTobMaiden, types.StageEvents{}, nil, map[string]types.PlayerStates{})})

	ctx := analyzer.NewContext(challenge, registry, analyzer.LevelBasic, analyzer.NewCompletedMap())

	a := &Analyzer{}
	if _, err := a.Analyze(ctx); err == nil {
		t.Fatal("expected error for player missing from stage state")
	}
}

func TestPlayer_HasVoid(t *testing.T) {
	registry := testRegistry(t)
	challenge := buildChallenge(t, false)

	ctx := analyzer.NewContext(challenge, registry, analyzer.LevelBasic, analyzer.NewCompletedMap())

	a := &Analyzer{}
	out, err := a.Analyze(ctx)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	gear := out.(*PlayerGear)

	player, _ := gear.Player("zuk")
	if !player.HasVoid(items.VoidMelee) {
		t.Error("expected zuk to have melee void")
	}
	if player.HasVoid(items.VoidMage) {
		t.Error("did not expect zuk to have mage void")
	}
	if !player.HasVoid(items.VoidAny) {
		t.Error("expected HasVoid(VoidAny) to be true")
	}
}

func TestPlayer_UnknownPlayerAbsent(t *testing.T) {
	registry := testRegistry(t)
	challenge := buildChallenge(t, true)
	ctx := analyzer.NewContext(challenge, registry, analyzer.LevelBasic, analyzer.NewCompletedMap())

	a := &Analyzer{}
	out, _ := a.Analyze(ctx)
	gear := out.(*PlayerGear)

	if _, ok := gear.Player("ghost"); ok {
		t.Error("expected unknown player to be absent")
	}
}
