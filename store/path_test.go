package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/types"
)

func TestRelativePath(t *testing.T) {
	id := uuid.MustParse("12345678-1234-1234-1234-123456789abc")
	got := RelativePath(id, "maiden")
	want := "12/12345678123412341234123456789abc/maiden"
	if got != want {
		t.Errorf("RelativePath() = %q, want %q", got, want)
	}
}

func TestStageFileNameKnownStages(t *testing.T) {
	cases := []struct {
		stage types.Stage
		want  string
	}{
		{types.StageTobMaiden, "maiden"},
		{types.StageTobBloat, "bloat"},
		{types.StageTobNylocas, "nylocas"},
		{types.StageTobSotetseg, "sotetseg"},
		{types.StageTobXarpus, "xarpus"},
		{types.StageTobVerzik, "verzik"},
		{types.StageColosseumWave1, "wave-1"},
		{types.StageColosseumWave12, "wave-12"},
	}
	for _, c := range cases {
		got, err := StageFileName(c.stage)
		if err != nil {
			t.Fatalf("StageFileName(%v) returned error: %v", c.stage, err)
		}
		if got != c.want {
			t.Errorf("StageFileName(%v) = %q, want %q", c.stage, got, c.want)
		}
	}
}

func TestStageFileNameUnknown(t *testing.T) {
	if _, err := StageFileName(types.StageUnknown); err == nil {
		t.Error("StageFileName(StageUnknown) expected error, got nil")
	}
}

func TestParseStageRoundTrip(t *testing.T) {
	for raw := 0; raw < len(rawStageOrder); raw++ {
		stage, err := ParseStage(raw)
		if err != nil {
			t.Fatalf("ParseStage(%d) returned error: %v", raw, err)
		}
		if stage != types.Stage(raw) {
			t.Errorf("ParseStage(%d) = %v, want %v", raw, stage, types.Stage(raw))
		}
	}
}

func TestParseStageOutOfRange(t *testing.T) {
	if _, err := ParseStage(-1); err == nil {
		t.Error("ParseStage(-1) expected error, got nil")
	}
	if _, err := ParseStage(len(rawStageOrder)); err == nil {
		t.Error("ParseStage(out of range) expected error, got nil")
	}
}
