package metadata

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/types"
)

func TestStore_LoadChallengeRow(t *testing.T) {
	db, drv := newFakeDB()
	defer db.Close()

	id := uuid.New()
	drv.set(`SELECT id, uuid, type, mode, status, stage FROM challenges WHERE uuid = $1`, fakeResult{
		columns: []string{"id", "uuid", "type", "mode", "status", "stage"},
		rows: [][]driver.Value{
			{int64(42), id.String(), int64(1), int64(1), int64(1), int64(1)},
		},
	})

	s := NewStore(db)
	row, err := s.LoadChallengeRow(context.Background(), id)
	if err != nil {
		t.Fatalf("LoadChallengeRow: %v", err)
	}
	if row.ID != 42 {
		t.Errorf("ID = %d, want 42", row.ID)
	}
	if row.UUID != id {
		t.Errorf("UUID = %v, want %v", row.UUID, id)
	}
	if row.Type != types.ChallengeTob {
		t.Errorf("Type = %v, want ChallengeTob", row.Type)
	}
	if row.Mode != types.ModeTobRegular {
		t.Errorf("Mode = %v, want ModeTobRegular", row.Mode)
	}
	if row.Status != types.StatusCompleted {
		t.Errorf("Status = %v, want StatusCompleted", row.Status)
	}
	if row.Stage != types.StageTobMaiden {
		t.Errorf("Stage = %v, want StageTobMaiden", row.Stage)
	}
}

func TestStore_LoadChallengeRow_NoRows(t *testing.T) {
	db, drv := newFakeDB()
	defer db.Close()

	id := uuid.New()
	drv.set(`SELECT id, uuid, type, mode, status, stage FROM challenges WHERE uuid = $1`, fakeResult{
		columns: []string{"id", "uuid", "type", "mode", "status", "stage"},
		rows:    nil,
	})

	s := NewStore(db)
	if _, err := s.LoadChallengeRow(context.Background(), id); err == nil {
		t.Fatal("expected error for missing row")
	}
}

func TestStore_LoadChallengeRow_InvalidType(t *testing.T) {
	db, drv := newFakeDB()
	defer db.Close()

	id := uuid.New()
	drv.set(`SELECT id, uuid, type, mode, status, stage FROM challenges WHERE uuid = $1`, fakeResult{
		columns: []string{"id", "uuid", "type", "mode", "status", "stage"},
		rows: [][]driver.Value{
			{int64(1), id.String(), int64(99), int64(1), int64(1), int64(0)},
		},
	})

	s := NewStore(db)
	_, err := s.LoadChallengeRow(context.Background(), id)
	if err == nil {
		t.Fatal("expected error for out-of-range type")
	}
	var engineErr *types.Error
	if !asError(err, &engineErr) || engineErr.Kind != types.KindInvalidField {
		t.Errorf("error = %v, want KindInvalidField", err)
	}
}

func TestStore_LoadPartyOrder(t *testing.T) {
	db, drv := newFakeDB()
	defer db.Close()

	drv.set(`SELECT username FROM challenge_players WHERE challenge_id = $1 ORDER BY orb ASC`, fakeResult{
		columns: []string{"username"},
		rows: [][]driver.Value{
			{"alice"}, {"bob"}, {"carol"},
		},
	})

	s := NewStore(db)
	party, err := s.LoadPartyOrder(context.Background(), 7)
	if err != nil {
		t.Fatalf("LoadPartyOrder: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(party) != len(want) {
		t.Fatalf("party = %v, want %v", party, want)
	}
	for i, name := range want {
		if party[i] != name {
			t.Errorf("party[%d] = %s, want %s", i, party[i], name)
		}
	}
}

func TestStore_LoadPartyOrder_Empty(t *testing.T) {
	db, drv := newFakeDB()
	defer db.Close()

	drv.set(`SELECT username FROM challenge_players WHERE challenge_id = $1 ORDER BY orb ASC`, fakeResult{
		columns: []string{"username"},
		rows:    nil,
	})

	s := NewStore(db)
	if _, err := s.LoadPartyOrder(context.Background(), 7); err == nil {
		t.Fatal("expected error for empty party")
	}
}

func asError(err error, target **types.Error) bool {
	e, ok := err.(*types.Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
